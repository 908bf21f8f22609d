// Package service 包含了应用的业务逻辑层。
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"learn-mate-go/internal/model"
	"learn-mate-go/internal/repository"
)

// ConversationService 是对话模式的持久化网关。
type ConversationService interface {
	// Record 保存一轮问答。existingID 指向的对话存在且归属该用户时，
	// 向其追加 user、assistant 两条消息（user 在前）；否则新建对话。
	// existingID 只是建议性的：查找未命中时回退为新建，不报错。
	Record(ctx context.Context, userID, topic, aiResponse, existingID string) (*model.Conversation, error)
}

type conversationService struct {
	convRepo repository.ConversationRepository
}

// NewConversationService 创建一个新的 ConversationService 实例。
func NewConversationService(convRepo repository.ConversationRepository) ConversationService {
	return &conversationService{convRepo: convRepo}
}

// Record 实现 ConversationService 接口。
func (s *conversationService) Record(ctx context.Context, userID, topic, aiResponse, existingID string) (*model.Conversation, error) {
	if existingID != "" {
		existing, err := s.convRepo.FindByIDAndUser(ctx, existingID, userID)
		if err == nil {
			now := time.Now()
			messages := []model.Message{
				{Role: model.RoleUser, Content: topic, CreatedAt: now},
				{Role: model.RoleAssistant, Content: aiResponse, CreatedAt: now.Add(time.Millisecond)},
			}
			if err := s.convRepo.AppendMessages(ctx, existing.ID, messages); err != nil {
				return nil, fmt.Errorf("追加对话消息失败: %w", err)
			}
			return s.convRepo.FindByIDAndUser(ctx, existing.ID, userID)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("查找对话失败: %w", err)
		}
		// 未命中则回退为新建。
	}

	now := time.Now()
	conv := &model.Conversation{
		UserID: userID,
		Title:  topic,
		Messages: []model.Message{
			{Role: model.RoleUser, Content: topic, CreatedAt: now},
			{Role: model.RoleAssistant, Content: aiResponse, CreatedAt: now.Add(time.Millisecond)},
		},
	}
	if err := s.convRepo.Create(ctx, conv); err != nil {
		return nil, fmt.Errorf("创建对话失败: %w", err)
	}
	return conv, nil
}
