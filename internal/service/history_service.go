// Package service 包含了应用的业务逻辑层。
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"learn-mate-go/internal/model"
	"learn-mate-go/internal/repository"
)

// 侧边栏单类历史的数量上限。
const historyListLimit = 20

// HistoryService 提供历史记录的查询与编辑，所有操作都以归属用户为界。
type HistoryService interface {
	// Overview 返回用户最近的对话历史与资源历史。
	Overview(ctx context.Context, userID string) (*model.HistoryOverview, error)
	// GetChat 返回单条对话历史（UI 展示结构）。
	GetChat(ctx context.Context, userID, id string) (*model.ChatHistoryItem, error)
	// GetResource 返回单条资源历史。
	GetResource(ctx context.Context, userID, id string) (*model.ResourceHistory, error)
	// Update 按类型部分更新一条历史记录，只有非空字段生效。
	Update(ctx context.Context, userID, id string, req model.UpdateHistoryRequest) error
	// Delete 按类型删除一条历史记录。
	Delete(ctx context.Context, userID, id, historyType string) error
}

type historyService struct {
	convRepo    repository.ConversationRepository
	historyRepo repository.ResourceHistoryRepository
}

// NewHistoryService 创建一个新的 HistoryService 实例。
func NewHistoryService(convRepo repository.ConversationRepository, historyRepo repository.ResourceHistoryRepository) HistoryService {
	return &historyService{convRepo: convRepo, historyRepo: historyRepo}
}

// Overview 实现 HistoryService 接口。
func (s *historyService) Overview(ctx context.Context, userID string) (*model.HistoryOverview, error) {
	convs, err := s.convRepo.ListByUser(ctx, userID, historyListLimit)
	if err != nil {
		return nil, fmt.Errorf("查询对话历史失败: %w", err)
	}
	histories, err := s.historyRepo.ListByUser(ctx, userID, historyListLimit)
	if err != nil {
		return nil, fmt.Errorf("查询资源历史失败: %w", err)
	}

	chatItems := make([]model.ChatHistoryItem, 0, len(convs))
	for i := range convs {
		chatItems = append(chatItems, toChatHistoryItem(&convs[i]))
	}
	return &model.HistoryOverview{
		ChatHistory:     chatItems,
		ResourceHistory: histories,
	}, nil
}

// GetChat 实现 HistoryService 接口。
func (s *historyService) GetChat(ctx context.Context, userID, id string) (*model.ChatHistoryItem, error) {
	conv, err := s.convRepo.FindByIDAndUser(ctx, id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("查询对话失败: %w", err)
	}
	item := toChatHistoryItem(conv)
	return &item, nil
}

// GetResource 实现 HistoryService 接口。
func (s *historyService) GetResource(ctx context.Context, userID, id string) (*model.ResourceHistory, error) {
	history, err := s.historyRepo.FindByIDAndUser(ctx, id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("查询资源历史失败: %w", err)
	}
	return history, nil
}

// Update 实现 HistoryService 接口。
func (s *historyService) Update(ctx context.Context, userID, id string, req model.UpdateHistoryRequest) error {
	switch req.Type {
	case HistoryTypeChat:
		return s.updateChat(ctx, userID, id, req)
	case HistoryTypeResources:
		return s.updateResource(ctx, userID, id, req)
	default:
		return ErrInvalidType
	}
}

// updateChat 将对 topic/query/response 的编辑映射到带版本化结构的对话模型：
// topic 重命名对话，query 重写首条 user 消息，response 重写首条 assistant 消息。
func (s *historyService) updateChat(ctx context.Context, userID, id string, req model.UpdateHistoryRequest) error {
	conv, err := s.convRepo.FindByIDAndUser(ctx, id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("查询对话失败: %w", err)
	}

	if req.Topic != "" {
		if err := s.convRepo.UpdateTitle(ctx, conv.ID, req.Topic); err != nil {
			return fmt.Errorf("更新对话标题失败: %w", err)
		}
	}
	if req.Query != "" {
		if msg := firstMessageByRole(conv.Messages, model.RoleUser); msg != nil {
			if err := s.convRepo.UpdateMessageContent(ctx, msg.ID, req.Query); err != nil {
				return fmt.Errorf("更新提问内容失败: %w", err)
			}
		}
	}
	if req.Response != "" {
		if msg := firstMessageByRole(conv.Messages, model.RoleAssistant); msg != nil {
			if err := s.convRepo.UpdateMessageContent(ctx, msg.ID, req.Response); err != nil {
				return fmt.Errorf("更新回答内容失败: %w", err)
			}
		}
	}
	return nil
}

func (s *historyService) updateResource(ctx context.Context, userID, id string, req model.UpdateHistoryRequest) error {
	history, err := s.historyRepo.FindByIDAndUser(ctx, id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("查询资源历史失败: %w", err)
	}

	if req.Topic != "" {
		history.Title = req.Topic
	}
	if req.Query != "" {
		history.Query = req.Query
	}
	if req.Resources != nil {
		history.Resources = req.Resources
	}
	if err := s.historyRepo.Update(ctx, history); err != nil {
		return fmt.Errorf("更新资源历史失败: %w", err)
	}
	return nil
}

// Delete 实现 HistoryService 接口。
func (s *historyService) Delete(ctx context.Context, userID, id, historyType string) error {
	switch historyType {
	case HistoryTypeChat:
		if _, err := s.convRepo.FindByIDAndUser(ctx, id, userID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("查询对话失败: %w", err)
		}
		return s.convRepo.Delete(ctx, id)
	case HistoryTypeResources:
		if _, err := s.historyRepo.FindByIDAndUser(ctx, id, userID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("查询资源历史失败: %w", err)
		}
		return s.historyRepo.Delete(ctx, id)
	default:
		return ErrInvalidType
	}
}

// toChatHistoryItem 把对话映射为侧边栏展示结构：
// query 取第一条 user 消息，response 为全部 assistant 消息以空行拼接。
func toChatHistoryItem(conv *model.Conversation) model.ChatHistoryItem {
	query := ""
	var responses []string
	for _, m := range conv.Messages {
		switch m.Role {
		case model.RoleUser:
			if query == "" {
				query = m.Content
			}
		case model.RoleAssistant:
			responses = append(responses, m.Content)
		}
	}
	return model.ChatHistoryItem{
		ID:        conv.ID,
		Topic:     conv.Title,
		Query:     query,
		Response:  strings.Join(responses, "\n\n"),
		CreatedAt: conv.CreatedAt,
		UpdatedAt: conv.UpdatedAt,
		Messages:  conv.Messages,
	}
}

// firstMessageByRole 返回指定角色的最早一条消息。
func firstMessageByRole(messages []model.Message, role string) *model.Message {
	for i := range messages {
		if messages[i].Role == role {
			return &messages[i]
		}
	}
	return nil
}
