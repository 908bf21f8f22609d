// Package repository 提供了数据访问层的实现。
package repository

import (
	"context"

	"gorm.io/gorm"

	"learn-mate-go/internal/model"
)

// ConversationRepository 定义了对话及其消息的持久化操作。
// 消息只追加或整体重写单条内容，不做跨记录合并。
type ConversationRepository interface {
	Create(ctx context.Context, conv *model.Conversation) error
	FindByIDAndUser(ctx context.Context, id, userID string) (*model.Conversation, error)
	ListByUser(ctx context.Context, userID string, limit int) ([]model.Conversation, error)
	AppendMessages(ctx context.Context, convID string, messages []model.Message) error
	UpdateTitle(ctx context.Context, convID, title string) error
	UpdateMessageContent(ctx context.Context, messageID, content string) error
	Delete(ctx context.Context, id string) error
}

// conversationRepository 是 ConversationRepository 接口的 GORM 实现。
type conversationRepository struct {
	db *gorm.DB
}

// NewConversationRepository 创建一个新的 ConversationRepository 实例。
func NewConversationRepository(db *gorm.DB) ConversationRepository {
	return &conversationRepository{db: db}
}

// Create 创建对话及其附带的消息。
func (r *conversationRepository) Create(ctx context.Context, conv *model.Conversation) error {
	return r.db.WithContext(ctx).Create(conv).Error
}

// FindByIDAndUser 按 ID 与归属用户查找对话，消息按创建时间升序预加载。
func (r *conversationRepository) FindByIDAndUser(ctx context.Context, id, userID string) (*model.Conversation, error) {
	var conv model.Conversation
	err := r.db.WithContext(ctx).
		Preload("Messages", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Where("id = ? AND user_id = ?", id, userID).
		First(&conv).Error
	if err != nil {
		return nil, err
	}
	return &conv, nil
}

// ListByUser 按最近更新时间倒序返回用户的对话，消息按创建时间升序预加载。
func (r *conversationRepository) ListByUser(ctx context.Context, userID string, limit int) ([]model.Conversation, error) {
	var convs []model.Conversation
	err := r.db.WithContext(ctx).
		Preload("Messages", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Limit(limit).
		Find(&convs).Error
	return convs, err
}

// AppendMessages 向已有对话追加消息，并刷新对话的更新时间。
func (r *conversationRepository) AppendMessages(ctx context.Context, convID string, messages []model.Message) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range messages {
			messages[i].ConversationID = convID
			if err := tx.Create(&messages[i]).Error; err != nil {
				return err
			}
		}
		return tx.Model(&model.Conversation{}).
			Where("id = ?", convID).
			Update("updated_at", tx.NowFunc()).Error
	})
}

// UpdateTitle 重命名对话。
func (r *conversationRepository) UpdateTitle(ctx context.Context, convID, title string) error {
	return r.db.WithContext(ctx).Model(&model.Conversation{}).
		Where("id = ?", convID).
		Update("title", title).Error
}

// UpdateMessageContent 整体重写单条消息的内容。
func (r *conversationRepository) UpdateMessageContent(ctx context.Context, messageID, content string) error {
	return r.db.WithContext(ctx).Model(&model.Message{}).
		Where("id = ?", messageID).
		Update("content", content).Error
}

// Delete 删除对话及其全部消息。
func (r *conversationRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("conversation_id = ?", id).Delete(&model.Message{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Conversation{}, "id = ?", id).Error
	})
}
