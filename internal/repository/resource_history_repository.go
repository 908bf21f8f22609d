// Package repository 提供了数据访问层的实现。
package repository

import (
	"context"

	"gorm.io/gorm"

	"learn-mate-go/internal/model"
)

// ResourceHistoryRepository 定义了资源历史记录的持久化操作。
type ResourceHistoryRepository interface {
	Create(ctx context.Context, history *model.ResourceHistory) error
	FindByIDAndUser(ctx context.Context, id, userID string) (*model.ResourceHistory, error)
	ListByUser(ctx context.Context, userID string, limit int) ([]model.ResourceHistory, error)
	Update(ctx context.Context, history *model.ResourceHistory) error
	Delete(ctx context.Context, id string) error
}

// resourceHistoryRepository 是 ResourceHistoryRepository 接口的 GORM 实现。
type resourceHistoryRepository struct {
	db *gorm.DB
}

// NewResourceHistoryRepository 创建一个新的 ResourceHistoryRepository 实例。
func NewResourceHistoryRepository(db *gorm.DB) ResourceHistoryRepository {
	return &resourceHistoryRepository{db: db}
}

// Create 创建一条资源历史记录。
func (r *resourceHistoryRepository) Create(ctx context.Context, history *model.ResourceHistory) error {
	return r.db.WithContext(ctx).Create(history).Error
}

// FindByIDAndUser 按 ID 与归属用户查找资源历史记录。
func (r *resourceHistoryRepository) FindByIDAndUser(ctx context.Context, id, userID string) (*model.ResourceHistory, error) {
	var history model.ResourceHistory
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&history).Error
	if err != nil {
		return nil, err
	}
	return &history, nil
}

// ListByUser 按创建时间倒序返回用户的资源历史记录。
func (r *resourceHistoryRepository) ListByUser(ctx context.Context, userID string, limit int) ([]model.ResourceHistory, error) {
	var histories []model.ResourceHistory
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&histories).Error
	return histories, err
}

// Update 整体保存一条已存在的资源历史记录。
func (r *resourceHistoryRepository) Update(ctx context.Context, history *model.ResourceHistory) error {
	return r.db.WithContext(ctx).Save(history).Error
}

// Delete 删除一条资源历史记录。
func (r *resourceHistoryRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&model.ResourceHistory{}, "id = ?", id).Error
}
