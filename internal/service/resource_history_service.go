// Package service 包含了应用的业务逻辑层。
package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"learn-mate-go/internal/model"
	"learn-mate-go/internal/repository"
)

// ResourceHistoryService 是资源模式的持久化网关。
type ResourceHistoryService interface {
	// Save 将一次聚合结果整体落库。existingID 指向的记录存在且归属该
	// 用户时原地覆盖 Title/Query/Resources（记录 ID 不变）；否则新建。
	// existingID 只是建议性的：查找未命中时回退为新建，不报错。
	Save(ctx context.Context, userID, topic string, sections []model.ResourceSection, existingID string) (*model.ResourceHistory, error)
}

type resourceHistoryService struct {
	historyRepo repository.ResourceHistoryRepository
}

// NewResourceHistoryService 创建一个新的 ResourceHistoryService 实例。
func NewResourceHistoryService(historyRepo repository.ResourceHistoryRepository) ResourceHistoryService {
	return &resourceHistoryService{historyRepo: historyRepo}
}

// Save 实现 ResourceHistoryService 接口。
func (s *resourceHistoryService) Save(ctx context.Context, userID, topic string, sections []model.ResourceSection, existingID string) (*model.ResourceHistory, error) {
	if existingID != "" {
		existing, err := s.historyRepo.FindByIDAndUser(ctx, existingID, userID)
		if err == nil {
			existing.Title = topic
			existing.Query = topic
			existing.Resources = sections
			if err := s.historyRepo.Update(ctx, existing); err != nil {
				return nil, fmt.Errorf("更新资源历史失败: %w", err)
			}
			return existing, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("查找资源历史失败: %w", err)
		}
		// 未命中则回退为新建。
	}

	history := &model.ResourceHistory{
		UserID:    userID,
		Title:     topic,
		Query:     topic,
		Resources: sections,
	}
	if err := s.historyRepo.Create(ctx, history); err != nil {
		return nil, fmt.Errorf("创建资源历史失败: %w", err)
	}
	return history, nil
}
