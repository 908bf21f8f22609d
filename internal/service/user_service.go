// Package service 包含了应用的业务逻辑层。
package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"learn-mate-go/internal/model"
	"learn-mate-go/internal/repository"
	"learn-mate-go/pkg/log"
	"learn-mate-go/pkg/token"
)

// UserService 接口定义了用户身份解析相关的业务操作。
type UserService interface {
	// GetOrCreate 按外部身份标识解析本地用户，不存在则创建。
	// 任何持久化操作之前都必须先经过这一步。
	GetOrCreate(ctx context.Context, claims *token.IdentityClaims) (*model.User, error)
}

// userService 是 UserService 接口的实现。
type userService struct {
	userRepo repository.UserRepository
}

// NewUserService 创建一个新的 UserService 实例。
func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

// GetOrCreate 实现 UserService 接口。
func (s *userService) GetOrCreate(ctx context.Context, claims *token.IdentityClaims) (*model.User, error) {
	user, err := s.userRepo.FindByExternalID(ctx, claims.ExternalID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("查询用户失败: %w", err)
	}

	name := claims.Name
	if name == "" && len(claims.ExternalID) >= 5 {
		name = "User " + claims.ExternalID[:5]
	}
	newUser := &model.User{
		ExternalID: claims.ExternalID,
		Email:      claims.Email,
		Name:       name,
		ImageURL:   claims.ImageURL,
	}
	if err := s.userRepo.Create(ctx, newUser); err != nil {
		return nil, fmt.Errorf("创建用户失败: %w", err)
	}
	log.Infof("为外部身份 '%s' 创建本地用户 %s", claims.ExternalID, newUser.ID)
	return newUser, nil
}
