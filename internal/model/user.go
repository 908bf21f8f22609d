// Package model 定义了与数据库表对应的 Go 结构体。
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User 对应于数据库中的 'users' 表。
// 用户身份由外部认证服务管理，首次携带有效令牌访问时在本地惰性创建。
type User struct {
	ID string `gorm:"type:varchar(36);primaryKey" json:"id"`
	// ExternalID 是外部身份提供方分配的用户标识，本地用户与之一一对应。
	ExternalID string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"externalId"`
	Email      string    `gorm:"type:varchar(255)" json:"email"`
	Name       string    `gorm:"type:varchar(100)" json:"name"`
	ImageURL   string    `gorm:"type:varchar(512)" json:"imageUrl"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// TableName 指定了此模型在数据库中对应的表名。
func (User) TableName() string {
	return "users"
}

// BeforeCreate 在插入前生成主键。
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
