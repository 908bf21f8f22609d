// Package model 包含了应用的数据模型定义。
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// 消息角色常量。
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Conversation 代表一次与 AI 助手的多轮对话，归属于唯一用户。
type Conversation struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID    string    `gorm:"type:varchar(36);index;not null" json:"userId"`
	Title     string    `gorm:"type:varchar(255);not null" json:"title"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
	// Messages 只追加，按创建时间升序读取。
	Messages []Message `gorm:"foreignKey:ConversationID" json:"messages"`
}

// TableName 指定了此模型在数据库中对应的表名。
func (Conversation) TableName() string {
	return "conversations"
}

// BeforeCreate 在插入前生成主键。
func (c *Conversation) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// Message 代表对话中的单条消息，角色为 "user" 或 "assistant"。
type Message struct {
	ID             string `gorm:"type:varchar(36);primaryKey" json:"id"`
	ConversationID string `gorm:"type:varchar(36);index;not null" json:"conversationId"`
	Role           string `gorm:"type:varchar(16);not null" json:"role"`
	Content        string `gorm:"type:text;not null" json:"content"`
	// 毫秒精度的创建时间，保证同一请求内先插入的 user 消息排在 assistant 之前。
	CreatedAt time.Time `gorm:"type:datetime(3);autoCreateTime:milli" json:"createdAt"`
}

// TableName 指定了此模型在数据库中对应的表名。
func (Message) TableName() string {
	return "messages"
}

// BeforeCreate 在插入前生成主键。
func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
