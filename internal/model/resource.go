// Package model 定义了与数据库表对应的 Go 结构体。
package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ResourceItem 是单条学习资源，由某个提供方适配器归一化而来，创建后不可变。
type ResourceItem struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Link        string `json:"link,omitempty"`
	Channel     string `json:"channel,omitempty"`
	Stars       int    `json:"stars,omitempty"`
}

// ResourceSection 是一组同类学习资源，Type 为展示用的分组名（如 "Top Books"）。
// 聚合结果中每个分组至少包含一条资源，空分组在落库和响应前即被过滤。
type ResourceSection struct {
	Type  string         `json:"type"`
	Items []ResourceItem `json:"items"`
}

// ResourceSections 以 JSON 文本形式整体存入数据库，只做整体替换，不做局部修改。
type ResourceSections []ResourceSection

// Value 实现 driver.Valuer 接口，序列化为 JSON。
func (s ResourceSections) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	b, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("序列化资源分组失败: %w", err)
	}
	return string(b), nil
}

// Scan 实现 sql.Scanner 接口，从 JSON 反序列化。
func (s *ResourceSections) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("无法将 %T 解析为 ResourceSections", value)
	}
	return json.Unmarshal(data, s)
}

// ResourceHistory 对应于数据库中的 'resource_histories' 表。
// 一次成功的资源聚合请求保存为一条记录，归属于唯一用户且 UserID 创建后不变。
type ResourceHistory struct {
	ID        string           `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID    string           `gorm:"type:varchar(36);index;not null" json:"userId"`
	Title     string           `gorm:"type:varchar(255);not null" json:"title"`
	Query     string           `gorm:"type:varchar(255);not null" json:"query"`
	Resources ResourceSections `gorm:"type:json" json:"resources"`
	CreatedAt time.Time        `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time        `gorm:"autoUpdateTime" json:"updatedAt"`
}

// TableName 指定了此模型在数据库中对应的表名。
func (ResourceHistory) TableName() string {
	return "resource_histories"
}

// BeforeCreate 在插入前生成主键。
func (r *ResourceHistory) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
