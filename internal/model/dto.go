// Package model 定义了与数据库表对应的 Go 结构体。
package model

import "time"

// RecommendRequest 定义了 POST /recommend 的请求体结构。
// Topic 为空或类型不是字符串时请求直接失败，不会发起任何外部调用。
type RecommendRequest struct {
	Topic        string `json:"topic"`
	ResourceMode bool   `json:"resourceMode"`
	HistoryID    string `json:"historyId"`
}

// RecommendResponse 定义了 POST /recommend 的响应体结构。
type RecommendResponse struct {
	Success        bool              `json:"success"`
	Topic          string            `json:"topic"`
	IsResourceMode bool              `json:"isResourceMode"`
	AIResponse     string            `json:"aiResponse,omitempty"`
	Resources      []ResourceSection `json:"resources,omitempty"`
}

// ChatHistoryItem 是对话历史在侧边栏中的展示结构：
// query 取第一条 user 消息，response 为全部 assistant 消息拼接。
type ChatHistoryItem struct {
	ID        string    `json:"id"`
	Topic     string    `json:"topic"`
	Query     string    `json:"query"`
	Response  string    `json:"response"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Messages  []Message `json:"messages"`
}

// HistoryOverview 汇总了用户最近的对话历史与资源历史。
type HistoryOverview struct {
	ChatHistory     []ChatHistoryItem `json:"chatHistory"`
	ResourceHistory []ResourceHistory `json:"resourceHistory"`
}

// UpdateHistoryRequest 定义了 PATCH /history/:id 的请求体结构。
// 只有非空字段会被更新。
type UpdateHistoryRequest struct {
	Type      string           `json:"type"`
	Topic     string           `json:"topic"`
	Query     string           `json:"query"`
	Response  string           `json:"response"`
	Resources ResourceSections `json:"resources"`
}
