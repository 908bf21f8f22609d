package service

import "errors"

// 业务层错误，由 handler 映射到对应的 HTTP 状态码。
var (
	// ErrNotFound 表示记录不存在或不归属于当前用户。
	ErrNotFound = errors.New("记录不存在")
	// ErrInvalidType 表示历史记录类型不是 "chat" 或 "resources"。
	ErrInvalidType = errors.New("无效的历史记录类型")
)

// 历史记录类型判别值。
const (
	HistoryTypeChat      = "chat"
	HistoryTypeResources = "resources"
)
