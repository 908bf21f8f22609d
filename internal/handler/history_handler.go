// Package handler 包含了处理 HTTP 请求的控制器逻辑。
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"learn-mate-go/internal/model"
	"learn-mate-go/internal/service"
	"learn-mate-go/pkg/log"
)

// HistoryHandler 处理历史记录相关的 API 请求。
// 所有路由都经过强制认证，上下文中始终存在用户。
type HistoryHandler struct {
	historyService service.HistoryService
}

// NewHistoryHandler 创建一个新的 HistoryHandler 实例。
func NewHistoryHandler(historyService service.HistoryService) *HistoryHandler {
	return &HistoryHandler{historyService: historyService}
}

// List 处理 GET /history 请求，返回用户最近的对话与资源历史。
func (h *HistoryHandler) List(c *gin.Context) {
	user := currentUser(c)

	overview, err := h.historyService.Overview(c.Request.Context(), user.ID)
	if err != nil {
		log.Error("History: 查询历史失败", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch history"})
		return
	}
	c.JSON(http.StatusOK, overview)
}

// Get 处理 GET /history/:id?type=chat|resources 请求。
func (h *HistoryHandler) Get(c *gin.Context) {
	user := currentUser(c)
	id := c.Param("id")

	switch c.Query("type") {
	case service.HistoryTypeChat:
		item, err := h.historyService.GetChat(c.Request.Context(), user.ID, id)
		if err != nil {
			h.writeError(c, err, "Fetch failed")
			return
		}
		c.JSON(http.StatusOK, gin.H{"item": item, "type": service.HistoryTypeChat})
	case service.HistoryTypeResources:
		item, err := h.historyService.GetResource(c.Request.Context(), user.ID, id)
		if err != nil {
			h.writeError(c, err, "Fetch failed")
			return
		}
		c.JSON(http.StatusOK, gin.H{"item": item, "type": service.HistoryTypeResources})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid type"})
	}
}

// Update 处理 PATCH /history/:id 请求，按类型部分更新字段。
func (h *HistoryHandler) Update(c *gin.Context) {
	user := currentUser(c)
	id := c.Param("id")

	var req model.UpdateHistoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload"})
		return
	}

	if err := h.historyService.Update(c.Request.Context(), user.ID, id, req); err != nil {
		h.writeError(c, err, "Update failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Delete 处理 DELETE /history/:id?type=chat|resources 请求。
func (h *HistoryHandler) Delete(c *gin.Context) {
	user := currentUser(c)
	id := c.Param("id")

	if err := h.historyService.Delete(c.Request.Context(), user.ID, id, c.Query("type")); err != nil {
		h.writeError(c, err, "Delete failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Deleted"})
}

// writeError 把业务层错误映射为 HTTP 状态码。
func (h *HistoryHandler) writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, service.ErrInvalidType):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid type"})
	default:
		log.Error("History: "+fallback, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
