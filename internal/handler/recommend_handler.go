// Package handler 包含了处理 HTTP 请求的控制器逻辑。
package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"learn-mate-go/internal/middleware"
	"learn-mate-go/internal/model"
	"learn-mate-go/internal/service"
	"learn-mate-go/pkg/log"
)

// RecommendHandler 处理对话 / 资源推荐请求。
type RecommendHandler struct {
	recommendService service.RecommendService
}

// NewRecommendHandler 创建一个新的 RecommendHandler 实例。
func NewRecommendHandler(recommendService service.RecommendService) *RecommendHandler {
	return &RecommendHandler{recommendService: recommendService}
}

// Recommend 处理 POST /recommend 请求。
// topic 缺失、为空白或类型错误时直接返回 400，不发起任何外部调用。
func (h *RecommendHandler) Recommend(c *gin.Context) {
	var req model.RecommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warnf("Recommend: 无效的请求负载, error: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "No valid topic"})
		return
	}
	req.Topic = strings.TrimSpace(req.Topic)
	if req.Topic == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No valid topic"})
		return
	}

	// 匿名调用允许通过，仅跳过持久化。
	user := currentUser(c)

	resp, err := h.recommendService.Recommend(c.Request.Context(), user, req)
	if err != nil {
		log.Error("Recommend: 处理请求失败", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// currentUser 从上下文中取出可选的已认证用户，匿名调用返回 nil。
func currentUser(c *gin.Context) *model.User {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil
	}
	user, ok := value.(*model.User)
	if !ok {
		return nil
	}
	return user
}
