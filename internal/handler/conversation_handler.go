// Package handler 包含了处理 HTTP 请求的控制器逻辑。
package handler

import (
	"net/http"

	"ai-sales-go/internal/model"
	"ai-sales-go/internal/service"
	"ai-sales-go/pkg/log"

	"github.com/gin-gonic/gin"
)

// ConversationHandler 处理与对话记录相关的 API 请求。
type ConversationHandler struct {
	service service.ConversationService
}

// NewConversationHandler 创建一个新的 ConversationHandler。
func NewConversationHandler(service service.ConversationService) *ConversationHandler {
	return &ConversationHandler{service: service}
}

// GetConversations 返回当前用户的对话标注记录，按创建时间倒序。
func (h *ConversationHandler) GetConversations(c *gin.Context) {
	user := c.MustGet("user").(*model.User)

	conversations, err := h.service.GetConversations(c.Request.Context(), user.ID)
	if err != nil {
		log.Errorf("查询对话记录失败: userId=%d, error: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve conversations."})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    http.StatusOK,
		"message": "success",
		"data":    conversations,
	})
}

// SearchConversations 在 Elasticsearch 索引中检索当前用户的对话。
func (h *ConversationHandler) SearchConversations(c *gin.Context) {
	user := c.MustGet("user").(*model.User)

	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter 'q' is required"})
		return
	}

	docs, err := h.service.SearchConversations(c.Request.Context(), user.ID, query)
	if err != nil {
		log.Errorf("检索对话失败: userId=%d, error: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search conversations."})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    http.StatusOK,
		"message": "success",
		"data":    docs,
	})
}
