// Package handler 包含了处理 HTTP 请求的控制器逻辑。
package handler

import (
	"errors"
	"net/http"

	"ai-sales-go/internal/model"
	"ai-sales-go/internal/service"
	"ai-sales-go/pkg/log"

	"github.com/gin-gonic/gin"
)

// ChatHandler 负责处理聊天挂件的标注流水线请求。
type ChatHandler struct {
	chatService service.ChatService
}

// NewChatHandler 创建一个新的 ChatHandler。
func NewChatHandler(chatService service.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// ChatRequest 定义了聊天 API 的请求体结构。
// 挂件面向终端访客，不走登录态，userId 标识挂件归属的账号。
type ChatRequest struct {
	Messages []model.ChatMessage `json:"messages" binding:"required"`
	UserID   uint                `json:"userId" binding:"required"`
}

// Chat 处理一轮聊天：校验入参，交给标注流水线，按错误类别映射响应。
func (h *ChatHandler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Messages array and user ID are required."})
		return
	}
	if len(req.Messages) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Messages array is required"})
		return
	}

	conversation, err := h.chatService.HandleTurn(c.Request.Context(), req.UserID, req.Messages)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidTurn):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Messages array is required"})
		case errors.Is(err, service.ErrStore):
			// 回复已生成但未被记录，与上游失败区分开
			log.Errorf("保存对话记录失败: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save conversation."})
		default:
			log.Errorf("聊天标注流水线失败: %v", err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "Something went wrong with the chat processing."})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reply":          conversation.BotReply,
		"conversationId": conversation.ID,
	})
}
