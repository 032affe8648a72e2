package handler

import (
	"net/http"

	"ai-sales-go/pkg/log"
	"ai-sales-go/pkg/token"

	"github.com/gin-gonic/gin"
)

// RTCHandler 负责为语音通话签发频道访问令牌。
type RTCHandler struct {
	builder *token.RTCTokenBuilder
}

// NewRTCHandler 创建一个新的 RTCHandler 实例。
func NewRTCHandler(builder *token.RTCTokenBuilder) *RTCHandler {
	return &RTCHandler{builder: builder}
}

// Token 根据 channel 与 uid 查询参数签发一个限时令牌。
func (h *RTCHandler) Token(c *gin.Context) {
	channel := c.Query("channel")
	uid := c.Query("uid")
	if channel == "" || uid == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "channel 和 uid 查询参数不能为空"})
		return
	}

	if h.builder == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "RTC 凭证未配置"})
		return
	}

	rtcToken, err := h.builder.BuildToken(channel, uid)
	if err != nil {
		log.Errorf("签发 RTC 令牌失败: channel=%s, uid=%s, error: %v", channel, uid, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "签发令牌失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    http.StatusOK,
		"message": "Success",
		"data":    gin.H{"token": rtcToken, "channel": channel, "uid": uid},
	})
}
