package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"ai-sales-go/internal/config"
	"ai-sales-go/internal/model"
	"ai-sales-go/internal/service"
	"ai-sales-go/pkg/calendar"
	"ai-sales-go/pkg/log"

	"github.com/gin-gonic/gin"
)

// GoogleHandler 负责 Google OAuth 授权流程与日历连接状态查询。
type GoogleHandler struct {
	calendarClient *calendar.Client
	userService    service.UserService
}

// NewGoogleHandler 创建一个新的 GoogleHandler 实例。
func NewGoogleHandler(calendarClient *calendar.Client, userService service.UserService) *GoogleHandler {
	return &GoogleHandler{calendarClient: calendarClient, userService: userService}
}

// Authorize 重定向到 Google 授权页面，state 中携带发起授权的用户 ID。
func (h *GoogleHandler) Authorize(c *gin.Context) {
	user := c.MustGet("user").(*model.User)
	state := strconv.FormatUint(uint64(user.ID), 10)
	c.Redirect(http.StatusFound, h.calendarClient.AuthCodeURL(state))
}

// Callback 处理 Google 的授权回调，交换并保存 token 后跳转回前端。
func (h *GoogleHandler) Callback(c *gin.Context) {
	frontend := config.Conf.Google.FrontendURL

	code := c.Query("code")
	state := c.Query("state")
	if code == "" || state == "" {
		c.Redirect(http.StatusFound, fmt.Sprintf("%s?google=error", frontend))
		return
	}

	userID, err := strconv.ParseUint(state, 10, 64)
	if err != nil {
		log.Warnf("Google callback: invalid state %q", state)
		c.Redirect(http.StatusFound, fmt.Sprintf("%s?google=error", frontend))
		return
	}

	if err := h.calendarClient.Exchange(c.Request.Context(), uint(userID), code); err != nil {
		log.Errorf("Google callback: token exchange failed for userId=%d: %v", userID, err)
		c.Redirect(http.StatusFound, fmt.Sprintf("%s?google=error", frontend))
		return
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("%s?google=connected", frontend))
}

// Status 返回当前用户是否已连接 Google 日历。
func (h *GoogleHandler) Status(c *gin.Context) {
	user := c.MustGet("user").(*model.User)

	connected, err := h.userService.GoogleStatus(user.ID)
	if err != nil {
		log.Errorf("Google status: failed to load user %d: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "无法查询 Google 连接状态"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    http.StatusOK,
		"message": "Success",
		"data":    gin.H{"connected": connected},
	})
}
