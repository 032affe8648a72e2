package handler

import (
	"net/http"

	"ai-sales-go/internal/realtime"
	"ai-sales-go/internal/repository"
	"ai-sales-go/pkg/log"
	"ai-sales-go/pkg/token"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var feedUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// 控制台前端与 API 可能部署在不同域名下
	CheckOrigin: func(r *http.Request) bool { return true },
}

// FeedHandler 负责控制台实时推送通道的 WebSocket 接入。
type FeedHandler struct {
	hub              *realtime.Hub
	jwtManager       *token.JWTManager
	conversationRepo repository.ConversationRepository
}

// NewFeedHandler 创建一个新的 FeedHandler 实例。
func NewFeedHandler(hub *realtime.Hub, jwtManager *token.JWTManager, conversationRepo repository.ConversationRepository) *FeedHandler {
	return &FeedHandler{hub: hub, jwtManager: jwtManager, conversationRepo: conversationRepo}
}

// Feed 将连接升级为 WebSocket 并注册到 Hub。
// 浏览器的 WebSocket API 无法自定义请求头，token 放在路径参数中。
func (h *FeedHandler) Feed(c *gin.Context) {
	claims, err := h.jwtManager.VerifyToken(c.Param("token"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "无效的 token"})
		return
	}

	conn, err := feedUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Errorf("WebSocket 升级失败: userId=%d, error: %v", claims.UserID, err)
		return
	}

	unregister := h.hub.Register(claims.UserID, conn)
	defer func() {
		unregister()
		conn.Close()
	}()

	// 断线重连时补发最近一轮，避免错过推送
	if latest, err := h.conversationRepo.GetCachedLatest(c.Request.Context(), claims.UserID); err != nil {
		log.Warnf("读取最近一轮缓存失败: userId=%d, error: %v", claims.UserID, err)
	} else if latest != nil {
		if err := realtime.SendTo(conn, latest); err != nil {
			log.Warnf("补发最近一轮失败: userId=%d, error: %v", claims.UserID, err)
		}
	}

	// 读循环只用于感知对端关闭
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
