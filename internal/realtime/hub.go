// Package realtime 实现了向控制台浏览器推送标注结果的 WebSocket 通道。
package realtime

import (
	"encoding/json"
	"sync"
	"time"

	"ai-sales-go/internal/model"
	"ai-sales-go/pkg/log"

	"github.com/gorilla/websocket"
)

const (
	// writeWait 是单次 WebSocket 写入的最长耗时，超时即判定连接不可用。
	writeWait = 10 * time.Second

	// sendBuffer 是每条连接的待推送队列长度，队列满即判定客户端过慢。
	sendBuffer = 16
)

// client 是一条已注册的 WebSocket 连接。
// 推送先入队列，由独立的写协程串行写出，
// 聊天轮次的调用方永远不会停在网络写上。
type client struct {
	conn *websocket.Conn
	send chan []byte
}

// writePump 串行消费队列并写出，写失败或超时即退出并关闭连接。
func (c *client) writePump() {
	defer c.conn.Close()
	for data := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Warnf("WebSocket 写入失败，连接将被关闭: %v", err)
			return
		}
	}
}

// Hub 按用户维护所有在线的控制台连接。
type Hub struct {
	mu      sync.RWMutex
	clients map[uint]map[*client]struct{}
}

// NewHub 创建一个新的 Hub。
func NewHub() *Hub {
	return &Hub{clients: make(map[uint]map[*client]struct{})}
}

// Register 注册一条连接并启动它的写协程，返回对应的注销函数。
func (h *Hub) Register(userID uint, conn *websocket.Conn) func() {
	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}
	h.mu.Lock()
	if h.clients[userID] == nil {
		h.clients[userID] = make(map[*client]struct{})
	}
	h.clients[userID][c] = struct{}{}
	h.mu.Unlock()

	go c.writePump()

	return func() { h.remove(userID, c) }
}

// remove 将连接移出 Hub 并恰好关闭一次它的发送队列。
func (h *Hub) remove(userID uint, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.clients[userID]
	if !ok {
		return
	}
	if _, ok := set[c]; !ok {
		return
	}
	delete(set, c)
	if len(set) == 0 {
		delete(h.clients, userID)
	}
	close(c.send)
}

// turnPayload 是推送到浏览器的消息格式。
type turnPayload struct {
	Type string              `json:"type"`
	Data *model.Conversation `json:"data"`
}

// NotifyTurn 将一轮标注结果投递给该用户所有在线连接的发送队列。
// 队列已满的连接视为过慢并被移除；本方法从不等待网络写，
// 聊天轮次的响应不受任何一条连接的状态影响。
// 实现 service.TurnNotifier。
func (h *Hub) NotifyTurn(userID uint, conversation *model.Conversation) {
	data, err := json.Marshal(turnPayload{Type: "conversation", Data: conversation})
	if err != nil {
		log.Errorf("序列化标注推送失败: %v", err)
		return
	}

	h.mu.RLock()
	conns := make([]*client, 0, len(h.clients[userID]))
	for c := range h.clients[userID] {
		conns = append(conns, c)
	}
	h.mu.RUnlock()

	for _, c := range conns {
		select {
		case c.send <- data:
		default:
			log.Warnf("推送队列已满，移除过慢的连接: userId=%d", userID)
			h.remove(userID, c)
		}
	}
}

// SendTo 向单条连接直接写入一轮标注结果，用于连接建立时的重发。
func SendTo(conn *websocket.Conn, conversation *model.Conversation) error {
	data, err := json.Marshal(turnPayload{Type: "conversation", Data: conversation})
	if err != nil {
		return err
	}
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteMessage(websocket.TextMessage, data)
}
