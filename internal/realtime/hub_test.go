package realtime

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"ai-sales-go/internal/model"

	"github.com/gorilla/websocket"
)

var testUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// dialHub 建立一条已注册到 Hub 的客户端连接。
func dialHub(t *testing.T, hub *Hub, userID uint) *websocket.Conn {
	t.Helper()

	registered := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := testUpgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade failed: %v", err)
			return
		}
		unregister := hub.Register(userID, conn)
		close(registered)
		defer func() {
			unregister()
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	t.Cleanup(srv.Close)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	select {
	case <-registered:
	case <-time.After(time.Second):
		t.Fatal("connection was not registered in time")
	}
	return conn
}

func readPayload(t *testing.T, conn *websocket.Conn) turnPayload {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	var payload turnPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		t.Fatalf("failed to decode payload: %v", err)
	}
	return payload
}

func TestNotifyTurnReachesOwnConnections(t *testing.T) {
	hub := NewHub()
	conn := dialHub(t, hub, 42)

	hub.NotifyTurn(42, &model.Conversation{ID: 5, UserID: 42, BotReply: "hello"})

	payload := readPayload(t, conn)
	if payload.Type != "conversation" {
		t.Errorf("unexpected payload type: %q", payload.Type)
	}
	if payload.Data == nil || payload.Data.ID != 5 {
		t.Errorf("unexpected payload data: %+v", payload.Data)
	}
}

func TestNotifyTurnNeverBlocksOnStuckPeer(t *testing.T) {
	hub := NewHub()
	// 这条连接从不读取，服务端写缓冲会被大回复填满
	dialHub(t, hub, 42)

	big := strings.Repeat("x", 1<<20)
	done := make(chan struct{})
	go func() {
		for i := 0; i < 64; i++ {
			hub.NotifyTurn(42, &model.Conversation{ID: uint(i + 1), UserID: 42, BotReply: big})
		}
		close(done)
	}()

	// 推送只入队列，卡死的对端被移除，调用方必须立即返回
	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("NotifyTurn blocked on a connection that stopped reading")
	}

	hub.mu.RLock()
	remaining := len(hub.clients[42])
	hub.mu.RUnlock()
	if remaining != 0 {
		t.Errorf("stuck connection should have been removed, %d still registered", remaining)
	}
}

func TestNotifyTurnIsScopedToUser(t *testing.T) {
	hub := NewHub()
	other := dialHub(t, hub, 7)

	// 给另一个用户的推送不能到达这条连接
	hub.NotifyTurn(42, &model.Conversation{ID: 5, UserID: 42})

	other.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	if _, _, err := other.ReadMessage(); err == nil {
		t.Error("connection for user 7 must not receive user 42's turn")
	}
}

func TestSendToDeliversDirectly(t *testing.T) {
	hub := NewHub()
	conn := dialHub(t, hub, 42)

	hub.mu.RLock()
	var registered *client
	for c := range hub.clients[42] {
		registered = c
	}
	hub.mu.RUnlock()
	if registered == nil {
		t.Fatal("no registered client found")
	}

	if err := SendTo(registered.conn, &model.Conversation{ID: 9, UserID: 42}); err != nil {
		t.Fatalf("SendTo failed: %v", err)
	}
	payload := readPayload(t, conn)
	if payload.Data == nil || payload.Data.ID != 9 {
		t.Errorf("unexpected payload data: %+v", payload.Data)
	}
}
