package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"ai-sales-go/internal/model"
	"ai-sales-go/internal/service"

	"github.com/gin-gonic/gin"
)

type stubChatService struct {
	conversation *model.Conversation
	err          error
	gotUserID    uint
	gotMessages  []model.ChatMessage
}

func (s *stubChatService) HandleTurn(_ context.Context, userID uint, messages []model.ChatMessage) (*model.Conversation, error) {
	s.gotUserID = userID
	s.gotMessages = messages
	return s.conversation, s.err
}

func chatRouter(svc service.ChatService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/v1/chat", NewChatHandler(svc).Chat)
	return r
}

func postChat(t *testing.T, r *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestChatEndpointSuccess(t *testing.T) {
	svc := &stubChatService{conversation: &model.Conversation{
		ID:       12,
		BotReply: "We offer three plans.",
	}}
	r := chatRouter(svc)

	w := postChat(t, r, `{"userId":42,"messages":[{"role":"user","content":"Tell me about pricing."}]}`)
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d, body: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Reply          string `json:"reply"`
		ConversationID uint   `json:"conversationId"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Reply != "We offer three plans." || resp.ConversationID != 12 {
		t.Errorf("unexpected response: %+v", resp)
	}
	if svc.gotUserID != 42 || len(svc.gotMessages) != 1 {
		t.Errorf("service received wrong arguments: userID=%d, messages=%v", svc.gotUserID, svc.gotMessages)
	}
}

func TestChatEndpointValidation(t *testing.T) {
	r := chatRouter(&stubChatService{})

	for _, body := range []string{
		`{}`,
		`{"userId":42}`,
		`{"userId":42,"messages":[]}`,
		`not json`,
	} {
		if w := postChat(t, r, body); w.Code != http.StatusBadRequest {
			t.Errorf("body %q: expected 400, got %d", body, w.Code)
		}
	}
}

func TestChatEndpointErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"invalid turn", service.ErrInvalidTurn, http.StatusBadRequest},
		{"upstream failure", service.ErrUpstream, http.StatusBadGateway},
		{"label violation", service.ErrLabelContract, http.StatusBadGateway},
		{"store failure", service.ErrStore, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := chatRouter(&stubChatService{err: tc.err})
			w := postChat(t, r, `{"userId":1,"messages":[{"role":"user","content":"hi"}]}`)
			if w.Code != tc.want {
				t.Errorf("expected %d, got %d", tc.want, w.Code)
			}
		})
	}
}
