package calendar

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"ai-sales-go/internal/config"
)

// memoryTokenStore 把令牌保存在内存中，供测试使用。
type memoryTokenStore struct {
	tokens map[uint]*Tokens
}

func newMemoryTokenStore() *memoryTokenStore {
	return &memoryTokenStore{tokens: make(map[uint]*Tokens)}
}

func (s *memoryTokenStore) GetGoogleTokens(_ context.Context, userID uint) (*Tokens, error) {
	return s.tokens[userID], nil
}

func (s *memoryTokenStore) SaveGoogleTokens(_ context.Context, userID uint, tokens *Tokens) error {
	s.tokens[userID] = tokens
	return nil
}

func TestAuthCodeURLCarriesState(t *testing.T) {
	client := NewClient(config.GoogleConfig{
		ClientID:    "cid",
		RedirectURL: "http://localhost:8080/api/v1/google/callback",
	}, newMemoryTokenStore())

	u := client.AuthCodeURL("42")
	for _, want := range []string{"client_id=cid", "state=42", "access_type=offline", "prompt=consent"} {
		if !strings.Contains(u, want) {
			t.Errorf("auth URL missing %q: %s", want, u)
		}
	}
}

func TestExchangeSavesTokens(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Fatalf("failed to parse form: %v", err)
		}
		if got := r.Form.Get("grant_type"); got != "authorization_code" {
			t.Errorf("unexpected grant_type: %q", got)
		}
		if got := r.Form.Get("code"); got != "auth-code" {
			t.Errorf("unexpected code: %q", got)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"access_token":  "at-1",
			"refresh_token": "rt-1",
			"expires_in":    3600,
		})
	}))
	defer srv.Close()

	store := newMemoryTokenStore()
	client := NewClient(config.GoogleConfig{TokenURL: srv.URL}, store)

	if err := client.Exchange(context.Background(), 7, "auth-code"); err != nil {
		t.Fatalf("Exchange failed: %v", err)
	}
	saved := store.tokens[7]
	if saved == nil || saved.AccessToken != "at-1" || saved.RefreshToken != "rt-1" {
		t.Fatalf("unexpected saved tokens: %+v", saved)
	}
	if saved.Expiry == nil || time.Until(*saved.Expiry) < 55*time.Minute {
		t.Errorf("expiry not set from expires_in: %v", saved.Expiry)
	}
}

func TestCreateEventRefreshesExpiredToken(t *testing.T) {
	var refreshCalls int
	tokenSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		refreshCalls++
		if err := r.ParseForm(); err != nil {
			t.Fatalf("failed to parse form: %v", err)
		}
		if got := r.Form.Get("grant_type"); got != "refresh_token" {
			t.Errorf("unexpected grant_type: %q", got)
		}
		// 刷新响应不带新的 refresh token，客户端必须保留旧值
		json.NewEncoder(w).Encode(map[string]interface{}{
			"access_token": "at-fresh",
			"expires_in":   3600,
		})
	}))
	defer tokenSrv.Close()

	var gotAuth string
	calendarSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		var ev calendarEvent
		if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
			t.Fatalf("failed to decode event: %v", err)
		}
		if ev.Start.DateTime != "2026-09-15T14:30:00" {
			t.Errorf("unexpected start: %q", ev.Start.DateTime)
		}
		if ev.End != ev.Start {
			t.Errorf("end must equal start, got %+v", ev.End)
		}
		json.NewEncoder(w).Encode(map[string]string{"id": "evt_789"})
	}))
	defer calendarSrv.Close()

	store := newMemoryTokenStore()
	expired := time.Now().Add(-time.Minute)
	store.tokens[7] = &Tokens{AccessToken: "at-stale", RefreshToken: "rt-old", Expiry: &expired}

	client := NewClient(config.GoogleConfig{
		TokenURL:        tokenSrv.URL,
		CalendarBaseURL: calendarSrv.URL,
	}, store)

	eventID, err := client.CreateEvent(context.Background(), 7, Event{
		Title: "Demo call",
		Date:  "2026-09-15",
		Time:  "14:30",
	})
	if err != nil {
		t.Fatalf("CreateEvent failed: %v", err)
	}
	if eventID != "evt_789" {
		t.Errorf("unexpected event id: %q", eventID)
	}
	if refreshCalls != 1 {
		t.Errorf("expected 1 refresh call, got %d", refreshCalls)
	}
	if gotAuth != "Bearer at-fresh" {
		t.Errorf("calendar call must use the refreshed token, got %q", gotAuth)
	}
	if store.tokens[7].RefreshToken != "rt-old" {
		t.Errorf("old refresh token must be kept, got %q", store.tokens[7].RefreshToken)
	}
}

func TestCreateEventWithoutAuthorization(t *testing.T) {
	client := NewClient(config.GoogleConfig{}, newMemoryTokenStore())
	_, err := client.CreateEvent(context.Background(), 99, Event{Title: "x", Date: "2026-01-01", Time: "10:00"})
	if err == nil {
		t.Fatal("expected error for a user with no tokens")
	}
}
