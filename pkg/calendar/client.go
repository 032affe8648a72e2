// Package calendar 提供了 Google 日历集成的客户端，包括 OAuth 授权码
// 交换与按需刷新的访问令牌管理。
package calendar

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"ai-sales-go/internal/config"
	"ai-sales-go/pkg/log"
)

const (
	defaultAuthURL         = "https://accounts.google.com/o/oauth2/v2/auth"
	defaultTokenURL        = "https://oauth2.googleapis.com/token"
	defaultCalendarBaseURL = "https://www.googleapis.com/calendar/v3"

	// 授权范围：日历读写 + 账号邮箱
	oauthScopes = "https://www.googleapis.com/auth/calendar https://www.googleapis.com/auth/userinfo.email"

	// 访问令牌剩余有效期低于该阈值时提前刷新
	refreshLeeway = time.Minute
)

// Tokens 是某个用户持有的 Google OAuth 令牌。
type Tokens struct {
	AccessToken  string
	RefreshToken string
	Expiry       *time.Time
}

// TokenStore 抽象了令牌的持久化，由用户仓储实现。
type TokenStore interface {
	GetGoogleTokens(ctx context.Context, userID uint) (*Tokens, error)
	SaveGoogleTokens(ctx context.Context, userID uint, tokens *Tokens) error
}

// Event 描述一次待创建的日历事件。
// Date 格式 "2006-01-02"，Time 格式 "15:04"。
type Event struct {
	Title       string
	Description string
	Date        string
	Time        string
}

// Client 是 Google 日历集成的客户端。
type Client struct {
	cfg    config.GoogleConfig
	store  TokenStore
	client *http.Client
}

// NewClient 创建一个新的日历客户端实例。
func NewClient(cfg config.GoogleConfig, store TokenStore) *Client {
	return &Client{
		cfg:    cfg,
		store:  store,
		client: &http.Client{},
	}
}

func (c *Client) authURL() string {
	if c.cfg.AuthURL != "" {
		return c.cfg.AuthURL
	}
	return defaultAuthURL
}

func (c *Client) tokenURL() string {
	if c.cfg.TokenURL != "" {
		return c.cfg.TokenURL
	}
	return defaultTokenURL
}

func (c *Client) calendarBaseURL() string {
	if c.cfg.CalendarBaseURL != "" {
		return c.cfg.CalendarBaseURL
	}
	return defaultCalendarBaseURL
}

func (c *Client) timezone() string {
	if c.cfg.Timezone != "" {
		return c.cfg.Timezone
	}
	return "America/Los_Angeles"
}

// AuthCodeURL 生成带 state 的授权同意页地址。
// state 携带发起授权的用户 ID，回调时原样带回。
func (c *Client) AuthCodeURL(state string) string {
	params := url.Values{}
	params.Set("client_id", c.cfg.ClientID)
	params.Set("redirect_uri", c.cfg.RedirectURL)
	params.Set("response_type", "code")
	params.Set("scope", oauthScopes)
	params.Set("access_type", "offline")
	params.Set("prompt", "consent")
	params.Set("state", state)
	return c.authURL() + "?" + params.Encode()
}

// tokenResponse 是 Google token 端点的响应体。
type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
}

func (c *Client) postTokenForm(ctx context.Context, form url.Values) (*tokenResponse, error) {
	req, err := http.NewRequestWithContext(ctx, "POST", c.tokenURL(), strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call token endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("token endpoint returned non-200 status: %s, body: %s", resp.Status, string(bodyBytes))
	}

	var tokenResp tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return nil, fmt.Errorf("failed to decode token response: %w", err)
	}
	return &tokenResp, nil
}

// Exchange 用授权码换取令牌并持久化到用户档案。
func (c *Client) Exchange(ctx context.Context, userID uint, code string) error {
	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("code", code)
	form.Set("client_id", c.cfg.ClientID)
	form.Set("client_secret", c.cfg.ClientSecret)
	form.Set("redirect_uri", c.cfg.RedirectURL)

	tokenResp, err := c.postTokenForm(ctx, form)
	if err != nil {
		return err
	}

	expiry := time.Now().Add(time.Duration(tokenResp.ExpiresIn) * time.Second)
	return c.store.SaveGoogleTokens(ctx, userID, &Tokens{
		AccessToken:  tokenResp.AccessToken,
		RefreshToken: tokenResp.RefreshToken,
		Expiry:       &expiry,
	})
}

// authorizedAccessToken 返回一个可用的访问令牌，必要时先刷新并回写。
// 用户未授权或刷新失败时返回错误，调用方降级处理。
func (c *Client) authorizedAccessToken(ctx context.Context, userID uint) (string, error) {
	tokens, err := c.store.GetGoogleTokens(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("failed to load google tokens: %w", err)
	}
	if tokens == nil || tokens.AccessToken == "" || tokens.RefreshToken == "" {
		return "", fmt.Errorf("google tokens not found for user %d", userID)
	}

	// 未过期且剩余有效期充足，直接使用
	if tokens.Expiry != nil && time.Until(*tokens.Expiry) > refreshLeeway {
		return tokens.AccessToken, nil
	}

	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", tokens.RefreshToken)
	form.Set("client_id", c.cfg.ClientID)
	form.Set("client_secret", c.cfg.ClientSecret)

	tokenResp, err := c.postTokenForm(ctx, form)
	if err != nil {
		return "", fmt.Errorf("failed to refresh google access token: %w", err)
	}

	// 刷新响应可能不返回新的 refresh token，保留旧值
	refreshToken := tokenResp.RefreshToken
	if refreshToken == "" {
		refreshToken = tokens.RefreshToken
	}
	expiry := time.Now().Add(time.Duration(tokenResp.ExpiresIn) * time.Second)
	refreshed := &Tokens{
		AccessToken:  tokenResp.AccessToken,
		RefreshToken: refreshToken,
		Expiry:       &expiry,
	}
	if err := c.store.SaveGoogleTokens(ctx, userID, refreshed); err != nil {
		return "", fmt.Errorf("failed to save refreshed google tokens: %w", err)
	}

	return refreshed.AccessToken, nil
}

// calendarEvent 是日历 API 的事件请求体。
type calendarEvent struct {
	Summary     string            `json:"summary"`
	Description string            `json:"description"`
	Start       calendarEventTime `json:"start"`
	End         calendarEventTime `json:"end"`
	Reminders   struct {
		UseDefault bool `json:"useDefault"`
		Overrides  []struct {
			Method  string `json:"method"`
			Minutes int    `json:"minutes"`
		} `json:"overrides"`
	} `json:"reminders"`
}

type calendarEventTime struct {
	DateTime string `json:"dateTime"`
	TimeZone string `json:"timeZone"`
}

// CreateEvent 在用户的主日历上创建一个事件，返回远端事件 ID。
func (c *Client) CreateEvent(ctx context.Context, userID uint, ev Event) (string, error) {
	accessToken, err := c.authorizedAccessToken(ctx, userID)
	if err != nil {
		return "", err
	}

	description := ev.Description
	if description == "" {
		description = "Meeting scheduled via AI Sales Agent"
	}
	when := calendarEventTime{
		DateTime: fmt.Sprintf("%sT%s:00", ev.Date, ev.Time),
		TimeZone: c.timezone(),
	}
	event := calendarEvent{
		Summary:     ev.Title,
		Description: description,
		Start:       when,
		End:         when,
	}
	event.Reminders.UseDefault = false
	event.Reminders.Overrides = []struct {
		Method  string `json:"method"`
		Minutes int    `json:"minutes"`
	}{
		{Method: "email", Minutes: 60},
		{Method: "popup", Minutes: 15},
	}

	eventBytes, err := json.Marshal(event)
	if err != nil {
		return "", fmt.Errorf("failed to marshal calendar event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.calendarBaseURL()+"/calendars/primary/events", bytes.NewReader(eventBytes))
	if err != nil {
		return "", fmt.Errorf("failed to create calendar request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call calendar api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("calendar api returned non-200 status: %s, body: %s", resp.Status, string(bodyBytes))
	}

	var eventResp struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&eventResp); err != nil {
		return "", fmt.Errorf("failed to decode calendar response: %w", err)
	}

	log.Infof("Google 日历事件创建成功: %s", eventResp.ID)
	return eventResp.ID, nil
}
