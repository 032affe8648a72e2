// Package transcribe 提供了一个与托管语音转写服务（whisper 兼容接口）交互的客户端。
package transcribe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"ai-sales-go/internal/config"
)

// Client 是语音转写服务的客户端。
type Client struct {
	cfg    config.TranscriptionConfig
	client *http.Client
}

// NewClient 创建一个新的转写客户端实例。
func NewClient(cfg config.TranscriptionConfig) *Client {
	return &Client{
		cfg:    cfg,
		client: &http.Client{},
	}
}

// Transcribe 上传一段音频并返回转写文本。
func (c *Client) Transcribe(ctx context.Context, fileName string, audio io.Reader) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		return "", fmt.Errorf("failed to create multipart file field: %w", err)
	}
	if _, err := io.Copy(part, audio); err != nil {
		return "", fmt.Errorf("failed to copy audio into request: %w", err)
	}
	model := c.cfg.Model
	if model == "" {
		model = "whisper-1"
	}
	if err := writer.WriteField("model", model); err != nil {
		return "", fmt.Errorf("failed to write model field: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.cfg.BaseURL+"/audio/transcriptions", &body)
	if err != nil {
		return "", fmt.Errorf("failed to create transcription request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call transcription api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("transcription api returned non-200 status: %s, body: %s", resp.Status, string(bodyBytes))
	}

	var transcriptResp struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&transcriptResp); err != nil {
		return "", fmt.Errorf("failed to decode transcription response: %w", err)
	}

	if transcriptResp.Text == "" {
		return "", fmt.Errorf("received empty transcript from api")
	}
	return transcriptResp.Text, nil
}
