// Package model 包含了应用的数据模型定义。
package model

// ConversationDocument 是写入 Elasticsearch 的对话标注文档，
// 供控制台的对话检索使用。
type ConversationDocument struct {
	ConversationID    uint   `json:"conversation_id"`
	UserID            uint   `json:"user_id"`
	UserMessage       string `json:"user_message"`
	BotReply          string `json:"bot_reply"`
	LeadQualification string `json:"lead_qualification"`
	Sentiment         string `json:"sentiment"`
	Summary           string `json:"summary"`
	CreatedAt         string `json:"created_at"`
}
