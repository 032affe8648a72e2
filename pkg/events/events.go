// Package events 定义了通过 Kafka 传递的事件结构。
package events

// ConversationAnnotated 是一轮聊天完成标注并落库后发布的事件，
// 由后台索引器消费写入 Elasticsearch。
type ConversationAnnotated struct {
	ConversationID    uint   `json:"conversationId"`
	UserID            uint   `json:"userId"`
	UserMessage       string `json:"userMessage"`
	BotReply          string `json:"botReply"`
	LeadQualification string `json:"leadQualification"`
	Sentiment         string `json:"sentiment"`
	Summary           string `json:"summary"`
	// CreatedAt 为 RFC3339 格式
	CreatedAt string `json:"createdAt"`
}
