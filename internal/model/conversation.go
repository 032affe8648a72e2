// Package model 包含了应用的数据模型定义。
package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// 归一化后的标注标签闭集。orchestrator 在落库前必须保证
// LeadQualification 与 Sentiment 落在各自集合内。
const (
	QualificationQualified    = "Qualified"
	QualificationNotQualified = "Not Qualified"

	SentimentPositive = "Positive"
	SentimentNegative = "Negative"
	SentimentNeutral  = "Neutral"
)

// ChatLog 是完整的对话消息序列，以 JSON 形式存储在数据库中。
type ChatLog []ChatMessage

// Value 实现 driver.Valuer，将消息序列序列化为 JSON。
func (l ChatLog) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan 实现 sql.Scanner，从 JSON 列恢复消息序列。
func (l *ChatLog) Scan(value interface{}) error {
	if value == nil {
		*l = ChatLog{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New("unsupported chat log column type")
	}
	return json.Unmarshal(data, l)
}

// Conversation 代表一轮聊天的标注结果，创建后不可变。
type Conversation struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	UserID            uint      `gorm:"index;not null" json:"userId"`
	UserMessage       string    `gorm:"type:text;not null" json:"userMessage"`
	BotReply          string    `gorm:"type:text;not null" json:"botReply"`
	LeadQualification string    `gorm:"size:32;not null" json:"leadQualification"`
	Sentiment         string    `gorm:"size:16;not null" json:"sentiment"`
	Summary           string    `gorm:"type:text;not null" json:"summary"`
	FullChatLog       ChatLog   `gorm:"type:json" json:"fullChatLog"`
	CreatedAt         time.Time `gorm:"autoCreateTime;index" json:"createdAt"`
}

func (Conversation) TableName() string {
	return "conversations"
}
