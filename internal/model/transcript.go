// Package model 包含了应用的数据模型定义。
package model

import "time"

// Transcript 代表一段通话语音的转写结果。
// ObjectName 指向 MinIO 中保存的原始音频对象。
type Transcript struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"index" json:"userId"`
	Channel    string    `gorm:"size:255" json:"channel"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	ObjectName string    `gorm:"size:255;not null" json:"objectName"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (Transcript) TableName() string {
	return "transcripts"
}
