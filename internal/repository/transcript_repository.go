// Package repository 提供了数据访问层的实现。
package repository

import (
	"context"

	"ai-sales-go/internal/model"

	"gorm.io/gorm"
)

// TranscriptRepository 定义了语音转写记录的操作接口。
type TranscriptRepository interface {
	Create(ctx context.Context, transcript *model.Transcript) error
	FindByUserID(ctx context.Context, userID uint) ([]model.Transcript, error)
}

type transcriptRepository struct {
	db *gorm.DB
}

// NewTranscriptRepository 创建一个新的 TranscriptRepository 实例。
func NewTranscriptRepository(db *gorm.DB) TranscriptRepository {
	return &transcriptRepository{db: db}
}

// Create 持久化一条转写记录。
func (r *transcriptRepository) Create(ctx context.Context, transcript *model.Transcript) error {
	return r.db.WithContext(ctx).Create(transcript).Error
}

// FindByUserID 按创建时间倒序返回某个用户的全部转写记录。
func (r *transcriptRepository) FindByUserID(ctx context.Context, userID uint) ([]model.Transcript, error) {
	var transcripts []model.Transcript
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&transcripts).Error
	if err != nil {
		return nil, err
	}
	return transcripts, nil
}
