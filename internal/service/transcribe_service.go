// Package service 包含了应用的业务逻辑层。
package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"

	"ai-sales-go/internal/model"
	"ai-sales-go/internal/repository"
	"ai-sales-go/pkg/log"

	"github.com/google/uuid"
)

// Transcriber 抽象了托管语音转写服务。
type Transcriber interface {
	Transcribe(ctx context.Context, fileName string, audio io.Reader) (string, error)
}

// ObjectStore 抽象了音频对象的存储。
type ObjectStore interface {
	Put(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) error
}

// TranscribeService 定义了语音转写的业务接口。
type TranscribeService interface {
	// TranscribeVoiceNote 保存音频对象、调用转写服务并持久化转写记录。
	// 对象存储失败只降级（记录无对象引用）；转写失败或落库失败都使本次请求失败。
	TranscribeVoiceNote(ctx context.Context, userID uint, channel, fileName string, audio io.Reader, contentType string) (*model.Transcript, error)

	// GetTranscripts 返回用户的全部转写记录，按创建时间倒序。
	GetTranscripts(ctx context.Context, userID uint) ([]model.Transcript, error)
}

type transcribeService struct {
	repo        repository.TranscriptRepository
	transcriber Transcriber
	objects     ObjectStore
}

// NewTranscribeService 创建一个新的 TranscribeService 实例。
// objects 允许为 nil（未配置对象存储时跳过音频留存）。
func NewTranscribeService(repo repository.TranscriptRepository, transcriber Transcriber, objects ObjectStore) TranscribeService {
	return &transcribeService{
		repo:        repo,
		transcriber: transcriber,
		objects:     objects,
	}
}

// TranscribeVoiceNote 执行 留存 → 转写 → 落库 的顺序流程。
func (s *transcribeService) TranscribeVoiceNote(ctx context.Context, userID uint, channel, fileName string, audio io.Reader, contentType string) (*model.Transcript, error) {
	// 音频要被读两次（对象存储 + 转写），先整体读入
	data, err := io.ReadAll(audio)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio: %w", err)
	}

	objectName := ""
	if s.objects != nil {
		objectName = uuid.New().String() + filepath.Ext(fileName)
		if err := s.objects.Put(ctx, objectName, bytes.NewReader(data), int64(len(data)), contentType); err != nil {
			log.Warnf("留存音频对象失败，转写继续: %s, error: %v", objectName, err)
			objectName = ""
		}
	}

	content, err := s.transcriber.Transcribe(ctx, fileName, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	transcript := &model.Transcript{
		UserID:     userID,
		Channel:    channel,
		Content:    content,
		ObjectName: objectName,
	}
	if err := s.repo.Create(ctx, transcript); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}
	return transcript, nil
}

// GetTranscripts 返回用户的全部转写记录。
func (s *transcribeService) GetTranscripts(ctx context.Context, userID uint) ([]model.Transcript, error) {
	return s.repo.FindByUserID(ctx, userID)
}
