// Package service 包含了应用的业务逻辑层。
package service

import (
	"context"

	"ai-sales-go/internal/config"
	"ai-sales-go/internal/model"
	"ai-sales-go/internal/repository"
	"ai-sales-go/pkg/es"
)

// ConversationService 定义了对话记录查询的接口。
type ConversationService interface {
	GetConversations(ctx context.Context, userID uint) ([]model.Conversation, error)
	SearchConversations(ctx context.Context, userID uint, query string) ([]model.ConversationDocument, error)
}

type conversationService struct {
	repo repository.ConversationRepository
}

// NewConversationService 创建一个新的 ConversationService。
func NewConversationService(repo repository.ConversationRepository) ConversationService {
	return &conversationService{repo: repo}
}

// GetConversations 按创建时间倒序返回用户的全部对话标注记录。
func (s *conversationService) GetConversations(ctx context.Context, userID uint) ([]model.Conversation, error) {
	return s.repo.FindByUserID(ctx, userID)
}

// SearchConversations 在 Elasticsearch 索引中检索用户的对话标注。
func (s *conversationService) SearchConversations(ctx context.Context, userID uint, query string) ([]model.ConversationDocument, error) {
	return es.SearchConversations(ctx, config.Conf.Elasticsearch.IndexName, userID, query, 20)
}
