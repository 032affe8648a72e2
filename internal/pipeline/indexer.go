// Package pipeline 包含了后台事件处理管道。
package pipeline

import (
	"context"

	"ai-sales-go/internal/config"
	"ai-sales-go/internal/model"
	"ai-sales-go/pkg/es"
	"ai-sales-go/pkg/events"
	"ai-sales-go/pkg/log"
)

// Indexer 消费对话标注事件并写入 Elasticsearch，
// 为控制台的对话检索提供数据。实现 kafka.EventProcessor。
type Indexer struct {
	esCfg config.ElasticsearchConfig
}

// NewIndexer 创建一个新的 Indexer 实例。
func NewIndexer(esCfg config.ElasticsearchConfig) *Indexer {
	return &Indexer{esCfg: esCfg}
}

// Process 将一条标注事件转换为检索文档并索引。
func (ix *Indexer) Process(ctx context.Context, event events.ConversationAnnotated) error {
	doc := model.ConversationDocument{
		ConversationID:    event.ConversationID,
		UserID:            event.UserID,
		UserMessage:       event.UserMessage,
		BotReply:          event.BotReply,
		LeadQualification: event.LeadQualification,
		Sentiment:         event.Sentiment,
		Summary:           event.Summary,
		CreatedAt:         event.CreatedAt,
	}
	if err := es.IndexConversation(ctx, ix.esCfg.IndexName, doc); err != nil {
		return err
	}
	log.Infof("对话标注已索引: conversationId=%d", event.ConversationID)
	return nil
}
