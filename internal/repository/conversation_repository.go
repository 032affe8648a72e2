// Package repository 提供了数据访问层的实现。
package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ai-sales-go/internal/model"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// ConversationRepository 定义了对话标注记录的操作接口。
// 记录只追加，按创建时间倒序查询；Redis 侧缓存每个用户最近一轮，
// 供实时推送通道在连接建立时重发。
type ConversationRepository interface {
	Create(ctx context.Context, conversation *model.Conversation) error
	FindByUserID(ctx context.Context, userID uint) ([]model.Conversation, error)
	CacheLatest(ctx context.Context, userID uint, conversation *model.Conversation) error
	GetCachedLatest(ctx context.Context, userID uint) (*model.Conversation, error)
}

type conversationRepository struct {
	db          *gorm.DB
	redisClient *redis.Client
}

// NewConversationRepository 创建一个新的 ConversationRepository 实例。
func NewConversationRepository(db *gorm.DB, redisClient *redis.Client) ConversationRepository {
	return &conversationRepository{db: db, redisClient: redisClient}
}

func latestTurnKey(userID uint) string {
	return fmt.Sprintf("user:%d:latest_turn", userID)
}

// Create 追加一条对话标注记录。
func (r *conversationRepository) Create(ctx context.Context, conversation *model.Conversation) error {
	return r.db.WithContext(ctx).Create(conversation).Error
}

// FindByUserID 按创建时间倒序返回某个用户的全部对话记录。
func (r *conversationRepository) FindByUserID(ctx context.Context, userID uint) ([]model.Conversation, error) {
	var conversations []model.Conversation
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&conversations).Error
	if err != nil {
		return nil, err
	}
	return conversations, nil
}

// CacheLatest 在 Redis 中缓存用户最近一轮的标注结果。
func (r *conversationRepository) CacheLatest(ctx context.Context, userID uint, conversation *model.Conversation) error {
	jsonData, err := json.Marshal(conversation)
	if err != nil {
		return fmt.Errorf("failed to marshal latest conversation: %w", err)
	}
	if err := r.redisClient.Set(ctx, latestTurnKey(userID), jsonData, 7*24*time.Hour).Err(); err != nil {
		return fmt.Errorf("failed to cache latest conversation: %w", err)
	}
	return nil
}

// GetCachedLatest 返回缓存的最近一轮，没有缓存时返回 (nil, nil)。
func (r *conversationRepository) GetCachedLatest(ctx context.Context, userID uint) (*model.Conversation, error) {
	jsonData, err := r.redisClient.Get(ctx, latestTurnKey(userID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cached conversation: %w", err)
	}
	var conversation model.Conversation
	if err := json.Unmarshal([]byte(jsonData), &conversation); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached conversation: %w", err)
	}
	return &conversation, nil
}
