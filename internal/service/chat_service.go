// Package service 包含了应用的业务逻辑层。
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"ai-sales-go/internal/config"
	"ai-sales-go/internal/model"
	"ai-sales-go/internal/repository"
	"ai-sales-go/pkg/events"
	"ai-sales-go/pkg/llm"
	"ai-sales-go/pkg/log"
)

// ChatService 定义了聊天标注流水线的接口。
type ChatService interface {
	// HandleTurn 处理一轮对话：生成回复、完成三项标注、落库，
	// 返回持久化后的记录。任一阶段失败则整轮失败，不落库。
	HandleTurn(ctx context.Context, userID uint, messages []model.ChatMessage) (*model.Conversation, error)
}

// TurnNotifier 在一轮标注落库后向实时通道推送结果。
type TurnNotifier interface {
	NotifyTurn(userID uint, conversation *model.Conversation)
}

// EventPublisher 将标注事件发布到消息队列，供后台索引器消费。
type EventPublisher func(event events.ConversationAnnotated) error

type chatService struct {
	llmClient        llm.Client
	conversationRepo repository.ConversationRepository
	publish          EventPublisher
	notifier         TurnNotifier
}

// NewChatService 创建一个新的 ChatService 实例。
// publish 和 notifier 允许为 nil（例如测试或单机裁剪部署）。
func NewChatService(llmClient llm.Client, conversationRepo repository.ConversationRepository, publish EventPublisher, notifier TurnNotifier) ChatService {
	return &chatService{
		llmClient:        llmClient,
		conversationRepo: conversationRepo,
		publish:          publish,
		notifier:         notifier,
	}
}

// HandleTurn 串行执行标注流水线。阶段顺序不可调整：
// 摘要的输入依赖资格判定之后的最终回复，并行会破坏该依赖。
func (s *chatService) HandleTurn(ctx context.Context, userID uint, messages []model.ChatMessage) (*model.Conversation, error) {
	// 整轮的总时限，取消会传播到所有在途的网关调用
	if t := config.Conf.LLM.TurnTimeoutSeconds; t > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(t)*time.Second)
		defer cancel()
	}

	utterance := model.LastUserMessage(messages)
	if utterance == "" {
		return nil, ErrInvalidTurn
	}
	lenient := config.Conf.LLM.ClassifierLenient

	// 1. 主回复：先查捷径表，未命中才调用补全网关
	reply, err := s.produceReply(ctx, messages, utterance)
	if err != nil {
		return nil, err
	}

	// 2. 线索资格判定
	qualification, err := qualificationClassifier.run(ctx, s.llmClient, qualificationPrompt(utterance), lenient)
	if err != nil {
		return nil, err
	}

	// 3. Qualified 时追加推销后缀；之后的摘要必须使用追加后的回复
	if qualification == model.QualificationQualified {
		reply += upsellSuffix
	}

	// 4. 情感判定
	sentiment, err := sentimentClassifier.run(ctx, s.llmClient, sentimentPrompt(utterance), lenient)
	if err != nil {
		return nil, err
	}

	// 5. 摘要（自由文本，输入为最终回复）
	summary, err := summaryClassifier.run(ctx, s.llmClient, summaryPrompt(utterance, reply), lenient)
	if err != nil {
		return nil, err
	}

	// 6. 合并落库。返回给调用方的回复与落库的回复必须完全一致。
	conversation := &model.Conversation{
		UserID:            userID,
		UserMessage:       utterance,
		BotReply:          reply,
		LeadQualification: qualification,
		Sentiment:         sentiment,
		Summary:           summary,
		FullChatLog:       model.ChatLog(messages),
	}
	if err := s.conversationRepo.Create(ctx, conversation); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}

	// 7. 落库之后的旁路副作用：缓存、事件、实时推送。
	// 任何失败只记录告警，不影响本轮响应。
	s.afterPersist(conversation)

	return conversation, nil
}

// produceReply 实现回复阶段：捷径表命中直接返回固定文案，
// 否则把完整消息列表转发给补全网关，空内容用固定兜底文案替代。
func (s *chatService) produceReply(ctx context.Context, messages []model.ChatMessage, utterance string) (string, error) {
	if canned, ok := matchCanned(utterance); ok {
		log.Infof("捷径表命中，跳过补全网关: %q", utterance)
		return canned, nil
	}

	llmMsgs := make([]llm.Message, 0, len(messages))
	for _, m := range messages {
		llmMsgs = append(llmMsgs, llm.Message{Role: m.Role, Content: m.Content})
	}
	content, err := s.llmClient.Complete(ctx, llmMsgs)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	if strings.TrimSpace(content) == "" {
		return fallbackReply, nil
	}
	return content, nil
}

// afterPersist 执行落库后的旁路副作用。
func (s *chatService) afterPersist(conversation *model.Conversation) {
	// 使用后台上下文：轮次请求结束后这些副作用仍应完成
	ctx := context.Background()

	if err := s.conversationRepo.CacheLatest(ctx, conversation.UserID, conversation); err != nil {
		log.Warnf("缓存最近一轮失败: userId=%d, error: %v", conversation.UserID, err)
	}

	if s.publish != nil {
		event := events.ConversationAnnotated{
			ConversationID:    conversation.ID,
			UserID:            conversation.UserID,
			UserMessage:       conversation.UserMessage,
			BotReply:          conversation.BotReply,
			LeadQualification: conversation.LeadQualification,
			Sentiment:         conversation.Sentiment,
			Summary:           conversation.Summary,
			CreatedAt:         conversation.CreatedAt.Format(time.RFC3339),
		}
		if err := s.publish(event); err != nil {
			log.Warnf("发布标注事件失败: conversationId=%d, error: %v", conversation.ID, err)
		}
	}

	if s.notifier != nil {
		s.notifier.NotifyTurn(conversation.UserID, conversation)
	}
}
