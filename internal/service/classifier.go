// Package service 包含了应用的业务逻辑层。
package service

import (
	"context"
	"fmt"
	"strings"

	"ai-sales-go/internal/model"
	"ai-sales-go/pkg/llm"
)

// 三个标注阶段的系统指令。每条指令都把模型约束为只输出结果本身。
const (
	qualificationInstruction = "You are an expert lead qualification specialist. Your only task is to classify user messages as 'Qualified' or 'Not Qualified' based on their expressed interest in a product or service. Do not elaborate or provide any other text."

	sentimentInstruction = "You are a sentiment analysis expert. Your task is to analyze the sentiment of the user's message and respond with ONLY 'Positive', 'Negative', or 'Neutral'. Do not elaborate or provide any other text."

	summaryInstruction = "You are a conversation summarization expert. Your task is to provide a concise summary of the given chat messages. Do not elaborate or provide any other text."
)

// classifier 是可复用的标注阶段：固定指令 + 标签闭集。
// labels 为空表示自由文本输出，只要求非空。
type classifier struct {
	instruction string
	labels      []string
}

var (
	qualificationClassifier = classifier{
		instruction: qualificationInstruction,
		labels:      []string{model.QualificationQualified, model.QualificationNotQualified},
	}
	sentimentClassifier = classifier{
		instruction: sentimentInstruction,
		labels:      []string{model.SentimentPositive, model.SentimentNegative, model.SentimentNeutral},
	}
	summaryClassifier = classifier{
		instruction: summaryInstruction,
	}
)

// qualificationPrompt 构造线索资格判定的用户提示，内含正反例以锚定边界。
func qualificationPrompt(utterance string) string {
	return fmt.Sprintf(`Analyze the user's intent from the following message. Based on their interest level in a product or service, respond with ONLY 'Qualified' or 'Not Qualified'.

Qualified Examples:
- "I want to talk about business."
- "I'm interested in purchasing your software."
- "Can you tell me more about your pricing plans?"
- "I'd like to schedule a demo."

Not Qualified Examples:
- "Hi"
- "How are you?"
- "Tell me a joke."
- "I want advice."

User message: "%s"`, utterance)
}

// sentimentPrompt 构造情感判定的用户提示。
func sentimentPrompt(utterance string) string {
	return fmt.Sprintf(`Analyze the sentiment of the following user message. Respond with ONLY 'Positive', 'Negative', or 'Neutral'. User message: "%s"`, utterance)
}

// summaryPrompt 构造摘要提示。reply 必须是追加推销后缀之后的最终回复。
func summaryPrompt(utterance, reply string) string {
	return fmt.Sprintf(`Summarize the following conversation for a quick overview. User message: "%s" | Bot reply: "%s"`, utterance, reply)
}

// run 执行一次分类调用：两条消息（系统指令 + 用户提示），
// 对原始输出去除首尾空白后做标签集校验。
// lenient 为 true 时越界标签按原样放行，对齐历史行为。
func (c classifier) run(ctx context.Context, client llm.Client, prompt string, lenient bool) (string, error) {
	raw, err := client.Complete(ctx, []llm.Message{
		{Role: "system", Content: c.instruction},
		{Role: "user", Content: prompt},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	label := strings.TrimSpace(raw)
	if len(c.labels) == 0 {
		// 自由文本阶段：只要求非空
		if label == "" {
			return "", fmt.Errorf("%w: empty completion", ErrUpstream)
		}
		return label, nil
	}

	for _, want := range c.labels {
		if label == want {
			return label, nil
		}
	}
	if lenient {
		return label, nil
	}
	return "", fmt.Errorf("%w: %q", ErrLabelContract, label)
}
