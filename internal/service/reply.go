// Package service 包含了应用的业务逻辑层。
package service

import "strings"

// 固定回复文案。
const (
	creatorReply = "I was created by the team ByteKnights. Members were Pranav Sharma, Kashvi Pratap Singh, and Kush Arora."
	nameReply    = "My name is Eli."

	// fallbackReply 在补全网关返回空内容时替代。
	fallbackReply = "No response generated."

	// upsellSuffix 在线索判定为 Qualified 时追加到回复末尾。
	upsellSuffix = "\n\nGreat news! Based on our conversation, you appear to be a qualified lead. Would you like me to help you schedule a follow-up meeting?"
)

// cannedReply 是捷径表的一项：谓词命中即返回固定回复，不调用补全网关。
type cannedReply struct {
	match func(lowered string) bool
	reply string
}

func containsAny(phrases ...string) func(string) bool {
	return func(lowered string) bool {
		for _, p := range phrases {
			if strings.Contains(lowered, p) {
				return true
			}
		}
		return false
	}
}

// cannedReplies 是有序的 (谓词, 固定回复) 捷径表，首个命中生效。
var cannedReplies = []cannedReply{
	{match: containsAny("who created you"), reply: creatorReply},
	{match: containsAny("your name", "who are you", "what is your name"), reply: nameReply},
}

// matchCanned 对最近一条用户消息做大小写不敏感的捷径匹配。
func matchCanned(utterance string) (string, bool) {
	lowered := strings.ToLower(utterance)
	for _, c := range cannedReplies {
		if c.match(lowered) {
			return c.reply, true
		}
	}
	return "", false
}
