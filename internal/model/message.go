// Package model 包含了应用的数据模型定义。
package model

// ChatMessage 代表对话记录中的单条角色消息。
// Role 取值为 "user"、"assistant" 或 "system"；顺序即对话顺序，
// 最后一条 user 消息驱动全部标注阶段。
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// LastUserMessage 返回消息列表中最后一条 user 消息的内容。
// 列表为空或没有 user 消息时返回空字符串。
func LastUserMessage(messages []ChatMessage) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == "user" {
			return messages[i].Content
		}
	}
	return ""
}
