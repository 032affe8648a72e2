// Package service 包含了应用的业务逻辑层。
package service

import "errors"

// 聊天轮次的错误分类。handler 依据这些哨兵错误映射 HTTP 状态：
// 入参问题为 400，上游依赖（补全网关、分类器契约）为 502，
// 持久化失败为 500 且与上游失败可区分——回复已经生成但未被记录。
var (
	// ErrInvalidTurn 表示消息列表里没有可用的用户消息。
	ErrInvalidTurn = errors.New("transcript contains no user message")

	// ErrUpstream 表示补全网关不可达、返回非 200 或返回了无法使用的内容。
	ErrUpstream = errors.New("completion gateway request failed")

	// ErrLabelContract 表示分类器返回了声明标签集之外的文本。
	// 严格模式下按上游契约违规处理，不会把越界标签落库。
	ErrLabelContract = errors.New("classifier returned a label outside its declared set")

	// ErrStore 表示标注已全部生成但持久化失败，本轮回复未被记录。
	ErrStore = errors.New("conversation could not be recorded")
)
