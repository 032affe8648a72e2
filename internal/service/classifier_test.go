package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"ai-sales-go/pkg/llm"
)

// staticLLM 对所有调用返回同一结果。
type staticLLM struct {
	response string
	err      error
}

func (s *staticLLM) Complete(_ context.Context, _ []llm.Message) (string, error) {
	return s.response, s.err
}

func TestClassifierTrimsWhitespace(t *testing.T) {
	client := &staticLLM{response: "  Qualified \n"}
	label, err := qualificationClassifier.run(context.Background(), client, qualificationPrompt("I want a demo."), false)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if label != "Qualified" {
		t.Errorf("expected trimmed label, got %q", label)
	}
}

func TestClassifierRejectsUnknownLabel(t *testing.T) {
	client := &staticLLM{response: "Somewhat positive"}
	_, err := sentimentClassifier.run(context.Background(), client, sentimentPrompt("hi"), false)
	if !errors.Is(err, ErrLabelContract) {
		t.Fatalf("expected ErrLabelContract, got %v", err)
	}
	if !strings.Contains(err.Error(), "Somewhat positive") {
		t.Errorf("error should name the offending label: %v", err)
	}
}

func TestClassifierLenientPassthrough(t *testing.T) {
	client := &staticLLM{response: "Somewhat positive"}
	label, err := sentimentClassifier.run(context.Background(), client, sentimentPrompt("hi"), true)
	if err != nil {
		t.Fatalf("lenient mode should pass through: %v", err)
	}
	if label != "Somewhat positive" {
		t.Errorf("unexpected label: %q", label)
	}
}

func TestClassifierUpstreamError(t *testing.T) {
	client := &staticLLM{err: errors.New("504 gateway timeout")}
	_, err := qualificationClassifier.run(context.Background(), client, qualificationPrompt("hi"), false)
	if !errors.Is(err, ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
}

func TestSummaryRequiresNonEmptyText(t *testing.T) {
	client := &staticLLM{response: "   "}
	_, err := summaryClassifier.run(context.Background(), client, summaryPrompt("hi", "hello"), false)
	if !errors.Is(err, ErrUpstream) {
		t.Fatalf("expected ErrUpstream for empty summary, got %v", err)
	}

	client.response = "User greeted the bot."
	summary, err := summaryClassifier.run(context.Background(), client, summaryPrompt("hi", "hello"), false)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if summary != "User greeted the bot." {
		t.Errorf("unexpected summary: %q", summary)
	}
}
