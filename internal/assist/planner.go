package assist

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sashabaranov/go-openai"
)

const (
	planTimeout     = 30 * time.Second
	planMaxTokens   = 700
	planTemperature = 0.4
)

const (
	defaultBaseURL = "https://api.openai.com/v1"
	defaultModel   = openai.GPT4oMini
)

var ErrNoDrafts = errors.New("assist: no tasks in assistant response")

// TaskDraft is one proposed task from a plan breakdown. Drafts carry no
// deadlines or estimates; the user fills those in before accepting.
type TaskDraft struct {
	Name        string
	Description string
	Subtasks    []string
}

// Planner turns a free-text goal into a list of task drafts using a
// chat-completion backend.
type Planner struct {
	client *openai.Client
	model  string
}

type PlannerConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

func NewPlanner(cfg PlannerConfig) *Planner {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	model := cfg.Model
	if model == "" {
		model = defaultModel
	}

	config := openai.DefaultConfig(cfg.APIKey)
	config.BaseURL = baseURL

	return &Planner{
		client: openai.NewClientWithConfig(config),
		model:  model,
	}
}

// Plan asks the backend to break the goal into tasks. The result is
// all-or-nothing: a response that yields no parseable drafts is an
// error, never a partial import.
func (p *Planner) Plan(ctx context.Context, goal string) ([]TaskDraft, error) {
	ctx, cancel := context.WithTimeout(ctx, planTimeout)
	defer cancel()

	req := openai.ChatCompletionRequest{
		Model:       p.model,
		MaxTokens:   planMaxTokens,
		Temperature: planTemperature,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: planSystemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: fmt.Sprintf("Goal: %s", goal),
			},
		},
	}

	start := time.Now()
	resp, err := p.client.CreateChatCompletion(ctx, req)
	latency := time.Since(start)

	if err != nil {
		slog.Error("plan_generation_failed",
			"model", p.model,
			"error", err,
			"latency_ms", latency.Milliseconds())
		return nil, fmt.Errorf("assist: completion request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("assist: empty response")
	}

	drafts := ParseDrafts(resp.Choices[0].Message.Content)
	if len(drafts) == 0 {
		slog.Warn("plan_parse_empty",
			"model", p.model,
			"content_len", len(resp.Choices[0].Message.Content))
		return nil, ErrNoDrafts
	}

	slog.Debug("plan_generation_success",
		"model", p.model,
		"drafts", len(drafts),
		"latency_ms", latency.Milliseconds(),
		"tokens_total", resp.Usage.TotalTokens)

	return drafts, nil
}

const planSystemPrompt = `You break down goals into concrete tasks for a personal task manager.

Rules:
1. Respond with a numbered list, one task per line: "1. Task name - short description"
2. Use 3 to 7 tasks, each independently completable
3. Optional substeps go on indented lines starting with "-" under their task
4. No preamble, no closing remarks, only the list`
