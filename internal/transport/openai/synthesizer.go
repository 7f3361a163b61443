// Package openai synthesizes answers through an OpenAI-compatible
// chat-completion API (e.g. OpenRouter).
package openai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/kailas-cloud/memvid-gateway/internal/domain"
)

const systemPrompt = "You answer questions about a candidate's resume. " +
	"Use only the provided context sections. If the context does not contain " +
	"the answer, say so briefly."

// Synthesizer produces answers from retrieved evidence via chat completion.
type Synthesizer struct {
	client   *openai.Client
	model    string
	provider string
	logger   *zap.Logger
}

// Config holds the completion provider settings.
type Config struct {
	APIKey   string
	BaseURL  string
	Model    string
	Provider string
	Logger   *zap.Logger
}

// NewSynthesizer creates an OpenAI-compatible answer synthesizer.
func NewSynthesizer(cfg *Config) *Synthesizer {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Synthesizer{
		client:   openai.NewClientWithConfig(clientCfg),
		model:    cfg.Model,
		provider: cfg.Provider,
		logger:   logger,
	}
}

// Synthesize asks the model to answer the question from the evidence.
func (s *Synthesizer) Synthesize(ctx context.Context, question string, evidence []domain.SearchResult) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: buildPrompt(question, evidence)},
		},
	}

	start := time.Now()
	resp, err := s.client.CreateChatCompletion(ctx, req)
	duration := time.Since(start)

	if err != nil {
		return "", parseAPIError(err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty completion response from %s", s.provider)
	}

	answer := strings.TrimSpace(resp.Choices[0].Message.Content)

	s.logger.Debug("answer synthesized",
		zap.String("provider", s.provider),
		zap.String("model", s.model),
		zap.Duration("duration", duration),
		zap.Int("completion_tokens", resp.Usage.CompletionTokens),
	)
	return answer, nil
}

// buildPrompt numbers the evidence sections so the model can cite them.
func buildPrompt(question string, evidence []domain.SearchResult) string {
	var sb strings.Builder
	sb.WriteString("Context sections:\n\n")
	for i, e := range evidence {
		fmt.Fprintf(&sb, "[%d] %s\n%s\n\n", i+1, e.Title, e.Snippet)
	}
	sb.WriteString("Question: ")
	sb.WriteString(question)
	return sb.String()
}

// parseAPIError extracts a human-readable error from the API response.
func parseAPIError(err error) error {
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return fmt.Errorf("completion API error %d: %w", reqErr.HTTPStatusCode, err)
	}
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("completion API error: %s: %w", apiErr.Message, err)
	}
	return fmt.Errorf("completion request: %w", err)
}
