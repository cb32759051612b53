package gateway

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"
)

// Config holds connection settings for the OpenAI-compatible backend.
type Config struct {
	BaseURL      string // OpenAI-compatible endpoint (works for Gemini's compat layer too)
	APIKey       string
	DefaultModel string
	MaxTokens    int // default completion cap when Options.MaxTokens is zero
}

// OpenAIGateway talks to any OpenAI-compatible chat endpoint through
// langchaingo. One blocking round-trip per Complete call.
type OpenAIGateway struct {
	llm    *openai.LLM
	config Config
	logger zerolog.Logger
}

// NewOpenAIGateway creates a gateway for the configured backend.
func NewOpenAIGateway(cfg Config, logger zerolog.Logger) (*OpenAIGateway, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gateway API key is empty")
	}
	if cfg.DefaultModel == "" {
		return nil, fmt.Errorf("gateway default model is empty")
	}

	opts := []openai.Option{
		openai.WithToken(cfg.APIKey),
		openai.WithModel(cfg.DefaultModel),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
	}

	llm, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create backend client: %w", err)
	}

	return &OpenAIGateway{llm: llm, config: cfg, logger: logger}, nil
}

// Complete sends one (system, user) pair and returns the model text. Any
// backend failure is folded into a readable message so downstream plain-text
// handling keeps working; structured callers detect it by failing the parse.
func (g *OpenAIGateway) Complete(ctx context.Context, system, user string, opts Options) (string, error) {
	model := opts.Model
	if model == "" {
		model = g.config.DefaultModel
	}
	maxTokens := opts.MaxTokens
	if maxTokens <= 0 {
		maxTokens = g.config.MaxTokens
	}

	messages := []llms.MessageContent{
		llms.TextParts(schema.ChatMessageTypeSystem, system),
		llms.TextParts(schema.ChatMessageTypeHuman, user),
	}

	start := time.Now()
	resp, err := g.llm.GenerateContent(ctx, messages,
		llms.WithModel(model),
		llms.WithTemperature(float64(opts.Temperature)),
		llms.WithMaxTokens(maxTokens),
	)
	if err != nil {
		g.logger.Error().Err(err).Str("model", model).Msg("gateway call failed")
		return fmt.Sprintf("An error occurred while contacting the model backend: %v", err), nil
	}

	if len(resp.Choices) == 0 {
		g.logger.Error().Str("model", model).Msg("gateway returned no choices")
		return "An error occurred while contacting the model backend: empty response", nil
	}

	text := strings.TrimSpace(resp.Choices[0].Content)
	g.logger.Debug().
		Str("model", model).
		Float32("temperature", opts.Temperature).
		Dur("duration", time.Since(start)).
		Int("response_chars", len(text)).
		Msg("gateway completion")

	return text, nil
}

// Ensure OpenAIGateway implements the Gateway interface.
var _ Gateway = (*OpenAIGateway)(nil)
