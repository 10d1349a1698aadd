package agent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/rocketscienceinc/llm-tictactoe/internal/entity"
)

// DefaultOpenAIBaseURL points at the OpenAI compatible endpoint of a local Ollama.
const DefaultOpenAIBaseURL = "http://localhost:11434/v1"

var ErrNoChoices = errors.New("no choices in response")

type OpenAIConfig struct {
	APIKey      string
	Model       string
	BaseURL     string
	Temperature float32
	Timeout     time.Duration
}

// OpenAI asks an OpenAI compatible chat completion endpoint for a move.
type OpenAI struct {
	logger      *slog.Logger
	client      *openai.Client
	model       string
	temperature float32
	timeout     time.Duration
}

func NewOpenAI(logger *slog.Logger, cfg OpenAIConfig) *OpenAI {
	config := openai.DefaultConfig(cfg.APIKey)
	config.BaseURL = cfg.BaseURL
	if config.BaseURL == "" {
		config.BaseURL = DefaultOpenAIBaseURL
	}

	return &OpenAI{
		logger:      logger.With("component", "openai", "model", cfg.Model),
		client:      openai.NewClientWithConfig(config),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		timeout:     cfg.Timeout,
	}
}

func (that *OpenAI) Propose(ctx context.Context, req entity.MoveRequest) (int, error) {
	log := that.logger.With("method", "Propose", "game", req.GameID, "player", req.Player)

	prompt, err := Prompt(req)
	if err != nil {
		return 0, err
	}

	ctx, cancel := withTimeout(ctx, that.timeout)
	defer cancel()

	resp, err := that.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: that.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: that.temperature,
	})
	if err != nil {
		return 0, fmt.Errorf("chat completion failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return 0, ErrNoChoices
	}

	reply := resp.Choices[0].Message.Content
	log.Debug("model replied", "reply", reply)

	return ParseMove(reply)
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, timeout)
}
