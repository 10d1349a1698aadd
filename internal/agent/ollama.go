package agent

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"

	"github.com/rocketscienceinc/llm-tictactoe/internal/entity"
)

type OllamaConfig struct {
	Model       string
	ServerURL   string
	Temperature float64
	Timeout     time.Duration
}

// Ollama asks a local Ollama model for a move through its native API.
type Ollama struct {
	logger      *slog.Logger
	llm         llms.Model
	temperature float64
	timeout     time.Duration
}

func NewOllama(logger *slog.Logger, cfg OllamaConfig) (*Ollama, error) {
	options := []ollama.Option{ollama.WithModel(cfg.Model)}
	if cfg.ServerURL != "" {
		options = append(options, ollama.WithServerURL(cfg.ServerURL))
	}

	llm, err := ollama.New(options...)
	if err != nil {
		return nil, fmt.Errorf("failed to create ollama client: %w", err)
	}

	return &Ollama{
		logger:      logger.With("component", "ollama", "model", cfg.Model),
		llm:         llm,
		temperature: cfg.Temperature,
		timeout:     cfg.Timeout,
	}, nil
}

func (that *Ollama) Propose(ctx context.Context, req entity.MoveRequest) (int, error) {
	log := that.logger.With("method", "Propose", "game", req.GameID, "player", req.Player)

	prompt, err := Prompt(req)
	if err != nil {
		return 0, err
	}

	ctx, cancel := withTimeout(ctx, that.timeout)
	defer cancel()

	reply, err := llms.GenerateFromSinglePrompt(ctx, that.llm, prompt, llms.WithTemperature(that.temperature))
	if err != nil {
		return 0, fmt.Errorf("ollama generation failed: %w", err)
	}

	log.Debug("model replied", "reply", reply)

	return ParseMove(reply)
}
