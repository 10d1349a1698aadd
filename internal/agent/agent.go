// Package agent holds the move sources that can sit at the board.
package agent

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/llm-tictactoe/internal/config"
	"github.com/rocketscienceinc/llm-tictactoe/internal/tictactoe"
)

const (
	KindOpenAI = "openai"
	KindOllama = "ollama"
	KindRandom = "random"
	KindFirst  = "first"
)

var ErrUnknownKind = errors.New("unknown player kind")

// New - builds the move source described by a player section of the config.
func New(logger *slog.Logger, conf config.Player) (tictactoe.MoveSource, error) {
	switch conf.Kind {
	case KindOpenAI:
		return NewOpenAI(logger, OpenAIConfig{
			APIKey:      conf.APIKey,
			Model:       conf.Model,
			BaseURL:     conf.BaseURL,
			Temperature: float32(conf.Temperature),
			Timeout:     conf.Timeout,
		}), nil
	case KindOllama:
		source, err := NewOllama(logger, OllamaConfig{
			Model:       conf.Model,
			ServerURL:   conf.BaseURL,
			Temperature: conf.Temperature,
			Timeout:     conf.Timeout,
		})
		if err != nil {
			return nil, err
		}
		return source, nil
	case KindRandom:
		return NewRandom(), nil
	case KindFirst:
		return First{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, conf.Kind)
	}
}

// Label - the name a player is shown with, falling back to its model or kind.
func Label(conf config.Player) string {
	switch {
	case conf.Label != "":
		return conf.Label
	case conf.Model != "":
		return conf.Model
	default:
		return conf.Kind
	}
}
