package agent

import (
	"bytes"
	_ "embed"
	"fmt"
	"strconv"
	"strings"
	"text/template"

	"github.com/rocketscienceinc/llm-tictactoe/internal/entity"
)

//go:embed prompt.tmpl
var movePrompt string

var moveTemplate = template.Must(template.New("move").Parse(movePrompt))

type promptData struct {
	Name      string
	Player    entity.Mark
	Board     string
	Available string
}

// Prompt - renders the instructions sent to a language model for one move.
func Prompt(req entity.MoveRequest) (string, error) {
	available := make([]string, 0, len(req.Available))
	for _, cell := range req.Available {
		available = append(available, strconv.Itoa(cell))
	}

	name := req.Label
	if name == "" {
		name = string(req.Player)
	}

	var buf bytes.Buffer
	if err := moveTemplate.Execute(&buf, promptData{
		Name:      name,
		Player:    req.Player,
		Board:     entity.FormatSymbols(req.Board),
		Available: strings.Join(available, ", "),
	}); err != nil {
		return "", fmt.Errorf("failed to render move prompt: %w", err)
	}

	return buf.String(), nil
}
