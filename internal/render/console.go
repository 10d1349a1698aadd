package render

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/rocketscienceinc/llm-tictactoe/internal/entity"
)

// Console draws the board and the player panel to a terminal after every change.
type Console struct {
	out io.Writer
	mu  sync.Mutex

	xStyle      lipgloss.Style
	oStyle      lipgloss.Style
	emptyStyle  lipgloss.Style
	winStyle    lipgloss.Style
	gridStyle   lipgloss.Style
	statusStyle lipgloss.Style
	abortStyle  lipgloss.Style
	panelStyle  lipgloss.Style
	activeStyle lipgloss.Style
}

// NewConsole - color false strips every escape sequence, e.g. when output is piped.
func NewConsole(out io.Writer, color bool) *Console {
	renderer := lipgloss.NewRenderer(out)
	if !color {
		renderer.SetColorProfile(termenv.Ascii)
	}

	panel := renderer.NewStyle().
		Width(22).
		Padding(0, 1).
		Align(lipgloss.Center).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.AdaptiveColor{Light: "#CCCCCC", Dark: "#444444"})

	return &Console{
		out: out,

		xStyle: renderer.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#0066CC", Dark: "#5599FF"}).
			Bold(true),
		oStyle: renderer.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#B8860B", Dark: "#FFAA00"}).
			Bold(true),
		emptyStyle: renderer.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#666666", Dark: "#888888"}),
		winStyle: renderer.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#008000", Dark: "#55FF55"}).
			Bold(true).
			Underline(true),
		gridStyle: renderer.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#999999", Dark: "#555555"}),
		statusStyle: renderer.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#006400", Dark: "#55FF55"}).
			Bold(true),
		abortStyle: renderer.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#D00000", Dark: "#FF5555"}).
			Bold(true),
		panelStyle:  panel,
		activeStyle: panel.BorderForeground(lipgloss.AdaptiveColor{Light: "#0066CC", Dark: "#5599FF"}),
	}
}

func (that *Console) Notify(_ context.Context, snapshot entity.Snapshot) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, err := fmt.Fprintln(that.out, that.Render(snapshot)); err != nil {
		return fmt.Errorf("failed to write board: %w", err)
	}

	return nil
}

// Render - the board on the left, player labels on the right, status on top.
func (that *Console) Render(snapshot entity.Snapshot) string {
	board := lipgloss.JoinVertical(lipgloss.Left, that.rows(snapshot)...)
	panel := lipgloss.JoinVertical(lipgloss.Center,
		that.player(snapshot, entity.PlayerX),
		that.player(snapshot, entity.PlayerO),
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		that.status(snapshot),
		"",
		lipgloss.JoinHorizontal(lipgloss.Center, board, "    ", panel),
	)
}

func (that *Console) rows(snapshot entity.Snapshot) []string {
	separator := that.gridStyle.Render("───┼───┼───")
	bar := that.gridStyle.Render(" │ ")

	rows := make([]string, 0, 5)
	for start := 0; start < entity.BoardSize; start += 3 {
		cells := make([]string, 0, 3)
		for cell := start; cell < start+3; cell++ {
			cells = append(cells, that.cell(snapshot, cell))
		}

		if start > 0 {
			rows = append(rows, separator)
		}
		rows = append(rows, " "+strings.Join(cells, bar))
	}

	return rows
}

func (that *Console) cell(snapshot entity.Snapshot, cell int) string {
	symbol := snapshot.Board[cell]

	switch {
	case slices.Contains(snapshot.WinningLine, cell):
		return that.winStyle.Render(symbol)
	case symbol == string(entity.PlayerX):
		return that.xStyle.Render(symbol)
	case symbol == string(entity.PlayerO):
		return that.oStyle.Render(symbol)
	default:
		return that.emptyStyle.Render(symbol)
	}
}

func (that *Console) player(snapshot entity.Snapshot, mark entity.Mark) string {
	text := fmt.Sprintf("%s (%s)", snapshot.Labels[mark], mark)
	if snapshot.Labels[mark] == "" {
		text = "Player " + string(mark)
	}

	if snapshot.Turn == mark {
		return that.activeStyle.Render(text)
	}

	return that.panelStyle.Render(text)
}

func (that *Console) status(snapshot entity.Snapshot) string {
	text := snapshot.StatusText
	if snapshot.MoveNumber > 0 && snapshot.LastMove != nil {
		text = fmt.Sprintf("Move %d: cell %d. %s", snapshot.MoveNumber, *snapshot.LastMove, text)
	}

	if snapshot.Status == entity.StatusAborted {
		return that.abortStyle.Render(text)
	}

	return that.statusStyle.Render(text)
}
