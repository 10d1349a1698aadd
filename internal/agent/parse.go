package agent

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/llm-tictactoe/internal/apperror"
)

// ParseMove - reads the first whitespace separated token of a model reply as a cell index.
// Whether the cell is on the board or free is decided by the caller.
func ParseMove(reply string) (int, error) {
	fields := strings.Fields(reply)
	if len(fields) == 0 {
		return 0, fmt.Errorf("%w: empty reply", apperror.ErrMalformedProposal)
	}

	cell, err := strconv.Atoi(strings.Trim(fields[0], ".,;:!\"'`*"))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", apperror.ErrMalformedProposal, fields[0])
	}

	return cell, nil
}
