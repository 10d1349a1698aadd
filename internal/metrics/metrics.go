package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ProposalRetries = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tictactoe",
		Name:      "proposal_retries_total",
		Help:      "Move proposals that were rejected and retried, by player.",
	}, []string{"player"})

	AcquisitionFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tictactoe",
		Name:      "move_acquisition_failures_total",
		Help:      "Turns on which a player used up every attempt without a legal move.",
	}, []string{"player"})

	MovesApplied = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tictactoe",
		Name:      "moves_applied_total",
		Help:      "Validated moves applied to a board, by player.",
	}, []string{"player"})

	GamesFinished = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tictactoe",
		Name:      "games_finished_total",
		Help:      "Finished games by final status.",
	}, []string{"status"})
)
