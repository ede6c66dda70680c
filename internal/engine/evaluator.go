package engine

import (
	"math"

	"github.com/playforge/ninarow/internal/game"
)

// Weights tunes the heuristic evaluation of non-terminal positions.
type Weights struct {
	// Base grows the value of an open line geometrically with the number of
	// own marks already in it: a line with c marks weighs Base^c.
	Base float64
	// Defensive scales the penalty for opponents' open-line potential.
	Defensive float64
}

func DefaultWeights() Weights {
	return Weights{Base: 4, Defensive: 0.9}
}

// Evaluator assigns one score per player to a position: exact utilities for
// terminal states, an open-line potential heuristic otherwise.
type Evaluator struct {
	weights Weights
}

// NewEvaluator builds an evaluator. A Base of 1 or less cannot rank fuller
// lines above emptier ones, so it falls back to the default; the given
// Defensive weight is kept either way.
func NewEvaluator(weights Weights) *Evaluator {
	if weights.Base <= 1 {
		weights.Base = DefaultWeights().Base
	}

	return &Evaluator{weights: weights}
}

// Utilities returns the utility vector for the position. A won game pays the
// winner +1 and every other player -1; a draw pays 0 to all. Ongoing
// positions get the heuristic vector, which is zero on an empty board.
func (that *Evaluator) Utilities(g *game.Game) []float64 {
	playerCount := g.PlayerCount()

	switch g.Status() {
	case game.StatusWon:
		winner, _ := g.Winner()
		utilities := make([]float64, playerCount)
		for p := range utilities {
			utilities[p] = -1
			if p == winner {
				utilities[p] = 1
			}
		}
		return utilities
	case game.StatusDrawn:
		return make([]float64, playerCount)
	default:
		board := g.Snapshot()
		utilities := make([]float64, playerCount)
		for p := range utilities {
			utilities[p] = that.heuristic(board, playerCount, p)
		}
		return utilities
	}
}

// heuristic scores a position for one player: own potential in open lines
// minus a defensive fraction of every opponent's potential. A line is open
// for a player while no other player has marked it.
func (that *Evaluator) heuristic(board game.Board, playerCount, player int) float64 {
	potentials := linePotentials(board, playerCount, that.weights.Base)

	score := potentials[player]
	for p := 0; p < playerCount; p++ {
		if p != player {
			score -= that.weights.Defensive * potentials[p]
		}
	}

	return score
}

// linePotentials sums, per player, base^marks over the lines that player can
// still complete. Untouched lines contribute nothing to anyone.
func linePotentials(board game.Board, playerCount int, base float64) []float64 {
	potentials := make([]float64, playerCount)
	counts := make([]int, playerCount)

	for _, line := range game.AllLines(board.Size()) {
		for p := range counts {
			counts[p] = 0
		}
		for _, cell := range line {
			if mark := board.At(cell); mark != game.NoMark {
				counts[mark]++
			}
		}

		owner := -1
		contested := false
		for p, count := range counts {
			if count == 0 {
				continue
			}
			if owner >= 0 {
				contested = true
				break
			}
			owner = p
		}

		if contested || owner < 0 {
			continue
		}

		potentials[owner] += math.Pow(base, float64(counts[owner]))
	}

	return potentials
}
