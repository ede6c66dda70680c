package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/playforge/ninarow/internal/game"
)

func TestNewEvaluator(t *testing.T) {
	t.Run("Keeps a valid Defensive when Base falls back", func(t *testing.T) {
		// Given: a Base too small to rank lines and a custom Defensive
		eval := NewEvaluator(Weights{Base: 1, Defensive: 0.25})

		// Then: only Base takes the default value
		assert.Equal(t, DefaultWeights().Base, eval.weights.Base)
		assert.InDelta(t, 0.25, eval.weights.Defensive, 1e-9)
	})

	t.Run("Valid weights pass through untouched", func(t *testing.T) {
		eval := NewEvaluator(Weights{Base: 3, Defensive: 0.5})

		assert.Equal(t, Weights{Base: 3, Defensive: 0.5}, eval.weights)
	})
}

func TestEvaluator_Utilities(t *testing.T) {
	eval := NewEvaluator(DefaultWeights())

	t.Run("Empty board scores zero for everyone", func(t *testing.T) {
		// Given: a fresh 5x5 three-player game
		g, err := game.New(5, []bool{false, false, false})
		require.NoError(t, err)

		// Then: the heuristic vector is all zeros
		assert.Equal(t, []float64{0, 0, 0}, eval.Utilities(g))
	})

	t.Run("Single winner pays out plus one against minus one each", func(t *testing.T) {
		// Given: a 4-player 4x4 game where player 0 completes the diagonal
		g, err := game.New(4, []bool{false, false, false, false})
		require.NoError(t, err)
		applyMoves(t, g, []game.Cell{
			{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: 2}, {Row: 0, Col: 3},
			{Row: 1, Col: 1}, {Row: 1, Col: 2}, {Row: 1, Col: 3}, {Row: 1, Col: 0},
			{Row: 2, Col: 2}, {Row: 2, Col: 3}, {Row: 2, Col: 0}, {Row: 2, Col: 1},
			{Row: 3, Col: 3},
		})
		require.Equal(t, game.StatusWon, g.Status())

		// Then: the losers share nothing; each gets the full -1
		assert.Equal(t, []float64{1, -1, -1, -1}, eval.Utilities(g))
	})

	t.Run("Draw pays zero to all players", func(t *testing.T) {
		// Given: a drawn 3x3 game
		g, err := game.New(3, []bool{false, false})
		require.NoError(t, err)
		applyMoves(t, g, []game.Cell{
			{Row: 0, Col: 0}, {Row: 1, Col: 1},
			{Row: 2, Col: 2}, {Row: 0, Col: 1},
			{Row: 2, Col: 1}, {Row: 2, Col: 0},
			{Row: 0, Col: 2}, {Row: 1, Col: 2},
			{Row: 1, Col: 0},
		})
		require.Equal(t, game.StatusDrawn, g.Status())

		assert.Equal(t, []float64{0, 0}, eval.Utilities(g))
	})
}

func TestEvaluator_heuristic(t *testing.T) {
	eval := NewEvaluator(DefaultWeights())

	t.Run("More own marks in open lines scores strictly higher", func(t *testing.T) {
		// Given: two positions differing by one extra mark in an open line
		smaller := game.NewBoard(4)
		smaller.Set(game.Cell{Row: 0, Col: 0}, 0)

		larger := smaller.Clone()
		larger.Set(game.Cell{Row: 0, Col: 1}, 0)

		assert.Greater(t, eval.heuristic(larger, 2, 0), eval.heuristic(smaller, 2, 0))
	})

	t.Run("Opponent potential is a penalty", func(t *testing.T) {
		// Given: a board where only the opponent has open lines
		board := game.NewBoard(4)
		board.Set(game.Cell{Row: 2, Col: 1}, 1)

		assert.Negative(t, eval.heuristic(board, 2, 0))
		assert.Positive(t, eval.heuristic(board, 2, 1))
	})

	t.Run("A contested line counts for nobody", func(t *testing.T) {
		// Given: row 1 holding marks of both players, rest empty
		board := game.NewBoard(3)
		board.Set(game.Cell{Row: 1, Col: 0}, 0)
		board.Set(game.Cell{Row: 1, Col: 2}, 1)

		// Then: the shared row contributes nothing; each player keeps only
		// the column through their own mark, worth Base^1
		potentials := linePotentials(board, 2, DefaultWeights().Base)
		assert.Equal(t, []float64{4, 4}, potentials)
	})
}

// applyMoves plays cells in turn order, failing the test on any rejection.
func applyMoves(t *testing.T, g *game.Game, cells []game.Cell) {
	t.Helper()

	for _, cell := range cells {
		require.NoError(t, g.ApplyMove(g.Turn(), cell))
	}
}
