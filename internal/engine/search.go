package engine

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/playforge/ninarow/internal/apperror"
	"github.com/playforge/ninarow/internal/game"
)

const (
	winScore = 1_000_000.0

	// Heuristic leaves are clamped here so no tuning of the weights can
	// make a cutoff estimate outrank a real win.
	maxLeafScore = winScore / 2

	// Deadline checks are amortized over this many visited nodes.
	stopCheckMask = 255
)

// Budget bounds one move selection. A zero MaxDepth falls back to a
// size-based default; a zero MoveTime searches without a deadline.
type Budget struct {
	MaxDepth int
	MoveTime time.Duration
}

// Stats describes one completed move selection.
type Stats struct {
	Nodes          int64
	Cutoffs        int64
	CompletedDepth int
	Elapsed        time.Duration
}

// Engine selects moves by paranoid adversarial search: at the searching
// player's turns it maximizes that player's utility, at every other seat it
// minimizes it, treating all opponents as one coalition. That collapses the
// N-player game into a two-player one, so a single (alpha, beta) window
// prunes soundly. The cost is caution: the engine never overestimates its
// safety, even against opponents who do not cooperate against it.
type Engine struct {
	logger          *slog.Logger
	eval            *Evaluator
	fullSearchCells int
}

// NewEngine builds an engine. fullSearchCells is the largest number of empty
// cells for which the tree is exhausted instead of depth-capped; values <= 0
// select the default of 16, which covers every 3×3 and 4×4 position.
func NewEngine(logger *slog.Logger, eval *Evaluator, fullSearchCells int) *Engine {
	if fullSearchCells <= 0 {
		fullSearchCells = 16
	}

	return &Engine{
		logger:          logger.With("component", "engine"),
		eval:            eval,
		fullSearchCells: fullSearchCells,
	}
}

// ChooseMove returns a legal cell for the searching player, leaving g
// untouched. Identical (state, player, budget) inputs yield identical cells:
// enumeration is row-major and ties keep the first move encountered.
// Cancelling ctx mid-search returns the best move of the deepest completed
// pass, or the context error when none completed.
func (that *Engine) ChooseMove(ctx context.Context, g *game.Game, player int, budget Budget) (game.Cell, error) {
	if player < 0 || player >= g.PlayerCount() {
		return game.Cell{}, fmt.Errorf("%w: player %d with %d seats", apperror.ErrInvalidPlayer, player, g.PlayerCount())
	}

	moves := g.LegalMoves()
	if len(moves) == 0 {
		return game.Cell{}, fmt.Errorf("%w: game is %s", apperror.ErrNoLegalMoves, g.Status())
	}

	if err := ctx.Err(); err != nil {
		return game.Cell{}, fmt.Errorf("search cancelled: %w", err)
	}

	board := g.Snapshot()
	empties := board.CountEmpty()

	maxDepth := budget.MaxDepth
	if maxDepth <= 0 {
		maxDepth = defaultDepthFor(board.Size())
	}
	exhaustive := empties <= that.fullSearchCells
	if exhaustive || maxDepth > empties {
		maxDepth = empties
	}

	stats := &Stats{}
	sc := &searchContext{
		ctx:         ctx,
		board:       &board,
		playerCount: g.PlayerCount(),
		searcher:    player,
		eval:        that.eval,
		stats:       stats,
	}
	if budget.MoveTime > 0 {
		sc.deadline = time.Now().Add(budget.MoveTime)
		sc.hasDeadline = true
	}

	// Iterative deepening keeps a finished answer at hand whenever the
	// budget expires mid-depth. The shallow passes cost a negligible
	// fraction of the deepest one, so they run even when the remaining
	// tree is small enough to exhaust; a one-ply pass visits fewer nodes
	// than the deadline check interval and therefore always completes.
	start := time.Now()
	var best game.Cell
	haveBest := false
	for depth := 1; depth <= maxDepth; depth++ {
		move, value, completed := sc.searchRoot(moves, g.Turn(), depth)
		if !completed {
			break
		}

		best = move
		haveBest = true
		stats.CompletedDepth = depth

		// A forced result within the horizon stays forced at every
		// deeper horizon.
		if value >= winScore-float64(maxDepth) || value <= -winScore+float64(maxDepth) {
			break
		}
	}
	stats.Elapsed = time.Since(start)

	if !haveBest {
		if err := ctx.Err(); err != nil {
			return game.Cell{}, fmt.Errorf("search cancelled: %w", err)
		}
		// Deadline expired inside the first pass; any legal cell beats none.
		best = moves[0]
	}

	that.logger.Debug("move chosen",
		"player", player,
		"move", best,
		"depth", stats.CompletedDepth,
		"nodes", stats.Nodes,
		"cutoffs", stats.Cutoffs,
		"elapsed", stats.Elapsed,
	)

	return best, nil
}

// defaultDepthFor caps lookahead on boards too large to exhaust. Tunable via
// Budget.MaxDepth; play quality at 5×5 and up is a tuning matter, not a
// guarantee.
func defaultDepthFor(size int) int {
	depth := 11 - size
	if depth < 2 {
		depth = 2
	}

	return depth
}

// searchContext owns the scratch board for one ChooseMove invocation. Every
// placement is undone on every exit path, so the board always matches the
// caller's position between root moves.
type searchContext struct {
	ctx         context.Context
	board       *game.Board
	playerCount int
	searcher    int
	eval        *Evaluator
	stats       *Stats
	deadline    time.Time
	hasDeadline bool
	stopped     bool
}

// searchRoot scores the given moves at a fixed depth and returns the best
// one for the acting player. Root moves stay in row-major order and only a
// strictly better value replaces the incumbent, which fixes the tie-break.
// completed is false when the budget expired before every move was scored.
func (that *searchContext) searchRoot(moves []game.Cell, toMove, depth int) (game.Cell, float64, bool) {
	maximizing := toMove == that.searcher
	alpha, beta := math.Inf(-1), math.Inf(1)
	best := math.Inf(-1)
	if !maximizing {
		best = math.Inf(1)
	}

	bestMove := moves[0]
	for _, move := range moves {
		value, ok := that.searchMove(move, toMove, depth, 0, alpha, beta)
		if !ok {
			return bestMove, best, false
		}

		if maximizing {
			if value > best {
				best = value
				bestMove = move
			}
			if best > alpha {
				alpha = best
			}
		} else {
			if value < best {
				best = value
				bestMove = move
			}
			if best < beta {
				beta = best
			}
		}
	}

	return bestMove, best, true
}

// searchMove plays move for toMove, scores the resulting position from the
// searcher's perspective, and restores the board before returning. ok is
// false when the search was stopped and the value must be discarded.
func (that *searchContext) searchMove(move game.Cell, toMove, depth, ply int, alpha, beta float64) (float64, bool) {
	that.board.Set(move, toMove)

	var value float64
	switch {
	case that.board.WinningMove(move, toMove):
		value = winScore - float64(ply)
		if toMove != that.searcher {
			value = -value
		}
	case that.board.IsFull():
		value = 0
	default:
		value = that.search(nextPlayer(toMove, that.playerCount), depth-1, ply+1, alpha, beta)
	}

	that.board.Remove(move)

	return value, !that.stopped
}

func (that *searchContext) search(toMove, depth, ply int, alpha, beta float64) float64 {
	that.stats.Nodes++
	if that.shouldStop() {
		return 0
	}

	if depth <= 0 {
		return that.leaf()
	}

	maximizing := toMove == that.searcher
	best := math.Inf(-1)
	if !maximizing {
		best = math.Inf(1)
	}

	for _, move := range that.orderedMoves(toMove) {
		value, ok := that.searchMove(move, toMove, depth, ply, alpha, beta)
		if !ok {
			return 0
		}

		if maximizing {
			if value > best {
				best = value
			}
			if best > alpha {
				alpha = best
			}
		} else {
			if value < best {
				best = value
			}
			if best < beta {
				beta = best
			}
		}

		if alpha >= beta {
			that.stats.Cutoffs++
			break
		}
	}

	if math.IsInf(best, 0) {
		return 0
	}

	return best
}

func (that *searchContext) leaf() float64 {
	value := that.eval.heuristic(*that.board, that.playerCount, that.searcher)
	if value > maxLeafScore {
		return maxLeafScore
	}
	if value < -maxLeafScore {
		return -maxLeafScore
	}

	return value
}

func (that *searchContext) shouldStop() bool {
	if that.stopped {
		return true
	}

	if that.ctx.Err() != nil {
		that.stopped = true
	} else if that.hasDeadline && that.stats.Nodes&stopCheckMask == 0 && time.Now().After(that.deadline) {
		that.stopped = true
	}

	return that.stopped
}

// orderedMoves lists the empty cells with immediate wins first, then cells
// that deny an opponent an immediate win, then by center proximity. Ordering
// tightens the pruning window earlier; values are unaffected by it.
func (that *searchContext) orderedMoves(toMove int) []game.Cell {
	size := that.board.Size()

	type scoredMove struct {
		move     game.Cell
		priority int
		center   int
	}

	moves := make([]scoredMove, 0, that.board.CountEmpty())
	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			cell := game.Cell{Row: r, Col: c}
			if that.board.At(cell) != game.NoMark {
				continue
			}

			priority := 0
			switch {
			case that.wouldWin(cell, toMove):
				priority = 2
			case that.blocksWin(cell, toMove):
				priority = 1
			}

			moves = append(moves, scoredMove{move: cell, priority: priority, center: centerDistance(cell, size)})
		}
	}

	sort.SliceStable(moves, func(i, j int) bool {
		if moves[i].priority != moves[j].priority {
			return moves[i].priority > moves[j].priority
		}
		return moves[i].center < moves[j].center
	})

	ordered := make([]game.Cell, len(moves))
	for i, m := range moves {
		ordered[i] = m.move
	}

	return ordered
}

func (that *searchContext) wouldWin(cell game.Cell, player int) bool {
	that.board.Set(cell, player)
	won := that.board.WinningMove(cell, player)
	that.board.Remove(cell)

	return won
}

func (that *searchContext) blocksWin(cell game.Cell, toMove int) bool {
	for p := 0; p < that.playerCount; p++ {
		if p != toMove && that.wouldWin(cell, p) {
			return true
		}
	}

	return false
}

// centerDistance is the Chebyshev distance from cell to the board center,
// doubled so even-sized boards stay integral.
func centerDistance(c game.Cell, size int) int {
	dr := abs(2*c.Row - (size - 1))
	dc := abs(2*c.Col - (size - 1))
	if dr > dc {
		return dr
	}

	return dc
}

func nextPlayer(player, playerCount int) int {
	return (player + 1) % playerCount
}

func abs(v int) int {
	if v < 0 {
		return -v
	}

	return v
}
