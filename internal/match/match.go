package match

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/playforge/ninarow/internal/apperror"
	"github.com/playforge/ninarow/internal/engine"
	"github.com/playforge/ninarow/internal/game"
)

// Match owns one game for its whole life and drives the engine for the bot
// seats. The engine only ever sees clones, so a match can be abandoned
// mid-search without corrupting its state.
type Match struct {
	id     string
	logger *slog.Logger
	game   *game.Game
	engine *engine.Engine
	budget engine.Budget
}

func New(logger *slog.Logger, eng *engine.Engine, g *game.Game, budget engine.Budget) *Match {
	id := uuid.NewString()

	return &Match{
		id:     id,
		logger: logger.With("component", "match", "match_id", id),
		game:   g,
		engine: eng,
		budget: budget,
	}
}

func (that *Match) ID() string {
	return that.id
}

func (that *Match) Game() *game.Game {
	return that.game
}

// ApplyHuman applies an externally supplied move. Bot seats are refused;
// their moves come from PlayBot.
func (that *Match) ApplyHuman(playerID int, cell game.Cell) error {
	players := that.game.Players()
	if playerID < 0 || playerID >= len(players) {
		return fmt.Errorf("%w: player %d with %d seats", apperror.ErrInvalidPlayer, playerID, len(players))
	}

	if players[playerID].IsBot() {
		return fmt.Errorf("%w: seat %d is engine-controlled", apperror.ErrInvalidPlayer, playerID)
	}

	if err := that.game.ApplyMove(playerID, cell); err != nil {
		return fmt.Errorf("failed to apply move: %w", err)
	}

	that.logger.Info("move applied", "player", playerID, "cell", cell, "status", that.game.Status().String())

	return nil
}

// PlayBot chooses and applies a move for the bot seat to move.
func (that *Match) PlayBot(ctx context.Context) (game.Cell, error) {
	playerID := that.game.Turn()
	players := that.game.Players()
	if !players[playerID].IsBot() {
		return game.Cell{}, fmt.Errorf("%w: seat %d is not engine-controlled", apperror.ErrInvalidPlayer, playerID)
	}

	start := time.Now()
	cell, err := that.engine.ChooseMove(ctx, that.game, playerID, that.budget)
	if err != nil {
		return game.Cell{}, fmt.Errorf("engine failed to choose a move: %w", err)
	}

	if err = that.game.ApplyMove(playerID, cell); err != nil {
		return game.Cell{}, fmt.Errorf("engine chose an unplayable move: %w", err)
	}

	that.logger.Info("bot move applied",
		"player", playerID,
		"cell", cell,
		"status", that.game.Status().String(),
		"elapsed", time.Since(start),
	)

	return cell, nil
}

func (that *Match) IsFinished() bool {
	return that.game.IsFinished()
}
