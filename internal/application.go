package application

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/playforge/ninarow/internal/config"
	"github.com/playforge/ninarow/internal/engine"
	"github.com/playforge/ninarow/internal/game"
	"github.com/playforge/ninarow/internal/match"
)

var markGlyphs = [game.MaxPlayers]byte{'X', 'O', 'V', 'W'}

// RunApp wires the engine from the configuration and runs one interactive
// game on the terminal. SIGINT/SIGTERM cancel a running search cleanly.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	g, err := game.New(conf.Match.BoardSize, conf.Match.BotFlags())
	if err != nil {
		return fmt.Errorf("could not create game: %w", err)
	}

	eval := engine.NewEvaluator(engine.Weights{
		Base:      conf.Engine.Heuristics.Base,
		Defensive: conf.Engine.Heuristics.Defensive,
	})
	eng := engine.NewEngine(logger, eval, conf.Engine.FullSearchCells)
	budget := engine.Budget{
		MaxDepth: conf.Engine.MaxDepth,
		MoveTime: time.Duration(conf.Engine.MoveTimeMs) * time.Millisecond,
	}

	m := match.New(logger, eng, g, budget)
	log.Info("match started", "match_id", m.ID(), "board_size", g.Size(), "players", g.PlayerCount())

	return runGameLoop(ctx, m)
}

func runGameLoop(ctx context.Context, m *match.Match) error {
	g := m.Game()
	scanner := bufio.NewScanner(os.Stdin)

	for !g.IsFinished() {
		if err := ctx.Err(); err != nil {
			return nil
		}

		fmt.Println(renderBoard(g.Snapshot()))

		turn := g.Turn()
		if g.Players()[turn].IsBot() {
			cell, err := m.PlayBot(ctx)
			if err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(ctx.Err(), context.Canceled) {
					return nil
				}
				return fmt.Errorf("bot turn failed: %w", err)
			}

			fmt.Printf("player %c plays %s\n", markGlyphs[turn], cell)
			continue
		}

		cell, err := readMove(scanner, turn)
		if err != nil {
			return err
		}

		if err = m.ApplyHuman(turn, cell); err != nil {
			fmt.Printf("rejected: %v\n", err)
		}
	}

	fmt.Println(renderBoard(g.Snapshot()))
	if winner, ok := g.Winner(); ok {
		fmt.Printf("player %c wins\n", markGlyphs[winner])
	} else {
		fmt.Println("draw")
	}

	return nil
}

func readMove(scanner *bufio.Scanner, player int) (game.Cell, error) {
	for {
		fmt.Printf("player %c, enter move as 'row col': ", markGlyphs[player])
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return game.Cell{}, fmt.Errorf("failed to read input: %w", err)
			}
			return game.Cell{}, errors.New("input closed")
		}

		var cell game.Cell
		if _, err := fmt.Sscanf(strings.TrimSpace(scanner.Text()), "%d %d", &cell.Row, &cell.Col); err != nil {
			fmt.Println("could not parse move, expected two numbers")
			continue
		}

		return cell, nil
	}
}

func renderBoard(board game.Board) string {
	size := board.Size()
	var sb strings.Builder

	for r := 0; r < size; r++ {
		if r > 0 {
			sb.WriteString(strings.Repeat("-", 2*size-1))
			sb.WriteByte('\n')
		}
		for c := 0; c < size; c++ {
			if c > 0 {
				sb.WriteByte('|')
			}
			if mark := board.At(game.Cell{Row: r, Col: c}); mark == game.NoMark {
				sb.WriteByte(' ')
			} else {
				sb.WriteByte(markGlyphs[mark])
			}
		}
		sb.WriteByte('\n')
	}

	return sb.String()
}
