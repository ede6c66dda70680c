package game

import (
	"fmt"

	"github.com/playforge/ninarow/internal/apperror"
)

const (
	MinBoardSize = 3
	MaxBoardSize = 7
	MinPlayers   = 2
	MaxPlayers   = 4
)

type Status int

const (
	StatusOngoing Status = iota
	StatusWon
	StatusDrawn
)

func (s Status) String() string {
	switch s {
	case StatusWon:
		return "won"
	case StatusDrawn:
		return "drawn"
	default:
		return "ongoing"
	}
}

// Game composes a board, the ordered seats, whose turn it is, and the
// terminal status. Every accepted move goes through ApplyMove; a rejected
// move never mutates anything.
type Game struct {
	board   Board
	players []Player
	turn    int
	status  Status
	winner  int
}

// New builds a fresh game. bots flags the seats supplied by the search
// engine; its length is the player count. A 3×3 board only has room for a
// meaningful game between two players, so larger counts require size >= 4.
func New(size int, bots []bool) (*Game, error) {
	if size < MinBoardSize || size > MaxBoardSize {
		return nil, fmt.Errorf("%w: board size %d not in [%d,%d]", apperror.ErrInvalidConfiguration, size, MinBoardSize, MaxBoardSize)
	}

	playerCount := len(bots)
	if playerCount < MinPlayers || playerCount > MaxPlayers {
		return nil, fmt.Errorf("%w: player count %d not in [%d,%d]", apperror.ErrInvalidConfiguration, playerCount, MinPlayers, MaxPlayers)
	}

	if size == MinBoardSize && playerCount > MinPlayers {
		return nil, fmt.Errorf("%w: %d players need a board larger than %dx%d", apperror.ErrInvalidConfiguration, playerCount, MinBoardSize, MinBoardSize)
	}

	players := make([]Player, playerCount)
	for i := range players {
		players[i] = Player{ID: i, Bot: bots[i]}
	}

	return &Game{
		board:   NewBoard(size),
		players: players,
		winner:  -1,
	}, nil
}

// ApplyMove places playerID's mark, runs the win detector on the played
// cell, updates the status, and advances the turn. The turn stays frozen
// once the game is terminal.
func (that *Game) ApplyMove(playerID int, c Cell) error {
	if that.status != StatusOngoing {
		return apperror.ErrGameFinished
	}

	if playerID != that.turn {
		return fmt.Errorf("%w: player %d moved on player %d's turn", apperror.ErrNotYourTurn, playerID, that.turn)
	}

	if err := that.board.Place(c, playerID); err != nil {
		return err
	}

	switch {
	case that.board.WinningMove(c, playerID):
		that.status = StatusWon
		that.winner = playerID
	case that.board.IsFull():
		that.status = StatusDrawn
	default:
		that.turn = (that.turn + 1) % len(that.players)
	}

	return nil
}

// LegalMoves enumerates every empty cell in row-major order, so combined
// with a deterministic search the bot is reproducible for a fixed position.
func (that *Game) LegalMoves() []Cell {
	if that.status != StatusOngoing {
		return nil
	}

	moves := make([]Cell, 0, that.board.CountEmpty())
	for r := 0; r < that.board.size; r++ {
		for c := 0; c < that.board.size; c++ {
			cell := Cell{Row: r, Col: c}
			if that.board.At(cell) == NoMark {
				moves = append(moves, cell)
			}
		}
	}

	return moves
}

func (that *Game) Clone() *Game {
	clone := *that
	clone.board = that.board.Clone()
	clone.players = make([]Player, len(that.players))
	copy(clone.players, that.players)

	return &clone
}

// Snapshot returns an independent copy of the board, safe for rendering or
// for the engine to mutate as scratch space.
func (that *Game) Snapshot() Board {
	return that.board.Clone()
}

func (that *Game) Status() Status {
	return that.status
}

// Winner returns the winning player's ID; ok is false unless status is won.
func (that *Game) Winner() (int, bool) {
	if that.status != StatusWon {
		return -1, false
	}

	return that.winner, true
}

func (that *Game) Turn() int {
	return that.turn
}

func (that *Game) Players() []Player {
	players := make([]Player, len(that.players))
	copy(players, that.players)

	return players
}

func (that *Game) PlayerCount() int {
	return len(that.players)
}

func (that *Game) Size() int {
	return that.board.size
}

func (that *Game) IsFinished() bool {
	return that.status != StatusOngoing
}
