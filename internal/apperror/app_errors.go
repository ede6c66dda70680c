package apperror

import "errors"

var (
	ErrGameFinished         = errors.New("game is already finished")
	ErrNotYourTurn          = errors.New("it's not your turn")
	ErrCellOccupied         = errors.New("cell is already occupied")
	ErrInvalidCell          = errors.New("invalid cell")
	ErrInvalidConfiguration = errors.New("invalid game configuration")
	ErrNoLegalMoves         = errors.New("no legal moves")
	ErrInvalidPlayer        = errors.New("invalid player")
)
