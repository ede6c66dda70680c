package game

// Player is a seat in the game: its rotation index and whether the search
// engine or an external caller supplies its moves.
type Player struct {
	ID  int
	Bot bool
}

func (that Player) IsBot() bool {
	return that.Bot
}
