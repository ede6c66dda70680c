package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	Match    Match  `yaml:"match"`
	Engine   Engine `yaml:"engine"`
}

// Match is the default game setup the application starts with.
type Match struct {
	BoardSize int   `yaml:"board-size" env:"BOARD_SIZE" env-default:"3"`
	Players   int   `yaml:"players" env:"PLAYERS" env-default:"2"`
	BotSeats  []int `yaml:"bot-seats" env:"BOT_SEATS" env-default:"1"`
}

// Engine tunes the search: lookahead caps, the per-move deadline, and the
// heuristic weights used past the depth cutoff.
type Engine struct {
	MaxDepth        int        `yaml:"max-depth" env:"AI_MAX_DEPTH" env-default:"0"`
	MoveTimeMs      int        `yaml:"move-time-ms" env:"AI_MOVE_TIME_MS" env-default:"2000"`
	FullSearchCells int        `yaml:"full-search-cells" env:"AI_FULL_SEARCH_CELLS" env-default:"16"`
	Heuristics      Heuristics `yaml:"heuristics"`
}

type Heuristics struct {
	Base      float64 `yaml:"base" env:"AI_HEURISTIC_BASE" env-default:"4"`
	Defensive float64 `yaml:"defensive" env:"AI_HEURISTIC_DEFENSIVE" env-default:"0.9"`
}

// MustLoad - load all configurations from the config file, falling back to
// environment variables when the file does not exist.
func MustLoad(path string) *Config {
	config := &Config{}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err = cleanenv.ReadEnv(config); err != nil {
			panic(fmt.Errorf("unable to load config from environment: %w", err))
		}

		return config
	}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

// BotFlags expands BotSeats into one flag per seat.
func (that *Match) BotFlags() []bool {
	bots := make([]bool, that.Players)
	for _, seat := range that.BotSeats {
		if seat >= 0 && seat < len(bots) {
			bots[seat] = true
		}
	}

	return bots
}
