package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

type GameConfig struct {
	SeatCount    int   `env:"SEAT_COUNT" envDefault:"6"`
	HandsPerGame int   `env:"HANDS_PER_GAME" envDefault:"3"`
	SmallBlind   int64 `env:"SMALL_BLIND" envDefault:"50"`
	BigBlind     int64 `env:"BIG_BLIND" envDefault:"100"`
	InitialStack int64 `env:"INITIAL_STACK" envDefault:"2000"`
	ResetBusted  bool  `env:"RESET_BUSTED" envDefault:"true"`

	TurnDelay       time.Duration `env:"TURN_DELAY" envDefault:"3s"`
	DecisionTimeout time.Duration `env:"DECISION_TIMEOUT" envDefault:"30s"`
}

func LoadGame() (GameConfig, error) {
	var cfg GameConfig
	err := env.Parse(&cfg)
	return cfg, err
}
