package main

import (
	"context"
	"time"

	"holdem-arena/internal/bots"
	"holdem-arena/internal/config"
	"holdem-arena/internal/game"
	"holdem-arena/internal/logging"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

type simConfig struct {
	Games int   `env:"SIM_GAMES" envDefault:"10"`
	Hands int   `env:"SIM_HANDS" envDefault:"20"`
	Seats int   `env:"SIM_SEATS" envDefault:"6"`
	Seed  int64 `env:"SIM_SEED" envDefault:"1"`
}

// simulate hammers the engine with concurrent full-speed games and reports
// per-game outcomes. Chips are checked to balance at the end of every game.
func main() {
	_ = godotenv.Load()

	logCfg, err := config.LoadLog()
	if err != nil {
		panic(err)
	}
	logging.Init(logCfg)

	var sim simConfig
	if err := env.Parse(&sim); err != nil {
		log.Fatal().Err(err).Msg("load sim config failed")
	}
	gameCfg, err := config.LoadGame()
	if err != nil {
		log.Fatal().Err(err).Msg("load game config failed")
	}

	start := time.Now()
	g, ctx := errgroup.WithContext(context.Background())
	for i := 0; i < sim.Games; i++ {
		seed := sim.Seed + int64(i)*1000
		g.Go(func() error {
			return runGame(ctx, gameCfg, sim, seed)
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("simulation failed")
	}
	log.Info().Int("games", sim.Games).Int("hands_per_game", sim.Hands).
		Dur("elapsed", time.Since(start)).Msg("simulation complete")
}

func runGame(ctx context.Context, cfg config.GameConfig, sim simConfig, seed int64) error {
	players := make([]*game.Player, sim.Seats)
	providers := make([]game.DecisionProvider, sim.Seats)
	for i := range players {
		players[i] = &game.Player{
			ID:       game.NewID(),
			Name:     "bot-" + game.NewID()[:6],
			Occupant: game.OccupantAgent,
		}
		providers[i] = bots.NewRandom(seed + int64(i))
	}

	session, err := game.NewSession(game.SessionConfig{
		Players:         players,
		Providers:       providers,
		Hands:           sim.Hands,
		SmallBlind:      cfg.SmallBlind,
		BigBlind:        cfg.BigBlind,
		InitialStack:    cfg.InitialStack,
		ResetBusted:     true,
		TurnDelay:       0,
		DecisionTimeout: time.Second,
		Seed:            seed,
		Logger:          log.Logger,
	})
	if err != nil {
		return err
	}
	if err := session.Run(ctx); err != nil {
		return err
	}

	snap := session.Snapshot()
	for _, p := range snap.Players {
		log.Info().Str("game_id", snap.GameID).Str("player", p.Name).
			Int64("stack", p.Stack).Msg("final stack")
	}
	return nil
}
