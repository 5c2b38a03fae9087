package arena

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"holdem-arena/internal/bots"
	"holdem-arena/internal/config"
	"holdem-arena/internal/game"
)

var (
	ErrTooManyGames = errors.New("too_many_games")
	ErrNotFound     = errors.New("game_not_found")
)

// SeatSpec describes one seat of a requested game.
type SeatSpec struct {
	Name  string `json:"name"`
	Bot   string `json:"bot"`
	Empty bool   `json:"empty"`
}

// StartRequest configures a new game. Zero values fall back to the server's
// game config.
type StartRequest struct {
	Seats []SeatSpec `json:"seats"`
	Hands int        `json:"hands"`
	Seed  int64      `json:"seed"`
}

// Coordinator starts sessions and serves snapshots of them. Each session
// runs on its own goroutine; finished sessions stay readable.
type Coordinator struct {
	cfg      config.GameConfig
	recorder game.Recorder
	notifier game.Notifier
	logger   zerolog.Logger
	maxGames int

	mu       sync.Mutex
	sessions map[string]*game.Session
	running  int
}

func New(cfg config.GameConfig, maxGames int, recorder game.Recorder, notifier game.Notifier, logger zerolog.Logger) *Coordinator {
	if maxGames <= 0 {
		maxGames = 16
	}
	return &Coordinator{
		cfg:      cfg,
		recorder: recorder,
		notifier: notifier,
		logger:   logger,
		maxGames: maxGames,
		sessions: make(map[string]*game.Session),
	}
}

// StartGame validates the request, builds the table and launches the session.
// It returns the new game's ID immediately; play happens in the background
// and runs until done or ctx is cancelled, so pass a lifecycle context, not a
// request-scoped one.
func (c *Coordinator) StartGame(ctx context.Context, req StartRequest) (string, error) {
	seats := req.Seats
	if len(seats) == 0 {
		for i := 0; i < c.cfg.SeatCount; i++ {
			seats = append(seats, SeatSpec{Bot: "random"})
		}
	}

	players := make([]*game.Player, len(seats))
	providers := make([]game.DecisionProvider, len(seats))
	for i, spec := range seats {
		if spec.Empty {
			players[i] = &game.Player{Occupant: game.OccupantEmpty}
			continue
		}
		name := spec.Name
		if name == "" {
			name = spec.Bot
		}
		players[i] = &game.Player{
			ID:       game.NewID(),
			Name:     name,
			Occupant: game.OccupantAgent,
		}
		providers[i] = bots.ByName(spec.Bot, req.Seed+int64(i))
	}

	hands := req.Hands
	if hands == 0 {
		hands = c.cfg.HandsPerGame
	}

	session, err := game.NewSession(game.SessionConfig{
		Players:         players,
		Providers:       providers,
		Hands:           hands,
		SmallBlind:      c.cfg.SmallBlind,
		BigBlind:        c.cfg.BigBlind,
		InitialStack:    c.cfg.InitialStack,
		ResetBusted:     c.cfg.ResetBusted,
		TurnDelay:       c.cfg.TurnDelay,
		DecisionTimeout: c.cfg.DecisionTimeout,
		Seed:            req.Seed,
		Recorder:        c.recorder,
		Notifier:        c.notifier,
		Logger:          c.logger,
	})
	if err != nil {
		return "", err
	}

	c.mu.Lock()
	if c.running >= c.maxGames {
		c.mu.Unlock()
		return "", ErrTooManyGames
	}
	c.running++
	c.sessions[session.GameID] = session
	c.mu.Unlock()

	go func() {
		defer func() {
			c.mu.Lock()
			c.running--
			c.mu.Unlock()
		}()
		if err := session.Run(ctx); err != nil {
			c.logger.Error().Err(err).Str("game_id", session.GameID).Msg("game ended with error")
		}
	}()

	return session.GameID, nil
}

// Get returns a snapshot of one game.
func (c *Coordinator) Get(gameID string) (game.Snapshot, error) {
	c.mu.Lock()
	s, ok := c.sessions[gameID]
	c.mu.Unlock()
	if !ok {
		return game.Snapshot{}, ErrNotFound
	}
	return s.Snapshot(), nil
}

// List returns snapshots of every known game, newest ULID first.
func (c *Coordinator) List() []game.Snapshot {
	c.mu.Lock()
	sessions := make([]*game.Session, 0, len(c.sessions))
	for _, s := range c.sessions {
		sessions = append(sessions, s)
	}
	c.mu.Unlock()

	sort.Slice(sessions, func(i, j int) bool { return sessions[i].GameID > sessions[j].GameID })
	out := make([]game.Snapshot, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, s.Snapshot())
	}
	return out
}
