package game

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
)

func validSessionConfig() SessionConfig {
	return SessionConfig{
		Players:      []*Player{agent("a", 0), agent("b", 0)},
		Providers:    []DecisionProvider{callProvider{}, callProvider{}},
		Hands:        3,
		SmallBlind:   50,
		BigBlind:     100,
		InitialStack: 2000,
		Logger:       zerolog.Nop(),
	}
}

func TestNewSessionValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*SessionConfig)
		want   error
	}{
		{
			name: "too few seats",
			mutate: func(c *SessionConfig) {
				c.Players = c.Players[:1]
				c.Providers = c.Providers[:1]
			},
			want: ErrTooFewSeats,
		},
		{
			name: "too few agents",
			mutate: func(c *SessionConfig) {
				c.Players[1] = emptySeat()
				c.Providers[1] = nil
			},
			want: ErrTooFewAgents,
		},
		{
			name: "more agents than one deck can deal",
			mutate: func(c *SessionConfig) {
				c.Players = nil
				c.Providers = nil
				for i := 0; i < MaxAgents+1; i++ {
					c.Players = append(c.Players, agent("p", 0))
					c.Providers = append(c.Providers, callProvider{})
				}
			},
			want: ErrTooManyAgents,
		},
		{
			name:   "bad initial stack",
			mutate: func(c *SessionConfig) { c.InitialStack = 0 },
			want:   ErrBadInitialStack,
		},
		{
			name:   "zero small blind",
			mutate: func(c *SessionConfig) { c.SmallBlind = 0 },
			want:   ErrBadBlinds,
		},
		{
			name:   "big blind not above small",
			mutate: func(c *SessionConfig) { c.BigBlind = c.SmallBlind },
			want:   ErrBadBlinds,
		},
		{
			name:   "bad hand count",
			mutate: func(c *SessionConfig) { c.Hands = 0 },
			want:   ErrBadHandCount,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validSessionConfig()
			tt.mutate(&cfg)
			if _, err := NewSession(cfg); !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestNewSessionRejectsMissingProvider(t *testing.T) {
	cfg := validSessionConfig()
	cfg.Providers[1] = nil
	if _, err := NewSession(cfg); err == nil {
		t.Fatal("an occupied seat without a provider must be rejected")
	}
}

func TestSessionRunConservesChips(t *testing.T) {
	cfg := validSessionConfig()
	cfg.Seed = 42
	s, err := NewSession(cfg)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	snap := s.Snapshot()
	if snap.Status != StatusFinished {
		t.Fatalf("status = %q, want finished", snap.Status)
	}
	if snap.Round != 3 {
		t.Fatalf("round = %d, want 3", snap.Round)
	}
	if got := totalStacks(cfg.Players); got != 4000 {
		t.Fatalf("total chips = %d, want 4000", got)
	}
}

func TestSessionButtonRotates(t *testing.T) {
	cfg := validSessionConfig()
	cfg.Seed = 7
	s, err := NewSession(cfg)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	if got := s.Snapshot().Button; got != 0 {
		t.Fatalf("initial button = %d, want 0", got)
	}
	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	// Three hands heads-up: 0 -> 1 -> 0 -> 1.
	if got := s.Snapshot().Button; got != 1 {
		t.Fatalf("button = %d after three hands, want 1", got)
	}
}

func TestSessionCancelledBetweenHands(t *testing.T) {
	cfg := validSessionConfig()
	s, err := NewSession(cfg)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := s.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if got := s.Snapshot().Status; got != StatusAborted {
		t.Fatalf("status = %q, want aborted", got)
	}
}

func TestSessionResetsBustedPlayers(t *testing.T) {
	cfg := validSessionConfig()
	cfg.ResetBusted = true
	s, err := NewSession(cfg)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	cfg.Players[0].Stack = 0
	s.resetBusted(context.Background(), "r1", zerolog.Nop())
	if got := cfg.Players[0].Stack; got != cfg.InitialStack {
		t.Fatalf("stack = %d after reset, want %d", got, cfg.InitialStack)
	}
	if got := cfg.Players[1].Stack; got != cfg.InitialStack {
		t.Fatalf("stack = %d, an unbusted player must not change", got)
	}
}

func TestSessionSnapshotCopiesState(t *testing.T) {
	cfg := validSessionConfig()
	cfg.Players = append(cfg.Players, emptySeat())
	cfg.Providers = append(cfg.Providers, nil)
	s, err := NewSession(cfg)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	snap := s.Snapshot()
	if len(snap.Players) != 3 {
		t.Fatalf("players = %d, want 3", len(snap.Players))
	}
	if !snap.Players[2].Empty {
		t.Fatal("seat 2 should be marked empty")
	}
	if snap.Players[0].Stack != cfg.InitialStack {
		t.Fatalf("stack = %d, want %d", snap.Players[0].Stack, cfg.InitialStack)
	}
	if snap.Status != StatusPending {
		t.Fatalf("status = %q, want pending before Run", snap.Status)
	}
}
