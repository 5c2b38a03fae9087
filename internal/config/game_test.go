package config

import (
	"testing"
	"time"
)

func TestLoadGameDefaults(t *testing.T) {
	cfg, err := LoadGame()
	if err != nil {
		t.Fatalf("LoadGame() error = %v", err)
	}
	if cfg.SeatCount != 6 {
		t.Fatalf("SeatCount = %d, want 6", cfg.SeatCount)
	}
	if cfg.SmallBlind != 50 || cfg.BigBlind != 100 {
		t.Fatalf("blinds = %d/%d, want 50/100", cfg.SmallBlind, cfg.BigBlind)
	}
	if cfg.InitialStack != 2000 {
		t.Fatalf("InitialStack = %d, want 2000", cfg.InitialStack)
	}
	if cfg.HandsPerGame != 3 {
		t.Fatalf("HandsPerGame = %d, want 3", cfg.HandsPerGame)
	}
	if cfg.DecisionTimeout != 30*time.Second {
		t.Fatalf("DecisionTimeout = %v, want 30s", cfg.DecisionTimeout)
	}
}

func TestLoadGameParseTypes(t *testing.T) {
	t.Setenv("SEAT_COUNT", "9")
	t.Setenv("TURN_DELAY", "0s")
	t.Setenv("INITIAL_STACK", "5000")
	t.Setenv("RESET_BUSTED", "false")

	cfg, err := LoadGame()
	if err != nil {
		t.Fatalf("LoadGame() error = %v", err)
	}
	if cfg.SeatCount != 9 {
		t.Fatalf("SeatCount = %d, want 9", cfg.SeatCount)
	}
	if cfg.TurnDelay != 0 {
		t.Fatalf("TurnDelay = %v, want 0", cfg.TurnDelay)
	}
	if cfg.InitialStack != 5000 {
		t.Fatalf("InitialStack = %d, want 5000", cfg.InitialStack)
	}
	if cfg.ResetBusted {
		t.Fatal("ResetBusted = true, want false")
	}
}
