package bots

import (
	"context"
	"testing"

	"holdem-arena/internal/game"
)

func TestCallingStation(t *testing.T) {
	var b CallingStation
	dec, err := b.Decide(context.Background(), game.DecisionRequest{BetToCall: 100, Stack: 500})
	if err != nil {
		t.Fatalf("Decide: %v", err)
	}
	if dec.Kind != game.ActionBet || dec.Amount != 100 {
		t.Fatalf("decision = %+v, want a 100 call", dec)
	}
	dec, _ = b.Decide(context.Background(), game.DecisionRequest{BetToCall: 0})
	if dec.Kind != game.ActionCheck {
		t.Fatalf("decision = %+v, want a check", dec)
	}
}

func TestFolderFoldsToBets(t *testing.T) {
	var b Folder
	dec, _ := b.Decide(context.Background(), game.DecisionRequest{BetToCall: 50})
	if dec.Kind != game.ActionFold {
		t.Fatalf("decision = %+v, want a fold", dec)
	}
	dec, _ = b.Decide(context.Background(), game.DecisionRequest{})
	if dec.Kind != game.ActionCheck {
		t.Fatalf("decision = %+v, want a check", dec)
	}
}

func TestRandomNeverExceedsStack(t *testing.T) {
	b := NewRandom(1)
	for i := 0; i < 200; i++ {
		dec, err := b.Decide(context.Background(), game.DecisionRequest{
			BetToCall: 100, Pot: 500, Stack: 120,
		})
		if err != nil {
			t.Fatalf("Decide: %v", err)
		}
		if dec.Kind == game.ActionBet && dec.Amount > 120 {
			t.Fatalf("bet %d exceeds the 120 stack", dec.Amount)
		}
	}
}

func TestByName(t *testing.T) {
	if _, ok := ByName("random", 1).(*Random); !ok {
		t.Fatal("random should build a Random bot")
	}
	if _, ok := ByName("folder", 1).(Folder); !ok {
		t.Fatal("folder should build a Folder bot")
	}
	if _, ok := ByName("anything", 1).(CallingStation); !ok {
		t.Fatal("unknown names should fall back to CallingStation")
	}
}
