package bots

import (
	"context"
	"math/rand"
	"sync"

	"holdem-arena/internal/game"
)

// Random mixes checks, calls, folds and raises. Useful for soak-testing the
// engine; it plays terrible poker.
type Random struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func NewRandom(seed int64) *Random {
	return &Random{rnd: rand.New(rand.NewSource(seed))}
}

func (b *Random) Decide(_ context.Context, req game.DecisionRequest) (game.Decision, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if req.BetToCall == 0 {
		if b.rnd.Intn(2) == 0 {
			return game.Decision{Kind: game.ActionCheck, Reasoning: "Feeling passive"}, nil
		}
		bet := req.Pot / 2
		if bet <= 0 {
			bet = 100
		}
		if bet > req.Stack {
			bet = req.Stack
		}
		return game.Decision{Kind: game.ActionBet, Amount: bet, Reasoning: "Taking a stab"}, nil
	}

	switch b.rnd.Intn(3) {
	case 0:
		return game.Decision{Kind: game.ActionFold, Reasoning: "Not worth it"}, nil
	case 1:
		return game.Decision{Kind: game.ActionBet, Amount: req.BetToCall, Reasoning: "Calling to see"}, nil
	default:
		raise := req.BetToCall * 2
		if raise > req.Stack {
			raise = req.Stack
		}
		return game.Decision{Kind: game.ActionBet, Amount: raise, Reasoning: "Raising the pressure"}, nil
	}
}

// CallingStation calls every bet and checks when there is nothing to call.
type CallingStation struct{}

func (CallingStation) Decide(_ context.Context, req game.DecisionRequest) (game.Decision, error) {
	if req.BetToCall > 0 {
		return game.Decision{Kind: game.ActionBet, Amount: req.BetToCall, Reasoning: "I always call"}, nil
	}
	return game.Decision{Kind: game.ActionCheck, Reasoning: "Nothing to call"}, nil
}

// Folder folds to any bet and otherwise checks. The tightest player alive.
type Folder struct{}

func (Folder) Decide(_ context.Context, req game.DecisionRequest) (game.Decision, error) {
	if req.BetToCall > 0 {
		return game.Decision{Kind: game.ActionFold, Reasoning: "Too rich for me"}, nil
	}
	return game.Decision{Kind: game.ActionCheck, Reasoning: "Free card"}, nil
}

// ByName builds a provider from its configured name; unknown names get a
// calling station.
func ByName(name string, seed int64) game.DecisionProvider {
	switch name {
	case "random":
		return NewRandom(seed)
	case "folder":
		return Folder{}
	default:
		return CallingStation{}
	}
}
