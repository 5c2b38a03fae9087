package game

import (
	"context"
	"time"

	"github.com/coder/quartz"
	"github.com/rs/zerolog"
)

const DefaultDecisionTimeout = 30 * time.Second

// BettingRound drives a single street to completion. It owns no persistence:
// the orchestrating layer observes actions through OnAction.
type BettingRound struct {
	Players   []*Player
	Hands     []*Hand
	Providers []DecisionProvider
	Button    int
	Street    Street
	Log       *ContextLog

	// HighestBet and Pot are seeded by the caller (blinds preflop, zero after)
	// and updated as actions apply. Pot covers this street only.
	HighestBet int64
	Pot        int64

	Clock           quartz.Clock
	TurnDelay       time.Duration
	DecisionTimeout time.Duration

	OnAction func(ActionRecord)

	Logger zerolog.Logger
}

// Run iterates seats from start, wrapping, until every live hand has acted
// and matched the highest bet, or at most one non-folded hand remains.
func (b *BettingRound) Run(ctx context.Context, start int) error {
	if b.Clock == nil {
		b.Clock = quartz.NewReal()
	}
	seat := start
	for !b.complete() {
		if err := ctx.Err(); err != nil {
			return err
		}
		hand := b.Hands[seat]
		if hand.Folded || hand.AllIn || b.Players[seat].Empty() {
			seat = (seat + 1) % len(b.Hands)
			continue
		}
		b.pause(ctx)
		dec := b.decide(ctx, seat)
		b.apply(seat, dec)
		if b.nonFolded() <= 1 {
			break
		}
		seat = (seat + 1) % len(b.Hands)
	}
	return nil
}

func (b *BettingRound) complete() bool {
	if b.nonFolded() <= 1 {
		return true
	}
	for _, h := range b.Hands {
		if h.Folded || h.AllIn {
			continue
		}
		if !h.Acted || h.Amount != b.HighestBet {
			return false
		}
	}
	return true
}

func (b *BettingRound) nonFolded() int {
	n := 0
	for _, h := range b.Hands {
		if !h.Folded {
			n++
		}
	}
	return n
}

func (b *BettingRound) pause(ctx context.Context) {
	if b.TurnDelay <= 0 {
		return
	}
	done := make(chan struct{})
	timer := b.Clock.AfterFunc(b.TurnDelay, func() { close(done) })
	defer timer.Stop()
	select {
	case <-done:
	case <-ctx.Done():
	}
}

type providerResult struct {
	dec Decision
	err error
}

// decide requests an action from the seat's provider, bounded by the decision
// timeout. Any failure collapses to a fold so the session never stalls.
func (b *BettingRound) decide(ctx context.Context, seat int) Decision {
	hand := b.Hands[seat]
	player := b.Players[seat]
	provider := b.Providers[seat]
	if provider == nil {
		return Decision{Kind: ActionFold, Reasoning: "No decision provider for seat"}
	}

	req := DecisionRequest{
		Hole:      append([]Card(nil), hand.Hole...),
		BetToCall: b.HighestBet - hand.Amount,
		Pot:       b.Pot,
		Stack:     player.Stack,
		Position:  PositionLabel(seat, b.Button, len(b.Hands)),
		Context:   b.Log.Lines(),
		Notes:     player.Notes,
	}

	timeout := b.DecisionTimeout
	if timeout <= 0 {
		timeout = DefaultDecisionTimeout
	}

	// The call gets its own context so an abandoned provider is cancelled
	// when the turn moves on, not left running for the rest of the round.
	dctx, cancel := context.WithCancel(ctx)
	defer cancel()

	resCh := make(chan providerResult, 1)
	go func() {
		dec, err := provider.Decide(dctx, req)
		resCh <- providerResult{dec: dec, err: err}
	}()

	fired := make(chan struct{})
	timer := b.Clock.AfterFunc(timeout, func() { close(fired) })
	defer timer.Stop()

	select {
	case res := <-resCh:
		if res.err != nil {
			b.Logger.Warn().Err(res.err).Str("player", player.ID).Str("street", string(b.Street)).
				Msg("decision provider failed, folding")
			return Decision{Kind: ActionFold, Reasoning: "Decision provider error"}
		}
		return res.dec
	case <-fired:
		b.Logger.Warn().Str("player", player.ID).Str("street", string(b.Street)).
			Dur("timeout", timeout).Msg("decision timed out, folding")
		return Decision{Kind: ActionFold, Reasoning: "Decision timeout"}
	case <-ctx.Done():
		return Decision{Kind: ActionFold, Reasoning: "Round cancelled"}
	}
}

// apply mutates hand, stack and pot state for one decision. Illegal inputs
// (checking while behind, betting less than the call without going all-in)
// are normalized to folds; the only amount rewrite is the all-in clamp.
func (b *BettingRound) apply(seat int, dec Decision) {
	hand := b.Hands[seat]
	player := b.Players[seat]
	need := b.HighestBet - hand.Amount

	if dec.Kind == ActionCheck && need != 0 {
		dec = Decision{Kind: ActionFold, Reasoning: "Checked while facing a bet"}
	}
	if dec.Kind == ActionBet {
		if dec.Amount <= 0 && need == 0 {
			dec = Decision{Kind: ActionCheck, Reasoning: dec.Reasoning}
		} else if dec.Amount <= 0 {
			dec = Decision{Kind: ActionFold, Reasoning: "Bet nothing while facing a bet"}
		} else if dec.Amount < need && dec.Amount < player.Stack {
			dec = Decision{Kind: ActionFold, Reasoning: "Bet below the amount to call"}
		}
	}

	rec := ActionRecord{
		PlayerID:  player.ID,
		Seat:      seat,
		Street:    b.Street,
		Kind:      dec.Kind,
		Reasoning: dec.Reasoning,
	}

	switch dec.Kind {
	case ActionFold:
		hand.Folded = true
		hand.Acted = true
		b.Log.Addf("%s folded", player.Name)
	case ActionCheck:
		hand.Acted = true
		b.Log.Addf("%s checked", player.Name)
	case ActionBet:
		amount := dec.Amount
		if amount > player.Stack {
			amount = player.Stack
		}
		player.Stack -= amount
		hand.Amount += amount
		hand.Contributed += amount
		b.Pot += amount
		hand.Acted = true
		rec.Amount = amount

		if hand.Amount > b.HighestBet {
			b.HighestBet = hand.Amount
			for _, other := range b.Hands {
				if other.Seat == seat || other.Folded || other.AllIn {
					continue
				}
				other.Acted = false
			}
			b.Log.Addf("%s raised to %d (bet %d chips)", player.Name, hand.Amount, amount)
		} else {
			b.Log.Addf("%s called %d", player.Name, amount)
		}
		if player.Stack == 0 {
			hand.AllIn = true
			b.Log.Addf("%s went all-in with %d", player.Name, amount)
		}
	}

	if b.OnAction != nil {
		b.OnAction(rec)
	}
}
