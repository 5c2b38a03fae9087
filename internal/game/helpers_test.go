package game

import (
	"context"
	"errors"
	"sync"
)

// scriptProvider replays a fixed list of decisions, then checks forever.
type scriptProvider struct {
	mu        sync.Mutex
	decisions []Decision
	requests  []DecisionRequest
}

func script(decisions ...Decision) *scriptProvider {
	return &scriptProvider{decisions: decisions}
}

func (p *scriptProvider) Decide(_ context.Context, req DecisionRequest) (Decision, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.requests = append(p.requests, req)
	if len(p.decisions) == 0 {
		return Decision{Kind: ActionCheck}, nil
	}
	d := p.decisions[0]
	p.decisions = p.decisions[1:]
	return d, nil
}

func (p *scriptProvider) seen() []DecisionRequest {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]DecisionRequest(nil), p.requests...)
}

// errProvider always fails.
type errProvider struct{}

func (errProvider) Decide(context.Context, DecisionRequest) (Decision, error) {
	return Decision{}, errors.New("provider_down")
}

// blockProvider never answers until the context is cancelled.
type blockProvider struct{}

func (blockProvider) Decide(ctx context.Context, _ DecisionRequest) (Decision, error) {
	<-ctx.Done()
	return Decision{}, ctx.Err()
}

// providerFunc adapts a bare function to DecisionProvider.
type providerFunc func(context.Context, DecisionRequest) (Decision, error)

func (f providerFunc) Decide(ctx context.Context, req DecisionRequest) (Decision, error) {
	return f(ctx, req)
}

// callProvider calls any bet and checks otherwise.
type callProvider struct{}

func (callProvider) Decide(_ context.Context, req DecisionRequest) (Decision, error) {
	if req.BetToCall > 0 {
		return Decision{Kind: ActionBet, Amount: req.BetToCall}, nil
	}
	return Decision{Kind: ActionCheck}, nil
}

func bet(amount int64) Decision { return Decision{Kind: ActionBet, Amount: amount} }
func check() Decision           { return Decision{Kind: ActionCheck} }
func fold() Decision            { return Decision{Kind: ActionFold} }

func agent(id string, stack int64) *Player {
	return &Player{ID: id, Name: id, Stack: stack, Occupant: OccupantAgent}
}

func emptySeat() *Player {
	return &Player{Occupant: OccupantEmpty}
}

func freshHands(players []*Player) []*Hand {
	hands := make([]*Hand, len(players))
	for i, p := range players {
		hands[i] = &Hand{Seat: i, PlayerID: p.ID}
		if p.Empty() {
			hands[i].Folded = true
			hands[i].Acted = true
		}
	}
	return hands
}

func totalStacks(players []*Player) int64 {
	var sum int64
	for _, p := range players {
		if !p.Empty() {
			sum += p.Stack
		}
	}
	return sum
}
