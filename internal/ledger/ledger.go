package ledger

import (
	"context"

	"holdem-arena/internal/game"
	"holdem-arena/internal/store"
)

// Ledger persists the engine's audit records through the store. It implements
// game.Recorder; the engine treats every write as best-effort.
type Ledger struct {
	Store *store.Store
}

func New(s *store.Store) *Ledger {
	return &Ledger{Store: s}
}

func (l *Ledger) GameStarted(ctx context.Context, rec game.GameRecord) error {
	return l.Store.InsertGame(ctx, store.GameRow{
		ID:          rec.GameID,
		TotalRounds: rec.TotalRounds,
		Button:      rec.Button,
	})
}

func (l *Ledger) RoundStarted(ctx context.Context, rec game.RoundRecord) error {
	return l.Store.InsertRound(ctx, store.RoundRow{
		ID:     rec.RoundID,
		GameID: rec.GameID,
		Number: rec.Number,
		Button: rec.Button,
	})
}

func (l *Ledger) HandDealt(ctx context.Context, rec game.HandRecord) error {
	return l.Store.InsertHand(ctx, store.HandRow{
		ID:       rec.HandID,
		RoundID:  rec.RoundID,
		PlayerID: rec.PlayerID,
		Seat:     rec.Seat,
		Cards:    game.CardStrings(rec.Cards),
	})
}

func (l *Ledger) CommunityRevealed(ctx context.Context, _ string, roundID string, _ game.Street, cards []game.Card) error {
	return l.Store.UpdateRoundCommunity(ctx, roundID, game.CardStrings(cards))
}

func (l *Ledger) ActionTaken(ctx context.Context, rec game.ActionRecord) error {
	return l.Store.InsertAction(ctx, store.ActionRow{
		RoundID:   rec.RoundID,
		PlayerID:  rec.PlayerID,
		Seat:      rec.Seat,
		Street:    string(rec.Street),
		Kind:      string(rec.Kind),
		Amount:    rec.Amount,
		Reasoning: rec.Reasoning,
		Forced:    rec.Forced,
	})
}

func (l *Ledger) ChipsMoved(ctx context.Context, rec game.TransactionRecord) error {
	return l.Store.InsertTransaction(ctx, store.TransactionRow{
		RoundID:  rec.RoundID,
		PlayerID: rec.PlayerID,
		Amount:   rec.Amount,
		Credit:   rec.Credit,
		Reason:   rec.Reason,
	})
}

func (l *Ledger) RoundSettled(ctx context.Context, _ string, roundID string, pot int64) error {
	return l.Store.SettleRound(ctx, roundID, pot)
}
