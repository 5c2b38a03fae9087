package game

import (
	"context"
	"time"

	"github.com/coder/quartz"
	"github.com/rs/zerolog"
)

// RoundConfig carries everything one hand needs from its session.
type RoundConfig struct {
	GameID    string
	Number    int
	Players   []*Player
	Providers []DecisionProvider
	Deck      *Deck
	Button    int

	SmallBlind int64
	BigBlind   int64

	Clock           quartz.Clock
	TurnDelay       time.Duration
	DecisionTimeout time.Duration

	Ranker   HandRanker
	Recorder Recorder
	Notifier Notifier
	Logger   zerolog.Logger

	// OnProgress, when set, is called after the blinds and after each street
	// with the community cards and the running pot.
	OnProgress func(community []Card, pot int64, log []string)
}

// Round runs one complete hand: deal, blinds, four streets, settlement.
type Round struct {
	cfg RoundConfig

	RoundID   string
	Hands     []*Hand
	Community []Card
	Pots      []Pot
	TotalPot  int64
	Log       *ContextLog

	stacksBefore []int64
}

// RoundResult reports a settled hand.
type RoundResult struct {
	RoundID  string
	TotalPot int64
	Pots     []Pot
	Winnings map[string]int64
	FoldOut  bool
}

func NewRound(cfg RoundConfig) *Round {
	if cfg.Clock == nil {
		cfg.Clock = quartz.NewReal()
	}
	if cfg.Ranker == nil {
		cfg.Ranker = LibraryRanker{}
	}
	if cfg.Recorder == nil {
		cfg.Recorder = NopRecorder{}
	}
	if cfg.Notifier == nil {
		cfg.Notifier = NopNotifier{}
	}
	return &Round{
		cfg:     cfg,
		RoundID: NewID(),
		Log:     &ContextLog{},
	}
}

// Play drives the hand to settlement. A returned *InvariantViolation means
// the hand was aborted without awarding chips and the session should be
// flagged for review.
func (r *Round) Play(ctx context.Context) (*RoundResult, error) {
	r.stacksBefore = make([]int64, len(r.cfg.Players))
	for i, p := range r.cfg.Players {
		if p != nil {
			r.stacksBefore[i] = p.Stack
		}
	}

	r.record(ctx, "round", func(ctx context.Context) error {
		return r.cfg.Recorder.RoundStarted(ctx, RoundRecord{
			GameID: r.cfg.GameID, RoundID: r.RoundID, Number: r.cfg.Number, Button: r.cfg.Button,
		})
	})

	r.deal(ctx)

	smallBlind, bigBlind, err := r.postBlinds(ctx)
	if err != nil {
		return nil, err
	}
	r.progress()

	n := len(r.cfg.Players)
	underTheGun := NextNonEmptySeat(r.cfg.Players, (bigBlind+1)%n, n)

	streets := []struct {
		street Street
		reveal int
		start  int
	}{
		{StreetPreFlop, 0, underTheGun},
		{StreetFlop, 3, smallBlind},
		{StreetTurn, 1, smallBlind},
		{StreetRiver, 1, smallBlind},
	}

	for _, st := range streets {
		if r.nonFolded() <= 1 {
			break
		}
		r.revealCommunity(ctx, st.street, st.reveal)
		if err := r.runStreet(ctx, st.street, st.start); err != nil {
			return nil, err
		}
		r.progress()
	}

	return r.settle(ctx)
}

// deal gives two cards to every occupied seat and a pre-folded, zero-card
// placeholder to every empty one, so downstream loops treat seats uniformly.
func (r *Round) deal(ctx context.Context) {
	r.Hands = make([]*Hand, len(r.cfg.Players))
	for seat, p := range r.cfg.Players {
		hand := &Hand{Seat: seat}
		if p.Empty() {
			hand.Folded = true
			hand.Acted = true
			r.Hands[seat] = hand
			continue
		}
		hand.PlayerID = p.ID
		hand.Hole = []Card{r.cfg.Deck.Deal(), r.cfg.Deck.Deal()}
		r.Hands[seat] = hand

		rec := HandRecord{
			GameID: r.cfg.GameID, RoundID: r.RoundID, HandID: NewID(),
			PlayerID: p.ID, Seat: seat, Cards: hand.Hole,
		}
		r.record(ctx, "hand", func(ctx context.Context) error {
			return r.cfg.Recorder.HandDealt(ctx, rec)
		})
	}
}

func (r *Round) postBlinds(ctx context.Context) (smallBlind, bigBlind int, err error) {
	players := r.cfg.Players
	n := len(players)

	if players[r.cfg.Button].Empty() {
		return 0, 0, r.violation("button_on_empty_seat")
	}
	smallBlind = NextNonEmptySeat(players, (r.cfg.Button+1)%n, n)
	bigBlind = NextNonEmptySeat(players, (smallBlind+1)%n, n)
	if players[smallBlind].Empty() || players[bigBlind].Empty() || smallBlind == bigBlind {
		return 0, 0, r.violation("blind_on_empty_seat")
	}

	r.postBlind(ctx, smallBlind, r.cfg.SmallBlind, "small blind")
	r.postBlind(ctx, bigBlind, r.cfg.BigBlind, "big blind")
	return smallBlind, bigBlind, nil
}

// postBlind is a forced contribution: capped at the stack, marking the hand
// all-in if it consumes it.
func (r *Round) postBlind(ctx context.Context, seat int, amount int64, label string) {
	player := r.cfg.Players[seat]
	hand := r.Hands[seat]
	if amount > player.Stack {
		amount = player.Stack
	}
	player.Stack -= amount
	hand.Amount += amount
	hand.Contributed += amount
	if player.Stack == 0 {
		hand.AllIn = true
	}
	r.TotalPot += amount
	r.Log.Addf("%s posted the %s", player.Name, label)

	r.record(ctx, "blind", func(ctx context.Context) error {
		return r.cfg.Recorder.ActionTaken(ctx, ActionRecord{
			GameID: r.cfg.GameID, RoundID: r.RoundID, PlayerID: player.ID, Seat: seat,
			Street: StreetPreFlop, Kind: ActionBet, Amount: amount,
			Reasoning: "Posted the " + label, Forced: true,
		})
	})
	r.record(ctx, "blind_debit", func(ctx context.Context) error {
		return r.cfg.Recorder.ChipsMoved(ctx, TransactionRecord{
			GameID: r.cfg.GameID, RoundID: r.RoundID, PlayerID: player.ID,
			Amount: amount, Credit: false, Reason: "blind",
		})
	})
}

func (r *Round) revealCommunity(ctx context.Context, street Street, count int) {
	if count == 0 {
		return
	}
	dealt := make([]Card, 0, count)
	for i := 0; i < count; i++ {
		dealt = append(dealt, r.cfg.Deck.Deal())
	}
	r.Community = append(r.Community, dealt...)
	switch street {
	case StreetFlop:
		r.Log.Addf("The flop cards are %s, %s, %s", dealt[0], dealt[1], dealt[2])
	case StreetTurn:
		r.Log.Addf("The turn card is %s", dealt[0])
	case StreetRiver:
		r.Log.Addf("The river card is %s", dealt[0])
	}
	r.record(ctx, "community", func(ctx context.Context) error {
		return r.cfg.Recorder.CommunityRevealed(ctx, r.cfg.GameID, r.RoundID, street, r.Community)
	})
}

func (r *Round) runStreet(ctx context.Context, street Street, start int) error {
	var highest, streetPot int64
	for _, h := range r.Hands {
		if h.Amount > highest {
			highest = h.Amount
		}
		streetPot += h.Amount
	}

	br := &BettingRound{
		Players:         r.cfg.Players,
		Hands:           r.Hands,
		Providers:       r.cfg.Providers,
		Button:          r.cfg.Button,
		Street:          street,
		Log:             r.Log,
		HighestBet:      highest,
		Pot:             streetPot,
		Clock:           r.cfg.Clock,
		TurnDelay:       r.cfg.TurnDelay,
		DecisionTimeout: r.cfg.DecisionTimeout,
		Logger:          r.cfg.Logger,
		OnAction: func(rec ActionRecord) {
			rec.GameID = r.cfg.GameID
			rec.RoundID = r.RoundID
			r.record(ctx, "action", func(ctx context.Context) error {
				return r.cfg.Recorder.ActionTaken(ctx, rec)
			})
			if rec.Kind == ActionBet && rec.Amount > 0 {
				r.record(ctx, "bet_debit", func(ctx context.Context) error {
					return r.cfg.Recorder.ChipsMoved(ctx, TransactionRecord{
						GameID: r.cfg.GameID, RoundID: r.RoundID, PlayerID: rec.PlayerID,
						Amount: rec.Amount, Credit: false, Reason: "bet",
					})
				})
			}
		},
	}

	if err := br.Run(ctx, start); err != nil {
		return err
	}

	r.TotalPot += br.Pot - streetPot
	for _, h := range r.Hands {
		h.Amount = 0
		if !h.Folded {
			h.Acted = false
		}
	}
	return nil
}

func (r *Round) nonFolded() int {
	n := 0
	for _, h := range r.Hands {
		if !h.Folded {
			n++
		}
	}
	return n
}

func (r *Round) settle(ctx context.Context) (*RoundResult, error) {
	result := &RoundResult{
		RoundID:  r.RoundID,
		TotalPot: r.TotalPot,
		Winnings: map[string]int64{},
	}

	var contributed int64
	for _, h := range r.Hands {
		contributed += h.Contributed
	}

	var survivors []int
	for _, h := range r.Hands {
		if !h.Folded {
			survivors = append(survivors, h.Seat)
		}
	}

	switch {
	case len(survivors) == 0:
		return nil, r.violation("no_surviving_hands")
	case len(survivors) == 1:
		// Fold-out: award the whole pot directly, no card reveal.
		result.FoldOut = true
		r.award(ctx, survivors[0], contributed, result)
	default:
		r.Pots = ComputePots(r.Hands)
		result.Pots = r.Pots
		if PotTotal(r.Pots) != contributed {
			return nil, r.violation("pot_total_mismatch")
		}
		for _, pot := range r.Pots {
			if len(pot.Eligible) == 0 {
				return nil, r.violation("pot_without_eligible_hands")
			}
			winners, err := ResolvePot(r.cfg.Ranker, r.Hands, r.Community, pot)
			if err != nil {
				return nil, r.violation("showdown_evaluation_failed")
			}
			if len(winners) == 0 {
				return nil, r.violation("pot_without_winners")
			}
			shares := SplitPot(pot.Amount, len(winners))
			for i, seat := range winners {
				r.award(ctx, seat, shares[i], result)
			}
		}
	}

	if err := r.checkConservation(); err != nil {
		return nil, err
	}

	r.record(ctx, "settled", func(ctx context.Context) error {
		return r.cfg.Recorder.RoundSettled(ctx, r.cfg.GameID, r.RoundID, r.TotalPot)
	})
	r.notify()
	return result, nil
}

func (r *Round) award(ctx context.Context, seat int, amount int64, result *RoundResult) {
	if amount <= 0 {
		return
	}
	player := r.cfg.Players[seat]
	player.Stack += amount
	result.Winnings[player.ID] += amount
	r.Log.Addf("%s won %d chips", player.Name, amount)

	r.record(ctx, "pot_credit", func(ctx context.Context) error {
		return r.cfg.Recorder.ChipsMoved(ctx, TransactionRecord{
			GameID: r.cfg.GameID, RoundID: r.RoundID, PlayerID: player.ID,
			Amount: amount, Credit: true, Reason: "pot",
		})
	})
}

// checkConservation verifies that settlement moved chips between players
// without creating or destroying any.
func (r *Round) checkConservation() error {
	var before, after int64
	for i, p := range r.cfg.Players {
		before += r.stacksBefore[i]
		if p != nil {
			after += p.Stack
		}
	}
	if before != after {
		r.cfg.Logger.Error().
			Int64("stacks_before", before).
			Int64("stacks_after", after).
			Interface("hands", r.Hands).
			Interface("pots", r.Pots).
			Msg("chip conservation violated, aborting round")
		return r.violation("chip_conservation_mismatch")
	}
	return nil
}

// notify hands the net winners and losers of the hand to the notifier. The
// notifier is required to be non-blocking; in-memory chip state is final
// regardless of what happens to the notification.
func (r *Round) notify() {
	s := Settlement{GameID: r.cfg.GameID, RoundID: r.RoundID}
	for i, p := range r.cfg.Players {
		if p.Empty() {
			continue
		}
		delta := p.Stack - r.stacksBefore[i]
		switch {
		case delta > 0:
			s.Winners = append(s.Winners, PlayerDelta{PlayerID: p.ID, Chips: delta})
		case delta < 0:
			s.Losers = append(s.Losers, PlayerDelta{PlayerID: p.ID, Chips: -delta})
		}
	}
	if len(s.Winners) == 0 && len(s.Losers) == 0 {
		return
	}
	r.cfg.Notifier.Notify(s)
}

// record runs a persistence write with one retry, logging failures. Audit
// trail unavailability never stops a hand.
func (r *Round) record(ctx context.Context, op string, fn func(context.Context) error) {
	err := fn(ctx)
	if err == nil {
		return
	}
	if err = fn(ctx); err == nil {
		return
	}
	r.cfg.Logger.Warn().Err(err).Str("op", op).Str("round_id", r.RoundID).
		Msg("audit write failed")
}

func (r *Round) progress() {
	if r.cfg.OnProgress != nil {
		r.cfg.OnProgress(append([]Card(nil), r.Community...), r.TotalPot, r.Log.Lines())
	}
}

func (r *Round) violation(reason string) error {
	return &InvariantViolation{GameID: r.cfg.GameID, RoundID: r.RoundID, Reason: reason}
}
