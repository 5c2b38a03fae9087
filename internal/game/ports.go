package game

import "context"

// DecisionRequest is everything a seat's decision-maker sees for one turn.
type DecisionRequest struct {
	Hole      []Card
	BetToCall int64
	Pot       int64
	Stack     int64
	Position  string
	Context   []string
	Notes     string
}

// DecisionProvider chooses an action for a seat. Implementations may be slow
// network round-trips; the engine bounds each call with a timeout and treats
// errors as folds.
type DecisionProvider interface {
	Decide(ctx context.Context, req DecisionRequest) (Decision, error)
}

type GameRecord struct {
	GameID      string
	TotalRounds int
	Button      int
}

type RoundRecord struct {
	GameID  string
	RoundID string
	Number  int
	Button  int
}

type HandRecord struct {
	GameID   string
	RoundID  string
	HandID   string
	PlayerID string
	Seat     int
	Cards    []Card
	Folded   bool
}

type ActionRecord struct {
	GameID    string
	RoundID   string
	PlayerID  string
	Seat      int
	Street    Street
	Kind      ActionKind
	Amount    int64
	Reasoning string
	Forced    bool
}

type TransactionRecord struct {
	GameID   string
	RoundID  string
	PlayerID string
	Amount   int64
	Credit   bool
	Reason   string
}

// Recorder is the append-only audit port. Implementations must be best-effort:
// a failing recorder never stops a hand.
type Recorder interface {
	GameStarted(ctx context.Context, rec GameRecord) error
	RoundStarted(ctx context.Context, rec RoundRecord) error
	HandDealt(ctx context.Context, rec HandRecord) error
	CommunityRevealed(ctx context.Context, gameID, roundID string, street Street, cards []Card) error
	ActionTaken(ctx context.Context, rec ActionRecord) error
	ChipsMoved(ctx context.Context, rec TransactionRecord) error
	RoundSettled(ctx context.Context, gameID, roundID string, pot int64) error
}

type NopRecorder struct{}

func (NopRecorder) GameStarted(context.Context, GameRecord) error   { return nil }
func (NopRecorder) RoundStarted(context.Context, RoundRecord) error { return nil }
func (NopRecorder) HandDealt(context.Context, HandRecord) error     { return nil }
func (NopRecorder) CommunityRevealed(context.Context, string, string, Street, []Card) error {
	return nil
}
func (NopRecorder) ActionTaken(context.Context, ActionRecord) error       { return nil }
func (NopRecorder) ChipsMoved(context.Context, TransactionRecord) error   { return nil }
func (NopRecorder) RoundSettled(context.Context, string, string, int64) error { return nil }

type PlayerDelta struct {
	PlayerID string
	Chips    int64
}

// Settlement is the net outcome of one round, emitted after chips have been
// applied in memory.
type Settlement struct {
	GameID  string
	RoundID string
	Winners []PlayerDelta
	Losers  []PlayerDelta
}

// Notifier receives settlements fire-and-forget. Implementations must not
// block the game loop.
type Notifier interface {
	Notify(s Settlement)
}

type NopNotifier struct{}

func (NopNotifier) Notify(Settlement) {}
