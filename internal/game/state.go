package game

type Occupant string

const (
	OccupantAgent Occupant = "agent"
	OccupantEmpty Occupant = "empty"
)

// Player persists across the whole game. Empty seats keep a placeholder
// player so seat loops never special-case them.
type Player struct {
	ID       string
	Name     string
	Stack    int64
	Occupant Occupant
	Notes    string
}

func (p *Player) Empty() bool {
	return p == nil || p.Occupant == OccupantEmpty
}

// Hand is the per-seat state for a single round. Amount is the commitment on
// the current street only; Contributed accumulates across all streets of the
// round and is what pot tiers are computed from.
type Hand struct {
	Seat        int
	PlayerID    string
	Hole        []Card
	Amount      int64
	Contributed int64
	Folded      bool
	AllIn       bool
	Acted       bool
}

// Pot is one contribution tier. Eligible holds seat indexes of the hands that
// may win it.
type Pot struct {
	Amount   int64
	Eligible []int
}

func PotTotal(pots []Pot) int64 {
	var total int64
	for _, p := range pots {
		total += p.Amount
	}
	return total
}

type Street string

const (
	StreetPreFlop Street = "preflop"
	StreetFlop    Street = "flop"
	StreetTurn    Street = "turn"
	StreetRiver   Street = "river"
)

type ActionKind string

const (
	ActionFold  ActionKind = "fold"
	ActionCheck ActionKind = "check"
	ActionBet   ActionKind = "bet"
)

// Decision is what a provider returns for one turn. Bet covers calls, raises
// and all-ins uniformly as "commit Amount more chips".
type Decision struct {
	Kind      ActionKind
	Amount    int64
	Reasoning string
}
