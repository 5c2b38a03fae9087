package store

type GameRow struct {
	ID          string
	TotalRounds int
	Button      int
}

type RoundRow struct {
	ID        string
	GameID    string
	Number    int
	Button    int
	Community []string
	Pot       int64
}

type HandRow struct {
	ID       string
	RoundID  string
	PlayerID string
	Seat     int
	Cards    []string
}

type ActionRow struct {
	RoundID   string
	PlayerID  string
	Seat      int
	Street    string
	Kind      string
	Amount    int64
	Reasoning string
	Forced    bool
}

type TransactionRow struct {
	RoundID  string
	PlayerID string
	Amount   int64
	Credit   bool
	Reason   string
}
