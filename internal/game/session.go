package game

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/coder/quartz"
	"github.com/rs/zerolog"
)

const (
	MinSeats  = 2
	MinAgents = 2
	// MaxAgents is the most occupied seats one 52-card deck can serve:
	// two hole cards each plus five community cards.
	MaxAgents = 23
)

// SessionConfig configures a full multi-hand game. Players and Providers are
// indexed by seat; an empty seat carries a placeholder Player and a nil
// provider.
type SessionConfig struct {
	Players   []*Player
	Providers []DecisionProvider

	Hands        int
	SmallBlind   int64
	BigBlind     int64
	InitialStack int64
	ResetBusted  bool

	TurnDelay       time.Duration
	DecisionTimeout time.Duration

	Seed     int64
	Clock    quartz.Clock
	Ranker   HandRanker
	Recorder Recorder
	Notifier Notifier
	Logger   zerolog.Logger
}

type SessionStatus string

const (
	StatusPending  SessionStatus = "pending"
	StatusRunning  SessionStatus = "running"
	StatusFinished SessionStatus = "finished"
	StatusAborted  SessionStatus = "aborted"
)

// Session owns one game from first deal to final settlement. All mutable
// state is guarded by mu so snapshots can be served while hands run.
type Session struct {
	cfg    SessionConfig
	GameID string

	mu        sync.Mutex
	status    SessionStatus
	flagged   bool
	button    int
	roundNum  int
	community []Card
	pot       int64
	log       []string
	stacks    []int64
}

// PlayerView is a read-only slice of one seat for snapshots.
type PlayerView struct {
	Seat     int    `json:"seat"`
	PlayerID string `json:"player_id,omitempty"`
	Name     string `json:"name,omitempty"`
	Stack    int64  `json:"stack"`
	Empty    bool   `json:"empty"`
}

// Snapshot is the externally visible state of a session.
type Snapshot struct {
	GameID    string        `json:"game_id"`
	Status    SessionStatus `json:"status"`
	Flagged   bool          `json:"flagged,omitempty"`
	Round     int           `json:"round"`
	Button    int           `json:"button"`
	Players   []PlayerView  `json:"players"`
	Community []string      `json:"community,omitempty"`
	Pot       int64         `json:"pot"`
	Log       []string      `json:"log,omitempty"`
}

// NewSession validates the configuration and prepares a session. The first
// button sits on the first occupied seat.
func NewSession(cfg SessionConfig) (*Session, error) {
	if len(cfg.Players) < MinSeats {
		return nil, ErrTooFewSeats
	}
	if len(cfg.Providers) != len(cfg.Players) {
		return nil, errors.New("provider_count_mismatch")
	}
	agents := 0
	for seat, p := range cfg.Players {
		if p.Empty() {
			continue
		}
		agents++
		if cfg.Providers[seat] == nil {
			return nil, errors.New("occupied_seat_without_provider")
		}
	}
	if agents < MinAgents {
		return nil, ErrTooFewAgents
	}
	if agents > MaxAgents {
		return nil, ErrTooManyAgents
	}
	if cfg.InitialStack <= 0 {
		return nil, ErrBadInitialStack
	}
	if cfg.SmallBlind <= 0 || cfg.BigBlind <= cfg.SmallBlind {
		return nil, ErrBadBlinds
	}
	if cfg.Hands <= 0 {
		return nil, ErrBadHandCount
	}
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
	for _, p := range cfg.Players {
		if !p.Empty() {
			p.Stack = cfg.InitialStack
		}
	}

	s := &Session{
		cfg:    cfg,
		GameID: NewID(),
		status: StatusPending,
	}
	s.button = NextNonEmptySeat(cfg.Players, 0, len(cfg.Players))
	s.captureStacks()
	return s, nil
}

// Run plays the configured number of hands. An InvariantViolation flags the
// session, aborts it and is returned; context cancellation stops between
// hands or mid-street.
func (s *Session) Run(ctx context.Context) error {
	s.setStatus(StatusRunning)

	seed := s.cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	logger := s.cfg.Logger.With().Str("game_id", s.GameID).Logger()

	s.record(ctx, "game", func(ctx context.Context) error {
		return s.cfg.Recorder.GameStarted(ctx, GameRecord{
			GameID: s.GameID, TotalRounds: s.cfg.Hands, Button: s.button,
		})
	})

	for i := 1; i <= s.cfg.Hands; i++ {
		if err := ctx.Err(); err != nil {
			s.setStatus(StatusAborted)
			return err
		}

		deck := NewDeck()
		deck.Shuffle(rng)

		s.mu.Lock()
		s.roundNum = i
		button := s.button
		s.community = nil
		s.pot = 0
		s.mu.Unlock()

		round := NewRound(RoundConfig{
			GameID:          s.GameID,
			Number:          i,
			Players:         s.cfg.Players,
			Providers:       s.cfg.Providers,
			Deck:            deck,
			Button:          button,
			SmallBlind:      s.cfg.SmallBlind,
			BigBlind:        s.cfg.BigBlind,
			Clock:           s.cfg.Clock,
			TurnDelay:       s.cfg.TurnDelay,
			DecisionTimeout: s.cfg.DecisionTimeout,
			Ranker:          s.cfg.Ranker,
			Recorder:        s.cfg.Recorder,
			Notifier:        s.cfg.Notifier,
			Logger:          logger.With().Int("round", i).Logger(),
			OnProgress: func(community []Card, pot int64, lines []string) {
				s.mu.Lock()
				s.community = community
				s.pot = pot
				s.log = lines
				s.mu.Unlock()
				s.captureStacks()
			},
		})

		result, err := round.Play(ctx)
		if err != nil {
			var iv *InvariantViolation
			if errors.As(err, &iv) {
				logger.Error().Err(err).Int("round", i).Msg("invariant violated, aborting game")
				s.flag()
			}
			s.setStatus(StatusAborted)
			return err
		}

		s.mu.Lock()
		s.community = round.Community
		s.pot = result.TotalPot
		s.log = round.Log.Lines()
		s.mu.Unlock()
		s.captureStacks()

		logger.Info().Int("round", i).Int64("pot", result.TotalPot).
			Bool("fold_out", result.FoldOut).Msg("round settled")

		s.rotateButton()
		if s.cfg.ResetBusted {
			s.resetBusted(ctx, round.RoundID, logger)
			s.captureStacks()
		}
	}

	s.setStatus(StatusFinished)
	return nil
}

// rotateButton moves the dealer button to the next occupied seat.
func (s *Session) rotateButton() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.button = NextButtonPosition(s.cfg.Players, s.button, len(s.cfg.Players))
}

// resetBusted restores broke players to the initial stack so short games keep
// a full table. Top-ups happen between hands and show up in the audit trail
// as credits against the round that busted the player.
func (s *Session) resetBusted(ctx context.Context, roundID string, logger zerolog.Logger) {
	for _, p := range s.cfg.Players {
		if p.Empty() || p.Stack > 0 {
			continue
		}
		p.Stack = s.cfg.InitialStack
		logger.Info().Str("player", p.ID).Int64("stack", p.Stack).
			Msg("busted player reset")
		playerID := p.ID
		s.record(ctx, "bust_reset", func(ctx context.Context) error {
			return s.cfg.Recorder.ChipsMoved(ctx, TransactionRecord{
				GameID:   s.GameID,
				RoundID:  roundID,
				PlayerID: playerID,
				Amount:   s.cfg.InitialStack,
				Credit:   true,
				Reason:   "bust_reset",
			})
		})
	}
}

func (s *Session) setStatus(st SessionStatus) {
	s.mu.Lock()
	s.status = st
	s.mu.Unlock()
}

func (s *Session) flag() {
	s.mu.Lock()
	s.flagged = true
	s.mu.Unlock()
}

// captureStacks copies live stacks under the lock. Called only from the
// goroutine that mutates them, so Snapshot never reads a stack mid-hand.
func (s *Session) captureStacks() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stacks == nil {
		s.stacks = make([]int64, len(s.cfg.Players))
	}
	for seat, p := range s.cfg.Players {
		if !p.Empty() {
			s.stacks[seat] = p.Stack
		}
	}
}

// Snapshot returns a copy of the visible session state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		GameID:    s.GameID,
		Status:    s.status,
		Flagged:   s.flagged,
		Round:     s.roundNum,
		Button:    s.button,
		Community: CardStrings(s.community),
		Pot:       s.pot,
		Log:       append([]string(nil), s.log...),
	}
	for seat, p := range s.cfg.Players {
		v := PlayerView{Seat: seat, Empty: p.Empty()}
		if !p.Empty() {
			v.PlayerID = p.ID
			v.Name = p.Name
			v.Stack = s.stacks[seat]
		}
		snap.Players = append(snap.Players, v)
	}
	return snap
}

func (s *Session) record(ctx context.Context, op string, fn func(context.Context) error) {
	err := fn(ctx)
	if err == nil {
		return
	}
	if err = fn(ctx); err == nil {
		return
	}
	s.cfg.Logger.Warn().Err(err).Str("op", op).Str("game_id", s.GameID).
		Msg("audit write failed")
}
