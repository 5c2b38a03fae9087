package store

import (
	"context"
	"embed"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema.sql
var schema embed.FS

var ErrNotFound = errors.New("not_found")

// Store wraps DB access for the audit trail.
type Store struct {
	Pool *pgxpool.Pool
}

func Open(dsn string) (*Store, error) {
	pool, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		return nil, err
	}
	return &Store{Pool: pool}, nil
}

func (s *Store) Close() {
	if s.Pool != nil {
		s.Pool.Close()
	}
}

func (s *Store) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.Pool.Ping(ctx)
}

func (s *Store) Migrate(ctx context.Context) error {
	sqlBytes, err := schema.ReadFile("schema.sql")
	if err != nil {
		return err
	}
	_, err = s.Pool.Exec(ctx, string(sqlBytes))
	return err
}

func (s *Store) InsertGame(ctx context.Context, g GameRow) error {
	_, err := s.Pool.Exec(ctx, `
        INSERT INTO games(id, total_rounds, button)
        VALUES ($1, $2, $3)
        ON CONFLICT (id) DO NOTHING
    `, g.ID, g.TotalRounds, g.Button)
	return err
}

func (s *Store) InsertRound(ctx context.Context, r RoundRow) error {
	_, err := s.Pool.Exec(ctx, `
        INSERT INTO rounds(id, game_id, number, button)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (id) DO NOTHING
    `, r.ID, r.GameID, r.Number, r.Button)
	return err
}

func (s *Store) UpdateRoundCommunity(ctx context.Context, roundID string, community []string) error {
	_, err := s.Pool.Exec(ctx, `
        UPDATE rounds SET community = $2 WHERE id = $1
    `, roundID, community)
	return err
}

func (s *Store) SettleRound(ctx context.Context, roundID string, pot int64) error {
	_, err := s.Pool.Exec(ctx, `
        UPDATE rounds SET pot = $2, settled_at = now() WHERE id = $1
    `, roundID, pot)
	return err
}

func (s *Store) InsertHand(ctx context.Context, h HandRow) error {
	_, err := s.Pool.Exec(ctx, `
        INSERT INTO hands(id, round_id, player_id, seat, cards)
        VALUES ($1, $2, $3, $4, $5)
        ON CONFLICT (id) DO NOTHING
    `, h.ID, h.RoundID, h.PlayerID, h.Seat, h.Cards)
	return err
}

func (s *Store) InsertAction(ctx context.Context, a ActionRow) error {
	_, err := s.Pool.Exec(ctx, `
        INSERT INTO actions(round_id, player_id, seat, street, kind, amount, reasoning, forced)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
    `, a.RoundID, a.PlayerID, a.Seat, a.Street, a.Kind, a.Amount, a.Reasoning, a.Forced)
	return err
}

func (s *Store) InsertTransaction(ctx context.Context, t TransactionRow) error {
	_, err := s.Pool.Exec(ctx, `
        INSERT INTO transactions(round_id, player_id, amount, credit, reason)
        VALUES ($1, $2, $3, $4, $5)
    `, t.RoundID, t.PlayerID, t.Amount, t.Credit, t.Reason)
	return err
}

func (s *Store) GetGame(ctx context.Context, id string) (GameRow, error) {
	var g GameRow
	err := s.Pool.QueryRow(ctx, `
        SELECT id, total_rounds, button FROM games WHERE id = $1
    `, id).Scan(&g.ID, &g.TotalRounds, &g.Button)
	if errors.Is(err, pgx.ErrNoRows) {
		return GameRow{}, ErrNotFound
	}
	return g, err
}

func (s *Store) ListRounds(ctx context.Context, gameID string) ([]RoundRow, error) {
	rows, err := s.Pool.Query(ctx, `
        SELECT id, game_id, number, button, pot FROM rounds
        WHERE game_id = $1 ORDER BY number
    `, gameID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RoundRow
	for rows.Next() {
		var r RoundRow
		if err := rows.Scan(&r.ID, &r.GameID, &r.Number, &r.Button, &r.Pot); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
