package settle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"holdem-arena/internal/game"
)

type webhookDelta struct {
	PlayerID string `json:"playerId"`
	Chips    int64  `json:"chips"`
}

type webhookPayload struct {
	GameID  string         `json:"gameId"`
	RoundID string         `json:"roundId"`
	Winners []webhookDelta `json:"winners"`
	Losers  []webhookDelta `json:"losers"`
}

// Webhook POSTs each settlement as JSON to a fixed URL.
type Webhook struct {
	URL    string
	Client *http.Client
}

func NewWebhook(url string) *Webhook {
	return &Webhook{
		URL:    url,
		Client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (w *Webhook) Send(ctx context.Context, s game.Settlement) error {
	payload := webhookPayload{GameID: s.GameID, RoundID: s.RoundID}
	for _, d := range s.Winners {
		payload.Winners = append(payload.Winners, webhookDelta{PlayerID: d.PlayerID, Chips: d.Chips})
	}
	for _, d := range s.Losers {
		payload.Losers = append(payload.Losers, webhookDelta{PlayerID: d.PlayerID, Chips: d.Chips})
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.URL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook_status_%d", resp.StatusCode)
	}
	return nil
}

// LogSender writes settlements to the log instead of the network. Used when
// no webhook URL is configured.
type LogSender struct {
	Logger zerolog.Logger
}

func (l LogSender) Send(_ context.Context, s game.Settlement) error {
	l.Logger.Info().Str("game_id", s.GameID).Str("round_id", s.RoundID).
		Interface("winners", s.Winners).Interface("losers", s.Losers).
		Msg("round settled")
	return nil
}
