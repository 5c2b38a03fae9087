package main

import (
	"context"
	"net/http"
	"time"

	"holdem-arena/internal/arena"
	"holdem-arena/internal/config"
	"holdem-arena/internal/game"
	"holdem-arena/internal/ledger"
	"holdem-arena/internal/logging"
	"holdem-arena/internal/settle"
	"holdem-arena/internal/store"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadApp()
	if err != nil {
		panic(err)
	}
	logging.Init(cfg.Log)

	var st *store.Store
	var recorder game.Recorder = game.NopRecorder{}
	if cfg.Server.PostgresDSN != "" {
		st, err = store.Open(cfg.Server.PostgresDSN)
		if err != nil {
			log.Fatal().Err(err).Msg("store init failed")
		}
		defer st.Close()
		if err := st.Ping(context.Background()); err != nil {
			log.Fatal().Err(err).Msg("db ping failed")
		}
		if err := st.Migrate(context.Background()); err != nil {
			log.Fatal().Err(err).Msg("migrate failed")
		}
		recorder = ledger.New(st)
	} else {
		log.Warn().Msg("no POSTGRES_DSN set, audit trail disabled")
	}

	var sender settle.Sender = settle.LogSender{Logger: log.Logger}
	if cfg.Server.SettlementWebhookURL != "" {
		sender = settle.NewWebhook(cfg.Server.SettlementWebhookURL)
	}
	notifier := settle.NewManager(sender, settle.Config{
		QueueSize: cfg.Server.SettlementQueueSize,
	}, log.Logger)
	notifier.Start(context.Background())
	defer notifier.Stop()

	coord := arena.New(cfg.Game, cfg.Server.MaxConcurrentGames, recorder, notifier, log.Logger)
	r := newRouter(st, coord)

	server := &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	log.Info().Str("addr", cfg.Server.HTTPAddr).Msg("http listening")
	log.Fatal().Err(server.ListenAndServe()).Msg("server stopped")
}

func newRouter(st *store.Store, coord *arena.Coordinator) *chi.Mux {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)

	r.With(apiLogMiddleware()).Get("/healthz", healthHandler(st))

	r.Route("/api", func(r chi.Router) {
		r.Use(apiLogMiddleware())
		r.Post("/games", createGameHandler(coord))
		r.Get("/games", listGamesHandler(coord))
		r.Get("/games/{game_id}", getGameHandler(coord))
		r.Get("/games/{game_id}/rounds", gameRoundsHandler(st))
	})

	return r
}
