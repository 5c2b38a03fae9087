package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"holdem-arena/internal/arena"
	"holdem-arena/internal/game"
	"holdem-arena/internal/store"

	"github.com/go-chi/chi/v5"
)

func healthHandler(st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		db := "disabled"
		if st != nil {
			db = "ok"
			if err := st.Ping(r.Context()); err != nil {
				writeJSON(w, http.StatusServiceUnavailable, map[string]any{"ok": false, "db": "down"})
				return
			}
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "db": db})
	}
}

func createGameHandler(coord *arena.Coordinator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req arena.StartRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeHTTPError(w, http.StatusBadRequest, "bad_json")
			return
		}
		// The session outlives the request: its lifecycle is the server's,
		// not the HTTP call's.
		id, err := coord.StartGame(context.Background(), req)
		switch {
		case err == nil:
			writeJSON(w, http.StatusCreated, map[string]any{"game_id": id})
		case errors.Is(err, arena.ErrTooManyGames):
			writeHTTPError(w, http.StatusTooManyRequests, "too_many_games")
		case errors.Is(err, game.ErrTooFewSeats),
			errors.Is(err, game.ErrTooFewAgents),
			errors.Is(err, game.ErrTooManyAgents),
			errors.Is(err, game.ErrBadInitialStack),
			errors.Is(err, game.ErrBadBlinds),
			errors.Is(err, game.ErrBadHandCount):
			writeHTTPError(w, http.StatusBadRequest, err.Error())
		default:
			writeHTTPError(w, http.StatusInternalServerError, "start_failed")
		}
	}
}

func getGameHandler(coord *arena.Coordinator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap, err := coord.Get(chi.URLParam(r, "game_id"))
		if err != nil {
			writeHTTPError(w, http.StatusNotFound, "game_not_found")
			return
		}
		writeJSON(w, http.StatusOK, snap)
	}
}

func listGamesHandler(coord *arena.Coordinator) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"games": coord.List()})
	}
}

func gameRoundsHandler(st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if st == nil {
			writeHTTPError(w, http.StatusServiceUnavailable, "audit_disabled")
			return
		}
		rounds, err := st.ListRounds(r.Context(), chi.URLParam(r, "game_id"))
		if err != nil {
			writeHTTPError(w, http.StatusInternalServerError, "query_failed")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"rounds": rounds})
	}
}
