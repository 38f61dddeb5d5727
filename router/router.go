// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/voties/cliparse"
	"github.com/danielhkuo/voties/db"
	"github.com/danielhkuo/voties/handlers"
	"github.com/danielhkuo/voties/middleware"
	"github.com/danielhkuo/voties/sim"
	"github.com/danielhkuo/voties/stream"
)

func NewRouter(runner *sim.Runner, store *db.HistoryStore, hub *stream.Hub, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	electionHandler := handlers.NewElectionHandler(runner, cfg)
	historyHandler := handlers.NewHistoryHandler(store, runner)
	simHandler := handlers.NewSimHandler(runner)

	admin := func(next http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.RequireAdmin(runner.Name(), cfg.AdminKeySalt, next))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Open elections (public)
	mux.HandleFunc("GET /elections", middleware.WithLogging(electionHandler.ListElections))
	mux.HandleFunc("GET /elections/{id}", middleware.WithLogging(electionHandler.GetElection))
	mux.HandleFunc("POST /elections/{id}/votes", middleware.WithLogging(electionHandler.CastVote))

	// Election management (admin, requires X-Admin-Key)
	mux.HandleFunc("POST /elections", admin(electionHandler.OpenElection))

	// Held elections (public)
	mux.HandleFunc("GET /history", middleware.WithLogging(historyHandler.ListHistory))
	mux.HandleFunc("GET /history/{id}", middleware.WithLogging(historyHandler.GetHistory))
	mux.HandleFunc("GET /history/{id}/summary", middleware.WithLogging(historyHandler.GetSummary))

	// Simulation
	mux.HandleFunc("GET /sim", middleware.WithLogging(simHandler.Status))
	mux.HandleFunc("POST /sim/speed", admin(simHandler.SetSpeed))

	// Live feed of closed elections. The hub hijacks the connection, so it
	// is registered without the logging wrapper.
	mux.Handle("GET /stream", hub)

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("voties API v1"))
	})

	return mux
}
