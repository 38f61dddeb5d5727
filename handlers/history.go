// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/voties/db"
	"github.com/danielhkuo/voties/election"
	"github.com/danielhkuo/voties/middleware"
	"github.com/danielhkuo/voties/models"
	"github.com/danielhkuo/voties/report"
	"github.com/danielhkuo/voties/sim"
)

// MaxHistoryLimit caps ?limit= on GET /history
const MaxHistoryLimit = 500

type HistoryHandler struct {
	store  *db.HistoryStore
	runner *sim.Runner
}

// NewHistoryHandler reads from store, falling back to the runner's
// in-memory history for elections not yet written
func NewHistoryHandler(store *db.HistoryStore, runner *sim.Runner) *HistoryHandler {
	return &HistoryHandler{store: store, runner: runner}
}

// ListHistory handles GET /history
func (h *HistoryHandler) ListHistory(w http.ResponseWriter, r *http.Request) {
	limit := db.DefaultListLimit
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 || n > MaxHistoryLimit {
			middleware.ErrorResponse(w, http.StatusBadRequest, "limit must be between 1 and 500")
			return
		}
		limit = n
	}

	items, err := h.store.List(r.Context(), limit)
	if err != nil {
		slog.Error("failed to list history", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	// Recently closed elections may still be queued for the writer
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		seen[item.ID] = true
	}
	recent := h.runner.History()
	var pending []models.HeldElectionListItem
	for i := len(recent) - 1; i >= 0; i-- {
		held := recent[i]
		if seen[held.ID.String()] {
			continue
		}
		pending = append(pending, listItem(held))
	}
	items = append(pending, items...)
	slices.SortStableFunc(items, func(a, b models.HeldElectionListItem) int {
		return b.ClosedAt.Compare(a.ClosedAt)
	})
	if len(items) > limit {
		items = items[:limit]
	}

	middleware.JSONResponse(w, http.StatusOK, items)
}

// GetHistory handles GET /history/{id}
func (h *HistoryHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	held, ok := h.lookup(w, r)
	if !ok {
		return
	}
	middleware.JSONResponse(w, http.StatusOK, held)
}

// GetSummary handles GET /history/{id}/summary
func (h *HistoryHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	held, ok := h.lookup(w, r)
	if !ok {
		return
	}
	middleware.TextResponse(w, http.StatusOK, report.Summary(held, time.Now()))
}

func (h *HistoryHandler) lookup(w http.ResponseWriter, r *http.Request) (election.HeldElection, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid election id")
		return election.HeldElection{}, false
	}

	held, err := h.store.Get(r.Context(), id)
	if err == nil {
		return held, true
	}
	if !errors.Is(err, db.ErrNotFound) {
		slog.Error("failed to load held election", "election_id", id, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return election.HeldElection{}, false
	}

	for _, held := range h.runner.History() {
		if held.ID == id {
			return held, true
		}
	}
	middleware.ErrorResponse(w, http.StatusNotFound, "Held election not found")
	return election.HeldElection{}, false
}

func listItem(held election.HeldElection) models.HeldElectionListItem {
	return models.HeldElectionListItem{
		ID:         held.ID.String(),
		Name:       held.Name,
		Method:     held.Method.String(),
		Winner:     held.Winner().Label(),
		VoterCount: held.Voters,
		ClosedAt:   held.Closed,
	}
}
