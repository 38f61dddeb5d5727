// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/danielhkuo/voties/auth"
	"github.com/danielhkuo/voties/cliparse"
	"github.com/danielhkuo/voties/election"
	"github.com/danielhkuo/voties/middleware"
	"github.com/danielhkuo/voties/models"
	"github.com/danielhkuo/voties/rating"
	"github.com/danielhkuo/voties/sim"
	"github.com/danielhkuo/voties/tally"
)

type ElectionHandler struct {
	runner *sim.Runner
	cfg    cliparse.Config
}

func NewElectionHandler(runner *sim.Runner, cfg cliparse.Config) *ElectionHandler {
	return &ElectionHandler{runner: runner, cfg: cfg}
}

// ListElections handles GET /elections
func (h *ElectionHandler) ListElections(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, h.runner.Elections())
}

// GetElection handles GET /elections/{id}
func (h *ElectionHandler) GetElection(w http.ResponseWriter, r *http.Request) {
	id, ok := electionID(w, r)
	if !ok {
		return
	}

	view, ok := h.runner.Election(id)
	if !ok {
		middleware.ErrorResponse(w, http.StatusNotFound, "Election not found")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, view)
}

// CastVote handles POST /elections/{id}/votes. The vote is queued and
// cast at the next tick.
func (h *ElectionHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	id, ok := electionID(w, r)
	if !ok {
		return
	}

	var req models.CastVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if err := validateAttributes(req.Attributes); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	voterID, err := auth.VoterID(req.VoterID, middleware.GetClientIP(r), h.cfg.AdminKeySalt)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "voter_id may only contain letters, digits, '-' and '_'")
		return
	}

	err = h.runner.QueueVote(sim.QueuedVote{
		ElectionID: id,
		VoterID:    voterID,
		Voter:      rating.Voter{Traits: req.Traits, Attributes: req.Attributes},
	})
	if errors.Is(err, election.ErrElectionNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Election not found")
		return
	}
	if errors.Is(err, sim.ErrAlreadyVoted) {
		middleware.ErrorResponse(w, http.StatusConflict, "Already voted in this election")
		return
	}
	if err != nil {
		slog.Error("failed to queue vote", "election_id", id, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to queue vote")
		return
	}

	slog.Info("vote queued", "election_id", id, "voter_id", voterID)

	middleware.JSONResponse(w, http.StatusAccepted, models.CastVoteResponse{
		ElectionID: id.String(),
		VoterID:    voterID,
		Message:    "Vote queued",
	})
}

// OpenElection handles POST /elections (admin). An empty method draws one
// at random.
func (h *ElectionHandler) OpenElection(w http.ResponseWriter, r *http.Request) {
	var req models.OpenElectionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil && !errors.Is(err, io.EOF) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	var method *tally.Method
	if req.Method != "" {
		m, err := tally.ParseMethod(req.Method)
		if err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
		method = &m
	}

	view := h.runner.OpenElection(req.Name, method)

	middleware.JSONResponse(w, http.StatusCreated, models.OpenElectionResponse{
		ElectionID: view.ID,
		Name:       view.Name,
		Method:     view.Method,
	})
}

func electionID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid election id")
		return uuid.UUID{}, false
	}
	return id, true
}

func validateAttributes(a models.VoterAttributes) error {
	if a.Energy != nil && (a.Energy.MaxKcal <= 0 || a.Energy.CurrentKcal < 0) {
		return errors.New("energy needs max_kcal > 0 and current_kcal >= 0")
	}
	if a.Stomach != nil && (a.Stomach.MaxMl <= 0 || a.Stomach.FilledMl < 0) {
		return errors.New("stomach needs max_ml > 0 and filled_ml >= 0")
	}
	return nil
}
