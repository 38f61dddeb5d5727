// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/voties/middleware"
	"github.com/danielhkuo/voties/models"
	"github.com/danielhkuo/voties/sim"
)

type SimHandler struct {
	runner *sim.Runner
}

func NewSimHandler(runner *sim.Runner) *SimHandler {
	return &SimHandler{runner: runner}
}

// Status handles GET /sim
func (h *SimHandler) Status(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, h.runner.Status())
}

// SetSpeed handles POST /sim/speed (admin). The multiplier must be positive
// and is clamped to [sim.MinSpeed, sim.MaxSpeed].
func (h *SimHandler) SetSpeed(w http.ResponseWriter, r *http.Request) {
	var req models.SetSpeedRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// A missing multiplier decodes as 0
	if req.Multiplier <= 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "multiplier must be positive")
		return
	}

	speed := h.runner.SetSpeed(req.Multiplier)
	if speed != req.Multiplier {
		slog.Info("speed clamped", "requested", req.Multiplier, "speed", speed)
	}

	middleware.JSONResponse(w, http.StatusOK, models.SetSpeedResponse{Speed: speed})
}
