// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/voties/models"
	"github.com/danielhkuo/voties/tally"
)

// HeldElection is the immutable record of a resolved election. Results
// holds the primary method first.
type HeldElection struct {
	ID       uuid.UUID
	Name     string
	Options  []models.Option
	Method   tally.Method
	Results  []tally.Result
	Voters   int
	OpenedAt time.Duration // sim time
	ClosedAt time.Duration // sim time
	Closed   time.Time     // wall clock
}

// Primary returns the result of the method the election was held under
func (h HeldElection) Primary() tally.Result {
	return h.Results[0]
}

// Winner returns the option chosen by the primary method
func (h HeldElection) Winner() models.Option {
	return h.Options[h.Primary().Winner()]
}

// ResultFor returns the result for method, if present
func (h HeldElection) ResultFor(method tally.Method) (tally.Result, bool) {
	for _, r := range h.Results {
		if r.Method() == method {
			return r, true
		}
	}
	return nil, false
}

type heldElectionJSON struct {
	ID         uuid.UUID         `json:"id"`
	Name       string            `json:"name"`
	Options    []models.Option   `json:"options"`
	Method     tally.Method      `json:"method"`
	Winner     int               `json:"winner"`
	Voters     int               `json:"voter_count"`
	OpenedAtMs int64             `json:"opened_at_ms"`
	ClosedAtMs int64             `json:"closed_at_ms"`
	Closed     time.Time         `json:"closed_at"`
	Results    []json.RawMessage `json:"results"`
}

func (h HeldElection) MarshalJSON() ([]byte, error) {
	out := heldElectionJSON{
		ID:         h.ID,
		Name:       h.Name,
		Options:    h.Options,
		Method:     h.Method,
		Winner:     -1,
		Voters:     h.Voters,
		OpenedAtMs: h.OpenedAt.Milliseconds(),
		ClosedAtMs: h.ClosedAt.Milliseconds(),
		Closed:     h.Closed,
		Results:    make([]json.RawMessage, 0, len(h.Results)),
	}
	if len(h.Results) > 0 {
		out.Winner = h.Primary().Winner()
	}
	for _, r := range h.Results {
		data, err := tally.MarshalResult(r)
		if err != nil {
			return nil, err
		}
		out.Results = append(out.Results, data)
	}
	return json.Marshal(out)
}

func (h *HeldElection) UnmarshalJSON(data []byte) error {
	var in heldElectionJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	results := make([]tally.Result, 0, len(in.Results))
	for i, raw := range in.Results {
		r, err := tally.UnmarshalResult(raw)
		if err != nil {
			return fmt.Errorf("result %d: %w", i, err)
		}
		results = append(results, r)
	}

	*h = HeldElection{
		ID:       in.ID,
		Name:     in.Name,
		Options:  in.Options,
		Method:   in.Method,
		Results:  results,
		Voters:   in.Voters,
		OpenedAt: time.Duration(in.OpenedAtMs) * time.Millisecond,
		ClosedAt: time.Duration(in.ClosedAtMs) * time.Millisecond,
		Closed:   in.Closed,
	}
	return nil
}
