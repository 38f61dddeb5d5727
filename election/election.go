// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/voties/models"
	"github.com/danielhkuo/voties/rating"
	"github.com/danielhkuo/voties/rng"
	"github.com/danielhkuo/voties/stats"
	"github.com/danielhkuo/voties/tally"
)

// Election is one open election accumulating votes
type Election struct {
	ID       uuid.UUID
	Name     string
	Options  []models.Option
	Method   tally.Method
	OpenedAt time.Duration // sim time
	TimeOpen time.Duration

	votes map[string][]rating.OptionRating
	order []string // voter IDs in the order they voted
	fresh bool     // opened by the timer this tick
}

// New creates an election with no votes. It panics if options is empty.
func New(name string, options []models.Option, method tally.Method) *Election {
	if len(options) == 0 {
		panic("election: no options")
	}
	if !method.Valid() {
		panic(fmt.Sprintf("election: invalid method %d", int(method)))
	}
	return &Election{
		ID:      uuid.New(),
		Name:    name,
		Options: slices.Clone(options),
		Method:  method,
		votes:   make(map[string][]rating.OptionRating),
	}
}

// Vote rates every option for voterID and records the vector. A voter who
// already voted is ignored; Vote reports whether a vote was recorded.
func (e *Election) Vote(src rng.Source, voterID string, voter rating.Voter, world stats.WorldStats) bool {
	if e.HasVoted(voterID) {
		return false
	}
	e.record(voterID, rating.Rate(src, e.Options, voter, world))
	return true
}

// Cast records a precomputed rating vector. It returns an error if the
// vector does not rate every option exactly once. A voter who already
// voted is ignored.
func (e *Election) Cast(voterID string, ratings []rating.OptionRating) (bool, error) {
	if err := rating.Validate(ratings, len(e.Options)); err != nil {
		return false, fmt.Errorf("invalid ballot from %s: %w", voterID, err)
	}
	if e.HasVoted(voterID) {
		return false, nil
	}
	v := slices.Clone(ratings)
	rating.SortDescending(v)
	e.record(voterID, v)
	return true, nil
}

func (e *Election) record(voterID string, ratings []rating.OptionRating) {
	e.votes[voterID] = ratings
	e.order = append(e.order, voterID)
}

// HasVoted reports whether voterID has a recorded vote
func (e *Election) HasVoted(voterID string) bool {
	_, ok := e.votes[voterID]
	return ok
}

// VoteCount returns the number of recorded votes
func (e *Election) VoteCount() int {
	return len(e.order)
}

// Ratings returns every recorded vector in voting order
func (e *Election) Ratings() [][]rating.OptionRating {
	out := make([][]rating.OptionRating, 0, len(e.order))
	for _, id := range e.order {
		out = append(out, e.votes[id])
	}
	return out
}

// RatingsOf returns voterID's vector, if any
func (e *Election) RatingsOf(voterID string) ([]rating.OptionRating, bool) {
	v, ok := e.votes[voterID]
	return slices.Clone(v), ok
}

// Result tallies the recorded votes with method
func (e *Election) Result(method tally.Method) tally.Result {
	return tally.Compute(method, e.Options, e.Ratings())
}

// Results tallies the primary method first, then every other method in
// declaration order
func (e *Election) Results() []tally.Result {
	ratings := e.Ratings()
	results := []tally.Result{tally.Compute(e.Method, e.Options, ratings)}
	for _, m := range tally.All() {
		if m == e.Method {
			continue
		}
		results = append(results, tally.Compute(m, e.Options, ratings))
	}
	return results
}
