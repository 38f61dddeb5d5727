// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package sim

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/voties/election"
	"github.com/danielhkuo/voties/models"
	"github.com/danielhkuo/voties/rating"
	"github.com/danielhkuo/voties/rng"
	"github.com/danielhkuo/voties/stats"
	"github.com/danielhkuo/voties/tally"
	"github.com/danielhkuo/voties/tuning"
)

// Speed multiplier bounds
const (
	MinSpeed = 0.1
	MaxSpeed = 20.0
)

// SampleEvery is how often world statistics are sampled in sim time
const SampleEvery = 500 * time.Millisecond

// QueuedVote is a vote submitted through the API, cast at the next tick
type QueuedVote struct {
	ElectionID uuid.UUID
	VoterID    string
	Voter      rating.Voter
}

// Runner owns the engine, the populace and the world and advances them
// on a tick loop. Its exported methods are safe for concurrent use.
type Runner struct {
	mu sync.Mutex

	name     string
	seed     uint64
	tick     time.Duration
	speed    float64
	voteRate float64

	src         rng.Source
	engine      *election.Engine
	populace    *Populace
	ledger      *Ledger
	world       stats.WorldStats
	sinceSample time.Duration

	queue  []QueuedVote
	logger *slog.Logger
}

// NewRunner builds a world from t
func NewRunner(t tuning.Tuning, logger *slog.Logger) (*Runner, error) {
	if logger == nil {
		logger = slog.Default()
	}
	cfg, err := t.EngineConfig()
	if err != nil {
		return nil, fmt.Errorf("invalid election tuning: %w", err)
	}

	src := rng.New(t.Seed)
	ledger := NewLedger()
	r := &Runner{
		name:     t.World,
		seed:     t.Seed,
		tick:     t.TickInterval(),
		speed:    clampSpeed(t.Speed),
		voteRate: t.Populace.VoteChance,
		src:      src,
		ledger:   ledger,
		populace: NewPopulace(src, t.Populace),
		logger:   logger,
	}
	r.engine = election.NewEngine(cfg, src, t.Foods, ledger, logger)
	r.sample()
	return r, nil
}

// Subscribe registers an observer of held elections. Observers run on the
// tick goroutine with the runner locked and must not block.
func (r *Runner) Subscribe(o election.Observer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.engine.Subscribe(o)
}

// Run ticks until ctx is cancelled
func (r *Runner) Run(ctx context.Context) error {
	if r.tick <= 0 {
		return errors.New("tick interval must be positive")
	}
	ticker := time.NewTicker(r.tick)
	defer ticker.Stop()

	r.logger.Info("simulation started", "world", r.name, "seed", r.seed, "tick", r.tick.String())
	for {
		select {
		case <-ctx.Done():
			r.logger.Info("simulation stopped", "world", r.name)
			return ctx.Err()
		case <-ticker.C:
			r.Step(r.tick)
		}
	}
}

// Step advances the world by wall time scaled by the speed multiplier and
// returns the elections closed by this tick.
//
// The order within a tick is: world update, start due elections, cast
// votes (populace then queued), close due elections.
func (r *Runner) Step(wall time.Duration) []election.HeldElection {
	r.mu.Lock()
	defer r.mu.Unlock()

	delta := time.Duration(float64(wall) * r.speed)

	r.ledger.Produce(delta)
	r.populace.Advance(r.src, delta, r.ledger)
	r.sinceSample += delta
	if r.sinceSample >= SampleEvery {
		r.sinceSample %= SampleEvery
		r.sample()
	}

	r.engine.StartDue(delta, r.populace.Wants(r.world))
	r.castVotes(delta)
	return r.engine.CloseDue(delta)
}

func (r *Runner) castVotes(delta time.Duration) {
	active := r.engine.Active()
	if len(active) > 0 {
		chance := min(1, r.voteRate*delta.Seconds())
		snapshot := r.world.Snapshot()
		for _, person := range r.populace.People() {
			for _, el := range active {
				if el.HasVoted(person.ID) || !rng.Chance(r.src, chance) {
					continue
				}
				el.Vote(r.src, person.ID, person.Voter(), snapshot)
			}
		}
	}

	queued := r.queue
	r.queue = nil
	for _, v := range queued {
		if _, err := r.engine.Vote(v.ElectionID, v.VoterID, v.Voter, r.world); err != nil {
			r.logger.Warn("dropped queued vote", "election_id", v.ElectionID, "voter_id", v.VoterID, "error", err)
		}
	}
}

func (r *Runner) sample() {
	r.world.Money.Push(r.ledger.Money)
	r.world.HoleFilled.Push(r.ledger.HoleFilled())
	r.world.Population.Push(float64(r.populace.Size()))

	filled := 1.0
	if capacity := r.ledger.Dwellings(); capacity > 0 {
		filled = min(1, float64(r.populace.Size())/float64(capacity))
	} else if r.populace.Size() == 0 {
		filled = 0
	}
	r.world.HousesFilled.Push(filled)

	deaths := r.populace.RecentDeaths()
	for _, reason := range models.AllDeathReasons {
		r.world.Deaths.Set(reason, deaths[reason])
	}
}

// QueueVote queues an API vote for the next tick
func (r *Runner) QueueVote(v QueuedVote) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	el, ok := r.engine.Election(v.ElectionID)
	if !ok {
		return election.ErrElectionNotFound
	}
	if el.HasVoted(v.VoterID) {
		return ErrAlreadyVoted
	}
	for _, q := range r.queue {
		if q.ElectionID == v.ElectionID && q.VoterID == v.VoterID {
			return ErrAlreadyVoted
		}
	}
	r.queue = append(r.queue, v)
	return nil
}

// ErrAlreadyVoted is returned when queuing a vote for a voter who already voted
var ErrAlreadyVoted = errors.New("voter already voted in this election")

// OpenElection opens a surveyed election now. A nil method draws one at random.
func (r *Runner) OpenElection(name string, method *tally.Method) models.ElectionView {
	r.mu.Lock()
	defer r.mu.Unlock()

	wants := r.populace.Wants(r.world)
	var el *election.Election
	if method == nil {
		el = r.engine.OpenSurveyed(wants)
		if name != "" {
			el.Name = name
		}
	} else {
		if name == "" {
			name = "Special " + method.Title() + " Election"
		}
		el = r.engine.Open(name, election.Survey(r.src, r.engine.Foods(), wants), *method)
	}
	return electionView(el)
}

// Elections returns the open elections
func (r *Runner) Elections() []models.ElectionView {
	r.mu.Lock()
	defer r.mu.Unlock()

	active := r.engine.Active()
	views := make([]models.ElectionView, len(active))
	for i, el := range active {
		views[i] = electionView(el)
	}
	return views
}

// Election returns one open election
func (r *Runner) Election(id uuid.UUID) (models.ElectionView, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	el, ok := r.engine.Election(id)
	if !ok {
		return models.ElectionView{}, false
	}
	return electionView(el), true
}

// History returns the held elections, oldest first
func (r *Runner) History() []election.HeldElection {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.engine.History()
}

// Status reports the clock, speed and counts
func (r *Runner) Status() models.SimStatusResponse {
	r.mu.Lock()
	defer r.mu.Unlock()

	return models.SimStatusResponse{
		World:           r.name,
		Seed:            r.seed,
		SimTimeMs:       r.engine.Clock().Milliseconds(),
		Speed:           r.speed,
		Population:      r.populace.Size(),
		ActiveElections: len(r.engine.Active()),
		HeldElections:   len(r.engine.History()),
	}
}

// SetSpeed sets the speed multiplier, clamped to [MinSpeed, MaxSpeed]
func (r *Runner) SetSpeed(multiplier float64) float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.speed = clampSpeed(multiplier)
	r.logger.Info("simulation speed changed", "speed", r.speed)
	return r.speed
}

// World returns a snapshot of the world statistics
func (r *Runner) World() stats.WorldStats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.world.Snapshot()
}

// Name returns the world name
func (r *Runner) Name() string { return r.name }

func clampSpeed(m float64) float64 {
	if math.IsNaN(m) {
		return 1
	}
	return max(MinSpeed, min(MaxSpeed, m))
}

func electionView(el *election.Election) models.ElectionView {
	return models.ElectionView{
		ID:         el.ID.String(),
		Name:       el.Name,
		Method:     el.Method.String(),
		Options:    models.NewOptionViews(el.Options),
		VoteCount:  el.VoteCount(),
		TimeOpenMs: el.TimeOpen.Milliseconds(),
	}
}
