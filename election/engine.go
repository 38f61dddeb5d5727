// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/voties/models"
	"github.com/danielhkuo/voties/rating"
	"github.com/danielhkuo/voties/rng"
	"github.com/danielhkuo/voties/stats"
	"github.com/danielhkuo/voties/tally"
)

// ErrElectionNotFound is returned when voting in an election that is not open
var ErrElectionNotFound = errors.New("election not found")

// Defaults for Config
const (
	DefaultOpenFor  = 15 * time.Second
	DefaultInterval = 20 * time.Second
)

// Config controls election timing
type Config struct {
	OpenFor  time.Duration  // elections close once open strictly longer than this
	Interval time.Duration  // time between new elections
	Methods  []tally.Method // primary methods to draw from; empty means all
}

func (c Config) withDefaults() Config {
	if c.OpenFor <= 0 {
		c.OpenFor = DefaultOpenFor
	}
	if c.Interval <= 0 {
		c.Interval = DefaultInterval
	}
	if len(c.Methods) == 0 {
		c.Methods = tally.All()
	}
	return c
}

// Applier turns a winning option into its effect on the world
type Applier interface {
	Apply(option models.Option) error
}

// ApplierFunc adapts a function to Applier
type ApplierFunc func(option models.Option) error

func (f ApplierFunc) Apply(option models.Option) error { return f(option) }

// Observer is notified of every held election. It is called from the
// engine's goroutine and must not block.
type Observer interface {
	ElectionClosed(held HeldElection)
}

// ObserverFunc adapts a function to Observer
type ObserverFunc func(held HeldElection)

func (f ObserverFunc) ElectionClosed(held HeldElection) { f(held) }

// Engine owns the open elections and the history of held ones. It is not
// safe for concurrent use.
type Engine struct {
	cfg       Config
	src       rng.Source
	foods     []models.FoodTemplate
	applier   Applier
	observers []Observer
	logger    *slog.Logger
	now       func() time.Time

	active  []*Election
	history []HeldElection
	clock   time.Duration // sim time
	timer   time.Duration // since the last election started
	opened  int
}

// NewEngine creates an engine. applier may be nil; logger defaults to slog.Default().
func NewEngine(cfg Config, src rng.Source, foods []models.FoodTemplate, applier Applier, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		cfg:     cfg.withDefaults(),
		src:     src,
		foods:   slices.Clone(foods),
		applier: applier,
		logger:  logger,
		now:     time.Now,
	}
}

// Subscribe registers an observer for held elections
func (e *Engine) Subscribe(o Observer) {
	e.observers = append(e.observers, o)
}

// Config returns the effective configuration
func (e *Engine) Config() Config { return e.cfg }

// Foods returns the foods farms can be proposed for
func (e *Engine) Foods() []models.FoodTemplate { return e.foods }

// Clock returns the engine's sim time
func (e *Engine) Clock() time.Duration { return e.clock }

// Open starts an election with the given options and primary method
func (e *Engine) Open(name string, options []models.Option, method tally.Method) *Election {
	el := New(name, options, method)
	el.OpenedAt = e.clock
	e.active = append(e.active, el)
	e.opened++

	e.logger.Info("election opened",
		"election_id", el.ID,
		"name", el.Name,
		"method", method.String(),
		"options", len(el.Options))
	return el
}

// OpenSurveyed surveys the populace and opens an election with a primary
// method drawn from the configured pool
func (e *Engine) OpenSurveyed(wants Wants) *Election {
	method := rng.Pick(e.src, e.cfg.Methods)
	options := Survey(e.src, e.foods, wants)
	return e.Open(fmt.Sprintf("Election %d", e.opened+1), options, method)
}

// Vote rates the options for voterID in the open election id
func (e *Engine) Vote(id uuid.UUID, voterID string, voter rating.Voter, world stats.WorldStats) (bool, error) {
	el, ok := e.Election(id)
	if !ok {
		return false, ErrElectionNotFound
	}
	return el.Vote(e.src, voterID, voter, world), nil
}

// Election returns the open election with the given ID
func (e *Engine) Election(id uuid.UUID) (*Election, bool) {
	for _, el := range e.active {
		if el.ID == id {
			return el, true
		}
	}
	return nil, false
}

// Active returns the open elections in the order they were opened
func (e *Engine) Active() []*Election {
	return slices.Clone(e.active)
}

// History returns every held election, oldest first
func (e *Engine) History() []HeldElection {
	return slices.Clone(e.history)
}

// StartDue advances the sim clock and the election timer and opens a
// surveyed election for every interval that elapsed. A delta spanning
// several intervals opens several elections.
func (e *Engine) StartDue(delta time.Duration, wants Wants) []*Election {
	e.clock += delta
	e.timer += delta

	var started []*Election
	for e.timer >= e.cfg.Interval {
		e.timer -= e.cfg.Interval
		el := e.OpenSurveyed(wants)
		el.fresh = true
		started = append(started, el)
	}
	return started
}

// CloseDue ages every open election by delta and closes those open longer
// than the configured window. An election started by StartDue in the same
// tick begins ageing on the next one. Elections without votes are discarded. A
// failure while closing one election is logged and does not stop the
// others from closing.
func (e *Engine) CloseDue(delta time.Duration) []HeldElection {
	var held []HeldElection
	still := make([]*Election, 0, len(e.active))

	for _, el := range e.active {
		if el.fresh {
			el.fresh = false
			still = append(still, el)
			continue
		}
		el.TimeOpen += delta
		if el.TimeOpen <= e.cfg.OpenFor {
			still = append(still, el)
			continue
		}

		if el.VoteCount() == 0 {
			e.logger.Info("election discarded", "election_id", el.ID, "name", el.Name)
			continue
		}

		h, err := e.close(el)
		if err != nil {
			e.logger.Error("failed to close election", "election_id", el.ID, "name", el.Name, "error", err)
			continue
		}
		held = append(held, h)
	}

	e.active = still
	return held
}

func (e *Engine) close(el *Election) (HeldElection, error) {
	held, err := e.count(el)
	if err != nil {
		return held, err
	}

	winner := held.Winner()
	e.logger.Info("election closed",
		"election_id", held.ID,
		"name", held.Name,
		"method", held.Method.String(),
		"winner", winner.Label(),
		"voters", held.Voters)
	for _, r := range held.Results[1:] {
		e.logger.Debug("alternate result",
			"election_id", held.ID,
			"method", r.Method().String(),
			"winner", held.Options[r.Winner()].Label())
	}

	if e.applier != nil {
		if err := e.applier.Apply(winner); err != nil {
			e.logger.Warn("failed to apply election winner", "election_id", held.ID, "winner", winner.Label(), "error", err)
		}
	}

	e.history = append(e.history, held)
	for _, o := range e.observers {
		e.notify(o, held)
	}
	return held, nil
}

// count runs every tally over the election's ballots. Malformed ballots
// make a tally panic; that becomes an error for this election only.
func (e *Engine) count(el *Election) (held HeldElection, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic while counting: %v", r)
		}
	}()

	return HeldElection{
		ID:       el.ID,
		Name:     el.Name,
		Options:  slices.Clone(el.Options),
		Method:   el.Method,
		Results:  el.Results(),
		Voters:   el.VoteCount(),
		OpenedAt: el.OpenedAt,
		ClosedAt: el.OpenedAt + el.TimeOpen,
		Closed:   e.now().UTC(),
	}, nil
}

// notify hands held to one observer. A panicking observer is logged and
// the remaining observers are still notified.
func (e *Engine) notify(o Observer, held HeldElection) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("election observer panicked", "election_id", held.ID, "panic", r)
		}
	}()
	o.ElectionClosed(held)
}
