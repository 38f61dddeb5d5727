// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package sim drives a small synthetic world through the election engine.

# Runner

A Runner owns the engine, the Populace and the Ledger and advances them
together. Run ticks on a wall-clock ticker; Step advances by one tick and
is what tests call directly:

	r, err := sim.NewRunner(tuning.Default(), logger)
	go r.Run(ctx)

Wall time is scaled by the speed multiplier, clamped to [MinSpeed, MaxSpeed].
Each tick runs, in order:

  - Ledger production and populace needs (eating, shelter, births, deaths)
  - a world statistics sample every SampleEvery of sim time, with death
    counts covering the last DeathWindow
  - engine.StartDue, which opens a surveyed election per elapsed interval
  - the cast phase: each person votes with probability vote_chance per
    sim second, then votes queued through QueueVote are cast
  - engine.CloseDue

Every exported Runner method locks the runner, so HTTP handlers may call
them from any goroutine. Observers registered with Subscribe run inside
the tick and must hand work off instead of blocking.

# Ledger

The Ledger is the Applier for winning options: farms feed people whose
preferences allow the food, houses shelter people in spawn order, money
holes raise the treasury cap, mints produce money and bone zones let
people who want to reproduce spawn new voters. DoNothing only counts
apathy.
*/
package sim
