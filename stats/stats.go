// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package stats

import (
	"maps"
	"slices"

	"github.com/danielhkuo/voties/models"
)

// HistoryLength is the number of samples a Stat keeps (two election cycles)
const HistoryLength = 80

// Stat is a rolling series of the most recent samples, newest first
type Stat struct {
	history []float64
}

// Push records a new sample, dropping the oldest once full
func (s *Stat) Push(v float64) {
	if len(s.history) < HistoryLength {
		s.history = append(s.history, 0)
	}
	copy(s.history[1:], s.history[:len(s.history)-1])
	s.history[0] = v
}

// Len returns the number of recorded samples
func (s Stat) Len() int { return len(s.history) }

// Latest returns the newest sample, or 0 when empty
func (s Stat) Latest() float64 {
	if len(s.history) == 0 {
		return 0
	}
	return s.history[0]
}

// Max returns the largest recorded sample, or 0 when empty
func (s Stat) Max() float64 {
	if len(s.history) == 0 {
		return 0
	}
	return slices.Max(s.history)
}

// Min returns the smallest recorded sample, or 0 when empty
func (s Stat) Min() float64 {
	if len(s.history) == 0 {
		return 0
	}
	return slices.Min(s.history)
}

// Average returns the mean of the recorded samples, or 0 when empty
func (s Stat) Average() float64 {
	if len(s.history) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range s.history {
		sum += v
	}
	return sum / float64(len(s.history))
}

// Median returns the upper median of the recorded samples, or 0 when empty
func (s Stat) Median() float64 {
	if len(s.history) == 0 {
		return 0
	}
	sorted := slices.Clone(s.history)
	slices.Sort(sorted)
	return sorted[len(sorted)/2]
}

// Samples returns a copy of the series, newest first
func (s Stat) Samples() []float64 {
	return slices.Clone(s.history)
}

func (s Stat) clone() Stat {
	return Stat{history: slices.Clone(s.history)}
}

// Count tracks a current count per key
type Count[K comparable] struct {
	m map[K]int
}

// Set replaces the count for key
func (c *Count[K]) Set(key K, n int) {
	if c.m == nil {
		c.m = make(map[K]int)
	}
	c.m[key] = n
}

// Add increments the count for key
func (c *Count[K]) Add(key K, n int) {
	if c.m == nil {
		c.m = make(map[K]int)
	}
	c.m[key] += n
}

// Get returns the count for key (0 if never set)
func (c Count[K]) Get(key K) int {
	return c.m[key]
}

// Sum returns the total over all keys
func (c Count[K]) Sum() int {
	total := 0
	for _, n := range c.m {
		total += n
	}
	return total
}

func (c Count[K]) clone() Count[K] {
	return Count[K]{m: maps.Clone(c.m)}
}

// WorldStats is the rolling aggregate view of the world that voters consult
type WorldStats struct {
	Money        Stat
	HoleFilled   Stat // treasury fill fraction
	HousesFilled Stat // housing occupancy fraction
	Population   Stat
	Deaths       Count[models.DeathReason] // recent deaths by reason
}

// Snapshot returns a deep copy safe to hand to readers
func (w *WorldStats) Snapshot() WorldStats {
	return WorldStats{
		Money:        w.Money.clone(),
		HoleFilled:   w.HoleFilled.clone(),
		HousesFilled: w.HousesFilled.clone(),
		Population:   w.Population.clone(),
		Deaths:       w.Deaths.clone(),
	}
}

// CurrentPopulation returns the latest population sample as an int
func (w WorldStats) CurrentPopulation() int {
	return int(w.Population.Latest())
}
