// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ballot

import (
	"fmt"

	"github.com/danielhkuo/voties/rating"
)

// Threshold maps every rating at or above Level to Score
type Threshold struct {
	Level int `json:"level"`
	Score int `json:"score"`
}

// ScoreScale maps the seven rating levels onto scores 0..Max
type ScoreScale struct {
	Max        int
	thresholds []Threshold // best score first
}

// Scales used by STAR and Usual Judgment, computed once
var (
	StarScale     = NewScoreScale(5)
	JudgmentScale = NewScoreScale(6)
)

// NewScoreScale samples the seven levels evenly across max+1 buckets.
// The lowest level maps to 0 and ExtremelyPositive maps to max.
func NewScoreScale(max int) ScoreScale {
	if max < 1 {
		panic(fmt.Sprintf("ballot: score scale needs at least 2 buckets, got max=%d", max))
	}
	last := len(rating.Levels) - 1
	thresholds := make([]Threshold, 0, max+1)
	for score := max; score >= 0; score-- {
		idx := (score*last + max/2) / max
		thresholds = append(thresholds, Threshold{Level: rating.Levels[idx], Score: score})
	}
	return ScoreScale{Max: max, thresholds: thresholds}
}

// Thresholds returns the scale, best score first
func (s ScoreScale) Thresholds() []Threshold {
	out := make([]Threshold, len(s.thresholds))
	copy(out, s.thresholds)
	return out
}

// ScoreOf returns the score for a single rating. Ratings below every
// threshold score 0.
func (s ScoreScale) ScoreOf(r int) int {
	for _, t := range s.thresholds {
		if t.Level <= r {
			return t.Score
		}
	}
	return 0
}

// Fill encodes a rating vector as a score ballot
func (s ScoreScale) Fill(ratings []rating.OptionRating) Score {
	scores := make([]int, len(ratings))
	for _, r := range ratings {
		scores[r.OptionIndex] = s.ScoreOf(r.Rating)
	}
	return Score{Scores: scores}
}
