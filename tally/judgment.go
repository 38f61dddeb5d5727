// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tally

import (
	"math"
	"slices"

	"github.com/danielhkuo/voties/ballot"
	"github.com/danielhkuo/voties/rating"
)

// TieBreakBudget is the number of tie-break rounds Usual Judgment runs
// before falling back to the lowest option index
const TieBreakBudget = 50

const scoreEpsilon = 1e-12

func usualJudgment(optionCount int, ratings [][]rating.OptionRating) UsualJudgmentResult {
	ballots := ballot.Fill(ratings, ballot.JudgmentScale.Fill)
	bundles := ballot.Bundle(ballots)
	total := len(ballots)

	counts := make([]ScoreCount, optionCount)
	for option := range counts {
		scores := make([]int, 0, total)
		histogram := make([]int, ballot.JudgmentScale.Max+1)
		for _, b := range ballots {
			scores = append(scores, b.Scores[option])
			histogram[b.Scores[option]]++
		}
		slices.Sort(scores)
		counts[option] = ScoreCount{
			Scores:    scores,
			Histogram: histogram,
			Majority:  majorityGrade(histogram, total),
		}
	}

	result := UsualJudgmentResult{
		Outcome: Outcome{Voters: total},
		Counts:  counts,
		Bundles: bundles,
	}

	best := 0
	for _, c := range counts {
		best = max(best, c.Majority)
	}
	var finalists []int
	for option, c := range counts {
		if c.Majority == best {
			finalists = append(finalists, option)
		}
	}

	if len(finalists) == 1 || total == 0 {
		result.WinnerIndex = finalists[0]
		return result
	}

	for n := 0; n < TieBreakBudget; n++ {
		round := TieBreakRound{N: n}
		top := math.Inf(-1)
		for _, option := range finalists {
			s := tieBreakScore(counts[option], total, n)
			round.Scores = append(round.Scores, TieBreakScore{Option: option, Score: s})
			top = math.Max(top, s)
		}

		finalists = finalists[:0]
		for _, s := range round.Scores {
			if s.Score >= top-scoreEpsilon {
				finalists = append(finalists, s.Option)
			}
		}
		round.Kept = slices.Clone(finalists)
		result.TieBreak = append(result.TieBreak, round)

		if len(finalists) == 1 {
			result.WinnerIndex = finalists[0]
			return result
		}
	}

	// Identical distributions never separate
	result.Exhausted = true
	result.WinnerIndex = finalists[0]
	return result
}

// majorityGrade is the highest grade that at least half the ballots meet
func majorityGrade(histogram []int, total int) int {
	atLeast := 0
	for grade := len(histogram) - 1; grade >= 0; grade-- {
		atLeast += histogram[grade]
		if 2*atLeast >= total {
			return grade
		}
	}
	return 0
}

// tieBreakScore is -|n_a - g| where n_a = g + 0.5*(p^n - q^n)/(1 - (p^n - q^n)),
// g is the majority grade, p the share of ballots above it and q the share
// below. The finalist whose adjusted grade strays least from g scores highest.
func tieBreakScore(c ScoreCount, total, n int) float64 {
	above, below := 0, 0
	for grade, count := range c.Histogram {
		switch {
		case grade > c.Majority:
			above += count
		case grade < c.Majority:
			below += count
		}
	}
	p := math.Pow(float64(above)/float64(total), float64(n))
	q := math.Pow(float64(below)/float64(total), float64(n))
	d := p - q
	return -math.Abs(0.5 * d / (1 - d))
}
