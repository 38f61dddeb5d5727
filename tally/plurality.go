// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tally

import (
	"github.com/danielhkuo/voties/ballot"
	"github.com/danielhkuo/voties/rating"
)

func firstPastThePost(optionCount int, ratings [][]rating.OptionRating) FirstPastThePostResult {
	bundles := ballot.Bundle(ballot.Fill(ratings, ballot.FillSingleOption))

	tally := make([]int, optionCount)
	for _, b := range bundles {
		tally[b.Ballot.VotedFor] += b.Count
	}

	return FirstPastThePostResult{
		Outcome: Outcome{WinnerIndex: indexOfMax(tally), Voters: len(ratings)},
		Tally:   tally,
		Bundles: bundles,
	}
}

func approval(optionCount int, ratings [][]rating.OptionRating) ApprovalResult {
	bundles := ballot.Bundle(ballot.Fill(ratings, ballot.FillMultipleOption))

	approvals := make([]int, optionCount)
	for _, b := range bundles {
		for _, option := range b.Ballot.VotedFor {
			approvals[option] += b.Count
		}
	}

	return ApprovalResult{
		Outcome:   Outcome{WinnerIndex: indexOfMax(approvals), Voters: len(ratings)},
		Approvals: approvals,
		Bundles:   bundles,
	}
}

func antiPlurality(optionCount int, ratings [][]rating.OptionRating) AntiPluralityResult {
	bundles := ballot.Bundle(ballot.Fill(ratings, ballot.FillLeastFavorite))

	tally := make([]int, optionCount)
	for _, b := range bundles {
		tally[b.Ballot.LeastFavorite] += b.Count
	}

	return AntiPluralityResult{
		Outcome: Outcome{WinnerIndex: indexOfMin(tally), Voters: len(ratings)},
		Tally:   tally,
		Bundles: bundles,
	}
}

// indexOfMax returns the index of the largest value; ties go to the lowest index
func indexOfMax(values []int) int {
	best := 0
	for i, v := range values {
		if v > values[best] {
			best = i
		}
	}
	return best
}

// indexOfMin returns the index of the smallest value; ties go to the lowest index
func indexOfMin(values []int) int {
	best := 0
	for i, v := range values {
		if v < values[best] {
			best = i
		}
	}
	return best
}
