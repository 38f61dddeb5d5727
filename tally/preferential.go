// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tally

import (
	"github.com/danielhkuo/voties/ballot"
	"github.com/danielhkuo/voties/rating"
)

// preferential runs instant-runoff rounds until an option holds a strict
// majority of first choices or only one option is left. The loser of each
// round is eliminated; among tied losers the highest option index goes.
func preferential(optionCount int, ratings [][]rating.OptionRating) PreferentialResult {
	bundles := ballot.Bundle(ballot.Fill(ratings, ballot.FillMandatoryPreferential))
	total := len(ratings)

	eliminated := make([]bool, optionCount)
	remaining := optionCount
	var out []int
	var rounds []Round

	for {
		tally := make([]int, optionCount)
		for _, b := range bundles {
			for _, option := range b.Ballot.Ranking {
				if !eliminated[option] {
					tally[option] += b.Count
					break
				}
			}
		}

		round := Round{Tally: tally, Eliminated: append([]int{}, out...), Dropped: -1}

		top, bottom := -1, -1
		for option := 0; option < optionCount; option++ {
			if eliminated[option] {
				continue
			}
			if top == -1 || tally[option] > tally[top] {
				top = option
			}
			if bottom == -1 || tally[option] <= tally[bottom] {
				bottom = option
			}
		}

		if remaining == 1 || 2*tally[top] > total {
			rounds = append(rounds, round)
			return PreferentialResult{
				Outcome: Outcome{WinnerIndex: top, Voters: total},
				Rounds:  rounds,
				Bundles: bundles,
			}
		}

		round.Dropped = bottom
		rounds = append(rounds, round)
		eliminated[bottom] = true
		out = append(out, bottom)
		remaining--
	}
}
