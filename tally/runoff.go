// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tally

import (
	"slices"

	"github.com/danielhkuo/voties/ballot"
	"github.com/danielhkuo/voties/rating"
)

// goodOkBad takes the three options with the most Good grades, keeps the two
// of those with the fewest Bad grades and runs them head to head.
func goodOkBad(optionCount int, ratings [][]rating.OptionRating) GoodOkBadResult {
	bundles := ballot.Bundle(ballot.Fill(ratings, ballot.FillGoodOkBad))

	tally := make([]GradeTally, optionCount)
	for _, b := range bundles {
		for option, grade := range b.Ballot.Grades {
			switch grade {
			case ballot.Good:
				tally[option].Good += b.Count
			case ballot.Ok:
				tally[option].Ok += b.Count
			default:
				tally[option].Bad += b.Count
			}
		}
	}

	result := GoodOkBadResult{
		Outcome: Outcome{WinnerIndex: 0, Voters: len(ratings)},
		Tally:   tally,
		Bundles: bundles,
	}
	if optionCount < 2 {
		return result
	}

	order := optionOrder(optionCount)
	slices.SortStableFunc(order, func(a, b int) int { return tally[b].Good - tally[a].Good })
	top := order[:min(3, optionCount)]
	slices.SortStableFunc(top, func(a, b int) int { return tally[a].Bad - tally[b].Bad })

	runoff := headToHead(top[0], top[1], bundles, func(g ballot.GoodOkBad, option int) int {
		return int(g.Grades[option])
	})
	result.Runoff = &runoff
	result.WinnerIndex = runoff.winner()
	return result
}

// star runs the two options with the highest total score head to head
func star(optionCount int, ratings [][]rating.OptionRating) StarResult {
	bundles := ballot.Bundle(ballot.Fill(ratings, ballot.StarScale.Fill))

	totals := make([]int, optionCount)
	for _, b := range bundles {
		for option, score := range b.Ballot.Scores {
			totals[option] += score * b.Count
		}
	}

	result := StarResult{
		Outcome:    Outcome{WinnerIndex: 0, Voters: len(ratings)},
		ScoreTally: totals,
		Bundles:    bundles,
	}
	if optionCount < 2 {
		return result
	}

	order := optionOrder(optionCount)
	slices.SortStableFunc(order, func(a, b int) int { return totals[b] - totals[a] })

	runoff := headToHead(order[0], order[1], bundles, func(s ballot.Score, option int) int {
		return s.Scores[option]
	})
	result.Runoff = &runoff
	result.WinnerIndex = runoff.winner()
	return result
}

// headToHead gives each bundle's count to the finalist its ballot strictly
// prefers. Equal values count for neither.
func headToHead[B ballot.Ballot](a, b int, bundles []ballot.VoteBundle[B], value func(B, int) int) Runoff {
	runoff := Runoff{Finalists: [2]int{a, b}}
	for _, bundle := range bundles {
		va, vb := value(bundle.Ballot, a), value(bundle.Ballot, b)
		switch {
		case va > vb:
			runoff.Votes[0] += bundle.Count
		case vb > va:
			runoff.Votes[1] += bundle.Count
		}
	}
	return runoff
}

// winner returns the finalist with more votes; a tie goes to the first
func (r Runoff) winner() int {
	if r.Votes[1] > r.Votes[0] {
		return r.Finalists[1]
	}
	return r.Finalists[0]
}

func optionOrder(n int) []int {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	return order
}
