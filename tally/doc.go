// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package tally implements the seven voting methods over bundled ballots.

# Methods

	FirstPastThePost  most first choices
	Approval          most approvals (rating >= SlightlyPositive)
	Preferential      instant runoff over full rankings
	GoodOkBad         top three by Good, two fewest Bad, head to head
	Star              top two by total 0..5 score, head to head
	AntiPlurality     fewest last places
	UsualJudgment     highest majority grade on a 0..6 scale

# Ties

Every tie has a fixed resolution so the same ballots always give the
same winner:

  - FirstPastThePost, Approval and AntiPlurality: lowest option index
  - Preferential: among tied losers the highest option index is eliminated
  - GoodOkBad and Star: finalists are picked stably by option index; a
    tied runoff goes to the first finalist
  - UsualJudgment: up to TieBreakBudget rounds keeping the finalists whose
    adjusted grade deviates least from their majority grade, then the
    lowest remaining option index

# Results

Compute returns a Result; the concrete type carries the method's full
breakdown (tallies, rounds, runoff, counts, bundles). MarshalResult and
UnmarshalResult store results with their method tag.

Compute panics on malformed input: no options, or a rating vector that
does not rate every option exactly once.
*/
package tally
