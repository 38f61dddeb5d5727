// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package ballot encodes rating vectors into method-specific ballots and
groups identical ballots into bundles.

# Encoders

Each encoder is a pure function of one voter's best-first rating vector:

  - FillSingleOption: the top-rated option (First-Past-The-Post)
  - FillLeastFavorite: the bottom-rated option (Anti-Plurality)
  - FillMultipleOption: every option rated >= SlightlyPositive (Approval)
  - FillMandatoryPreferential: the full ranking (Instant-Runoff)
  - FillGoodOkBad: Good >= Positive, Ok >= SlightlyNegative, else Bad
  - ScoreScale.Fill: scores 0..N (StarScale N=5, JudgmentScale N=6)

# Bundles

Bundle groups ballots by Key and counts them:

	bundles := ballot.Bundle(ballot.Fill(ratings, ballot.FillSingleOption))
	// sum of bundle counts == len(ratings)
*/
package ballot
