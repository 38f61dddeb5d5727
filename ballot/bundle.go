// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ballot

import "slices"

// VoteBundle is a ballot together with how many voters cast it
type VoteBundle[B Ballot] struct {
	Ballot B   `json:"ballot"`
	Count  int `json:"count"`
}

// Bundle groups identical ballots. The result is sorted by count
// descending; equal counts keep the order ballots were first seen.
func Bundle[B Ballot](ballots []B) []VoteBundle[B] {
	index := make(map[string]int, len(ballots))
	bundles := make([]VoteBundle[B], 0)

	for _, b := range ballots {
		k := b.Key()
		if i, ok := index[k]; ok {
			bundles[i].Count++
			continue
		}
		index[k] = len(bundles)
		bundles = append(bundles, VoteBundle[B]{Ballot: b, Count: 1})
	}

	slices.SortStableFunc(bundles, func(a, b VoteBundle[B]) int {
		return b.Count - a.Count
	})
	return bundles
}

// TotalCount sums the counts of all bundles
func TotalCount[B Ballot](bundles []VoteBundle[B]) int {
	total := 0
	for _, b := range bundles {
		total += b.Count
	}
	return total
}
