// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ballot

import (
	"slices"
	"strconv"
	"strings"

	"github.com/danielhkuo/voties/rating"
)

// Ballot is any method-specific ballot. Two ballots with the same key are
// the same ballot.
type Ballot interface {
	Key() string
}

// SingleOption votes for the voter's top-rated option
type SingleOption struct {
	VotedFor int `json:"voted_for"`
}

func (b SingleOption) Key() string { return strconv.Itoa(b.VotedFor) }

// FillSingleOption takes the first entry of a best-first rating vector
func FillSingleOption(ratings []rating.OptionRating) SingleOption {
	return SingleOption{VotedFor: ratings[0].OptionIndex}
}

// LeastFavorite votes against the voter's lowest-rated option
type LeastFavorite struct {
	LeastFavorite int `json:"least_favorite"`
}

func (b LeastFavorite) Key() string { return strconv.Itoa(b.LeastFavorite) }

// FillLeastFavorite takes the last entry of a best-first rating vector
func FillLeastFavorite(ratings []rating.OptionRating) LeastFavorite {
	return LeastFavorite{LeastFavorite: ratings[len(ratings)-1].OptionIndex}
}

// MultipleOption approves every option rated at least SlightlyPositive.
// VotedFor is sorted by option index.
type MultipleOption struct {
	VotedFor []int `json:"voted_for"`
}

func (b MultipleOption) Key() string { return joinInts(b.VotedFor) }

// Approves reports whether the ballot approves option
func (b MultipleOption) Approves(option int) bool {
	_, found := slices.BinarySearch(b.VotedFor, option)
	return found
}

// ApprovalThreshold is the lowest rating that counts as approval
const ApprovalThreshold = rating.SlightlyPositive

func FillMultipleOption(ratings []rating.OptionRating) MultipleOption {
	votedFor := []int{}
	for _, r := range ratings {
		if r.Rating >= ApprovalThreshold {
			votedFor = append(votedFor, r.OptionIndex)
		}
	}
	slices.Sort(votedFor)
	return MultipleOption{VotedFor: votedFor}
}

// MandatoryPreferential ranks every option, best first
type MandatoryPreferential struct {
	Ranking []int `json:"ranking"`
}

func (b MandatoryPreferential) Key() string { return joinInts(b.Ranking) }

func FillMandatoryPreferential(ratings []rating.OptionRating) MandatoryPreferential {
	ranking := make([]int, len(ratings))
	for i, r := range ratings {
		ranking[i] = r.OptionIndex
	}
	return MandatoryPreferential{Ranking: ranking}
}

// Grade is a Good/Ok/Bad judgment; Good > Ok > Bad
type Grade int

const (
	Bad Grade = iota
	Ok
	Good
)

func (g Grade) String() string {
	switch g {
	case Good:
		return "good"
	case Ok:
		return "ok"
	default:
		return "bad"
	}
}

// GradeOf maps a rating to a Good/Ok/Bad grade
func GradeOf(r int) Grade {
	switch {
	case r >= rating.Positive:
		return Good
	case r >= rating.SlightlyNegative:
		return Ok
	default:
		return Bad
	}
}

// GoodOkBad grades every option; Grades is indexed by option index
type GoodOkBad struct {
	Grades []Grade `json:"grades"`
}

func (b GoodOkBad) Key() string {
	var sb strings.Builder
	for _, g := range b.Grades {
		sb.WriteByte(byte('0' + g))
	}
	return sb.String()
}

func FillGoodOkBad(ratings []rating.OptionRating) GoodOkBad {
	grades := make([]Grade, len(ratings))
	for _, r := range ratings {
		grades[r.OptionIndex] = GradeOf(r.Rating)
	}
	return GoodOkBad{Grades: grades}
}

// Score gives every option a score in [0, N]; Scores is indexed by option index
type Score struct {
	Scores []int `json:"scores"`
}

func (b Score) Key() string { return joinInts(b.Scores) }

// Fill encodes every voter's rating vector with fill
func Fill[B Ballot](ratings [][]rating.OptionRating, fill func([]rating.OptionRating) B) []B {
	ballots := make([]B, len(ratings))
	for i, r := range ratings {
		ballots[i] = fill(r)
	}
	return ballots
}

func joinInts(values []int) string {
	var sb strings.Builder
	for i, v := range values {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(v))
	}
	return sb.String()
}
