// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tally

import (
	"encoding/json"
	"fmt"

	"github.com/danielhkuo/voties/ballot"
	"github.com/danielhkuo/voties/models"
	"github.com/danielhkuo/voties/rating"
)

// Result is the outcome of one method over one election. It is implemented
// only by the result types in this package.
type Result interface {
	Method() Method
	Winner() int
	TotalVotes() int
	isResult()
}

// Outcome holds the fields every result shares
type Outcome struct {
	WinnerIndex int `json:"winner"`
	Voters      int `json:"total_votes"`
}

func (o Outcome) Winner() int     { return o.WinnerIndex }
func (o Outcome) TotalVotes() int { return o.Voters }
func (Outcome) isResult()         {}

// FirstPastThePostResult counts first choices
type FirstPastThePostResult struct {
	Outcome
	Tally   []int                                   `json:"tally"`
	Bundles []ballot.VoteBundle[ballot.SingleOption] `json:"bundles"`
}

func (FirstPastThePostResult) Method() Method { return FirstPastThePost }

// ApprovalResult counts approvals per option
type ApprovalResult struct {
	Outcome
	Approvals []int                                     `json:"approvals"`
	Bundles   []ballot.VoteBundle[ballot.MultipleOption] `json:"bundles"`
}

func (ApprovalResult) Method() Method { return Approval }

// Round is one instant-runoff round. Tally is indexed by option; eliminated
// options count 0. Eliminated lists options already out when the round
// started. Dropped is the option eliminated by this round, or -1 when the
// round produced the winner.
type Round struct {
	Tally      []int `json:"tally"`
	Eliminated []int `json:"eliminated"`
	Dropped    int   `json:"dropped"`
}

// PreferentialResult keeps every instant-runoff round
type PreferentialResult struct {
	Outcome
	Rounds  []Round                                          `json:"rounds"`
	Bundles []ballot.VoteBundle[ballot.MandatoryPreferential] `json:"bundles"`
}

func (PreferentialResult) Method() Method { return Preferential }

// GradeTally counts the grades one option received
type GradeTally struct {
	Good int `json:"good"`
	Ok   int `json:"ok"`
	Bad  int `json:"bad"`
}

// Runoff is a head-to-head between two finalists. Votes[i] counts ballots
// strictly preferring Finalists[i].
type Runoff struct {
	Finalists [2]int `json:"finalists"`
	Votes     [2]int `json:"votes"`
}

// GoodOkBadResult holds grade counts and the runoff. Runoff is nil when
// there was only one option.
type GoodOkBadResult struct {
	Outcome
	Tally   []GradeTally                          `json:"tally"`
	Runoff  *Runoff                               `json:"runoff,omitempty"`
	Bundles []ballot.VoteBundle[ballot.GoodOkBad] `json:"bundles"`
}

func (GoodOkBadResult) Method() Method { return GoodOkBad }

// StarResult holds total scores and the automatic runoff
type StarResult struct {
	Outcome
	ScoreTally []int                             `json:"score_tally"`
	Runoff     *Runoff                           `json:"runoff,omitempty"`
	Bundles    []ballot.VoteBundle[ballot.Score] `json:"bundles"`
}

func (StarResult) Method() Method { return Star }

// AntiPluralityResult counts least-favorite votes
type AntiPluralityResult struct {
	Outcome
	Tally   []int                                    `json:"tally"`
	Bundles []ballot.VoteBundle[ballot.LeastFavorite] `json:"bundles"`
}

func (AntiPluralityResult) Method() Method { return AntiPlurality }

// ScoreCount is every score one option received
type ScoreCount struct {
	Scores    []int `json:"scores"`    // ascending
	Histogram []int `json:"histogram"` // count per score 0..N
	Majority  int   `json:"majority_grade"`
}

// TieBreakScore is one finalist's score in one tie-break round
type TieBreakScore struct {
	Option int     `json:"option"`
	Score  float64 `json:"score"`
}

// TieBreakRound records one round of the majority-grade tie-break
type TieBreakRound struct {
	N      int             `json:"n"`
	Scores []TieBreakScore `json:"scores"`
	Kept   []int           `json:"kept"`
}

// UsualJudgmentResult holds score counts and any tie-break rounds.
// Exhausted is set when the tie-break budget ran out.
type UsualJudgmentResult struct {
	Outcome
	Counts    []ScoreCount                      `json:"counts"`
	TieBreak  []TieBreakRound                   `json:"tie_break,omitempty"`
	Exhausted bool                              `json:"exhausted,omitempty"`
	Bundles   []ballot.VoteBundle[ballot.Score] `json:"bundles"`
}

func (UsualJudgmentResult) Method() Method { return UsualJudgment }

// Compute runs method over one rating vector per voter.
//
// It panics when options is empty or any vector does not rate every
// option exactly once.
func Compute(method Method, options []models.Option, ratings [][]rating.OptionRating) Result {
	checkInput(options, ratings)

	switch method {
	case FirstPastThePost:
		return firstPastThePost(len(options), ratings)
	case Approval:
		return approval(len(options), ratings)
	case Preferential:
		return preferential(len(options), ratings)
	case GoodOkBad:
		return goodOkBad(len(options), ratings)
	case Star:
		return star(len(options), ratings)
	case AntiPlurality:
		return antiPlurality(len(options), ratings)
	case UsualJudgment:
		return usualJudgment(len(options), ratings)
	}
	panic(fmt.Sprintf("tally: unknown method %d", int(method)))
}

func checkInput(options []models.Option, ratings [][]rating.OptionRating) {
	if len(options) == 0 {
		panic("tally: election has no options")
	}
	for i, r := range ratings {
		if err := rating.Validate(r, len(options)); err != nil {
			panic(fmt.Sprintf("tally: voter %d: %v", i, err))
		}
	}
}

// envelope is the JSON form of a Result
type envelope struct {
	Method  Method          `json:"method"`
	Winner  int             `json:"winner"`
	Payload json.RawMessage `json:"payload"`
}

// MarshalResult encodes r with its method so it can be decoded again
func MarshalResult(r Result) ([]byte, error) {
	payload, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s result: %w", r.Method(), err)
	}
	return json.Marshal(envelope{Method: r.Method(), Winner: r.Winner(), Payload: payload})
}

// UnmarshalResult decodes a result written by MarshalResult
func UnmarshalResult(data []byte) (Result, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("failed to decode result envelope: %w", err)
	}

	var (
		r   Result
		err error
	)
	switch env.Method {
	case FirstPastThePost:
		r, err = decode[FirstPastThePostResult](env.Payload)
	case Approval:
		r, err = decode[ApprovalResult](env.Payload)
	case Preferential:
		r, err = decode[PreferentialResult](env.Payload)
	case GoodOkBad:
		r, err = decode[GoodOkBadResult](env.Payload)
	case Star:
		r, err = decode[StarResult](env.Payload)
	case AntiPlurality:
		r, err = decode[AntiPluralityResult](env.Payload)
	case UsualJudgment:
		r, err = decode[UsualJudgmentResult](env.Payload)
	default:
		return nil, fmt.Errorf("unknown voting method %d", int(env.Method))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s result: %w", env.Method, err)
	}
	return r, nil
}

func decode[R Result](payload json.RawMessage) (Result, error) {
	var r R
	if err := json.Unmarshal(payload, &r); err != nil {
		return nil, err
	}
	return r, nil
}
