// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Request types

type CastVoteRequest struct {
	VoterID    string          `json:"voter_id"`
	Traits     VoterTraits     `json:"traits"`
	Attributes VoterAttributes `json:"attributes"`
}

type OpenElectionRequest struct {
	Name   string `json:"name"`
	Method string `json:"method,omitempty"` // empty picks one at random
}

type SetSpeedRequest struct {
	Multiplier float64 `json:"multiplier"`
}

// Response types

type CastVoteResponse struct {
	ElectionID string `json:"election_id"`
	VoterID    string `json:"voter_id"`
	Message    string `json:"message"`
}

type OpenElectionResponse struct {
	ElectionID string `json:"election_id"`
	Name       string `json:"name,omitempty"`
	Method     string `json:"method"`
}

type SimStatusResponse struct {
	World           string  `json:"world"`
	Seed            uint64  `json:"seed"`
	SimTimeMs       int64   `json:"sim_time_ms"`
	Speed           float64 `json:"speed"`
	Population      int     `json:"population"`
	ActiveElections int     `json:"active_elections"`
	HeldElections   int     `json:"held_elections"`
}

type SetSpeedResponse struct {
	Speed float64 `json:"speed"`
}

// OptionView is an option as shown to API clients
type OptionView struct {
	Index  int    `json:"index"`
	Key    string `json:"key"`
	Label  string `json:"label"`
	Option Option `json:"option"`
}

// ElectionView is an open election as shown to API clients
type ElectionView struct {
	ID         string       `json:"id"`
	Name       string       `json:"name"`
	Method     string       `json:"method"`
	Options    []OptionView `json:"options"`
	VoteCount  int          `json:"vote_count"`
	TimeOpenMs int64        `json:"time_open_ms"`
}

// HeldElectionListItem is one row of the held election history
type HeldElectionListItem struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Method     string    `json:"method"`
	Winner     string    `json:"winner"`
	VoterCount int       `json:"voter_count"`
	ClosedAt   time.Time `json:"closed_at"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// NewOptionViews builds the API view of an option list
func NewOptionViews(options []Option) []OptionView {
	views := make([]OptionView, len(options))
	for i, o := range options {
		views[i] = OptionView{Index: i, Key: o.Key(), Label: o.Label(), Option: o}
	}
	return views
}
