// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the domain and API types shared across packages.

# Options

An Option is one outcome an election can pick:

	models.DoNothing()
	models.MakeFarm(food)
	models.MakeRz()
	models.MoneyHole()
	models.Mint()
	models.House(4)

Options compare by full value. Key returns the structural identity
(kind plus parameters) and DedupeOptions collapses duplicates:

	opts := models.DedupeOptions([]models.Option{models.Mint(), models.Mint()})
	// len(opts) == 1

# Agent State

The rating model reads a voter through two types:

  - VoterTraits: fixed care modifiers (money, food, reproduction, housing, death)
  - VoterAttributes: optional live state (energy, stomach, food preferences,
    reproductive drive, housing)

A nil attribute means "no signal" and never changes a rating.

# Request Types

  - CastVoteRequest: voter_id, traits, attributes
  - OpenElectionRequest: name, method
  - SetSpeedRequest: multiplier

# Response Types

  - CastVoteResponse, OpenElectionResponse
  - ElectionView: an open election with its options
  - HeldElectionListItem: one history row
  - SimStatusResponse, SetSpeedResponse
  - ErrorResponse: error, message

# Constants

Option kinds:

	KindDoNothing, KindMakeFarm, KindMakeRz, KindMoneyHole, KindMint, KindHouse

Death reasons:

	DeathStarvation, DeathOldAge, DeathHomelessness
*/
package models
