// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package rating

import (
	"fmt"
	"math"
	"slices"

	"github.com/danielhkuo/voties/models"
	"github.com/danielhkuo/voties/rng"
	"github.com/danielhkuo/voties/stats"
)

// The seven rating levels
const (
	ExtremelyNegative = -30
	Negative          = -20
	SlightlyNegative  = -10
	Neutral           = 0
	SlightlyPositive  = 10
	Positive          = 20
	ExtremelyPositive = 30
)

// Levels lists the rating levels in ascending order
var Levels = [7]int{
	ExtremelyNegative, Negative, SlightlyNegative, Neutral, SlightlyPositive, Positive, ExtremelyPositive,
}

// Thresholds used by the baselines
const (
	hungryEnergyFraction = 0.3
	overflowFillFraction = 0.9
	lowTreasuryFraction  = 0.3
	midTreasuryFraction  = 0.5
)

// OptionRating is one voter's desire for one option
type OptionRating struct {
	OptionIndex int `json:"option_index"`
	Rating      int `json:"rating"`
}

// Voter is everything the rating model knows about one voter
type Voter struct {
	Traits     models.VoterTraits
	Attributes models.VoterAttributes
}

// Rate produces a complete rating vector for one voter, sorted by rating
// descending with ties in option order.
//
// It panics if options is empty.
func Rate(src rng.Source, options []models.Option, voter Voter, world stats.WorldStats) []OptionRating {
	if len(options) == 0 {
		panic("rating: empty option list")
	}

	ratings := make([]OptionRating, len(options))
	for i, option := range options {
		ratings[i] = OptionRating{OptionIndex: i, Rating: baseline(option, voter.Attributes, world)}
	}

	// Options tied to what people have been dying of get a bump
	totalPop := float64(world.CurrentPopulation() + world.Deaths.Sum())
	for i := range ratings {
		deaths := deathsLinkedTo(options[ratings[i].OptionIndex], world)
		if deaths == 0 || totalPop <= 0 {
			continue
		}
		care := float64(voter.Traits.DeathCare) * (float64(deaths) / totalPop)
		ratings[i].Rating += int(math.Ceil(care))
	}

	// Refused food is a hard veto
	if prefs := voter.Attributes.FoodPreferences; prefs != nil {
		for i := range ratings {
			option := options[ratings[i].OptionIndex]
			if option.Kind == models.KindMakeFarm && option.Food != nil && !prefs.WillEat(*option.Food) {
				ratings[i].Rating = ExtremelyNegative
			}
		}
	}

	for i := range ratings {
		ratings[i].Rating += rng.Range(src, SlightlyNegative, SlightlyPositive)
		ratings[i].Rating += careModifier(options[ratings[i].OptionIndex], voter.Traits)
	}

	SortDescending(ratings)
	return ratings
}

// SortDescending orders a rating vector best first, keeping option order on ties
func SortDescending(ratings []OptionRating) {
	slices.SortStableFunc(ratings, func(a, b OptionRating) int {
		return b.Rating - a.Rating
	})
}

// Validate checks that ratings holds exactly one entry per option index
func Validate(ratings []OptionRating, optionCount int) error {
	if len(ratings) != optionCount {
		return fmt.Errorf("rating vector has %d entries, want %d", len(ratings), optionCount)
	}
	seen := make([]bool, optionCount)
	for _, r := range ratings {
		if r.OptionIndex < 0 || r.OptionIndex >= optionCount {
			return fmt.Errorf("option index %d out of range [0, %d)", r.OptionIndex, optionCount)
		}
		if seen[r.OptionIndex] {
			return fmt.Errorf("option index %d rated twice", r.OptionIndex)
		}
		seen[r.OptionIndex] = true
	}
	return nil
}

func baseline(option models.Option, attrs models.VoterAttributes, world stats.WorldStats) int {
	switch option.Kind {
	case models.KindDoNothing:
		return Neutral

	case models.KindMakeFarm:
		rating := Neutral
		if e := attrs.Energy; e != nil && e.CurrentKcal < e.MaxKcal*hungryEnergyFraction {
			rating = Positive
		}
		if p := attrs.FoodPreferences; p != nil && option.Food != nil && p.LikesAny(*option.Food) {
			rating = max(rating, SlightlyPositive)
		}
		return rating

	case models.KindMakeRz:
		rating := Neutral
		if r := attrs.Reproductive; r != nil && r.WantsToReproduce {
			rating += SlightlyPositive
		}
		return rating

	case models.KindMoneyHole:
		if world.HoleFilled.Max() > overflowFillFraction {
			return SlightlyPositive
		}
		return Neutral

	case models.KindMint:
		filled := world.HoleFilled.Average()
		switch {
		case filled < lowTreasuryFraction:
			return Positive
		case filled < midTreasuryFraction:
			return SlightlyPositive
		default:
			return Neutral
		}

	case models.KindHouse:
		rating := Neutral
		if h := attrs.Housing; h != nil && !h.Sheltered {
			rating = Positive
		}
		if world.HousesFilled.Max() > overflowFillFraction {
			rating += SlightlyPositive
		}
		return rating
	}

	return Neutral
}

func deathsLinkedTo(option models.Option, world stats.WorldStats) int {
	switch option.Kind {
	case models.KindMakeFarm:
		return world.Deaths.Get(models.DeathStarvation)
	case models.KindHouse:
		return world.Deaths.Get(models.DeathHomelessness)
	default:
		return 0
	}
}

func careModifier(option models.Option, traits models.VoterTraits) int {
	switch option.Kind {
	case models.KindMakeFarm:
		return traits.FoodCare
	case models.KindMakeRz:
		return traits.ReproductiveCare
	case models.KindMoneyHole, models.KindMint:
		return traits.MoneyCare
	case models.KindHouse:
		return traits.HousingCare
	default:
		return 0
	}
}
