// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package rating

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/voties/models"
	"github.com/danielhkuo/voties/rng"
	"github.com/danielhkuo/voties/stats"
)

// zeroJitter always draws the middle of [SlightlyNegative, SlightlyPositive)
type zeroJitter struct{}

func (zeroJitter) IntN(n int) int     { return n / 2 }
func (zeroJitter) Float64() float64 { return 0.5 }

var (
	apple = models.FoodTemplate{Name: "Apple", Kcal: 95, Groups: []models.FoodGroup{models.GroupFruit}}
	steak = models.FoodTemplate{Name: "Steak", Kcal: 600, Groups: []models.FoodGroup{models.GroupMeat}}
)

func allOptions() []models.Option {
	return []models.Option{
		models.DoNothing(),
		models.MakeFarm(apple),
		models.MakeRz(),
		models.MoneyHole(),
		models.Mint(),
		models.House(5),
		models.MakeFarm(steak),
	}
}

// byOption maps a rating vector back to option order
func byOption(ratings []OptionRating) []int {
	out := make([]int, len(ratings))
	for _, r := range ratings {
		out[r.OptionIndex] = r.Rating
	}
	return out
}

func halfFullTreasury() stats.WorldStats {
	var w stats.WorldStats
	w.HoleFilled.Push(0.6)
	w.HousesFilled.Push(0.5)
	w.Population.Push(10)
	return w
}

func TestRateBaselines(t *testing.T) {
	voter := Voter{
		Attributes: models.VoterAttributes{
			Energy:          &models.Energy{CurrentKcal: 100, MaxKcal: 1000},
			FoodPreferences: &models.FoodPreferences{Prefers: []models.FoodGroup{models.GroupFruit}},
			Reproductive:    &models.Reproductive{WantsToReproduce: true},
			Housing:         &models.Housing{Sheltered: false},
		},
	}

	got := byOption(Rate(zeroJitter{}, allOptions(), voter, halfFullTreasury()))
	assert.Equal(t, []int{
		Neutral,          // do nothing
		Positive,         // hungry, likes fruit
		SlightlyPositive, // wants to reproduce
		Neutral,          // treasury not overflowing
		Neutral,          // treasury above half
		Positive,         // unsheltered
		Positive,         // hungry
	}, got)
}

func TestRateWorldSignals(t *testing.T) {
	var world stats.WorldStats
	world.HoleFilled.Push(0.95)
	world.HoleFilled.Push(0.1)
	world.HoleFilled.Push(0.1)
	world.HousesFilled.Push(0.95)

	got := byOption(Rate(zeroJitter{}, allOptions(), Voter{}, world))
	assert.Equal(t, SlightlyPositive, got[3], "money hole when the treasury overflowed")
	assert.Equal(t, SlightlyPositive, got[4], "mint when the treasury averages under half")
	assert.Equal(t, SlightlyPositive, got[5], "house when housing is nearly full")
}

func TestRateFoodVeto(t *testing.T) {
	voter := Voter{
		Traits: models.VoterTraits{FoodCare: 5, DeathCare: 100},
		Attributes: models.VoterAttributes{
			Energy: &models.Energy{CurrentKcal: 0, MaxKcal: 1000},
			FoodPreferences: &models.FoodPreferences{
				Prefers: []models.FoodGroup{models.GroupMeat},
				WontEat: []models.FoodGroup{models.GroupMeat},
			},
		},
	}
	world := halfFullTreasury()
	world.Deaths.Add(models.DeathStarvation, 10)

	got := byOption(Rate(zeroJitter{}, allOptions(), voter, world))
	assert.Equal(t, ExtremelyNegative+5, got[6], "veto overrides hunger, preference and deaths")
}

func TestRateDeathAversion(t *testing.T) {
	world := halfFullTreasury()
	world.Deaths.Add(models.DeathStarvation, 3)
	world.Deaths.Add(models.DeathHomelessness, 1)
	voter := Voter{Traits: models.VoterTraits{DeathCare: 10}}

	got := byOption(Rate(zeroJitter{}, allOptions(), voter, world))
	// ceil(10 * 3/14) = 3 and ceil(10 * 1/14) = 1
	assert.Equal(t, 3, got[1])
	assert.Equal(t, 1, got[5])
	assert.Equal(t, Neutral, got[2])
}

func TestRateCareModifiers(t *testing.T) {
	voter := Voter{Traits: models.VoterTraits{MoneyCare: 1, FoodCare: 2, ReproductiveCare: 3, HousingCare: 4}}
	got := byOption(Rate(zeroJitter{}, allOptions(), voter, halfFullTreasury()))
	assert.Equal(t, []int{0, 2, 3, 1, 1, 4, 2}, got)
}

func TestRateSortedAndComplete(t *testing.T) {
	src := rng.New(rng.DefaultSeed)
	voter := Voter{Traits: models.VoterTraits{HousingCare: 7, MoneyCare: -3}}
	for i := 0; i < 100; i++ {
		ratings := Rate(src, allOptions(), voter, halfFullTreasury())
		require.NoError(t, Validate(ratings, len(allOptions())))
		for j := 1; j < len(ratings); j++ {
			assert.GreaterOrEqual(t, ratings[j-1].Rating, ratings[j].Rating)
		}
		// jitter stays within [SlightlyNegative, SlightlyPositive)
		do := byOption(ratings)[0]
		assert.GreaterOrEqual(t, do, SlightlyNegative)
		assert.Less(t, do, SlightlyPositive)
	}
}

// countingJitter always draws the top of the range and counts its draws
type countingJitter struct{ draws int }

func (c *countingJitter) IntN(n int) int { c.draws++; return n - 1 }
func (c *countingJitter) Float64() float64 { return 0 }

func TestRateJittersEveryOption(t *testing.T) {
	src := &countingJitter{}
	got := byOption(Rate(src, allOptions(), Voter{}, halfFullTreasury()))
	base := byOption(Rate(zeroJitter{}, allOptions(), Voter{}, halfFullTreasury()))

	// One draw per option, do_nothing included
	assert.Equal(t, len(allOptions()), src.draws)
	assert.Equal(t, SlightlyPositive-1, got[0])
	for i := range got {
		assert.Equal(t, base[i]+SlightlyPositive-1, got[i], "option %d", i)
	}
}

func TestRateIsReproducible(t *testing.T) {
	a := Rate(rng.New(42), allOptions(), Voter{}, halfFullTreasury())
	b := Rate(rng.New(42), allOptions(), Voter{}, halfFullTreasury())
	assert.Equal(t, a, b)
}

func TestRateTiesKeepOptionOrder(t *testing.T) {
	ratings := Rate(zeroJitter{}, allOptions(), Voter{}, halfFullTreasury())
	for i, r := range ratings {
		assert.Equal(t, i, r.OptionIndex)
	}
}

func TestRatePanicsWithoutOptions(t *testing.T) {
	assert.Panics(t, func() { Rate(zeroJitter{}, nil, Voter{}, stats.WorldStats{}) })
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate([]OptionRating{{1, 0}, {0, 5}}, 2))
	assert.Error(t, Validate([]OptionRating{{0, 0}}, 2))
	assert.Error(t, Validate([]OptionRating{{0, 0}, {0, 1}}, 2))
	assert.Error(t, Validate([]OptionRating{{0, 0}, {2, 1}}, 2))
}
