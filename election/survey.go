// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"github.com/danielhkuo/voties/models"
	"github.com/danielhkuo/voties/rng"
)

// House sizes offered by a survey, inclusive
const (
	MinDwellings = 3
	MaxDwellings = 10
)

// Wants summarizes what the populace is short of when an election opens
type Wants struct {
	Population       int
	Hungry           int // below 30% energy
	WantsToReproduce int
	Homeless         int
	HomelessDeaths   int
}

// Survey builds the option list for a new election. The baseline is
// do nothing, a house, a random farm, a money hole and a mint; wants add a
// second farm, a bone zone or a bigger house. Options are unique by key.
func Survey(src rng.Source, foods []models.FoodTemplate, wants Wants) []models.Option {
	dwellings := rng.Range(src, MinDwellings, MaxDwellings+1)

	options := []models.Option{models.DoNothing(), models.House(dwellings)}
	if len(foods) > 0 {
		options = append(options, models.MakeFarm(rng.Pick(src, foods)))
	}
	options = append(options, models.MoneyHole(), models.Mint())

	if wants.Population == 0 {
		return models.DedupeOptions(options)
	}

	// A quarter of the town going hungry earns a second farm
	if len(foods) > 1 && 4*wants.Hungry >= wants.Population {
		options = append(options, models.MakeFarm(rng.Pick(src, foods)))
	}
	if 2*wants.WantsToReproduce >= wants.Population {
		options = append(options, models.MakeRz())
	}
	if wants.HomelessDeaths > 0 || 4*wants.Homeless >= wants.Population {
		options = append(options, models.House(dwellings+rng.Range(src, 2, 6)))
	}

	return models.DedupeOptions(options)
}
