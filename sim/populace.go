// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package sim

import (
	"fmt"
	"time"

	"github.com/danielhkuo/voties/election"
	"github.com/danielhkuo/voties/models"
	"github.com/danielhkuo/voties/rating"
	"github.com/danielhkuo/voties/rng"
	"github.com/danielhkuo/voties/stats"
	"github.com/danielhkuo/voties/tuning"
)

// Needs thresholds
const (
	hungryFraction  = 0.3 // below this share of max energy a person is hungry
	eatFraction     = 0.5 // below this share a person looks for food
	mealCost        = 1.0
	mealMultiplier  = 5.0 // a farm serving feeds five portions of its template
	exposureLimit   = 120 * time.Second
	reproduceAfter  = 60 * time.Second
	stomachMl       = 1000.0
	digestMlPerSec  = 10.0
	traitCareRange  = 11 // care traits are drawn from [-10, 10]
	deathCareMax    = 40
	reproduceChance = 0.01 // per sim second once old enough
)

// DeathWindow is how long a death keeps counting in the world statistics
const DeathWindow = 60 * time.Second

// Person is one synthetic voter
type Person struct {
	ID       string
	Traits   models.VoterTraits
	Energy   models.Energy
	Stomach  models.Stomach
	Prefs    models.FoodPreferences
	Repro    models.Reproductive
	Housing  models.Housing
	Age      time.Duration
	Exposure time.Duration // time spent without shelter
}

// Voter returns the rating model's view of the person
func (p *Person) Voter() rating.Voter {
	energy, stomach, prefs, repro, housing := p.Energy, p.Stomach, p.Prefs, p.Repro, p.Housing
	return rating.Voter{
		Traits: p.Traits,
		Attributes: models.VoterAttributes{
			Energy:          &energy,
			Stomach:         &stomach,
			FoodPreferences: &prefs,
			Reproductive:    &repro,
			Housing:         &housing,
		},
	}
}

// Hungry reports whether the person's energy is below 30% of max
func (p *Person) Hungry() bool {
	return p.Energy.CurrentKcal < p.Energy.MaxKcal*hungryFraction
}

// Populace is the synthetic population voting in elections
type Populace struct {
	cfg    tuning.Populace
	people []*Person
	born   int
	clock  time.Duration
	graves []grave
}

type grave struct {
	at     time.Duration
	reason models.DeathReason
}

// NewPopulace spawns cfg.Size people with random traits
func NewPopulace(src rng.Source, cfg tuning.Populace) *Populace {
	p := &Populace{cfg: cfg}
	for i := 0; i < cfg.Size; i++ {
		p.spawn(src)
	}
	return p
}

func (p *Populace) spawn(src rng.Source) *Person {
	p.born++
	person := &Person{
		ID: fmt.Sprintf("votie-%d", p.born),
		Traits: models.VoterTraits{
			MoneyCare:        careTrait(src),
			FoodCare:         careTrait(src),
			ReproductiveCare: careTrait(src),
			HousingCare:      careTrait(src),
			DeathCare:        src.IntN(deathCareMax + 1),
		},
		Energy: models.Energy{
			CurrentKcal: rng.FloatRange(src, p.cfg.MaxKcal*0.4, p.cfg.MaxKcal),
			MaxKcal:     p.cfg.MaxKcal,
		},
		Stomach: models.Stomach{MaxMl: stomachMl},
	}

	// One liked and maybe one refused food group
	groups := models.AllFoodGroups
	person.Prefs.Prefers = []models.FoodGroup{rng.Pick(src, groups)}
	if rng.Chance(src, 0.3) {
		refused := rng.Pick(src, groups)
		if refused != person.Prefs.Prefers[0] {
			person.Prefs.WontEat = []models.FoodGroup{refused}
		}
	}

	p.people = append(p.people, person)
	return person
}

func careTrait(src rng.Source) int {
	return src.IntN(traitCareRange*2-1) - (traitCareRange - 1)
}

// People returns the living population
func (p *Populace) People() []*Person {
	return p.people
}

// Size returns the living population count
func (p *Populace) Size() int {
	return len(p.people)
}

// Advance moves every need forward by delta. People eat from the ledger's
// farms, take shelter in its houses, reproduce in its bone zones and die.
// Deaths are remembered for RecentDeaths.
func (p *Populace) Advance(src rng.Source, delta time.Duration, ledger *Ledger) {
	p.clock += delta
	secs := delta.Seconds()
	capacity := ledger.Dwellings()

	alive := p.people[:0]
	for i, person := range p.people {
		person.Age += delta
		person.Energy.CurrentKcal -= p.cfg.BurnKcalPerSecond * secs
		person.Stomach.FilledMl = max(0, person.Stomach.FilledMl-digestMlPerSec*secs)

		if person.Energy.CurrentKcal < person.Energy.MaxKcal*eatFraction && person.Stomach.FilledMl < person.Stomach.MaxMl {
			if food, ok := ledger.FoodFor(person.Prefs); ok {
				ledger.Spend(mealCost)
				person.Energy.CurrentKcal = min(person.Energy.MaxKcal, person.Energy.CurrentKcal+food.Kcal*mealMultiplier)
				person.Stomach.FilledMl = min(person.Stomach.MaxMl, person.Stomach.FilledMl+food.Ml*mealMultiplier)
			}
		}

		// Shelter goes to people in spawn order
		person.Housing.Sheltered = i < capacity
		if person.Housing.Sheltered {
			person.Exposure = 0
		} else {
			person.Exposure += delta
		}

		if person.Age > reproduceAfter && !person.Repro.WantsToReproduce {
			person.Repro.WantsToReproduce = rng.Chance(src, reproduceChance*secs)
		}

		switch {
		case person.Energy.CurrentKcal <= 0:
			p.bury(models.DeathStarvation)
		case p.cfg.LifespanSeconds > 0 && person.Age.Seconds() > p.cfg.LifespanSeconds:
			p.bury(models.DeathOldAge)
		case person.Exposure > exposureLimit:
			p.bury(models.DeathHomelessness)
		default:
			alive = append(alive, person)
		}
	}
	clear(p.people[len(alive):])
	p.people = alive

	p.births(src, secs, ledger)
}

func (p *Populace) bury(reason models.DeathReason) {
	p.graves = append(p.graves, grave{at: p.clock, reason: reason})
}

// RecentDeaths counts deaths by reason over the last DeathWindow of sim time.
// Older deaths are forgotten.
func (p *Populace) RecentDeaths() map[models.DeathReason]int {
	cutoff := p.clock - DeathWindow
	kept := p.graves[:0]
	counts := make(map[models.DeathReason]int, len(models.AllDeathReasons))
	for _, g := range p.graves {
		if g.at <= cutoff {
			continue
		}
		kept = append(kept, g)
		counts[g.reason]++
	}
	p.graves = kept
	return counts
}

func (p *Populace) births(src rng.Source, secs float64, ledger *Ledger) {
	if ledger.BoneZones == 0 {
		return
	}
	for _, person := range p.people {
		if !person.Repro.WantsToReproduce {
			continue
		}
		if rng.Chance(src, BoneZoneBirths*float64(ledger.BoneZones)*secs) {
			person.Repro.WantsToReproduce = false
			p.spawn(src)
		}
	}
}

// Wants summarizes the populace for an election survey
func (p *Populace) Wants(world stats.WorldStats) election.Wants {
	w := election.Wants{
		Population:     len(p.people),
		HomelessDeaths: world.Deaths.Get(models.DeathHomelessness),
	}
	for _, person := range p.people {
		if person.Hungry() {
			w.Hungry++
		}
		if person.Repro.WantsToReproduce {
			w.WantsToReproduce++
		}
		if !person.Housing.Sheltered {
			w.Homeless++
		}
	}
	return w
}
