// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package sim

import (
	"fmt"
	"slices"
	"time"

	"github.com/danielhkuo/voties/models"
)

// Economy constants
const (
	HoleCapacity   = 500.0 // money one hole (or the starting vault) can hold
	MintRate       = 5.0   // money per sim second per mint
	StartingMoney  = 100.0
	BoneZoneBirths = 0.02 // chance per sim second per zone of a birth
)

// Ledger records every building the town has voted for. It is the
// engine's Applier.
type Ledger struct {
	Farms      []models.FoodTemplate
	Houses     []int // dwellings per house
	MoneyHoles int
	Mints      int
	BoneZones  int
	Money      float64
	Apathy     int // elections won by do nothing
}

// NewLedger returns a ledger with the starting treasury
func NewLedger() *Ledger {
	return &Ledger{Money: StartingMoney}
}

// Apply builds the winning option
func (l *Ledger) Apply(option models.Option) error {
	switch option.Kind {
	case models.KindDoNothing:
		l.Apathy++
	case models.KindMakeFarm:
		if option.Food == nil {
			return fmt.Errorf("farm option without a food")
		}
		l.Farms = append(l.Farms, *option.Food)
	case models.KindMakeRz:
		l.BoneZones++
	case models.KindMoneyHole:
		l.MoneyHoles++
	case models.KindMint:
		l.Mints++
	case models.KindHouse:
		if option.Dwellings <= 0 {
			return fmt.Errorf("house with %d dwellings", option.Dwellings)
		}
		l.Houses = append(l.Houses, option.Dwellings)
	default:
		return fmt.Errorf("unknown option kind %q", option.Kind)
	}
	return nil
}

// Dwellings returns the total housing capacity
func (l *Ledger) Dwellings() int {
	total := 0
	for _, d := range l.Houses {
		total += d
	}
	return total
}

// Capacity returns how much money the treasury can hold
func (l *Ledger) Capacity() float64 {
	return HoleCapacity * float64(1+l.MoneyHoles)
}

// HoleFilled returns the treasury fill fraction
func (l *Ledger) HoleFilled() float64 {
	return l.Money / l.Capacity()
}

// Produce runs the mints for delta sim time
func (l *Ledger) Produce(delta time.Duration) {
	l.Money = min(l.Capacity(), l.Money+MintRate*float64(l.Mints)*delta.Seconds())
}

// Spend takes amount from the treasury if it can be afforded
func (l *Ledger) Spend(amount float64) bool {
	if amount > l.Money {
		return false
	}
	l.Money -= amount
	return true
}

// FoodFor returns the first farm's food the preferences allow
func (l *Ledger) FoodFor(prefs models.FoodPreferences) (models.FoodTemplate, bool) {
	i := slices.IndexFunc(l.Farms, prefs.WillEat)
	if i < 0 {
		return models.FoodTemplate{}, false
	}
	return l.Farms[i], true
}
