// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Option kinds
const (
	KindDoNothing OptionKind = "do_nothing"
	KindMakeFarm  OptionKind = "make_farm"
	KindMakeRz    OptionKind = "make_rz"
	KindMoneyHole OptionKind = "money_hole"
	KindMint      OptionKind = "mint"
	KindHouse     OptionKind = "house"
)

// Food groups
const (
	GroupFruit     FoodGroup = "fruit"
	GroupVegetable FoodGroup = "vegetable"
	GroupGrain     FoodGroup = "grain"
	GroupMeat      FoodGroup = "meat"
	GroupDairy     FoodGroup = "dairy"
	GroupFat       FoodGroup = "fat"
	GroupSugar     FoodGroup = "sugar"
)

// Death reasons
const (
	DeathStarvation   DeathReason = "starvation"
	DeathOldAge       DeathReason = "old_age"
	DeathHomelessness DeathReason = "homelessness"
)

type OptionKind string

type FoodGroup string

type DeathReason string

// AllFoodGroups lists every food group in declaration order
var AllFoodGroups = []FoodGroup{
	GroupFruit, GroupVegetable, GroupGrain, GroupMeat, GroupDairy, GroupFat, GroupSugar,
}

// AllDeathReasons lists every death reason in declaration order
var AllDeathReasons = []DeathReason{DeathStarvation, DeathOldAge, DeathHomelessness}

// FoodTemplate describes a food a farm can grow
type FoodTemplate struct {
	Name       string      `json:"name" yaml:"name"`
	Kcal       float64     `json:"kcal" yaml:"kcal"`
	Ml         float64     `json:"ml" yaml:"ml"`
	Groups     []FoodGroup `json:"groups" yaml:"groups"`
	Difficulty int         `json:"difficulty" yaml:"difficulty"`
}

// HasGroup reports whether the food belongs to group g
func (f FoodTemplate) HasGroup(g FoodGroup) bool {
	return slices.Contains(f.Groups, g)
}

// Key returns the full-value identity of the template
func (f FoodTemplate) Key() string {
	groups := make([]string, len(f.Groups))
	for i, g := range f.Groups {
		groups[i] = string(g)
	}
	slices.Sort(groups)

	return fmt.Sprintf("%s|%g|%g|%s|%d", f.Name, f.Kcal, f.Ml, strings.Join(groups, ","), f.Difficulty)
}

// Option is one candidate outcome of an election.
// Two options are the same option when their keys are equal.
type Option struct {
	Kind      OptionKind    `json:"kind"`
	Food      *FoodTemplate `json:"food,omitempty"`
	Dwellings int           `json:"dwellings,omitempty"`
}

func DoNothing() Option { return Option{Kind: KindDoNothing} }

func MakeFarm(food FoodTemplate) Option {
	food.Groups = slices.Clone(food.Groups)
	return Option{Kind: KindMakeFarm, Food: &food}
}

func MakeRz() Option { return Option{Kind: KindMakeRz} }

func MoneyHole() Option { return Option{Kind: KindMoneyHole} }

func Mint() Option { return Option{Kind: KindMint} }

func House(dwellings int) Option { return Option{Kind: KindHouse, Dwellings: dwellings} }

// Key returns the structural identity of the option (kind plus parameters)
func (o Option) Key() string {
	switch o.Kind {
	case KindMakeFarm:
		if o.Food == nil {
			return string(o.Kind)
		}
		return string(o.Kind) + ":" + o.Food.Key()
	case KindHouse:
		return string(o.Kind) + ":" + strconv.Itoa(o.Dwellings)
	default:
		return string(o.Kind)
	}
}

// Equal compares two options by full value
func (o Option) Equal(other Option) bool {
	return o.Key() == other.Key()
}

// Label returns a human readable description of the option
func (o Option) Label() string {
	switch o.Kind {
	case KindDoNothing:
		return "Do Nothing"
	case KindMakeFarm:
		name := "?"
		if o.Food != nil {
			name = o.Food.Name
		}
		return fmt.Sprintf("Make %q Farm", name)
	case KindMakeRz:
		return "Make a bone zone"
	case KindMoneyHole:
		return "Make a money hole"
	case KindMint:
		return "Make a mint"
	case KindHouse:
		return fmt.Sprintf("Make a %d bedroom house", o.Dwellings)
	default:
		return string(o.Kind)
	}
}

func (o Option) String() string { return o.Label() }

// DedupeOptions drops options whose key was already seen, keeping first occurrence order
func DedupeOptions(options []Option) []Option {
	seen := make(map[string]bool, len(options))
	out := make([]Option, 0, len(options))
	for _, o := range options {
		k := o.Key()
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, o)
	}
	return out
}

// Agent state consumed by the rating model. Any of the pointers in
// VoterAttributes may be nil; a nil attribute carries no signal.

// VoterTraits are the fixed per-voter care modifiers
type VoterTraits struct {
	MoneyCare        int `json:"money_care"`
	FoodCare         int `json:"food_care"`
	ReproductiveCare int `json:"reproductive_care"`
	HousingCare      int `json:"housing_care"`
	DeathCare        int `json:"death_care"`
}

type Energy struct {
	CurrentKcal float64 `json:"current_kcal"`
	MaxKcal     float64 `json:"max_kcal"`
}

type Stomach struct {
	FilledMl float64 `json:"filled_ml"`
	MaxMl    float64 `json:"max_ml"`
}

type FoodPreferences struct {
	Prefers []FoodGroup `json:"prefers,omitempty"`
	WontEat []FoodGroup `json:"wont_eat,omitempty"`
}

// WillEat reports whether none of the food's groups are refused
func (p FoodPreferences) WillEat(food FoodTemplate) bool {
	for _, g := range food.Groups {
		if slices.Contains(p.WontEat, g) {
			return false
		}
	}
	return true
}

// LikesAny reports whether the food contains a preferred group
func (p FoodPreferences) LikesAny(food FoodTemplate) bool {
	for _, g := range food.Groups {
		if slices.Contains(p.Prefers, g) {
			return true
		}
	}
	return false
}

type Reproductive struct {
	WantsToReproduce bool `json:"wants_to_reproduce"`
}

type Housing struct {
	Sheltered bool `json:"sheltered"`
}

type VoterAttributes struct {
	Energy          *Energy          `json:"energy,omitempty"`
	Stomach         *Stomach         `json:"stomach,omitempty"`
	FoodPreferences *FoodPreferences `json:"food_preferences,omitempty"`
	Reproductive    *Reproductive    `json:"reproductive,omitempty"`
	Housing         *Housing         `json:"housing,omitempty"`
}
