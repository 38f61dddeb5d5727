// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tuning

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/danielhkuo/voties/election"
	"github.com/danielhkuo/voties/models"
	"github.com/danielhkuo/voties/tally"
)

//go:embed tuning.schema.json
var schemaJSON []byte

//go:embed defaults.yaml
var defaultsYAML []byte

const schemaURL = "tuning.schema.json"

var schema = jsonschema.MustCompileString(schemaURL, string(schemaJSON))

// Tuning is the world configuration loaded from YAML
type Tuning struct {
	World    string                `yaml:"world"`
	Seed     uint64                `yaml:"seed"`
	TickMs   int                   `yaml:"tick_ms"`
	Speed    float64               `yaml:"speed"`
	Election Election              `yaml:"election"`
	Populace Populace              `yaml:"populace"`
	Foods    []models.FoodTemplate `yaml:"foods"`
}

type Election struct {
	IntervalSeconds float64  `yaml:"interval_seconds"`
	OpenSeconds     float64  `yaml:"open_seconds"`
	Methods         []string `yaml:"methods"`
}

type Populace struct {
	Size              int     `yaml:"size"`
	MaxKcal           float64 `yaml:"max_kcal"`
	BurnKcalPerSecond float64 `yaml:"burn_kcal_per_second"`
	LifespanSeconds   float64 `yaml:"lifespan_seconds"`
	VoteChance        float64 `yaml:"vote_chance"`
}

// Default returns the built-in tuning
func Default() Tuning {
	t, err := Parse(defaultsYAML)
	if err != nil {
		panic(fmt.Sprintf("tuning: built-in defaults are invalid: %v", err))
	}
	return t
}

// Load reads, validates and parses a tuning file. Fields missing from the
// file keep their default values.
func Load(path string) (Tuning, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Tuning{}, err
	}
	t, err := parseOver(Default(), raw)
	if err != nil {
		return Tuning{}, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Parse validates and decodes raw YAML
func Parse(raw []byte) (Tuning, error) {
	return parseOver(Tuning{}, raw)
}

func parseOver(base Tuning, raw []byte) (Tuning, error) {
	if err := Validate(raw); err != nil {
		return Tuning{}, err
	}

	t := base
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return Tuning{}, fmt.Errorf("tuning.yaml: %w", err)
	}
	return t, nil
}

// Validate checks raw YAML against the tuning schema
func Validate(raw []byte) error {
	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("tuning.yaml: %w", err)
	}
	if doc == nil {
		doc = map[string]any{}
	}

	// Route through JSON so numbers and maps have the shapes the validator expects
	asJSON, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("tuning.yaml: %w", err)
	}
	var v any
	if err := json.Unmarshal(asJSON, &v); err != nil {
		return fmt.Errorf("tuning.yaml: %w", err)
	}

	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("tuning.yaml: %w", err)
	}
	return nil
}

// TickInterval is the wall-clock time between ticks
func (t Tuning) TickInterval() time.Duration {
	return time.Duration(t.TickMs) * time.Millisecond
}

// EngineConfig converts the election section for the engine
func (t Tuning) EngineConfig() (election.Config, error) {
	cfg := election.Config{
		OpenFor:  seconds(t.Election.OpenSeconds),
		Interval: seconds(t.Election.IntervalSeconds),
	}
	for _, name := range t.Election.Methods {
		m, err := tally.ParseMethod(name)
		if err != nil {
			return election.Config{}, err
		}
		cfg.Methods = append(cfg.Methods, m)
	}
	return cfg, nil
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
