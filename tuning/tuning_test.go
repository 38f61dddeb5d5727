// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tuning

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/voties/models"
	"github.com/danielhkuo/voties/tally"
)

func TestDefault(t *testing.T) {
	d := Default()
	assert.Equal(t, "voties", d.World)
	assert.Equal(t, uint64(101), d.Seed)
	assert.Equal(t, 100*time.Millisecond, d.TickInterval())
	assert.NotEmpty(t, d.Foods)
	assert.Equal(t, []models.FoodGroup{models.GroupFruit}, d.Foods[0].Groups)

	cfg, err := d.EngineConfig()
	require.NoError(t, err)
	assert.Equal(t, 15*time.Second, cfg.OpenFor)
	assert.Equal(t, 20*time.Second, cfg.Interval)
	assert.Empty(t, cfg.Methods)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
world: riverside
seed: 7
election:
  open_seconds: 2.5
  methods: [star, usual_judgment]
`), 0o644))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "riverside", got.World)
	assert.Equal(t, uint64(7), got.Seed)
	assert.Equal(t, 100, got.TickMs, "kept from defaults")
	assert.Equal(t, Default().Foods, got.Foods)

	cfg, err := got.EngineConfig()
	require.NoError(t, err)
	assert.Equal(t, 2500*time.Millisecond, cfg.OpenFor)
	assert.Equal(t, []tally.Method{tally.Star, tally.UsualJudgment}, cfg.Methods)
}

func TestValidateRejects(t *testing.T) {
	for _, tc := range []struct {
		name string
		yaml string
	}{
		{"unknown key", "wrold: typo\n"},
		{"speed too high", "speed: 50\n"},
		{"unknown method", "election:\n  methods: [borda]\n"},
		{"food without groups", "foods:\n  - { name: Air, kcal: 1, groups: [] }\n"},
		{"unknown food group", "foods:\n  - { name: Rock, kcal: 1, groups: [mineral] }\n"},
		{"negative populace", "populace:\n  size: -1\n"},
		{"not yaml", "world: [unclosed\n"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Error(t, Validate([]byte(tc.yaml)))
			_, err := Parse([]byte(tc.yaml))
			assert.Error(t, err)
		})
	}
}

func TestValidateAcceptsEmpty(t *testing.T) {
	assert.NoError(t, Validate([]byte("")))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
