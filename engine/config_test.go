package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, VariantStandard, cfg.Variant)
	assert.Equal(t, []int{4, 6, 8}, cfg.CollapseDice)
	require.NoError(t, cfg.validate())
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("DICEFACTORY_VARIANT", "experimental")
	t.Setenv("DICEFACTORY_MAX_ROUNDS", "5")
	t.Setenv("DICEFACTORY_COLLAPSE_DICE", "4,4,6")
	t.Setenv("DICEFACTORY_SEED", "99")

	cfg, err := ConfigFromEnv()
	require.NoError(t, err)
	assert.Equal(t, VariantExperimental, cfg.Variant)
	assert.Equal(t, 5, cfg.MaxRounds)
	assert.Equal(t, []int{4, 4, 6}, cfg.CollapseDice)
	assert.Equal(t, uint64(99), cfg.Seed)
}

func TestConfigFromEnvDefaults(t *testing.T) {
	cfg, err := ConfigFromEnv()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Variant, cfg.Variant)
	assert.Equal(t, DefaultConfig().CollapseDice, cfg.CollapseDice)
	assert.Equal(t, DefaultConfig().MarketEffects, cfg.MarketEffects)
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Variant = "speedrun"
	assert.Error(t, cfg.validate())

	cfg = DefaultConfig()
	cfg.Variant = VariantExperimental
	cfg.MaxRounds = 0
	assert.Error(t, cfg.validate())

	cfg = DefaultConfig()
	cfg.CollapseDice = []int{4, 5}
	assert.Error(t, cfg.validate())

	cfg = DefaultConfig()
	cfg.MarketEffects = len(effectCatalog) + 1
	assert.Error(t, cfg.validate())

	cfg = DefaultConfig()
	cfg.MarketModifications = -1
	assert.Error(t, cfg.validate())
}
