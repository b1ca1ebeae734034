package engine

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Variant selects the game-ending mechanic.
type Variant string

const (
	// VariantStandard runs the collapse risk clock.
	VariantStandard Variant = "standard"
	// VariantExperimental drops collapse and ends the game after a fixed
	// number of rounds, highest score winning.
	VariantExperimental Variant = "experimental"
)

// Config holds the tunable engine parameters. Zero values are filled in by
// DefaultConfig / ConfigFromEnv.
type Config struct {
	Variant Variant `env:"DICEFACTORY_VARIANT" envDefault:"standard"`

	// MaxRounds ends an experimental-variant game after this many rounds.
	MaxRounds int `env:"DICEFACTORY_MAX_ROUNDS" envDefault:"10"`

	// CollapseDice is the multiset of die sizes rolled for the collapse
	// check each turn (standard variant).
	CollapseDice []int `env:"DICEFACTORY_COLLAPSE_DICE" envDefault:"4,6,8" envSeparator:","`

	// Market sizes drawn from the catalogs at game start.
	MarketEffects       int `env:"DICEFACTORY_MARKET_EFFECTS" envDefault:"4"`
	MarketModifications int `env:"DICEFACTORY_MARKET_MODIFICATIONS" envDefault:"4"`

	// Seed fixes the game RNG; 0 seeds from the clock.
	Seed uint64 `env:"DICEFACTORY_SEED" envDefault:"0"`
}

// DefaultConfig returns the standard engine configuration.
func DefaultConfig() Config {
	return Config{
		Variant:             VariantStandard,
		MaxRounds:           10,
		CollapseDice:        []int{4, 6, 8},
		MarketEffects:       4,
		MarketModifications: 4,
	}
}

// ConfigFromEnv parses the engine configuration from the environment,
// falling back to the documented defaults.
func ConfigFromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse engine config: %w", err)
	}
	return cfg, cfg.validate()
}

// validate rejects configurations the engine cannot run.
func (c Config) validate() error {
	switch c.Variant {
	case VariantStandard, VariantExperimental:
	default:
		return fmt.Errorf("unknown variant %q", c.Variant)
	}
	if c.Variant == VariantExperimental && c.MaxRounds <= 0 {
		return fmt.Errorf("experimental variant requires MaxRounds > 0, got %d", c.MaxRounds)
	}
	for _, s := range c.CollapseDice {
		if !IsValidDieSize(s) {
			return fmt.Errorf("invalid collapse die size %d", s)
		}
	}
	if c.MarketEffects < 0 || c.MarketEffects > len(effectCatalog) {
		return fmt.Errorf("market effect count %d out of range", c.MarketEffects)
	}
	if c.MarketModifications < 0 || c.MarketModifications > len(modificationCatalog) {
		return fmt.Errorf("market modification count %d out of range", c.MarketModifications)
	}
	return nil
}
