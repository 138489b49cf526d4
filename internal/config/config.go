package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/viper"
)

// Config is the full application configuration.
type Config struct {
	Catalog CatalogConfig `mapstructure:"catalog"`
	Match   MatchConfig   `mapstructure:"match"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// CatalogConfig locates the card catalog.
type CatalogConfig struct {
	Path string `mapstructure:"path"`
}

// MatchConfig carries match parameters.
type MatchConfig struct {
	Players        []string `mapstructure:"players"`
	StartingHealth int      `mapstructure:"starting_health"`
	HandSize       int      `mapstructure:"hand_size"`
	ClashCount     int      `mapstructure:"clash_count"`
	MaxRounds      int      `mapstructure:"max_rounds"`
	DraftSets      int      `mapstructure:"draft_sets"`
	DraftSetSize   int      `mapstructure:"draft_set_size"`
	Seed           int64    `mapstructure:"seed"`
}

// LoggingConfig controls the structured logger.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from the given file, applying defaults and
// SPELLCLASH_* environment overrides. A missing file is not an error; the
// defaults describe a playable two-player match.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("catalog.path", "data/cards.yaml")
	v.SetDefault("match.players", []string{"Aria", "Brand"})
	v.SetDefault("match.starting_health", 5)
	v.SetDefault("match.hand_size", 4)
	v.SetDefault("match.clash_count", 4)
	v.SetDefault("match.max_rounds", 30)
	v.SetDefault("match.draft_sets", 2)
	v.SetDefault("match.draft_set_size", 3)
	v.SetDefault("match.seed", 0)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetEnvPrefix("SPELLCLASH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			_, searchMiss := err.(viper.ConfigFileNotFoundError)
			if !searchMiss && !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects configurations the engine cannot run.
func (c *Config) Validate() error {
	if len(c.Match.Players) < 2 {
		return fmt.Errorf("match.players: need at least two players, got %d", len(c.Match.Players))
	}
	if c.Match.StartingHealth <= 0 {
		return fmt.Errorf("match.starting_health must be positive")
	}
	if c.Match.HandSize <= 0 {
		return fmt.Errorf("match.hand_size must be positive")
	}
	if c.Match.ClashCount <= 0 {
		return fmt.Errorf("match.clash_count must be positive")
	}
	return nil
}
