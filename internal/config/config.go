package config

import (
	"os"
	"time"

	"holdem-server/internal/util"
	"holdem-server/pkg/texasholdem"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config provides configuration for the hold'em server
type Config struct {
	loaded         bool
	PGDSN          string `yaml:"pgDsn" envconfig:"pg_dsn"`
	MigrationsPath string `yaml:"migrationsPath" envconfig:"migrations_path"`
	Log            struct {
		Level             string `yaml:"level"`
		DisableAccessLogs bool   `yaml:"disableAccessLogs" envconfig:"disable_access_logs"`
	}
	Table struct {
		StartingChips      int           `yaml:"startingChips" envconfig:"starting_chips"`
		StartingBigBlind   int           `yaml:"startingBigBlind" envconfig:"starting_big_blind"`
		BlindLevels        []int         `yaml:"blindLevels" envconfig:"blind_levels"`
		BlindLevelDuration time.Duration `yaml:"blindLevelDuration" envconfig:"blind_level_duration"`
		NextHandDelay      time.Duration `yaml:"nextHandDelay" envconfig:"next_hand_delay"`
		StartGameDelay     time.Duration `yaml:"startGameDelay" envconfig:"start_game_delay"`
		MaxPlayers         int           `yaml:"maxPlayers" envconfig:"max_players"`
	}
	ActionLog struct {
		BufferSize int `yaml:"bufferSize" envconfig:"buffer_size"`
	} `yaml:"actionLog" envconfig:"action_log"`
}

var config Config

// DefaultConfig returns the configuration used when no file or environment overrides it
func DefaultConfig() Config {
	opts := texasholdem.DefaultOptions()

	var c Config
	c.MigrationsPath = "./sql"
	c.Log.Level = "info"
	c.Table.StartingChips = opts.StartingChips
	c.Table.StartingBigBlind = opts.StartingBigBlind
	c.Table.BlindLevels = opts.BlindLevels
	c.Table.BlindLevelDuration = opts.BlindLevelDuration
	c.Table.NextHandDelay = opts.NextHandDelay
	c.Table.StartGameDelay = opts.StartGameDelay
	c.Table.MaxPlayers = opts.MaxPlayers
	c.ActionLog.BufferSize = 1024

	return c
}

// Instance returns a singleton instance
// If the config hasn't been loaded, it will be loaded
func Instance() Config {
	if !config.loaded {
		if err := Load(); err != nil {
			panic(err)
		}
	}

	return config
}

// Load will load the configuration
// The yaml file is optional. Environment variables prefixed with HOLDEM_ take precedence over it.
func Load() error {
	cfg := DefaultConfig()

	configFile := util.Getenv("HOLDEM_CONFIG_FILE", "config.yaml")
	file, err := os.Open(configFile)
	if err != nil && !os.IsNotExist(err) {
		return err
	}

	if file != nil {
		defer file.Close()

		if err := yaml.NewDecoder(file).Decode(&cfg); err != nil {
			return err
		}
	}

	if err := envconfig.Process("holdem", &cfg); err != nil {
		return err
	}

	cfg.loaded = true
	config = cfg
	return nil
}

// TableOptions returns the options for a new table
func (c Config) TableOptions() texasholdem.Options {
	levels := make([]int, len(c.Table.BlindLevels))
	copy(levels, c.Table.BlindLevels)

	return texasholdem.Options{
		StartingChips:      c.Table.StartingChips,
		StartingBigBlind:   c.Table.StartingBigBlind,
		BlindLevels:        levels,
		BlindLevelDuration: c.Table.BlindLevelDuration,
		NextHandDelay:      c.Table.NextHandDelay,
		StartGameDelay:     c.Table.StartGameDelay,
		MaxPlayers:         c.Table.MaxPlayers,
	}
}
