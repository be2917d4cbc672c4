package config

import (
	"os"
	"testing"
	"time"

	"holdem-server/internal/util"

	"github.com/stretchr/testify/assert"
)

func TestInstance(t *testing.T) {
	defer util.SetEnv("HOLDEM_CONFIG_FILE", "testdata/config.yaml")()
	defer util.SetEnv("HOLDEM_TABLE_MAX_PLAYERS", "4")()
	config = Config{}

	a := assert.New(t)
	cfg := Instance()
	a.Equal("postgres://postgres@localhost:5432/holdem?sslmode=disable", cfg.PGDSN)
	a.Equal("debug", cfg.Log.Level)
	a.Equal(1000, cfg.Table.StartingChips)
	a.Equal([]int{10, 20, 40}, cfg.Table.BlindLevels)
	a.Equal(time.Minute*5, cfg.Table.BlindLevelDuration)
	a.Equal(4, cfg.Table.MaxPlayers)

	// not in the file
	a.Equal(time.Second*5, cfg.Table.NextHandDelay)
	a.Equal("./sql", cfg.MigrationsPath)

	// ensure that it's only loaded once
	_ = os.Setenv("HOLDEM_TABLE_MAX_PLAYERS", "5")
	// ensure we aren't using a pointer
	cfg.Table.MaxPlayers = 0
	cfg = Instance()
	a.Equal(4, cfg.Table.MaxPlayers)
}

func TestLoad_missingFile(t *testing.T) {
	defer util.SetEnv("HOLDEM_CONFIG_FILE", "testdata/does-not-exist.yaml")()
	defer util.SetEnv("HOLDEM_TABLE_BLIND_LEVELS", "20,50,100")()

	a := assert.New(t)
	a.NoError(Load())

	cfg := Instance()
	a.Equal("", cfg.PGDSN)
	a.Equal(5000, cfg.Table.StartingChips)
	a.Equal([]int{20, 50, 100}, cfg.Table.BlindLevels)
}

func TestConfig_TableOptions(t *testing.T) {
	a := assert.New(t)

	cfg := DefaultConfig()
	opts := cfg.TableOptions()
	a.Equal(5000, opts.StartingChips)
	a.Equal(20, opts.StartingBigBlind)
	a.Equal(9, opts.MaxPlayers)
	a.Equal(time.Minute*10, opts.BlindLevelDuration)

	// options get their own copy of the levels
	opts.BlindLevels[0] = 1
	a.Equal(20, cfg.Table.BlindLevels[0])
}
