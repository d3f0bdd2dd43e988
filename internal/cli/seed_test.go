package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexibazaar/marketplace/internal/config"
	"github.com/lexibazaar/marketplace/internal/database"
	"github.com/lexibazaar/marketplace/internal/entities"
)

func TestSeedCommandParseFlags(t *testing.T) {
	cmd := NewSeedCommand()
	require.NoError(t, cmd.ParseFlags([]string{"-dictionaries", "2", "-words-per-dictionary", "3"}))
	assert.Equal(t, 2, cmd.Dictionaries)
	assert.Equal(t, 3, cmd.WordsPerDictionary)

	cmd = NewSeedCommand()
	assert.Error(t, cmd.ParseFlags([]string{"-dictionaries", "-1"}))
}

func TestSeedCommandRun(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "seed.db")

	cmd := NewSeedCommand()
	require.NoError(t, cmd.ParseFlags([]string{"-dictionaries", "1", "-words-per-dictionary", "2", "-db", dbPath}))

	cfg := &config.Config{
		Auth:    config.Auth{BcryptCost: 4},
		Logging: config.Logging{Level: "error", Format: "json"},
	}
	require.NoError(t, cmd.Run(cfg))

	db, err := database.NewDatabase(config.Database{Driver: config.DriverSQLite, Path: dbPath, LogLevel: "silent"})
	require.NoError(t, err)
	defer db.Close()

	var words int64
	require.NoError(t, db.DB.Model(&entities.Word{}).Count(&words).Error)
	assert.Equal(t, int64(2), words)
}
