package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wastelandrpg/wasteland/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, "saves", cfg.Saves.Dir)
	assert.False(t, cfg.AI.Enabled)
	assert.Equal(t, 1024, cfg.AI.MaxTokens)
	assert.Equal(t, 5*time.Minute, cfg.Game.AutosaveInterval)
	assert.Equal(t, "autosave", cfg.Game.AutosaveSlot)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
logging:
  level: debug
  format: json
saves:
  dir: /tmp/wl-saves
game:
  autosave_interval: 30s
`), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "/tmp/wl-saves", cfg.Saves.Dir)
	assert.Equal(t, 30*time.Second, cfg.Game.AutosaveInterval)
}

func TestLoad_MissingFileFallsBack(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "saves", cfg.Saves.Dir)
}

func TestValidate(t *testing.T) {
	valid := config.Config{
		Logging: config.LoggingConfig{Level: "info", Format: "json"},
		Saves:   config.SavesConfig{Dir: "saves"},
		AI:      config.AIConfig{Model: "m", MaxTokens: 100},
		Game:    config.GameConfig{AutosaveInterval: time.Minute, AutosaveSlot: "autosave"},
	}
	assert.NoError(t, valid.Validate())

	t.Run("bad log level", func(t *testing.T) {
		cfg := valid
		cfg.Logging.Level = "verbose"
		assert.Error(t, cfg.Validate())
	})

	t.Run("empty saves dir", func(t *testing.T) {
		cfg := valid
		cfg.Saves.Dir = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("ai enabled without model", func(t *testing.T) {
		cfg := valid
		cfg.AI.Enabled = true
		cfg.AI.Model = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("negative autosave interval", func(t *testing.T) {
		cfg := valid
		cfg.Game.AutosaveInterval = -time.Second
		assert.Error(t, cfg.Validate())
	})
}

func TestLoad_BadFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging: ["), 0o644))

	_, err := config.Load(path)
	assert.Error(t, err)
}
