package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.True(t, cfg.Archive.Enabled)
	assert.Equal(t, 3, cfg.Archive.CompressionLevel)
	assert.Equal(t, 10*1024, cfg.Archive.CompressThreshold)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg, err := Load("")
		require.NoError(t, err)
		return cfg
	}

	cfg := base()
	cfg.Server.Port = 0
	assert.Error(t, cfg.validate())

	cfg = base()
	cfg.Database.DSN = ""
	assert.Error(t, cfg.validate())

	cfg = base()
	cfg.Archive.CompressionLevel = 12
	assert.Error(t, cfg.validate())

	cfg = base()
	cfg.Archive.CompressThreshold = 0
	assert.Error(t, cfg.validate())
}
