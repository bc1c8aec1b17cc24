package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.EqualValues(t, 500, cfg.Particles)
}

func TestParseFlags(t *testing.T) {
	cfg, err := Parse([]string{"-point-size", "20", "-seed", "7", "-sound", "-paused", "-log-level", "debug"})
	require.NoError(t, err)
	assert.EqualValues(t, 20, cfg.PointSize)
	assert.EqualValues(t, 7, cfg.SeedOrClock())
	assert.True(t, cfg.Sound)
	assert.True(t, cfg.Paused)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		mut  func(*Config)
	}{
		{"point size", func(c *Config) { c.PointSize = 3 }},
		{"no particles", func(c *Config) { c.Particles = 0 }},
		{"log level", func(c *Config) { c.LogLevel = "loud" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mut(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalid)
		})
	}
}

func TestParseRejectsBadSize(t *testing.T) {
	_, err := Parse([]string{"-point-size", "2"})
	assert.ErrorIs(t, err, ErrInvalid)
}
