package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"FinScore/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())
	assert.Equal(t, WeightModeAdaptive, c.Scoring.WeightMode)
	assert.Equal(t, []int{5, 10, 20, 60}, c.Scoring.Indicators.MAPeriods)
	assert.Equal(t, 5*time.Minute, c.Cache.TTL)
	assert.InDelta(t, 0.4, c.Scoring.Weights.Weight(models.CategoryFundamental), 1e-12)
	assert.InDelta(t, 0.4, c.Scoring.Adjustment.HighVolatility.Threshold, 1e-12)
	assert.Len(t, c.Scoring.RegimeMultipliers, 6)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
environment: production
server:
  port: 9090
  read_timeout: 3s
scoring:
  weight_mode: legacy
  normalization:
    method: rank
`)
	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "production", c.Environment)
	assert.Equal(t, 9090, c.Server.Port)
	assert.Equal(t, 3*time.Second, c.Server.ReadTimeout)
	assert.Equal(t, 10*time.Second, c.Server.WriteTimeout)
	assert.Equal(t, WeightModeLegacy, c.Scoring.WeightMode)
	assert.Equal(t, "rank", c.Scoring.Normalization.Method)
	assert.InDelta(t, 0.05, c.Scoring.Normalization.Winsorize, 1e-12)
}

func TestLoadRejectsBadWeights(t *testing.T) {
	path := writeConfig(t, `
scoring:
  weights:
    fundamental:
      weight: 0.9
      factors: {roe: 1.0}
`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "categories sum")
}

func TestLoadRejectsUnknownRegime(t *testing.T) {
	path := writeConfig(t, `
scoring:
  regime_multipliers:
    SIDEWAYS: {risk: 1.1}
`)
	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadRejectsUnknownMode(t *testing.T) {
	path := writeConfig(t, "scoring:\n  weight_mode: magic\n")
	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}

func TestApplyEnv(t *testing.T) {
	c := Default()
	env := map[string]string{
		"FINSCORE_PORT":        "7000",
		"FINSCORE_WEIGHT_MODE": "static",
		"REDIS_ADDR":           "redis:6379",
	}
	require.NoError(t, c.applyEnv(func(k string) string { return env[k] }))
	assert.Equal(t, 7000, c.Server.Port)
	assert.Equal(t, WeightModeStatic, c.Scoring.WeightMode)
	assert.True(t, c.Cache.Redis.Enabled)
	assert.Equal(t, "redis:6379", c.Cache.Redis.Addr)
	require.NoError(t, c.Validate())

	err := c.applyEnv(func(k string) string {
		if k == "FINSCORE_PORT" {
			return "eighty"
		}
		return ""
	})
	assert.Error(t, err)
}

func TestLoadSampleConfig(t *testing.T) {
	c, err := Load(filepath.Join("..", "..", "config", "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, WeightModeAdaptive, c.Scoring.WeightMode)
	assert.Equal(t, Default().Scoring.Weights, c.Scoring.Weights)
	assert.False(t, c.ClickHouse.Enabled)
}
