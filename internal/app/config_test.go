package app

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fulingwei1/non-standard-automation-pms-sub011/internal/receivables"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.AppAddr)
	require.Equal(t, 30, cfg.TrendWindowDays)
	require.False(t, cfg.IsProduction())
}

func TestConfigThresholds(t *testing.T) {
	t.Setenv("COLLECTION_CRITICAL_AMOUNT", "250000")
	t.Setenv("COLLECTION_WARNING_DAYS", "14")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	th := cfg.Thresholds()
	require.InDelta(t, 250000, th.CriticalAmount, 1e-9)
	require.Equal(t, 14, th.WarningDays)
	require.Equal(t, 60, th.UrgentDays)

	var nilCfg *Config
	require.Equal(t, receivables.DefaultThresholds(), nilCfg.Thresholds())
}
