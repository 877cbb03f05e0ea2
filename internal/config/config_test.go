package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleYAML = `
assets:
  - name: Bitcoin
    symbol: BTCUSDT
  - name: Cardano
    symbol: ADAUSDT
data_source:
  base_url: https://example.test
database:
  sqlite_path: /tmp/test.db
ui:
  theme: light
  time_range_days: 90
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFromYAML(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleYAML))
	require.NoError(t, err)
	require.Equal(t, []string{"BTCUSDT", "ADAUSDT"}, cfg.Symbols())
	require.Equal(t, "https://example.test", cfg.DataSource.BaseURL)
	require.Equal(t, "/tmp/test.db", cfg.Database.SQLitePath)
	require.Equal(t, "light", cfg.UI.Theme)
	require.Equal(t, 90, cfg.UI.TimeRangeDays)
	require.NoError(t, cfg.Validate())
}

func TestLoadDefaultsWhenMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	require.NotEmpty(t, cfg.Assets)
	require.Equal(t, "https://api.binance.com", cfg.DataSource.BaseURL)
	require.Equal(t, "dark", cfg.UI.Theme)
	require.Equal(t, 30, cfg.UI.TimeRangeDays)
	require.NotEmpty(t, cfg.Schedule.RefreshCron)
	require.NoError(t, cfg.Validate())
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("SQLITE_PATH", "/tmp/override.db")
	t.Setenv("TIME_RANGE_DAYS", "7")
	t.Setenv("RPC_URL", "https://rpc.example.test")

	cfg, err := Load(writeConfig(t, sampleYAML))
	require.NoError(t, err)
	require.Equal(t, "/tmp/override.db", cfg.Database.SQLitePath)
	require.Equal(t, 7, cfg.UI.TimeRangeDays)
	require.Equal(t, "https://rpc.example.test", cfg.Chainlink.RPCURL)
}

func TestValidateRejectsDuplicates(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
assets:
  - name: Bitcoin
    symbol: BTCUSDT
  - name: Also Bitcoin
    symbol: BTCUSDT
`))
	require.NoError(t, err)
	require.Error(t, cfg.Validate())
}

func TestValidateRejectsEmptySymbol(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
assets:
  - name: Mystery
    symbol: ""
`))
	require.NoError(t, err)
	require.Error(t, cfg.Validate())
}
