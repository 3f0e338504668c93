package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))
	return path
}

func TestLoadFromFileYAML(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "run.yaml", `
account:
  initial_capital: 50000
  max_positions: 3
  commission: 0.001
  slippage: 0.002
  risk_per_trade: 0.25
  stop_loss: 0.05
strategy:
  name: sma-cross
  symbol: MSFT
  fast: 5
  slow: 20
journal:
  type: sqlite
  db_path: ./runs.db
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, 50000.0, cfg.Account.InitialCapital)
	assert.Equal(t, 3, cfg.Account.MaxPositions)
	assert.Equal(t, "MSFT", cfg.Strategy.Symbol)
	assert.Equal(t, 5, cfg.Strategy.Fast)
	assert.Equal(t, "sqlite", cfg.Journal.Type)

	sc := cfg.Sim()
	assert.Equal(t, 0.05, sc.StopLoss)
	assert.Equal(t, 0.25, sc.RiskPerTrade)
}

func TestLoadFromFileJSON(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "run.json", `{
  "account": {"initial_capital": 10000, "max_positions": 1, "risk_per_trade": 1.0},
  "strategy": {"name": "buy-and-hold", "symbol": "AAPL"}
}`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "buy-and-hold", cfg.Strategy.Name)
	assert.Equal(t, 1.0, cfg.Account.RiskPerTrade)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid default", func(c *Config) {}, ""},
		{"zero capital", func(c *Config) { c.Account.InitialCapital = 0 }, "initial_capital"},
		{"zero max positions", func(c *Config) { c.Account.MaxPositions = 0 }, "max_positions"},
		{"commission above 1", func(c *Config) { c.Account.Commission = 1.5 }, "between 0 and 1"},
		{"negative slippage", func(c *Config) { c.Account.Slippage = -0.1 }, "between 0 and 1"},
		{"missing symbol", func(c *Config) { c.Strategy.Symbol = "" }, "symbol is required"},
		{"bad journal type", func(c *Config) { c.Journal.Type = "postgres" }, "journal.type"},
		{"csv without files", func(c *Config) { c.Journal.Type = "csv" }, "trades_file"},
		{"sqlite without path", func(c *Config) { c.Journal.Type = "sqlite" }, "db_path"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "out.yaml")

	cfg := Default()
	cfg.Account.InitialCapital = 42000
	require.NoError(t, cfg.SaveToFile(path))

	got, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 42000.0, got.Account.InitialCapital)
}
