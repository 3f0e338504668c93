package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rustyeddy/backtester/sim"
)

// Config represents a complete backtest run configuration.
type Config struct {
	Account  AccountConfig  `json:"account" yaml:"account"`
	Strategy StrategyConfig `json:"strategy" yaml:"strategy"`
	Journal  JournalConfig  `json:"journal" yaml:"journal"`
}

// AccountConfig contains capital and cost-model parameters.
type AccountConfig struct {
	InitialCapital float64 `json:"initial_capital" yaml:"initial_capital"`
	MaxPositions   int     `json:"max_positions" yaml:"max_positions"`
	Commission     float64 `json:"commission" yaml:"commission"`
	Slippage       float64 `json:"slippage" yaml:"slippage"`
	RiskPerTrade   float64 `json:"risk_per_trade" yaml:"risk_per_trade"`
	StopLoss       float64 `json:"stop_loss,omitempty" yaml:"stop_loss,omitempty"`
	TakeProfit     float64 `json:"take_profit,omitempty" yaml:"take_profit,omitempty"`
}

// StrategyConfig names the signal generator and its parameters.
type StrategyConfig struct {
	Name   string `json:"name" yaml:"name"`
	Symbol string `json:"symbol" yaml:"symbol"`
	Fast   int    `json:"fast,omitempty" yaml:"fast,omitempty"`
	Slow   int    `json:"slow,omitempty" yaml:"slow,omitempty"`
}

// JournalConfig contains journaling parameters.
type JournalConfig struct {
	Type       string `json:"type,omitempty" yaml:"type,omitempty"` // "csv", "sqlite" or "" (disabled)
	TradesFile string `json:"trades_file,omitempty" yaml:"trades_file,omitempty"`
	EquityFile string `json:"equity_file,omitempty" yaml:"equity_file,omitempty"`
	DBPath     string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// LoadFromFile loads configuration from a file (YAML or JSON).
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension).
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate checks if the configuration is valid. The engine itself trusts
// its input, so this is the gate every run configuration must pass.
func (c *Config) Validate() error {
	if c.Account.InitialCapital <= 0 {
		return fmt.Errorf("account.initial_capital must be positive")
	}
	if c.Account.MaxPositions <= 0 {
		return fmt.Errorf("account.max_positions must be positive")
	}
	for name, v := range map[string]float64{
		"account.commission":     c.Account.Commission,
		"account.slippage":       c.Account.Slippage,
		"account.risk_per_trade": c.Account.RiskPerTrade,
		"account.stop_loss":      c.Account.StopLoss,
		"account.take_profit":    c.Account.TakeProfit,
	} {
		if v < 0 || v > 1 {
			return fmt.Errorf("%s must be between 0 and 1", name)
		}
	}
	if c.Strategy.Symbol == "" {
		return fmt.Errorf("strategy.symbol is required")
	}
	switch c.Journal.Type {
	case "", "csv", "sqlite":
	default:
		return fmt.Errorf("journal.type must be 'csv', 'sqlite' or empty")
	}
	if c.Journal.Type == "csv" && (c.Journal.TradesFile == "" || c.Journal.EquityFile == "") {
		return fmt.Errorf("journal trades_file and equity_file required for CSV type")
	}
	if c.Journal.Type == "sqlite" && c.Journal.DBPath == "" {
		return fmt.Errorf("journal db_path required for SQLite type")
	}
	return nil
}

// Sim converts the account section to the engine's configuration.
func (c *Config) Sim() sim.Config {
	return sim.Config{
		InitialCapital: c.Account.InitialCapital,
		MaxPositions:   c.Account.MaxPositions,
		Commission:     c.Account.Commission,
		Slippage:       c.Account.Slippage,
		RiskPerTrade:   c.Account.RiskPerTrade,
		StopLoss:       c.Account.StopLoss,
		TakeProfit:     c.Account.TakeProfit,
	}
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Account: AccountConfig{
			InitialCapital: 100000,
			MaxPositions:   5,
			Commission:     0.001,
			Slippage:       0.001,
			RiskPerTrade:   0.2,
		},
		Strategy: StrategyConfig{
			Name:   "sma-cross",
			Symbol: "AAPL",
			Fast:   10,
			Slow:   30,
		},
	}
}
