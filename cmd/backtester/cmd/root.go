package cmd

import (
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var logLevel string

var rootCmd = &cobra.Command{
	Use:   "backtester",
	Short: "A single-asset, event-driven backtesting engine",
	Long: `Backtester simulates a trading strategy against historical OHLCV bars.

It executes signals through a fill model with slippage and commission,
tracks cash and positions, enforces stop-loss/take-profit exits, and
reports standard performance statistics (drawdown, Sharpe, Sortino,
Calmar, win rate, profit factor).`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		lvl, err := log.ParseLevel(logLevel)
		if err != nil {
			return err
		}
		log.SetLevel(lvl)
		return nil
	},
}

// Execute adds all child commands to the root command and runs it.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
}
