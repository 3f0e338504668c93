package cmd

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/rustyeddy/backtester/backtest"
	"github.com/rustyeddy/backtester/config"
	"github.com/rustyeddy/backtester/journal"
	"github.com/rustyeddy/backtester/market"
	"github.com/rustyeddy/backtester/strategy"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a backtest over a bar CSV file",
	Long: `Run loads an OHLCV bar series from CSV, generates signals with the
configured strategy and simulates execution.

Example:
  backtester run --bars data/aapl_daily.csv --config run.yaml
  backtester run --bars data/aapl_daily.csv --strategy sma-cross --fast 10 --slow 30`,
	RunE: runBacktest,
}

var (
	runBarsPath   string
	runConfigPath string
	runStrategy   string
	runSymbol     string
	runFast       int
	runSlow       int
	runCapital    float64
	runDBPath     string
)

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runBarsPath, "bars", "b", "", "path to bar CSV (time,open,high,low,close,volume) (required)")
	runCmd.Flags().StringVarP(&runConfigPath, "config", "c", "", "path to YAML/JSON run configuration")
	runCmd.Flags().StringVarP(&runStrategy, "strategy", "s", "", "strategy name (overrides config)")
	runCmd.Flags().StringVar(&runSymbol, "symbol", "", "instrument symbol (overrides config)")
	runCmd.Flags().IntVar(&runFast, "fast", 0, "sma-cross: fast period (overrides config)")
	runCmd.Flags().IntVar(&runSlow, "slow", 0, "sma-cross: slow period (overrides config)")
	runCmd.Flags().Float64Var(&runCapital, "capital", 0, "initial capital (overrides config)")
	runCmd.Flags().StringVarP(&runDBPath, "db", "d", "", "SQLite journal path (overrides config)")

	runCmd.MarkFlagRequired("bars")
}

func runBacktest(cmd *cobra.Command, args []string) error {
	cfg := config.Default()
	if runConfigPath != "" {
		loaded, err := config.LoadFromFile(runConfigPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	// Flag overrides
	if runStrategy != "" {
		cfg.Strategy.Name = runStrategy
	}
	if runSymbol != "" {
		cfg.Strategy.Symbol = runSymbol
	}
	if runFast > 0 {
		cfg.Strategy.Fast = runFast
	}
	if runSlow > 0 {
		cfg.Strategy.Slow = runSlow
	}
	if runCapital > 0 {
		cfg.Account.InitialCapital = runCapital
	}
	if runDBPath != "" {
		cfg.Journal.Type = "sqlite"
		cfg.Journal.DBPath = runDBPath
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	bars, err := market.LoadBarsCSV(runBarsPath)
	if err != nil {
		return err
	}

	source, err := strategy.ByName(cfg.Strategy.Name, cfg.Strategy.Symbol, cfg.Strategy.Fast, cfg.Strategy.Slow)
	if err != nil {
		return err
	}

	jrnl, sqlj, err := openJournal(cfg.Journal)
	if err != nil {
		return err
	}
	if jrnl != nil {
		defer jrnl.Close()
	}

	var opts []backtest.Option
	if jrnl != nil {
		opts = append(opts, backtest.WithJournal(jrnl))
	}

	engine := backtest.New(cfg.Sim(), opts...)
	res, err := engine.Run(cmd.Context(), bars, source)
	if err != nil {
		return err
	}

	if sqlj != nil {
		rec := journal.RunRecord{
			Symbol:         cfg.Strategy.Symbol,
			Strategy:       cfg.Strategy.Name,
			Start:          res.Start,
			End:            res.End,
			InitialCapital: res.InitialCapital,
			FinalCapital:   res.FinalCapital,
			TotalReturn:    res.Summary.TotalReturn,
			MaxDrawdown:    res.Summary.MaxDrawdown,
			Sharpe:         res.Summary.SharpeRatio,
			Trades:         res.Summary.TotalTrades,
			WinRate:        res.Summary.WinRate,
		}
		if err := sqlj.RecordRun(rec); err != nil {
			return fmt.Errorf("record run: %w", err)
		}
	}

	printSummary(res)
	return nil
}

// openJournal builds the configured journal. The second return value is
// non-nil only for SQLite, which additionally stores run summaries.
func openJournal(jc config.JournalConfig) (journal.Journal, *journal.SQLite, error) {
	switch jc.Type {
	case "":
		return nil, nil, nil
	case "csv":
		j, err := journal.NewCSV(jc.TradesFile, jc.EquityFile)
		if err != nil {
			return nil, nil, err
		}
		return j, nil, nil
	case "sqlite":
		j, err := journal.NewSQLite(jc.DBPath)
		if err != nil {
			return nil, nil, err
		}
		return j, j, nil
	default:
		return nil, nil, fmt.Errorf("unknown journal type %q", jc.Type)
	}
}

func printSummary(res *backtest.Result) {
	s := res.Summary

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Metric", "Value"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)

	rows := [][]string{
		{"Period", fmt.Sprintf("%s - %s", res.Start.Format("2006-01-02"), res.End.Format("2006-01-02"))},
		{"Initial Capital", fmt.Sprintf("%.2f", res.InitialCapital)},
		{"Final Capital", fmt.Sprintf("%.2f", res.FinalCapital)},
		{"Total Return", fmt.Sprintf("%.2f%%", s.TotalReturn*100)},
		{"Annualized Return", fmt.Sprintf("%.2f%%", s.AnnualizedReturn*100)},
		{"Max Drawdown", fmt.Sprintf("%.2f%%", s.MaxDrawdown*100)},
		{"Max DD Duration", fmt.Sprintf("%.1f days", s.MaxDrawdownDays)},
		{"Volatility", fmt.Sprintf("%.2f%%", s.Volatility*100)},
		{"Sharpe", fmt.Sprintf("%.2f", s.SharpeRatio)},
		{"Sortino", fmt.Sprintf("%.2f", s.SortinoRatio)},
		{"Calmar", fmt.Sprintf("%.2f", s.CalmarRatio)},
		{"Trades", fmt.Sprintf("%d", s.TotalTrades)},
		{"Win Rate", fmt.Sprintf("%.1f%%", s.WinRate*100)},
		{"Avg Win / Avg Loss", fmt.Sprintf("%.2f / %.2f", s.AvgWin, s.AvgLoss)},
		{"Profit Factor", fmt.Sprintf("%.2f", s.ProfitFactor)},
		{"Avg Holding", fmt.Sprintf("%.1f days", s.AvgHoldingDays)},
	}
	for _, row := range rows {
		table.Append(row)
	}
	table.Render()
}
