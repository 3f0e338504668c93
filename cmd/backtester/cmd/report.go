package cmd

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/rustyeddy/backtester/journal"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "List journaled backtest runs",
	Long: `Report prints the run summaries stored in a SQLite journal.

Example:
  backtester report --db runs.db`,
	RunE: runReport,
}

var reportDBPath string

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().StringVarP(&reportDBPath, "db", "d", "", "path to SQLite journal (required)")
	reportCmd.MarkFlagRequired("db")
}

func runReport(cmd *cobra.Command, args []string) error {
	j, err := journal.NewSQLite(reportDBPath)
	if err != nil {
		return err
	}
	defer j.Close()

	runs, err := j.ListRuns()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs recorded")
		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Run", "Created", "Symbol", "Strategy", "Return", "Max DD", "Sharpe", "Trades", "Win Rate"})

	for _, r := range runs {
		table.Append([]string{
			r.RunID[:8],
			r.Created.Format("2006-01-02 15:04"),
			r.Symbol,
			r.Strategy,
			fmt.Sprintf("%.2f%%", r.TotalReturn*100),
			fmt.Sprintf("%.2f%%", r.MaxDrawdown*100),
			fmt.Sprintf("%.2f", r.Sharpe),
			fmt.Sprintf("%d", r.Trades),
			fmt.Sprintf("%.1f%%", r.WinRate*100),
		})
	}
	table.Render()
	return nil
}
