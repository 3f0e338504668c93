package journal

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// SQLite journals trades, equity snapshots and run summaries into a SQLite
// database. One SQLite journal serves one run; the run ID is assigned at
// open time and stamped onto every record.
type SQLite struct {
	db    *sql.DB
	runID string
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		return nil, err
	}

	return &SQLite{db: db, runID: uuid.NewString()}, nil
}

// RunID returns the identifier stamped onto this journal's records.
func (j *SQLite) RunID() string { return j.runID }

func (j *SQLite) RecordTrade(t TradeRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO trades
		(trade_id, run_id, symbol, side, quantity, price, value, commission, realized_pnl, time)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.TradeID, j.runID, t.Symbol, t.Side, t.Quantity,
		t.Price, t.Value, t.Commission, t.RealizedPnL, t.Time,
	)
	return err
}

func (j *SQLite) RecordEquity(e EquitySnapshot) error {
	_, err := j.db.Exec(`
		INSERT INTO equity
		(run_id, time, cash, market_value, equity)
		VALUES (?, ?, ?, ?, ?)`,
		j.runID, e.Time, e.Cash, e.MarketValue, e.Equity,
	)
	return err
}

// RecordRun stores the run summary. Created defaults to now when zero.
func (j *SQLite) RecordRun(r RunRecord) error {
	if r.RunID == "" {
		r.RunID = j.runID
	}
	if r.Created.IsZero() {
		r.Created = time.Now().UTC()
	}

	_, err := j.db.Exec(`
		INSERT INTO backtest_runs
		(run_id, created, symbol, strategy, start, end,
		 initial_capital, final_capital, total_return, max_drawdown, sharpe, trades, win_rate)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.Created, r.Symbol, r.Strategy, r.Start, r.End,
		r.InitialCapital, r.FinalCapital, r.TotalReturn, r.MaxDrawdown,
		r.Sharpe, r.Trades, r.WinRate,
	)
	return err
}

func (j *SQLite) Close() error {
	return j.db.Close()
}
