package backtest

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/rustyeddy/backtester/journal"
	"github.com/rustyeddy/backtester/market"
	"github.com/rustyeddy/backtester/risk"
	"github.com/rustyeddy/backtester/sim"
)

// Engine drives one backtest run: it feeds signals through the execution
// simulator, applies forced risk exits, samples the equity curve and
// computes the performance summary at the end.
//
// An Engine is a plain value constructed per run; Run resets all mutable
// state on entry, so the same Engine may be reused sequentially. It must
// not be shared across goroutines; a batch driver runs one Engine (and
// therefore one Ledger) per worker.
type Engine struct {
	cfg     sim.Config
	monitor *risk.Monitor
	jrnl    journal.Journal

	ledger *sim.Ledger
	exec   *sim.Executor
	equity []EquityPoint
}

type Option func(*Engine)

// WithJournal mirrors every fill and equity sample into j. The engine does
// not own the journal; closing it is the caller's job.
func WithJournal(j journal.Journal) Option {
	return func(e *Engine) { e.jrnl = j }
}

func New(cfg sim.Config, opts ...Option) *Engine {
	e := &Engine{
		cfg:     cfg,
		monitor: risk.NewMonitor(cfg.StopLoss, cfg.TakeProfit),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run executes the backtest over bars with signals from source.
//
// Signals are matched to bars by exact timestamp; a signal with no matching
// bar is skipped without side effects, since generators may emit signals
// for timestamps outside the supplied series. After the last signal every
// remaining position is force-closed at the final bar's close.
//
// A run over zero bars or zero signals returns a well-formed zero-activity
// Result. Cancellation is checked between bars only; each bar's work is
// bounded, so no finer granularity is needed.
func (e *Engine) Run(ctx context.Context, bars []market.Bar, source market.Source) (*Result, error) {
	e.reset()

	start, end := market.Span(bars)
	if len(bars) == 0 {
		return e.result(start, end), nil
	}

	signals, err := source(bars)
	if err != nil {
		return nil, fmt.Errorf("signal source: %w", err)
	}
	market.SortSignals(signals)

	log.WithFields(log.Fields{
		"bars":    len(bars),
		"signals": len(signals),
	}).Info("backtest started")

	idx := market.Index(bars)

	for _, sig := range signals {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		bar, ok := idx[sig.Time.UnixMilli()]
		if !ok {
			log.WithFields(log.Fields{
				"time":   sig.Time,
				"symbol": sig.Symbol,
			}).Debug("signal skipped: no bar at timestamp")
			continue
		}

		// Mark to the bar's close before acting so stop/take checks and
		// equity sampling use the latest price.
		e.ledger.MarkToMarket(sig.Symbol, bar.Close, bar.Time)

		switch sig.Type {
		case market.Buy:
			if tr, filled := e.exec.Buy(sig); filled {
				e.journalTrade(tr)
			}
		case market.Sell:
			if tr, filled := e.exec.Sell(sig); filled {
				e.journalTrade(tr)
			}
		case market.Hold:
			// No execution; the position still gets marked and risk-checked.
		}

		// Risk exits run after ordinary execution, so a signal-driven exit
		// on the same bar pre-empts them: the position is already gone.
		e.applyRiskExits(bar.Time)

		e.recordEquity(bar.Time)
	}

	e.liquidate(bars[len(bars)-1])

	res := e.result(start, end)

	log.WithFields(log.Fields{
		"trades":        len(res.Trades),
		"final_capital": res.FinalCapital,
	}).Info("backtest finished")

	return res, nil
}

func (e *Engine) reset() {
	e.ledger = sim.NewLedger(e.cfg.InitialCapital)
	e.exec = sim.NewExecutor(e.cfg, e.ledger)
	e.equity = nil
}

// applyRiskExits sells out every position breaching a stop-loss or
// take-profit threshold, as an immediate market order at the marked price.
func (e *Engine) applyRiskExits(now time.Time) {
	if !e.monitor.Enabled() {
		return
	}

	for _, exit := range e.monitor.Check(e.ledger.Positions(), now) {
		tr, filled := e.exec.Sell(market.Signal{
			Time:     exit.Time,
			Symbol:   exit.Symbol,
			Type:     market.Sell,
			Price:    exit.Price,
			Quantity: exit.Quantity,
		})
		if !filled {
			continue
		}

		log.WithFields(log.Fields{
			"symbol": exit.Symbol,
			"reason": exit.Reason,
			"price":  exit.Price,
		}).Info("forced exit")

		e.journalTrade(tr)
	}
}

// liquidate force-closes all remaining positions at the final bar's close
// and refreshes the last equity sample so the curve ends at final capital.
func (e *Engine) liquidate(last market.Bar) {
	positions := e.ledger.Positions()
	if len(positions) == 0 {
		return
	}

	for _, p := range positions {
		e.ledger.MarkToMarket(p.Symbol, last.Close, last.Time)
		tr, filled := e.exec.Sell(market.Signal{
			Time:     last.Time,
			Symbol:   p.Symbol,
			Type:     market.Sell,
			Price:    last.Close,
			Quantity: p.Quantity,
		})
		if filled {
			e.journalTrade(tr)
		}
	}

	e.recordEquity(last.Time)
}

// recordEquity samples cash plus marked position value. One point per bar:
// a repeated timestamp (several signals on one bar, or post-exit refresh)
// updates the existing point instead of appending, keeping the curve
// strictly increasing in time.
func (e *Engine) recordEquity(now time.Time) {
	eq := EquityPoint{Time: now, Value: e.ledger.Equity()}

	if n := len(e.equity); n > 0 && e.equity[n-1].Time.Equal(now) {
		e.equity[n-1] = eq
	} else {
		e.equity = append(e.equity, eq)
	}

	if e.jrnl != nil {
		_ = e.jrnl.RecordEquity(journal.EquitySnapshot{
			Time:        now,
			Cash:        e.ledger.Cash(),
			MarketValue: e.ledger.MarketValue(),
			Equity:      eq.Value,
		})
	}
}

func (e *Engine) journalTrade(t sim.Trade) {
	if e.jrnl == nil {
		return
	}
	_ = e.jrnl.RecordTrade(journal.TradeRecord{
		TradeID:     t.ID,
		Symbol:      t.Symbol,
		Side:        string(t.Side),
		Quantity:    t.Quantity,
		Price:       t.Price,
		Value:       t.Value,
		Commission:  t.Commission,
		RealizedPnL: t.RealizedPnL,
		Time:        t.Time,
	})
}

func (e *Engine) result(start, end time.Time) *Result {
	final := e.cfg.InitialCapital
	if n := len(e.equity); n > 0 {
		final = e.equity[n-1].Value
	}

	return &Result{
		Start:          start,
		End:            end,
		InitialCapital: e.cfg.InitialCapital,
		FinalCapital:   final,
		Trades:         e.ledger.Trades(),
		Orders:         e.exec.Orders(),
		Equity:         e.equity,
		Drawdown:       DrawdownSeries(e.equity),
		Positions:      e.ledger.Positions(),
		Summary:        Summarize(e.equity, e.ledger.Trades(), e.cfg.InitialCapital, start, end),
	}
}
