package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"FinScore/internal/domain/models"
	domrepo "FinScore/internal/domain/repository"
	pkgch "FinScore/pkg/clickhouse"
	applogger "FinScore/pkg/logger"
)

// CHPriceStore implements PriceStore over a ClickHouse daily candle table.
type CHPriceStore struct {
	db    *sql.DB
	table string
	l     *applogger.Logger
}

func NewCHPriceStore(ch *pkgch.Client, database, table string) *CHPriceStore {
	return &CHPriceStore{db: ch.DB(), table: database + "." + table}
}

// SetLogger injects a structured logger.
func (s *CHPriceStore) SetLogger(l *applogger.Logger) { s.l = l }

func (s *CHPriceStore) GetCandles(ctx context.Context, symbol string, from, to time.Time) ([]models.Candle, error) {
	start := time.Now()
	const qtpl = `
        SELECT date, symbol, open, high, low, close, volume
        FROM %s FINAL
        WHERE symbol = ? AND date >= ? AND date <= ?
        ORDER BY date ASC
    `
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(qtpl, s.table), symbol, from, to)
	if err != nil {
		s.logError("get_candles query error", symbol, err)
		return nil, fmt.Errorf("get candles: %w", err)
	}
	defer rows.Close()

	out, err := scanCandles(rows, 256)
	if err != nil {
		s.logError("get_candles scan error", symbol, err)
		return nil, err
	}
	if s.l != nil {
		s.l.Info("clickhouse get_candles ok",
			applogger.String("table", s.table),
			applogger.String("symbol", symbol),
			applogger.Int("rows", len(out)),
			applogger.Duration("duration_ms", time.Since(start)),
		)
	}
	return out, nil
}

func (s *CHPriceStore) GetLatestNCandles(ctx context.Context, symbol string, n int, asOf time.Time) ([]models.Candle, error) {
	start := time.Now()
	where := "symbol = ?"
	args := []any{symbol}
	if !asOf.IsZero() {
		where += " AND date <= ?"
		args = append(args, asOf)
	}
	args = append(args, n)
	const qtpl = `
        SELECT date, symbol, open, high, low, close, volume
        FROM %s FINAL
        WHERE %s
        ORDER BY date DESC
        LIMIT ?
    `
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(qtpl, s.table, where), args...)
	if err != nil {
		s.logError("latest_candles query error", symbol, err)
		return nil, fmt.Errorf("get latest candles: %w", err)
	}
	defer rows.Close()

	tmp, err := scanCandles(rows, n)
	if err != nil {
		s.logError("latest_candles scan error", symbol, err)
		return nil, err
	}
	// reverse to ASC
	for i, j := 0, len(tmp)-1; i < j; i, j = i+1, j-1 {
		tmp[i], tmp[j] = tmp[j], tmp[i]
	}
	if s.l != nil {
		s.l.Info("clickhouse latest_candles ok",
			applogger.String("table", s.table),
			applogger.String("symbol", symbol),
			applogger.Int("limit", n),
			applogger.Int("rows", len(tmp)),
			applogger.Duration("duration_ms", time.Since(start)),
		)
	}
	return tmp, nil
}

// StoreCandles inserts candles in multi-row batches. Re-inserting a
// (symbol, date) pair replaces the earlier row on merge.
func (s *CHPriceStore) StoreCandles(ctx context.Context, candles []models.Candle) (int, error) {
	const chunkSize = 2000
	stored := 0
	for lo := 0; lo < len(candles); lo += chunkSize {
		hi := min(lo+chunkSize, len(candles))

		values := make([]string, 0, hi-lo)
		args := make([]any, 0, (hi-lo)*7)
		for _, c := range candles[lo:hi] {
			if c.Symbol == "" || c.Date.IsZero() {
				continue
			}
			values = append(values, "(?, ?, ?, ?, ?, ?, ?)")
			args = append(args, c.Date, c.Symbol, c.Open, c.High, c.Low, c.Close, c.Volume)
		}
		if len(values) == 0 {
			continue
		}
		q := fmt.Sprintf("INSERT INTO %s (date, symbol, open, high, low, close, volume) VALUES %s",
			s.table, strings.Join(values, ","))
		if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
			s.logError("store_candles insert error", "", err)
			return stored, fmt.Errorf("store candles: %w", err)
		}
		stored += len(values)
	}
	return stored, nil
}

func (s *CHPriceStore) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *CHPriceStore) logError(msg, symbol string, err error) {
	if s.l == nil {
		return
	}
	s.l.Error("clickhouse "+msg,
		applogger.String("table", s.table),
		applogger.String("symbol", symbol),
		applogger.Error(err),
	)
}

type rowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanCandles(rows rowScanner, capHint int) ([]models.Candle, error) {
	out := make([]models.Candle, 0, capHint)
	for rows.Next() {
		var c models.Candle
		if err := rows.Scan(&c.Date, &c.Symbol, &c.Open, &c.High, &c.Low, &c.Close, &c.Volume); err != nil {
			return nil, fmt.Errorf("scan candle: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return out, nil
}

var _ domrepo.PriceStore = (*CHPriceStore)(nil)
