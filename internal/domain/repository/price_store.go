package repository

import (
	"context"
	"time"

	"FinScore/internal/domain/models"
)

// PriceStore provides read-only access to daily candles.
type PriceStore interface {
	GetCandles(ctx context.Context, symbol string, from, to time.Time) ([]models.Candle, error)
	// GetLatestNCandles returns at most n candles dated on or before asOf,
	// ascending by date. A zero asOf means no upper bound.
	GetLatestNCandles(ctx context.Context, symbol string, n int, asOf time.Time) ([]models.Candle, error)
}
