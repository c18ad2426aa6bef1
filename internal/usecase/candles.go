package usecase

import (
	"context"
	"fmt"
	"time"

	"FinScore/internal/domain/models"
	domrepo "FinScore/internal/domain/repository"
)

// CandlesUseCase reads stored daily candles for a date range.
type CandlesUseCase struct {
	store domrepo.PriceStore
}

func NewCandlesUseCase(store domrepo.PriceStore) *CandlesUseCase {
	return &CandlesUseCase{store: store}
}

type GetCandlesParams struct {
	Symbol string
	From   time.Time
	To     time.Time
	Limit  int
}

type GetCandlesResult struct {
	Symbol  string          `json:"symbol"`
	From    time.Time       `json:"from"`
	To      time.Time       `json:"to"`
	Count   int             `json:"count"`
	Candles []models.Candle `json:"candles"`
}

func (uc *CandlesUseCase) GetCandles(ctx context.Context, p GetCandlesParams) (*GetCandlesResult, error) {
	if p.Symbol == "" {
		return nil, fmt.Errorf("symbol required")
	}
	if p.From.After(p.To) {
		return nil, fmt.Errorf("from must be <= to")
	}
	if p.Limit <= 0 {
		p.Limit = 5000
	}
	if p.Limit > 20000 {
		p.Limit = 20000
	}

	candles, err := uc.store.GetCandles(ctx, p.Symbol, p.From, p.To)
	if err != nil {
		return nil, fmt.Errorf("get candles: %w", err)
	}
	// keep the most recent bars
	if len(candles) > p.Limit {
		candles = candles[len(candles)-p.Limit:]
	}

	return &GetCandlesResult{
		Symbol:  p.Symbol,
		From:    p.From,
		To:      p.To,
		Count:   len(candles),
		Candles: candles,
	}, nil
}
