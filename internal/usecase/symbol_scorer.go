package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"FinScore/internal/domain/models"
	domrepo "FinScore/internal/domain/repository"
)

// ErrNoCandles is returned when the price store has nothing for a symbol.
var ErrNoCandles = errors.New("no candles for symbol")

// SymbolScorer scores a symbol from its stored price history alone.
type SymbolScorer struct {
	prices  domrepo.PriceStore
	engine  *Engine
	timeout time.Duration
}

func NewSymbolScorer(prices domrepo.PriceStore, engine *Engine) *SymbolScorer {
	return &SymbolScorer{prices: prices, engine: engine, timeout: 10 * time.Second}
}

type ScoreSymbolParams struct {
	Symbol string
	N      int
	AsOf   time.Time
}

func (uc *SymbolScorer) Score(ctx context.Context, p ScoreSymbolParams) (*models.ScoreReport, error) {
	if p.Symbol == "" {
		return nil, fmt.Errorf("symbol required")
	}
	if p.N <= 0 {
		p.N = 260
	}

	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	candles, err := uc.prices.GetLatestNCandles(ctx, p.Symbol, p.N, p.AsOf)
	if err != nil {
		return nil, fmt.Errorf("load candles: %w", err)
	}
	if len(candles) == 0 {
		return nil, fmt.Errorf("%s: %w", p.Symbol, ErrNoCandles)
	}

	rep := uc.engine.Score(models.ScoringInput{Symbol: p.Symbol, Candles: candles})
	return &rep, nil
}
