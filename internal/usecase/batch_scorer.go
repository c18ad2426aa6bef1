package usecase

import (
	"context"
	"fmt"
	"time"

	"FinScore/internal/domain/models"

	"golang.org/x/sync/errgroup"
)

// BatchScorer fans independent scoring runs out over a bounded pool.
type BatchScorer struct {
	engine  *Engine
	workers int
	timeout time.Duration
}

func NewBatchScorer(engine *Engine, workers int) *BatchScorer {
	if workers < 1 {
		workers = 1
	}
	return &BatchScorer{engine: engine, workers: workers, timeout: 30 * time.Second}
}

// ScoreAll scores every input and returns the reports in input order.
// Cancellation stops scheduling new runs and returns the context error.
func (b *BatchScorer) ScoreAll(ctx context.Context, inputs []models.ScoringInput) ([]models.ScoreReport, error) {
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	out := make([]models.ScoreReport, len(inputs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.workers)
	for i := range inputs {
		if gctx.Err() != nil {
			break
		}
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out[i] = b.engine.Score(inputs[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("batch score: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("batch score: %w", err)
	}
	return out, nil
}

// ScoreRequests converts request payloads and scores them in order.
func (b *BatchScorer) ScoreRequests(ctx context.Context, reqs []models.ScoreRequest) ([]models.ScoreReport, error) {
	inputs := make([]models.ScoringInput, len(reqs))
	for i, r := range reqs {
		inputs[i] = b.engine.InputFromRequest(r)
	}
	return b.ScoreAll(ctx, inputs)
}
