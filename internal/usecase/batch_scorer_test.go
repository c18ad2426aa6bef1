package usecase

import (
	"context"
	"fmt"
	"testing"

	"FinScore/internal/domain/models"
	"FinScore/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatchScorerKeepsOrder(t *testing.T) {
	b := NewBatchScorer(newTestEngine(t, config.WeightModeAdaptive), 3)
	inputs := make([]models.ScoringInput, 12)
	for i := range inputs {
		inputs[i] = fullInput()
		inputs[i].Symbol = fmt.Sprintf("S%02d", i)
	}
	reps, err := b.ScoreAll(context.Background(), inputs)
	require.NoError(t, err)
	require.Len(t, reps, len(inputs))
	for i, r := range reps {
		assert.Equal(t, inputs[i].Symbol, r.Symbol)
	}
}

func TestBatchScorerCancelled(t *testing.T) {
	b := NewBatchScorer(newTestEngine(t, config.WeightModeStatic), 2)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := b.ScoreAll(ctx, []models.ScoringInput{fullInput(), fullInput()})
	require.ErrorIs(t, err, context.Canceled)
}

func TestBatchScorerRequests(t *testing.T) {
	b := NewBatchScorer(newTestEngine(t, config.WeightModeStatic), 0)
	reps, err := b.ScoreRequests(context.Background(), []models.ScoreRequest{{Symbol: "A"}, {Symbol: "B"}})
	require.NoError(t, err)
	require.Len(t, reps, 2)
	assert.Equal(t, "A", reps[0].Symbol)
	assert.Equal(t, "B", reps[1].Symbol)
}
