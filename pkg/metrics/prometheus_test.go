package metrics

import (
	"testing"

	"FinScore/internal/domain/models"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecorder(t *testing.T) {
	r := New(prometheus.NewRegistry())

	r.RecordScore("AAPL", 0.55, models.BandNeutralLeaningBullish)
	r.RecordScore("AAPL", 0.65, models.BandBullish)
	r.RecordRegime(models.RegimeVolatileBear)
	r.RecordFault("aggregation")
	r.RecordFault("aggregation")
	r.RecordError("validation")

	assert.Equal(t, 1.0, testutil.ToFloat64(r.scoresTotal.WithLabelValues("bullish")))
	assert.Equal(t, 0.65, testutil.ToFloat64(r.lastScore.WithLabelValues("AAPL")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.regimes.WithLabelValues("VOLATILE_BEAR")))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.faults.WithLabelValues("aggregation")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.errorsTotal.WithLabelValues("validation")))
}
