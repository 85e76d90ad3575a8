// Package predictor provides ports.DelayPredictor implementations: a fixed
// constant (dummy/test use, grounded on the original DelayPredictorDummy), a
// read-through Valkey cache wrapping any inner predictor, and an HTTP client
// for a learned scoring model.
package predictor

import (
	"context"

	"github.com/transitline/journeyd/internal/core/domain"
)

// Constant predicts the same delay for every (stop, time) pair. Grounded on
// the original source's DelayPredictorDummy: a trivial predictor used where
// no model is wired up yet.
type Constant struct {
	DelaySeconds float64
}

// Predict implements ports.DelayPredictor.
func (c Constant) Predict(_ context.Context, stops []domain.StopID, times []domain.SecondsSinceMidnight) ([]float64, error) {
	out := make([]float64, len(stops))
	for i := range out {
		out[i] = c.DelaySeconds
	}
	_ = times
	return out, nil
}
