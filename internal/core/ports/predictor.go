package ports

import (
	"context"

	"github.com/transitline/journeyd/internal/core/domain"
)

// DelayPredictor predicts mean arrival delay, in seconds, for a batch of
// (stop, time) pairs. Implementations may be trivial constants, table
// lookups, or learned models — the core treats the result as opaque
// non-negative floats. Batch semantics preserve input order; a
// length-mismatched result is a PredictorFailure.
type DelayPredictor interface {
	Predict(ctx context.Context, stops []domain.StopID, times []domain.SecondsSinceMidnight) ([]float64, error)
}
