package ports

import (
	"context"

	"github.com/transitline/journeyd/internal/core/domain"
)

// TimetableLoader builds the immutable csa.Store from whatever persisted
// form the timetable lives in (Postgres tables, flat files, ...). Loading
// happens once per process; the core never touches it again until the next
// explicit reload.
type TimetableLoader interface {
	Load(ctx context.Context) ([]domain.Connection, []domain.Footpath, []domain.Stop, error)
}

// EventPublisher publishes query-outcome events to a message broker, purely
// for observability/downstream consumers — the core never blocks on or
// reacts to publish failures.
type EventPublisher interface {
	PublishJourneyComputed(ctx context.Context, origin, destination domain.StopID, journeys []domain.Journey) error
	PublishPredictorFailure(ctx context.Context, origin, destination domain.StopID, reason string) error
}

// PredictorCache provides read-through caching of delay predictions,
// keyed by the caller (typically a hash of the (stop,time) batch in request
// order).
type PredictorCache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttlSeconds int) error
}
