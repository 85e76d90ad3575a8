// Package usecases wires the CSA engine (internal/core/csa), the confidence
// composer (internal/core/confidence) and the delay-predictor capability
// (internal/core/ports) into the single query the service exposes:
// find_journeys.
package usecases

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/transitline/journeyd/internal/core/confidence"
	"github.com/transitline/journeyd/internal/core/csa"
	"github.com/transitline/journeyd/internal/core/domain"
	"github.com/transitline/journeyd/internal/core/ports"
	"github.com/transitline/journeyd/internal/pkg/metrics"
)

const (
	// DefaultK is the number of alternative journeys the orchestrator asks
	// the enumerator for when the caller doesn't specify one.
	DefaultK = 5
	// DefaultThreshold is the confidence below which a journey is dropped.
	DefaultThreshold = 0.7
)

// JourneyService is the Query Orchestrator: it wires the reverse scan, the
// extractor, the K-alternatives loop and the confidence composer, filters
// by threshold, and publishes the outcome.
type JourneyService struct {
	store     *csa.Store
	predictor ports.DelayPredictor
	publisher ports.EventPublisher // optional, nil-safe
	// Verbose logs each scored journey's human-readable leg sequence at
	// debug level, mirroring the original source's print_journey_human_readable.
	// Set from the --verbose CLI flag.
	Verbose bool
}

// NewJourneyService builds an orchestrator over a loaded Store. publisher
// may be nil; a nil publisher simply skips event emission.
func NewJourneyService(store *csa.Store, predictor ports.DelayPredictor, publisher ports.EventPublisher) *JourneyService {
	return &JourneyService{store: store, predictor: predictor, publisher: publisher}
}

// RankedJourney is a journey annotated with the confidence score the
// orchestrator computed for it.
type RankedJourney struct {
	Legs       []domain.Leg
	Confidence float64
}

// FindJourneys returns up to k distinct journeys from origin to destination
// arriving no later than arrivalSeconds, each annotated with its confidence
// and kept in the order the enumerator produced them, restricted to those at
// or above threshold. k<=0 and threshold<=0 fall back to
// DefaultK/DefaultThreshold.
func (s *JourneyService) FindJourneys(ctx context.Context, origin, destination domain.StopID, arrivalSeconds domain.SecondsSinceMidnight, k int, threshold float64) ([]RankedJourney, error) {
	start := time.Now()
	defer func() { metrics.QueryDuration.Observe(time.Since(start).Seconds()) }()

	if arrivalSeconds < 0 || arrivalSeconds >= domain.SecondsInDay {
		metrics.QueriesTotal.WithLabelValues("invalid_time").Inc()
		return nil, &csa.InvalidTimeError{Seconds: arrivalSeconds}
	}
	if !s.store.HasStop(origin) {
		metrics.QueriesTotal.WithLabelValues("unknown_stop").Inc()
		return nil, &csa.UnknownStopError{StopID: string(origin)}
	}
	if !s.store.HasStop(destination) {
		metrics.QueriesTotal.WithLabelValues("unknown_stop").Inc()
		return nil, &csa.UnknownStopError{StopID: string(destination)}
	}
	if k <= 0 {
		k = DefaultK
	}
	if threshold <= 0 {
		threshold = DefaultThreshold
	}

	journeys := csa.Enumerate(ctx, s.store, origin, destination, arrivalSeconds, k)

	var ranked []RankedJourney
	for _, j := range journeys {
		legs := j.RealLegs()

		stops := make([]domain.StopID, len(legs))
		times := make([]domain.SecondsSinceMidnight, len(legs))
		for i, leg := range legs {
			stops[i] = leg.ArrivalStop
			times[i] = leg.ArrivalTime
		}

		predictStart := time.Now()
		delays, err := s.predictor.Predict(ctx, stops, times)
		metrics.PredictorLatency.Observe(time.Since(predictStart).Seconds())
		if err != nil {
			slog.WarnContext(ctx, "delay predictor failed, dropping journey",
				"origin", origin, "destination", destination, "error", err)
			metrics.PredictorFailures.WithLabelValues("error").Inc()
			if s.publisher != nil {
				_ = s.publisher.PublishPredictorFailure(ctx, origin, destination, err.Error())
			}
			continue
		}
		if len(delays) != len(legs) {
			err := fmt.Errorf("predictor returned %d delays for %d legs", len(delays), len(legs))
			slog.WarnContext(ctx, "predictor batch length mismatch, dropping journey", "error", err)
			metrics.PredictorFailures.WithLabelValues("length_mismatch").Inc()
			if s.publisher != nil {
				_ = s.publisher.PublishPredictorFailure(ctx, origin, destination, err.Error())
			}
			continue
		}

		c := confidence.Compose(legs, delays, arrivalSeconds)
		slog.DebugContext(ctx, "journey scored", "confidence", c, "legs", len(legs))
		if s.Verbose {
			slog.DebugContext(ctx, "journey detail", "journey", domain.Journey{Legs: legs}.String(), "confidence", c)
		}

		if c < threshold {
			metrics.JourneysDroppedByThreshold.Inc()
			continue
		}
		ranked = append(ranked, RankedJourney{Legs: legs, Confidence: c})
	}

	metrics.JourneysReturned.Observe(float64(len(ranked)))

	if len(ranked) > 0 {
		metrics.QueriesTotal.WithLabelValues("ok").Inc()
	} else {
		metrics.QueriesTotal.WithLabelValues("no_journey").Inc()
	}

	if s.publisher != nil && len(ranked) > 0 {
		accepted := make([]domain.Journey, len(ranked))
		for i, r := range ranked {
			accepted[i] = domain.Journey{Legs: r.Legs, Confidence: r.Confidence}
		}
		_ = s.publisher.PublishJourneyComputed(ctx, origin, destination, accepted)
	}

	return ranked, nil
}
