package usecases_test

import (
	"context"
	"errors"
	"testing"

	"github.com/transitline/journeyd/internal/core/csa"
	"github.com/transitline/journeyd/internal/core/domain"
	"github.com/transitline/journeyd/internal/core/usecases"
)

// --- mockPredictor ---

type mockPredictor struct {
	predictFn func(ctx context.Context, stops []domain.StopID, times []domain.SecondsSinceMidnight) ([]float64, error)
}

func (m *mockPredictor) Predict(ctx context.Context, stops []domain.StopID, times []domain.SecondsSinceMidnight) ([]float64, error) {
	if m.predictFn != nil {
		return m.predictFn(ctx, stops, times)
	}
	out := make([]float64, len(stops))
	return out, nil
}

// --- mockPublisher ---

type mockPublisher struct {
	computedCalls int
	failureCalls  int
}

func (m *mockPublisher) PublishJourneyComputed(ctx context.Context, origin, destination domain.StopID, journeys []domain.Journey) error {
	m.computedCalls++
	return nil
}

func (m *mockPublisher) PublishPredictorFailure(ctx context.Context, origin, destination domain.StopID, reason string) error {
	m.failureCalls++
	return nil
}

func buildTestStore(t *testing.T) *csa.Store {
	t.Helper()
	stops := []domain.StopID{"A", "B", "C", "D"}
	connections := []domain.Connection{
		{ConnectionID: "1", TripID: "T1", DepStop: "A", ArrStop: "B", DepTime: 28800, ArrTime: 29400},
		{ConnectionID: "2", TripID: "T1", DepStop: "B", ArrStop: "C", DepTime: 29400, ArrTime: 30000},
		{ConnectionID: "3", TripID: "T2", DepStop: "A", ArrStop: "C", DepTime: 29100, ArrTime: 30300},
		{ConnectionID: "4", TripID: "T3", DepStop: "A", ArrStop: "D", DepTime: 28500, ArrTime: 31200},
	}
	footpaths := []domain.Footpath{{StopA: "C", StopB: "D", Duration: 60}}
	store, err := csa.NewStore(connections, footpaths, stops)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return store
}

func TestJourneyService_FindJourneys_ZeroDelayAllConfident(t *testing.T) {
	store := buildTestStore(t)
	predictor := &mockPredictor{}
	publisher := &mockPublisher{}
	svc := usecases.NewJourneyService(store, predictor, publisher)

	ranked, err := svc.FindJourneys(context.Background(), "A", "D", 31200, 5, 0.7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ranked) == 0 {
		t.Fatalf("expected at least one journey")
	}
	for _, r := range ranked {
		if r.Confidence != 1 {
			t.Errorf("expected confidence 1 under zero-delay predictor, got %v", r.Confidence)
		}
	}
	if publisher.computedCalls != 1 {
		t.Errorf("expected PublishJourneyComputed to be called once, got %d", publisher.computedCalls)
	}
}

func TestJourneyService_FindJourneys_UnknownStop(t *testing.T) {
	store := buildTestStore(t)
	svc := usecases.NewJourneyService(store, &mockPredictor{}, nil)

	_, err := svc.FindJourneys(context.Background(), "Z", "D", 31200, 5, 0.7)
	var unknownStop *csa.UnknownStopError
	if !errors.As(err, &unknownStop) {
		t.Fatalf("expected UnknownStopError, got %v", err)
	}
}

func TestJourneyService_FindJourneys_InvalidTime(t *testing.T) {
	store := buildTestStore(t)
	svc := usecases.NewJourneyService(store, &mockPredictor{}, nil)

	_, err := svc.FindJourneys(context.Background(), "A", "D", 86400, 5, 0.7)
	var invalidTime *csa.InvalidTimeError
	if !errors.As(err, &invalidTime) {
		t.Fatalf("expected InvalidTimeError, got %v", err)
	}
}

func TestJourneyService_FindJourneys_PredictorFailureDropsJourneyNotQuery(t *testing.T) {
	store := buildTestStore(t)
	predictor := &mockPredictor{
		predictFn: func(ctx context.Context, stops []domain.StopID, times []domain.SecondsSinceMidnight) ([]float64, error) {
			return nil, errors.New("model unavailable")
		},
	}
	publisher := &mockPublisher{}
	svc := usecases.NewJourneyService(store, predictor, publisher)

	ranked, err := svc.FindJourneys(context.Background(), "A", "D", 31200, 5, 0.7)
	if err != nil {
		t.Fatalf("predictor failures must not be query-fatal, got error: %v", err)
	}
	if len(ranked) != 0 {
		t.Fatalf("expected all journeys dropped when the predictor fails, got %d", len(ranked))
	}
	if publisher.failureCalls == 0 {
		t.Errorf("expected PublishPredictorFailure to be called")
	}
}

func TestJourneyService_FindJourneys_ThresholdFiltersLowConfidence(t *testing.T) {
	store := buildTestStore(t)
	predictor := &mockPredictor{
		predictFn: func(ctx context.Context, stops []domain.StopID, times []domain.SecondsSinceMidnight) ([]float64, error) {
			out := make([]float64, len(stops))
			for i := range out {
				out[i] = 3600 // a huge predicted delay relative to any slack here
			}
			return out, nil
		},
	}
	svc := usecases.NewJourneyService(store, predictor, nil)

	ranked, err := svc.FindJourneys(context.Background(), "A", "D", 31200, 5, 0.9)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, r := range ranked {
		if r.Confidence < 0.9 {
			t.Errorf("journey with confidence %v should have been filtered by threshold 0.9", r.Confidence)
		}
	}
}

func TestJourneyService_FindJourneys_OriginEqualsDestination(t *testing.T) {
	store := buildTestStore(t)
	svc := usecases.NewJourneyService(store, &mockPredictor{}, nil)

	ranked, err := svc.FindJourneys(context.Background(), "A", "A", 50000, 5, 0.7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ranked) != 1 {
		t.Fatalf("expected exactly one sentinel journey, got %d", len(ranked))
	}
	if len(ranked[0].Legs) != 0 {
		t.Errorf("expected zero real legs for origin==destination, got %+v", ranked[0].Legs)
	}
	if ranked[0].Confidence != 1 {
		t.Errorf("expected confidence 1, got %v", ranked[0].Confidence)
	}
}
