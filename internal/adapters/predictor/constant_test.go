package predictor_test

import (
	"context"
	"testing"

	"github.com/transitline/journeyd/internal/adapters/predictor"
	"github.com/transitline/journeyd/internal/core/domain"
)

func TestConstant_PredictsSameDelayForEveryStop(t *testing.T) {
	c := predictor.Constant{DelaySeconds: 45}
	stops := []domain.StopID{"A", "B", "C"}
	times := []domain.SecondsSinceMidnight{100, 200, 300}

	delays, err := c.Predict(context.Background(), stops, times)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(delays) != len(stops) {
		t.Fatalf("expected %d delays, got %d", len(stops), len(delays))
	}
	for i, d := range delays {
		if d != 45 {
			t.Errorf("delay[%d] = %v, want 45", i, d)
		}
	}
}

func TestConstant_EmptyBatch(t *testing.T) {
	c := predictor.Constant{DelaySeconds: 10}
	delays, err := c.Predict(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(delays) != 0 {
		t.Errorf("expected no delays for an empty batch, got %v", delays)
	}
}
