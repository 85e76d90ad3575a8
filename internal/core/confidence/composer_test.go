package confidence_test

import (
	"math"
	"testing"

	"github.com/transitline/journeyd/internal/core/confidence"
	"github.com/transitline/journeyd/internal/core/domain"
)

func TestTransferSuccess(t *testing.T) {
	cases := []struct {
		name  string
		delay float64
		slack int
		want  float64
	}{
		{"zero delay always succeeds", 0, -5, 1},
		{"negative delay always succeeds", -10, 100, 1},
		{"positive delay, non-positive slack fails", 60, 0, 0},
		{"positive delay, negative slack fails", 60, -1, 0},
		{"positive delay, positive slack partial", 60, 60, 1 - math.Exp(-1)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := confidence.TransferSuccess(tc.delay, tc.slack)
			if math.Abs(got-tc.want) > 1e-9 {
				t.Errorf("TransferSuccess(%v, %v) = %v, want %v", tc.delay, tc.slack, got, tc.want)
			}
		})
	}
}

func TestForwardDistance_WrapsAtMidnight(t *testing.T) {
	// Scenario 5: diff(300, 86340) = 300 - 86340 + 86400 = 360.
	got := confidence.ForwardDistance(300, 86340)
	if got != 360 {
		t.Errorf("ForwardDistance(300, 86340) = %d, want 360", got)
	}
}

func TestCompose_ZeroDelayAlwaysConfidenceOne(t *testing.T) {
	legs := []domain.Leg{
		{Transport: "T1", StartStop: "A", StartTime: 28800, ArrivalStop: "C", ArrivalTime: 30000},
		{Transport: domain.Walking, StartStop: "C", StartTime: 30000, ArrivalStop: "D", ArrivalTime: 30060},
	}
	delays := []float64{0, 0}

	got := confidence.Compose(legs, delays, 31200)
	if got != 1 {
		t.Errorf("expected confidence 1 with zero delays, got %v", got)
	}
}

func TestCompose_NegativeSlackClampsToZero(t *testing.T) {
	// Scenario 4: T1 arrives C at 30000 with predicted delay 60, journey
	// walks to D arriving 30060, evaluated against a deadline of 30000 —
	// the walking time entirely consumes any slack, so the final on-time
	// factor clamps to zero.
	legs := []domain.Leg{
		{Transport: "T1", StartStop: "A", StartTime: 28800, ArrivalStop: "C", ArrivalTime: 30000},
		{Transport: domain.Walking, StartStop: "C", StartTime: 30000, ArrivalStop: "D", ArrivalTime: 30060},
	}
	delays := []float64{60, 60}

	got := confidence.Compose(legs, delays, 30000)
	if got != 0 {
		t.Errorf("expected confidence 0 (negative slack), got %v", got)
	}
	if got > 0.7 {
		t.Errorf("confidence %v should fall below the default threshold 0.7", got)
	}
}

func TestCompose_MonotoneInSlack(t *testing.T) {
	legA := []domain.Leg{
		{Transport: "T1", StartStop: "A", StartTime: 28800, ArrivalStop: "B", ArrivalTime: 29000},
		{Transport: "T2", StartStop: "B", StartTime: 29100, ArrivalStop: "C", ArrivalTime: 29400},
	}
	legB := []domain.Leg{
		{Transport: "T1", StartStop: "A", StartTime: 28800, ArrivalStop: "B", ArrivalTime: 29000},
		{Transport: "T2", StartStop: "B", StartTime: 29300, ArrivalStop: "C", ArrivalTime: 29600},
	}
	delays := []float64{30, 30}

	lowSlack := confidence.Compose(legA, delays, 30000)
	highSlack := confidence.Compose(legB, delays, 30000)

	if highSlack < lowSlack {
		t.Errorf("increasing transfer slack should not decrease confidence: low=%v high=%v", lowSlack, highSlack)
	}
}

func TestCompose_SentinelOnlyJourneyIsConfidenceOne(t *testing.T) {
	got := confidence.Compose(nil, nil, 50000)
	if got != 1 {
		t.Errorf("expected confidence 1 for a journey with no vehicle legs, got %v", got)
	}
}
