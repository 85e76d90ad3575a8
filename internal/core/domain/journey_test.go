package domain_test

import (
	"strings"
	"testing"

	"github.com/transitline/journeyd/internal/core/domain"
)

func TestJourneyString_RendersEachRealLeg(t *testing.T) {
	j := domain.Journey{Legs: []domain.Leg{
		{Transport: "T1", StartStop: "A", StartTime: 28800, ArrivalStop: "C", ArrivalTime: 30000},
		{Transport: domain.Walking, StartStop: "C", StartTime: 30000, ArrivalStop: "D", ArrivalTime: 30060},
		{Transport: domain.NoTransport, StartStop: "D", StartTime: 30060, ArrivalStop: "D", ArrivalTime: 30060},
	}}

	got := j.String()
	if !strings.Contains(got, "ride A -> C (08:00:00 to 08:20:00)") {
		t.Errorf("missing ride leg in %q", got)
	}
	if !strings.Contains(got, "walk C -> D (08:20:00 to 08:21:00)") {
		t.Errorf("missing walk leg in %q", got)
	}
	if strings.Count(got, ";") != 1 {
		t.Errorf("expected exactly one separator between the two real legs, got %q", got)
	}
}

func TestJourneyString_OriginEqualsDestinationHasNoLegs(t *testing.T) {
	j := domain.Journey{Legs: []domain.Leg{
		{Transport: domain.NoTransport, StartStop: "A", StartTime: 50000, ArrivalStop: "A", ArrivalTime: 50000},
	}}

	got := j.String()
	if got != "(no transit, origin == destination)" {
		t.Errorf("unexpected string for a sentinel-only journey: %q", got)
	}
}
