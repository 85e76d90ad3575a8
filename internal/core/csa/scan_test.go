package csa_test

import (
	"testing"

	"github.com/transitline/journeyd/internal/core/csa"
	"github.com/transitline/journeyd/internal/core/domain"
)

// fixtureStops/connections/footpaths builds the four-stop network used
// throughout §8 of the design notes: A, B, C, D with a 60s footpath from
// C to D, and trips T1 (A->B->C), T2 (A->C direct) and T3 (A->D direct).
func fixtureStore(t *testing.T) *csa.Store {
	t.Helper()

	stops := []domain.StopID{"A", "B", "C", "D"}
	connections := []domain.Connection{
		{ConnectionID: "1", TripID: "T1", DepStop: "A", ArrStop: "B", DepTime: 28800, ArrTime: 29400},
		{ConnectionID: "2", TripID: "T1", DepStop: "B", ArrStop: "C", DepTime: 29400, ArrTime: 30000},
		{ConnectionID: "3", TripID: "T2", DepStop: "A", ArrStop: "C", DepTime: 29100, ArrTime: 30300},
		{ConnectionID: "4", TripID: "T3", DepStop: "A", ArrStop: "D", DepTime: 28500, ArrTime: 31200},
	}
	footpaths := []domain.Footpath{
		{StopA: "C", StopB: "D", Duration: 60},
	}

	store, err := csa.NewStore(connections, footpaths, stops)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return store
}

func TestScan_DirectTripReachesDeadline(t *testing.T) {
	store := fixtureStore(t)
	result := csa.Scan(store, "A", "D", 31200)

	legs, ok := csa.Extract(result.S, "A", "D")
	if !ok {
		t.Fatalf("expected a feasible journey")
	}
	real := domain.Journey{Legs: legs}.RealLegs()
	if len(real) != 1 {
		t.Fatalf("expected 1 leg (T3 direct), got %d: %+v", len(real), real)
	}
	if real[0].Transport != "T3" || real[0].ArrivalTime != 31200 {
		t.Errorf("expected T3 arriving 31200, got %+v", real[0])
	}
}

func TestScan_WalkingTransferJourney(t *testing.T) {
	store := fixtureStore(t)
	// Scenario 1, journey 2: tighten the deadline past T3's arrival so only
	// the T1-then-walk option remains feasible.
	result := csa.Scan(store, "A", "D", 31199)

	legs, ok := csa.Extract(result.S, "A", "D")
	if !ok {
		t.Fatalf("expected a feasible journey")
	}
	real := domain.Journey{Legs: legs}.RealLegs()
	if len(real) != 2 {
		t.Fatalf("expected 2 legs (T1, walk), got %d: %+v", len(real), real)
	}
	if real[0].Transport != "T1" || real[0].StartStop != "A" || real[0].ArrivalStop != "C" || real[0].ArrivalTime != 30000 {
		t.Errorf("unexpected first leg: %+v", real[0])
	}
	if real[1].Transport != domain.Walking || real[1].StartStop != "C" || real[1].ArrivalStop != "D" || real[1].ArrivalTime != 30060 {
		t.Errorf("unexpected second leg: %+v", real[1])
	}
}

func TestScan_NoFeasibleJourneyIsEmptyNotError(t *testing.T) {
	store := fixtureStore(t)
	// Scenario 2: deadline=30000 — T1-then-walk arrives 30060 > 30000.
	result := csa.Scan(store, "A", "D", 30000)
	_, ok := csa.Extract(result.S, "A", "D")
	if ok {
		t.Fatalf("expected no feasible journey at this deadline")
	}
}

func TestScan_OriginEqualsDestination(t *testing.T) {
	store := fixtureStore(t)
	// Scenario 3.
	result := csa.Scan(store, "A", "A", 50000)
	legs, ok := csa.Extract(result.S, "A", "A")
	if !ok {
		t.Fatalf("expected a sentinel-only journey")
	}
	j := domain.Journey{Legs: legs}
	if len(j.RealLegs()) != 0 {
		t.Fatalf("expected zero real legs, got %+v", j.RealLegs())
	}
	if len(legs) != 1 || legs[0].Transport != domain.NoTransport {
		t.Fatalf("expected a single sentinel leg, got %+v", legs)
	}
}

func TestScan_DeterministicAcrossLoadOrder(t *testing.T) {
	stops := []domain.StopID{"A", "B", "C", "D"}
	forward := []domain.Connection{
		{ConnectionID: "1", TripID: "T1", DepStop: "A", ArrStop: "B", DepTime: 28800, ArrTime: 29400},
		{ConnectionID: "2", TripID: "T1", DepStop: "B", ArrStop: "C", DepTime: 29400, ArrTime: 30000},
		{ConnectionID: "3", TripID: "T2", DepStop: "A", ArrStop: "C", DepTime: 29100, ArrTime: 30300},
		{ConnectionID: "4", TripID: "T3", DepStop: "A", ArrStop: "D", DepTime: 28500, ArrTime: 31200},
	}
	reversed := make([]domain.Connection, len(forward))
	for i, c := range forward {
		reversed[len(forward)-1-i] = c
	}
	footpaths := []domain.Footpath{{StopA: "C", StopB: "D", Duration: 60}}

	storeA, err := csa.NewStore(forward, footpaths, stops)
	if err != nil {
		t.Fatalf("NewStore(forward): %v", err)
	}
	storeB, err := csa.NewStore(reversed, footpaths, stops)
	if err != nil {
		t.Fatalf("NewStore(reversed): %v", err)
	}

	legsA, okA := csa.Extract(csa.Scan(storeA, "A", "D", 31199).S, "A", "D")
	legsB, okB := csa.Extract(csa.Scan(storeB, "A", "D", 31199).S, "A", "D")
	if okA != okB {
		t.Fatalf("feasibility differs between load orders")
	}
	if len(legsA) != len(legsB) {
		t.Fatalf("leg count differs between load orders: %d vs %d", len(legsA), len(legsB))
	}
	for i := range legsA {
		if legsA[i] != legsB[i] {
			t.Errorf("leg %d differs: %+v vs %+v", i, legsA[i], legsB[i])
		}
	}
}

func TestNewStore_RejectsInconsistentConnection(t *testing.T) {
	stops := []domain.StopID{"A", "B"}
	connections := []domain.Connection{
		{ConnectionID: "1", TripID: "T1", DepStop: "A", ArrStop: "B", DepTime: 100, ArrTime: 50},
	}
	_, err := csa.NewStore(connections, nil, stops)
	if err == nil {
		t.Fatalf("expected a TimetableInconsistencyError")
	}
	var tie *csa.TimetableInconsistencyError
	if !isTimetableInconsistency(err, &tie) {
		t.Errorf("expected TimetableInconsistencyError, got %T: %v", err, err)
	}
}

func isTimetableInconsistency(err error, target **csa.TimetableInconsistencyError) bool {
	if e, ok := err.(*csa.TimetableInconsistencyError); ok {
		*target = e
		return true
	}
	return false
}
