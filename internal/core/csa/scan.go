package csa

import (
	"time"

	"github.com/transitline/journeyd/internal/core/domain"
	"github.com/transitline/journeyd/internal/pkg/metrics"
)

// StopState is a per-stop record of the best known latest way to leave that
// stop: if you depart StartStop at StartTime via Transport, you arrive at
// ArrivalStop at ArrivalTime, and from there the destination is still
// reachable on time. The zero value (Transport == domain.NoTransport) marks
// a stop with no known feasible departure.
type StopState struct {
	Transport   domain.Transport
	StartStop   domain.StopID
	StartTime   domain.SecondsSinceMidnight
	ArrivalStop domain.StopID
	ArrivalTime domain.SecondsSinceMidnight
}

// ScanResult holds the per-stop latest-departure map S and per-trip
// reachability map T produced by a single reverse scan. Both are fresh,
// per-query state: never shared between queries, never mutated after Scan
// returns.
type ScanResult struct {
	S map[domain.StopID]StopState
	T map[domain.TripID]bool
}

// Scan runs the reverse-time connection scan described in the module's
// design notes: a single backward sweep of the connections sorted by
// arrival time, producing for every stop the latest feasible departure that
// still reaches destination by deadline.
func Scan(store *Store, origin, destination domain.StopID, deadline domain.SecondsSinceMidnight) ScanResult {
	start := time.Now()
	visited := 0
	defer func() {
		metrics.ScanDuration.Observe(time.Since(start).Seconds())
		metrics.ScanConnectionsVisited.Observe(float64(visited))
	}()

	S := make(map[domain.StopID]StopState, len(store.stops))
	for _, s := range store.Stops() {
		S[s] = StopState{Transport: domain.NoTransport, StartTime: 0}
	}

	T := make(map[domain.TripID]bool, len(store.trips))
	for _, trip := range store.Trips() {
		T[trip] = false
	}

	S[destination] = StopState{
		Transport: domain.NoTransport,
		StartStop: destination,
		StartTime: deadline,
	}

	if origin == destination {
		S[origin] = StopState{
			Transport:   domain.NoTransport,
			StartStop:   origin,
			StartTime:   deadline,
			ArrivalStop: destination,
			ArrivalTime: deadline,
		}
		return ScanResult{S: S, T: T}
	}

	// Seed S for every footpath leading directly to destination. The
	// source-of-truth here is the variable destination, not the literal
	// string some copies of the original Python compared against — see
	// open question (1) in the design notes.
	for _, fp := range store.footpathsFrom[destination] {
		S[fp.StopB] = StopState{
			Transport:   domain.Walking,
			StartStop:   fp.StopB,
			StartTime:   deadline - fp.Duration,
			ArrivalStop: destination,
			ArrivalTime: deadline,
		}
	}

	conns := store.ConnectionsByArrival()

	// c0 is the last connection, in arrival order, with ArrTime <= deadline.
	c0 := -1
	for i := len(conns) - 1; i >= 0; i-- {
		if conns[i].ArrTime <= deadline {
			c0 = i
			break
		}
	}
	if c0 == -1 {
		return ScanResult{S: S, T: T}
	}

	for i := c0; i >= 0; i-- {
		c := conns[i]
		visited++

		if S[origin].StartTime >= c.ArrTime {
			break
		}

		reachable := T[c.TripID] || S[c.ArrStop].StartTime >= c.ArrTime
		improves := S[c.DepStop].StartTime < c.DepTime
		if !reachable || !improves {
			continue
		}

		T[c.TripID] = true
		S[c.DepStop] = StopState{
			Transport:   domain.Transport(c.TripID),
			StartStop:   c.DepStop,
			StartTime:   c.DepTime,
			ArrivalStop: c.ArrStop,
			ArrivalTime: c.ArrTime,
		}

		// Footpath back-propagation: a walk from fp.StopB arriving at
		// c.DepStop in time to board c. ArrivalStop here must be c.DepStop
		// (the stop the vehicle departs from), not fp's own stop_id_a — see
		// open question (2) in the design notes.
		for _, fp := range store.footpathsFrom[c.DepStop] {
			if S[fp.StopB].StartTime < c.DepTime-fp.Duration {
				S[fp.StopB] = StopState{
					Transport:   domain.Walking,
					StartStop:   fp.StopB,
					StartTime:   c.DepTime - fp.Duration,
					ArrivalStop: c.DepStop,
					ArrivalTime: c.DepTime,
				}
			}
		}
	}

	return ScanResult{S: S, T: T}
}
