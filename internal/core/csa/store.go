// Package csa implements the reverse-time Connection Scan Algorithm: the
// latest-feasible-departure scan (Store + Scan), the journey extractor that
// decodes a human-readable itinerary from the scan's state, and the
// K-alternatives loop that enumerates distinct journeys by repeatedly
// tightening the arrival deadline.
package csa

import (
	"fmt"
	"sort"

	"github.com/transitline/journeyd/internal/core/domain"
)

// Store is an immutable, indexed view of a single day's connections,
// footpaths and stops. It is built once per load and is safe for
// concurrent, read-only use by any number of in-flight queries: Scan
// allocates fresh per-query working state and never mutates the Store.
type Store struct {
	connsByArrival []domain.Connection
	footpathsFrom  map[domain.StopID][]domain.Footpath
	stops          map[domain.StopID]struct{}
	trips          map[domain.TripID]struct{}
}

// NewStore indexes connections and footpaths for the scan. Connections are
// sorted ascending by ArrTime, ties broken by ConnectionID so that repeated
// loads of the same data (possibly in different row order) always scan in
// the same order — determinism requires this (spec §5).
//
// Returns TimetableInconsistencyError if any connection has DepTime >
// ArrTime or, when stopIDs is non-empty, references a stop outside stopIDs.
func NewStore(connections []domain.Connection, footpaths []domain.Footpath, stopIDs []domain.StopID) (*Store, error) {
	known := make(map[domain.StopID]struct{}, len(stopIDs))
	for _, s := range stopIDs {
		known[s] = struct{}{}
	}

	conns := make([]domain.Connection, len(connections))
	copy(conns, connections)

	for _, c := range conns {
		if c.DepTime > c.ArrTime {
			return nil, &TimetableInconsistencyError{
				ConnectionID: string(c.ConnectionID),
				Reason:       fmt.Sprintf("dep_time %d > arr_time %d", c.DepTime, c.ArrTime),
			}
		}
		if len(known) > 0 {
			if _, ok := known[c.DepStop]; !ok {
				return nil, &TimetableInconsistencyError{ConnectionID: string(c.ConnectionID), Reason: "unknown dep_stop " + string(c.DepStop)}
			}
			if _, ok := known[c.ArrStop]; !ok {
				return nil, &TimetableInconsistencyError{ConnectionID: string(c.ConnectionID), Reason: "unknown arr_stop " + string(c.ArrStop)}
			}
		}
	}

	sort.Slice(conns, func(i, j int) bool {
		if conns[i].ArrTime != conns[j].ArrTime {
			return conns[i].ArrTime < conns[j].ArrTime
		}
		return conns[i].ConnectionID < conns[j].ConnectionID
	})

	footpathsFrom := make(map[domain.StopID][]domain.Footpath)
	stops := make(map[domain.StopID]struct{}, len(known))
	for s := range known {
		stops[s] = struct{}{}
	}
	trips := make(map[domain.TripID]struct{})

	for _, c := range conns {
		stops[c.DepStop] = struct{}{}
		stops[c.ArrStop] = struct{}{}
		trips[c.TripID] = struct{}{}
	}
	for _, fp := range footpaths {
		stops[fp.StopA] = struct{}{}
		footpathsFrom[fp.StopA] = append(footpathsFrom[fp.StopA], fp)
	}
	// Deterministic adjacency iteration order, by StopB (spec §5).
	for s, list := range footpathsFrom {
		l := list
		sort.Slice(l, func(i, j int) bool { return l[i].StopB < l[j].StopB })
		footpathsFrom[s] = l
	}

	return &Store{
		connsByArrival: conns,
		footpathsFrom:  footpathsFrom,
		stops:          stops,
		trips:          trips,
	}, nil
}

// ConnectionsByArrival returns all connections sorted ascending by ArrTime,
// ties broken by ConnectionID.
func (s *Store) ConnectionsByArrival() []domain.Connection {
	return s.connsByArrival
}

// FootpathsFrom returns the footpaths leaving stop, in deterministic (by
// StopB) order. O(deg).
func (s *Store) FootpathsFrom(stop domain.StopID) []domain.Footpath {
	return s.footpathsFrom[stop]
}

// Stops returns the full stop universe: the union of DepStop/ArrStop over
// connections and StopA over footpaths, plus any stop passed to NewStore.
func (s *Store) Stops() []domain.StopID {
	out := make([]domain.StopID, 0, len(s.stops))
	for id := range s.stops {
		out = append(out, id)
	}
	return out
}

// HasStop reports whether id is part of the stop universe.
func (s *Store) HasStop(id domain.StopID) bool {
	_, ok := s.stops[id]
	return ok
}

// Trips returns the set of distinct trip ids.
func (s *Store) Trips() []domain.TripID {
	out := make([]domain.TripID, 0, len(s.trips))
	for id := range s.trips {
		out = append(out, id)
	}
	return out
}
