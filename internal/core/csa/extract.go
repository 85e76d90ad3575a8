package csa

import "github.com/transitline/journeyd/internal/core/domain"

// Extract walks S from origin to destination, collapsing consecutive
// same-trip (or same-walk) stops into a single Leg, and returns the decoded
// itinerary terminated by a sentinel leg. Returns (nil, false) if origin has
// no feasible departure under S — distinct from a journey with zero real
// legs, which only happens when origin == destination.
func Extract(S map[domain.StopID]StopState, origin, destination domain.StopID) ([]domain.Leg, bool) {
	start, ok := S[origin]
	if !ok || start.Transport == domain.NoTransport && origin != destination {
		return nil, false
	}

	var legs []domain.Leg
	mode := domain.NoTransport
	cur := start
	var prev StopState

	for cur.Transport != domain.NoTransport {
		if cur.Transport != mode {
			if cur.StartStop != origin {
				legs[len(legs)-1].ArrivalTime = prev.ArrivalTime
				legs[len(legs)-1].ArrivalStop = prev.ArrivalStop
			}
			legs = append(legs, domain.Leg{
				Transport:   cur.Transport,
				StartStop:   cur.StartStop,
				StartTime:   cur.StartTime,
				ArrivalStop: cur.ArrivalStop,
				ArrivalTime: cur.ArrivalTime,
			})
			mode = cur.Transport
		}
		prev = cur
		cur = S[cur.ArrivalStop]
	}

	if cur.Transport != mode {
		if len(legs) > 0 {
			legs[len(legs)-1].ArrivalTime = prev.ArrivalTime
			legs[len(legs)-1].ArrivalStop = prev.ArrivalStop
		}
	}
	// Terminal sentinel: marks the end of the walk at destination.
	legs = append(legs, domain.Leg{
		Transport: domain.NoTransport,
		StartStop: cur.StartStop,
		StartTime: cur.StartTime,
	})

	return legs, true
}
