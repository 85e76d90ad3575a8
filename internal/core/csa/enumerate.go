package csa

import (
	"context"

	"github.com/transitline/journeyd/internal/core/domain"
)

// Enumerate produces up to k distinct journeys by repeatedly tightening the
// deadline: each accepted journey's final (non-sentinel) arrival becomes the
// new deadline minus one second, so the next scan is forced to find a
// strictly earlier-arriving alternative. It stops when k journeys have been
// collected, when no feasible journey remains under the tightened deadline,
// or when ctx is cancelled between iterations — the only cancellation point
// the core needs, since neither Scan nor Extract ever suspends.
func Enumerate(ctx context.Context, store *Store, origin, destination domain.StopID, deadline domain.SecondsSinceMidnight, k int) []domain.Journey {
	var out []domain.Journey

	for len(out) < k {
		select {
		case <-ctx.Done():
			return out
		default:
		}

		result := Scan(store, origin, destination, deadline)
		legs, ok := Extract(result.S, origin, destination)
		if !ok {
			break
		}

		out = append(out, domain.Journey{Legs: legs})

		j := domain.Journey{Legs: legs}
		finalArrival, hasVehicleLeg := j.FinalArrival()
		if !hasVehicleLeg {
			// origin == destination: a single sentinel journey, nothing
			// left to tighten against.
			break
		}
		deadline = finalArrival - 1
	}

	return out
}
