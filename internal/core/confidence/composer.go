// Package confidence turns per-transfer delay predictions into an
// end-to-end journey success probability, modeling each vehicle's arrival
// delay as exponentially distributed and composing transfer successes as
// independent events.
package confidence

import (
	"math"

	"github.com/transitline/journeyd/internal/core/domain"
)

// TransferSuccess is the CDF of Exponential(scale=delaySeconds) evaluated at
// slackSeconds: the probability a transfer with slackSeconds of scheduled
// margin survives a predicted mean delay of delaySeconds.
//
//	P = 1                     if delaySeconds <= 0
//	P = 1 - exp(-slack/delay) if delaySeconds > 0 and slackSeconds > 0
//	P = 0                     if delaySeconds > 0 and slackSeconds <= 0
func TransferSuccess(delaySeconds float64, slackSeconds int) float64 {
	if delaySeconds <= 0 {
		return 1
	}
	if slackSeconds <= 0 {
		return 0
	}
	return 1 - math.Exp(-float64(slackSeconds)/delaySeconds)
}

// ForwardDistance is the modular "forward distance" on a 24-hour clock:
// diff(a,b) = a-b if a>=b, else a-b+86400. Used so slack computations keep
// working across midnight.
func ForwardDistance(a, b domain.SecondsSinceMidnight) int {
	d := a - b
	if d < 0 {
		d += domain.SecondsInDay
	}
	return d
}

// Compose computes the end-to-end confidence of a journey given the
// predicted delay (seconds, non-negative) at the arrival stop of each
// non-sentinel leg, one prediction per leg in delays. journeyDeadline is the
// caller's requested arrival time, used for the final on-time factor.
//
// Transfers are assumed independent: confidence is the product of
// per-transfer TransferSuccess values, plus a final factor comparing the
// last vehicle leg's arrival to journeyDeadline.
func Compose(legs []domain.Leg, delays []float64, journeyDeadline domain.SecondsSinceMidnight) float64 {
	confidence := 1.0
	walking := 0

	var lastVehicleArrival domain.SecondsSinceMidnight
	var lastVehicleDelay float64
	sawVehicle := false

	for i, leg := range legs {
		delay := 0.0
		if i < len(delays) {
			delay = delays[i]
		}

		if leg.Transport == domain.Walking {
			walking += ForwardDistance(leg.ArrivalTime, leg.StartTime)
			continue
		}

		if sawVehicle {
			slack := ForwardDistance(leg.StartTime, lastVehicleArrival) - walking
			confidence *= TransferSuccess(lastVehicleDelay, slack)
		}
		lastVehicleArrival = leg.ArrivalTime
		lastVehicleDelay = delay
		sawVehicle = true
		walking = 0
	}

	if sawVehicle {
		slack := ForwardDistance(journeyDeadline, lastVehicleArrival) - walking
		confidence *= TransferSuccess(lastVehicleDelay, slack)
	}

	return confidence
}
