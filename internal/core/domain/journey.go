package domain

import "fmt"

// Leg is one contiguous same-transport portion of a journey, collapsed from
// the connection-by-connection chain the scan produces while a trip is
// ongoing. Invariant: ArrivalTime >= StartTime; consecutive legs satisfy
// legs[i+1].StartTime >= legs[i].ArrivalTime.
type Leg struct {
	Transport   Transport            `json:"transport"`
	StartStop   StopID               `json:"start_stop"`
	StartTime   SecondsSinceMidnight `json:"start_time"`
	ArrivalStop StopID               `json:"arrival_stop"`
	ArrivalTime SecondsSinceMidnight `json:"arrival_time"`
}

// Journey is the ordered sequence of legs returned for a query, followed by
// a terminal sentinel leg (Transport == NoTransport, StartStop ==
// destination) marking the end of the extraction walk. Consumers outside
// the core strip the sentinel before rendering.
type Journey struct {
	Legs       []Leg   `json:"legs"`
	Confidence float64 `json:"confidence"`
}

// RealLegs returns the journey's legs with the terminal sentinel stripped.
func (j Journey) RealLegs() []Leg {
	if len(j.Legs) == 0 {
		return nil
	}
	last := j.Legs[len(j.Legs)-1]
	if last.Transport == NoTransport {
		return j.Legs[:len(j.Legs)-1]
	}
	return j.Legs
}

// FinalArrival returns the arrival time of the last real (non-sentinel) leg,
// the value the K-enumerator tightens its deadline against.
func (j Journey) FinalArrival() (SecondsSinceMidnight, bool) {
	legs := j.RealLegs()
	if len(legs) == 0 {
		return 0, false
	}
	return legs[len(legs)-1].ArrivalTime, true
}

// String renders one leg the way print_journey_human_readable does: a
// ride/walk verb, the two stop ids, and the clock-time span. Unlike the
// original, stop names aren't available in the core, so legs print by id.
func (l Leg) String() string {
	verb := "ride"
	if l.Transport == Walking {
		verb = "walk"
	}
	return fmt.Sprintf("%s %s -> %s (%s to %s)", verb, l.StartStop, l.ArrivalStop, clockString(l.StartTime), clockString(l.ArrivalTime))
}

// String renders a journey's real legs as one line per leg, operator-facing
// output for verbose logging — never the wire format (that's the HTTP/
// GraphQL DTOs).
func (j Journey) String() string {
	legs := j.RealLegs()
	if len(legs) == 0 {
		return "(no transit, origin == destination)"
	}
	s := ""
	for i, l := range legs {
		if i > 0 {
			s += "; "
		}
		s += l.String()
	}
	return s
}

func clockString(s SecondsSinceMidnight) string {
	h := s / 3600
	m := (s % 3600) / 60
	sec := s % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, sec)
}
