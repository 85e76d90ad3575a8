package domain

// StopID identifies a stop. Stable across a single query; opaque to the
// core beyond identity.
type StopID string

// TripID identifies the vehicle run a Connection belongs to.
type TripID string

// ConnectionID identifies a single Connection row, used only to break ties
// when two connections share an arrival time.
type ConnectionID string

// Transport names the mode of a Leg: a TripID, or one of the two sentinels
// below. Kept as a plain string so it can hold either a TripID or a
// sentinel without a wrapper type.
type Transport string

const (
	// Walking marks a Leg or StopState entry reached by footpath.
	Walking Transport = "WALKING"
	// NoTransport marks the unset/terminal state: the initial StopState
	// value, and the sentinel leg closing a Journey.
	NoTransport Transport = ""
)

// SecondsSinceMidnight is the time unit used throughout the core. The
// timetable describes a single operating day; values are not wall-clock
// times and carry no timezone.
type SecondsSinceMidnight = int

// SecondsInDay is the modulus used by the midnight-crossover "forward
// distance" arithmetic in the confidence composer.
const SecondsInDay = 86400
