package domain

// Stop is a transit stop or station. The core touches only ID; Name and
// Location are carried opaquely for external renderers (name resolution and
// map rendering are both out of scope for this service, see repo docs).
type Stop struct {
	ID       StopID         `json:"id"`
	Name     string         `json:"name,omitempty"`
	Location GeoPoint       `json:"location"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// GeoPoint is a WGS84 coordinate, passed through untouched by the core.
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Connection is one atomic depart-to-arrive segment of one vehicle trip.
// Invariant: DepTime <= ArrTime.
type Connection struct {
	ConnectionID ConnectionID         `json:"connection_id"`
	TripID       TripID               `json:"trip_id"`
	DepStop      StopID               `json:"dep_stop"`
	ArrStop      StopID               `json:"arr_stop"`
	DepTime      SecondsSinceMidnight `json:"dep_time"`
	ArrTime      SecondsSinceMidnight `json:"arr_time"`
}

// Footpath is a directed walking edge. Footpaths are symmetric in intent
// but stored directed; the core only ever walks StopA -> StopB.
type Footpath struct {
	StopA    StopID `json:"stop_a"`
	StopB    StopID `json:"stop_b"`
	Duration int    `json:"duration_seconds"`
}
