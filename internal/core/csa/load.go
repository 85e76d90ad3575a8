package csa

import "github.com/transitline/journeyd/internal/core/domain"

// BuildStore is a convenience wrapper around NewStore for callers that load
// stops as domain.Stop values (carrying name/location metadata) rather than
// bare IDs.
func BuildStore(connections []domain.Connection, footpaths []domain.Footpath, stops []domain.Stop) (*Store, error) {
	ids := make([]domain.StopID, len(stops))
	for i, s := range stops {
		ids[i] = s.ID
	}
	return NewStore(connections, footpaths, ids)
}
