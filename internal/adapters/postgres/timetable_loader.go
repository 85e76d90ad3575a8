package postgres

import (
	"context"
	"fmt"

	"github.com/transitline/journeyd/internal/core/domain"
)

// TimetableLoader implements ports.TimetableLoader by reading the day's
// connections, footpaths and stop metadata out of Postgres in three
// queries. It runs once at process start (or on an explicit reload); the
// csa.Store it feeds is immutable and read-only thereafter.
type TimetableLoader struct {
	db *DB
}

// NewTimetableLoader creates a TimetableLoader.
func NewTimetableLoader(db *DB) *TimetableLoader {
	return &TimetableLoader{db: db}
}

// Load implements ports.TimetableLoader.
func (l *TimetableLoader) Load(ctx context.Context) ([]domain.Connection, []domain.Footpath, []domain.Stop, error) {
	conns, err := l.loadConnections(ctx)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load connections: %w", err)
	}

	footpaths, err := l.loadFootpaths(ctx)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load footpaths: %w", err)
	}

	stops, err := l.loadStops(ctx)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load stops: %w", err)
	}

	return conns, footpaths, stops, nil
}

func (l *TimetableLoader) loadConnections(ctx context.Context) ([]domain.Connection, error) {
	rows, err := l.db.Pool.Query(ctx, `
		SELECT connection_id, trip_id, dep_stop, arr_stop, dep_time, arr_time
		FROM connections
		ORDER BY arr_time, connection_id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Connection
	for rows.Next() {
		var c domain.Connection
		if err := rows.Scan(&c.ConnectionID, &c.TripID, &c.DepStop, &c.ArrStop, &c.DepTime, &c.ArrTime); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (l *TimetableLoader) loadFootpaths(ctx context.Context) ([]domain.Footpath, error) {
	rows, err := l.db.Pool.Query(ctx, `
		SELECT stop_a, stop_b, duration_seconds FROM footpaths
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Footpath
	for rows.Next() {
		var fp domain.Footpath
		if err := rows.Scan(&fp.StopA, &fp.StopB, &fp.Duration); err != nil {
			return nil, err
		}
		out = append(out, fp)
	}
	return out, rows.Err()
}

func (l *TimetableLoader) loadStops(ctx context.Context) ([]domain.Stop, error) {
	rows, err := l.db.Pool.Query(ctx, `
		SELECT stop_id, name,
		       ST_Y(location::geometry), ST_X(location::geometry),
		       COALESCE(metadata, '{}')
		FROM stops
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Stop
	for rows.Next() {
		var s domain.Stop
		if err := rows.Scan(&s.ID, &s.Name, &s.Location.Lat, &s.Location.Lon, &s.Metadata); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
