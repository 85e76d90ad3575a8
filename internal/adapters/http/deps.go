package http

import (
	"github.com/nats-io/nats.go"

	"github.com/transitline/journeyd/internal/adapters/postgres"
	"github.com/transitline/journeyd/internal/adapters/valkey"
	"github.com/transitline/journeyd/internal/core/usecases"
)

// Dependencies holds all services needed by HTTP handlers.
type Dependencies struct {
	Journeys *usecases.JourneyService
	DB       *postgres.DB
	Cache    *valkey.Cache
	NATS     *nats.Conn
}
