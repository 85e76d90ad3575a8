package http

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/transitline/journeyd/internal/core/csa"
	"github.com/transitline/journeyd/internal/core/domain"
	"github.com/transitline/journeyd/internal/core/usecases"
)

type journeyLegDTO struct {
	Transport   string `json:"transport"`
	StartStop   string `json:"startStop"`
	StartTime   string `json:"startTime"`
	ArrivalStop string `json:"arrivalStop"`
	ArrivalTime string `json:"arrivalTime"`
}

type journeyDTO struct {
	Legs       []journeyLegDTO `json:"legs"`
	Confidence float64         `json:"confidence"`
}

type journeysResponse struct {
	Origin      string       `json:"origin"`
	Destination string       `json:"destination"`
	Journeys    []journeyDTO `json:"journeys"`
}

// JourneyHandler implements GET /v1/journeys?origin=&destination=&arrival=HH:MM:SS&k=&threshold=.
func JourneyHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		origin := c.Query("origin")
		destination := c.Query("destination")
		arrivalStr := c.Query("arrival")

		if origin == "" || destination == "" || arrivalStr == "" {
			return errBadRequest(c, "origin, destination, and arrival are required query parameters")
		}

		arrivalSeconds, err := parseClockTime(arrivalStr)
		if err != nil {
			return errBadRequest(c, err.Error())
		}

		k := 0
		if raw := c.Query("k"); raw != "" {
			k, err = strconv.Atoi(raw)
			if err != nil || k <= 0 {
				return errBadRequest(c, "k must be a positive integer")
			}
		}

		threshold := 0.0
		if raw := c.Query("threshold"); raw != "" {
			threshold, err = strconv.ParseFloat(raw, 64)
			if err != nil || threshold < 0 || threshold > 1 {
				return errBadRequest(c, "threshold must be a number in [0, 1]")
			}
		}

		ranked, err := deps.Journeys.FindJourneys(c.UserContext(), domain.StopID(origin), domain.StopID(destination), arrivalSeconds, k, threshold)
		if err != nil {
			var unknownStop *csa.UnknownStopError
			var invalidTime *csa.InvalidTimeError
			switch {
			case errors.As(err, &unknownStop):
				return errBadRequest(c, err.Error())
			case errors.As(err, &invalidTime):
				return errBadRequest(c, err.Error())
			default:
				return errInternal(c, "failed to compute journeys")
			}
		}

		resp := journeysResponse{
			Origin:      origin,
			Destination: destination,
			Journeys:    toJourneyDTOs(ranked),
		}
		return c.JSON(resp)
	}
}

func toJourneyDTOs(ranked []usecases.RankedJourney) []journeyDTO {
	out := make([]journeyDTO, len(ranked))
	for i, r := range ranked {
		legs := make([]journeyLegDTO, len(r.Legs))
		for j, leg := range r.Legs {
			legs[j] = journeyLegDTO{
				Transport:   string(leg.Transport),
				StartStop:   string(leg.StartStop),
				StartTime:   formatClockTime(leg.StartTime),
				ArrivalStop: string(leg.ArrivalStop),
				ArrivalTime: formatClockTime(leg.ArrivalTime),
			}
		}
		out[i] = journeyDTO{Legs: legs, Confidence: r.Confidence}
	}
	return out
}

// parseClockTime parses "HH:MM:SS" into seconds since midnight.
func parseClockTime(s string) (domain.SecondsSinceMidnight, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return 0, errors.New("arrival must be formatted as HH:MM:SS")
	}
	h, err1 := strconv.Atoi(parts[0])
	m, err2 := strconv.Atoi(parts[1])
	sec, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil || h < 0 || m < 0 || m > 59 || sec < 0 || sec > 59 {
		return 0, errors.New("arrival must be formatted as HH:MM:SS")
	}
	return h*3600 + m*60 + sec, nil
}

func formatClockTime(s domain.SecondsSinceMidnight) string {
	h := s / 3600
	m := (s % 3600) / 60
	sec := s % 60
	return strconv.Itoa(h) + ":" + pad2(m) + ":" + pad2(sec)
}

func pad2(v int) string {
	if v < 10 {
		return "0" + strconv.Itoa(v)
	}
	return strconv.Itoa(v)
}
