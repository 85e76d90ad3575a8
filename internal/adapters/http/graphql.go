package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"

	"github.com/transitline/journeyd/internal/core/domain"
)

// buildSchema creates the GraphQL schema wired to the journey service.
func buildSchema(deps *Dependencies) (graphql.Schema, error) {
	legType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Leg",
		Fields: graphql.Fields{
			"transport":   &graphql.Field{Type: graphql.String},
			"startStop":   &graphql.Field{Type: graphql.String},
			"startTime":   &graphql.Field{Type: graphql.String},
			"arrivalStop": &graphql.Field{Type: graphql.String},
			"arrivalTime": &graphql.Field{Type: graphql.String},
		},
	})

	journeyType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Journey",
		Fields: graphql.Fields{
			"confidence": &graphql.Field{Type: graphql.Float},
			"legs":       &graphql.Field{Type: graphql.NewList(legType)},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"journeys": &graphql.Field{
				Type:        graphql.NewList(journeyType),
				Description: "Find up to k distinct journeys from origin to destination arriving by arrival, each with its confidence score",
				Args: graphql.FieldConfigArgument{
					"origin":      &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"destination": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"arrival":     &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"k":           &graphql.ArgumentConfig{Type: graphql.Int},
					"threshold":   &graphql.ArgumentConfig{Type: graphql.Float},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					origin, _ := p.Args["origin"].(string)
					destination, _ := p.Args["destination"].(string)
					arrivalStr, _ := p.Args["arrival"].(string)

					arrivalSeconds, err := parseClockTime(arrivalStr)
					if err != nil {
						return nil, err
					}

					k, _ := p.Args["k"].(int)
					threshold, _ := p.Args["threshold"].(float64)

					ranked, err := deps.Journeys.FindJourneys(p.Context, domain.StopID(origin), domain.StopID(destination), arrivalSeconds, k, threshold)
					if err != nil {
						return nil, err
					}
					return toJourneyDTOs(ranked), nil
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query: queryType,
	})
}

// GraphQLHandler serves the GraphQL endpoint.
func GraphQLHandler(deps *Dependencies) fiber.Handler {
	schema, err := buildSchema(deps)
	if err != nil {
		panic("graphql schema build: " + err.Error())
	}

	type gqlRequest struct {
		Query         string                 `json:"query"`
		OperationName string                 `json:"operationName"`
		Variables     map[string]interface{} `json:"variables"`
	}

	return func(c *fiber.Ctx) error {
		var req gqlRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid request body"})
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			VariableValues: req.Variables,
			OperationName:  req.OperationName,
			Context:        c.Context(),
		})

		return c.JSON(result)
	}
}
