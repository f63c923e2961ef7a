package graph

import (
	graphql "github.com/graph-gophers/graphql-go"
	"github.com/gofiber/fiber/v2"
)

// graphqlRequest is the standard GraphQL-over-HTTP POST body.
type graphqlRequest struct {
	Query         string         `json:"query"`
	OperationName string         `json:"operationName"`
	Variables     map[string]any `json:"variables"`
}

// ErrorResponse is the shape of non-GraphQL error responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Handler executes GraphQL operations posted to the endpoint. Domain and
// validation failures travel inside the GraphQL response; HTTP status
// codes are reserved for malformed requests.
func Handler(schema *graphql.Schema) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req graphqlRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
				Error:   "bad_request",
				Message: "Invalid request body",
			})
		}
		if req.Query == "" {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
				Error:   "bad_request",
				Message: "Query is required",
			})
		}

		response := schema.Exec(c.UserContext(), req.Query, req.OperationName, req.Variables)
		return c.JSON(response)
	}
}
