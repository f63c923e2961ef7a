package graph

import (
	_ "embed"
	"fmt"

	graphql "github.com/graph-gophers/graphql-go"
)

// schemaSDL is the GraphQL contract. Resolvers are bound to it by method
// name, so the schema and the Resolver type must stay in sync.
//
//go:embed schema.graphql
var schemaSDL string

// ParseSchema merges the SDL contract with the resolver into a servable
// schema.
func ParseSchema(resolver *Resolver) (*graphql.Schema, error) {
	schema, err := graphql.ParseSchema(schemaSDL, resolver)
	if err != nil {
		return nil, fmt.Errorf("failed to parse schema: %w", err)
	}
	return schema, nil
}
