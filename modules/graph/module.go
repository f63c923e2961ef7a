package graph

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/milobedini/milife-backend/modules/auth"
	"github.com/milobedini/milife-backend/modules/store"
	"github.com/milobedini/milife-backend/modules/tasks"

	"github.com/go-monolith/mono"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	graphql "github.com/graph-gophers/graphql-go"
)

// GraphModule serves the GraphQL API over HTTP. It depends on the store
// module for the shared database handle, so it must be registered after it.
type GraphModule struct {
	store  *store.StoreModule
	app    *fiber.App
	schema *graphql.Schema
	port   string
}

// Compile-time interface checks.
var _ mono.Module = (*GraphModule)(nil)
var _ mono.HealthCheckableModule = (*GraphModule)(nil)

// NewModule creates a new GraphModule backed by the given store.
func NewModule(storeModule *store.StoreModule) *GraphModule {
	port := os.Getenv("PORT")
	if port == "" {
		port = "4000"
	}
	return &GraphModule{
		store: storeModule,
		port:  port,
	}
}

// Name returns the module name.
func (m *GraphModule) Name() string {
	return "graph"
}

// Start wires repositories, services and the schema, then starts the HTTP
// server.
func (m *GraphModule) Start(_ context.Context) error {
	db := m.store.DB()
	if db == nil {
		return fmt.Errorf("store dependency not started")
	}

	users := auth.NewUserRepository(db)
	hasher := auth.NewPasswordHasher()
	jwtManager := auth.NewJWTManager(auth.JWTConfigFromEnv(os.Getenv))
	authService := auth.NewService(users, hasher, jwtManager)

	taskService := tasks.NewService(
		tasks.NewTaskRepository(db),
		tasks.NewUserTaskRepository(db),
		tasks.NewCompletionRepository(db),
	)

	schema, err := ParseSchema(NewResolver(authService, taskService, users))
	if err != nil {
		return err
	}
	m.schema = schema

	m.app = fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	m.app.Use(recover.New())
	m.app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	m.app.Use(cors.New())

	m.app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"module": "graph",
		})
	})

	// Identity is attached per request; anonymous requests pass through and
	// are rejected operation by operation.
	m.app.Post("/graphql", AuthContext(authService), Handler(schema))

	go func() {
		if err := m.app.Listen(":" + m.port); err != nil {
			log.Printf("[graph] HTTP server error: %v", err)
		}
	}()

	log.Printf("[graph] GraphQL server started on :%s", m.port)
	return nil
}

// Stop shuts down the HTTP server.
func (m *GraphModule) Stop(_ context.Context) error {
	if m.app == nil {
		return nil
	}
	log.Println("[graph] Shutting down HTTP server...")
	return m.app.Shutdown()
}

// Health returns the health status of the module.
func (m *GraphModule) Health(_ context.Context) mono.HealthStatus {
	return mono.HealthStatus{
		Healthy: m.app != nil && m.schema != nil,
		Message: "operational",
		Details: map[string]any{
			"port": m.port,
		},
	}
}
