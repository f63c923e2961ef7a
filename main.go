package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/milobedini/milife-backend/modules/graph"
	"github.com/milobedini/milife-backend/modules/store"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
	"github.com/joho/godotenv"
)

const shutdownTimeout = 30 * time.Second

func main() {
	// Load .env if present; real deployments set environment variables directly.
	_ = godotenv.Load()

	log.Println("=== MiLife GraphQL Backend ===")

	// Create mono application
	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(shutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
		mono.WithLogFormat(mono.LogFormatText),
	)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	// Register modules with the framework.
	// Order matters: the graph module reads the store's database handle.
	storeModule := store.NewModule()
	app.Register(storeModule)
	app.Register(graph.NewModule(storeModule))

	// Start application
	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	printStartupInfo()

	// Graceful shutdown
	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

func printStartupInfo() {
	log.Println("")
	log.Println("Application started successfully!")
	log.Println("")
	log.Println("GraphQL endpoint: http://localhost:4000/graphql")
	log.Println("")
	log.Println("Queries:")
	log.Println("  me                              - Current user (requires Bearer token)")
	log.Println("  allTasks(filters)               - Browse the task catalog")
	log.Println("  task(id)                        - Look up one task")
	log.Println("  myTasks                         - Tasks on your list")
	log.Println("  myTaskCompletions(taskId, startDate, endDate)")
	log.Println("")
	log.Println("Mutations:")
	log.Println("  signup(name, email, password)   - Create an account")
	log.Println("  login(email, password)          - Get a bearer token")
	log.Println("  createTask(name, description)   - Add a catalog task")
	log.Println("  addMyTask(taskId)               - Add a task to your list")
	log.Println("  removeMyTask(taskId)            - Remove it (and its completions)")
	log.Println("  completeTask(taskId, date)      - Record a completion")
	log.Println("  uncompleteTask(taskId, date)    - Remove a completion")
	log.Println("")
	log.Println("Press Ctrl+C to shutdown gracefully")
}
