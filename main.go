// This is the main entry point of the todoserve application. It loads
// configuration, connects to Postgres and runs migrations, wires the stores,
// token service and GraphQL schema together, sets up the chi router with
// middleware, and starts the HTTP server with graceful shutdown.
//
// Analogy to an Apollo/Express app: this file plays the role of index.js,
// where the Express app is created, middleware is applied, the ApolloServer
// is attached, and the process starts listening.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	gqlhandler "github.com/graphql-go/handler"
	"github.com/joho/godotenv"

	"github.com/user/todoserve-go/auth"
	"github.com/user/todoserve-go/config"
	"github.com/user/todoserve-go/db"
	"github.com/user/todoserve-go/graph"
	"github.com/user/todoserve-go/todos"
	"github.com/user/todoserve-go/users"
)

func main() {
	// A .env file is a development convenience; in production the variables
	// are set directly, so a missing file is only worth a warning.
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading it: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	pool, err := db.NewPool(cfg.DB)
	if err != nil {
		log.Fatalf("Failed to create database pool: %v", err)
	}
	defer pool.Close()

	// Migrations bring the schema up to date on every start, the way a
	// Prisma deploy step would before the server boots.
	if err := db.RunMigrations(cfg.DB, "./db/migrations"); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Manual dependency injection: stores and services are constructed here
	// and handed to the resolver layer.
	userStore := users.NewPostgresStore(pool)
	todoStore := todos.NewPostgresStore(pool)

	tokens, err := auth.NewTokenService(*cfg.Auth)
	if err != nil {
		log.Fatalf("Failed to create token service: %v", err)
	}

	schema, err := graph.NewSchema(&graph.Resolver{
		Users:  userStore,
		Todos:  todoStore,
		Tokens: tokens,
	})
	if err != nil {
		log.Fatalf("Failed to build GraphQL schema: %v", err)
	}

	r := chi.NewRouter()

	// Chi requires all middleware to be registered before any routes.
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("pong"))
	})

	// The single GraphQL endpoint. The auth middleware runs first and
	// attaches a viewer when the bearer token checks out; resolvers make
	// all authorization decisions from there, so the endpoint itself never
	// rejects a request.
	graphqlHandler := gqlhandler.New(&gqlhandler.Config{
		Schema:   &schema,
		Pretty:   true,
		GraphiQL: true,
	})
	r.Route("/graphql", func(r chi.Router) {
		r.Use(auth.Authenticator(tokens, userStore))
		r.Handle("/", graphqlHandler)
	})

	addr := fmt.Sprintf(":%s", cfg.Server.Port)

	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// The server runs in its own goroutine so main can block on shutdown
	// signals.
	go func() {
		log.Printf("Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// In-flight requests get the timeout window to finish before the pool
	// is closed by the deferred Close above.
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}
	log.Println("Server stopped gracefully")
}
