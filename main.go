package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"taskd/internal/handlers"
	"taskd/internal/store"
)

func main() {
	// Optional .env; absence is fine.
	_ = godotenv.Load()

	// Configuration
	addr := getEnv("TASKS_ADDR", "127.0.0.1:8080")
	backend := getEnv("TASKS_BACKEND", "json")

	p, err := newPersister(backend)
	if err != nil {
		log.Fatalf("Failed to initialize persistence: %v", err)
	}

	// A corrupt or unreadable file is not fatal; start empty instead.
	s, err := store.Open(p)
	if err != nil {
		log.Printf("Failed to load tasks, starting empty: %v", err)
		s = store.New(nil, p)
	}
	defer s.Close()

	h := handlers.New(s)

	log.Printf("Starting server on http://%s", addr)
	if err := http.ListenAndServe(addr, newRouter(h)); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

// newPersister builds the persister selected by backend.
func newPersister(backend string) (store.Persister, error) {
	switch backend {
	case "sqlite":
		dbPath := getEnv("TASKS_DB_PATH", "tasks.db")
		if err := ensureDir(dbPath); err != nil {
			return nil, err
		}
		return store.NewSQLiteSnapshot(dbPath)
	case "json", "":
		dbPath := getEnv("TASKS_DB_PATH", "db.json")
		if err := ensureDir(dbPath); err != nil {
			return nil, err
		}
		return store.NewJSONFile(dbPath), nil
	default:
		return nil, fmt.Errorf("unknown backend %q: want json or sqlite", backend)
	}
}

func newRouter(h *handlers.Handlers) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	r.Use(cors.Handler(corsOptions()))

	// Task API routes
	r.Post("/tasks", h.CreateTask)
	r.Get("/tasks", h.ListTasks)
	r.Get("/tasks/{id}", h.GetTask)
	r.Put("/tasks/{id}", h.UpdateTask)
	r.Delete("/tasks/{id}", h.DeleteTask)

	return r
}

func corsOptions() cors.Options {
	return cors.Options{
		AllowOriginFunc: func(r *http.Request, origin string) bool {
			return origin == "" || strings.HasPrefix(origin, "http://localhost")
		},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           3600,
	}
}

// ensureDir creates the parent directory of path if it is not the working directory.
func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0755)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
