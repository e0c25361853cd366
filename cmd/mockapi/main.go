/*
main.go - Mock reservation service entry point

PURPOSE:
  Runs the seeded mock reservation service for local development of
  clients built on the engine package.

COMMAND-LINE FLAGS:
  -port      HTTP server port (default: 8000)
  -latency   Fixed per-request delay, e.g. 300ms (default: 0)
             Useful for observing loading states and racing requests.

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Exit

EXAMPLES:
  # Run with defaults
  ./mockapi

  # Simulate a slow network
  ./mockapi -latency=500ms

SEE ALSO:
  - mockapi/server.go: Router configuration
  - mockapi/handlers.go: HTTP handlers
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/warp/reservation-engine/mockapi"
)

func main() {
	// Flags
	port := flag.Int("port", 8000, "HTTP server port")
	latency := flag.Duration("latency", 0, "fixed per-request delay")
	flag.Parse()

	// Initialize the seeded service
	svc := mockapi.NewServer(mockapi.WithLatency(*latency))

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      svc.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("🚀 Mock reservation service on http://localhost:%d", *port)
		log.Printf("🔑 Login at http://localhost:%d/api/auth/login (users: jdoe, asmith)", *port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}
