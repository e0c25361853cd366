/*
Package mockapi is a stand-in reservation service for development and
integration tests.

PURPOSE:
  Serves the same HTTP surface as the real directory/calendar backends —
  login and token refresh, resource and feature catalogs, resource-type
  administration, bookings, and availability checks — from seeded
  in-memory fixtures. Tokens are JWT-shaped but unsigned: good enough
  for a client that only inspects the expiry claim.

ROUTER: chi
  Middleware stack: Logger, Recoverer, RequestID, CORS, plus an optional
  fixed latency to make racing requests observable in development.

ROUTE GROUPS:
  /api/auth/*        Login and token refresh
  /resource-types/*  Reference data CRUD (authenticated)
  /exchange/*        Resources, features, bookings, availability
                     (authenticated)

SEE ALSO:
  - handlers.go: handler implementations
  - data.go:     seeded fixtures
  - cmd/mockapi: server entry point
*/
package mockapi

import (
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"

	"github.com/warp/reservation-engine/engine"
)

// Server holds the mock service state. Safe for concurrent use.
type Server struct {
	mu         sync.RWMutex
	users      []engine.User
	resources  []engine.Resource
	features   []engine.Feature
	bookings   []engine.Booking
	types      []engine.ResourceType
	nextTypeID int

	latency  time.Duration
	tokenTTL time.Duration
	now      func() time.Time
	validate *validator.Validate
}

// Option configures a Server.
type Option func(*Server)

// WithLatency adds a fixed delay to every request.
func WithLatency(d time.Duration) Option {
	return func(s *Server) { s.latency = d }
}

// WithTokenTTL sets the lifetime of issued tokens.
func WithTokenTTL(d time.Duration) Option {
	return func(s *Server) { s.tokenTTL = d }
}

// WithClock overrides the server's time source. Used by tests.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// NewServer creates a server seeded with the default fixtures.
func NewServer(opts ...Option) *Server {
	s := &Server{
		users:      seedUsers(),
		features:   seedFeatures(),
		types:      seedResourceTypes(),
		tokenTTL:   time.Hour,
		now:        time.Now,
		validate:   validator.New(),
		nextTypeID: 100,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.resources = seedResources()
	s.bookings = seedBookings(s.now())
	return s
}

// Router builds the HTTP router.
func (s *Server) Router() *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
	}))
	if s.latency > 0 {
		r.Use(s.delay)
	}

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/login", s.handleLogin)
		r.With(s.requireAuth).Post("/refresh-token", s.handleRefreshToken)
	})

	r.Route("/resource-types", func(r chi.Router) {
		r.Use(s.requireAuth)
		r.Get("/", s.handleListResourceTypes)
		r.Post("/", s.handleCreateResourceType)
		r.Get("/{id}", s.handleGetResourceType)
		r.Put("/{id}", s.handleUpdateResourceType)
		r.Delete("/{id}", s.handleDeleteResourceType)
	})

	r.Route("/exchange", func(r chi.Router) {
		r.Use(s.requireAuth)
		r.Get("/resources", s.handleListResources)
		r.Get("/resources/{id}", s.handleGetResource)
		r.Get("/features", s.handleListFeatures)
		r.Get("/bookings", s.handleListBookings)
		r.Post("/bookings", s.handleCreateBooking)
		r.Get("/bookings/{id}", s.handleGetBooking)
		r.Put("/bookings/{id}/status", s.handleUpdateBookingStatus)
		r.Post("/availability", s.handleCheckAvailability)
	})

	return r
}

// delay simulates network latency.
func (s *Server) delay(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(s.latency)
		next.ServeHTTP(w, r)
	})
}
