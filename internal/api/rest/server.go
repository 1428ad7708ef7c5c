package rest

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fortuna/gridiron/internal/analysis"
	"github.com/fortuna/gridiron/internal/cache"
	"github.com/fortuna/gridiron/internal/metrics"
	"github.com/fortuna/gridiron/internal/scoring"
	"github.com/fortuna/gridiron/internal/store"
)

// Server represents the REST API server
type Server struct {
	addr    string
	server  *http.Server
	handler *Handler
}

// NewServer creates a new REST API server
func NewServer(addr string, db *store.Database, c *cache.RedisCache, writer *analysis.Writer, rules *scoring.Rules, runner *analysis.Runner, m *metrics.Metrics) *Server {
	handler := NewHandler(db, c, writer, rules, runner)

	router := mux.NewRouter()

	// Apply middleware
	router.Use(RecoveryMiddleware)
	router.Use(LoggingMiddleware)
	router.Use(CORSMiddleware)
	router.Use(MetricsMiddleware(m))

	// Health check
	router.HandleFunc("/health", handler.HealthCheck).Methods("GET")

	// Prometheus metrics
	if m != nil {
		router.Handle("/metrics", promhttp.HandlerFor(m.Registry(), promhttp.HandlerOpts{})).Methods("GET")
	}

	// API v1 routes
	api := router.PathPrefix("/api/v1").Subrouter()

	// Reports
	api.HandleFunc("/reports", handler.ListReports).Methods("GET")
	api.HandleFunc("/reports/{name}", handler.GetReport).Methods("GET")

	// Players
	api.HandleFunc("/players/{playerID}/gamelog", handler.GetPlayerGameLog).Methods("GET")

	// Teams and games
	api.HandleFunc("/teams", handler.GetTeams).Methods("GET")
	api.HandleFunc("/games/upcoming", handler.GetUpcomingGames).Methods("GET")

	// Scoring
	api.HandleFunc("/scoring/preview", handler.PreviewScore).Methods("POST")

	// Analysis operations
	api.HandleFunc("/analysis/run", handler.TriggerAnalysis).Methods("POST")

	return &Server{
		addr:    addr,
		handler: handler,
		server: &http.Server{
			Addr:    addr,
			Handler: router,
		},
	}
}

// Start starts the REST API server
func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
