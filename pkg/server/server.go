package server

import (
	"log"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aleksaelezovic/trigo/pkg/sparql/executor"
	"github.com/aleksaelezovic/trigo/pkg/sparql/optimizer"
	"github.com/aleksaelezovic/trigo/pkg/store"
)

var (
	sparqlRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "trigo_sparql_requests_total",
		Help: "Total number of SPARQL requests handled, by outcome.",
	}, []string{"outcome"})

	sparqlDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name: "trigo_sparql_request_duration_seconds",
		Help: "Latency of SPARQL query handling.",
	})
)

// Server represents the HTTP SPARQL server
type Server struct {
	store     *store.QuadStore
	executor  *executor.Executor
	optimizer *optimizer.Optimizer
	addr      string
}

// NewServer creates a new SPARQL HTTP server
func NewServer(store *store.QuadStore, addr string) *Server {
	exec := executor.NewExecutor(store)

	// Get statistics for optimizer
	count, _ := store.Len()
	stats := &optimizer.Statistics{TotalTriples: count}
	opt := optimizer.NewOptimizer(stats)

	return &Server{
		store:     store,
		executor:  exec,
		optimizer: opt,
		addr:      addr,
	}
}

// Start starts the HTTP server
func (s *Server) Start() error {
	router := httprouter.New()
	router.Handler(http.MethodGet, "/sparql", instrumentSPARQL(http.HandlerFunc(s.handleSPARQL)))
	router.Handler(http.MethodPost, "/sparql", instrumentSPARQL(http.HandlerFunc(s.handleSPARQL)))
	router.Handler(http.MethodOptions, "/sparql", http.HandlerFunc(s.handleSPARQL))
	router.Handler(http.MethodPost, "/data", http.HandlerFunc(s.handleDataUpload))
	router.Handler(http.MethodOptions, "/data", http.HandlerFunc(s.handleDataUpload))
	router.Handler(http.MethodGet, "/", http.HandlerFunc(s.handleRoot))
	router.Handler(http.MethodGet, "/metrics", promhttp.Handler())

	server := &http.Server{
		Addr:         s.addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Printf("Starting SPARQL endpoint at http://%s/sparql", s.addr)
	return server.ListenAndServe()
}

// instrumentSPARQL wraps a /sparql handler with request count and latency
// metrics. Outcome is inferred from the response status code written.
func instrumentSPARQL(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		sparqlDuration.Observe(time.Since(start).Seconds())
		outcome := "ok"
		if sw.status >= 400 {
			outcome = "error"
		}
		sparqlRequests.WithLabelValues(outcome).Inc()
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// Stats returns the optimizer statistics
func (s *Server) Stats() *optimizer.Statistics {
	// Update statistics
	count, _ := s.store.Len()
	return &optimizer.Statistics{TotalTriples: count}
}
