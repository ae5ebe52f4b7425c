package api

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ReadinessCheck reports whether the record store can be read
type ReadinessCheck func(ctx context.Context) error

// NewRouter registers the API routes and the health and metrics endpoints
func NewRouter(handler *AnalysisHandler, ready ReadinessCheck) *mux.Router {
	router := mux.NewRouter()
	router.Use(mux.MiddlewareFunc(LoggingMiddleware()))

	v1 := router.PathPrefix("/api/v1").Subrouter()
	v1.HandleFunc("/categories", handler.ListCategories).Methods(http.MethodGet)
	v1.HandleFunc("/categories/{category}/symbols", handler.ListSymbols).Methods(http.MethodGet)
	v1.HandleFunc("/analysis", handler.GetAnalysis).Methods(http.MethodGet)
	v1.HandleFunc("/analysis/charts", handler.GetCharts).Methods(http.MethodGet)

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		respondWithJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	})

	router.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		if err := ready(r.Context()); err != nil {
			respondWithJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "not ready"})
			return
		}
		respondWithJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	})

	router.HandleFunc("/live", func(w http.ResponseWriter, r *http.Request) {
		respondWithJSON(w, http.StatusOK, map[string]string{"status": "alive"})
	})

	router.Handle("/metrics", promhttp.Handler())

	return router
}
