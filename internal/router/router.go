package router

import (
	"net/http"

	"github.com/Sourabh71/AI-Analyst/internal/handlers"
	"github.com/Sourabh71/AI-Analyst/internal/metrics"
	"github.com/Sourabh71/AI-Analyst/internal/middleware"
	"github.com/Sourabh71/AI-Analyst/internal/services"
	"github.com/Sourabh71/AI-Analyst/internal/utils"

	"github.com/gorilla/mux"
)

type Options struct {
	MaxFileSize    int64
	AllowedOrigins []string
	Metrics        *metrics.Metrics
}

func NewRouter(sessionService services.SessionService, opts Options, logger *utils.Logger) http.Handler {
	r := mux.NewRouter()

	// Middlewares
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(opts.AllowedOrigins))
	r.Use(middleware.Recovery(logger))

	sessionHandler := handlers.NewSessionHandler(sessionService, opts.MaxFileSize, logger)

	if opts.Metrics != nil {
		r.Handle("/metrics", opts.Metrics.Handler()).Methods(http.MethodGet)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	}).Methods(http.MethodGet)

	// Session endpoints
	api.HandleFunc("/sessions", sessionHandler.UploadDocument).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{id}", sessionHandler.GetSession).Methods(http.MethodGet)
	api.HandleFunc("/sessions/{id}", sessionHandler.CloseSession).Methods(http.MethodDelete)
	api.HandleFunc("/sessions/{id}/extraction", sessionHandler.RunExtraction).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{id}/tables", sessionHandler.ParseTables).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{id}/classification", sessionHandler.Classify).Methods(http.MethodGet, http.MethodPost)

	return r
}
