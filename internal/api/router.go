package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/wonny/rebal/internal/api/handlers"
	"github.com/wonny/rebal/pkg/logger"
)

// NewRouter creates and configures the HTTP router
// ⭐ SSOT: 라우팅 설정은 이 함수에서만
func NewRouter(vrHandler *handlers.VRHandler, marketHandler *handlers.MarketHandler, logsHandler *handlers.LogsHandler, log *logger.Logger) http.Handler {
	r := mux.NewRouter()

	// Health check
	r.HandleFunc("/health", healthCheckHandler).Methods("GET")

	// API v1
	api := r.PathPrefix("/api").Subrouter()

	// Engine endpoints
	api.HandleFunc("/vr/evaluate", vrHandler.Evaluate).Methods("POST")
	api.HandleFunc("/vr/check", vrHandler.Check).Methods("POST")
	api.HandleFunc("/vr/project", vrHandler.Project).Methods("POST")
	api.HandleFunc("/vr/table", vrHandler.Table).Methods("POST")

	// Session endpoints
	api.HandleFunc("/session", vrHandler.GetSession).Methods("GET")
	api.HandleFunc("/session", vrHandler.UpdateSession).Methods("PUT")

	// Market endpoints
	api.HandleFunc("/price", marketHandler.GetPrice).Methods("GET")
	api.HandleFunc("/price/stream", marketHandler.StreamPrice).Methods("GET")

	// Ledger endpoints
	api.HandleFunc("/logs/recommendations", logsHandler.GetRecommendations).Methods("GET")
	api.HandleFunc("/logs/trades", logsHandler.GetTrades).Methods("GET")
	api.HandleFunc("/logs/trades", logsHandler.RecordTrade).Methods("POST")

	// Reminder artifact
	api.HandleFunc("/reminder.ics", logsHandler.GetReminder).Methods("GET")

	// Apply middleware
	r.Use(loggingMiddleware(log))
	r.Use(recoveryMiddleware(log))

	return r
}

// healthCheckHandler returns server health status
func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  "ok",
		"service": "rebal-api",
	})
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			next.ServeHTTP(w, r)

			log.WithFields(map[string]interface{}{
				"method":   r.Method,
				"path":     r.URL.Path,
				"duration": time.Since(start),
			}).Debug("HTTP request")
		})
	}
}

// recoveryMiddleware recovers from panics
func recoveryMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					log.WithFields(map[string]interface{}{
						"error": err,
						"path":  r.URL.Path,
					}).Error("Panic recovered")

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					json.NewEncoder(w).Encode(map[string]string{
						"error": "Internal server error",
					})
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
