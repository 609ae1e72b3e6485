package cmd

import (
	"net/http"
	"time"

	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jsphweid/chordbloom/config"
	"github.com/jsphweid/chordbloom/logger"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the HTTP API",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

func serve() error {
	flush := logger.InitSentry(cfg.SentryDSN, cfg.Environment, Version, !cfg.IsProduction())
	defer flush()

	logger.Info("Starting server", logger.Fields{"port": cfg.Port, "environment": cfg.Environment})
	err := http.ListenAndServe(":"+cfg.Port, NewRouter(cfg))
	logger.Error("Server stopped", err, nil)
	return err
}

// NewRouter wires the API routes with request tracking, CORS, Sentry and
// panic recovery.
func NewRouter(c *config.Config) http.Handler {
	router := mux.NewRouter().StrictSlash(true)
	router.Use(requestTracking)
	router.HandleFunc("/health", HandleHealth).Methods("GET")
	router.HandleFunc("/progressions", HandleGenerate).Methods("POST")
	router.HandleFunc("/progressions/swap", HandleSwap).Methods("POST")
	router.HandleFunc("/progressions/schedule", HandleSchedule).Methods("POST")
	router.HandleFunc("/progressions/arrange", HandleArrange).Methods("POST")
	router.HandleFunc("/progressions/export", HandleExport).Methods("POST")

	withCORS := cors.New(cors.Options{
		AllowedOrigins: c.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
		ExposedHeaders: []string{"X-Request-ID", "Content-Disposition"},
	}).Handler(router)

	withSentry := sentryhttp.New(sentryhttp.Options{Repanic: true}).Handle(withCORS)
	return recoverPanics(withSentry)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// requestTracking tags each request with an id and logs how it went.
func requestTracking(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.New().String()
		r.Header.Set("X-Request-ID", requestID)
		w.Header().Set("X-Request-ID", requestID)

		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		fields := logger.WithRequest(r)
		fields["duration_ms"] = time.Since(start).Milliseconds()
		fields["status_code"] = rec.status

		switch {
		case rec.status >= http.StatusInternalServerError:
			logger.Error("Request failed with server error", nil, fields)
		case rec.status >= http.StatusBadRequest:
			logger.Warn("Request failed with client error", fields)
		default:
			logger.Info("Request completed", fields)
		}
	})
}

func recoverPanics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("Panic recovered", nil, logger.Fields{
					"request_id": r.Header.Get("X-Request-ID"),
					"error":      err,
					"path":       r.URL.Path,
				})
				writeJSON(w, http.StatusInternalServerError, map[string]string{
					"detail":     "Internal server error",
					"request_id": r.Header.Get("X-Request-ID"),
				})
			}
		}()
		next.ServeHTTP(w, r)
	})
}
