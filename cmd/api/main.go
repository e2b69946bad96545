package main

import (
	"database/sql"
	"log/slog"
	"net/http"
	"os"

	"github.com/crucial707/authgate/internal/auth"
	"github.com/crucial707/authgate/internal/config"
	"github.com/crucial707/authgate/internal/db"
	"github.com/crucial707/authgate/internal/handlers"
	"github.com/crucial707/authgate/internal/middleware"
	"github.com/crucial707/authgate/internal/repo"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	// Load configuration
	cfg := config.Load()

	setupLogging(cfg.LogFormat)

	// A weak or missing signing key must stop the process, not degrade it.
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	// Connect to database FIRST
	database, err := db.Connect(
		cfg.DBHost,
		cfg.DBPort,
		cfg.DBName,
		cfg.DBUser,
		cfg.DBPass,
	)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	database.SetMaxOpenConns(cfg.DBMaxOpenConns)
	database.SetMaxIdleConns(cfg.DBMaxIdleConns)

	slog.Info("successfully connected to the database")

	// Apply migrations (users table with the unique username constraint)
	if err := db.Run(cfg.DatabaseURL()); err != nil {
		slog.Error("migrations failed", "error", err)
		os.Exit(1)
	}

	r := newRouter(database, cfg)

	addr := ":" + cfg.Port

	// Start server LAST
	if cfg.TLSCertFile != "" && cfg.TLSKeyFile != "" {
		slog.Info("starting server with TLS", "addr", addr)
		err = http.ListenAndServeTLS(addr, cfg.TLSCertFile, cfg.TLSKeyFile, r)
	} else {
		slog.Info("starting server", "addr", addr)
		err = http.ListenAndServe(addr, r)
	}
	if err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

// setupLogging configures the default slog handler: text (default) or JSON per LOG_FORMAT.
func setupLogging(format string) {
	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, nil)
	} else {
		handler = slog.NewTextHandler(os.Stdout, nil)
	}
	slog.SetDefault(slog.New(handler))
}

// newRouter builds the full API router. Split out of main so the integration
// test can run the real middleware chain against a mocked database.
func newRouter(database *sql.DB, cfg config.Config) http.Handler {
	secret := []byte(cfg.JWTSecret)

	users := repo.NewUserRepo(database)
	service := auth.NewService(users, secret, cfg.TokenTTL(), bcrypt.DefaultCost)

	authHandler := &handlers.AuthHandler{Service: service}
	protectedHandler := &handlers.ProtectedHandler{}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestLog)
	r.Use(middleware.Prometheus)
	r.Use(middleware.SecurityHeaders(cfg.TLSCertFile != "" && cfg.TLSKeyFile != ""))
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))

	// Health (no auth)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	// Prometheus metrics
	r.Handle("/metrics", promhttp.Handler())

	// Public auth routes
	r.Route("/auth", func(r chi.Router) {
		r.Use(middleware.MaxBytes(middleware.DefaultMaxBodyBytes))
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
	})

	// Protected
	r.Group(func(r chi.Router) {
		r.Use(middleware.JWT(secret))
		r.Get("/protected", protectedHandler.Get)
	})

	return r
}
