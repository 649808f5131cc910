package server

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"simpeg/internal/domain/attendance"
	"simpeg/internal/domain/auth"
	"simpeg/internal/domain/employee"
	"simpeg/internal/domain/leave"
	"simpeg/internal/domain/reports"
	"simpeg/internal/domain/roster"
	"simpeg/internal/domain/salary"
	"simpeg/internal/platform/config"
	"simpeg/internal/platform/crypto"
	"simpeg/internal/platform/db"
	attendancehandler "simpeg/internal/transport/http/handlers/attendance"
	authhandler "simpeg/internal/transport/http/handlers/auth"
	dashboardhandler "simpeg/internal/transport/http/handlers/dashboard"
	employeehandler "simpeg/internal/transport/http/handlers/employee"
	leavehandler "simpeg/internal/transport/http/handlers/leave"
	rosterhandler "simpeg/internal/transport/http/handlers/roster"
	salaryhandler "simpeg/internal/transport/http/handlers/salary"
	"simpeg/internal/transport/http/middleware"
)

type App struct {
	Config config.Config
	DB     *pgxpool.Pool
	Router http.Handler
}

// New builds the router and all handler dependencies on top of an
// existing pool. Tests use it directly without starting a listener.
func New(cfg config.Config, pool *pgxpool.Pool) *App {
	authStore := auth.NewStore(pool)
	employeeStore := employee.NewStore(pool)
	attendanceStore := attendance.NewStore(pool, cfg.WorkdayStart)
	leaveStore := leave.NewStore(pool)
	leaveService := leave.NewService(leaveStore, cfg.LeaveAllowRedecision)
	salaryStore := salary.NewStore(pool)
	salaryService := salary.NewService(salaryStore)
	rosterStore := roster.NewStore(pool)
	reportsService := reports.NewService(pool, employeeStore, attendanceStore, leaveStore, salaryStore)
	cryptoService, err := crypto.New(cfg.DataEncryptionKey)
	if err != nil {
		log.Printf("data encryption key rejected, mfa disabled: %v", err)
		cryptoService = nil
	}

	authHandler := authhandler.NewHandler(authStore, employeeStore, cfg.JWTSecret, cfg.SessionTTL, cryptoService)
	employeeHandler := employeehandler.NewHandler(employeeStore, authStore, cfg)
	attendanceHandler := attendancehandler.NewHandler(attendanceStore, employeeStore, authStore)
	leaveHandler := leavehandler.NewHandler(leaveService, employeeStore, authStore)
	salaryHandler := salaryhandler.NewHandler(salaryStore, salaryService, employeeStore, authStore)
	dashboardHandler := dashboardhandler.NewHandler(reportsService, employeeStore, authStore)
	rosterHandler := rosterhandler.NewHandler(rosterStore)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.RateLimit(cfg.RateLimitPerMinute, time.Minute))
	router.Use(middleware.SensitiveMutationRateLimit(cfg.RateLimitPerMinute, time.Minute))
	router.Use(middleware.Auth(cfg.JWTSecret, authStore))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/login", authHandler.HandleLogin)
		r.Post("/auth/request-reset", authHandler.HandleRequestReset)
		r.Post("/auth/reset", authHandler.HandleResetPassword)
		rosterHandler.RegisterPublicRoutes(r)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Post("/auth/logout", authHandler.HandleLogout)
			r.Get("/auth/me", authHandler.HandleMe)
			r.Post("/auth/mfa/setup", authHandler.HandleMFASetup)
			r.Post("/auth/mfa/enable", authHandler.HandleMFAEnable)
			r.Post("/auth/mfa/disable", authHandler.HandleMFADisable)

			employeeHandler.RegisterRoutes(r)
			attendanceHandler.RegisterRoutes(r)
			leaveHandler.RegisterRoutes(r)
			salaryHandler.RegisterRoutes(r)
			dashboardHandler.RegisterRoutes(r)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireStaff)
			employeeHandler.RegisterAdminRoutes(r)
			leaveHandler.RegisterAdminRoutes(r)
			salaryHandler.RegisterAdminRoutes(r)
			dashboardHandler.RegisterAdminRoutes(r)
			rosterHandler.RegisterAdminRoutes(r)
		})
	})

	return &App{Config: cfg, DB: pool, Router: router}
}

func Run() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	defer pool.Close()

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, "migrations"); err != nil {
			log.Fatalf("migrations failed: %v", err)
		}
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			log.Fatalf("seed failed: %v", err)
		}
	}

	app := New(cfg, pool)

	log.Printf("simpeg server listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, app.Router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
