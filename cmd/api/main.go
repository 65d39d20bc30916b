package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/finbridge/cashkick-service/internal/cache"
	"github.com/finbridge/cashkick-service/internal/config"
	"github.com/finbridge/cashkick-service/internal/handler"
	"github.com/finbridge/cashkick-service/internal/integrations/benchmark"
	"github.com/finbridge/cashkick-service/internal/middleware"
	"github.com/finbridge/cashkick-service/internal/repository"
	"github.com/finbridge/cashkick-service/internal/scheduler"
	"github.com/finbridge/cashkick-service/internal/service"
	"github.com/finbridge/cashkick-service/internal/utils/email"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	if err := godotenv.Load(); err != nil {
		logger.Info("No .env file found; relying on existing environment")
	}

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	// Initialize database
	db, err := sql.Open("postgres", cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}

	// Initialize response cache; the service runs without it when Redis is
	// unreachable.
	responseCache, err := cache.New(cfg.RedisAddr, cfg.CacheTTL, logger)
	if err != nil {
		logger.Warnf("Redis unavailable, response caching disabled: %v", err)
		responseCache = nil
	} else {
		defer responseCache.Close()
	}

	// Initialize layers
	repo := repository.NewRepository(db)
	userSvc := service.NewUserService(repo, logger, cfg)
	financingSvc := service.NewFinancingService(repo, logger)
	contractSvc := service.NewContractService(repo, logger)
	rateClient := benchmark.NewClient(cfg, logger)
	h := handler.NewHandler(userSvc, financingSvc, contractSvc, responseCache, rateClient, logger)

	// Maturity scheduler
	var notifier scheduler.Notifier
	if cfg.SMTPHost != "" {
		notifier = email.NewSender(cfg, logger)
	}
	maturity := scheduler.NewMaturityScheduler(repo, notifier, logger)
	if err := maturity.Start(cfg.CronSpec); err != nil {
		logger.Fatalf("Failed to start maturity scheduler: %v", err)
	}
	defer maturity.Stop()

	// Setup router
	r := mux.NewRouter()
	// Public routes
	r.HandleFunc("/health", h.Health).Methods("GET")
	r.HandleFunc("/signup", h.Signup).Methods("POST")
	r.HandleFunc("/login", h.Login).Methods("POST")
	r.HandleFunc("/rates/benchmark", h.BenchmarkRate).Methods("GET")
	// Protected routes
	authRouter := r.PathPrefix("/").Subrouter()
	authRouter.Use(middleware.AuthMiddleware(cfg))
	authRouter.Use(middleware.ResponseCache(responseCache))
	authRouter.HandleFunc("/user", h.GetUserByEmail).Methods("GET")
	authRouter.HandleFunc("/user/{id}", h.UpdateUser).Methods("PUT")
	authRouter.HandleFunc("/users", h.ListUsers).Methods("GET")
	authRouter.HandleFunc("/cashkicks", h.UserCashkicks).Methods("GET")
	authRouter.HandleFunc("/cashkicks", h.CreateCashkick).Methods("POST")
	authRouter.HandleFunc("/contracts", h.UserContracts).Methods("GET")
	authRouter.HandleFunc("/contracts/all", h.AllContracts).Methods("GET")
	authRouter.HandleFunc("/contracts", h.CreateContracts).Methods("POST")

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		logger.Infof("Starting server on %s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Server failed: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Graceful shutdown failed: %v", err)
	}
}
