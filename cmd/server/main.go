package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/acff/debt-engine/internal/config"
	"github.com/acff/debt-engine/internal/handler"
	"github.com/acff/debt-engine/internal/repository"
	"github.com/acff/debt-engine/internal/service"
	"github.com/acff/debt-engine/pkg/response"
)

func main() {
	// Load .env if present, then configuration
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize database
	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Initialize Redis
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	// Initialize repositories
	loanRepo := repository.NewLoanRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	debtorRepo := repository.NewDebtorRepository(db)
	userRepo := repository.NewUserRepository(db)

	// Initialize services
	reportCache := service.NewReportCache(redisClient, cfg.GetReportTTL())
	loanService := service.NewLoanService(loanRepo, paymentRepo, debtorRepo, userRepo, reportCache)
	paymentService := service.NewPaymentService(paymentRepo, loanService, reportCache)
	debtorService := service.NewDebtorService(debtorRepo, loanRepo)
	userService := service.NewUserService(userRepo, reportCache)
	portfolioService := service.NewPortfolioService(userRepo, loanRepo, paymentRepo, reportCache)

	// Initialize handlers
	loanHandler := handler.NewLoanHandler(loanService)
	paymentHandler := handler.NewPaymentHandler(paymentService)
	debtorHandler := handler.NewDebtorHandler(debtorService)
	userHandler := handler.NewUserHandler(userService)
	dashboardHandler := handler.NewDashboardHandler(portfolioService)
	healthHandler := handler.NewHealthHandler(db, redisClient)

	router := setupRoutes(loanHandler, paymentHandler, debtorHandler, userHandler, dashboardHandler, healthHandler)

	server := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("Server starting on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

func setupRoutes(
	loanHandler *handler.LoanHandler,
	paymentHandler *handler.PaymentHandler,
	debtorHandler *handler.DebtorHandler,
	userHandler *handler.UserHandler,
	dashboardHandler *handler.DashboardHandler,
	healthHandler *handler.HealthHandler,
) *mux.Router {
	router := mux.NewRouter()
	router.Use(response.LoggingMiddleware, response.CORSMiddleware)

	// Health check
	router.HandleFunc("/health", healthHandler.Health).Methods("GET")
	router.HandleFunc("/health/ready", healthHandler.Ready).Methods("GET")

	// API routes
	api := router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/users", userHandler.Create).Methods("POST")
	api.HandleFunc("/users/{userId}", userHandler.Get).Methods("GET")
	api.HandleFunc("/users/{userId}/capital", userHandler.UpdateCapital).Methods("PUT")
	api.HandleFunc("/users/{userId}/loans", loanHandler.ListByUser).Methods("GET")
	api.HandleFunc("/users/{userId}/dashboard", dashboardHandler.Report).Methods("GET")

	api.HandleFunc("/debtors", debtorHandler.Create).Methods("POST")
	api.HandleFunc("/debtors", debtorHandler.List).Methods("GET")
	api.HandleFunc("/debtors/phone/{phone}", debtorHandler.GetByPhone).Methods("GET")
	api.HandleFunc("/debtors/{debtorId}", debtorHandler.Get).Methods("GET")
	api.HandleFunc("/debtors/{debtorId}", debtorHandler.Update).Methods("PUT")
	api.HandleFunc("/debtors/{debtorId}", debtorHandler.Delete).Methods("DELETE")
	api.HandleFunc("/debtors/{debtorId}/loans", debtorHandler.Loans).Methods("GET")

	api.HandleFunc("/loans", loanHandler.Create).Methods("POST")
	api.HandleFunc("/loans/{loanId}", loanHandler.Get).Methods("GET")
	api.HandleFunc("/loans/{loanId}", loanHandler.Update).Methods("PUT")
	api.HandleFunc("/loans/{loanId}", loanHandler.Delete).Methods("DELETE")
	api.HandleFunc("/loans/{loanId}/payments", paymentHandler.ListByLoan).Methods("GET")

	api.HandleFunc("/payments", paymentHandler.Create).Methods("POST")
	api.HandleFunc("/payments/{paymentId}", paymentHandler.Get).Methods("GET")
	api.HandleFunc("/payments/{paymentId}", paymentHandler.Update).Methods("PUT")
	api.HandleFunc("/payments/{paymentId}", paymentHandler.Delete).Methods("DELETE")

	return router
}
