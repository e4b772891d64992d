package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"

	"github.com/acff/debt-engine/internal/config"
	"github.com/acff/debt-engine/internal/notify"
	"github.com/acff/debt-engine/internal/repository"
	"github.com/acff/debt-engine/internal/service"
)

func main() {
	log.Println("Starting debt scheduler...")

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	loanRepo := repository.NewLoanRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	debtorRepo := repository.NewDebtorRepository(db)
	userRepo := repository.NewUserRepository(db)

	reportCache := service.NewReportCache(redisClient, cfg.GetReportTTL())
	loanService := service.NewLoanService(loanRepo, paymentRepo, debtorRepo, userRepo, reportCache)
	messenger := notify.NewGatewayClient(cfg.Notify.GatewayURL, cfg.GetNotifyTimeout())
	notifier := service.NewNotifier(loanRepo, debtorRepo, loanService, messenger, cfg.Notify.ReminderLeadDays)

	c := cron.New(cron.WithSeconds(), cron.WithLocation(cfg.Scheduler.Location()))
	setupCronJobs(c, cfg, notifier)

	c.Start()
	log.Println("Scheduler started successfully")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down scheduler...")
	<-c.Stop().Done()
	log.Println("Scheduler stopped")
}

func setupCronJobs(c *cron.Cron, cfg *config.Config, notifier *service.Notifier) {
	// Morning sweep: remind debtors whose loans come due soon.
	_, err := c.AddFunc(cfg.Scheduler.ReminderSpec, func() {
		log.Println("Running due-soon reminder sweep...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()

		if err := notifier.SendDueSoonReminders(ctx, time.Now()); err != nil {
			log.Printf("Reminder sweep failed: %v", err)
		}
	})
	if err != nil {
		log.Fatalf("Error scheduling reminder sweep: %v", err)
	}

	// Late-morning sweep: flag overdue loans and escalate to debtors.
	_, err = c.AddFunc(cfg.Scheduler.OverdueSpec, func() {
		log.Println("Running overdue escalation sweep...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()

		if err := notifier.EscalateOverdue(ctx, time.Now()); err != nil {
			log.Printf("Overdue sweep failed: %v", err)
		}
	})
	if err != nil {
		log.Fatalf("Error scheduling overdue sweep: %v", err)
	}

	log.Println("Cron jobs scheduled successfully")
}
