package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"neuroscreen-backend/internal/config"
	"neuroscreen-backend/internal/controller"
	"neuroscreen-backend/internal/repository"
	"neuroscreen-backend/internal/service"
	"neuroscreen-backend/pkg/middleware"
	"neuroscreen-backend/utilities"
)

func main() {
	printStartUpBanner()

	// Optional .env overrides (config path etc.).
	_ = godotenv.Load()
	configPath := os.Getenv("NEUROSCREEN_CONFIG")
	if configPath == "" {
		configPath = "config.xml"
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	utilities.InitLogging(cfg.Logging.Directory, cfg.Logging.MaxSizeMB, cfg.Logging.MaxBackups)

	// Create repositories.
	sessionRepo := repository.NewSessionRepository()

	// Create services.
	screeningService := service.NewScreeningService(utilities.GlobalEventBus)
	reportService := service.NewReportService()

	// Audit trail for completed assessments.
	utilities.GlobalEventBus.Subscribe(utilities.EventAssessmentCompleted, func(data interface{}) {
		event, ok := data.(service.CompletionEvent)
		if !ok {
			utilities.Error("invalid completion event payload: %T", data)
			return
		}
		utilities.Info("assessment completed: session=%s mode=%s disorders=%v",
			event.SessionID, event.Mode, event.Disorders)
	})
	utilities.GlobalEventBus.Subscribe(utilities.EventSessionReset, func(data interface{}) {
		utilities.Info("session reset: %v", data)
	})

	// Sweep idle sessions.
	startSessionJanitor(sessionRepo, cfg.Session)

	// Initialize Gin router.
	r := gin.Default()

	// CORS configuration.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", middleware.SessionHeader},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst))
	if cfg.RequestDump {
		r.Use(middleware.RequestDumpMiddleware())
	}

	controller.RegisterRoutes(r, cfg, sessionRepo, screeningService, reportService)

	addr := fmt.Sprintf("%s:%d", cfg.Context.Host, cfg.Context.Port)
	utilities.Info("listening on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func startSessionJanitor(sessionRepo repository.SessionRepository, cfg config.SessionConfig) {
	timeout := time.Duration(cfg.TimeoutMinutes) * time.Minute
	sweep := time.Duration(cfg.JanitorSweepSecs) * time.Second
	ticker := time.NewTicker(sweep)
	go func() {
		for range ticker.C {
			if purged := sessionRepo.PurgeExpired(timeout); purged > 0 {
				utilities.Info("purged %d expired session(s), %d active", purged, sessionRepo.Count())
			}
		}
	}()
}

func printStartUpBanner() {
	myFigure := figure.NewFigure("NEUROSCREEN", "", true)
	myFigure.Print()

	fmt.Println("======================================================")
	fmt.Printf("NEUROSCREEN API (v%s)\n\n", "1.0.0")
}
