package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"homesafe/safety-portal-backend/internal/alerts"
	"homesafe/safety-portal-backend/internal/auth"
	"homesafe/safety-portal-backend/internal/config"
	"homesafe/safety-portal-backend/internal/contacts"
	"homesafe/safety-portal-backend/internal/datesession"
	"homesafe/safety-portal-backend/internal/imaging"
	"homesafe/safety-portal-backend/internal/notifications/websocket"
	"homesafe/safety-portal-backend/internal/safetycheck"
)

func main() {
	// Initialize logger
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	// .env is optional, real deployments set the environment directly
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.LoadConfig("config.json")
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	ctx := context.Background()

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.GetDatabaseURL()), &gorm.Config{})
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}

	// Repositories (each migrates its own tables)
	authRepo, err := auth.NewRepository(db)
	if err != nil {
		logger.Fatal("Failed to initialize auth repository", zap.Error(err))
	}
	contactRepo, err := contacts.NewRepository(db)
	if err != nil {
		logger.Fatal("Failed to initialize contacts repository", zap.Error(err))
	}
	checkRepo, err := safetycheck.NewRepository(db)
	if err != nil {
		logger.Fatal("Failed to initialize safety check repository", zap.Error(err))
	}
	sessionRepo, err := datesession.NewRepository(db)
	if err != nil {
		logger.Fatal("Failed to initialize session repository", zap.Error(err))
	}

	// Services
	authService := auth.NewService(authRepo, cfg.Security)
	contactService := contacts.NewService(contactRepo)
	wsManager := websocket.NewManager(logger)

	hoster, err := imaging.NewS3Hoster(ctx, cfg.Imaging)
	if err != nil {
		logger.Fatal("Failed to initialize photo hosting", zap.Error(err))
	}

	gateway := safetycheck.NewSerpClient(cfg.Search)
	checkService := safetycheck.NewService(gateway, hoster, checkRepo, cfg.Search, logger)

	alertService, err := buildAlertService(ctx, cfg, contactRepo, authService, wsManager, logger)
	if err != nil {
		logger.Fatal("Failed to initialize alert service", zap.Error(err))
	}

	sessionService := datesession.NewService(sessionRepo, wsManager)

	// Overdue-session watchdog
	watchdog := datesession.NewWatchdog(sessionRepo, alertService, wsManager, logger)
	if err := watchdog.Start(); err != nil {
		logger.Fatal("Failed to start watchdog", zap.Error(err))
	}

	// Setup Router
	router := gin.Default()

	// CORS Middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	authHandler := auth.NewHandler(authService)

	// Register Routes
	api := router.Group("/api/v1")
	auth.RegisterPublicRoutes(api, authHandler)

	protected := api.Group("")
	protected.Use(auth.Middleware(authService))
	{
		auth.RegisterProtectedRoutes(protected, authHandler)
		contacts.NewHandler(contactService).RegisterRoutes(protected)
		safetycheck.NewHandler(checkService, checkRepo, logger).RegisterRoutes(protected)
		alerts.NewHandler(alertService, logger).RegisterRoutes(protected)
		datesession.NewHandler(sessionService).RegisterRoutes(protected)
	}

	// Dashboard event stream; browsers cannot set headers on the
	// handshake, so the token rides in the query string
	router.GET("/api/v1/ws", func(c *gin.Context) {
		userID, err := authService.ParseToken(c.Query("token"))
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}
		if err := wsManager.HandleConnection(c.Writer, c.Request, userID); err != nil {
			logger.Warn("websocket upgrade failed", zap.Error(err))
		}
	})

	// Health Check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
		})
	})

	// Start Server
	srv := &http.Server{
		Addr:         cfg.Server.GetServerAddr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen failed", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	watchdog.Stop()
	wsManager.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}

// buildAlertService wires the configured SMS provider plus the optional
// voice and email channels
func buildAlertService(ctx context.Context, cfg *config.Config, contactRepo contacts.Repository, users *auth.Service, wsManager *websocket.Manager, logger *zap.Logger) (*alerts.Service, error) {
	var (
		sms    alerts.SMSSender
		caller alerts.Caller
	)

	switch cfg.Alerts.SMSProvider {
	case "sns":
		channel, err := alerts.NewSNSChannel(ctx, cfg.Alerts.SNSRegion)
		if err != nil {
			return nil, err
		}
		sms = channel
	case "twilio", "":
		channel := alerts.NewTwilioChannel(cfg.Alerts)
		sms = channel
		caller = channel
	default:
		return nil, fmt.Errorf("unknown sms provider %q", cfg.Alerts.SMSProvider)
	}

	var email alerts.EmailSender
	if cfg.Alerts.EmailFrom != "" {
		channel, err := alerts.NewSESChannel(ctx, cfg.Alerts.SESRegion, cfg.Alerts.EmailFrom)
		if err != nil {
			return nil, err
		}
		email = channel
	}

	return alerts.NewService(contactRepo, users, sms, caller, email, wsManager, logger), nil
}
