// main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/questdeck/questdeck-backend/internal/api/handlers"
	"github.com/questdeck/questdeck-backend/internal/api/middleware"
	"github.com/questdeck/questdeck-backend/internal/config"
	"github.com/questdeck/questdeck-backend/internal/cron"
	"github.com/questdeck/questdeck-backend/internal/db"
	"github.com/questdeck/questdeck-backend/internal/email"
	"github.com/questdeck/questdeck-backend/internal/genai"
	"github.com/questdeck/questdeck-backend/internal/repository"
	"github.com/questdeck/questdeck-backend/internal/seed"
	"github.com/questdeck/questdeck-backend/internal/service"
	"github.com/questdeck/questdeck-backend/internal/socket"
)

func main() {
	// ============================================
	// Load environment variables
	// ============================================
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// ============================================
	// Run Database Migrations FIRST
	// ============================================
	log.Println("Running database migrations...")
	migrationsPath := "./internal/db/migrations"
	if err := db.RunMigrations(cfg.DatabaseURL, migrationsPath); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Println("Database migrations completed")

	// ============================================
	// Initialize PostgreSQL (pgxpool + sqlx)
	// ============================================
	pgDB, err := db.NewPostgresDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create pgx pool: %v", err)
	}
	defer pgDB.Close()

	sqlDB, err := sqlx.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to open sql DB: %v", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		log.Fatalf("Failed to ping sql DB: %v", err)
	}

	// ============================================
	// Initialize Repositories
	// ============================================
	repos := repository.NewRepositories(pgDB.Pool, sqlDB)

	// ============================================
	// Initialize Redis (optional)
	// ============================================
	var redisDB *db.RedisDB
	if cfg.RedisURL != "" {
		redisDB, err = db.NewRedisDB(cfg.RedisURL)
		if err != nil {
			log.Printf("Failed to connect to Redis: %v (continuing without cache)", err)
		} else {
			defer redisDB.Close()
			log.Println("Redis cache enabled")
		}
	}

	// ============================================
	// Initialize Email Service (optional)
	// ============================================
	var emailSvc *email.Service
	if cfg.SMTPHost != "" {
		emailSvc = email.NewService(&email.Config{
			Host:        cfg.SMTPHost,
			Port:        cfg.SMTPPort,
			User:        cfg.SMTPUser,
			Password:    cfg.SMTPPassword,
			From:        cfg.SMTPFrom,
			FromName:    cfg.SMTPFromName,
			UseTLS:      cfg.SMTPUseTLS,
			FrontendURL: cfg.FrontendURL,
		})
		log.Println("Email service initialized")
	} else {
		log.Println("Email not configured (SMTP_HOST not set)")
	}

	// ============================================
	// Initialize Job Generator (optional)
	// ============================================
	var generator genai.JobGenerator
	if cfg.GeneratorURL != "" {
		generator = genai.NewClient(cfg.GeneratorURL, cfg.GeneratorAPIKey)
		log.Println("Job generator initialized")
	} else {
		log.Println("Job generator not configured (GENERATOR_URL not set)")
	}

	// ============================================
	// Initialize WebSocket Hub
	// ============================================
	hub := socket.NewHub()
	go hub.Run()
	broadcaster := socket.NewBroadcaster(hub)

	// ============================================
	// Seed Data (for development)
	// ============================================
	if cfg.Environment != "production" {
		seed.SeedData(repos)
	}

	// ============================================
	// Initialize All Services
	// ============================================
	services := service.NewServices(&service.ServiceDeps{
		Config:      cfg,
		Repos:       repos,
		EmailSvc:    emailSvc,
		Generator:   generator,
		Broadcaster: broadcaster,
		Cache:       redisDB,
	})

	// WebSocket handler checks poll tokens straight against the poll
	// service, since poll viewers carry no account.
	wsHandler := socket.NewHandler(hub, services.Poll.IsLive)

	h := handlers.NewHandlers(services)

	// ============================================
	// Initialize Cron Scheduler
	// ============================================
	cronScheduler := cron.NewScheduler(repos.InvitationRepo, repos.InviteLinkRepo)
	cronScheduler.Start()
	defer cronScheduler.Stop()

	// ============================================
	// Create Gin Router
	// ============================================
	r := gin.Default()
	r.Use(middleware.RequestLogger())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.FrontendURL, "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":     "healthy",
			"timestamp":  time.Now(),
			"database":   "connected",
			"cache":      cacheStatus(redisDB),
			"ws_clients": hub.GetConnectedClientsCount(),
		})
	})

	api := r.Group("/api")
	{
		// ============================================
		// Public routes (no auth required)
		// ============================================
		poll := api.Group("/poll")
		{
			poll.GET("/:token", h.Poll.View)
			poll.POST("/:token/votes", h.Poll.Vote)
			poll.GET("/:token/ws", wsHandler.HandleWebSocket)
		}

		// ============================================
		// Protected routes
		// ============================================
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(cfg.AuthSecret))
		{
			// Self-service join flows
			protected.POST("/invitations/accept", h.Invitation.Accept)
			protected.POST("/invite-links/join", h.InviteLink.Consume)

			campaigns := protected.Group("/campaigns")
			{
				campaigns.GET("", h.Campaign.List)
				campaigns.POST("", h.Campaign.Create)
				campaigns.GET("/:id", h.Campaign.Get)
				campaigns.PUT("/:id", h.Campaign.Update)
				campaigns.DELETE("/:id", h.Campaign.Delete)

				// Members
				campaigns.GET("/:id/members", h.Member.List)
				campaigns.POST("/:id/members", h.Invitation.AddMember)
				campaigns.PATCH("/:id/members", h.Member.ChangeRole)
				campaigns.DELETE("/:id/members", h.Member.Remove)

				// The caller's own membership
				campaigns.PATCH("/:id/members/me", h.Member.UpdateSelf)
				campaigns.DELETE("/:id/members/me", h.Member.Leave)

				// Direct invitations
				campaigns.GET("/:id/invitations", h.Invitation.List)
				campaigns.POST("/:id/invitations/:invId/resend", h.Invitation.Resend)
				campaigns.DELETE("/:id/invitations/:invId", h.Invitation.Revoke)

				// Invite links
				campaigns.GET("/:id/invite-links", h.InviteLink.List)
				campaigns.POST("/:id/invite-links", h.InviteLink.Create)
				campaigns.DELETE("/:id/invite-links/:linkId", h.InviteLink.Revoke)

				// Join requests
				campaigns.GET("/:id/join-requests", h.JoinRequest.List)
				campaigns.PATCH("/:id/join-requests/:reqId", h.JoinRequest.Review)

				// Organizations
				campaigns.GET("/:id/organizations", h.Organization.List)
				campaigns.POST("/:id/organizations", h.Organization.Create)
				campaigns.PUT("/:id/organizations/:orgId", h.Organization.Update)
				campaigns.DELETE("/:id/organizations/:orgId", h.Organization.Delete)

				// Mission types
				campaigns.GET("/:id/mission-types", h.MissionType.List)
				campaigns.POST("/:id/mission-types", h.MissionType.Create)
				campaigns.DELETE("/:id/mission-types/:typeId", h.MissionType.Delete)

				// Jobs
				campaigns.GET("/:id/jobs", h.Job.List)
				campaigns.POST("/:id/jobs/generate", h.Job.Generate)
				campaigns.GET("/:id/jobs/:jobId", h.Job.Get)
				campaigns.PATCH("/:id/jobs/:jobId/status", h.Job.UpdateStatus)
				campaigns.DELETE("/:id/jobs/:jobId", h.Job.Delete)

				// Poll management
				campaigns.POST("/:id/poll", h.Poll.Open)
				campaigns.DELETE("/:id/poll", h.Poll.Close)
			}
		}
	}

	// ============================================
	// Start Server with graceful shutdown
	// ============================================
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		log.Printf("Server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

func cacheStatus(redisDB *db.RedisDB) string {
	if redisDB == nil {
		return "disabled"
	}
	return "enabled"
}
