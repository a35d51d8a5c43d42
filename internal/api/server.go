package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"unifest/internal/cache"
	"unifest/internal/config"
	"unifest/internal/database"
	"unifest/internal/external"
	"unifest/internal/handlers"
	"unifest/internal/logger"
	"unifest/internal/messaging"
	"unifest/internal/middleware"
	"unifest/internal/repository"
	"unifest/internal/search"
	"unifest/internal/service"

	"github.com/gin-gonic/gin"
)

type Server struct {
	router   *gin.Engine
	config   *config.Config
	db       *database.DB
	nats     *messaging.NATSClient
	es       *search.ElasticsearchClient
	valkey   *cache.ValkeyClient
	services *service.Services
	repos    *repository.Repositories
}

func NewServer(cfg *config.Config) *Server {
	gin.SetMode(cfg.GinMode)

	db, err := database.Connect(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	if err := db.RunMigrations(); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	natsClient, err := messaging.NewNATSClient(cfg.NATS)
	if err != nil {
		logger.Fatal("Failed to connect to NATS", "error", err)
	}

	esClient, err := search.NewElasticsearchClient(config.LoadElasticsearchConfig())
	if err != nil {
		// The API degrades to Postgres listings without search
		logger.Get().Error("Elasticsearch unavailable, search disabled", "error", err)
		esClient = nil
	}

	valkeyClient, err := cache.NewValkeyClient()
	if err != nil {
		logger.Get().Error("Valkey unavailable, auth cache disabled", "error", err)
		valkeyClient = nil
	}

	paymentClient := external.NewPaymentClient(cfg.Payment)

	repos := repository.NewRepositoriesWithSearch(db, esClient)
	services := service.NewServices(repos, natsClient, paymentClient)

	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS())
	router.Use(middleware.Logger())
	router.Use(middleware.Metrics())

	server := &Server{
		router:   router,
		config:   cfg,
		db:       db,
		nats:     natsClient,
		es:       esClient,
		valkey:   valkeyClient,
		services: services,
		repos:    repos,
	}

	server.setupRoutes()

	return server
}

func (s *Server) setupRoutes() {
	h := handlers.NewHandlers(s.services)

	api := s.router.Group("/api")
	api.Use(middleware.BasicAuth(s.repos.Users, s.valkey))
	{
		events := api.Group("/events")
		{
			events.GET("", h.ListEvents)
			events.GET("/:id", h.GetEvent)
			events.GET("/:id/tiers", h.ListTiers)
			events.GET("/:id/teams", h.ListEventTeams)

			organizer := events.Group("")
			organizer.Use(middleware.RequireRole(s.repos.Users, "organizer", "admin"))
			{
				organizer.POST("", h.CreateEvent)
				organizer.PATCH("/:id/status", h.UpdateEventStatus)
				organizer.POST("/:id/tiers", h.CreateTier)
				organizer.GET("/:id/stats", h.GetEventStats)
			}
		}

		registrations := api.Group("/registrations")
		{
			registrations.POST("", h.CreateRegistration)
			registrations.GET("", h.ListRegistrations)
			registrations.GET("/:id", h.GetRegistration)
			registrations.GET("/:id/ticket", h.GetRegistrationTicket)
			registrations.PATCH("/cancel", h.CancelRegistration)
			registrations.POST("/quote", h.QuotePrice)
		}

		teams := api.Group("/teams")
		{
			teams.GET("/:id", h.GetTeam)
			teams.PATCH("/:id", h.UpdateTeam)
			teams.POST("/:id/members", h.AddTeamMember)
			teams.DELETE("/:id/members/:memberId", h.RemoveTeamMember)
		}

		tickets := api.Group("/tickets")
		{
			tickets.GET("/:code", h.GetTicket)
			tickets.GET("/:code/qr", h.GetTicketQR)

			scanner := tickets.Group("")
			scanner.Use(middleware.RequireRole(s.repos.Users, "organizer", "admin"))
			{
				scanner.POST("/verify", h.VerifyTicket)
			}
		}

		payments := api.Group("/payments")
		{
			payments.GET("/success", h.NotifyPaymentCompleted)
			payments.GET("/fail", h.NotifyPaymentFailed)
			payments.POST("/notifications", h.OnPaymentUpdates)
		}
	}

	s.router.GET("/health", s.healthCheck)
	s.router.GET("/metrics", middleware.MetricsHandler())
}

func (s *Server) healthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	status := "ok"
	checks := gin.H{}

	dbHealth := s.db.HealthCheck(ctx)
	checks["database"] = dbHealth
	if dbHealth.Status != "healthy" {
		status = "degraded"
	}

	if s.es != nil {
		if err := s.es.HealthCheck(ctx); err != nil {
			status = "degraded"
			checks["elasticsearch"] = err.Error()
		} else {
			checks["elasticsearch"] = "ok"
		}
	} else {
		checks["elasticsearch"] = "disabled"
	}

	code := http.StatusOK
	if status != "ok" {
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, gin.H{
		"status":  status,
		"service": "unifest-api",
		"version": "1.0.0",
		"checks":  checks,
	})
}

func (s *Server) Run() error {
	addr := fmt.Sprintf(":%s", s.config.Port)
	return s.router.Run(addr)
}

// GetRouter returns the router for testing
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}

// Cleanup closes all external connections
func (s *Server) Cleanup() error {
	if s.nats != nil {
		if err := s.nats.Close(); err != nil {
			logger.Get().Error("Error closing NATS connection", "error", err)
		}
	}

	if s.valkey != nil {
		if err := s.valkey.Close(); err != nil {
			logger.Get().Error("Error closing Valkey connection", "error", err)
		}
	}

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			logger.Get().Error("Error closing database connection", "error", err)
			return err
		}
	}

	return nil
}
