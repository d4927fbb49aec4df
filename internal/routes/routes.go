package routes

import (
	"fmt"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"patientor/internal/config"
	"patientor/internal/handlers"
	"patientor/internal/middleware"
	"patientor/internal/repository"
	"patientor/internal/utils"
)

// NewRouter builds the gin engine with logging, recovery, CORS and the API
// routes.
func NewRouter(repo repository.Repository, cfg *config.Config, logger zerolog.Logger) (*gin.Engine, error) {
	if err := utils.RegisterBindingValidations(); err != nil {
		return nil, fmt.Errorf("register validations: %w", err)
	}

	router := gin.New()
	router.Use(middleware.RequestLogger(logger), gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Origin}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	router.Use(cors.New(corsConfig))

	SetupRoutes(router, repo, cfg, logger)
	return router, nil
}

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, repo repository.Repository, cfg *config.Config, logger zerolog.Logger) {
	patientHandler := handlers.NewPatientHandler(repo, logger)
	diagnosisHandler := handlers.NewDiagnosisHandler(repo, logger)

	api := router.Group("/api")
	api.GET("/ping", handlers.Ping)

	private := api.Group("")
	writers := []gin.HandlerFunc{}
	if cfg.AuthEnabled() {
		private.Use(middleware.AuthMiddleware(cfg.JWTSecret))
		writers = append(writers, middleware.RoleAuthMiddleware(utils.RoleClinician))
	}

	patientRoutes := private.Group("/patients")
	{
		patientRoutes.GET("", patientHandler.GetPatients)
		patientRoutes.GET("/:id", patientHandler.GetPatientByID)
		patientRoutes.POST("", append(writers, patientHandler.CreatePatient)...)
		patientRoutes.POST("/:id/entries", append(writers, patientHandler.AddEntry)...)
	}

	private.GET("/diagnoses", diagnosisHandler.GetDiagnoses)

	// Simple health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP"})
	})
}
