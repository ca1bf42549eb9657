package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/questline/backend/config"
	"github.com/questline/backend/database"
	adminctrl "github.com/questline/backend/internal/controller/admin"
	userctrl "github.com/questline/backend/internal/controller/user"
	"github.com/questline/backend/internal/logger"
	"github.com/questline/backend/internal/model"
	"github.com/questline/backend/internal/repository"
	"github.com/questline/backend/internal/service"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title Questline Adaptive Progress & Diagnostic API
// @version 1.0
// @description Placement diagnostics, mission progress tracking, XP/leveling and achievements for a gamified learning platform.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
func main() {
	logger.Init()

	app := fx.New(
		// Core Application Components
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			NewGinEngine,
		),

		// Repositories Layer
		fx.Provide(
			repository.NewLearnerRepository,
			repository.NewQuestionRepository,
			repository.NewMissionRepository,
			repository.NewProgressRepository,
			repository.NewAreaResultRepository,
			repository.NewAchievementRepository,
		),

		// Services Layer
		fx.Provide(
			service.NewScoringService,
			service.NewGeminiFeedbackService,
			service.NewGamificationService,
			service.NewDiagnosticService,
			service.NewProgressService,
			service.NewLearnerService,
			service.NewMissionCatalogService,
			service.NewAdminCatalogService,
		),

		// API Controllers Layer
		fx.Provide(
			adminctrl.NewAdminCatalogController,
			userctrl.NewDiagnosticController,
			userctrl.NewMissionController,
			userctrl.NewLearnerController,
		),

		fx.Invoke(RegisterRoutesAndStartServer),
		fx.Invoke(AutoMigrateDB),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine() *gin.Engine {
	gin.SetMode(gin.DebugMode)

	r := gin.New()

	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("user_agent", param.Request.UserAgent()).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"}, // Be more specific in production
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Swagger UI at /swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	adminCatalogCtrl *adminctrl.AdminCatalogController,
	diagnosticCtrl *userctrl.DiagnosticController,
	missionCtrl *userctrl.MissionController,
	learnerCtrl *userctrl.LearnerController,
) {
	// Admin Routes (prefixed with /api/v1/admin)
	adminAPIGroup := router.Group("/api/v1/admin")
	{
		adminAPIGroup.POST("/learners", adminCatalogCtrl.CreateLearner)
		adminAPIGroup.POST("/questions", adminCatalogCtrl.CreateQuestion)
		adminAPIGroup.POST("/missions", adminCatalogCtrl.CreateMission)
		adminAPIGroup.POST("/achievements", adminCatalogCtrl.CreateAchievement)
	}

	// User Routes (prefixed with /api/v1)
	userAPIGroup := router.Group("/api/v1")
	{
		// Learner profile and progress
		userAPIGroup.GET("/learners/:learner_id", learnerCtrl.GetProfile)
		userAPIGroup.GET("/learners/:learner_id/progress", missionCtrl.GetLearnerProgress)

		// Diagnostic
		userAPIGroup.POST("/learners/:learner_id/diagnostic", diagnosticCtrl.StartDiagnostic)
		userAPIGroup.GET("/learners/:learner_id/diagnostic/results", diagnosticCtrl.GetDiagnosticHistory)
		userAPIGroup.POST("/diagnostic/:session_id/answers", diagnosticCtrl.SubmitAnswer)
		userAPIGroup.POST("/diagnostic/:session_id/advance", diagnosticCtrl.AdvanceDiagnostic)

		// Missions and attempts
		userAPIGroup.GET("/missions", missionCtrl.ListMissions)
		userAPIGroup.GET("/missions/:mission_id", missionCtrl.GetMissionDetails)
		userAPIGroup.GET("/learners/:learner_id/recommended-missions", missionCtrl.GetRecommendedMissions)
		userAPIGroup.POST("/learners/:learner_id/missions/:mission_id/start", missionCtrl.StartMission)
		userAPIGroup.POST("/learners/:learner_id/missions/:mission_id/complete", missionCtrl.CompleteMission)
	}

	// HTTP Server Setup and Lifecycle
	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Questline API server starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.Learner{},
		&model.DiagnosticQuestion{},
		&model.AreaResult{},
		&model.Mission{},
		&model.MissionStep{},
		&model.ProgressRecord{},
		&model.Achievement{},
		&model.AchievementGrant{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
