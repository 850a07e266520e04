package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/sahajm/Civet/config"
	"github.com/sahajm/Civet/database"
	adminctrl "github.com/sahajm/Civet/internal/controller/admin"
	"github.com/sahajm/Civet/internal/controller/middleware"
	userctrl "github.com/sahajm/Civet/internal/controller/user"
	"github.com/sahajm/Civet/internal/logger"
	"github.com/sahajm/Civet/internal/model"
	"github.com/sahajm/Civet/internal/repository"
	"github.com/sahajm/Civet/internal/service"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title Online Examination API
// @version 1.0
// @description Backend for timed multiple-choice tests: question bank, test scheduling, one-shot submissions, scoring and rankings.
// @contact.name API Support
// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
func main() {
	logger.Init()

	app := fx.New(
		// Core application components
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			NewGinEngine,
		),

		// Repositories layer
		fx.Provide(
			repository.NewQuestionRepository,
			repository.NewTagRepository,
			repository.NewTestRepository,
			repository.NewResultRepository,
			repository.NewUserRepository,
		),

		// Services layer
		fx.Provide(
			service.NewQuestionService,
			service.NewTagService,
			service.NewTestService,
			service.NewSubmissionService,
			service.NewResultService,
			service.NewUserService,
		),

		// API controllers layer
		fx.Provide(
			adminctrl.NewAdminTestController,
			adminctrl.NewAdminQuestionController,
			adminctrl.NewAdminTagController,
			userctrl.NewUserTestController,
			userctrl.NewUserResultController,
		),

		fx.Invoke(AutoMigrateDB),
		fx.Invoke(SeedAdminUser),
		fx.Invoke(RegisterRoutesAndStartServer),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// Request logging through the global zerolog instance
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
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-User-Id", "X-User-Role"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Swagger UI at /swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages the server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	adminTestCtrl *adminctrl.AdminTestController,
	adminQuestionCtrl *adminctrl.AdminQuestionController,
	adminTagCtrl *adminctrl.AdminTagController,
	userTestCtrl *userctrl.UserTestController,
	userResultCtrl *userctrl.UserResultController,
) {
	// Admin routes: identity required plus the admin role
	adminAPIGroup := router.Group("/api/v1/admin", middleware.Authenticated(), middleware.RequireAdmin())
	{
		testsGroup := adminAPIGroup.Group("/tests")
		testsGroup.POST("", adminTestCtrl.CreateTest)
		testsGroup.GET("", adminTestCtrl.GetMyTests)
		testsGroup.PUT("/:test_id", adminTestCtrl.UpdateTest)
		testsGroup.DELETE("/:test_id", adminTestCtrl.DeleteTest)
		testsGroup.GET("/:test_id/full", adminTestCtrl.GetTestFull)

		questionsGroup := adminAPIGroup.Group("/questions")
		questionsGroup.POST("", adminQuestionCtrl.CreateQuestions)
		questionsGroup.GET("", adminQuestionCtrl.ListQuestions)
		questionsGroup.GET("/tag/:tag_id", adminQuestionCtrl.ListQuestionsByTag)
		questionsGroup.GET("/:uid", adminQuestionCtrl.GetQuestion)
		questionsGroup.PUT("/:uid", adminQuestionCtrl.UpdateQuestion)
		questionsGroup.DELETE("/:uid", adminQuestionCtrl.DeleteQuestion)

		tagsGroup := adminAPIGroup.Group("/tags")
		tagsGroup.POST("", adminTagCtrl.CreateTag)
		tagsGroup.GET("", adminTagCtrl.ListTags)
		tagsGroup.PUT("/:id", adminTagCtrl.UpdateTag)
		tagsGroup.DELETE("/:id", adminTagCtrl.DeleteTag)
	}

	// Student-facing routes: identity required
	userAPIGroup := router.Group("/api/v1", middleware.Authenticated())
	{
		userAPIGroup.GET("/tests", userTestCtrl.GetActiveTests)
		userAPIGroup.GET("/tests/available", userTestCtrl.GetAvailableTests)
		userAPIGroup.GET("/tests/:test_id", userTestCtrl.GetTestDetails)
		userAPIGroup.POST("/tests/:test_id/submit", userTestCtrl.SubmitAnswers)

		userAPIGroup.GET("/results/student", userResultCtrl.GetMyResults)
		userAPIGroup.GET("/results/student/test/:test_id", userResultCtrl.GetMyTestResult)
		userAPIGroup.GET("/results/:id", userResultCtrl.GetResultByID)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Examination API server starting on port %s", cfg.Server.Port)
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
		&model.User{},
		&model.Tag{},
		&model.Question{},
		&model.Option{},
		&model.Test{},
		&model.TestQuestion{},
		&model.Result{},
		&model.ResultAnswer{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}

// SeedAdminUser makes sure an administrator account exists before the
// server starts accepting requests.
func SeedAdminUser(userService service.UserService, cfg *config.Config) error {
	return userService.InitializeAdmin(cfg)
}
