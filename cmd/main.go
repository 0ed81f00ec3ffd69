package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/Sadeghizad/Form-creator/config"
	"github.com/Sadeghizad/Form-creator/database"
	builderctrl "github.com/Sadeghizad/Form-creator/internal/controller/builder"
	respondentctrl "github.com/Sadeghizad/Form-creator/internal/controller/respondent"
	"github.com/Sadeghizad/Form-creator/internal/logger"
	"github.com/Sadeghizad/Form-creator/internal/middleware"
	"github.com/Sadeghizad/Form-creator/internal/model"
	"github.com/Sadeghizad/Form-creator/internal/repository"
	"github.com/Sadeghizad/Form-creator/internal/service"
	"github.com/Sadeghizad/Form-creator/internal/worker"
	"github.com/Sadeghizad/Form-creator/internal/ws"
)

// @title Form Creator API
// @version 1.0
// @description Build forms out of reusable processes, questions and options, collect validated answers and aggregate live reports.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger.Init()

	app := fx.New(
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			NewGinEngine,
			NewWorkerPool,
			ws.NewHub,
		),

		fx.Provide(
			repository.NewFormRepository,
			repository.NewProcessRepository,
			repository.NewQuestionRepository,
			repository.NewOptionRepository,
			repository.NewAnswerRepository,
			repository.NewCategoryRepository,
			repository.NewViewRepository,
			repository.NewReportRepository,
			repository.NewUserRepository,
		),

		fx.Provide(
			func(cfg *config.Config, pr repository.ProcessRepository, qr repository.QuestionRepository, or repository.OptionRepository) service.OrderResolverService {
				ttl := time.Duration(cfg.Report.CacheTTLSecs) * time.Second
				return service.NewOrderResolverService(pr, qr, or, ttl)
			},
			service.NewFormService,
			service.NewProcessService,
			service.NewQuestionService,
			service.NewOptionService,
			service.NewCategoryService,
			service.NewProgressService,
			service.NewAnswerService,
			func(
				cfg *config.Config,
				reportRepo repository.ReportRepository,
				answerRepo repository.AnswerRepository,
				questionRepo repository.QuestionRepository,
				formRepo repository.FormRepository,
				processRepo repository.ProcessRepository,
				userRepo repository.UserRepository,
				viewRepo repository.ViewRepository,
				pool *worker.Pool,
				hub *ws.Hub,
			) service.ReportService {
				return service.NewReportService(reportRepo, answerRepo, questionRepo, formRepo, processRepo, userRepo, viewRepo, pool, hub, cfg.Report.BatchSize)
			},
			service.NewSuggestService,
		),

		fx.Provide(
			builderctrl.NewBuilderController,
			builderctrl.NewReportController,
			respondentctrl.NewRespondentController,
		),

		fx.Invoke(AutoMigrateDB),
		fx.Invoke(RegisterRoutesAndStartServer),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine() *gin.Engine {
	r := gin.New()

	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// URL: http://localhost:PORT/swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// NewWorkerPool builds the background fold pool and ties its drain to the
// fx shutdown sequence.
func NewWorkerPool(lc fx.Lifecycle, cfg *config.Config) *worker.Pool {
	pool := worker.NewPool(context.Background(), cfg.Report.WorkerCount, cfg.Report.QueueSize)
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			pool.Shutdown(ctx)
			return nil
		},
	})
	return pool
}

func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	builderCtrl *builderctrl.BuilderController,
	reportCtrl *builderctrl.ReportController,
	respondentCtrl *respondentctrl.RespondentController,
) {
	api := router.Group("/api/v1")
	api.Use(middleware.JWTAuth(cfg.JWTSecret))
	{
		builderGroup := api.Group("/builder")
		builderCtrl.RegisterRoutes(builderGroup)
		reportCtrl.RegisterRoutes(builderGroup)

		respondentCtrl.RegisterRoutes(api)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Form creator server starting on port %s", cfg.Server.Port)
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
		&model.Category{},
		&model.Option{},
		&model.Question{},
		&model.Process{},
		&model.Form{},
		&model.Answer{},
		&model.FormView{},
		&model.QuestionView{},
		&model.Report{},
		&model.AdminReport{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
