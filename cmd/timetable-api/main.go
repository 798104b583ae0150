package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/acadhub/faculty-timetable-api/api/swagger"
	"github.com/acadhub/faculty-timetable-api/internal/handler"
	"github.com/acadhub/faculty-timetable-api/internal/middleware"
	"github.com/acadhub/faculty-timetable-api/internal/models"
	"github.com/acadhub/faculty-timetable-api/internal/repository"
	"github.com/acadhub/faculty-timetable-api/internal/service"
	"github.com/acadhub/faculty-timetable-api/pkg/cache"
	"github.com/acadhub/faculty-timetable-api/pkg/config"
	"github.com/acadhub/faculty-timetable-api/pkg/database"
	"github.com/acadhub/faculty-timetable-api/pkg/export"
	"github.com/acadhub/faculty-timetable-api/pkg/jobs"
	"github.com/acadhub/faculty-timetable-api/pkg/logger"
	corsmiddleware "github.com/acadhub/faculty-timetable-api/pkg/middleware/cors"
	reqidmiddleware "github.com/acadhub/faculty-timetable-api/pkg/middleware/requestid"
)

// @title Faculty Timetable API
// @version 1.0.0
// @description Schedule, invigilation, leave and messaging backend for a college faculty portal.
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to redis", "error", err)
	}
	defer redisClient.Close()

	validate := validator.New()

	// Repositories.
	userRepo := repository.NewUserRepository(db)
	templateRepo := repository.NewTemplateRepository(db)
	invigilationRepo := repository.NewInvigilationRepository(db)
	leaveRepo := repository.NewLeaveRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)

	// Services.
	metricsSvc := service.NewMetricsService()
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Dashboard.CacheTTL, logr, cfg.Dashboard.Enabled)
	authSvc := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		Secret:     cfg.JWT.Secret,
		Expiration: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	userSvc := service.NewUserService(userRepo, validate, logr)
	templateSvc := service.NewTemplateService(templateRepo, validate, logr)
	invigilationSvc := service.NewInvigilationService(invigilationRepo, validate, logr)
	leaveSvc := service.NewLeaveService(leaveRepo, validate, logr)
	rosterSvc := service.NewRosterService(templateRepo, metricsSvc, logr, service.RosterServiceConfig{
		AdminWindowDays:   cfg.Roster.AdminWindowDays,
		FacultyWindowDays: cfg.Roster.FacultyWindowDays,
	})
	dashboardSvc := service.NewDashboardService(rosterSvc, templateRepo, leaveRepo, invigilationRepo, messageRepo, cacheSvc, cfg.Dashboard.CacheTTL, logr)
	exportSvc := service.NewExportService(rosterSvc, export.NewCSVExporter(), export.NewPDFExporter(), logr)
	importSvc := service.NewImportService(templateSvc, logr)
	messageSvc := service.NewMessageService(messageRepo, userRepo, validate, logr, cfg.Messaging.WorkerRetries)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var deliveryQueue *jobs.Queue
	if cfg.Messaging.Enabled {
		deliveryQueue = jobs.NewQueue("message-delivery", messageSvc.HandleDelivery, jobs.QueueConfig{
			Workers:    cfg.Messaging.WorkerConcurrency,
			MaxRetries: cfg.Messaging.WorkerRetries,
			RetryDelay: cfg.Messaging.RetryDelay,
			Logger:     logr,
		})
		messageSvc.AttachQueue(deliveryQueue)
		deliveryQueue.Start(ctx)
		defer deliveryQueue.Stop()
	}

	// Handlers.
	authHandler := handler.NewAuthHandler(authSvc)
	userHandler := handler.NewUserHandler(userSvc)
	templateHandler := handler.NewTemplateHandler(templateSvc, importSvc, dashboardSvc)
	rosterHandler := handler.NewRosterHandler(rosterSvc)
	dashboardHandler := handler.NewDashboardHandler(dashboardSvc)
	invigilationHandler := handler.NewInvigilationHandler(invigilationSvc)
	leaveHandler := handler.NewLeaveHandler(leaveSvc)
	messageHandler := handler.NewMessageHandler(messageSvc)
	exportHandler := handler.NewExportHandler(exportSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.POST("/auth/login", authHandler.Login)

	authed := api.Group("")
	authed.Use(middleware.JWT(authSvc))

	authed.GET("/auth/me", authHandler.Me)
	authed.POST("/auth/password", authHandler.ChangePassword)

	users := authed.Group("/users", middleware.RequireRoles(models.RoleAdmin))
	users.GET("", userHandler.List)
	users.POST("", userHandler.Create)

	templates := authed.Group("/templates")
	templates.GET("", templateHandler.List)
	templates.GET("/:id", templateHandler.Get)
	adminTemplates := templates.Group("", middleware.RequireRoles(models.RoleAdmin))
	adminTemplates.POST("", templateHandler.Create)
	adminTemplates.PUT("/:id", templateHandler.Update)
	adminTemplates.DELETE("/:id", templateHandler.Delete)
	adminTemplates.POST("/bulk", templateHandler.BulkCreate)
	adminTemplates.POST("/import", templateHandler.ImportCSV)

	roster := authed.Group("/roster")
	roster.GET("", middleware.RequireRoles(models.RoleAdmin), rosterHandler.AdminRoster)
	roster.GET("/conflicts", middleware.RequireRoles(models.RoleAdmin), rosterHandler.Conflicts)
	roster.GET("/faculty/:email", middleware.RBAC("ADMIN", "SELF"), rosterHandler.FacultyRoster)

	if cfg.Dashboard.Enabled {
		dashboard := authed.Group("/dashboard")
		dashboard.GET("/admin", middleware.RequireRoles(models.RoleAdmin), dashboardHandler.Admin)
		dashboard.GET("/faculty", dashboardHandler.Faculty)
	}

	invigilation := authed.Group("/invigilation")
	invigilation.GET("", middleware.RequireRoles(models.RoleAdmin), invigilationHandler.List)
	invigilation.GET("/mine", invigilationHandler.Mine)
	invigilation.POST("", middleware.RequireRoles(models.RoleAdmin), invigilationHandler.Create)
	invigilation.PUT("/:id", middleware.RequireRoles(models.RoleAdmin), invigilationHandler.Update)
	invigilation.DELETE("/:id", middleware.RequireRoles(models.RoleAdmin), invigilationHandler.Delete)

	leave := authed.Group("/leave")
	leave.GET("", leaveHandler.List)
	leave.POST("", leaveHandler.Create)
	leave.POST("/:id/approve", middleware.RequireRoles(models.RoleAdmin), leaveHandler.Approve)
	leave.POST("/:id/reject", middleware.RequireRoles(models.RoleAdmin), leaveHandler.Reject)

	if cfg.Messaging.Enabled {
		messages := authed.Group("/messages")
		messages.POST("", messageHandler.Send)
		messages.GET("", messageHandler.Inbox)
		messages.GET("/unread", messageHandler.UnreadCount)
		messages.POST("/:id/read", messageHandler.MarkRead)
	}

	if cfg.Exports.Enabled {
		exports := authed.Group("/exports")
		exports.GET("/roster.csv", middleware.RequireRoles(models.RoleAdmin), exportHandler.RosterCSV)
		exports.GET("/roster.pdf", middleware.RequireRoles(models.RoleAdmin), exportHandler.RosterPDF)
		exports.GET("/conflicts.csv", middleware.RequireRoles(models.RoleAdmin), exportHandler.ConflictsCSV)
		exports.GET("/roster/faculty/:email", middleware.RBAC("ADMIN", "SELF"), exportHandler.FacultyRosterCSV)
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: r,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Sugar().Infow("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("graceful shutdown failed", "error", err)
	}
}
