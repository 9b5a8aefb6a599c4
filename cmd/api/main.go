package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/fabricyo/doc-manager-api/api/swagger"
	"github.com/fabricyo/doc-manager-api/internal/handler"
	"github.com/fabricyo/doc-manager-api/internal/middleware"
	"github.com/fabricyo/doc-manager-api/internal/repository"
	"github.com/fabricyo/doc-manager-api/internal/service"
	"github.com/fabricyo/doc-manager-api/pkg/cache"
	"github.com/fabricyo/doc-manager-api/pkg/config"
	"github.com/fabricyo/doc-manager-api/pkg/database"
	"github.com/fabricyo/doc-manager-api/pkg/export"
	"github.com/fabricyo/doc-manager-api/pkg/logger"
	corsmiddleware "github.com/fabricyo/doc-manager-api/pkg/middleware/cors"
	reqidmiddleware "github.com/fabricyo/doc-manager-api/pkg/middleware/requestid"
)

// @title Document Manager API
// @version 1.0.0
// @description API for modeling document types, columns and documents
// @BasePath /api
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

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	metricsSvc := service.NewMetricsService()

	var cacheRepo *repository.CacheRepository
	if cfg.Cache.Enabled {
		client, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, projection cache disabled", zap.Error(err))
		} else {
			cacheRepo = repository.NewCacheRepository(client, logr)
			defer cacheRepo.Close() //nolint:errcheck
		}
	}

	typeRepo := repository.NewDocumentTypeRepository(db)
	columnRepo := repository.NewColumnRepository(db)
	documentRepo := repository.NewDocumentRepository(db)
	fieldValueRepo := repository.NewFieldValueRepository(db)

	columnRule := service.NewColumnRule(columnRepo)
	typeSvc := service.NewDocumentTypeService(typeRepo, columnRepo, nil, logr)
	columnSvc := service.NewColumnService(columnRepo, typeRepo, nil, logr)

	var documentSvc *service.DocumentService
	if cacheRepo != nil {
		documentSvc = service.NewDocumentService(documentRepo, fieldValueRepo, typeRepo, columnRule, cacheRepo, cfg.Cache.TTL, metricsSvc, logr)
	} else {
		documentSvc = service.NewDocumentService(documentRepo, fieldValueRepo, typeRepo, columnRule, nil, cfg.Cache.TTL, metricsSvc, logr)
	}

	typeHandler := handler.NewDocumentTypeHandler(typeSvc)
	columnHandler := handler.NewColumnHandler(columnSvc)
	documentHandler := handler.NewDocumentHandler(documentSvc, export.NewPDFExporter(), export.NewCSVExporter())
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		api.GET("/doctypes", typeHandler.List)
		api.POST("/doctypes", typeHandler.Create)
		api.GET("/doctypes/:id", typeHandler.Get)
		api.PUT("/doctypes/:id", typeHandler.Update)
		api.DELETE("/doctypes/:id", typeHandler.Delete)

		api.GET("/columns", columnHandler.List)
		api.POST("/columns", columnHandler.Create)
		api.GET("/columns/:id", columnHandler.Get)
		api.PUT("/columns/:id", columnHandler.Update)
		api.DELETE("/columns/:id", columnHandler.Delete)

		api.GET("/documents", documentHandler.List)
		api.POST("/documents", documentHandler.Create)
		api.GET("/documents/:id", documentHandler.Get)
		api.PUT("/documents/:id", documentHandler.Update)
		api.DELETE("/documents/:id", documentHandler.Delete)
		api.GET("/documents/:id/download", documentHandler.Download)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
