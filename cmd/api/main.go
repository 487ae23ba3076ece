package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/shoreline-ops/scheduleboard/internal/handler"
	"github.com/shoreline-ops/scheduleboard/internal/middleware"
	"github.com/shoreline-ops/scheduleboard/internal/repository"
	"github.com/shoreline-ops/scheduleboard/internal/service"
	"github.com/shoreline-ops/scheduleboard/pkg/cache"
	"github.com/shoreline-ops/scheduleboard/pkg/config"
	"github.com/shoreline-ops/scheduleboard/pkg/database"
	"github.com/shoreline-ops/scheduleboard/pkg/logger"
	corsmiddleware "github.com/shoreline-ops/scheduleboard/pkg/middleware/cors"
	reqidmiddleware "github.com/shoreline-ops/scheduleboard/pkg/middleware/requestid"
)

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
	defer db.Close() //nolint:errcheck

	// Redis is optional: without it the board refetches every window.
	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Warn("redis unavailable, board window cache disabled", zap.Error(err))
		redisClient = nil
	}

	resourceRepo := repository.NewResourceRepository(db)
	eventRepo := repository.NewEventRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)

	metricsSvc := service.NewMetricsService()

	boardSvc, err := service.NewBoardService(cfg.Board, resourceRepo, eventRepo, cacheRepo, nil, nil, logr)
	if err != nil {
		logr.Sugar().Fatalw("failed to init board service", "error", err)
	}
	boardSvc.SetMetrics(metricsSvc)
	resourceSvc := service.NewResourceService(resourceRepo, logr)
	eventSvc := service.NewEventService(eventRepo, cacheRepo, nil, logr)

	var exportSvc *service.ExportService
	if cfg.Export.Enabled {
		exportSvc = service.NewExportService(true)
	}

	boardHandler := newBoardHandler(boardSvc, exportSvc, metricsSvc)
	resourceHandler := handler.NewResourceHandler(resourceSvc)
	eventHandler := handler.NewEventHandler(eventSvc)

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

	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	api := r.Group(cfg.APIPrefix)
	{
		board := api.Group("/board")
		{
			board.GET("", boardHandler.Get)
			board.POST("/navigate", boardHandler.Navigate)
			board.POST("/zoom", boardHandler.Zoom)
			board.POST("/today", boardHandler.Today)
			board.POST("/slots/click", boardHandler.SlotClick)
			board.GET("/export", boardHandler.Export)
		}

		api.GET("/resources", resourceHandler.List)
		api.GET("/resources/:id", resourceHandler.Get)

		events := api.Group("/events")
		{
			events.GET("", eventHandler.List)
			events.POST("", eventHandler.Create)
			events.PUT("/:id", eventHandler.Update)
			events.DELETE("/:id", eventHandler.Delete)
		}
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}

// newBoardHandler keeps the nil-exporter case out of the interface
// conversion: a typed nil *ExportService inside the interface would
// defeat the handler's nil check.
func newBoardHandler(boardSvc *service.BoardService, exportSvc *service.ExportService, metricsSvc *service.MetricsService) *handler.BoardHandler {
	if exportSvc == nil {
		return handler.NewBoardHandler(boardSvc, nil, metricsSvc)
	}
	return handler.NewBoardHandler(boardSvc, exportSvc, metricsSvc)
}
