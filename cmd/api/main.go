package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"intraday-simulator/internal/api/handlers"
	"intraday-simulator/internal/api/middleware"
	"intraday-simulator/internal/app"
	"intraday-simulator/internal/config"
	"intraday-simulator/internal/logger"
)

func main() {
	cfgPath := flag.String("config", os.Getenv("CONFIG_FILE"), "Path to YAML config (optional)")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	lg, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer lg.Sync()

	a, err := app.New(context.Background(), cfg, lg)
	if err != nil {
		lg.Fatal("backend init failed", zap.Error(err))
	}
	defer a.Close()

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := newRouter(a)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	lg.Info("starting API server", zap.String("addr", addr), zap.String("env", cfg.Server.Env))
	if err := router.Run(addr); err != nil {
		lg.Fatal("server stopped", zap.Error(err))
	}
}

func newRouter(a *app.App) *gin.Engine {
	cfg := a.Config
	lg := a.Logger.With(zap.String("component", "api"))

	router := gin.New()

	// Apply middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS(cfg.Server.AllowedOrigins...))
	router.Use(middleware.Logger(lg))
	router.Use(middleware.ErrorHandler(lg))

	// Initialize handlers
	capitalHandler := handlers.NewCapitalHandler(a.Engine, a.Formatter)
	objectiveHandler := handlers.NewObjectiveHandler(cfg.Schema)
	scenarioHandler := handlers.NewScenarioHandler(a.Engine)
	simulationHandler := handlers.NewSimulationHandler(a.Engine, a.Formatter, lg)

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"backend": cfg.Backend.Kind,
			"table":   cfg.Schema.Table,
		})
	})

	// API routes
	api := router.Group("/api/v1")
	{
		api.GET("/capitals", capitalHandler.ListCapitals)
		api.GET("/objectives", objectiveHandler.ListObjectives)
		api.GET("/scenarios", scenarioHandler.ListScenarios)
		api.POST("/simulate", simulationHandler.Simulate)
	}

	// Serve the dashboard build (if it exists)
	staticDir := cfg.Server.StaticDir
	if info, err := os.Stat(staticDir); err == nil && info.IsDir() {
		router.Static("/assets", filepath.Join(staticDir, "assets"))
		router.StaticFile("/favicon.ico", filepath.Join(staticDir, "favicon.ico"))

		// Serve index.html for all non-API routes (SPA routing)
		index := filepath.Join(staticDir, "index.html")
		router.NoRoute(func(c *gin.Context) {
			if strings.HasPrefix(c.Request.URL.Path, "/api") {
				middleware.NotFound(c)
				return
			}
			c.File(index)
		})
		lg.Info("serving static files", zap.String("dir", staticDir))
	} else {
		router.NoRoute(middleware.NotFound)
		lg.Info("static directory not found, skipping static file serving", zap.String("dir", staticDir))
	}

	return router
}
