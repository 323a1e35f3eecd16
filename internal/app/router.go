package app

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"ptz-panel/internal/backend"
	"ptz-panel/internal/config"
	"ptz-panel/internal/controller"
	"ptz-panel/internal/handler"
	"ptz-panel/internal/metrics"
	"ptz-panel/internal/web"
)

const healthCheckTimeout = 2 * time.Second

// Handlers хендлеры, подключаемые к роутеру
type Handlers struct {
	Panel   *handler.PanelHandler
	API     *handler.APIHandler
	Control *handler.ControlSocketHandler
	// Feed nil если ретрансляция видео выключена
	Feed http.Handler
}

// NewRouter создает роутер с настройкой маршрутов
func NewRouter(
	cfg *config.Config,
	handlers Handlers,
	coordinator *controller.Coordinator,
	client *backend.Client,
	monitor *backend.Monitor,
	m *metrics.Metrics,
	logger *zap.Logger,
) http.Handler {
	router := newEngine(logger)
	router.SetHTMLTemplate(web.Templates())

	// Health check, включая доступность бэкенда камеры
	router.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
		defer cancel()

		backendStatus := gin.H{"url": client.Endpoints.BaseURL, "reachable": true}
		if body, err := client.Health(ctx); err != nil {
			backendStatus["reachable"] = false
			backendStatus["error"] = err.Error()
		} else {
			backendStatus["status"] = body["status"]
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "ptz-panel",
			"screen":  coordinator.Screen(),
			"backend": backendStatus,
			"time":    time.Now().Unix(),
		})
	})

	handlers.Panel.RegisterRoutes(router)
	handlers.Control.RegisterRoutes(router)

	if handlers.Feed != nil {
		router.GET("/feed", gin.WrapH(handlers.Feed))
	}

	if cfg.Metrics.Enabled && m != nil {
		router.GET(cfg.Metrics.Path, gin.WrapH(m.Handler()))
	}

	// API v1
	apiV1 := router.Group("/api/v1")
	{
		handlers.API.RegisterRoutes(apiV1)

		apiV1.GET("/status", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"status":    "running",
				"screen":    coordinator.Screen(),
				"listeners": handlers.Control.ActiveListeners(),
				"backend":   monitor.Status(),
				"timestamp": time.Now().Unix(),
				"endpoints": []string{
					"/api/v1/camera/config - POST - Configure camera",
					"/api/v1/camera/state - GET - Session state",
					"/api/v1/presets - GET - Preset zones",
					"/api/v1/presets/{id}/goto - POST - Move to preset",
					"/api/v1/presets/history - GET - Recent preset commands",
					"/ws/control - GET - Control screen channel",
				},
			})
		})
	}

	// 404 handler
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Not Found",
			"message": "The requested resource was not found",
			"path":    c.Request.URL.Path,
		})
	})

	if !cfg.Security.EnableCORS {
		return router
	}

	return cors.New(cors.Options{
		AllowedOrigins: cfg.Security.AllowedOrigins,
		AllowedMethods: cfg.Security.AllowedMethods,
		AllowedHeaders: cfg.Security.AllowedHeaders,
	}).Handler(router)
}

func newEngine(logger *zap.Logger) *gin.Engine {
	router := gin.New()

	// Middleware
	router.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		Formatter: func(param gin.LogFormatterParams) string {
			logger.Info("HTTP Request",
				zap.String("method", param.Method),
				zap.String("path", param.Path),
				zap.Int("status", param.StatusCode),
				zap.Duration("latency", param.Latency),
				zap.String("client_ip", param.ClientIP),
			)
			return ""
		},
	}))

	router.Use(gin.Recovery())
	return router
}
