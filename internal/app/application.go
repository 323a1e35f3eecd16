package app

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ptz-panel/internal/backend"
	"ptz-panel/internal/config"
	"ptz-panel/internal/controller"
	"ptz-panel/internal/feed"
	"ptz-panel/internal/handler"
	"ptz-panel/internal/metrics"
)

// Application - панель управления камерой
type Application struct {
	config      *config.Config
	logger      *zap.Logger
	router      http.Handler
	server      *http.Server
	client      *backend.Client
	monitor     *backend.Monitor
	coordinator *controller.Coordinator
	metrics     *metrics.Metrics
	relay       *feed.Relay
}

// NewApplicationWithConfig создает новое приложение с конфигурацией
func NewApplicationWithConfig(cfg *config.Config, logger *zap.Logger) *Application {
	if cfg.Logging.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	ep := cfg.Endpoints()
	client := backend.New(ep, cfg.Backend.Timeout, logger.Named("backend"))
	m := metrics.New()
	monitor := backend.NewMonitor(client, cfg.Backend.HealthInterval, m, logger.Named("backend"))
	coordinator := controller.NewCoordinator(client, logger.Named("screen"), m)

	// Источник живого видео: бэкенд напрямую или ретрансляция через панель
	feedURL := ep.VideoFeed
	var relay *feed.Relay
	handlers := Handlers{
		API:     handler.NewAPIHandler(logger, coordinator),
		Control: handler.NewControlSocketHandler(logger, coordinator, cfg.Security.AllowedOrigins),
	}
	if cfg.Feed.Relay {
		relay = feed.NewRelay(ep.VideoFeed, logger.Named("feed"))
		handlers.Feed = relay
		feedURL = "/feed"
	}
	handlers.Panel = handler.NewPanelHandler(logger, coordinator, feedURL, cfg.UI.Title, cfg.UI.PoweredBy)

	router := NewRouter(cfg, handlers, coordinator, client, monitor, m, logger)

	server := &http.Server{
		Addr:    cfg.Address(),
		Handler: router,
	}

	return &Application{
		config:      cfg,
		logger:      logger,
		router:      router,
		server:      server,
		client:      client,
		monitor:     monitor,
		coordinator: coordinator,
		metrics:     m,
		relay:       relay,
	}
}

// Start запускает HTTP сервер и блокируется до остановки
func (app *Application) Start() error {
	app.logger.Info("Starting application",
		zap.String("address", app.server.Addr),
		zap.String("backend", app.client.Endpoints.BaseURL),
		zap.Bool("feed_relay", app.relay != nil))

	app.monitor.Start(context.Background())
	return app.server.ListenAndServe()
}

// Stop останавливает приложение
func (app *Application) Stop(ctx context.Context) error {
	app.logger.Info("Stopping application")
	app.monitor.Stop()

	if app.relay != nil {
		if err := app.relay.Close(); err != nil {
			app.logger.Warn("Failed to close video feed relay", zap.Error(err))
		}
	}

	if err := app.server.Shutdown(ctx); err != nil {
		// сокеты управления и видеопотоки не завершаются сами
		return app.server.Close()
	}
	return nil
}

// GetRouter возвращает роутер
func (app *Application) GetRouter() http.Handler {
	return app.router
}

// Coordinator возвращает координатор экранов
func (app *Application) Coordinator() *controller.Coordinator {
	return app.coordinator
}
