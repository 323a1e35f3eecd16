package commands

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"ptz-panel/internal/app"
)

const shutdownTimeout = 10 * time.Second

// GetServerCommand возвращает команду для запуска панели
func GetServerCommand() *cli.Command {
	return &cli.Command{
		Name:  "server",
		Usage: "Start the camera control panel",
		Description: `Serve the configuration and control screens and dispatch
camera commands to the backend.

Examples:
  ptz-panel server --port 8080
  ptz-panel --backend-host 192.168.0.86 server --feed-relay`,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Panel HTTP port",
				EnvVars: []string{"PTZ_PANEL_PORT"},
			},
			&cli.StringFlag{
				Name:    "host",
				Usage:   "Panel HTTP host",
				EnvVars: []string{"PTZ_PANEL_HOST"},
			},
			&cli.BoolFlag{
				Name:  "feed-relay",
				Usage: "Relay the backend video feed through the panel",
			},
		},
		Action: func(c *cli.Context) error {
			ctx, err := NewCommandContext(c)
			if err != nil {
				return err
			}
			defer ctx.Logger.Sync()

			if c.IsSet("port") {
				ctx.Config.Port = c.Int("port")
			}
			if c.IsSet("host") {
				ctx.Config.Host = c.String("host")
			}
			if c.IsSet("feed-relay") {
				ctx.Config.Feed.Relay = c.Bool("feed-relay")
			}
			if err := ctx.Config.Validate(); err != nil {
				return err
			}

			ctx.Logger.Info("Starting camera control panel",
				zap.String("address", ctx.Config.Address()),
				zap.String("backend", ctx.Config.Endpoints().BaseURL),
				zap.Bool("feed_relay", ctx.Config.Feed.Relay))

			application := app.NewApplicationWithConfig(ctx.Config, ctx.Logger)
			return runServer(c.Context, application, ctx.Logger)
		},
	}
}

// runServer запускает сервер и ждет сигнала завершения
func runServer(parent context.Context, application *app.Application, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(parent,
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer stop()

	errChan := make(chan error, 1)
	go func() {
		if err := application.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
		close(errChan)
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	case err := <-errChan:
		if err != nil {
			logger.Error("HTTP server failed", zap.Error(err))
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := application.Stop(shutdownCtx); err != nil {
		logger.Error("Failed to stop HTTP server", zap.Error(err))
		return err
	}

	logger.Info("Panel stopped")
	return nil
}
