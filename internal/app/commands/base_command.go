package commands

import (
	"fmt"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"ptz-panel/internal/backend"
	"ptz-panel/internal/config"
)

// CommandContext содержит общий контекст для всех команд
type CommandContext struct {
	Logger *zap.Logger
	Config *config.Config
}

// NewCommandContext загружает конфигурацию и создает логгер
func NewCommandContext(c *cli.Context) (*CommandContext, error) {
	cfg, warn := loadConfig(c)
	applyFlags(c, cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := createLogger(cfg.Logging, c.Bool("debug"))
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	if warn != nil {
		logger.Warn("Failed to load config, using defaults",
			zap.String("path", c.String("config")),
			zap.Error(warn))
	}

	return &CommandContext{
		Logger: logger,
		Config: cfg,
	}, nil
}

// Backend создает клиент бэкенда камеры из конфигурации
func (ctx *CommandContext) Backend() *backend.Client {
	return backend.New(ctx.Config.Endpoints(), ctx.Config.Backend.Timeout, ctx.Logger.Named("backend"))
}

// loadConfig читает файл конфигурации. Ошибка чтения не фатальна: берутся значения по умолчанию.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return config.GetDefaultConfig(), err
	}
	return cfg, nil
}

// applyFlags переопределяет конфигурацию явно заданными флагами
func applyFlags(c *cli.Context, cfg *config.Config) {
	if c.IsSet("log-level") {
		cfg.Logging.Level = c.String("log-level")
	}
	if c.IsSet("backend-host") {
		cfg.Backend.Host = c.String("backend-host")
	}
	if c.IsSet("backend-port") {
		cfg.Backend.Port = c.Int("backend-port")
	}
	if c.IsSet("backend-timeout") {
		cfg.Backend.Timeout = c.Duration("backend-timeout")
	}
	if c.Bool("debug") {
		cfg.Logging.Level = "debug"
	}
}

// createLogger создает логгер
func createLogger(cfg config.LoggingConfig, debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}

	var logLevel zapcore.Level
	switch cfg.Level {
	case "debug":
		logLevel = zap.DebugLevel
	case "warn":
		logLevel = zap.WarnLevel
	case "error":
		logLevel = zap.ErrorLevel
	default:
		logLevel = zap.InfoLevel
	}

	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(logLevel)
	if cfg.Format == "console" {
		zcfg.Encoding = "console"
	}

	return zcfg.Build()
}
