package controller

import (
	"go.uber.org/zap"

	"ptz-panel/internal/metrics"
	"ptz-panel/internal/types"
)

// Screen отображаемый экран
type Screen string

const (
	ScreenConfig  Screen = "config"
	ScreenControl Screen = "control"
)

// Backend операции бэкенда, нужные экранам
type Backend interface {
	ConfigSender
	PresetMover
}

// Coordinator владеет состоянием сеанса и выбирает экран
type Coordinator struct {
	session *Session
	config  *ConfigScreen
	control *ControlScreen
	logger  *zap.Logger
}

// NewCoordinator создает координатор с экранами поверх одного бэкенда
func NewCoordinator(b Backend, logger *zap.Logger, m *metrics.Metrics) *Coordinator {
	c := &Coordinator{
		session: NewSession(),
		logger:  logger,
	}
	c.config = NewConfigScreen(b, c.handleConfigSuccess, logger, m)
	c.config.configured = c.session.Configured
	c.control = NewControlScreen(b, NewCommandRepository(100), logger, m)
	return c
}

func (c *Coordinator) handleConfigSuccess(cfg types.CameraConfig) error {
	if err := c.session.Complete(cfg); err != nil {
		return err
	}
	c.logger.Info("Switching to control screen", zap.String("camera_ip", cfg.CameraIP))
	return nil
}

// Screen текущий экран: конфигурация до успешной настройки, потом управление
func (c *Coordinator) Screen() Screen {
	if c.session.Configured() {
		return ScreenControl
	}
	return ScreenConfig
}

func (c *Coordinator) Session() *Session {
	return c.session
}

func (c *Coordinator) ConfigScreen() *ConfigScreen {
	return c.config
}

func (c *Coordinator) ControlScreen() *ControlScreen {
	return c.control
}
