package controller

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"ptz-panel/internal/backend"
	"ptz-panel/internal/metrics"
	"ptz-panel/internal/types"
)

const (
	DefaultPort = "554"

	ConfigFailedMessage = "Failed to configure camera. Please check your connection and try again."
)

var (
	ErrMissingField   = errors.New("required field is empty")
	ErrSubmitInFlight = errors.New("configuration request already in flight")
)

// ConfigSender отправляет конфигурацию камеры на бэкенд
type ConfigSender interface {
	Configure(ctx context.Context, cfg types.CameraConfig) (*backend.Result, error)
}

// ConfigScreen - экран конфигурации камеры
type ConfigScreen struct {
	sender    ConfigSender
	onSuccess func(types.CameraConfig) error
	logger    *zap.Logger
	metrics   *metrics.Metrics

	// configured nil для экрана без сеанса (CLI)
	configured func() bool

	mu      sync.Mutex
	form    types.CameraConfig
	errMsg  string
	loading bool
}

// NewConfigScreen создает экран. onSuccess получает отправленные значения формы.
func NewConfigScreen(
	sender ConfigSender,
	onSuccess func(types.CameraConfig) error,
	logger *zap.Logger,
	m *metrics.Metrics,
) *ConfigScreen {
	return &ConfigScreen{
		sender:    sender,
		onSuccess: onSuccess,
		logger:    logger,
		metrics:   m,
		form:      types.CameraConfig{Port: DefaultPort},
	}
}

// Form возвращает последние введенные значения (порт по умолчанию 554)
func (s *ConfigScreen) Form() types.CameraConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.form
}

// Error сообщение об ошибке для показа под формой
func (s *ConfigScreen) Error() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errMsg
}

// Loading true пока запрос конфигурации не завершился
func (s *ConfigScreen) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Submit проверяет форму и отправляет ее на бэкенд.
// Пустое поле блокирует отправку до запроса, повторная отправка во время запроса отклоняется.
// После успешной настройки сеанса бэкенд больше не вызывается.
func (s *ConfigScreen) Submit(ctx context.Context, form types.CameraConfig) error {
	if missing := form.MissingFields(); len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingField, strings.Join(missing, ", "))
	}

	s.mu.Lock()
	if s.configured != nil && s.configured() {
		s.mu.Unlock()
		return ErrAlreadyConfigured
	}
	if s.loading {
		s.mu.Unlock()
		return ErrSubmitInFlight
	}
	s.loading = true
	s.errMsg = ""
	s.form = form
	s.mu.Unlock()

	// loading снимается только после onSuccess, чтобы сеанс успел перейти дальше
	defer func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
	}()

	_, err := s.sender.Configure(ctx, form)
	s.metrics.ConfigSubmission(err)

	if err != nil {
		s.mu.Lock()
		s.errMsg = ConfigFailedMessage
		s.mu.Unlock()

		s.logger.Error("Error calling API",
			zap.String("camera_ip", form.CameraIP),
			zap.Error(err))
		return err
	}

	s.logger.Info("Camera configured",
		zap.String("camera_ip", form.CameraIP),
		zap.String("port", form.Port))

	return s.onSuccess(form)
}
