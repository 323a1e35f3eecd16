package controller

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"ptz-panel/internal/types"
)

var (
	ErrAlreadyConfigured = errors.New("camera already configured")
	ErrIncompleteConfig  = errors.New("camera config is incomplete")
)

// Session единственное состояние сеанса: камера либо не настроена,
// либо настроена полностью. Переход только вперед, без хранения на диске.
type Session struct {
	mu     sync.RWMutex
	config *types.CameraConfig
}

func NewSession() *Session {
	return &Session{}
}

// Configured возвращает true после успешной настройки камеры
func (s *Session) Configured() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config != nil
}

// Config возвращает сохраненную конфигурацию камеры
func (s *Session) Config() (types.CameraConfig, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.config == nil {
		return types.CameraConfig{}, false
	}
	return *s.config, true
}

// Complete сохраняет конфигурацию и переключает сеанс на экран управления
func (s *Session) Complete(cfg types.CameraConfig) error {
	if !cfg.Complete() {
		return fmt.Errorf("%w: missing %s", ErrIncompleteConfig, strings.Join(cfg.MissingFields(), ", "))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.config != nil {
		return ErrAlreadyConfigured
	}
	s.config = &cfg
	return nil
}
