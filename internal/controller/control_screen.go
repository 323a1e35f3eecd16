package controller

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"ptz-panel/internal/backend"
	"ptz-panel/internal/metrics"
	"ptz-panel/internal/presets"
	"ptz-panel/internal/types"
)

var ErrUnknownZone = errors.New("unknown zone")

// PresetMover перемещает камеру в пресет
type PresetMover interface {
	GotoPreset(ctx context.Context, presetID int) (*backend.Result, error)
}

// ControlScreen - экран живого видео и сетки пресетов
type ControlScreen struct {
	mover   PresetMover
	history *CommandRepository
	logger  *zap.Logger
	metrics *metrics.Metrics

	listenerID atomic.Uint64
	inflight   sync.WaitGroup
}

// NewControlScreen создает экран управления
func NewControlScreen(
	mover PresetMover,
	history *CommandRepository,
	logger *zap.Logger,
	m *metrics.Metrics,
) *ControlScreen {
	return &ControlScreen{
		mover:   mover,
		history: history,
		logger:  logger,
		metrics: m,
	}
}

// Zones возвращает сетку 3x3
func (s *ControlScreen) Zones() []types.Zone {
	return presets.Zones()
}

// History журнал команд
func (s *ControlScreen) History() *CommandRepository {
	return s.history
}

// Click отправляет одну команду пресета и возвращает ее результат.
// Ошибка только логируется, повторов и очереди нет.
func (s *ControlScreen) Click(ctx context.Context, zoneID int) error {
	return s.gotoPreset(ctx, zoneID, SourceClick)
}

// Command то же, что Click, но с явным источником (например, CLI)
func (s *ControlScreen) Command(ctx context.Context, zoneID int, source string) error {
	return s.gotoPreset(ctx, zoneID, source)
}

// Press запускает команду в фоне. Параллельные нажатия не упорядочены.
func (s *ControlScreen) Press(zoneID int, source string) {
	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		_ = s.gotoPreset(context.Background(), zoneID, source)
	}()
}

// Wait ждет завершения всех фоновых команд
func (s *ControlScreen) Wait() {
	s.inflight.Wait()
}

func (s *ControlScreen) gotoPreset(ctx context.Context, zoneID int, source string) error {
	if !presets.Valid(zoneID) {
		return fmt.Errorf("%w: %d", ErrUnknownZone, zoneID)
	}

	start := time.Now()
	_, err := s.mover.GotoPreset(ctx, zoneID)
	latency := time.Since(start)

	s.metrics.PresetCommand(zoneID, err)
	if s.history != nil {
		s.history.Save(zoneID, source, latency, err)
	}

	if err != nil {
		s.logger.Warn("Error calling API",
			zap.Int("preset_id", zoneID),
			zap.String("source", source),
			zap.Error(err))
		return err
	}

	s.logger.Debug("Preset command sent",
		zap.Int("preset_id", zoneID),
		zap.String("source", source),
		zap.Duration("latency", latency))
	return nil
}

// Mount подключает обработчик клавиатуры экрана
func (s *ControlScreen) Mount() *KeyListener {
	l := &KeyListener{
		id:     s.listenerID.Add(1),
		screen: s,
	}
	l.attached.Store(true)
	s.metrics.ListenerAttached()
	s.logger.Debug("Keyboard listener attached", zap.Uint64("listener_id", l.id))
	return l
}

// KeyListener обработчик клавиатуры смонтированного экрана
type KeyListener struct {
	id       uint64
	screen   *ControlScreen
	attached atomic.Bool
}

func (l *KeyListener) ID() uint64 {
	return l.id
}

func (l *KeyListener) Attached() bool {
	return l.attached.Load()
}

// KeyDown обрабатывает нажатие клавиши. handled=true означает, что браузер
// должен подавить действие по умолчанию, а команда пресета уже запущена.
func (l *KeyListener) KeyDown(key string) (zoneID int, handled bool) {
	if !l.attached.Load() {
		return 0, false
	}

	handled = presets.Dispatch(key, func(id int) {
		zoneID = id
		l.screen.Press(id, SourceKey)
	})
	return zoneID, handled
}

// Unmount отключает обработчик. Повторный вызов ничего не делает.
func (l *KeyListener) Unmount() {
	if l.attached.CompareAndSwap(true, false) {
		l.screen.metrics.ListenerDetached()
		l.screen.logger.Debug("Keyboard listener detached", zap.Uint64("listener_id", l.id))
	}
}
