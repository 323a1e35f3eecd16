package backend

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

const healthCheckTimeout = 5 * time.Second

// HealthRecorder получает результат каждой проверки
type HealthRecorder interface {
	BackendHealth(healthy bool)
}

// HealthStats статистика проверок бэкенда
type HealthStats struct {
	TotalChecks  int64         `json:"total_checks"`
	SuccessCount int64         `json:"success"`
	ErrorCount   int64         `json:"errors"`
	LastResponse time.Duration `json:"-"`
	AverageTime  time.Duration `json:"-"`
}

// HealthStatus снимок состояния бэкенда
type HealthStatus struct {
	URL       string      `json:"url"`
	Healthy   bool        `json:"healthy"`
	LastCheck time.Time   `json:"last_check"`
	LastError string      `json:"last_error,omitempty"`
	Stats     HealthStats `json:"stats"`
}

// Monitor периодически опрашивает /health бэкенда камеры
type Monitor struct {
	client   *Client
	interval time.Duration
	recorder HealthRecorder
	logger   *zap.Logger

	mu     sync.RWMutex
	status HealthStatus

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewMonitor создает монитор. recorder может быть nil.
func NewMonitor(client *Client, interval time.Duration, recorder HealthRecorder, logger *zap.Logger) *Monitor {
	return &Monitor{
		client:   client,
		interval: interval,
		recorder: recorder,
		logger:   logger,
		status: HealthStatus{
			URL: client.Endpoints.BaseURL,
		},
	}
}

// Start запускает фоновую проверку. При interval <= 0 ничего не делает.
func (m *Monitor) Start(ctx context.Context) {
	if m.interval <= 0 {
		return
	}

	ctx, m.cancel = context.WithCancel(ctx)
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()

		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()

		m.Check(ctx)
		for {
			select {
			case <-ticker.C:
				m.Check(ctx)
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop останавливает проверку и ждет завершения
func (m *Monitor) Stop() {
	if m.cancel != nil {
		m.cancel()
	}
	m.wg.Wait()
}

// Check выполняет одну проверку и обновляет статистику
func (m *Monitor) Check(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	start := time.Now()
	_, err := m.client.Health(ctx)
	m.update(err, time.Since(start))

	if m.recorder != nil {
		m.recorder.BackendHealth(err == nil)
	}
	if err != nil {
		m.logger.Warn("Camera backend is unhealthy",
			zap.String("url", m.client.Endpoints.BaseURL),
			zap.Error(err))
		return false
	}
	return true
}

func (m *Monitor) update(err error, responseTime time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := &m.status.Stats
	s.TotalChecks++
	s.LastResponse = responseTime
	m.status.LastCheck = time.Now()

	if err != nil {
		s.ErrorCount++
		m.status.Healthy = false
		m.status.LastError = err.Error()
		return
	}

	s.SuccessCount++
	m.status.Healthy = true
	m.status.LastError = ""

	// Среднее только по успешным проверкам
	total := s.AverageTime*time.Duration(s.SuccessCount-1) + responseTime
	s.AverageTime = total / time.Duration(s.SuccessCount)
}

// Status возвращает последний известный статус
func (m *Monitor) Status() HealthStatus {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}
