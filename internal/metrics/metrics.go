package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	ResultOK     = "ok"
	ResultFailed = "failed"
)

// Metrics счетчики панели. Nil *Metrics допустим и ничего не считает.
type Metrics struct {
	registry          *prometheus.Registry
	configSubmissions *prometheus.CounterVec
	presetCommands    *prometheus.CounterVec
	keyListeners      prometheus.Gauge
	backendUp         prometheus.Gauge
}

// New создает счетчики в отдельном реестре
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		configSubmissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ptz_panel",
			Name:      "config_submissions_total",
			Help:      "Camera configuration submissions by result.",
		}, []string{"result"}),
		presetCommands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ptz_panel",
			Name:      "preset_commands_total",
			Help:      "Goto-preset commands by zone and result.",
		}, []string{"zone", "result"}),
		keyListeners: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "ptz_panel",
			Name:      "key_listeners",
			Help:      "Currently attached control screen keyboard listeners.",
		}),
		backendUp: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "ptz_panel",
			Name:      "backend_up",
			Help:      "Whether the last camera backend health check succeeded.",
		}),
	}

	m.registry.MustRegister(m.configSubmissions, m.presetCommands, m.keyListeners, m.backendUp)
	return m
}

// Handler отдает метрики в формате prometheus
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) ConfigSubmission(err error) {
	if m == nil {
		return
	}
	m.configSubmissions.WithLabelValues(result(err)).Inc()
}

func (m *Metrics) PresetCommand(zoneID int, err error) {
	if m == nil {
		return
	}
	m.presetCommands.WithLabelValues(strconv.Itoa(zoneID), result(err)).Inc()
}

func (m *Metrics) ListenerAttached() {
	if m == nil {
		return
	}
	m.keyListeners.Inc()
}

func (m *Metrics) ListenerDetached() {
	if m == nil {
		return
	}
	m.keyListeners.Dec()
}

func (m *Metrics) BackendHealth(healthy bool) {
	if m == nil {
		return
	}
	if healthy {
		m.backendUp.Set(1)
		return
	}
	m.backendUp.Set(0)
}

func result(err error) string {
	if err != nil {
		return ResultFailed
	}
	return ResultOK
}
