package endpoints

import (
	"fmt"
	"net"
)

const (
	DefaultBackendHost = "192.168.1.9"
	DefaultBackendPort = 5000

	CameraConfigPath = "/camera_config"
	GotoPresetPath   = "/goto_preset"
	VideoFeedPath    = "/video_feed"
	ZoomInPath       = "/zoom_in"
	ZoomOutPath      = "/zoom_out"
	HealthPath       = "/health"
)

// Endpoints фиксированный набор URL бэкенда камеры
type Endpoints struct {
	BaseURL      string
	CameraConfig string
	GotoPreset   string
	VideoFeed    string
	// ZoomIn и ZoomOut объявлены, но ни один экран их не вызывает
	ZoomIn  string
	ZoomOut string
	Health  string
}

// New строит набор URL для бэкенда host:port
func New(host string, port int) Endpoints {
	base := fmt.Sprintf("http://%s", net.JoinHostPort(host, fmt.Sprintf("%d", port)))
	return FromBaseURL(base)
}

// FromBaseURL строит набор URL от готового базового адреса (например, httptest.Server.URL)
func FromBaseURL(base string) Endpoints {
	return Endpoints{
		BaseURL:      base,
		CameraConfig: base + CameraConfigPath,
		GotoPreset:   base + GotoPresetPath,
		VideoFeed:    base + VideoFeedPath,
		ZoomIn:       base + ZoomInPath,
		ZoomOut:      base + ZoomOutPath,
		Health:       base + HealthPath,
	}
}

// Default возвращает набор URL для адреса бэкенда по умолчанию
func Default() Endpoints {
	return New(DefaultBackendHost, DefaultBackendPort)
}
