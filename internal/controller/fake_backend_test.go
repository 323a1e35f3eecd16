package controller

import (
	"context"
	"net/http"
	"sync"

	"ptz-panel/internal/backend"
	"ptz-panel/internal/types"
)

// fakeBackend записывает вызовы и возвращает заданные ошибки
type fakeBackend struct {
	mu        sync.Mutex
	configErr error
	presetErr error
	configs   []types.CameraConfig
	presets   []int

	// если release не nil, Configure сообщает в entered и ждет release
	entered chan struct{}
	release chan struct{}
}

func (f *fakeBackend) Configure(ctx context.Context, cfg types.CameraConfig) (*backend.Result, error) {
	if f.release != nil {
		f.entered <- struct{}{}
		<-f.release
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.configs = append(f.configs, cfg)
	if f.configErr != nil {
		return nil, f.configErr
	}
	return &backend.Result{StatusCode: http.StatusOK, Body: `{"camera_ip":"echoed"}`}, nil
}

func (f *fakeBackend) GotoPreset(ctx context.Context, presetID int) (*backend.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.presets = append(f.presets, presetID)
	if f.presetErr != nil {
		return nil, f.presetErr
	}
	return &backend.Result{StatusCode: http.StatusOK}, nil
}

func (f *fakeBackend) setConfigErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.configErr = err
}

func (f *fakeBackend) configCalls() []types.CameraConfig {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]types.CameraConfig(nil), f.configs...)
}

func (f *fakeBackend) presetCalls() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int(nil), f.presets...)
}

var validConfig = types.CameraConfig{
	CameraIP: "192.168.0.111",
	Username: "admin",
	Password: "secret",
	Port:     "554",
}
