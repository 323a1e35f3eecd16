package controller

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"ptz-panel/internal/backend"
	"ptz-panel/internal/types"
)

func TestSession_ForwardOnly(t *testing.T) {
	s := NewSession()
	if s.Configured() {
		t.Fatal("new session is configured")
	}
	if _, ok := s.Config(); ok {
		t.Fatal("new session has a config")
	}

	if err := s.Complete(types.CameraConfig{CameraIP: "1.2.3.4"}); !errors.Is(err, ErrIncompleteConfig) {
		t.Errorf("Complete(partial) error = %v, want ErrIncompleteConfig", err)
	}
	if s.Configured() {
		t.Fatal("partial config switched the session")
	}

	if err := s.Complete(validConfig); err != nil {
		t.Fatalf("Complete() error: %v", err)
	}
	if err := s.Complete(types.CameraConfig{CameraIP: "9.9.9.9", Username: "u", Password: "p", Port: "1"}); !errors.Is(err, ErrAlreadyConfigured) {
		t.Errorf("second Complete() error = %v, want ErrAlreadyConfigured", err)
	}

	got, ok := s.Config()
	if !ok || got != validConfig {
		t.Errorf("Config() = %+v, %v", got, ok)
	}
}

func TestCoordinator_TransitionOnSuccess(t *testing.T) {
	fb := &fakeBackend{}
	c := NewCoordinator(fb, zaptest.NewLogger(t), nil)

	if c.Screen() != ScreenConfig {
		t.Fatalf("initial screen = %s", c.Screen())
	}

	if err := c.ConfigScreen().Submit(context.Background(), validConfig); err != nil {
		t.Fatalf("Submit() error: %v", err)
	}
	if c.Screen() != ScreenControl {
		t.Fatalf("screen after success = %s", c.Screen())
	}

	// сохранены отправленные значения, а не ответ бэкенда
	got, _ := c.Session().Config()
	if got != validConfig {
		t.Errorf("session config = %+v, want %+v", got, validConfig)
	}

	// переход выполняется ровно один раз, бэкенд второй раз не вызывается
	other := types.CameraConfig{CameraIP: "10.0.0.99", Username: "root", Password: "x", Port: "8554"}
	if err := c.ConfigScreen().Submit(context.Background(), other); !errors.Is(err, ErrAlreadyConfigured) {
		t.Errorf("second Submit() error = %v, want ErrAlreadyConfigured", err)
	}
	if calls := fb.configCalls(); len(calls) != 1 {
		t.Errorf("backend configure calls = %d, want 1", len(calls))
	}
	if got, _ := c.Session().Config(); got != validConfig {
		t.Errorf("session config changed to %+v", got)
	}
	if form := c.ConfigScreen().Form(); form != validConfig {
		t.Errorf("form changed by rejected submit: %+v", form)
	}
}

func TestCoordinator_StaysOnFailure(t *testing.T) {
	fb := &fakeBackend{configErr: &backend.StatusError{StatusCode: 500}}
	c := NewCoordinator(fb, zaptest.NewLogger(t), nil)

	_ = c.ConfigScreen().Submit(context.Background(), validConfig)
	if c.Screen() != ScreenConfig {
		t.Fatalf("screen after failure = %s", c.Screen())
	}
	if c.ConfigScreen().Error() == "" {
		t.Error("no error message after failure")
	}

	fb.setConfigErr(nil)
	if err := c.ConfigScreen().Submit(context.Background(), validConfig); err != nil {
		t.Fatalf("retry error: %v", err)
	}
	if c.Screen() != ScreenControl {
		t.Errorf("screen after retry = %s", c.Screen())
	}
}

func TestCommandRepository(t *testing.T) {
	r := NewCommandRepository(3)
	r.Save(1, SourceClick, time.Millisecond, nil)
	r.Save(2, SourceKey, time.Millisecond, errors.New("down"))
	r.Save(1, SourceKey, time.Millisecond, nil)
	r.Save(3, SourceCLI, time.Millisecond, nil)

	recent := r.Recent(0)
	if len(recent) != 3 {
		t.Fatalf("len(Recent) = %d, want 3", len(recent))
	}
	if recent[0].ZoneID != 2 || recent[2].ZoneID != 3 {
		t.Errorf("Recent() = %+v", recent)
	}
	if recent[0].Success || recent[0].Error != "down" {
		t.Errorf("failed record = %+v", recent[0])
	}
	if last := r.Recent(1); len(last) != 1 || last[0].ZoneID != 3 {
		t.Errorf("Recent(1) = %+v", last)
	}

	stats := r.GetAllStats()
	if len(stats) != 3 || stats[0].ZoneID != 1 || stats[0].Sent != 2 || stats[1].Failed != 1 {
		t.Errorf("GetAllStats() = %+v", stats)
	}
}
