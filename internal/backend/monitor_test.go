package backend

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"
)

type recorder struct {
	mu      sync.Mutex
	results []bool
}

func (r *recorder) BackendHealth(healthy bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results = append(r.results, healthy)
}

func TestMonitor_CheckTracksStats(t *testing.T) {
	var fail atomic.Bool
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if fail.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"healthy"}`))
	})

	rec := &recorder{}
	m := NewMonitor(c, 0, rec, zaptest.NewLogger(t))

	if !m.Check(context.Background()) {
		t.Fatal("first check should succeed")
	}
	fail.Store(true)
	if m.Check(context.Background()) {
		t.Fatal("second check should fail")
	}

	st := m.Status()
	if st.Healthy {
		t.Error("status should be unhealthy after failed check")
	}
	if st.Stats.TotalChecks != 2 || st.Stats.SuccessCount != 1 || st.Stats.ErrorCount != 1 {
		t.Errorf("stats = %+v", st.Stats)
	}
	if st.LastError == "" {
		t.Error("last error not recorded")
	}
	if len(rec.results) != 2 || !rec.results[0] || rec.results[1] {
		t.Errorf("recorded = %v, want [true false]", rec.results)
	}
}

func TestMonitor_StartDisabled(t *testing.T) {
	var calls atomic.Int32
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	})

	m := NewMonitor(c, 0, nil, zaptest.NewLogger(t))
	m.Start(context.Background())
	m.Stop()

	if calls.Load() != 0 {
		t.Errorf("disabled monitor made %d requests", calls.Load())
	}
}

func TestMonitor_StartPolls(t *testing.T) {
	checked := make(chan struct{}, 8)
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"healthy"}`))
		select {
		case checked <- struct{}{}:
		default:
		}
	})

	m := NewMonitor(c, 10*time.Millisecond, nil, zaptest.NewLogger(t))
	m.Start(context.Background())
	defer m.Stop()

	for i := 0; i < 2; i++ {
		select {
		case <-checked:
		case <-time.After(2 * time.Second):
			t.Fatalf("health check %d not performed", i+1)
		}
	}
}
