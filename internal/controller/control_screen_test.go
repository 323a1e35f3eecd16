package controller

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"

	"ptz-panel/internal/backend"
	"ptz-panel/internal/metrics"
)

func newControlScreen(t *testing.T, fb *fakeBackend) *ControlScreen {
	t.Helper()
	return NewControlScreen(fb, NewCommandRepository(10), zaptest.NewLogger(t), metrics.New())
}

func TestControlScreen_ClickEachZone(t *testing.T) {
	for id := 1; id <= 9; id++ {
		fb := &fakeBackend{}
		s := newControlScreen(t, fb)

		if err := s.Click(context.Background(), id); err != nil {
			t.Fatalf("Click(%d) error: %v", id, err)
		}
		if calls := fb.presetCalls(); len(calls) != 1 || calls[0] != id {
			t.Errorf("Click(%d) sent %v, want [%d]", id, calls, id)
		}
	}
}

func TestControlScreen_ClickUnknownZone(t *testing.T) {
	fb := &fakeBackend{}
	s := newControlScreen(t, fb)

	for _, id := range []int{0, 10, -1} {
		if err := s.Click(context.Background(), id); !errors.Is(err, ErrUnknownZone) {
			t.Errorf("Click(%d) error = %v, want ErrUnknownZone", id, err)
		}
	}
	if len(fb.presetCalls()) != 0 {
		t.Error("unknown zone reached the backend")
	}
}

func TestControlScreen_ClickFailureIsRecorded(t *testing.T) {
	fb := &fakeBackend{presetErr: &backend.StatusError{StatusCode: 400}}
	s := newControlScreen(t, fb)

	err := s.Click(context.Background(), 4)
	if !errors.Is(err, backend.ErrRequestFailed) {
		t.Errorf("Click() error = %v", err)
	}

	recent := s.History().Recent(1)
	if len(recent) != 1 || recent[0].Success || recent[0].ZoneID != 4 || recent[0].Source != SourceClick {
		t.Errorf("history = %+v", recent)
	}
}

func TestKeyListener_MappedKeys(t *testing.T) {
	keys := "qweasdzxc"
	for i, r := range keys {
		for _, key := range []string{string(r), strings.ToUpper(string(r))} {
			fb := &fakeBackend{}
			s := newControlScreen(t, fb)
			l := s.Mount()

			zone, handled := l.KeyDown(key)
			s.Wait()

			want := i + 1
			if !handled || zone != want {
				t.Errorf("KeyDown(%q) = %d, %v; want %d, true", key, zone, handled, want)
			}
			if calls := fb.presetCalls(); len(calls) != 1 || calls[0] != want {
				t.Errorf("KeyDown(%q) sent %v, want [%d]", key, calls, want)
			}
		}
	}
}

func TestKeyListener_UnmappedKeys(t *testing.T) {
	fb := &fakeBackend{}
	s := newControlScreen(t, fb)
	l := s.Mount()

	for _, key := range []string{"r", "1", "Enter", " ", "ArrowLeft", ""} {
		if _, handled := l.KeyDown(key); handled {
			t.Errorf("KeyDown(%q) handled", key)
		}
	}
	s.Wait()
	if len(fb.presetCalls()) != 0 {
		t.Errorf("unmapped keys sent %v", fb.presetCalls())
	}
}

func TestKeyListener_UnmountDetaches(t *testing.T) {
	fb := &fakeBackend{}
	s := newControlScreen(t, fb)
	l := s.Mount()

	if _, handled := l.KeyDown("q"); !handled {
		t.Fatal("KeyDown before unmount not handled")
	}
	l.Unmount()
	l.Unmount()

	if l.Attached() {
		t.Error("listener still attached")
	}
	if _, handled := l.KeyDown("w"); handled {
		t.Error("KeyDown after unmount handled")
	}
	s.Wait()

	if calls := fb.presetCalls(); len(calls) != 1 || calls[0] != 1 {
		t.Errorf("calls = %v, want [1]", calls)
	}
}

func TestKeyListener_RapidPressesAllSent(t *testing.T) {
	fb := &fakeBackend{}
	s := newControlScreen(t, fb)
	l := s.Mount()
	defer l.Unmount()

	for i := 0; i < 5; i++ {
		l.KeyDown("s")
		l.KeyDown("C")
	}
	s.Wait()

	calls := fb.presetCalls()
	sort.Ints(calls)
	if len(calls) != 10 || calls[0] != 5 || calls[9] != 9 {
		t.Errorf("calls = %v, want five 5s and five 9s", calls)
	}
}

func TestControlScreen_MountIDsUnique(t *testing.T) {
	s := newControlScreen(t, &fakeBackend{})
	a, b := s.Mount(), s.Mount()
	if a.ID() == b.ID() {
		t.Errorf("listeners share id %d", a.ID())
	}
}
