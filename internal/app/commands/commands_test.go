package commands

import (
	"bytes"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/urfave/cli/v2"

	"ptz-panel/internal/controller"
)

func newTestApp(out *bytes.Buffer) *cli.App {
	return &cli.App{
		Name:           "ptz-panel",
		Version:        "test",
		Metadata:       map[string]interface{}{"commit": "abc123", "build_date": "today"},
		Flags:          GlobalFlags(),
		Commands:       GetCommands(),
		Writer:         out,
		ExitErrHandler: func(*cli.Context, error) {},
	}
}

// fakeBackend бэкенд камеры для команд
type fakeBackend struct {
	mu      sync.Mutex
	configs []map[string]interface{}
	presets []string
	server  *httptest.Server
}

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()
	b := &fakeBackend{}
	mux := http.NewServeMux()
	mux.HandleFunc("/camera_config", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		json.NewDecoder(r.Body).Decode(&body)
		b.mu.Lock()
		b.configs = append(b.configs, body)
		b.mu.Unlock()
		w.Write([]byte(`{"ok":true}`))
	})
	mux.HandleFunc("/goto_preset", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.presets = append(b.presets, r.URL.Query().Get("preset_id"))
		b.mu.Unlock()
		w.Write([]byte(`{"ok":true}`))
	})
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"healthy"}`))
	})
	b.server = httptest.NewServer(mux)
	t.Cleanup(b.server.Close)
	return b
}

func (b *fakeBackend) sentPresets() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.presets...)
}

func (b *fakeBackend) sentConfigs() []map[string]interface{} {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]map[string]interface{}(nil), b.configs...)
}

func (b *fakeBackend) flags(t *testing.T) []string {
	t.Helper()
	host, port, err := net.SplitHostPort(strings.TrimPrefix(b.server.URL, "http://"))
	if err != nil {
		t.Fatal(err)
	}
	return []string{"--config", t.TempDir() + "/missing.yaml", "--backend-host", host, "--backend-port", port, "--log-level", "error"}
}

func TestParseZone(t *testing.T) {
	tests := []struct {
		arg     string
		want    int
		wantErr bool
	}{
		{"1", 1, false},
		{"9", 9, false},
		{"q", 1, false},
		{"C", 9, false},
		{"s", 5, false},
		{"0", 0, true},
		{"10", 0, true},
		{"p", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			got, err := parseZone(tt.arg)
			if tt.wantErr {
				if !errors.Is(err, controller.ErrUnknownZone) {
					t.Errorf("parseZone(%q) error = %v, want ErrUnknownZone", tt.arg, err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("parseZone(%q) = %d, %v; want %d", tt.arg, got, err, tt.want)
			}
		})
	}
}

func TestZonesCommand(t *testing.T) {
	var out bytes.Buffer
	if err := newTestApp(&out).Run([]string{"ptz-panel", "zones"}); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d rows, want 3:\n%s", len(lines), out.String())
	}
	if !strings.Contains(lines[0], "[1 q]") || !strings.Contains(lines[2], "[9 c]") {
		t.Errorf("unexpected grid:\n%s", out.String())
	}
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	if err := newTestApp(&out).Run([]string{"ptz-panel", "version"}); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"test", "abc123", "today"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("version output missing %q:\n%s", want, out.String())
		}
	}
}

func TestPresetCommand_ByKey(t *testing.T) {
	b := newFakeBackend(t)
	var out bytes.Buffer

	args := append([]string{"ptz-panel"}, b.flags(t)...)
	args = append(args, "preset", "x")
	if err := newTestApp(&out).Run(args); err != nil {
		t.Fatalf("preset: %v", err)
	}

	if sent := b.sentPresets(); len(sent) != 1 || sent[0] != "8" {
		t.Errorf("presets sent = %v, want [8]", sent)
	}
}

func TestPresetCommand_UnknownZone(t *testing.T) {
	b := newFakeBackend(t)
	var out bytes.Buffer

	args := append([]string{"ptz-panel"}, b.flags(t)...)
	args = append(args, "preset", "12")
	if err := newTestApp(&out).Run(args); err == nil {
		t.Fatal("expected error for zone 12")
	}
	if sent := b.sentPresets(); len(sent) != 0 {
		t.Errorf("no preset should be sent, got %v", sent)
	}
}

func TestConfigureCommand(t *testing.T) {
	b := newFakeBackend(t)
	var out bytes.Buffer

	args := append([]string{"ptz-panel"}, b.flags(t)...)
	args = append(args, "configure", "--camera-ip", "192.168.0.86", "--username", "admin", "--password", "secret")
	if err := newTestApp(&out).Run(args); err != nil {
		t.Fatalf("configure: %v", err)
	}

	configs := b.sentConfigs()
	if len(configs) != 1 {
		t.Fatalf("configs sent = %d, want 1", len(configs))
	}
	got := configs[0]
	if got["camera_ip"] != "192.168.0.86" || got["port"] != controller.DefaultPort || got["channel"] != float64(1) {
		t.Errorf("payload = %v", got)
	}
	if !strings.Contains(out.String(), "Backend status: healthy") {
		t.Errorf("output = %q", out.String())
	}
}
