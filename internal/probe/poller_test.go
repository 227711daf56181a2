package probe

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type fakeSampler struct {
	app string
	ok  bool
	err error
}

func (f *fakeSampler) Sample() (string, bool, error) {
	return f.app, f.ok, f.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestTickReportsPulse(t *testing.T) {
	var got struct {
		App      string  `json:"app"`
		Duration float64 `json:"duration"`
	}
	received := false

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/app_log" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode pulse: %v", err)
		}
		received = true
		w.Header().Set("Content-Type", "application/json")
		if _, err := w.Write([]byte(`{"status":"ok","category":"uncategorized"}`)); err != nil {
			t.Errorf("write response: %v", err)
		}
	}))
	defer srv.Close()

	p := NewPoller(&fakeSampler{app: "chrome.exe", ok: true}, srv.URL, 5*time.Second, discardLogger())
	p.tick(context.Background())

	if !received {
		t.Fatal("expected a pulse to be posted")
	}
	if got.App != "chrome.exe" {
		t.Errorf("app = %q, want chrome.exe", got.App)
	}
	if got.Duration != 5 {
		t.Errorf("duration = %v, want 5", got.Duration)
	}
}

func TestTickSkipsUnresolvableWindow(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no pulse expected for an unresolvable window")
	}))
	defer srv.Close()

	p := NewPoller(&fakeSampler{ok: false}, srv.URL, time.Second, discardLogger())
	p.tick(context.Background())
}

func TestTickSkipsSamplerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no pulse expected on sampler error")
	}))
	defer srv.Close()

	p := NewPoller(&fakeSampler{err: errors.New("access denied")}, srv.URL, time.Second, discardLogger())
	p.tick(context.Background())
}

func TestTickDropsPulseWhenBackendUnreachable(t *testing.T) {
	// Point at a closed server: the tick must drop the pulse and return.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	p := NewPoller(&fakeSampler{app: "chrome.exe", ok: true}, srv.URL, time.Second, discardLogger())
	p.tick(context.Background())
}

func TestRunStopsOnCancel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	p := NewPoller(&fakeSampler{ok: false}, srv.URL, 10*time.Millisecond, discardLogger())

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := p.Run(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Run returned %v, want deadline exceeded", err)
	}
}

func TestNewPollerDefaultInterval(t *testing.T) {
	p := NewPoller(&fakeSampler{}, "http://localhost:8080", 0, discardLogger())
	if p.interval != DefaultInterval {
		t.Errorf("interval = %v, want %v", p.interval, DefaultInterval)
	}
}
