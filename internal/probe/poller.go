// Package probe implements the desktop activity probe: a fixed-interval
// poll of the foreground application, reported to the DevTrack server as
// app usage pulses.
package probe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// DefaultInterval is the poll cadence when none is configured.
const DefaultInterval = 5 * time.Second

// Sampler resolves the currently focused application. ok is false when no
// application can be resolved for this tick; that tick is skipped silently.
type Sampler interface {
	Sample() (appName string, ok bool, err error)
}

// Poller reports one app usage pulse per interval. A pulse that cannot be
// delivered is dropped, not queued: losing one interval of duration is an
// accepted failure mode, so the probe never blocks or retries.
type Poller struct {
	sampler  Sampler
	client   *http.Client
	endpoint string
	interval time.Duration
	logger   *slog.Logger
}

// NewPoller creates a poller reporting to the /app_log endpoint of the
// given server. interval <= 0 falls back to DefaultInterval.
func NewPoller(sampler Sampler, serverURL string, interval time.Duration, logger *slog.Logger) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Poller{
		sampler:  sampler,
		client:   &http.Client{Timeout: 2 * time.Second},
		endpoint: strings.TrimRight(serverURL, "/") + "/app_log",
		interval: interval,
		logger:   logger,
	}
}

// Run polls until the context is cancelled.
func (p *Poller) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			p.tick(ctx)
		}
	}
}

// tick samples the foreground application and reports one pulse.
func (p *Poller) tick(ctx context.Context) {
	appName, ok, err := p.sampler.Sample()
	if err != nil {
		p.logger.Debug("foreground window not resolvable", "error", err)
		return
	}
	if !ok {
		return
	}

	p.logger.Debug("active application", "app", appName)

	if err := p.report(ctx, appName); err != nil {
		p.logger.Warn("dropping sample, backend unreachable", "app", appName, "error", err)
	}
}

type pulse struct {
	App      string  `json:"app"`
	Duration float64 `json:"duration"`
}

// report posts one pulse with the poll interval as its duration.
func (p *Poller) report(ctx context.Context, appName string) error {
	body, err := json.Marshal(pulse{App: appName, Duration: p.interval.Seconds()})
	if err != nil {
		return fmt.Errorf("marshal pulse: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("post pulse: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("backend returned status %d", resp.StatusCode)
	}
	return nil
}
