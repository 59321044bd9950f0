package scrape

import (
	"context"
	"os/exec"
	"sync"
	"time"

	"go.uber.org/zap"

	"skraper/internal/logger"
	"skraper/internal/metrics"
)

const probeTimeout = 10 * time.Second

// AvailabilityChecker probes a scraper tool and caches the answer for a TTL
type AvailabilityChecker struct {
	path string
	args []string
	ttl  time.Duration
	now  func() time.Time

	mu        sync.Mutex
	checked   bool
	checkedAt time.Time
	available bool
}

// NewAvailabilityChecker creates a checker running `path args...`. A
// non-positive ttl probes on every call.
func NewAvailabilityChecker(path string, args []string, ttl time.Duration) *AvailabilityChecker {
	return &AvailabilityChecker{
		path: path,
		args: args,
		ttl:  ttl,
		now:  time.Now,
	}
}

// ProbeArgs returns the arguments used to check a tool kind
func ProbeArgs(kind string) []string {
	if kind == KindSkraper {
		return []string{"--help"}
	}
	return []string{"--version"}
}

// Available reports whether the tool answered its last probe with exit 0.
// Concurrent callers share one probe. The probe runs detached from ctx's
// cancellation so one aborted request cannot cache a working tool as missing.
func (c *AvailabilityChecker) Available(ctx context.Context) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.checked && c.ttl > 0 && c.now().Sub(c.checkedAt) < c.ttl {
		return c.available
	}

	c.available = c.probe(context.WithoutCancel(ctx))
	c.checked = true
	c.checkedAt = c.now()

	gauge := 0.0
	if c.available {
		gauge = 1
	}
	metrics.Get().ToolAvailable.WithLabelValues(c.path).Set(gauge)

	return c.available
}

// Invalidate drops the cached answer
func (c *AvailabilityChecker) Invalidate() {
	c.mu.Lock()
	c.checked = false
	c.mu.Unlock()
}

func (c *AvailabilityChecker) probe(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, c.path, c.args...)
	cmd.WaitDelay = time.Second
	if err := cmd.Run(); err != nil {
		logger.Log.Warn("Scraper tool probe failed",
			zap.String("tool", c.path),
			zap.Error(err),
		)
		return false
	}
	return true
}
