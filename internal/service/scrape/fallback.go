package scrape

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"skraper/internal/domain/scrape"
	"skraper/internal/logger"
)

// FallbackInvoker serves requests from a primary backend and switches to a
// secondary one only while the primary's tool is unavailable. Failures of a
// running primary are returned unchanged; there are no retries.
type FallbackInvoker struct {
	primary   scrape.Invoker
	secondary scrape.Invoker
}

// NewFallbackInvoker creates a new fallback invoker
func NewFallbackInvoker(primary, secondary scrape.Invoker) *FallbackInvoker {
	return &FallbackInvoker{primary: primary, secondary: secondary}
}

// Name returns the primary backend name
func (f *FallbackInvoker) Name() string {
	return f.primary.Name()
}

// Available reports whether the primary backend's tool can be run
func (f *FallbackInvoker) Available(ctx context.Context) bool {
	return f.primary.Available(ctx)
}

// FallbackName returns the secondary backend name
func (f *FallbackInvoker) FallbackName() string {
	return f.secondary.Name()
}

// FallbackAvailable reports whether the secondary backend can serve requests
func (f *FallbackInvoker) FallbackAvailable(ctx context.Context) bool {
	return f.secondary.Available(ctx)
}

// Invoke uses the primary backend when available, else the secondary
func (f *FallbackInvoker) Invoke(ctx context.Context, target scrape.Target, opts scrape.Options) (*scrape.RawOutput, error) {
	if f.primary.Available(ctx) {
		out, err := f.primary.Invoke(ctx, target, opts)
		if !errors.Is(err, scrape.ErrToolUnavailable) {
			return out, err
		}
	}

	logger.Log.Warn("Primary scraper unavailable, using fallback",
		zap.String("primary", f.primary.Name()),
		zap.String("fallback", f.secondary.Name()),
		logger.WithURL(target.URL),
	)
	return f.secondary.Invoke(ctx, target, opts)
}
