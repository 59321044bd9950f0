package scrape

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skraper/internal/domain/scrape"
)

type stubInvoker struct {
	name      string
	available bool
	err       error
	calls     int
}

func (s *stubInvoker) Name() string { return s.name }

func (s *stubInvoker) Available(ctx context.Context) bool { return s.available }

func (s *stubInvoker) Invoke(ctx context.Context, target scrape.Target, opts scrape.Options) (*scrape.RawOutput, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &scrape.RawOutput{Backend: s.name, Data: []any{}}, nil
}

func TestFallbackUsesPrimaryWhenAvailable(t *testing.T) {
	primary := &stubInvoker{name: "yt-dlp", available: true}
	secondary := &stubInvoker{name: "fixture", available: true}

	out, err := NewFallbackInvoker(primary, secondary).Invoke(context.Background(), instagramTarget, scrape.Options{})
	require.NoError(t, err)
	assert.Equal(t, "yt-dlp", out.Backend)
	assert.Equal(t, 0, secondary.calls)
}

func TestFallbackSwitchesWhenUnavailable(t *testing.T) {
	primary := &stubInvoker{name: "yt-dlp"}
	secondary := &stubInvoker{name: "fixture", available: true}

	f := NewFallbackInvoker(primary, secondary)
	assert.False(t, f.Available(context.Background()))
	assert.True(t, f.FallbackAvailable(context.Background()))
	assert.Equal(t, "yt-dlp", f.Name())
	assert.Equal(t, "fixture", f.FallbackName())

	out, err := f.Invoke(context.Background(), instagramTarget, scrape.Options{})
	require.NoError(t, err)
	assert.Equal(t, "fixture", out.Backend)
	assert.Equal(t, 0, primary.calls)
}

func TestFallbackSwitchesWhenToolVanishes(t *testing.T) {
	primary := &stubInvoker{name: "yt-dlp", available: true, err: fmt.Errorf("%w: yt-dlp", scrape.ErrToolUnavailable)}
	secondary := &stubInvoker{name: "fixture", available: true}

	out, err := NewFallbackInvoker(primary, secondary).Invoke(context.Background(), instagramTarget, scrape.Options{})
	require.NoError(t, err)
	assert.Equal(t, "fixture", out.Backend)
}

func TestFallbackDoesNotRetryFailures(t *testing.T) {
	primary := &stubInvoker{name: "yt-dlp", available: true, err: &scrape.ScrapeFailedError{ExitCode: 1, Stderr: "boom"}}
	secondary := &stubInvoker{name: "fixture", available: true}

	_, err := NewFallbackInvoker(primary, secondary).Invoke(context.Background(), instagramTarget, scrape.Options{})
	require.ErrorIs(t, err, scrape.ErrScrapeFailed)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 0, secondary.calls)
}
