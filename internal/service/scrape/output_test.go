package scrape

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skraper/internal/domain/scrape"
)

func TestParseOutput(t *testing.T) {
	t.Run("single object", func(t *testing.T) {
		data, n, err := ParseOutput([]byte(`{"id":"x"}`), scrape.Options{Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, 1, n)
		assert.Equal(t, "x", data.(map[string]any)["id"])
	})

	t.Run("array", func(t *testing.T) {
		data, n, err := ParseOutput([]byte(`[{"id":"x"},{"id":"y"}]`), scrape.Options{Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, 2, n)
		assert.Len(t, data, 2)
	})

	t.Run("wrapped posts", func(t *testing.T) {
		_, n, err := ParseOutput([]byte(`{"posts":[{},{},{}]}`), scrape.Options{Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, 3, n)
	})

	t.Run("ndjson keeps first record for single item", func(t *testing.T) {
		data, n, err := ParseOutput([]byte("{\"id\":\"x\"}\n{\"id\":\"y\"}\n"), scrape.Options{Limit: 1})
		require.NoError(t, err)
		assert.Equal(t, 1, n)
		assert.Equal(t, "x", data.(map[string]any)["id"])
	})

	t.Run("ndjson listing", func(t *testing.T) {
		data, n, err := ParseOutput([]byte("{\"id\":\"x\"}\n{\"id\":\"y\"}\n{\"id\":\"z\"}"), scrape.Options{Limit: 50})
		require.NoError(t, err)
		assert.Equal(t, 3, n)
		assert.Len(t, data, 3)
	})

	t.Run("raw output format", func(t *testing.T) {
		data, _, err := ParseOutput([]byte("a,b,c\n"), scrape.Options{Limit: 10, OutputFormat: "csv"})
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"raw_output": "a,b,c\n"}, data)
	})

	t.Run("empty", func(t *testing.T) {
		_, _, err := ParseOutput([]byte("  \n"), scrape.Options{Limit: 10})
		require.ErrorIs(t, err, scrape.ErrInvalidOutput)
	})

	t.Run("malformed second line", func(t *testing.T) {
		_, _, err := ParseOutput([]byte("{\"id\":\"x\"}\n{broken"), scrape.Options{Limit: 10})
		require.ErrorIs(t, err, scrape.ErrInvalidOutput)
	})
}

func TestPreviewTruncates(t *testing.T) {
	out := []byte(strings.Repeat("x", 800))
	assert.Len(t, Preview(out), 500)
	assert.Equal(t, "short", Preview([]byte("short")))
}
