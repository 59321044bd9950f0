package scrape

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strings"

	"skraper/internal/domain/scrape"
)

const previewBytes = 500

var errNoOutput = errors.New("scraper returned no output")

// ParseOutput decodes tool stdout. A single JSON value is returned as is;
// several whitespace separated values (NDJSON) become a list, or only the
// first record when a single item is expected. Non-JSON output formats are
// wrapped as {"raw_output": stdout}.
func ParseOutput(stdout []byte, opts scrape.Options) (any, int, error) {
	if opts.OutputFormat != "" && !strings.EqualFold(opts.OutputFormat, "json") {
		return map[string]any{"raw_output": string(stdout)}, 1, nil
	}

	trimmed := bytes.TrimSpace(stdout)
	if len(trimmed) == 0 {
		return nil, 0, &scrape.InvalidOutputError{Err: errNoOutput}
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()

	var records []any
	for {
		var v any
		err := dec.Decode(&v)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, 0, &scrape.InvalidOutputError{Preview: Preview(stdout), Err: err}
		}
		records = append(records, v)
		if !opts.ExpectsListing() {
			// only the first record is wanted; the rest is not validated
			break
		}
	}

	if len(records) == 1 {
		return records[0], countRecords(records[0]), nil
	}
	return records, len(records), nil
}

// Preview returns at most the first 500 bytes of output as valid UTF-8
func Preview(out []byte) string {
	if len(out) > previewBytes {
		out = out[:previewBytes]
	}
	return strings.ToValidUTF8(string(out), "")
}

func countRecords(v any) int {
	switch t := v.(type) {
	case []any:
		return len(t)
	case map[string]any:
		for _, key := range []string{"posts", "data", "entries"} {
			if list, ok := t[key].([]any); ok {
				return len(list)
			}
		}
	}
	return 1
}
