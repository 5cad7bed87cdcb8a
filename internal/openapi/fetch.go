package openapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// fetchTimeout bounds the single upstream fetch when no deadline is
// already on the context.
const fetchTimeout = 30 * time.Second

// maxFetchBytes caps how much of an upstream document we will read.
const maxFetchBytes = 16 << 20 // 16 MiB

// For testing: allow overriding the HTTP client.
var fetchClient = &http.Client{}

// IsURL reports whether a source string should be fetched rather than
// read from disk.
func IsURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// Fetch retrieves a specification from a URL. This is the only network
// hop in the grading pipeline and happens once, before any rule runs.
// Non-2xx responses surface as descriptive errors including the status.
func Fetch(ctx context.Context, url string) (*Node, error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, fetchTimeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("openapi: building request for %s: %w", url, err)
	}
	req.Header.Set("Accept", "application/yaml, application/json, text/plain")

	resp, err := fetchClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("openapi: fetching %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("openapi: fetching %s: upstream returned HTTP %d", url, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxFetchBytes))
	if err != nil {
		return nil, fmt.Errorf("openapi: reading response from %s: %w", url, err)
	}

	n, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("openapi: %s: %w", url, err)
	}
	return n, nil
}

// LoadSource resolves a path-or-URL source into a parsed Node.
func LoadSource(ctx context.Context, source string) (*Node, error) {
	if IsURL(source) {
		return Fetch(ctx, source)
	}
	return LoadFile(source)
}
