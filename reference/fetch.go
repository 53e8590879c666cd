/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package reference

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultFetchTimeout bounds a single CDN fetch when Options.Fetcher is set
// and the caller's context carries no earlier deadline.
const DefaultFetchTimeout = 30 * time.Second

// DefaultMaxFetchSize caps a single CDN response (10 MB).
const DefaultMaxFetchSize int64 = 10 * 1024 * 1024

// Fetcher fetches a package-specifier $ref target over the network. It is
// consulted only when Options.Specifier fails to resolve a specifier
// locally; the required, local-only path never constructs one.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// HTTPFetcher is a bounded HTTP GET fetcher: one response size cap, one
// timeout, no redir?-following surprises beyond net/http's defaults.
type HTTPFetcher struct {
	maxSize int64
	client  *http.Client
}

// NewHTTPFetcher returns an HTTPFetcher capping responses at maxSize bytes.
// A maxSize of 0 uses DefaultMaxFetchSize.
func NewHTTPFetcher(maxSize int64) *HTTPFetcher {
	if maxSize == 0 {
		maxSize = DefaultMaxFetchSize
	}
	return &HTTPFetcher{maxSize: maxSize, client: &http.Client{}}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, DefaultFetchTimeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request for %s: %w", url, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("timeout fetching %s: %w", url, err)
		}
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s: %s", url, resp.Status)
	}

	limited := io.LimitReader(resp.Body, f.maxSize+1)
	content, err := io.ReadAll(limited)
	if err != nil {
		return nil, fmt.Errorf("reading response from %s: %w", url, err)
	}
	if int64(len(content)) > f.maxSize {
		return nil, fmt.Errorf("response from %s exceeds maximum size of %d bytes", url, f.maxSize)
	}
	return content, nil
}
