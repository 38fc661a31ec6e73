package ingest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/AlexTLDR/guestlist/internal/storage"
)

// Fetcher retrieves CSV content from object storage through read-signed
// URLs. The pipeline never trusts client-supplied CSV bodies: everything
// it ingests is re-fetched from the originally uploaded object.
type Fetcher struct {
	store  storage.ObjectStore
	client *http.Client
}

func NewFetcher(store storage.ObjectStore) *Fetcher {
	return &Fetcher{
		store:  store,
		client: &http.Client{Timeout: 2 * time.Minute},
	}
}

// FetchFull retrieves the complete CSV body for a storage key.
func (f *Fetcher) FetchFull(ctx context.Context, key string) (string, error) {
	body, _, err := f.fetch(ctx, key, 0)
	return string(body), err
}

// FetchPrefix retrieves at most n bytes of the CSV for a storage key. The
// returned bool reports whether the content was truncated at n bytes,
// i.e. whether the last line may be a partial row.
func (f *Fetcher) FetchPrefix(ctx context.Context, key string, n int) ([]byte, bool, error) {
	return f.fetch(ctx, key, n)
}

func (f *Fetcher) fetch(ctx context.Context, key string, limit int) ([]byte, bool, error) {
	signed, err := f.store.IssueReadURL(ctx, key)
	if err != nil {
		return nil, false, fmt.Errorf("failed to presign read: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, signed.URL, nil)
	if err != nil {
		return nil, false, fmt.Errorf("failed to build fetch request: %w", err)
	}
	if limit > 0 {
		req.Header.Set("Range", fmt.Sprintf("bytes=0-%d", limit-1))
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, false, fmt.Errorf("failed to fetch CSV: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusPartialContent {
		return nil, false, fmt.Errorf("failed to fetch CSV: status %d", resp.StatusCode)
	}

	reader := io.Reader(resp.Body)
	if limit > 0 {
		// Not every storage backend honors Range; never buffer more than
		// the requested prefix either way.
		reader = io.LimitReader(reader, int64(limit))
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, false, fmt.Errorf("failed to read CSV body: %w", err)
	}

	truncated := limit > 0 && len(body) == limit
	return body, truncated, nil
}
