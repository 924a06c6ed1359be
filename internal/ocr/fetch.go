package ocr

import (
	"context"
	"io"
	"net/http"
	"sync"
)

// imageCache keeps downloaded reference-image bytes keyed by URL so that
// immutable reference images are not re-fetched on every verification.
//
// Only reference downloads are stored (the gateway passes a cacheable hint),
// so one-shot submitted photos can never saturate the cache. The cache is
// bounded by entry count; entries are never invalidated because reference
// image handles are immutable by contract. Safe for concurrent use.
type imageCache struct {
	mu      sync.RWMutex
	images  map[string][]byte
	maxSize int
}

func newImageCache(maxSize int) *imageCache {
	return &imageCache{
		images:  make(map[string][]byte),
		maxSize: maxSize,
	}
}

func (c *imageCache) get(url string) ([]byte, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	data, ok := c.images[url]
	return data, ok
}

func (c *imageCache) put(url string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.images) >= c.maxSize {
		return
	}
	c.images[url] = data
}

// clear drops all cached images, freeing the associated memory.
func (c *imageCache) clear() {
	c.mu.Lock()
	c.images = make(map[string][]byte)
	c.mu.Unlock()
}

// download fetches the image bytes behind url, consulting and (for
// cacheable reference images) filling the cache. Any transport failure,
// non-2xx response or empty payload is reported as a DownloadError.
func (g *Gateway) download(ctx context.Context, url string, cacheable bool) ([]byte, error) {
	if cacheable {
		if data, ok := g.cache.get(url); ok {
			return data, nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &DownloadError{URL: url, Err: err}
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, &DownloadError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &DownloadError{URL: url, StatusCode: resp.StatusCode}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &DownloadError{URL: url, Err: err}
	}
	if len(data) == 0 {
		return nil, &DownloadError{URL: url, Err: errEmptyPayload}
	}

	if cacheable {
		g.cache.put(url, data)
	}
	return data, nil
}
