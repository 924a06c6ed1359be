package ocr

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/disintegration/imaging"
)

var errEmptyPayload = errors.New("empty image payload")

const defaultCacheSize = 64

// GatewayConfig tunes a Gateway. Zero values get sensible defaults.
type GatewayConfig struct {
	// HTTPClient downloads image bytes. Defaults to a client with a
	// 30 second timeout.
	HTTPClient *http.Client

	// ExtractTimeout bounds a single recognition. Zero disables the bound
	// (the request context still applies).
	ExtractTimeout time.Duration

	// CacheSize caps the number of downloaded images kept in memory.
	CacheSize int
}

// Gateway obtains raw text from images referenced by URL, hiding the OCR
// engine lifecycle from callers. It owns the shared engine handle; callers
// must Close the gateway on shutdown to release it.
type Gateway struct {
	engine         Engine
	client         *http.Client
	cache          *imageCache
	extractTimeout time.Duration
}

// NewGateway wraps engine with download and timeout handling.
func NewGateway(engine Engine, cfg GatewayConfig) *Gateway {
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	cacheSize := cfg.CacheSize
	if cacheSize <= 0 {
		cacheSize = defaultCacheSize
	}
	return &Gateway{
		engine:         engine,
		client:         client,
		cache:          newImageCache(cacheSize),
		extractTimeout: cfg.ExtractTimeout,
	}
}

// ExtractText downloads the image behind imageURL and returns the engine's
// best-effort transcription. An empty string is a valid result meaning no
// text was detected.
//
// The download is not cached: submitted photos carry a fresh URL per
// inspection attempt, so caching them would only crowd out reference images.
//
// Returns a DownloadError when the bytes cannot be fetched or do not decode
// as an image, and an EngineError when recognition fails or exceeds the
// configured extraction timeout.
func (g *Gateway) ExtractText(ctx context.Context, imageURL string) (string, error) {
	return g.extract(ctx, imageURL, false)
}

// ExtractReferenceText is ExtractText for reference images. Reference image
// handles are immutable, so the downloaded bytes are cached across
// verifications of the same reference.
func (g *Gateway) ExtractReferenceText(ctx context.Context, imageURL string) (string, error) {
	return g.extract(ctx, imageURL, true)
}

func (g *Gateway) extract(ctx context.Context, imageURL string, cacheable bool) (string, error) {
	data, err := g.download(ctx, imageURL, cacheable)
	if err != nil {
		return "", err
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return "", &DownloadError{URL: imageURL, Err: err}
	}

	// Tesseract wants a file path, so hand it a clean PNG regardless of
	// the original encoding.
	tmpFile, err := os.CreateTemp("", "label-extract-*.png")
	if err != nil {
		return "", &EngineError{Op: "recognize", Err: err}
	}
	tmpPath := tmpFile.Name()
	defer os.Remove(tmpPath)

	if err := imaging.Encode(tmpFile, img, imaging.PNG); err != nil {
		tmpFile.Close()
		return "", &EngineError{Op: "recognize", Err: err}
	}
	tmpFile.Close()

	if g.extractTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.extractTimeout)
		defer cancel()
	}

	text, err := g.engine.Recognize(ctx, tmpPath)
	if err != nil {
		var ee *EngineError
		if errors.As(err, &ee) {
			return "", err
		}
		return "", &EngineError{
			Op:      "recognize",
			Timeout: errors.Is(err, context.DeadlineExceeded),
			Err:     err,
		}
	}
	return text, nil
}

// ClearCache drops all cached downloads.
func (g *Gateway) ClearCache() { g.cache.clear() }

// Close releases the underlying OCR engine.
func (g *Gateway) Close() error { return g.engine.Close() }
