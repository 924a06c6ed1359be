package ocr

import (
	"context"
	"strings"
	"sync"

	"github.com/otiai10/gosseract/v2"
)

// Engine turns an image file into its textual transcription.
//
// Implementations own whatever stateful worker the underlying OCR library
// needs; Close releases it. Recognize must honor ctx cancellation and may be
// called from multiple goroutines.
type Engine interface {
	Recognize(ctx context.Context, imagePath string) (string, error)
	Close() error
}

// TesseractEngine is the gosseract-backed Engine. The underlying client is
// created lazily on first recognition and reused afterwards; recognitions are
// serialized because a gosseract client supports only one in-flight call.
type TesseractEngine struct {
	language string

	mu     sync.Mutex
	client *gosseract.Client
	closed bool
}

// NewTesseractEngine returns an engine recognizing the given Tesseract
// language (e.g. "por", "eng"). An empty language defaults to "por", the
// language of the regulatory labels this service was built for.
func NewTesseractEngine(language string) *TesseractEngine {
	if language == "" {
		language = "por"
	}
	return &TesseractEngine{language: language}
}

// Recognize runs Tesseract over the image at imagePath and returns the
// recognized text with surrounding whitespace trimmed. An empty string is a
// valid result when the image contains no readable text.
//
// Recognition holds the engine lock for its full duration. When ctx expires
// first, Recognize returns a timeout EngineError immediately; the abandoned
// recognition still finishes in the background and releases the lock, its
// output is discarded.
func (e *TesseractEngine) Recognize(ctx context.Context, imagePath string) (string, error) {
	type outcome struct {
		text string
		err  error
	}

	done := make(chan outcome, 1)
	go func() {
		e.mu.Lock()
		defer e.mu.Unlock()

		if e.closed {
			done <- outcome{err: &EngineError{Op: "recognize", Err: errClosed}}
			return
		}
		if err := e.ensureClient(); err != nil {
			done <- outcome{err: err}
			return
		}
		if err := e.client.SetImage(imagePath); err != nil {
			done <- outcome{err: &EngineError{Op: "recognize", Err: err}}
			return
		}
		text, err := e.client.Text()
		if err != nil {
			done <- outcome{err: &EngineError{Op: "recognize", Err: err}}
			return
		}
		done <- outcome{text: strings.TrimSpace(text)}
	}()

	select {
	case out := <-done:
		return out.text, out.err
	case <-ctx.Done():
		return "", &EngineError{Op: "recognize", Timeout: true, Err: ctx.Err()}
	}
}

// ensureClient lazily constructs the shared gosseract client.
// Caller must hold e.mu.
func (e *TesseractEngine) ensureClient() error {
	if e.client != nil {
		return nil
	}
	client := gosseract.NewClient()
	if err := client.SetLanguage(e.language); err != nil {
		client.Close()
		return &EngineError{Op: "init", Err: err}
	}
	e.client = client
	return nil
}

// Close releases the Tesseract client. Further Recognize calls fail.
func (e *TesseractEngine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.closed = true
	if e.client == nil {
		return nil
	}
	err := e.client.Close()
	e.client = nil
	return err
}
