package ocr

import (
	"errors"
	"fmt"
)

var errClosed = errors.New("engine is closed")

// DownloadError reports that an image could not be fetched from its URL.
// It is recoverable by retrying and is never treated as empty text.
type DownloadError struct {
	URL        string
	StatusCode int // zero when the request never produced a response
	Err        error
}

func (e *DownloadError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("download %s: unexpected status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("download %s: %v", e.URL, e.Err)
}

func (e *DownloadError) Unwrap() error { return e.Err }

// EngineError reports that the OCR engine could not be initialized, crashed
// during recognition, or exceeded the extraction timeout.
type EngineError struct {
	Op      string // "init" or "recognize"
	Timeout bool
	Err     error
}

func (e *EngineError) Error() string {
	if e.Timeout {
		return fmt.Sprintf("ocr %s: timed out: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("ocr %s: %v", e.Op, e.Err)
}

func (e *EngineError) Unwrap() error { return e.Err }

// IsTimeout reports whether err is an EngineError caused by a timeout.
func IsTimeout(err error) bool {
	var ee *EngineError
	return errors.As(err, &ee) && ee.Timeout
}
