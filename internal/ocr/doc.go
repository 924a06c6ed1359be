// Package ocr wraps the Tesseract OCR engine (via gosseract/v2) behind the
// text-extraction gateway used by label verification.
//
// The gateway downloads an image by URL, validates and re-encodes it to a
// temporary PNG (Tesseract works on file paths), and asks the engine for its
// best-effort transcription. An empty transcription is a valid result, not an
// error: a blank or occluded photo simply has no readable text.
//
// # Engine lifecycle
//
// A Tesseract client is expensive to construct, so TesseractEngine creates it
// lazily on first use and reuses it for every subsequent recognition. The
// client is not safe for concurrent recognition, so the engine serializes
// calls with a mutex; callers may fan out freely and the engine provides the
// required ordering. Close releases the client and must be called on
// shutdown.
//
// # Prerequisites
//
// Tesseract must be installed on the system together with the language data
// for the configured language:
//   - Ubuntu/Debian: apt-get install tesseract-ocr tesseract-ocr-por
//   - macOS: brew install tesseract tesseract-lang
//
// # Errors
//
// Failures are classified into two kinds: DownloadError when the image bytes
// cannot be fetched, and EngineError when Tesseract cannot be initialized,
// fails to recognize, or times out (EngineError.Timeout). Callers distinguish
// them with errors.As.
package ocr
