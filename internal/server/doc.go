// Package server exposes the label verification operations over HTTP:
// creating label references, verifying a submitted photo against one, and
// reading a reference's result history.
//
// The handlers map the engine's error taxonomy onto status codes: an invalid
// reference is a 400, an unknown one a 404, a failed image download a 502 and
// an OCR failure a 502 (504 when it timed out). A failed verification is
// never recorded as REJECTED; nothing is persisted unless the engine
// produced a decision.
package server
