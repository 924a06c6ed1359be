// Package store persists label references and verification results in MySQL.
//
// The verification engine only sees the two narrow interfaces below; the
// MySQL implementation is one collaborator satisfying them. Results are
// append-only: they are inserted once and never updated.
package store

import (
	"context"
	"errors"

	"github.com/inspectia/label-verify/internal/verify"
)

// ErrNotFound is returned when a requested reference does not exist.
var ErrNotFound = errors.New("label reference not found")

// ReferenceRegistry is the read/write contract for label references.
type ReferenceRegistry interface {
	CreateReference(ctx context.Context, ref *verify.LabelReference) error
	GetReference(ctx context.Context, id string) (*verify.LabelReference, error)
}

// ResultStore is the append-only contract for verification results.
type ResultStore interface {
	SaveResult(ctx context.Context, result *verify.VerificationResult) error
	// ListResults returns all results for one reference, newest first.
	ListResults(ctx context.Context, referenceID string) ([]verify.VerificationResult, error)
}
