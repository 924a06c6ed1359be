// Package verify implements the label verification engine: it extracts text
// from the reference and submitted images, scores their similarity, builds a
// difference report and decides approval against the reference threshold.
package verify

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/inspectia/label-verify/internal/textcompare"
)

// Extractor obtains raw text from an image referenced by URL. Satisfied by
// *ocr.Gateway; any OCR collaborator honoring the contract is valid.
// ExtractReferenceText serves immutable reference images, so implementations
// may cache those downloads; submitted photos go through ExtractText.
type Extractor interface {
	ExtractText(ctx context.Context, imageURL string) (string, error)
	ExtractReferenceText(ctx context.Context, imageURL string) (string, error)
}

// Request carries the caller-supplied inputs of one verification.
type Request struct {
	SubmittedImageURL string
	SessionID         string
	OperatorID        string
}

// Engine orchestrates extraction, scoring, diffing and the threshold
// decision. It holds no per-call state; a single Engine serves concurrent
// verifications.
type Engine struct {
	extractor Extractor
	observer  Observer
	now       func() time.Time
	newID     func() string
}

// NewEngine builds an engine around the given extractor. A nil observer
// disables observation.
func NewEngine(extractor Extractor, observer Observer) *Engine {
	if observer == nil {
		observer = NopObserver{}
	}
	return &Engine{
		extractor: extractor,
		observer:  observer,
		now:       time.Now,
		newID:     func() string { return uuid.NewString() },
	}
}

// Verify compares the photo behind req.SubmittedImageURL against ref and
// returns the resulting record. The caller persists it.
//
// The reference is validated before any extraction so a malformed reference
// never costs an OCR call. The two extractions run concurrently; if either
// fails the whole call fails with that error and nothing is scored, since a
// one-sided comparison is meaningless. The threshold comparison is inclusive:
// score >= threshold approves.
func (e *Engine) Verify(ctx context.Context, ref *LabelReference, req Request) (*VerificationResult, error) {
	if err := ref.Validate(); err != nil {
		return nil, err
	}

	var refText, subText string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		refText, err = e.extract(gctx, ref.ID, ref.ImageURL, e.extractor.ExtractReferenceText)
		return err
	})
	g.Go(func() error {
		var err error
		subText, err = e.extract(gctx, ref.ID, req.SubmittedImageURL, e.extractor.ExtractText)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// The persisted texts must be exactly what the scorer compared, so the
	// audit record can never disagree with the decision.
	normRef := textcompare.Normalize(refText)
	normSub := textcompare.Normalize(subText)

	scoreStart := e.now()
	score := textcompare.Score(normRef, normSub)
	e.observer.Scored(ref.ID, score, e.now().Sub(scoreStart))

	differences := textcompare.Differences(normRef, normSub)

	decision := DecisionRejected
	if score >= ref.Threshold {
		decision = DecisionApproved
	}
	e.observer.Decided(ref.ID, decision, score, ref.Threshold)

	return &VerificationResult{
		ID:                e.newID(),
		ReferenceID:       ref.ID,
		SessionID:         req.SessionID,
		OperatorID:        req.OperatorID,
		SubmittedImageURL: req.SubmittedImageURL,
		Score:             score,
		Decision:          decision,
		Detail: ComparisonDetail{
			ReferenceText:   normRef,
			SubmittedText:   normSub,
			Differences:     differences,
			ScorePercentage: score * 100,
		},
		CreatedAt: e.now(),
	}, nil
}

func (e *Engine) extract(ctx context.Context, referenceID, imageURL string,
	fn func(context.Context, string) (string, error)) (string, error) {
	e.observer.ExtractionStarted(referenceID, imageURL)
	start := e.now()
	text, err := fn(ctx, imageURL)
	e.observer.ExtractionFinished(referenceID, imageURL, len(text), e.now().Sub(start), err)
	return text, err
}
