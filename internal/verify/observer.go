package verify

import (
	"time"

	"github.com/apex/log"
)

// Observer receives notifications at the defined points of a verification so
// logging and metrics stay out of the decision path. Implementations must be
// safe for concurrent use; both extractions report to the same observer.
type Observer interface {
	ExtractionStarted(referenceID, imageURL string)
	ExtractionFinished(referenceID, imageURL string, textLen int, took time.Duration, err error)
	Scored(referenceID string, score float64, took time.Duration)
	Decided(referenceID string, decision Decision, score, threshold float64)
}

// NopObserver ignores all notifications.
type NopObserver struct{}

func (NopObserver) ExtractionStarted(string, string) {}

func (NopObserver) ExtractionFinished(string, string, int, time.Duration, error) {}

func (NopObserver) Scored(string, float64, time.Duration) {}

func (NopObserver) Decided(string, Decision, float64, float64) {}

// LogObserver emits structured apex/log entries, mirroring the performance
// logging of the inspection platform this engine serves.
type LogObserver struct{}

func (LogObserver) ExtractionStarted(referenceID, imageURL string) {
	log.WithFields(log.Fields{
		"reference_id": referenceID,
		"image_url":    imageURL,
	}).Info("starting text extraction")
}

func (LogObserver) ExtractionFinished(referenceID, imageURL string, textLen int, took time.Duration, err error) {
	entry := log.WithFields(log.Fields{
		"reference_id": referenceID,
		"image_url":    imageURL,
		"text_length":  textLen,
		"duration_ms":  took.Milliseconds(),
	})
	if err != nil {
		entry.WithError(err).Error("text extraction failed")
		return
	}
	entry.Info("text extraction finished")
}

func (LogObserver) Scored(referenceID string, score float64, took time.Duration) {
	log.WithFields(log.Fields{
		"reference_id": referenceID,
		"score":        score,
		"duration_ms":  took.Milliseconds(),
	}).Info("similarity computed")
}

func (LogObserver) Decided(referenceID string, decision Decision, score, threshold float64) {
	log.WithFields(log.Fields{
		"reference_id": referenceID,
		"decision":     string(decision),
		"score":        score,
		"threshold":    threshold,
	}).Info("verification decided")
}
