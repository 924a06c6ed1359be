package verify

import (
	"fmt"
	"time"
)

// LabelKind enumerates the regulatory label types a reference can describe.
type LabelKind string

const (
	KindEAN     LabelKind = "EAN"
	KindDUN     LabelKind = "DUN"
	KindENCE    LabelKind = "ENCE"
	KindANATEL  LabelKind = "ANATEL"
	KindINMETRO LabelKind = "INMETRO"
	KindENERGY  LabelKind = "ENERGY"
	KindQRCode  LabelKind = "QR_CODE"
)

// Valid reports whether k is one of the known label kinds.
func (k LabelKind) Valid() bool {
	switch k {
	case KindEAN, KindDUN, KindENCE, KindANATEL, KindINMETRO, KindENERGY, KindQRCode:
		return true
	}
	return false
}

// Decision is the outcome of one verification.
type Decision string

const (
	DecisionApproved Decision = "APPROVED"
	DecisionRejected Decision = "REJECTED"
)

// LabelReference is the stored definition of what "correct" looks like for
// one label on one inspection-plan step. References are immutable once
// created; a change is a new reference superseding the old one.
type LabelReference struct {
	ID               string    `json:"id"`
	InspectionPlanID string    `json:"inspection_plan_id"`
	StepID           string    `json:"step_id"`
	Kind             LabelKind `json:"kind"`
	ImageURL         string    `json:"image_url"`
	Threshold        float64   `json:"threshold"`
	OriginalPDFURL   string    `json:"original_pdf_url,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// InvalidReferenceError reports a reference that can never be verified:
// a threshold outside [0,1] or an unknown label kind. It is raised before
// any extraction is attempted.
type InvalidReferenceError struct {
	ReferenceID string
	Reason      string
}

func (e *InvalidReferenceError) Error() string {
	return fmt.Sprintf("invalid label reference %s: %s", e.ReferenceID, e.Reason)
}

// Validate checks the reference invariants.
func (r *LabelReference) Validate() error {
	if r.Threshold < 0 || r.Threshold > 1 {
		return &InvalidReferenceError{
			ReferenceID: r.ID,
			Reason:      fmt.Sprintf("threshold %v outside [0,1]", r.Threshold),
		}
	}
	if !r.Kind.Valid() {
		return &InvalidReferenceError{
			ReferenceID: r.ID,
			Reason:      fmt.Sprintf("unknown label kind %q", r.Kind),
		}
	}
	if r.ImageURL == "" {
		return &InvalidReferenceError{ReferenceID: r.ID, Reason: "missing reference image URL"}
	}
	return nil
}

// ComparisonDetail is the auditable record of one text comparison. It is
// always populated, even when either side came back empty.
type ComparisonDetail struct {
	ReferenceText   string   `json:"reference_text"`
	SubmittedText   string   `json:"submitted_text"`
	Differences     []string `json:"differences"`
	ScorePercentage float64  `json:"score_percentage"`
}

// VerificationResult is the append-only outcome of comparing one submitted
// photo against one reference. Values are never mutated after construction.
type VerificationResult struct {
	ID                string           `json:"id"`
	ReferenceID       string           `json:"reference_id"`
	SessionID         string           `json:"inspection_session_id,omitempty"`
	OperatorID        string           `json:"operator_id,omitempty"`
	SubmittedImageURL string           `json:"submitted_image_url"`
	Score             float64          `json:"score"`
	Decision          Decision         `json:"decision"`
	Detail            ComparisonDetail `json:"detail"`
	CreatedAt         time.Time        `json:"created_at"`
}
