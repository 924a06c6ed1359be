package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/inspectia/label-verify/internal/ocr"
	"github.com/inspectia/label-verify/internal/store"
	"github.com/inspectia/label-verify/internal/verify"
)

// HealthCheck returns the health status of the service.
func (s *Server) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "label-verify",
	})
}

// CreateReferenceRequest is the payload for registering a label reference.
// The image must already live in object storage; only its URL is taken here.
type CreateReferenceRequest struct {
	InspectionPlanID string  `json:"inspection_plan_id" binding:"required"`
	StepID           string  `json:"step_id" binding:"required"`
	Kind             string  `json:"kind" binding:"required"`
	ImageURL         string  `json:"image_url" binding:"required"`
	Threshold        float64 `json:"threshold"`
	OriginalPDFURL   string  `json:"original_pdf_url"`
}

// CreateReference registers a new label reference.
func (s *Server) CreateReference(c *gin.Context) {
	var req CreateReferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ref := &verify.LabelReference{
		ID:               uuid.NewString(),
		InspectionPlanID: req.InspectionPlanID,
		StepID:           req.StepID,
		Kind:             verify.LabelKind(req.Kind),
		ImageURL:         req.ImageURL,
		Threshold:        req.Threshold,
		OriginalPDFURL:   req.OriginalPDFURL,
		CreatedAt:        time.Now().UTC(),
	}
	if err := ref.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := s.references.CreateReference(c.Request.Context(), ref); err != nil {
		log.WithError(err).Error("failed to store label reference")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store reference"})
		return
	}

	c.JSON(http.StatusCreated, ref)
}

// GetReference returns one label reference by ID.
func (s *Server) GetReference(c *gin.Context) {
	ref, err := s.references.GetReference(c.Request.Context(), c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "reference not found"})
		return
	}
	if err != nil {
		log.WithError(err).Error("failed to load label reference")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load reference"})
		return
	}
	c.JSON(http.StatusOK, ref)
}

// VerifyRequest is the payload for verifying a submitted label photo.
type VerifyRequest struct {
	SubmittedImageURL   string `json:"submitted_image_url" binding:"required"`
	InspectionSessionID string `json:"inspection_session_id"`
	OperatorID          string `json:"operator_id"`
}

// VerifyLabel runs a verification against the referenced label and persists
// the result. Extraction failures abort the call and persist nothing.
func (s *Server) VerifyLabel(c *gin.Context) {
	var req VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ref, err := s.references.GetReference(c.Request.Context(), c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "reference not found"})
		return
	}
	if err != nil {
		log.WithError(err).Error("failed to load label reference")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load reference"})
		return
	}

	result, err := s.verifier.Verify(c.Request.Context(), ref, verify.Request{
		SubmittedImageURL: req.SubmittedImageURL,
		SessionID:         req.InspectionSessionID,
		OperatorID:        req.OperatorID,
	})
	if err != nil {
		s.renderVerifyError(c, err)
		return
	}

	if err := s.results.SaveResult(c.Request.Context(), result); err != nil {
		log.WithError(err).Error("failed to persist verification result")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to persist result"})
		return
	}

	c.JSON(http.StatusCreated, result)
}

// renderVerifyError maps the verification error taxonomy to status codes.
// A failure here is distinct from a REJECTED decision; the client gets an
// error and may retry, and no result has been recorded.
func (s *Server) renderVerifyError(c *gin.Context, err error) {
	var invalidRef *verify.InvalidReferenceError
	var downloadErr *ocr.DownloadError
	var engineErr *ocr.EngineError

	switch {
	case errors.As(err, &invalidRef):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &downloadErr):
		log.WithError(err).Warn("image download failed during verification")
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	case errors.As(err, &engineErr):
		log.WithError(err).Error("text extraction failed during verification")
		status := http.StatusBadGateway
		if engineErr.Timeout {
			status = http.StatusGatewayTimeout
		}
		c.JSON(status, gin.H{"error": err.Error()})
	default:
		log.WithError(err).Error("verification failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "verification failed"})
	}
}

// ListResults returns the verification history of one reference, newest
// first.
func (s *Server) ListResults(c *gin.Context) {
	referenceID := c.Param("id")

	if _, err := s.references.GetReference(c.Request.Context(), referenceID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "reference not found"})
			return
		}
		log.WithError(err).Error("failed to load label reference")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load reference"})
		return
	}

	results, err := s.results.ListResults(c.Request.Context(), referenceID)
	if err != nil {
		log.WithError(err).Error("failed to list verification results")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list results"})
		return
	}
	if results == nil {
		results = []verify.VerificationResult{}
	}

	c.JSON(http.StatusOK, gin.H{"results": results})
}
