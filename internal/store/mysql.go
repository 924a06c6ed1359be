package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/inspectia/label-verify/internal/verify"
)

// MySQLStore implements ReferenceRegistry and ResultStore on a MySQL
// database.
type MySQLStore struct {
	db *sql.DB
}

// NewMySQLStore wraps an open database handle.
func NewMySQLStore(db *sql.DB) *MySQLStore {
	return &MySQLStore{db: db}
}

// CreateReference inserts a new label reference. References are immutable;
// there is deliberately no update path.
func (s *MySQLStore) CreateReference(ctx context.Context, ref *verify.LabelReference) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO label_references
			(id, inspection_plan_id, step_id, kind, image_url, threshold, original_pdf_url, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		ref.ID, ref.InspectionPlanID, ref.StepID, string(ref.Kind),
		ref.ImageURL, ref.Threshold, nullable(ref.OriginalPDFURL), ref.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert label reference %s: %w", ref.ID, err)
	}
	return nil
}

// GetReference loads one reference by ID, or ErrNotFound.
func (s *MySQLStore) GetReference(ctx context.Context, id string) (*verify.LabelReference, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, inspection_plan_id, step_id, kind, image_url, threshold, original_pdf_url, created_at
		FROM label_references
		WHERE id = ?`, id)

	var ref verify.LabelReference
	var kind string
	var pdfURL sql.NullString
	err := row.Scan(&ref.ID, &ref.InspectionPlanID, &ref.StepID, &kind,
		&ref.ImageURL, &ref.Threshold, &pdfURL, &ref.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load label reference %s: %w", id, err)
	}

	ref.Kind = verify.LabelKind(kind)
	ref.OriginalPDFURL = pdfURL.String
	return &ref, nil
}

// SaveResult appends one verification result.
func (s *MySQLStore) SaveResult(ctx context.Context, result *verify.VerificationResult) error {
	differences, err := json.Marshal(result.Detail.Differences)
	if err != nil {
		return fmt.Errorf("failed to encode differences for result %s: %w", result.ID, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO verification_results
			(id, reference_id, session_id, operator_id, submitted_image_url,
			 score, decision, reference_text, submitted_text, differences,
			 score_percentage, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		result.ID, result.ReferenceID, nullable(result.SessionID), nullable(result.OperatorID),
		result.SubmittedImageURL, result.Score, string(result.Decision),
		result.Detail.ReferenceText, result.Detail.SubmittedText, string(differences),
		result.Detail.ScorePercentage, result.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert verification result %s: %w", result.ID, err)
	}
	return nil
}

// ListResults returns all results for one reference, newest first.
func (s *MySQLStore) ListResults(ctx context.Context, referenceID string) ([]verify.VerificationResult, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, reference_id, session_id, operator_id, submitted_image_url,
		       score, decision, reference_text, submitted_text, differences,
		       score_percentage, created_at
		FROM verification_results
		WHERE reference_id = ?
		ORDER BY created_at DESC`, referenceID)
	if err != nil {
		return nil, fmt.Errorf("failed to query results for reference %s: %w", referenceID, err)
	}
	defer rows.Close()

	var results []verify.VerificationResult
	for rows.Next() {
		var r verify.VerificationResult
		var decision, differences string
		var sessionID, operatorID sql.NullString
		if err := rows.Scan(&r.ID, &r.ReferenceID, &sessionID, &operatorID,
			&r.SubmittedImageURL, &r.Score, &decision,
			&r.Detail.ReferenceText, &r.Detail.SubmittedText, &differences,
			&r.Detail.ScorePercentage, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan verification result: %w", err)
		}
		r.SessionID = sessionID.String
		r.OperatorID = operatorID.String
		r.Decision = verify.Decision(decision)
		if err := json.Unmarshal([]byte(differences), &r.Detail.Differences); err != nil {
			return nil, fmt.Errorf("failed to decode differences for result %s: %w", r.ID, err)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over result rows: %w", err)
	}

	return results, nil
}

// nullable maps the empty string to SQL NULL for optional columns.
func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
