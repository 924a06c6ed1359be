package store

import (
	"database/sql"
	"fmt"

	"github.com/apex/log"
)

// InitSchema creates the label verification tables if they don't exist.
func InitSchema(db *sql.DB) error {
	log.Info("Initializing label verification database schema...")

	referencesTableSQL := `
	CREATE TABLE IF NOT EXISTS label_references(
		id VARCHAR(36) NOT NULL,
		inspection_plan_id VARCHAR(64) NOT NULL,
		step_id VARCHAR(64) NOT NULL,
		kind VARCHAR(16) NOT NULL,
		image_url TEXT NOT NULL,
		threshold DOUBLE NOT NULL,
		original_pdf_url TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		INDEX plan_step_idx (inspection_plan_id, step_id)
	)`

	if _, err := db.Exec(referencesTableSQL); err != nil {
		return fmt.Errorf("failed to create label_references table: %w", err)
	}
	log.Info("label_references table created/verified")

	resultsTableSQL := `
	CREATE TABLE IF NOT EXISTS verification_results(
		id VARCHAR(36) NOT NULL,
		reference_id VARCHAR(36) NOT NULL,
		session_id VARCHAR(64),
		operator_id VARCHAR(64),
		submitted_image_url TEXT NOT NULL,
		score DOUBLE NOT NULL,
		decision VARCHAR(16) NOT NULL,
		reference_text TEXT NOT NULL,
		submitted_text TEXT NOT NULL,
		differences JSON NOT NULL,
		score_percentage DOUBLE NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		INDEX reference_created_idx (reference_id, created_at)
	)`

	if _, err := db.Exec(resultsTableSQL); err != nil {
		return fmt.Errorf("failed to create verification_results table: %w", err)
	}
	log.Info("verification_results table created/verified")

	return nil
}
