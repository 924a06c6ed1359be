// Package textcompare implements the text-level comparison used for label
// verification: normalization of OCR output, an edit-distance similarity
// score, and a positional difference report for human review.
//
// All three operations work on plain strings and are independent of how the
// text was obtained. Scoring and reporting normalize their inputs with the
// same Normalize function, so the persisted audit record always matches what
// the decision was based on.
package textcompare
