package reconciliations

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
)

// PGRepo implements Repo using Postgres. Verdicts are stored as JSONB so the
// dashboard can render them without re-running the engines.
type PGRepo struct {
	DB *sql.DB
}

const recColumns = `id, user_id, invoice_document_id, po_document_id, invoice_number, po_number, vendor_name, total_amount, match_result, compliance_result, created_at`

func (r *PGRepo) Create(ctx context.Context, rec Reconciliation) error {
	matchJSON, err := json.Marshal(rec.Match)
	if err != nil {
		return err
	}
	complianceJSON, err := json.Marshal(rec.Compliance)
	if err != nil {
		return err
	}

	var poDocID any
	if rec.PODocumentID != "" {
		poDocID = rec.PODocumentID
	}

	const query = `
INSERT INTO reconciliations (id, user_id, invoice_document_id, po_document_id, invoice_number, po_number, vendor_name, total_amount, match_result, compliance_result, risk_level, compliance_status, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err = r.DB.ExecContext(ctx, query,
		rec.ID,
		rec.UserID,
		rec.InvoiceDocumentID,
		poDocID,
		rec.InvoiceNumber,
		rec.PONumber,
		rec.VendorName,
		rec.TotalAmount,
		matchJSON,
		complianceJSON,
		string(rec.Match.RiskLevel),
		string(rec.Compliance.Status),
		rec.CreatedAt,
	)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, userID, recID string) (Reconciliation, error) {
	const query = `
SELECT ` + recColumns + `
FROM reconciliations
WHERE user_id = $1 AND id = $2
LIMIT 1`
	row := r.DB.QueryRowContext(ctx, query, userID, recID)
	rec, err := scanReconciliation(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Reconciliation{}, ErrNotFound
		}
		return Reconciliation{}, err
	}
	return rec, nil
}

func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Reconciliation, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	const query = `
SELECT ` + recColumns + `
FROM reconciliations
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`
	rows, err := r.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Reconciliation
	for rows.Next() {
		rec, err := scanReconciliation(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func scanReconciliation(scan func(dest ...any) error) (Reconciliation, error) {
	var rec Reconciliation
	var poDocID sql.NullString
	var matchJSON, complianceJSON []byte
	if err := scan(
		&rec.ID,
		&rec.UserID,
		&rec.InvoiceDocumentID,
		&poDocID,
		&rec.InvoiceNumber,
		&rec.PONumber,
		&rec.VendorName,
		&rec.TotalAmount,
		&matchJSON,
		&complianceJSON,
		&rec.CreatedAt,
	); err != nil {
		return Reconciliation{}, err
	}
	if poDocID.Valid {
		rec.PODocumentID = poDocID.String
	}
	if err := json.Unmarshal(matchJSON, &rec.Match); err != nil {
		return Reconciliation{}, err
	}
	if err := json.Unmarshal(complianceJSON, &rec.Compliance); err != nil {
		return Reconciliation{}, err
	}
	return rec, nil
}

var _ Repo = (*PGRepo)(nil)
