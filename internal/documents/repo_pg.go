package documents

import (
	"context"
	"database/sql"
	"errors"

	"finrecon-backend/internal/findoc"
)

// PGRepo implements DocumentsRepo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const docColumns = `id, user_id, file_name, file_key, doc_type, markdown, extracted_fields, processed_at`

// Create inserts a processed document.
func (r *PGRepo) Create(ctx context.Context, doc Document) error {
	const query = `
INSERT INTO documents (id, user_id, file_name, file_key, doc_type, markdown, extracted_fields, processed_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	var fields any
	if len(doc.ExtractedFields) > 0 {
		fields = []byte(doc.ExtractedFields)
	}
	_, err := r.DB.ExecContext(
		ctx,
		query,
		doc.ID,
		doc.UserID,
		doc.FileName,
		doc.FileKey,
		string(doc.DocType),
		doc.Markdown,
		fields,
		doc.ProcessedAt,
	)
	return err
}

// GetByID fetches a document by ID for a user.
func (r *PGRepo) GetByID(ctx context.Context, userID, documentID string) (Document, error) {
	const query = `
SELECT ` + docColumns + `
FROM documents
WHERE user_id = $1 AND id = $2
LIMIT 1`
	row := r.DB.QueryRowContext(ctx, query, userID, documentID)
	doc, err := scanDocument(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Document{}, ErrNotFound
		}
		return Document{}, err
	}
	return doc, nil
}

// ListByUser lists documents newest-first, optionally filtered by type.
func (r *PGRepo) ListByUser(ctx context.Context, userID string, docType findoc.DocType, limit, offset int) ([]Document, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	query := `
SELECT ` + docColumns + `
FROM documents
WHERE user_id = $1
ORDER BY processed_at DESC
LIMIT $2 OFFSET $3`
	args := []any{userID, limit, offset}
	if docType != "" {
		query = `
SELECT ` + docColumns + `
FROM documents
WHERE user_id = $1 AND doc_type = $4
ORDER BY processed_at DESC
LIMIT $2 OFFSET $3`
		args = append(args, string(docType))
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Document
	for rows.Next() {
		doc, err := scanDocument(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, rows.Err()
}

// Delete removes a document owned by the user.
func (r *PGRepo) Delete(ctx context.Context, userID, documentID string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM documents WHERE user_id = $1 AND id = $2`, userID, documentID)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func scanDocument(scan func(dest ...any) error) (Document, error) {
	var doc Document
	var docType string
	var fields []byte
	if err := scan(
		&doc.ID,
		&doc.UserID,
		&doc.FileName,
		&doc.FileKey,
		&docType,
		&doc.Markdown,
		&fields,
		&doc.ProcessedAt,
	); err != nil {
		return Document{}, err
	}
	doc.DocType = findoc.DocType(docType)
	if len(fields) > 0 {
		doc.ExtractedFields = fields
	}
	return doc, nil
}

var _ DocumentsRepo = (*PGRepo)(nil)
