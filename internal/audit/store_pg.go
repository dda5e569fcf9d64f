package audit

import (
	"context"
	"database/sql"
)

type PGStore struct {
	DB *sql.DB
}

func (s *PGStore) Insert(ctx context.Context, entry Entry) error {
	const query = `
INSERT INTO audit_trail (id, user_id, session_id, action, details, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`
	var sessionID any
	if entry.SessionID != "" {
		sessionID = entry.SessionID
	}
	_, err := s.DB.ExecContext(ctx, query,
		entry.ID,
		entry.UserID,
		sessionID,
		entry.Action,
		entry.Details,
		entry.CreatedAt,
	)
	return err
}

func (s *PGStore) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	if offset < 0 {
		offset = 0
	}
	const query = `
SELECT id, user_id, session_id, action, details, created_at
FROM audit_trail
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`
	rows, err := s.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var entry Entry
		var sessionID sql.NullString
		if err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&sessionID,
			&entry.Action,
			&entry.Details,
			&entry.CreatedAt,
		); err != nil {
			return nil, err
		}
		if sessionID.Valid {
			entry.SessionID = sessionID.String
		}
		out = append(out, entry)
	}
	return out, rows.Err()
}

var _ Store = (*PGStore)(nil)
