package sessions

import (
	"context"
	"database/sql"
	"errors"
)

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, session Session) error {
	const query = `
INSERT INTO sessions (id, user_id, started_at, documents_processed)
VALUES ($1, $2, $3, 0)`
	_, err := r.DB.ExecContext(ctx, query, session.ID, session.UserID, session.StartedAt)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, sessionID string) (Session, error) {
	const query = `
SELECT id, user_id, started_at, ended_at, documents_processed
FROM sessions
WHERE id = $1
LIMIT 1`
	var session Session
	var endedAt sql.NullTime
	err := r.DB.QueryRowContext(ctx, query, sessionID).Scan(
		&session.ID,
		&session.UserID,
		&session.StartedAt,
		&endedAt,
		&session.DocumentsProcessed,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Session{}, ErrNotFound
		}
		return Session{}, err
	}
	if endedAt.Valid {
		session.EndedAt = &endedAt.Time
	}
	return session, nil
}

func (r *PGRepo) End(ctx context.Context, sessionID string) error {
	const query = `
UPDATE sessions
SET ended_at = now()
WHERE id = $1 AND ended_at IS NULL`
	_, err := r.DB.ExecContext(ctx, query, sessionID)
	return err
}

func (r *PGRepo) IncrementDocuments(ctx context.Context, sessionID string) error {
	const query = `
UPDATE sessions
SET documents_processed = documents_processed + 1
WHERE id = $1`
	_, err := r.DB.ExecContext(ctx, query, sessionID)
	return err
}

func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit int) ([]Session, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	const query = `
SELECT id, user_id, started_at, ended_at, documents_processed
FROM sessions
WHERE user_id = $1
ORDER BY started_at DESC
LIMIT $2`
	rows, err := r.DB.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Session
	for rows.Next() {
		var session Session
		var endedAt sql.NullTime
		if err := rows.Scan(
			&session.ID,
			&session.UserID,
			&session.StartedAt,
			&endedAt,
			&session.DocumentsProcessed,
		); err != nil {
			return nil, err
		}
		if endedAt.Valid {
			session.EndedAt = &endedAt.Time
		}
		out = append(out, session)
	}
	return out, rows.Err()
}

var _ Repo = (*PGRepo)(nil)
