package sessions

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("session not found")

type Repo interface {
	Create(ctx context.Context, session Session) error
	GetByID(ctx context.Context, sessionID string) (Session, error)
	End(ctx context.Context, sessionID string) error
	IncrementDocuments(ctx context.Context, sessionID string) error
	ListByUser(ctx context.Context, userID string, limit int) ([]Session, error)
}
