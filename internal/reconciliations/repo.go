package reconciliations

import (
	"context"
	"errors"
)

var (
	ErrNotFound     = errors.New("reconciliation not found")
	ErrInvalidInput = errors.New("invalid input")
)

// Repo defines persistence operations for reconciliation history.
type Repo interface {
	Create(ctx context.Context, rec Reconciliation) error
	GetByID(ctx context.Context, userID, recID string) (Reconciliation, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]Reconciliation, error)
}
