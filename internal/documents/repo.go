package documents

import (
	"context"
	"errors"

	"finrecon-backend/internal/findoc"
)

var (
	ErrNotFound     = errors.New("document not found")
	ErrInvalidInput = errors.New("invalid input")
)

// DocumentsRepo defines persistence operations for documents.
type DocumentsRepo interface {
	Create(ctx context.Context, doc Document) error
	GetByID(ctx context.Context, userID, documentID string) (Document, error)
	ListByUser(ctx context.Context, userID string, docType findoc.DocType, limit, offset int) ([]Document, error)
	Delete(ctx context.Context, userID, documentID string) error
}
