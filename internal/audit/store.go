package audit

import "context"

type Store interface {
	Insert(ctx context.Context, entry Entry) error
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]Entry, error)
}
