package audit

import (
	"context"
	"time"

	"github.com/google/uuid"

	"finrecon-backend/internal/shared/telemetry"
)

type Service struct {
	Store Store
}

func NewService(store Store) *Service {
	return &Service{Store: store}
}

// Record writes an audit entry. Failures only log: the trail must never break
// the action it describes.
func (s *Service) Record(ctx context.Context, userID, sessionID, action, details string) {
	if s == nil || s.Store == nil || userID == "" || action == "" {
		return
	}
	entry := Entry{
		ID:        uuid.NewString(),
		UserID:    userID,
		SessionID: sessionID,
		Action:    action,
		Details:   details,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.Store.Insert(ctx, entry); err != nil {
		telemetry.Error("audit.record_failed", map[string]any{"action": action, "err": err.Error()})
	}
}

// ListByUser returns the user's audit trail newest-first.
func (s *Service) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Entry, error) {
	return s.Store.ListByUser(ctx, userID, limit, offset)
}
