package sessions

import (
	"context"
	"time"

	"github.com/google/uuid"

	"finrecon-backend/internal/shared/telemetry"
)

type Service struct {
	Repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// Start opens a session for a login and returns it.
func (s *Service) Start(ctx context.Context, userID string) (Session, error) {
	session := Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		StartedAt: time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, session); err != nil {
		return Session{}, err
	}
	return session, nil
}

// End closes a session on logout. Ending an already-ended session is a no-op.
func (s *Service) End(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return s.Repo.End(ctx, sessionID)
}

// IncrementDocuments bumps the session's processed counter. Failures only log:
// the counter is cosmetic and must not fail document processing.
func (s *Service) IncrementDocuments(ctx context.Context, sessionID string) {
	if sessionID == "" {
		return
	}
	if err := s.Repo.IncrementDocuments(ctx, sessionID); err != nil {
		telemetry.Error("sessions.increment_failed", map[string]any{"session_id": sessionID, "err": err.Error()})
	}
}

// ListByUser returns recent sessions for a user.
func (s *Service) ListByUser(ctx context.Context, userID string, limit int) ([]Session, error) {
	return s.Repo.ListByUser(ctx, userID, limit)
}
