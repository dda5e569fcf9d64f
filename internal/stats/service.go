package stats

import (
	"context"

	"finrecon-backend/internal/findoc"
	"finrecon-backend/internal/shared/telemetry"
)

type Service struct {
	Store Store
}

func NewService(store Store) *Service {
	return &Service{Store: store}
}

// DocumentProcessed bumps the processed counter and the per-type counter for
// an upload. Failures only log.
func (s *Service) DocumentProcessed(ctx context.Context, userID string, docType findoc.DocType) {
	s.bump(ctx, userID, CounterProcessed, 1)
	switch docType {
	case findoc.DocTypeInvoice:
		s.bump(ctx, userID, CounterInvoices, 1)
	case findoc.DocTypePurchaseOrder:
		s.bump(ctx, userID, CounterPurchaseOrders, 1)
	case findoc.DocTypeBankStatement:
		s.bump(ctx, userID, CounterStatements, 1)
	}
}

// ReconciliationRun counts the invoice and PO pass through the engines as two
// processed documents and records the match outcome.
func (s *Service) ReconciliationRun(ctx context.Context, userID string, matched, flagged bool) {
	s.bump(ctx, userID, CounterProcessed, 2)
	if matched {
		s.bump(ctx, userID, CounterMatched, 1)
	}
	if flagged {
		s.bump(ctx, userID, CounterFlagged, 1)
	}
}

// GetByUser returns the user's counters, zeroed when nothing is recorded yet.
func (s *Service) GetByUser(ctx context.Context, userID string) (Stats, error) {
	return s.Store.GetByUser(ctx, userID)
}

func (s *Service) bump(ctx context.Context, userID, counter string, delta int) {
	if s == nil || s.Store == nil || userID == "" {
		return
	}
	if err := s.Store.Increment(ctx, userID, counter, delta); err != nil {
		telemetry.Error("stats.increment_failed", map[string]any{"counter": counter, "err": err.Error()})
	}
}
