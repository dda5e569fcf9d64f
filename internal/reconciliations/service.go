package reconciliations

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"finrecon-backend/internal/compliance"
	"finrecon-backend/internal/documents"
	"finrecon-backend/internal/findoc"
	"finrecon-backend/internal/reconcile"
	"finrecon-backend/internal/shared/metrics"
)

// AuditRecorder records a user action for the audit trail.
type AuditRecorder interface {
	Record(ctx context.Context, userID, sessionID, action, details string)
}

// StatsRecorder bumps per-user dashboard counters after a run.
type StatsRecorder interface {
	ReconciliationRun(ctx context.Context, userID string, matched, flagged bool)
}

// DocumentLoader fetches stored documents for the engines to consume.
type DocumentLoader interface {
	Get(ctx context.Context, userID, documentID string) (documents.Document, error)
}

// Service runs the matching and compliance engines over stored documents and
// persists the outcome.
type Service struct {
	Repo  Repo
	Docs  DocumentLoader
	Audit AuditRecorder
	Stats StatsRecorder
}

// Run reconciles an invoice document against an optional purchase order
// document. The compliance check always runs; matching runs only when a PO is
// given, otherwise the invoice is compared against an empty order and scored
// on its own fields.
func (s *Service) Run(ctx context.Context, userID, sessionID, invoiceDocID, poDocID string) (Reconciliation, error) {
	if userID == "" || invoiceDocID == "" {
		return Reconciliation{}, ErrInvalidInput
	}

	invoiceDoc, err := s.Docs.Get(ctx, userID, invoiceDocID)
	if err != nil {
		return Reconciliation{}, fmt.Errorf("load invoice document: %w", err)
	}
	if invoiceDoc.DocType != findoc.DocTypeInvoice {
		return Reconciliation{}, fmt.Errorf("%w: document %s is a %s, not an invoice", ErrInvalidInput, invoiceDocID, invoiceDoc.DocType)
	}
	invoice := invoiceDoc.Invoice()

	var po findoc.ExtractedPurchaseOrder
	if poDocID != "" {
		poDoc, err := s.Docs.Get(ctx, userID, poDocID)
		if err != nil {
			return Reconciliation{}, fmt.Errorf("load purchase order document: %w", err)
		}
		if poDoc.DocType != findoc.DocTypePurchaseOrder {
			return Reconciliation{}, fmt.Errorf("%w: document %s is a %s, not a purchase order", ErrInvalidInput, poDocID, poDoc.DocType)
		}
		po = poDoc.PurchaseOrder()
	}

	rec := Reconciliation{
		ID:                uuid.NewString(),
		UserID:            userID,
		InvoiceDocumentID: invoiceDocID,
		PODocumentID:      poDocID,
		InvoiceNumber:     findoc.Str(invoice.InvoiceNumber),
		PONumber:          findoc.Str(invoice.PONumber),
		VendorName:        findoc.Str(invoice.VendorName),
		TotalAmount:       findoc.Num(invoice.TotalAmount),
		Match:             reconcile.Reconcile(invoice, po),
		Compliance:        compliance.Check(invoice),
		CreatedAt:         time.Now().UTC(),
	}

	if err := s.Repo.Create(ctx, rec); err != nil {
		return Reconciliation{}, err
	}

	flagged := rec.Flagged()
	metrics.IncReconciliationsRun()
	if flagged {
		metrics.IncReconciliationsFlagged()
	}
	if s.Audit != nil {
		s.Audit.Record(ctx, userID, sessionID, "reconciliation_run",
			fmt.Sprintf("invoice %s vs PO %s: risk %s, compliance %s", rec.InvoiceNumber, rec.PONumber, rec.Match.RiskLevel, rec.Compliance.Status))
	}
	if s.Stats != nil {
		s.Stats.ReconciliationRun(ctx, userID, rec.Match.Matched, flagged)
	}

	return rec, nil
}

// Get returns one stored run owned by the user.
func (s *Service) Get(ctx context.Context, userID, recID string) (Reconciliation, error) {
	if userID == "" || recID == "" {
		return Reconciliation{}, ErrInvalidInput
	}
	return s.Repo.GetByID(ctx, userID, recID)
}

// List returns the user's reconciliation history newest-first.
func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]Reconciliation, error) {
	if userID == "" {
		return nil, ErrInvalidInput
	}
	return s.Repo.ListByUser(ctx, userID, limit, offset)
}
