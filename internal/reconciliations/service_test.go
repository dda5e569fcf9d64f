package reconciliations

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"finrecon-backend/internal/compliance"
	"finrecon-backend/internal/documents"
	"finrecon-backend/internal/findoc"
	"finrecon-backend/internal/reconcile"
)

type fakeDocs struct {
	docs map[string]documents.Document
}

func (f *fakeDocs) Get(ctx context.Context, userID, documentID string) (documents.Document, error) {
	doc, ok := f.docs[documentID]
	if !ok || doc.UserID != userID {
		return documents.Document{}, documents.ErrNotFound
	}
	return doc, nil
}

type recordedStats struct {
	runs    int
	matched int
	flagged int
}

func (r *recordedStats) ReconciliationRun(ctx context.Context, userID string, matched, flagged bool) {
	r.runs++
	if matched {
		r.matched++
	}
	if flagged {
		r.flagged++
	}
}

func mustJSON(t *testing.T, v any) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal fixture: %v", err)
	}
	return raw
}

func invoiceDoc(t *testing.T, id, userID string, fields map[string]any) documents.Document {
	t.Helper()
	return documents.Document{
		ID:              id,
		UserID:          userID,
		DocType:         findoc.DocTypeInvoice,
		ExtractedFields: mustJSON(t, fields),
	}
}

func poDoc(t *testing.T, id, userID string, fields map[string]any) documents.Document {
	t.Helper()
	return documents.Document{
		ID:              id,
		UserID:          userID,
		DocType:         findoc.DocTypePurchaseOrder,
		ExtractedFields: mustJSON(t, fields),
	}
}

func TestRunPerfectMatch(t *testing.T) {
	docs := &fakeDocs{docs: map[string]documents.Document{
		"inv-1": invoiceDoc(t, "inv-1", "user-1", map[string]any{
			"invoice_number": "INV-001",
			"po_number":      "PO-001",
			"vendor_name":    "Acme Corp",
			"invoice_date":   "2024-05-01",
			"subtotal":       90.0,
			"tax_amount":     10.0,
			"total_amount":   100.0,
		}),
		"po-1": poDoc(t, "po-1", "user-1", map[string]any{
			"po_number":    "PO-001",
			"vendor_name":  "Acme Corp",
			"total_amount": 100.0,
		}),
	}}
	stats := &recordedStats{}
	svc := &Service{Repo: NewMemoryRepo(), Docs: docs, Stats: stats}

	rec, err := svc.Run(context.Background(), "user-1", "sess-1", "inv-1", "po-1")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !rec.Match.Matched {
		t.Fatalf("expected match, discrepancies: %v", rec.Match.Discrepancies)
	}
	if rec.Match.RiskLevel != reconcile.RiskLow {
		t.Fatalf("risk = %s, want LOW", rec.Match.RiskLevel)
	}
	if rec.Compliance.Status != compliance.StatusPass {
		t.Fatalf("compliance = %s, want PASS: %v", rec.Compliance.Status, rec.Compliance.CriticalIssues)
	}
	if rec.Flagged() {
		t.Fatal("clean run should not be flagged")
	}
	if stats.runs != 1 || stats.matched != 1 || stats.flagged != 0 {
		t.Fatalf("stats runs=%d matched=%d flagged=%d", stats.runs, stats.matched, stats.flagged)
	}

	got, err := svc.Get(context.Background(), "user-1", rec.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.InvoiceNumber != "INV-001" || got.VendorName != "Acme Corp" {
		t.Fatalf("stored run = %+v", got)
	}
}

func TestRunFlagsHighRisk(t *testing.T) {
	docs := &fakeDocs{docs: map[string]documents.Document{
		"inv-1": invoiceDoc(t, "inv-1", "user-1", map[string]any{
			"invoice_number": "INV-002",
			"vendor_name":    "Acme Corp",
			"invoice_date":   "2024-05-01",
			"total_amount":   1200.0,
		}),
		"po-1": poDoc(t, "po-1", "user-1", map[string]any{
			"po_number":    "PO-002",
			"vendor_name":  "Globex Inc",
			"total_amount": 1000.0,
		}),
	}}
	stats := &recordedStats{}
	svc := &Service{Repo: NewMemoryRepo(), Docs: docs, Stats: stats}

	rec, err := svc.Run(context.Background(), "user-1", "", "inv-1", "po-1")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if rec.Match.RiskLevel != reconcile.RiskHigh {
		t.Fatalf("risk = %s, want HIGH", rec.Match.RiskLevel)
	}
	if !rec.Flagged() {
		t.Fatal("high risk run should be flagged")
	}
	if stats.flagged != 1 {
		t.Fatalf("flagged = %d, want 1", stats.flagged)
	}
}

func TestRunWithoutPO(t *testing.T) {
	docs := &fakeDocs{docs: map[string]documents.Document{
		"inv-1": invoiceDoc(t, "inv-1", "user-1", map[string]any{
			"invoice_number": "INV-003",
			"vendor_name":    "Acme Corp",
			"invoice_date":   "2024-05-01",
			"total_amount":   500.0,
		}),
	}}
	svc := &Service{Repo: NewMemoryRepo(), Docs: docs}

	rec, err := svc.Run(context.Background(), "user-1", "", "inv-1", "")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if rec.Compliance.Status != compliance.StatusPass {
		t.Fatalf("compliance = %s: %v", rec.Compliance.Status, rec.Compliance.CriticalIssues)
	}
	if rec.PODocumentID != "" {
		t.Fatalf("po doc id = %q, want empty", rec.PODocumentID)
	}
}

func TestRunRejectsWrongDocTypes(t *testing.T) {
	docs := &fakeDocs{docs: map[string]documents.Document{
		"po-1": poDoc(t, "po-1", "user-1", map[string]any{"po_number": "PO-1"}),
		"inv-1": invoiceDoc(t, "inv-1", "user-1", map[string]any{
			"invoice_number": "INV-1", "vendor_name": "A", "invoice_date": "2024-01-01", "total_amount": 10.0,
		}),
	}}
	svc := &Service{Repo: NewMemoryRepo(), Docs: docs}

	if _, err := svc.Run(context.Background(), "user-1", "", "po-1", ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
	if _, err := svc.Run(context.Background(), "user-1", "", "inv-1", "inv-1"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}

func TestRunMissingDocument(t *testing.T) {
	svc := &Service{Repo: NewMemoryRepo(), Docs: &fakeDocs{docs: map[string]documents.Document{}}}
	if _, err := svc.Run(context.Background(), "user-1", "", "missing", ""); !errors.Is(err, documents.ErrNotFound) {
		t.Fatalf("err = %v, want documents.ErrNotFound", err)
	}
}

func TestListNewestFirst(t *testing.T) {
	docs := &fakeDocs{docs: map[string]documents.Document{
		"inv-1": invoiceDoc(t, "inv-1", "user-1", map[string]any{
			"invoice_number": "INV-A", "vendor_name": "A", "invoice_date": "2024-01-01", "total_amount": 10.0,
		}),
	}}
	svc := &Service{Repo: NewMemoryRepo(), Docs: docs}

	for i := 0; i < 3; i++ {
		if _, err := svc.Run(context.Background(), "user-1", "", "inv-1", ""); err != nil {
			t.Fatalf("Run %d: %v", i, err)
		}
	}

	recs, err := svc.List(context.Background(), "user-1", 2, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("len = %d, want 2", len(recs))
	}
}
