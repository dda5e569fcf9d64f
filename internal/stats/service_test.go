package stats

import (
	"context"
	"testing"

	"finrecon-backend/internal/findoc"
)

func TestCountersAccumulate(t *testing.T) {
	svc := NewService(NewMemoryStore())
	ctx := context.Background()

	svc.DocumentProcessed(ctx, "user-1", findoc.DocTypeInvoice)
	svc.DocumentProcessed(ctx, "user-1", findoc.DocTypePurchaseOrder)
	svc.DocumentProcessed(ctx, "user-1", findoc.DocTypeBankStatement)
	svc.ReconciliationRun(ctx, "user-1", true, false)
	svc.ReconciliationRun(ctx, "user-1", false, true)

	stats, err := svc.GetByUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("GetByUser: %v", err)
	}
	// 3 uploads plus 2 per reconciliation.
	if stats.DocumentsProcessed != 7 {
		t.Fatalf("expected 7 processed, got %d", stats.DocumentsProcessed)
	}
	if stats.Invoices != 1 || stats.PurchaseOrders != 1 || stats.BankStatements != 1 {
		t.Fatalf("expected one of each document type, got %+v", stats)
	}
	if stats.DocumentsMatched != 1 {
		t.Fatalf("expected 1 matched, got %d", stats.DocumentsMatched)
	}
	if stats.DocumentsFlagged != 1 {
		t.Fatalf("expected 1 flagged, got %d", stats.DocumentsFlagged)
	}
}

func TestGetByUserZeroedWhenEmpty(t *testing.T) {
	svc := NewService(NewMemoryStore())

	stats, err := svc.GetByUser(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("GetByUser: %v", err)
	}
	if stats.UserID != "user-1" {
		t.Fatalf("expected user id set, got %q", stats.UserID)
	}
	if stats.DocumentsProcessed != 0 || stats.DocumentsMatched != 0 || stats.DocumentsFlagged != 0 {
		t.Fatalf("expected zeroed counters, got %+v", stats)
	}
}

func TestBumpIgnoresEmptyUser(t *testing.T) {
	store := NewMemoryStore()
	svc := NewService(store)
	ctx := context.Background()

	svc.DocumentProcessed(ctx, "", findoc.DocTypeInvoice)

	stats, err := store.GetByUser(ctx, "")
	if err != nil {
		t.Fatalf("GetByUser: %v", err)
	}
	if stats.DocumentsProcessed != 0 {
		t.Fatalf("expected no counter movement, got %d", stats.DocumentsProcessed)
	}
}
