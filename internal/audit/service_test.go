package audit

import (
	"context"
	"testing"
)

func TestRecordAndListNewestFirst(t *testing.T) {
	svc := NewService(NewMemoryStore())
	ctx := context.Background()

	svc.Record(ctx, "user-1", "sess-1", "login", "local")
	svc.Record(ctx, "user-1", "sess-1", "document_processed", "invoice.pdf")
	svc.Record(ctx, "user-1", "sess-1", "logout", "")
	svc.Record(ctx, "user-2", "sess-2", "login", "google oauth")

	entries, err := svc.ListByUser(ctx, "user-1", 10, 0)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0].Action != "logout" {
		t.Fatalf("expected newest entry first, got %s", entries[0].Action)
	}
	if entries[2].Action != "login" {
		t.Fatalf("expected oldest entry last, got %s", entries[2].Action)
	}
	for _, entry := range entries {
		if entry.ID == "" {
			t.Fatal("expected entry id")
		}
		if entry.SessionID != "sess-1" {
			t.Fatalf("expected session sess-1, got %s", entry.SessionID)
		}
	}
}

func TestRecordSkipsIncompleteEntries(t *testing.T) {
	svc := NewService(NewMemoryStore())
	ctx := context.Background()

	svc.Record(ctx, "", "sess-1", "login", "")
	svc.Record(ctx, "user-1", "sess-1", "", "")

	entries, err := svc.ListByUser(ctx, "user-1", 10, 0)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no entries, got %d", len(entries))
	}
}

func TestListByUserPagination(t *testing.T) {
	svc := NewService(NewMemoryStore())
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		svc.Record(ctx, "user-1", "sess-1", "document_processed", "")
	}

	page, err := svc.ListByUser(ctx, "user-1", 2, 4)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(page) != 1 {
		t.Fatalf("expected 1 entry on the last page, got %d", len(page))
	}

	empty, err := svc.ListByUser(ctx, "user-1", 2, 10)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("expected empty page, got %d", len(empty))
	}
}
