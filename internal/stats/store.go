package stats

import "context"

// Counter names accepted by Increment.
const (
	CounterProcessed      = "documents_processed"
	CounterMatched        = "documents_matched"
	CounterFlagged        = "documents_flagged"
	CounterInvoices       = "invoices"
	CounterPurchaseOrders = "purchase_orders"
	CounterStatements     = "bank_statements"
)

type Store interface {
	Increment(ctx context.Context, userID, counter string, delta int) error
	GetByUser(ctx context.Context, userID string) (Stats, error)
}
