package stats

import "time"

// Stats are the per-user dashboard counters.
type Stats struct {
	UserID             string    `json:"userId"`
	DocumentsProcessed int       `json:"documentsProcessed"`
	DocumentsMatched   int       `json:"documentsMatched"`
	DocumentsFlagged   int       `json:"documentsFlagged"`
	Invoices           int       `json:"invoices"`
	PurchaseOrders     int       `json:"purchaseOrders"`
	BankStatements     int       `json:"bankStatements"`
	UpdatedAt          time.Time `json:"updatedAt"`
}
