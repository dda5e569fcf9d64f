package reconciliations

import (
	"time"

	"finrecon-backend/internal/compliance"
	"finrecon-backend/internal/reconcile"
)

// Reconciliation is one stored run of the matching and compliance engines
// over an invoice, optionally against a purchase order.
type Reconciliation struct {
	ID                string
	UserID            string
	InvoiceDocumentID string
	PODocumentID      string
	InvoiceNumber     string
	PONumber          string
	VendorName        string
	TotalAmount       float64
	Match             reconcile.Verdict
	Compliance        compliance.Verdict
	CreatedAt         time.Time
}

// Flagged reports whether the run needs human attention.
func (r Reconciliation) Flagged() bool {
	return r.Match.RiskLevel == reconcile.RiskHigh || r.Compliance.Status == compliance.StatusFail
}
