package reconciliations

import (
	"time"

	"finrecon-backend/internal/compliance"
	"finrecon-backend/internal/reconcile"
)

// Response is the outward-facing representation of a reconciliation run.
type Response struct {
	ID                string             `json:"id"`
	InvoiceDocumentID string             `json:"invoiceDocumentId"`
	PODocumentID      string             `json:"poDocumentId,omitempty"`
	InvoiceNumber     string             `json:"invoiceNumber"`
	PONumber          string             `json:"poNumber"`
	VendorName        string             `json:"vendorName"`
	TotalAmount       float64            `json:"totalAmount"`
	Match             reconcile.Verdict  `json:"match"`
	Compliance        compliance.Verdict `json:"compliance"`
	Flagged           bool               `json:"flagged"`
	CreatedAt         time.Time          `json:"createdAt"`
}

func toResponse(rec Reconciliation) Response {
	return Response{
		ID:                rec.ID,
		InvoiceDocumentID: rec.InvoiceDocumentID,
		PODocumentID:      rec.PODocumentID,
		InvoiceNumber:     rec.InvoiceNumber,
		PONumber:          rec.PONumber,
		VendorName:        rec.VendorName,
		TotalAmount:       rec.TotalAmount,
		Match:             rec.Match,
		Compliance:        rec.Compliance,
		Flagged:           rec.Flagged(),
		CreatedAt:         rec.CreatedAt,
	}
}
