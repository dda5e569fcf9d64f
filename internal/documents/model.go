package documents

import (
	"encoding/json"
	"time"

	"finrecon-backend/internal/findoc"
)

// Document is an uploaded financial document after processing: stored bytes,
// recognized markdown, and the schema-shaped fields pulled out of it.
type Document struct {
	ID              string
	UserID          string
	FileName        string
	FileKey         string
	DocType         findoc.DocType
	Markdown        string
	ExtractedFields json.RawMessage
	ProcessedAt     time.Time
}

// Invoice decodes the extracted fields as an invoice. Wrong-shaped or missing
// fields come back zeroed.
func (d Document) Invoice() findoc.ExtractedInvoice {
	return findoc.DecodeInvoice(d.ExtractedFields)
}

// PurchaseOrder decodes the extracted fields as a purchase order.
func (d Document) PurchaseOrder() findoc.ExtractedPurchaseOrder {
	return findoc.DecodePurchaseOrder(d.ExtractedFields)
}

// BankStatement decodes the extracted fields as a bank statement.
func (d Document) BankStatement() findoc.ExtractedBankStatement {
	return findoc.DecodeBankStatement(d.ExtractedFields)
}
