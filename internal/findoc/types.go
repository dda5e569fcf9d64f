package findoc

// DocType identifies the kind of financial document a file was recognized as.
type DocType string

const (
	DocTypeInvoice       DocType = "Invoice"
	DocTypePurchaseOrder DocType = "Purchase Order"
	DocTypeBankStatement DocType = "Bank Statement"
)

// Valid reports whether the doc type is one of the supported kinds.
func (t DocType) Valid() bool {
	switch t {
	case DocTypeInvoice, DocTypePurchaseOrder, DocTypeBankStatement:
		return true
	}
	return false
}

// LineItem is a single row of an invoice or purchase order. Every field is
// optional: the extraction service returns null for anything it cannot read.
type LineItem struct {
	ItemNumber  *string  `json:"item_number"`
	Description *string  `json:"description"`
	Quantity    *float64 `json:"quantity"`
	UnitPrice   *float64 `json:"unit_price"`
	Amount      *float64 `json:"amount"`
}

// ExtractedInvoice holds best-effort structured fields pulled from an invoice.
type ExtractedInvoice struct {
	InvoiceNumber *string    `json:"invoice_number"`
	PONumber      *string    `json:"po_number"`
	VendorName    *string    `json:"vendor_name"`
	VendorTaxID   *string    `json:"vendor_tax_id"`
	CustomerName  *string    `json:"customer_name"`
	InvoiceDate   *string    `json:"invoice_date"`
	DueDate       *string    `json:"due_date"`
	PaymentTerms  *string    `json:"payment_terms"`
	Subtotal      *float64   `json:"subtotal"`
	TaxRate       *float64   `json:"tax_rate"`
	TaxAmount     *float64   `json:"tax_amount"`
	TotalAmount   *float64   `json:"total_amount"`
	Currency      *string    `json:"currency"`
	LineItems     []LineItem `json:"line_items"`
}

// ExtractedPurchaseOrder holds best-effort structured fields from a PO.
type ExtractedPurchaseOrder struct {
	PONumber     *string    `json:"po_number"`
	VendorName   *string    `json:"vendor_name"`
	OrderDate    *string    `json:"order_date"`
	DeliveryDate *string    `json:"delivery_date"`
	TotalAmount  *float64   `json:"total_amount"`
	Currency     *string    `json:"currency"`
	LineItems    []LineItem `json:"line_items"`
}

// Transaction is one row of a bank statement.
type Transaction struct {
	Date        *string  `json:"date"`
	Description *string  `json:"description"`
	Amount      *float64 `json:"amount"`
	Type        *string  `json:"type"`
	Balance     *float64 `json:"balance"`
}

// ExtractedBankStatement holds best-effort structured fields from a statement.
type ExtractedBankStatement struct {
	AccountNumber    *string       `json:"account_number"`
	AccountHolder    *string       `json:"account_holder"`
	BankName         *string       `json:"bank_name"`
	PeriodStart      *string       `json:"statement_period_start"`
	PeriodEnd        *string       `json:"statement_period_end"`
	OpeningBalance   *float64      `json:"opening_balance"`
	ClosingBalance   *float64      `json:"closing_balance"`
	TotalDeposits    *float64      `json:"total_deposits"`
	TotalWithdrawals *float64      `json:"total_withdrawals"`
	Currency         *string       `json:"currency"`
	Transactions     []Transaction `json:"transactions"`
}

// Str dereferences an optional string, defaulting missing to "".
func Str(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

// Num dereferences an optional number, defaulting missing to 0.
func Num(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// StrPtr returns a pointer to the given string, for building test fixtures.
func StrPtr(v string) *string { return &v }

// NumPtr returns a pointer to the given number, for building test fixtures.
func NumPtr(v float64) *float64 { return &v }
