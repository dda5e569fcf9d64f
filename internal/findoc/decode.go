package findoc

import "encoding/json"

// The decoders below implement the defaulting policy for extraction output:
// a field the service omitted, nulled, or returned with the wrong shape is
// simply left unset. Decoding never fails; worst case is an empty struct.

// DecodeInvoice decodes an extraction payload into an invoice.
func DecodeInvoice(raw []byte) ExtractedInvoice {
	fields := objectFields(raw)
	var inv ExtractedInvoice
	decodeField(fields, "invoice_number", &inv.InvoiceNumber)
	decodeField(fields, "po_number", &inv.PONumber)
	decodeField(fields, "vendor_name", &inv.VendorName)
	decodeField(fields, "vendor_tax_id", &inv.VendorTaxID)
	decodeField(fields, "customer_name", &inv.CustomerName)
	decodeField(fields, "invoice_date", &inv.InvoiceDate)
	decodeField(fields, "due_date", &inv.DueDate)
	decodeField(fields, "payment_terms", &inv.PaymentTerms)
	decodeField(fields, "subtotal", &inv.Subtotal)
	decodeField(fields, "tax_rate", &inv.TaxRate)
	decodeField(fields, "tax_amount", &inv.TaxAmount)
	decodeField(fields, "total_amount", &inv.TotalAmount)
	decodeField(fields, "currency", &inv.Currency)
	decodeField(fields, "line_items", &inv.LineItems)
	return inv
}

// DecodePurchaseOrder decodes an extraction payload into a purchase order.
func DecodePurchaseOrder(raw []byte) ExtractedPurchaseOrder {
	fields := objectFields(raw)
	var po ExtractedPurchaseOrder
	decodeField(fields, "po_number", &po.PONumber)
	decodeField(fields, "vendor_name", &po.VendorName)
	decodeField(fields, "order_date", &po.OrderDate)
	decodeField(fields, "delivery_date", &po.DeliveryDate)
	decodeField(fields, "total_amount", &po.TotalAmount)
	decodeField(fields, "currency", &po.Currency)
	decodeField(fields, "line_items", &po.LineItems)
	return po
}

// DecodeBankStatement decodes an extraction payload into a bank statement.
func DecodeBankStatement(raw []byte) ExtractedBankStatement {
	fields := objectFields(raw)
	var stmt ExtractedBankStatement
	decodeField(fields, "account_number", &stmt.AccountNumber)
	decodeField(fields, "account_holder", &stmt.AccountHolder)
	decodeField(fields, "bank_name", &stmt.BankName)
	decodeField(fields, "statement_period_start", &stmt.PeriodStart)
	decodeField(fields, "statement_period_end", &stmt.PeriodEnd)
	decodeField(fields, "opening_balance", &stmt.OpeningBalance)
	decodeField(fields, "closing_balance", &stmt.ClosingBalance)
	decodeField(fields, "total_deposits", &stmt.TotalDeposits)
	decodeField(fields, "total_withdrawals", &stmt.TotalWithdrawals)
	decodeField(fields, "currency", &stmt.Currency)
	decodeField(fields, "transactions", &stmt.Transactions)
	return stmt
}

func objectFields(raw []byte) map[string]json.RawMessage {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil
	}
	return fields
}

func decodeField[T any](fields map[string]json.RawMessage, key string, dst *T) {
	rawVal, ok := fields[key]
	if !ok {
		return
	}
	var val T
	if err := json.Unmarshal(rawVal, &val); err != nil {
		return
	}
	*dst = val
}
