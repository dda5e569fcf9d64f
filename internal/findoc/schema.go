package findoc

import "encoding/json"

// Schema is a JSON-schema descriptor handed to the extraction service to
// constrain the shape of its output. Scalar fields are declared nullable so a
// partial read never fails the whole extraction.
type Schema json.RawMessage

// SchemaFor returns the extraction schema for the given document type.
func SchemaFor(t DocType) Schema {
	switch t {
	case DocTypePurchaseOrder:
		return Schema(purchaseOrderSchema)
	case DocTypeBankStatement:
		return Schema(bankStatementSchema)
	default:
		return Schema(invoiceSchema)
	}
}

const lineItemsSchema = `{
  "type": "array",
  "description": "List of line items",
  "items": {
    "type": "object",
    "properties": {
      "item_number": {"type": ["string", "null"]},
      "description": {"type": ["string", "null"]},
      "quantity": {"type": ["number", "null"]},
      "unit_price": {"type": ["number", "null"]},
      "amount": {"type": ["number", "null"]}
    }
  }
}`

const invoiceSchema = `{
  "type": "object",
  "properties": {
    "invoice_number": {"type": ["string", "null"], "description": "Invoice number or ID"},
    "po_number": {"type": ["string", "null"], "description": "Purchase order number if present"},
    "vendor_name": {"type": ["string", "null"], "description": "Vendor or seller company name"},
    "vendor_tax_id": {"type": ["string", "null"], "description": "Vendor tax ID or EIN"},
    "customer_name": {"type": ["string", "null"], "description": "Customer or buyer name"},
    "invoice_date": {"type": ["string", "null"], "description": "Invoice date"},
    "due_date": {"type": ["string", "null"], "description": "Payment due date"},
    "payment_terms": {"type": ["string", "null"], "description": "Payment terms (Net 30, etc)"},
    "subtotal": {"type": ["number", "null"], "description": "Subtotal before tax"},
    "tax_rate": {"type": ["number", "null"], "description": "Tax rate percentage"},
    "tax_amount": {"type": ["number", "null"], "description": "Total tax amount"},
    "total_amount": {"type": ["number", "null"], "description": "Total amount due"},
    "currency": {"type": ["string", "null"], "description": "Currency code (USD, EUR, etc)"},
    "line_items": ` + lineItemsSchema + `
  }
}`

const purchaseOrderSchema = `{
  "type": "object",
  "properties": {
    "po_number": {"type": ["string", "null"], "description": "Purchase order number"},
    "vendor_name": {"type": ["string", "null"], "description": "Vendor name"},
    "order_date": {"type": ["string", "null"], "description": "PO date"},
    "delivery_date": {"type": ["string", "null"], "description": "Expected delivery date"},
    "total_amount": {"type": ["number", "null"], "description": "Total PO amount"},
    "currency": {"type": ["string", "null"], "description": "Currency"},
    "line_items": ` + lineItemsSchema + `
  }
}`

const bankStatementSchema = `{
  "type": "object",
  "properties": {
    "account_number": {"type": ["string", "null"], "description": "Bank account number"},
    "account_holder": {"type": ["string", "null"], "description": "Account holder name"},
    "bank_name": {"type": ["string", "null"], "description": "Name of the bank"},
    "statement_period_start": {"type": ["string", "null"], "description": "Statement start date"},
    "statement_period_end": {"type": ["string", "null"], "description": "Statement end date"},
    "opening_balance": {"type": ["number", "null"], "description": "Opening balance amount"},
    "closing_balance": {"type": ["number", "null"], "description": "Closing balance amount"},
    "total_deposits": {"type": ["number", "null"], "description": "Total deposits/credits"},
    "total_withdrawals": {"type": ["number", "null"], "description": "Total withdrawals/debits"},
    "currency": {"type": ["string", "null"], "description": "Currency code"},
    "transactions": {
      "type": "array",
      "description": "List of transactions",
      "items": {
        "type": "object",
        "properties": {
          "date": {"type": ["string", "null"], "description": "Transaction date"},
          "description": {"type": ["string", "null"], "description": "Transaction description"},
          "amount": {"type": ["number", "null"], "description": "Transaction amount"},
          "type": {"type": ["string", "null"], "description": "Debit or Credit"},
          "balance": {"type": ["number", "null"], "description": "Balance after transaction"}
        }
      }
    }
  }
}`
