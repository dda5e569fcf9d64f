package findoc

import "testing"

func TestDecodeInvoice(t *testing.T) {
	raw := []byte(`{
		"invoice_number": "INV-9",
		"vendor_name": "Acme",
		"subtotal": 90,
		"tax_amount": 10,
		"total_amount": 100,
		"currency": null,
		"line_items": [
			{"description": "Widget", "quantity": 2, "unit_price": 45}
		]
	}`)

	inv := DecodeInvoice(raw)

	if Str(inv.InvoiceNumber) != "INV-9" {
		t.Fatalf("invoice number = %q", Str(inv.InvoiceNumber))
	}
	if Num(inv.TotalAmount) != 100 {
		t.Fatalf("total = %v", Num(inv.TotalAmount))
	}
	if inv.Currency != nil {
		t.Fatalf("expected null currency to stay unset")
	}
	if len(inv.LineItems) != 1 || Str(inv.LineItems[0].Description) != "Widget" {
		t.Fatalf("line items = %+v", inv.LineItems)
	}
}

func TestDecodeInvoiceWrongShapedFields(t *testing.T) {
	// A scalar where a list belongs, and a string where a number belongs,
	// are dropped instead of failing the whole decode.
	raw := []byte(`{
		"invoice_number": "INV-9",
		"total_amount": "a lot",
		"line_items": "not a list"
	}`)

	inv := DecodeInvoice(raw)

	if Str(inv.InvoiceNumber) != "INV-9" {
		t.Fatalf("invoice number = %q", Str(inv.InvoiceNumber))
	}
	if inv.TotalAmount != nil {
		t.Fatalf("expected wrong-typed total to stay unset")
	}
	if len(inv.LineItems) != 0 {
		t.Fatalf("expected wrong-shaped line items to decode empty, got %+v", inv.LineItems)
	}
}

func TestDecodeInvoiceGarbage(t *testing.T) {
	inv := DecodeInvoice([]byte(`not json at all`))
	if inv.InvoiceNumber != nil || len(inv.LineItems) != 0 {
		t.Fatalf("expected empty invoice from garbage input, got %+v", inv)
	}
}

func TestDecodePurchaseOrder(t *testing.T) {
	raw := []byte(`{"po_number": "PO-1", "vendor_name": "Acme", "total_amount": 1000}`)

	po := DecodePurchaseOrder(raw)

	if Str(po.PONumber) != "PO-1" || Num(po.TotalAmount) != 1000 {
		t.Fatalf("po = %+v", po)
	}
}

func TestDecodeBankStatement(t *testing.T) {
	raw := []byte(`{
		"account_number": "123",
		"opening_balance": 100.5,
		"transactions": [{"description": "coffee", "amount": 4.5, "balance": 96}]
	}`)

	stmt := DecodeBankStatement(raw)

	if Str(stmt.AccountNumber) != "123" || Num(stmt.OpeningBalance) != 100.5 {
		t.Fatalf("stmt = %+v", stmt)
	}
	if len(stmt.Transactions) != 1 || Num(stmt.Transactions[0].Amount) != 4.5 {
		t.Fatalf("transactions = %+v", stmt.Transactions)
	}
}
