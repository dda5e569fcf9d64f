package findoc

import (
	"encoding/json"
	"testing"
)

func TestDetectType(t *testing.T) {
	cases := []struct {
		name     string
		markdown string
		want     DocType
	}{
		{name: "invoice_header", markdown: "INVOICE\nBill To: Acme Corp", want: DocTypeInvoice},
		{name: "invoice_number", markdown: "Invoice No: 12345", want: DocTypeInvoice},
		{name: "purchase_order", markdown: "PURCHASE ORDER\nDelivery Date: 2024-05-01", want: DocTypePurchaseOrder},
		{name: "po_number", markdown: "PO Number: PO-7788", want: DocTypePurchaseOrder},
		{name: "bank_statement", markdown: "Account Statement\nOpening Balance: $100", want: DocTypeBankStatement},
		{name: "statement_period", markdown: "Statement Period: Jan 1 - Jan 31", want: DocTypeBankStatement},
		{name: "unknown_defaults_to_invoice", markdown: "lorem ipsum", want: DocTypeInvoice},
		{name: "empty", markdown: "", want: DocTypeInvoice},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DetectType(tc.markdown); got != tc.want {
				t.Fatalf("DetectType(%q) = %s, want %s", tc.markdown, got, tc.want)
			}
		})
	}
}

func TestSchemaForIsValidJSON(t *testing.T) {
	for _, dt := range []DocType{DocTypeInvoice, DocTypePurchaseOrder, DocTypeBankStatement} {
		if !json.Valid([]byte(SchemaFor(dt))) {
			t.Fatalf("schema for %s is not valid JSON", dt)
		}
	}
}
