package reconcile

import (
	"reflect"
	"strings"
	"testing"

	"finrecon-backend/internal/findoc"
)

func TestReconcilePerfectMatch(t *testing.T) {
	inv := findoc.ExtractedInvoice{
		VendorName:  findoc.StrPtr("Acme"),
		TotalAmount: findoc.NumPtr(1000),
	}
	po := findoc.ExtractedPurchaseOrder{
		VendorName:  findoc.StrPtr("Acme"),
		TotalAmount: findoc.NumPtr(1000),
	}

	v := Reconcile(inv, po)

	if !v.Matched {
		t.Fatalf("expected matched, got discrepancies %v", v.Discrepancies)
	}
	if v.RiskLevel != RiskLow {
		t.Fatalf("expected LOW risk, got %s", v.RiskLevel)
	}
	if !strings.Contains(v.Recommendation, "APPROVE") {
		t.Fatalf("expected APPROVE recommendation, got %q", v.Recommendation)
	}
	if v.InvoiceTotal != 1000 || v.POTotal != 1000 {
		t.Fatalf("expected echoed totals 1000/1000, got %v/%v", v.InvoiceTotal, v.POTotal)
	}
}

func TestReconcileVendorAndAmountMismatch(t *testing.T) {
	inv := findoc.ExtractedInvoice{
		VendorName:  findoc.StrPtr("Acme"),
		TotalAmount: findoc.NumPtr(1200),
	}
	po := findoc.ExtractedPurchaseOrder{
		VendorName:  findoc.StrPtr("Beta"),
		TotalAmount: findoc.NumPtr(1000),
	}

	v := Reconcile(inv, po)

	if v.Matched {
		t.Fatalf("expected mismatch")
	}
	if v.RiskLevel != RiskHigh {
		t.Fatalf("expected HIGH risk, got %s", v.RiskLevel)
	}
	if v.AmountVariance != 200 {
		t.Fatalf("expected variance 200, got %v", v.AmountVariance)
	}
	if v.VariancePercentage != 20 {
		t.Fatalf("expected variance pct 20, got %v", v.VariancePercentage)
	}
	wantDiscrepancies := []string{
		"Vendor name mismatch",
		"Amount variance: $200.00 (20.0%)",
	}
	if !reflect.DeepEqual(v.Discrepancies, wantDiscrepancies) {
		t.Fatalf("discrepancies = %v, want %v", v.Discrepancies, wantDiscrepancies)
	}
}

func TestReconcileVendorCaseInsensitive(t *testing.T) {
	inv := findoc.ExtractedInvoice{
		VendorName:  findoc.StrPtr("ACME Corp"),
		TotalAmount: findoc.NumPtr(500),
	}
	po := findoc.ExtractedPurchaseOrder{
		VendorName:  findoc.StrPtr("acme corp"),
		TotalAmount: findoc.NumPtr(500),
	}

	if v := Reconcile(inv, po); !v.Matched {
		t.Fatalf("expected case-insensitive vendor match, got %v", v.Discrepancies)
	}
}

func TestReconcileZeroPOTotalAvoidsDivision(t *testing.T) {
	inv := findoc.ExtractedInvoice{TotalAmount: findoc.NumPtr(999)}
	po := findoc.ExtractedPurchaseOrder{}

	v := Reconcile(inv, po)

	if v.VariancePercentage != 0 {
		t.Fatalf("expected variance pct 0 with zero PO total, got %v", v.VariancePercentage)
	}
	if v.AmountVariance != 999 {
		t.Fatalf("expected absolute variance 999, got %v", v.AmountVariance)
	}
}

func TestReconcileMissingPOVendorFlagged(t *testing.T) {
	// A missing vendor name compares as empty string, so a named invoice
	// vendor against a nameless PO is a mismatch.
	inv := findoc.ExtractedInvoice{
		VendorName:  findoc.StrPtr("Acme"),
		TotalAmount: findoc.NumPtr(500),
	}
	po := findoc.ExtractedPurchaseOrder{
		TotalAmount: findoc.NumPtr(500),
	}

	v := Reconcile(inv, po)

	if v.Matched {
		t.Fatalf("expected mismatch when PO vendor missing")
	}
	want := []string{"Vendor name mismatch"}
	if !reflect.DeepEqual(v.Discrepancies, want) {
		t.Fatalf("discrepancies = %v, want %v", v.Discrepancies, want)
	}
}

func TestReconcileEmptyInputs(t *testing.T) {
	v := Reconcile(findoc.ExtractedInvoice{}, findoc.ExtractedPurchaseOrder{})

	// Both vendor names default to empty and compare equal; totals are
	// both zero.
	if !v.Matched {
		t.Fatalf("expected empty inputs to match, got %v", v.Discrepancies)
	}
	if v.RiskLevel != RiskLow {
		t.Fatalf("expected LOW risk, got %s", v.RiskLevel)
	}
}

func TestReconcileLineItems(t *testing.T) {
	item := func(desc string, qty, price float64) findoc.LineItem {
		return findoc.LineItem{
			Description: findoc.StrPtr(desc),
			Quantity:    findoc.NumPtr(qty),
			UnitPrice:   findoc.NumPtr(price),
		}
	}

	cases := []struct {
		name          string
		invItems      []findoc.LineItem
		poItems       []findoc.LineItem
		wantMatched   int
		wantDiscCount int
	}{
		{
			name:        "exact_match",
			invItems:    []findoc.LineItem{item("Widget", 2, 10)},
			poItems:     []findoc.LineItem{item("Widget", 2, 10)},
			wantMatched: 1,
		},
		{
			name:          "quantity_mismatch",
			invItems:      []findoc.LineItem{item("Widget", 3, 10)},
			poItems:       []findoc.LineItem{item("Widget", 2, 10)},
			wantMatched:   1,
			wantDiscCount: 1,
		},
		{
			name:          "price_mismatch_beyond_cent",
			invItems:      []findoc.LineItem{item("Widget", 2, 10.02)},
			poItems:       []findoc.LineItem{item("Widget", 2, 10)},
			wantMatched:   1,
			wantDiscCount: 1,
		},
		{
			name:        "price_within_tolerance",
			invItems:    []findoc.LineItem{item("Widget", 2, 10.01)},
			poItems:     []findoc.LineItem{item("Widget", 2, 10)},
			wantMatched: 1,
		},
		{
			name:        "description_case_and_space_folded",
			invItems:    []findoc.LineItem{item("  WIDGET ", 2, 10)},
			poItems:     []findoc.LineItem{item("widget", 2, 10)},
			wantMatched: 1,
		},
		{
			name:        "empty_description_never_matches",
			invItems:    []findoc.LineItem{item("", 2, 10)},
			poItems:     []findoc.LineItem{item("", 2, 10)},
			wantMatched: 0,
		},
		{
			// PO items are not consumed on match, so one invoice item
			// pairs with every PO item sharing its description.
			name:        "duplicate_po_descriptions_multi_match",
			invItems:    []findoc.LineItem{item("Widget", 2, 10)},
			poItems:     []findoc.LineItem{item("Widget", 2, 10), item("Widget", 2, 10)},
			wantMatched: 2,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			inv := findoc.ExtractedInvoice{
				VendorName:  findoc.StrPtr("Acme"),
				TotalAmount: findoc.NumPtr(100),
				LineItems:   tc.invItems,
			}
			po := findoc.ExtractedPurchaseOrder{
				VendorName:  findoc.StrPtr("Acme"),
				TotalAmount: findoc.NumPtr(100),
				LineItems:   tc.poItems,
			}

			v := Reconcile(inv, po)

			if v.LineItemsMatched != tc.wantMatched {
				t.Fatalf("line items matched = %d, want %d", v.LineItemsMatched, tc.wantMatched)
			}
			if len(v.Discrepancies) != tc.wantDiscCount {
				t.Fatalf("discrepancies = %v, want %d entries", v.Discrepancies, tc.wantDiscCount)
			}
			if v.TotalLineItems != len(tc.invItems) {
				t.Fatalf("total line items = %d, want %d", v.TotalLineItems, len(tc.invItems))
			}
		})
	}
}

func TestReconcileMediumRisk(t *testing.T) {
	// Two discrepancies with variance under 2% lands in REVIEW territory.
	inv := findoc.ExtractedInvoice{
		VendorName:  findoc.StrPtr("Acme"),
		TotalAmount: findoc.NumPtr(1010),
		LineItems: []findoc.LineItem{{
			Description: findoc.StrPtr("Widget"),
			Quantity:    findoc.NumPtr(3),
			UnitPrice:   findoc.NumPtr(11),
		}},
	}
	po := findoc.ExtractedPurchaseOrder{
		VendorName:  findoc.StrPtr("Acme"),
		TotalAmount: findoc.NumPtr(1000),
		LineItems: []findoc.LineItem{{
			Description: findoc.StrPtr("Widget"),
			Quantity:    findoc.NumPtr(2),
			UnitPrice:   findoc.NumPtr(10),
		}},
	}

	v := Reconcile(inv, po)

	if len(v.Discrepancies) != 2 {
		t.Fatalf("expected 2 discrepancies, got %v", v.Discrepancies)
	}
	if v.RiskLevel != RiskMedium {
		t.Fatalf("expected MEDIUM risk, got %s", v.RiskLevel)
	}
	if !strings.Contains(v.Recommendation, "REVIEW") {
		t.Fatalf("expected REVIEW recommendation, got %q", v.Recommendation)
	}
}

func TestReconcileDeterminism(t *testing.T) {
	inv := findoc.ExtractedInvoice{
		VendorName:  findoc.StrPtr("Acme"),
		TotalAmount: findoc.NumPtr(1200),
		LineItems: []findoc.LineItem{
			{Description: findoc.StrPtr("Widget"), Quantity: findoc.NumPtr(1), UnitPrice: findoc.NumPtr(5)},
			{Description: findoc.StrPtr("Gadget"), Quantity: findoc.NumPtr(2), UnitPrice: findoc.NumPtr(7)},
		},
	}
	po := findoc.ExtractedPurchaseOrder{
		VendorName:  findoc.StrPtr("Beta"),
		TotalAmount: findoc.NumPtr(1000),
		LineItems: []findoc.LineItem{
			{Description: findoc.StrPtr("Gadget"), Quantity: findoc.NumPtr(3), UnitPrice: findoc.NumPtr(7)},
		},
	}

	first := Reconcile(inv, po)
	second := Reconcile(inv, po)

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical verdicts for identical inputs")
	}
}
