package compliance

import (
	"reflect"
	"testing"

	"finrecon-backend/internal/findoc"
)

func cleanInvoice() findoc.ExtractedInvoice {
	return findoc.ExtractedInvoice{
		InvoiceNumber: findoc.StrPtr("INV1"),
		VendorName:    findoc.StrPtr("Acme"),
		InvoiceDate:   findoc.StrPtr("2024-01-01"),
		Subtotal:      findoc.NumPtr(90),
		TaxAmount:     findoc.NumPtr(10),
		TotalAmount:   findoc.NumPtr(100),
	}
}

func TestCheckCleanInvoicePasses(t *testing.T) {
	v := Check(cleanInvoice())

	if v.Status != StatusPass {
		t.Fatalf("expected PASS, got %s with issues %v", v.Status, v.CriticalIssues)
	}
	if v.ComplianceScore != 100 {
		t.Fatalf("expected score 100, got %d", v.ComplianceScore)
	}
	if len(v.Warnings) != 0 {
		t.Fatalf("expected no warnings (11.1%% tax rate is plausible), got %v", v.Warnings)
	}
	if v.RequiresApproval {
		t.Fatalf("expected no approval required for a $100 invoice")
	}
}

func TestCheckMissingFieldsAndNegativeTotal(t *testing.T) {
	inv := findoc.ExtractedInvoice{
		VendorName:  findoc.StrPtr("Acme"),
		InvoiceDate: findoc.StrPtr("2024-01-01"),
		TotalAmount: findoc.NumPtr(-5),
	}

	v := Check(inv)

	if v.Status != StatusFail {
		t.Fatalf("expected FAIL, got %s", v.Status)
	}
	want := []string{
		"Missing required field: invoice_number",
		"Total amount must be positive",
	}
	if !reflect.DeepEqual(v.CriticalIssues, want) {
		t.Fatalf("critical issues = %v, want %v", v.CriticalIssues, want)
	}
	if v.ComplianceScore != 60 {
		t.Fatalf("expected score 60, got %d", v.ComplianceScore)
	}
	if !v.RequiresApproval {
		t.Fatalf("expected approval required when critical issues exist")
	}
}

func TestCheckTaxArithmetic(t *testing.T) {
	cases := []struct {
		name      string
		subtotal  float64
		tax       float64
		total     float64
		wantIssue bool
	}{
		{name: "exact", subtotal: 90, tax: 10, total: 100},
		{name: "within_tolerance", subtotal: 90, tax: 10, total: 100.02},
		{name: "beyond_tolerance", subtotal: 90, tax: 10, total: 100.03, wantIssue: true},
		{name: "off_by_ten", subtotal: 90, tax: 10, total: 110, wantIssue: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			inv := cleanInvoice()
			inv.Subtotal = findoc.NumPtr(tc.subtotal)
			inv.TaxAmount = findoc.NumPtr(tc.tax)
			inv.TotalAmount = findoc.NumPtr(tc.total)

			v := Check(inv)

			got := containsPrefix(v.CriticalIssues, "Tax calculation error")
			if got != tc.wantIssue {
				t.Fatalf("tax issue = %v, want %v (issues %v)", got, tc.wantIssue, v.CriticalIssues)
			}
		})
	}
}

func TestCheckTaxArithmeticSkippedWithoutBothComponents(t *testing.T) {
	// A missing subtotal means the arithmetic cannot be checked at all.
	inv := cleanInvoice()
	inv.Subtotal = nil
	inv.TotalAmount = findoc.NumPtr(500)

	v := Check(inv)

	if containsPrefix(v.CriticalIssues, "Tax calculation error") {
		t.Fatalf("expected no tax arithmetic issue without subtotal, got %v", v.CriticalIssues)
	}
}

func TestCheckHighTaxRateWarning(t *testing.T) {
	inv := cleanInvoice()
	inv.Subtotal = findoc.NumPtr(100)
	inv.TaxAmount = findoc.NumPtr(25)
	inv.TotalAmount = findoc.NumPtr(125)

	v := Check(inv)

	if v.Status != StatusPass {
		t.Fatalf("high tax rate is a warning, not a failure; got %s (%v)", v.Status, v.CriticalIssues)
	}
	want := []string{"Unusually high tax rate: 25.0%"}
	if !reflect.DeepEqual(v.Warnings, want) {
		t.Fatalf("warnings = %v, want %v", v.Warnings, want)
	}
	if v.ComplianceScore != 95 {
		t.Fatalf("expected score 95, got %d", v.ComplianceScore)
	}
}

func TestCheckNegativeTax(t *testing.T) {
	inv := cleanInvoice()
	inv.Subtotal = findoc.NumPtr(100)
	inv.TaxAmount = findoc.NumPtr(-10)
	inv.TotalAmount = findoc.NumPtr(90)

	v := Check(inv)

	if !contains(v.CriticalIssues, "Negative tax amount") {
		t.Fatalf("expected negative tax issue, got %v", v.CriticalIssues)
	}
}

func TestCheckLargeAmountWarningAndApproval(t *testing.T) {
	inv := cleanInvoice()
	inv.Subtotal = nil
	inv.TaxAmount = nil
	inv.TotalAmount = findoc.NumPtr(2_000_000)

	v := Check(inv)

	if !contains(v.Warnings, "Large invoice amount - requires additional approval") {
		t.Fatalf("expected large amount warning, got %v", v.Warnings)
	}
	if !v.RequiresApproval {
		t.Fatalf("expected approval required above the threshold")
	}
	if v.Status != StatusPass {
		t.Fatalf("a large clean invoice still passes, got %s (%v)", v.Status, v.CriticalIssues)
	}
}

func TestCheckScoreStaysInRange(t *testing.T) {
	// An entirely empty invoice racks up enough penalties to floor the score.
	v := Check(findoc.ExtractedInvoice{})

	if v.ComplianceScore < 0 || v.ComplianceScore > 100 {
		t.Fatalf("score %d out of [0,100]", v.ComplianceScore)
	}
	if v.ComplianceScore != 0 {
		t.Fatalf("expected floored score 0 for empty invoice, got %d", v.ComplianceScore)
	}
	if v.Status != StatusFail {
		t.Fatalf("expected FAIL for empty invoice")
	}
}

func TestCheckDeterminism(t *testing.T) {
	inv := cleanInvoice()
	inv.TotalAmount = findoc.NumPtr(-3)

	first := Check(inv)
	second := Check(inv)

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical verdicts for identical inputs")
	}
}

func contains(items []string, want string) bool {
	for _, item := range items {
		if item == want {
			return true
		}
	}
	return false
}

func containsPrefix(items []string, prefix string) bool {
	for _, item := range items {
		if len(item) >= len(prefix) && item[:len(prefix)] == prefix {
			return true
		}
	}
	return false
}
