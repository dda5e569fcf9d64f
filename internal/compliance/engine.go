// Package compliance validates a single extracted invoice for internal
// consistency and produces a 0-100 score. Like the reconcile engine it is a
// pure function: bad input yields a failing verdict, never an error.
package compliance

import (
	"fmt"
	"math"
	"strconv"

	"finrecon-backend/internal/findoc"
)

// Status is the overall pass/fail outcome of a compliance check.
type Status string

const (
	StatusPass Status = "PASS"
	StatusFail Status = "FAIL"
)

// Verdict is the result of a compliance check on one invoice.
type Verdict struct {
	Status           Status   `json:"status"`
	ComplianceScore  int      `json:"compliance_score"`
	CriticalIssues   []string `json:"critical_issues"`
	Warnings         []string `json:"warnings"`
	RequiresApproval bool     `json:"requires_approval"`
}

const (
	// Totals off by more than two cents from subtotal+tax are flagged.
	taxTolerance = 0.02
	// Effective tax rates above this percentage draw a warning.
	maxPlausibleTaxRatePct = 20.0
	// Invoices above this amount always require manual approval.
	approvalThreshold = 10_000.0
	// Invoices above this amount draw a large-amount warning.
	largeAmountThreshold = 1_000_000.0

	criticalPenalty = 20
	warningPenalty  = 5
)

// Check validates the invoice's required fields, tax arithmetic, and amount
// sanity, returning a scored verdict.
func Check(inv findoc.ExtractedInvoice) Verdict {
	issues := []string{}
	warnings := []string{}

	if findoc.Str(inv.InvoiceNumber) == "" {
		issues = append(issues, "Missing required field: invoice_number")
	}
	if findoc.Str(inv.VendorName) == "" {
		issues = append(issues, "Missing required field: vendor_name")
	}
	if findoc.Str(inv.InvoiceDate) == "" {
		issues = append(issues, "Missing required field: invoice_date")
	}
	if findoc.Num(inv.TotalAmount) == 0 {
		issues = append(issues, "Missing required field: total_amount")
	}

	subtotal := findoc.Num(inv.Subtotal)
	tax := findoc.Num(inv.TaxAmount)
	total := findoc.Num(inv.TotalAmount)

	if subtotal > 0 && tax > 0 {
		expected := subtotal + tax
		if math.Abs(total-expected) > taxTolerance {
			issues = append(issues, fmt.Sprintf("Tax calculation error: %s + %s ≠ %s",
				formatAmount(subtotal), formatAmount(tax), formatAmount(total)))
		}
		effectiveRate := tax / subtotal * 100
		if effectiveRate > maxPlausibleTaxRatePct {
			warnings = append(warnings, fmt.Sprintf("Unusually high tax rate: %.1f%%", effectiveRate))
		}
	}

	if tax < 0 {
		issues = append(issues, "Negative tax amount")
	}

	if total <= 0 {
		issues = append(issues, "Total amount must be positive")
	}
	if total > largeAmountThreshold {
		warnings = append(warnings, "Large invoice amount - requires additional approval")
	}

	score := 100 - criticalPenalty*len(issues) - warningPenalty*len(warnings)
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	status := StatusPass
	if len(issues) > 0 {
		status = StatusFail
	}

	return Verdict{
		Status:           status,
		ComplianceScore:  score,
		CriticalIssues:   issues,
		Warnings:         warnings,
		RequiresApproval: len(issues) > 0 || total > approvalThreshold,
	}
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
