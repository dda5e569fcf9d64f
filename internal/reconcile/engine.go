// Package reconcile implements two-way matching of an extracted invoice
// against an extracted purchase order. The engine is a pure function of its
// inputs: it performs no I/O, holds no state, and always returns a verdict.
package reconcile

import (
	"fmt"
	"math"
	"strings"

	"finrecon-backend/internal/findoc"
)

// RiskLevel classifies how risky paying the invoice would be.
type RiskLevel string

const (
	RiskLow    RiskLevel = "LOW"
	RiskMedium RiskLevel = "MEDIUM"
	RiskHigh   RiskLevel = "HIGH"
)

// Verdict is the result of reconciling an invoice against a purchase order.
type Verdict struct {
	Matched            bool      `json:"matched"`
	Discrepancies      []string  `json:"discrepancies"`
	AmountVariance     float64   `json:"amount_variance"`
	VariancePercentage float64   `json:"variance_percentage"`
	LineItemsMatched   int       `json:"line_items_matched"`
	TotalLineItems     int       `json:"total_line_items"`
	Recommendation     string    `json:"recommendation"`
	RiskLevel          RiskLevel `json:"risk_level"`
	InvoiceTotal       float64   `json:"invoice_total"`
	POTotal            float64   `json:"po_total"`
}

// Variance above this percentage of the PO total is flagged as a discrepancy.
const varianceThresholdPct = 5.0

// Unit prices within a cent of each other are considered equal.
const priceTolerance = 0.01

// Reconcile compares an invoice against a purchase order and returns a
// verdict with discrepancies, variance, and a risk-assessed recommendation.
// Missing numeric fields count as 0 and missing strings as empty, so
// malformed or partial extractions still produce a best-effort verdict
// rather than an error.
func Reconcile(inv findoc.ExtractedInvoice, po findoc.ExtractedPurchaseOrder) Verdict {
	discrepancies := []string{}

	invoiceTotal := findoc.Num(inv.TotalAmount)
	poTotal := findoc.Num(po.TotalAmount)

	invVendor := findoc.Str(inv.VendorName)
	poVendor := findoc.Str(po.VendorName)
	if !strings.EqualFold(invVendor, poVendor) {
		discrepancies = append(discrepancies, "Vendor name mismatch")
	}

	amountVariance := math.Abs(invoiceTotal - poTotal)
	variancePct := 0.0
	if poTotal > 0 {
		variancePct = amountVariance / poTotal * 100
	}
	if variancePct > varianceThresholdPct {
		discrepancies = append(discrepancies,
			fmt.Sprintf("Amount variance: $%.2f (%.1f%%)", amountVariance, variancePct))
	}

	// Nested scan, no consumption: a PO item stays in the candidate pool
	// after matching, so duplicate descriptions multi-match. This mirrors
	// the historical matching output and is relied on downstream.
	matched := 0
	for _, invItem := range inv.LineItems {
		invDesc := strings.ToLower(strings.TrimSpace(findoc.Str(invItem.Description)))
		if invDesc == "" {
			continue
		}
		for _, poItem := range po.LineItems {
			poDesc := strings.ToLower(strings.TrimSpace(findoc.Str(poItem.Description)))
			if poDesc == "" || invDesc != poDesc {
				continue
			}
			matched++
			if findoc.Num(invItem.Quantity) != findoc.Num(poItem.Quantity) {
				discrepancies = append(discrepancies,
					fmt.Sprintf("Quantity mismatch for %s", findoc.Str(invItem.Description)))
			}
			if math.Abs(findoc.Num(invItem.UnitPrice)-findoc.Num(poItem.UnitPrice)) > priceTolerance {
				discrepancies = append(discrepancies,
					fmt.Sprintf("Price mismatch for %s", findoc.Str(invItem.Description)))
			}
		}
	}

	var risk RiskLevel
	var recommendation string
	switch {
	case len(discrepancies) == 0:
		risk = RiskLow
		recommendation = "APPROVE - Perfect match"
	case len(discrepancies) <= 2 && variancePct < 2:
		risk = RiskMedium
		recommendation = "REVIEW - Minor discrepancies found"
	default:
		risk = RiskHigh
		recommendation = "REJECT - Significant discrepancies"
	}

	return Verdict{
		Matched:            len(discrepancies) == 0,
		Discrepancies:      discrepancies,
		AmountVariance:     amountVariance,
		VariancePercentage: variancePct,
		LineItemsMatched:   matched,
		TotalLineItems:     len(inv.LineItems),
		Recommendation:     recommendation,
		RiskLevel:          risk,
		InvoiceTotal:       invoiceTotal,
		POTotal:            poTotal,
	}
}
