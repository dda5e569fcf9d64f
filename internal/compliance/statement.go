package compliance

import (
	"fmt"

	"github.com/shopspring/decimal"

	"finrecon-backend/internal/findoc"
)

// StatementVerdict is the result of validating a bank statement's balance
// arithmetic.
type StatementVerdict struct {
	Status         Status   `json:"status"`
	CriticalIssues []string `json:"critical_issues"`
	Warnings       []string `json:"warnings"`
}

// CheckStatement verifies that the statement's reported balances add up:
// opening + deposits - withdrawals should equal closing, and each
// transaction's running balance should follow from the previous one.
// Money arithmetic uses decimals so cent-level sums stay exact.
func CheckStatement(stmt findoc.ExtractedBankStatement) StatementVerdict {
	issues := []string{}
	warnings := []string{}

	opening := dec(stmt.OpeningBalance)
	closing := dec(stmt.ClosingBalance)
	deposits := dec(stmt.TotalDeposits)
	withdrawals := dec(stmt.TotalWithdrawals)

	if stmt.OpeningBalance != nil && stmt.ClosingBalance != nil {
		expected := opening.Add(deposits).Sub(withdrawals)
		if !expected.Equal(closing) {
			issues = append(issues, fmt.Sprintf(
				"Balance mismatch: %s + %s - %s ≠ %s",
				opening.StringFixed(2), deposits.StringFixed(2),
				withdrawals.StringFixed(2), closing.StringFixed(2)))
		}
	}

	if withdrawals.IsNegative() {
		issues = append(issues, "Negative total withdrawals")
	}
	if deposits.IsNegative() {
		issues = append(issues, "Negative total deposits")
	}

	prev := opening
	havePrev := stmt.OpeningBalance != nil
	for i, tx := range stmt.Transactions {
		if tx.Balance == nil {
			havePrev = false
			continue
		}
		balance := dec(tx.Balance)
		if havePrev && tx.Amount != nil {
			amount := dec(tx.Amount)
			credit := prev.Add(amount)
			debit := prev.Sub(amount)
			if !balance.Equal(credit) && !balance.Equal(debit) {
				warnings = append(warnings, fmt.Sprintf(
					"Running balance break at transaction %d: %s", i+1, balance.StringFixed(2)))
			}
		}
		prev = balance
		havePrev = true
	}

	status := StatusPass
	if len(issues) > 0 {
		status = StatusFail
	}
	return StatementVerdict{Status: status, CriticalIssues: issues, Warnings: warnings}
}

func dec(v *float64) decimal.Decimal {
	if v == nil {
		return decimal.Zero
	}
	return decimal.NewFromFloat(*v)
}
