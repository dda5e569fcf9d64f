package findoc

import "strings"

// DetectType guesses the document type from the parsed markdown using keyword
// rules. Invoices are the default when nothing matches; callers can always
// override the guess.
func DetectType(markdown string) DocType {
	text := strings.ToLower(markdown)

	if containsAny(text, "invoice", "bill to", "invoice number", "invoice no", "invoice date") {
		return DocTypeInvoice
	}
	if containsAny(text, "purchase order", "po number", "p.o. number", "order date", "delivery date") {
		return DocTypePurchaseOrder
	}
	if containsAny(text, "bank statement", "account statement", "opening balance", "closing balance", "transaction", "statement period") {
		return DocTypeBankStatement
	}
	return DocTypeInvoice
}

func containsAny(text string, keywords ...string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
