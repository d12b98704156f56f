package intel

import (
	"fmt"
	"strings"
)

// Summary builds a human-readable sentence describing what the conversation
// yielded, listing nonzero categories in a fixed order (phones, handles,
// links, accounts, then up to the first five tactic keywords).
func (r *Record) Summary() string {
	var parts []string

	if n := len(r.PhoneNumbers); n > 0 {
		parts = append(parts, fmt.Sprintf("Extracted %d phone number(s)", n))
	}
	if n := len(r.PaymentHandles); n > 0 {
		parts = append(parts, fmt.Sprintf("Extracted %d UPI ID(s)", n))
	}
	if n := len(r.Links); n > 0 {
		parts = append(parts, fmt.Sprintf("Identified %d suspicious link(s)", n))
	}
	if n := len(r.AccountNumbers); n > 0 {
		parts = append(parts, fmt.Sprintf("Extracted %d bank account number(s)", n))
	}
	if len(r.Keywords) > 0 {
		top := r.Keywords
		if len(top) > 5 {
			top = top[:5]
		}
		parts = append(parts, "Key tactics: "+strings.Join(top, ", "))
	}

	if len(parts) == 0 {
		return "Limited intelligence extracted from conversation"
	}
	return strings.Join(parts, ". ") + "."
}

// ScamType classifies the conversation from the collected tactic keywords,
// first match in priority order wins.
func (r *Record) ScamType() string {
	keywords := strings.ToLower(strings.Join(r.Keywords, " "))

	anyOf := func(words ...string) bool {
		for _, w := range words {
			if strings.Contains(keywords, w) {
				return true
			}
		}
		return false
	}

	switch {
	case anyOf("prize", "winner", "won", "lottery"):
		return "Prize/Lottery Scam"
	case anyOf("bank", "account", "blocked", "suspended"):
		return "Bank Account Scam"
	case anyOf("kyc", "update", "verify"):
		return "KYC/Verification Scam"
	case anyOf("refund", "cashback"):
		return "Refund Scam"
	case anyOf("legal", "arrest", "court"):
		return "Threat/Extortion Scam"
	case len(r.Links) > 0:
		return "Phishing Scam"
	default:
		return "General Fraud"
	}
}
