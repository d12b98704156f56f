// Package intel mines actor messages for actionable fraud indicators:
// phone numbers, UPI-style payment handles, links, bank account numbers and
// tactic keywords. A Record accumulates indicators for one conversation and
// deduplicates across its whole lifetime, so a value first seen in turn 2 is
// never re-reported in turn 5.
package intel

import (
	"regexp"
	"strings"
	"time"
)

// Pre-compiled extraction patterns (compiled once, used many times).
var (
	rePhone   = regexp.MustCompile(`\+?\d[\d\s()-]{8,}\d`)
	reHandle  = regexp.MustCompile(`[\w.-]+@\w+`)
	reLink    = regexp.MustCompile(`(?i)https?://\S+|www\.\S+`)
	reAccount = regexp.MustCompile(`\b\d{9,18}\b`)
)

// tacticKeywords is the fixed phrase vocabulary tracked per conversation.
// Matching is case-insensitive substring; only the first occurrence in a
// conversation is recorded.
var tacticKeywords = []string{
	"verify now", "urgent action", "account blocked", "suspended",
	"click here", "limited time", "act now", "confirm immediately",
	"prize", "winner", "congratulations", "reward",
	"refund pending", "cashback", "bonus",
	"legal action", "arrest warrant", "court notice",
	"suspicious activity", "unauthorized access",
	"update kyc", "re-kyc", "pan update", "aadhaar update",
}

// Record holds the deduplicated indicators collected from one conversation.
// Insertion order is preserved for reporting. A Record only grows; it is
// mutated exclusively through Extract.
type Record struct {
	PhoneNumbers   []string  `json:"phone_numbers"`
	PaymentHandles []string  `json:"payment_handles"`
	Links          []string  `json:"links"`
	AccountNumbers []string  `json:"account_numbers"`
	Keywords       []string  `json:"keywords"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewRecord creates an empty indicator record.
func NewRecord() *Record {
	return &Record{}
}

// Extracted lists the indicators a single Extract call newly added.
// Values already present in the Record are omitted.
type Extracted struct {
	PhoneNumbers   []string `json:"phone_numbers,omitempty"`
	PaymentHandles []string `json:"payment_handles,omitempty"`
	Links          []string `json:"links,omitempty"`
	AccountNumbers []string `json:"account_numbers,omitempty"`
	Keywords       []string `json:"keywords,omitempty"`
}

// Empty reports whether the call added nothing new.
func (e Extracted) Empty() bool {
	return len(e.PhoneNumbers) == 0 && len(e.PaymentHandles) == 0 &&
		len(e.Links) == 0 && len(e.AccountNumbers) == 0 && len(e.Keywords) == 0
}

// Extract scans text, appends any indicators not yet in the record, and
// returns only the newly added ones. Extraction is total over arbitrary
// text: no match simply yields an empty result.
func (r *Record) Extract(text string) Extracted {
	var out Extracted

	for _, raw := range dedupe(rePhone.FindAllString(text, -1)) {
		phone := CleanPhone(raw)
		if phone == "" || contains(r.PhoneNumbers, phone) {
			continue
		}
		r.PhoneNumbers = append(r.PhoneNumbers, phone)
		out.PhoneNumbers = append(out.PhoneNumbers, phone)
	}

	for _, handle := range dedupe(reHandle.FindAllString(text, -1)) {
		// The handle regex also matches the local part of email-like
		// tokens; requiring @ guards against future pattern edits.
		if !strings.Contains(handle, "@") || contains(r.PaymentHandles, handle) {
			continue
		}
		r.PaymentHandles = append(r.PaymentHandles, handle)
		out.PaymentHandles = append(out.PaymentHandles, handle)
	}

	for _, link := range dedupe(reLink.FindAllString(text, -1)) {
		if contains(r.Links, link) {
			continue
		}
		r.Links = append(r.Links, link)
		out.Links = append(out.Links, link)
	}

	for _, account := range dedupe(reAccount.FindAllString(text, -1)) {
		if len(account) < 9 || contains(r.AccountNumbers, account) {
			continue
		}
		r.AccountNumbers = append(r.AccountNumbers, account)
		out.AccountNumbers = append(out.AccountNumbers, account)
	}

	folded := Fold(text)
	for _, kw := range tacticKeywords {
		if !strings.Contains(folded, kw) || contains(r.Keywords, kw) {
			continue
		}
		r.Keywords = append(r.Keywords, kw)
		out.Keywords = append(out.Keywords, kw)
	}

	if !out.Empty() {
		r.UpdatedAt = time.Now()
	}
	return out
}

// Total returns the number of indicators collected across all categories.
func (r *Record) Total() int {
	return len(r.PhoneNumbers) + len(r.PaymentHandles) + len(r.Links) +
		len(r.AccountNumbers) + len(r.Keywords)
}

// HasActionable reports whether the record contains at least one structured
// indicator (phone, handle, link or account number). Keywords alone do not
// count: they describe tactics, not contact or payment points.
func (r *Record) HasActionable() bool {
	return len(r.PhoneNumbers) > 0 || len(r.PaymentHandles) > 0 ||
		len(r.Links) > 0 || len(r.AccountNumbers) > 0
}

// CleanPhone normalizes a raw phone candidate: spaces, hyphens and
// parentheses are stripped, the remainder must be 10-15 digits (optionally
// prefixed +), and a leading + survives iff present in the raw match.
// Returns "" for candidates that fail validation.
func CleanPhone(raw string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '-', '(', ')':
			return -1
		}
		return r
	}, raw)

	digits := strings.TrimPrefix(cleaned, "+")
	if len(digits) < 10 || len(digits) > 15 {
		return ""
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return ""
		}
	}

	if strings.HasPrefix(strings.TrimSpace(raw), "+") {
		return "+" + digits
	}
	return digits
}

// Links returns every URL-shaped token in text, duplicates removed,
// order preserved. Used by the classifier for its URL co-occurrence bonus.
func Links(text string) []string {
	return dedupe(reLink.FindAllString(text, -1))
}

// HasPhoneCandidate reports whether text contains anything phone-shaped.
// Candidates are not validated; the classifier only needs presence.
func HasPhoneCandidate(text string) bool {
	return rePhone.MatchString(text)
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

// dedupe removes duplicates while preserving first-occurrence order. The
// input slice is left untouched.
func dedupe(matches []string) []string {
	seen := make(map[string]struct{}, len(matches))
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		out = append(out, m)
	}
	return out
}
