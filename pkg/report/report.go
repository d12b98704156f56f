// Package report builds and delivers final engagement reports once a
// conversation terminates.
package report

import (
	"time"

	"github.com/lurelabs/lurebox/pkg/intel"
)

// Intelligence is the indicator section of a final report, keyed the way
// downstream consumers expect it.
type Intelligence struct {
	BankAccounts       []string `json:"bankAccounts"`
	UPIIDs             []string `json:"upiIds"`
	PhishingLinks      []string `json:"phishingLinks"`
	PhoneNumbers       []string `json:"phoneNumbers"`
	SuspiciousKeywords []string `json:"suspiciousKeywords"`
}

// Final is the one-shot report emitted when a session ends.
type Final struct {
	SessionID       string       `json:"sessionId"`
	ScamDetected    bool         `json:"scamDetected"`
	ScamType        string       `json:"scamType,omitempty"`
	TotalMessages   int          `json:"totalMessagesExchanged"`
	Intelligence    Intelligence `json:"extractedIntelligence"`
	ActionableIntel bool         `json:"actionableIntel"`
	AgentNotes      string       `json:"agentNotes"`
	GeneratedAt     time.Time    `json:"generatedAt"`
}

// Build assembles a final report from a session's accumulated record.
func Build(sessionID string, scamDetected bool, totalMessages int, rec *intel.Record) *Final {
	f := &Final{
		SessionID:     sessionID,
		ScamDetected:  scamDetected,
		TotalMessages: totalMessages,
		GeneratedAt:   time.Now().UTC(),
	}
	if rec != nil {
		f.Intelligence = Intelligence{
			BankAccounts:       emptyIfNil(rec.AccountNumbers),
			UPIIDs:             emptyIfNil(rec.PaymentHandles),
			PhishingLinks:      emptyIfNil(rec.Links),
			PhoneNumbers:       emptyIfNil(rec.PhoneNumbers),
			SuspiciousKeywords: emptyIfNil(rec.Keywords),
		}
		f.ActionableIntel = rec.HasActionable()
		f.AgentNotes = rec.Summary()
		if scamDetected {
			f.ScamType = rec.ScamType()
		}
	} else {
		f.Intelligence = Intelligence{
			BankAccounts:       []string{},
			UPIIDs:             []string{},
			PhishingLinks:      []string{},
			PhoneNumbers:       []string{},
			SuspiciousKeywords: []string{},
		}
		f.AgentNotes = "Limited intelligence extracted from conversation"
	}
	return f
}

// emptyIfNil keeps the wire format stable: consumers get [] rather than null.
func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
