package report

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/lurelabs/lurebox/pkg/intel"
)

func TestBuildWireFormat(t *testing.T) {
	rec := intel.NewRecord()
	rec.Extract("Call +91 9876543210, send to fraud@upi and visit http://verify-bank.tk now to verify your account")

	f := Build("sess-1", true, 7, rec)

	if f.SessionID != "sess-1" {
		t.Errorf("SessionID = %q", f.SessionID)
	}
	if !f.ScamDetected {
		t.Error("ScamDetected should be true")
	}
	if f.TotalMessages != 7 {
		t.Errorf("TotalMessages = %d, want 7", f.TotalMessages)
	}
	if !f.ActionableIntel {
		t.Error("phone + handle + link should be actionable")
	}
	if f.ScamType == "" {
		t.Error("scam type should be inferred when detected")
	}

	raw, err := json.Marshal(f)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, key := range []string{
		`"sessionId"`, `"scamDetected"`, `"totalMessagesExchanged"`,
		`"extractedIntelligence"`, `"bankAccounts"`, `"upiIds"`,
		`"phishingLinks"`, `"phoneNumbers"`, `"suspiciousKeywords"`,
		`"agentNotes"`,
	} {
		if !strings.Contains(string(raw), key) {
			t.Errorf("wire payload missing %s", key)
		}
	}
}

func TestBuildEmptyRecord(t *testing.T) {
	f := Build("sess-2", false, 1, intel.NewRecord())

	if f.ActionableIntel {
		t.Error("empty record should not be actionable")
	}
	if f.AgentNotes != "Limited intelligence extracted from conversation" {
		t.Errorf("AgentNotes = %q", f.AgentNotes)
	}
	if f.ScamType != "" {
		t.Error("scam type should be empty when not detected")
	}

	raw, err := json.Marshal(f)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(raw), "null") {
		t.Errorf("intelligence arrays must serialize as [], got %s", raw)
	}
}

func TestBuildNilRecord(t *testing.T) {
	f := Build("sess-3", false, 0, nil)
	if f.Intelligence.PhoneNumbers == nil {
		t.Error("nil record should still yield empty arrays")
	}
	if f.AgentNotes == "" {
		t.Error("nil record should yield the limited-intel note")
	}
}
