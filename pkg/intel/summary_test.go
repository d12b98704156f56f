package intel

import "testing"

func TestSummary(t *testing.T) {
	r := NewRecord()
	r.Extract("Call +91 9876543210, pay scammer@upi, urgent action at http://x.tk")

	got := r.Summary()
	want := "Extracted 1 phone number(s). Extracted 1 UPI ID(s). " +
		"Identified 1 suspicious link(s). Extracted 1 bank account number(s). " +
		"Key tactics: urgent action."
	if got != want {
		t.Errorf("Summary() = %q, want %q", got, want)
	}
}

func TestSummaryEmpty(t *testing.T) {
	if got := NewRecord().Summary(); got != "Limited intelligence extracted from conversation" {
		t.Errorf("Summary() = %q", got)
	}
}

func TestScamType(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"prize beats everything", "congratulations winner, your account blocked, prize inside", "Prize/Lottery Scam"},
		{"bank", "your account blocked until re-kyc", "Bank Account Scam"},
		{"kyc", "please update kyc today", "KYC/Verification Scam"},
		{"refund", "your refund pending, claim cashback", "Refund Scam"},
		{"extortion", "legal action and arrest warrant issued", "Threat/Extortion Scam"},
		{"verify keyword", "verify now please", "KYC/Verification Scam"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRecord()
			r.Extract(tt.text)
			if got := r.ScamType(); got != tt.want {
				t.Errorf("ScamType() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestScamTypePhishingFallback(t *testing.T) {
	r := NewRecord()
	r.Extract("see http://totally-benign-wording.example")
	if got := r.ScamType(); got != "Phishing Scam" {
		t.Errorf("ScamType() = %q, want Phishing Scam", got)
	}
}

func TestScamTypeGeneralFraud(t *testing.T) {
	if got := NewRecord().ScamType(); got != "General Fraud" {
		t.Errorf("ScamType() = %q, want General Fraud", got)
	}
}
