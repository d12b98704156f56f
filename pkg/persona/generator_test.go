package persona

import (
	"context"
	"math/rand"
	"testing"
)

func inPool(pool []string, reply string) bool {
	for _, line := range pool {
		if line == reply {
			return true
		}
	}
	return false
}

func seededScripted() *Scripted {
	return NewScripted(WithRand(rand.New(rand.NewSource(42))))
}

func TestScriptedPoolSelection(t *testing.T) {
	tests := []struct {
		name string
		req  Request
		pool []string
	}{
		{"initial bank cue", Request{Text: "Your bank account has a problem", TurnCount: 1}, initialBankPool},
		{"initial block warning", Request{Text: "Your account will be blocked today. Verify immediately.", TurnCount: 1}, initialBankPool},
		{"initial urgency cue", Request{Text: "Act immediately!", TurnCount: 2}, initialUrgencyPool},
		{"initial verify cue", Request{Text: "Please confirm your details", TurnCount: 3}, initialVerifyPool},
		{"initial no cue", Request{Text: "Greetings dear friend", TurnCount: 1}, confusedPool},
		{"concern threat cue", Request{Text: "We will take legal steps", TurnCount: 5}, concernThreatPool},
		{"concern reward cue", Request{Text: "Congratulations, you won!", TurnCount: 6}, concernRewardPool},
		{"concern payment cue", Request{Text: "Just transfer the fee", TurnCount: 7}, concernPaymentPool},
		{"concern no cue", Request{Text: "As I was saying", TurnCount: 5}, infoGatheringPool},
		{"compliance link", Request{Text: "Open this link please", TurnCount: 9}, complianceLinkPool},
		{"compliance url", Request{Text: "Go to http://x.example", TurnCount: 9}, complianceLinkPool},
		{"compliance credential", Request{Text: "Read me the OTP", TurnCount: 10}, complianceCredentialPool},
		{"compliance install", Request{Text: "Install AnyDesk on your phone", TurnCount: 11}, complianceInstallPool},
		{"compliance no cue", Request{Text: "Are you there?", TurnCount: 12}, delayPool},
		{"extraction", Request{Text: "Almost done now", TurnCount: 14}, extractionPool},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := seededScripted()
			reply, err := s.Generate(context.Background(), tt.req)
			if err != nil {
				t.Fatalf("Generate: %v", err)
			}
			if !inPool(tt.pool, reply) {
				t.Errorf("reply %q not in expected pool", reply)
			}
		})
	}
}

func TestScriptedClosing(t *testing.T) {
	s := seededScripted()
	if !inPool(closingPool, s.Closing()) {
		t.Error("closing line not from the closing pool")
	}
}

func TestScriptedDeterministicWithSeed(t *testing.T) {
	req := Request{Text: "verify your account", TurnCount: 1}

	a, _ := NewScripted(WithRand(rand.New(rand.NewSource(7)))).Generate(context.Background(), req)
	b, _ := NewScripted(WithRand(rand.New(rand.NewSource(7)))).Generate(context.Background(), req)
	if a != b {
		t.Errorf("same seed should yield the same reply: %q vs %q", a, b)
	}
}
