package detect

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Vocab holds the five weighted keyword categories the classifier scores
// against. Matching is case-insensitive substring, so phrases should be
// lowercase.
type Vocab struct {
	Urgency      []string `yaml:"urgency"`
	Financial    []string `yaml:"financial"`
	Verification []string `yaml:"verification"`
	Threat       []string `yaml:"threat"`
	Reward       []string `yaml:"reward"`
}

// DefaultVocab returns the built-in keyword vocabulary.
func DefaultVocab() *Vocab {
	return &Vocab{
		Urgency: []string{
			"urgent", "immediately", "now", "asap", "today",
			"expire", "expires", "expired", "suspend", "suspended",
			"block", "blocked", "freeze", "frozen",
		},
		Financial: []string{
			"bank", "account", "credit card", "debit card", "atm",
			"upi", "payment", "transaction", "transfer", "money",
			"refund", "cashback", "reward", "prize", "lottery",
			"tax", "penalty", "fine", "charge",
		},
		Verification: []string{
			"verify", "confirm", "update", "validate", "authenticate",
			"click", "link", "website", "login", "password",
			"otp", "cvv", "pin", "security code",
		},
		Threat: []string{
			"arrest", "legal action", "police", "court", "lawsuit",
			"fraud", "investigation", "suspicious activity", "unauthorized",
		},
		Reward: []string{
			"won", "winner", "congratulations", "prize", "reward",
			"free", "gift", "bonus", "cashback", "claim",
		},
	}
}

// LoadVocabFile reads a YAML vocabulary override. Categories present in the
// file replace the defaults; absent or empty categories keep them. This lets
// deployments extend the vocabulary for regional scam phrasing without a
// rebuild.
func LoadVocabFile(path string) (*Vocab, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read vocab file: %w", err)
	}

	var override Vocab
	if err := yaml.Unmarshal(data, &override); err != nil {
		return nil, fmt.Errorf("parse vocab file %s: %w", path, err)
	}

	v := DefaultVocab()
	if len(override.Urgency) > 0 {
		v.Urgency = override.Urgency
	}
	if len(override.Financial) > 0 {
		v.Financial = override.Financial
	}
	if len(override.Verification) > 0 {
		v.Verification = override.Verification
	}
	if len(override.Threat) > 0 {
		v.Threat = override.Threat
	}
	if len(override.Reward) > 0 {
		v.Reward = override.Reward
	}
	return v, nil
}
