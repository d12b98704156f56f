// Package detect implements the heuristic scam classifier. A message is
// scored against five weighted keyword categories plus co-occurrence
// bonuses; the clamped sum is the confidence and anything at or above the
// threshold is flagged as a scam. Classification is deterministic and total
// over arbitrary text: unmatched categories simply contribute zero.
package detect

import (
	"fmt"
	"strings"

	"github.com/lurelabs/lurebox/pkg/intel"
)

// Category weights and caps. Each category contributes
// min(matches*weight, cap) to the running score.
const (
	urgencyWeight      = 0.15
	urgencyCap         = 0.30
	financialWeight    = 0.10
	financialCap       = 0.20
	verificationWeight = 0.15
	verificationCap    = 0.30
	threatWeight       = 0.20
	threatCap          = 0.40
	rewardWeight       = 0.15
	rewardCap          = 0.30

	urlWeight = 0.20
	urlCap    = 0.40

	phoneContactBonus    = 0.20
	urgentFinancialBonus = 0.30
	verificationURLBonus = 0.40
	threatFinancialBonus = 0.40
	escalationBonus      = 0.20
	escalationWindow     = 3
	escalationMinHistory = 2
)

// DefaultThreshold is the confidence at or above which a message is
// considered a scam.
const DefaultThreshold = 0.4

// contactWords pair with a phone number to signal a contact-point handoff.
var contactWords = []string{"call", "contact", "whatsapp"}

// Turn is one prior message in the conversation, reduced to what the
// escalation check needs.
type Turn struct {
	FromActor bool
	Text      string
}

// Result is the outcome of classifying a single message.
type Result struct {
	IsScam     bool     `json:"is_scam"`
	Confidence float64  `json:"confidence"`
	Indicators []string `json:"indicators"`
}

// Detector scores messages against a keyword vocabulary.
// Safe for concurrent use; the vocabulary is read-only after construction.
type Detector struct {
	vocab     *Vocab
	threshold float64
}

// Option configures a Detector.
type Option func(*Detector)

// WithThreshold overrides the scam decision threshold.
func WithThreshold(t float64) Option {
	return func(d *Detector) { d.threshold = t }
}

// WithVocab replaces the built-in keyword vocabulary.
func WithVocab(v *Vocab) Option {
	return func(d *Detector) {
		if v != nil {
			d.vocab = v
		}
	}
}

// NewDetector creates a classifier with the default vocabulary and threshold.
func NewDetector(opts ...Option) *Detector {
	d := &Detector{
		vocab:     DefaultVocab(),
		threshold: DefaultThreshold,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Classify scores text against the weighted categories and co-occurrence
// bonuses. Indicator labels are appended in evaluation order; that ordering
// is part of the contract so downstream output stays reproducible.
func (d *Detector) Classify(text string, history []Turn) Result {
	folded := intel.Fold(text)

	var (
		score      float64
		indicators []string
	)

	urgent := countKeywords(folded, d.vocab.Urgency)
	if urgent > 0 {
		indicators = append(indicators, fmt.Sprintf("Urgent language (%d keywords)", urgent))
		score += capped(float64(urgent)*urgencyWeight, urgencyCap)
	}

	financial := countKeywords(folded, d.vocab.Financial)
	if financial > 0 {
		indicators = append(indicators, fmt.Sprintf("Financial context (%d keywords)", financial))
		score += capped(float64(financial)*financialWeight, financialCap)
	}

	verification := countKeywords(folded, d.vocab.Verification)
	if verification > 0 {
		indicators = append(indicators, fmt.Sprintf("Verification request (%d keywords)", verification))
		score += capped(float64(verification)*verificationWeight, verificationCap)
	}

	threat := countKeywords(folded, d.vocab.Threat)
	if threat > 0 {
		indicators = append(indicators, fmt.Sprintf("Threatening language (%d keywords)", threat))
		score += capped(float64(threat)*threatWeight, threatCap)
	}

	reward := countKeywords(folded, d.vocab.Reward)
	if reward > 0 {
		indicators = append(indicators, fmt.Sprintf("Reward/Prize mention (%d keywords)", reward))
		score += capped(float64(reward)*rewardWeight, rewardCap)
	}

	urls := intel.Links(text)
	if len(urls) > 0 {
		indicators = append(indicators, fmt.Sprintf("Contains URLs (%d)", len(urls)))
		score += capped(float64(len(urls))*urlWeight, urlCap)
	}

	if intel.HasPhoneCandidate(text) && containsAny(folded, contactWords) {
		indicators = append(indicators, "Phone numbers with contact request")
		score += phoneContactBonus
	}

	// Co-occurrence bonuses: category combinations that rarely appear
	// together in legitimate traffic.
	if urgent > 0 && financial > 0 {
		indicators = append(indicators, "Urgent + Financial = High risk pattern")
		score += urgentFinancialBonus
	}
	if verification > 0 && len(urls) > 0 {
		indicators = append(indicators, "Verification + URL = Phishing pattern")
		score += verificationURLBonus
	}
	if threat > 0 && financial > 0 {
		indicators = append(indicators, "Threat + Financial = Extortion pattern")
		score += threatFinancialBonus
	}

	if d.detectEscalation(history, folded) {
		indicators = append(indicators, "Escalating pressure detected")
		score += escalationBonus
	}

	confidence := clamp01(score)
	return Result{
		IsScam:     confidence >= d.threshold,
		Confidence: confidence,
		Indicators: indicators,
	}
}

// detectEscalation reports whether urgency language in the current message
// is strictly higher than in the earliest actor message of the recent
// window. Conversations with fewer than two prior messages can't escalate.
func (d *Detector) detectEscalation(history []Turn, foldedCurrent string) bool {
	if len(history) < escalationMinHistory {
		return false
	}

	recent := history
	if len(recent) > escalationWindow {
		recent = recent[len(recent)-escalationWindow:]
	}

	var counts []int
	for _, turn := range recent {
		if turn.FromActor {
			counts = append(counts, countKeywords(intel.Fold(turn.Text), d.vocab.Urgency))
		}
	}
	counts = append(counts, countKeywords(foldedCurrent, d.vocab.Urgency))

	return len(counts) >= 2 && counts[len(counts)-1] > counts[0]
}

// countKeywords returns how many vocabulary entries appear in the folded
// text. Each entry counts once regardless of repetition.
func countKeywords(folded string, vocab []string) int {
	n := 0
	for _, kw := range vocab {
		if strings.Contains(folded, kw) {
			n++
		}
	}
	return n
}

func containsAny(folded string, words []string) bool {
	for _, w := range words {
		if strings.Contains(folded, w) {
			return true
		}
	}
	return false
}

func capped(v, limit float64) float64 {
	if v > limit {
		return limit
	}
	return v
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
