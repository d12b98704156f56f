package persona

import (
	"context"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/lurelabs/lurebox/pkg/intel"
)

// Turn is one prior message, reduced to what prompt building needs.
type Turn struct {
	FromActor bool
	Text      string
}

// Request carries everything a generator may use to produce a reply.
type Request struct {
	// Text is the actor's current message.
	Text string
	// History holds recent prior messages, oldest first.
	History []Turn
	// Indicators are the classifier's matched indicator labels.
	Indicators []string
	// TurnCount is the 1-indexed turn number after incrementing.
	TurnCount int
}

// Generator produces persona replies. Implementations must not surface
// failures to the conversation: a generator either returns a reply or an
// error the caller treats as fatal, and the remote implementation handles
// its own fallback.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
	// Closing returns a disengagement line for ending a conversation.
	Closing() string
}

// Scripted is the deterministic staged generator. Pool selection follows
// fixed match precedence; the line within a pool is random. The random
// source is injectable so tests can pin pool picks.
type Scripted struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// ScriptedOption configures a Scripted generator.
type ScriptedOption func(*Scripted)

// WithRand injects a random source, letting tests seed pool selection.
func WithRand(rng *rand.Rand) ScriptedOption {
	return func(s *Scripted) { s.rng = rng }
}

// NewScripted creates the staged reply generator.
func NewScripted(opts ...ScriptedOption) *Scripted {
	s := &Scripted{}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return s
}

// Generate picks a reply for the current stage. It never fails.
func (s *Scripted) Generate(_ context.Context, req Request) (string, error) {
	folded := intel.Fold(req.Text)

	var reply string
	switch StageForTurn(req.TurnCount) {
	case StageInitial:
		reply = s.initialReply(folded)
	case StageConcern:
		reply = s.concernReply(folded)
	case StageCompliance:
		reply = s.complianceReply(req.Text, folded)
	default:
		reply = s.pick(extractionPool)
	}
	return reply, nil
}

// Closing returns a random disengagement line.
func (s *Scripted) Closing() string {
	return s.pick(closingPool)
}

func (s *Scripted) initialReply(folded string) string {
	switch {
	case cueMatch(folded, initialBankCues):
		return s.pick(initialBankPool)
	case cueMatch(folded, initialUrgencyCues):
		return s.pick(initialUrgencyPool)
	case cueMatch(folded, initialVerifyCues):
		return s.pick(initialVerifyPool)
	default:
		return s.pick(confusedPool)
	}
}

func (s *Scripted) concernReply(folded string) string {
	switch {
	case cueMatch(folded, concernThreatCues):
		return s.pick(concernThreatPool)
	case cueMatch(folded, concernRewardCues):
		return s.pick(concernRewardPool)
	case cueMatch(folded, concernPaymentCues):
		return s.pick(concernPaymentPool)
	default:
		return s.pick(infoGatheringPool)
	}
}

func (s *Scripted) complianceReply(raw, folded string) string {
	switch {
	// "http" is checked against the raw text so scheme casing never
	// matters for link detection.
	case strings.Contains(folded, "link") || strings.Contains(raw, "http"):
		return s.pick(complianceLinkPool)
	case cueMatch(folded, complianceCredentialCues):
		return s.pick(complianceCredentialPool)
	case cueMatch(folded, complianceInstallCues):
		return s.pick(complianceInstallPool)
	default:
		return s.pick(delayPool)
	}
}

func (s *Scripted) pick(pool []string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return pool[s.rng.Intn(len(pool))]
}

func cueMatch(folded string, cues []string) bool {
	for _, cue := range cues {
		if strings.Contains(folded, cue) {
			return true
		}
	}
	return false
}
