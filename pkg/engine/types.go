// Package engine manages per-conversation honeypot state: classification,
// staged reply generation, indicator accumulation and termination.
package engine

import (
	"time"

	"github.com/lurelabs/lurebox/pkg/intel"
	"github.com/lurelabs/lurebox/pkg/persona"
)

// Sender identifies who authored a message in a conversation.
const (
	SenderScammer = "scammer"
	SenderUser    = "user"
)

// Message is a single conversation turn as received on the wire.
type Message struct {
	Sender    string `json:"sender"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp,omitempty"`
}

// State is the accumulated per-session engagement state. It is JSON
// serializable so it round-trips through Redis unchanged.
type State struct {
	SessionID     string        `json:"session_id"`
	TurnCount     int           `json:"turn_count"`
	ScamConfirmed bool          `json:"scam_confirmed"`
	Indicators    *intel.Record `json:"indicators"`
	CreatedAt     time.Time     `json:"created_at"`
	LastTurnAt    time.Time     `json:"last_turn_at"`
	Ended         bool          `json:"ended"`
}

func newState(sessionID string) *State {
	now := time.Now().UTC()
	return &State{
		SessionID:  sessionID,
		Indicators: intel.NewRecord(),
		CreatedAt:  now,
		LastTurnAt: now,
	}
}

// Stage reports the persona stage the session is currently in.
func (s *State) Stage() persona.Stage {
	return persona.StageForTurn(s.TurnCount)
}

// clone returns an independent deep copy. Stores hand copies across their
// boundary so a reader never shares mutable state with an in-flight turn.
func (s *State) clone() *State {
	if s == nil {
		return nil
	}
	cp := *s
	if s.Indicators != nil {
		rec := intel.Record{
			PhoneNumbers:   append([]string(nil), s.Indicators.PhoneNumbers...),
			PaymentHandles: append([]string(nil), s.Indicators.PaymentHandles...),
			Links:          append([]string(nil), s.Indicators.Links...),
			AccountNumbers: append([]string(nil), s.Indicators.AccountNumbers...),
			Keywords:       append([]string(nil), s.Indicators.Keywords...),
			UpdatedAt:      s.Indicators.UpdatedAt,
		}
		cp.Indicators = &rec
	}
	return &cp
}

// Snapshot is the externally visible projection of a session.
type Snapshot struct {
	SessionID     string        `json:"sessionId"`
	TurnCount     int           `json:"turnCount"`
	ScamConfirmed bool          `json:"scamConfirmed"`
	Stage         string        `json:"stage"`
	Indicators    *intel.Record `json:"indicators"`
	ScamType      string        `json:"scamType,omitempty"`
	Summary       string        `json:"summary"`
	Ended         bool          `json:"ended"`
	CreatedAt     time.Time     `json:"createdAt"`
	LastTurnAt    time.Time     `json:"lastTurnAt"`
}

// Snapshot projects the state for inspection endpoints.
func (s *State) Snapshot() Snapshot {
	snap := Snapshot{
		SessionID:     s.SessionID,
		TurnCount:     s.TurnCount,
		ScamConfirmed: s.ScamConfirmed,
		Stage:         s.Stage().String(),
		Indicators:    s.Indicators,
		Summary:       s.Indicators.Summary(),
		Ended:         s.Ended,
		CreatedAt:     s.CreatedAt,
		LastTurnAt:    s.LastTurnAt,
	}
	if s.ScamConfirmed {
		snap.ScamType = s.Indicators.ScamType()
	}
	return snap
}
