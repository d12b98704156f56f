// Package persona generates the decoy victim's replies. The scripted
// generator walks a fixed persona arc keyed off the turn count; an optional
// remote generator can produce more adaptive replies but always falls back
// to the scripted one on failure.
package persona

// Stage is the persona-behavior phase of a conversation.
type Stage int

const (
	// StageInitial: confused, questioning who the caller is (turns 1-3).
	StageInitial Stage = iota
	// StageConcern: worried, fishing for details (turns 4-7).
	StageConcern
	// StageCompliance: seemingly cooperative, stalling (turns 8-12).
	StageCompliance
	// StageExtraction: probing for identifying information (turns 13+).
	StageExtraction
)

// StageForTurn maps a 1-indexed turn count to its stage. The mapping is a
// pure function of the count, independent of message content.
func StageForTurn(turn int) Stage {
	switch {
	case turn <= 3:
		return StageInitial
	case turn <= 7:
		return StageConcern
	case turn <= 12:
		return StageCompliance
	default:
		return StageExtraction
	}
}

func (s Stage) String() string {
	switch s {
	case StageInitial:
		return "initial"
	case StageConcern:
		return "concern"
	case StageCompliance:
		return "compliance"
	case StageExtraction:
		return "extraction"
	default:
		return "unknown"
	}
}
