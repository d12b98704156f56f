package engine

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/lurelabs/lurebox/pkg/detect"
	"github.com/lurelabs/lurebox/pkg/httputil"
	"github.com/lurelabs/lurebox/pkg/persona"
	"github.com/lurelabs/lurebox/pkg/report"
)

// neutralReply is returned for messages that do not classify as scam
// attempts. The persona never engages until a scam signal appears.
const neutralReply = "I'm not sure I understand. Could you clarify?"

// reportTimeout bounds each delivery attempt for a final report.
const reportTimeout = 10 * time.Second

// Reporter receives the final report when a session terminates.
type Reporter interface {
	Deliver(ctx context.Context, f *report.Final) error
}

// Engine drives the honeypot conversation lifecycle. All turn processing
// for a given session is serialized; distinct sessions run concurrently.
type Engine struct {
	store     SessionStore
	detector  *detect.Detector
	generator persona.Generator
	reporters []Reporter
	locks     *keyedMutex
	inflight  *httputil.Semaphore
	logger    *zap.Logger

	maxTurns     int
	hardMaxTurns int
}

// Option configures an Engine.
type Option func(*Engine)

// WithReporter adds a final-report destination. Multiple reporters each
// receive their own delivery attempt.
func WithReporter(r Reporter) Option {
	return func(e *Engine) {
		if r != nil {
			e.reporters = append(e.reporters, r)
		}
	}
}

// WithTurnLimits overrides the engagement and hard termination limits.
func WithTurnLimits(maxTurns, hardMaxTurns int) Option {
	return func(e *Engine) {
		if maxTurns > 0 {
			e.maxTurns = maxTurns
		}
		if hardMaxTurns >= e.maxTurns {
			e.hardMaxTurns = hardMaxTurns
		}
	}
}

// NewEngine assembles an engine from its collaborators.
func NewEngine(store SessionStore, detector *detect.Detector, generator persona.Generator, logger *zap.Logger, opts ...Option) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &Engine{
		store:        store,
		detector:     detector,
		generator:    generator,
		locks:        newKeyedMutex(),
		inflight:     httputil.NewSemaphore(8),
		logger:       logger,
		maxTurns:     15,
		hardMaxTurns: 20,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ProcessTurn handles one inbound message for a session and returns the
// persona's reply. Creates the session on first contact.
func (e *Engine) ProcessTurn(ctx context.Context, sessionID string, msg Message, history []Message) (string, error) {
	if sessionID == "" || strings.TrimSpace(msg.Text) == "" {
		return "", ErrInvalidInput
	}

	unlock := e.locks.Lock(sessionID)
	defer unlock()

	state, err := e.store.Get(ctx, sessionID)
	if err != nil {
		return "", fmt.Errorf("load session: %w", err)
	}
	if state == nil {
		state = newState(sessionID)
		e.logger.Info("session created", zap.String("session_id", sessionID))
	}

	// Terminated sessions only ever get the closing line back. No state
	// changes, no extraction, no second report.
	if state.Ended {
		return e.generator.Closing(), nil
	}

	state.TurnCount++
	state.LastTurnAt = time.Now().UTC()

	res := e.detector.Classify(msg.Text, toDetectHistory(history))

	var reply string
	if res.IsScam {
		state.ScamConfirmed = true
		state.Indicators.Extract(msg.Text)

		reply, err = e.generator.Generate(ctx, persona.Request{
			Text:       msg.Text,
			History:    toPersonaHistory(history),
			Indicators: res.Indicators,
			TurnCount:  state.TurnCount,
		})
		if err != nil {
			return "", fmt.Errorf("generate reply: %w", err)
		}
	} else {
		reply = neutralReply
	}

	// Both limits terminate unconditionally once reached, whatever the
	// current turn's verdict. The hard limit is an independent backstop
	// kept for deployments that raise maxTurns.
	endedNow := state.TurnCount >= e.maxTurns || state.TurnCount >= e.hardMaxTurns
	if endedNow {
		state.Ended = true
		reply = e.generator.Closing()
	}

	if err := e.store.Save(ctx, state); err != nil {
		return "", fmt.Errorf("save session: %w", err)
	}

	e.logger.Debug("turn processed",
		zap.String("session_id", sessionID),
		zap.Int("turn", state.TurnCount),
		zap.Bool("scam", res.IsScam),
		zap.Float64("confidence", res.Confidence),
		zap.String("stage", state.Stage().String()))

	if endedNow {
		e.emitReport(state)
	}
	return reply, nil
}

// Inspect returns the current snapshot of a session.
func (e *Engine) Inspect(ctx context.Context, sessionID string) (Snapshot, error) {
	state, err := e.store.Get(ctx, sessionID)
	if err != nil {
		return Snapshot{}, fmt.Errorf("load session: %w", err)
	}
	if state == nil {
		return Snapshot{}, ErrSessionNotFound
	}
	return state.Snapshot(), nil
}

// ActiveSessions reports how many sessions the store currently holds.
func (e *Engine) ActiveSessions(ctx context.Context) (int, error) {
	return e.store.Count(ctx)
}

// emitReport builds the final report and delivers it to every reporter in
// the background. Delivery is best-effort and never blocks the turn.
func (e *Engine) emitReport(state *State) {
	final := report.Build(state.SessionID, state.ScamConfirmed, state.TurnCount, state.Indicators)

	e.logger.Info("session terminated",
		zap.String("session_id", state.SessionID),
		zap.Int("turns", state.TurnCount),
		zap.Bool("scam_detected", state.ScamConfirmed),
		zap.Bool("actionable_intel", state.Indicators.HasActionable()))

	for _, r := range e.reporters {
		if !e.inflight.TryAcquire() {
			e.logger.Warn("report delivery dropped, too many in flight",
				zap.String("session_id", state.SessionID))
			continue
		}
		go func(r Reporter) {
			defer e.inflight.Release()
			ctx, cancel := context.WithTimeout(context.Background(), reportTimeout)
			defer cancel()
			if err := r.Deliver(ctx, final); err != nil {
				e.logger.Error("report delivery failed",
					zap.String("session_id", final.SessionID),
					zap.Error(err))
			}
		}(r)
	}
}

func toDetectHistory(history []Message) []detect.Turn {
	if len(history) == 0 {
		return nil
	}
	turns := make([]detect.Turn, 0, len(history))
	for _, m := range history {
		turns = append(turns, detect.Turn{
			FromActor: m.Sender == SenderScammer,
			Text:      m.Text,
		})
	}
	return turns
}

func toPersonaHistory(history []Message) []persona.Turn {
	if len(history) == 0 {
		return nil
	}
	turns := make([]persona.Turn, 0, len(history))
	for _, m := range history {
		turns = append(turns, persona.Turn{
			FromActor: m.Sender == SenderScammer,
			Text:      m.Text,
		})
	}
	return turns
}
