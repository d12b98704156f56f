package engine

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/lurelabs/lurebox/pkg/detect"
	"github.com/lurelabs/lurebox/pkg/persona"
	"github.com/lurelabs/lurebox/pkg/report"
)

const scamText = "Your account will be blocked today. Verify immediately."

type captureReporter struct {
	reports chan *report.Final
}

func newCaptureReporter() *captureReporter {
	return &captureReporter{reports: make(chan *report.Final, 4)}
}

func (c *captureReporter) Deliver(_ context.Context, f *report.Final) error {
	c.reports <- f
	return nil
}

func newTestEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	store := NewMemoryStore()
	t.Cleanup(store.Close)
	return NewEngine(store, detect.NewDetector(), persona.NewScripted(), zap.NewNop(), opts...)
}

func TestProcessTurnScamFlow(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	reply, err := e.ProcessTurn(ctx, "s1", Message{Sender: SenderScammer, Text: scamText}, nil)
	if err != nil {
		t.Fatalf("ProcessTurn: %v", err)
	}
	if reply == "" || reply == neutralReply {
		t.Errorf("scam turn should get an engaged reply, got %q", reply)
	}

	snap, err := e.Inspect(ctx, "s1")
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}
	if !snap.ScamConfirmed {
		t.Error("session should be flagged as scam")
	}
	if snap.TurnCount != 1 {
		t.Errorf("TurnCount = %d, want 1", snap.TurnCount)
	}
	if snap.Stage != "initial" {
		t.Errorf("Stage = %q, want initial", snap.Stage)
	}
	if snap.Ended {
		t.Error("session should still be live")
	}
}

func TestProcessTurnNeutral(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	reply, err := e.ProcessTurn(ctx, "s2", Message{Sender: SenderScammer, Text: "hello, how was your weekend?"}, nil)
	if err != nil {
		t.Fatalf("ProcessTurn: %v", err)
	}
	if reply != neutralReply {
		t.Errorf("non-scam reply = %q, want neutral reply", reply)
	}

	snap, err := e.Inspect(ctx, "s2")
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}
	if snap.ScamConfirmed {
		t.Error("benign message should not flag the session")
	}
	if snap.TurnCount != 1 {
		t.Errorf("turn count should still advance, got %d", snap.TurnCount)
	}
	if snap.Indicators.Total() != 0 {
		t.Error("no extraction should happen on neutral turns")
	}
}

func TestProcessTurnInvalidInput(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	if _, err := e.ProcessTurn(ctx, "", Message{Text: "hi"}, nil); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("empty session id: err = %v, want ErrInvalidInput", err)
	}
	if _, err := e.ProcessTurn(ctx, "s3", Message{Text: "   "}, nil); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("blank text: err = %v, want ErrInvalidInput", err)
	}
}

func TestTerminationEmitsReportOnce(t *testing.T) {
	rep := newCaptureReporter()
	e := newTestEngine(t, WithReporter(rep), WithTurnLimits(3, 5))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := e.ProcessTurn(ctx, "s4", Message{Sender: SenderScammer, Text: scamText}, nil); err != nil {
			t.Fatalf("turn %d: %v", i+1, err)
		}
	}

	var final *report.Final
	select {
	case final = <-rep.reports:
	case <-time.After(2 * time.Second):
		t.Fatal("no report delivered after termination")
	}

	if final.SessionID != "s4" {
		t.Errorf("report SessionID = %q", final.SessionID)
	}
	if !final.ScamDetected {
		t.Error("report should mark scam detected")
	}
	if final.TotalMessages != 3 {
		t.Errorf("TotalMessages = %d, want 3", final.TotalMessages)
	}

	// Post-termination turns get the closing line and no second report.
	reply, err := e.ProcessTurn(ctx, "s4", Message{Sender: SenderScammer, Text: scamText}, nil)
	if err != nil {
		t.Fatalf("post-termination turn: %v", err)
	}
	if reply == neutralReply || reply == "" {
		t.Errorf("ended session should reply with a closing line, got %q", reply)
	}

	snap, err := e.Inspect(ctx, "s4")
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}
	if !snap.Ended {
		t.Error("session should be ended")
	}
	if snap.TurnCount != 3 {
		t.Errorf("ended session must not advance, TurnCount = %d", snap.TurnCount)
	}

	select {
	case <-rep.reports:
		t.Fatal("report must only be emitted once")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestTerminationUnconditionalAtMaxTurns(t *testing.T) {
	rep := newCaptureReporter()
	e := newTestEngine(t, WithReporter(rep))
	ctx := context.Background()

	// 14 scam turns, then a benign message on turn 15. The limit applies
	// regardless of the final turn's verdict.
	for i := 0; i < 14; i++ {
		if _, err := e.ProcessTurn(ctx, "s5", Message{Sender: SenderScammer, Text: scamText}, nil); err != nil {
			t.Fatalf("turn %d: %v", i+1, err)
		}
	}
	if _, err := e.ProcessTurn(ctx, "s5", Message{Sender: SenderScammer, Text: "anyway, how is the weather there?"}, nil); err != nil {
		t.Fatalf("turn 15: %v", err)
	}

	snap, err := e.Inspect(ctx, "s5")
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}
	if snap.TurnCount != 15 {
		t.Errorf("TurnCount = %d, want 15", snap.TurnCount)
	}
	if !snap.Ended {
		t.Error("session reaching the turn limit must end, whatever the last verdict")
	}

	select {
	case final := <-rep.reports:
		if !final.ScamDetected {
			t.Error("earlier scam turns should keep the session flagged")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no report delivered at the turn limit")
	}
}

func TestTerminationNeutralOnlySession(t *testing.T) {
	rep := newCaptureReporter()
	e := newTestEngine(t, WithReporter(rep), WithTurnLimits(2, 3))
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := e.ProcessTurn(ctx, "s5n", Message{Sender: SenderScammer, Text: "just saying hello again"}, nil); err != nil {
			t.Fatalf("turn %d: %v", i+1, err)
		}
	}

	snap, err := e.Inspect(ctx, "s5n")
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}
	if !snap.Ended {
		t.Error("turn limit should end the session even without any scam verdict")
	}

	select {
	case final := <-rep.reports:
		if final.ScamDetected {
			t.Error("report should not mark scam detected")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no report delivered at the turn limit")
	}
}

func TestInspectDuringConcurrentTurns(t *testing.T) {
	e := newTestEngine(t, WithTurnLimits(100, 200))
	ctx := context.Background()

	if _, err := e.ProcessTurn(ctx, "s7", Message{Sender: SenderScammer, Text: scamText}, nil); err != nil {
		t.Fatalf("seed turn: %v", err)
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 50; i++ {
			if _, err := e.ProcessTurn(ctx, "s7", Message{Sender: SenderScammer, Text: scamText}, nil); err != nil {
				t.Errorf("ProcessTurn: %v", err)
				return
			}
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 50; i++ {
			snap, err := e.Inspect(ctx, "s7")
			if err != nil {
				t.Errorf("Inspect: %v", err)
				return
			}
			if snap.TurnCount < 1 {
				t.Errorf("TurnCount = %d", snap.TurnCount)
				return
			}
			// Summary walks the indicator slices; it must be safe while
			// turns are appending to the live record.
			_ = snap.Summary
		}
	}()
	wg.Wait()
}

func TestInspectNotFound(t *testing.T) {
	e := newTestEngine(t)
	if _, err := e.Inspect(context.Background(), "missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("err = %v, want ErrSessionNotFound", err)
	}
}

func TestIndicatorsAccumulateAcrossTurns(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	turns := []string{
		"Urgent: verify your account now at http://secure-verify.tk",
		"Call +91 9876543210 immediately or your account will be suspended",
	}
	for _, text := range turns {
		if _, err := e.ProcessTurn(ctx, "s6", Message{Sender: SenderScammer, Text: text}, nil); err != nil {
			t.Fatalf("ProcessTurn: %v", err)
		}
	}

	snap, err := e.Inspect(ctx, "s6")
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}
	if len(snap.Indicators.Links) != 1 {
		t.Errorf("Links = %v, want one link", snap.Indicators.Links)
	}
	if len(snap.Indicators.PhoneNumbers) != 1 {
		t.Errorf("PhoneNumbers = %v, want one number", snap.Indicators.PhoneNumbers)
	}
}
