package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	h := NoopRunHooks{}
	h.OnLoadStart(ctx, "keyboard.kicad_pcb")
	h.OnLoadComplete(ctx, "keyboard.kicad_pcb", 42, time.Second, nil)
	h.OnSolveStart(ctx, 12)
	h.OnSolveComplete(ctx, 12, time.Second, nil)
	h.OnWriteStart(ctx, "keyboard.kicad_pcb")
	h.OnWriteComplete(ctx, "keyboard.kicad_pcb", time.Second, nil)
}

func TestGlobalHooksRegistry(t *testing.T) {
	// Reset to known state
	Reset()

	// Verify default is noop
	if _, ok := Run().(NoopRunHooks); !ok {
		t.Error("Run() should return NoopRunHooks by default")
	}

	// Set custom hooks
	custom := &testRunHooks{}
	SetRunHooks(custom)
	if Run() != custom {
		t.Error("SetRunHooks should set custom hooks")
	}

	// Reset and verify
	Reset()
	if _, ok := Run().(NoopRunHooks); !ok {
		t.Error("Reset() should restore NoopRunHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testRunHooks{}
	SetRunHooks(custom)

	// Setting nil should be ignored
	SetRunHooks(nil)

	if Run() != custom {
		t.Error("SetRunHooks(nil) should be ignored")
	}

	Reset()
}

func TestHooksReceiveEvents(t *testing.T) {
	Reset()
	defer Reset()

	rec := &recordingRunHooks{}
	SetRunHooks(rec)

	ctx := context.Background()
	Run().OnSolveStart(ctx, 5)
	Run().OnSolveComplete(ctx, 5, time.Millisecond, nil)

	if rec.solveStarts != 1 || rec.solveCompletes != 1 {
		t.Errorf("events = %d starts, %d completes, want 1 each", rec.solveStarts, rec.solveCompletes)
	}
}

// Test implementations
type testRunHooks struct{ NoopRunHooks }

type recordingRunHooks struct {
	NoopRunHooks
	solveStarts    int
	solveCompletes int
}

func (r *recordingRunHooks) OnSolveStart(context.Context, int) {
	r.solveStarts++
}

func (r *recordingRunHooks) OnSolveComplete(context.Context, int, time.Duration, error) {
	r.solveCompletes++
}
