// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about board runs.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define a hook interface for run events
//   - Provide a no-op default implementation
//   - Allow registration of custom implementations at startup
//
// This approach:
//   - Avoids import cycles (hooks are registered by main, not by libraries)
//   - Keeps the layout engine dependency-free from observability frameworks
//   - Allows different backends (OpenTelemetry, Prometheus, plain logs, etc.)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetRunHooks(&myRunHooks{})
//	    // ... run application
//	}
//
// The runner calls hooks to emit events:
//
//	observability.Run().OnSolveStart(ctx, keyCount)
//	// ... solve the row ...
//	observability.Run().OnSolveComplete(ctx, keyCount, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// RunHooks receives events from a board run.
type RunHooks interface {
	// Load events
	OnLoadStart(ctx context.Context, boardPath string)
	OnLoadComplete(ctx context.Context, boardPath string, footprintCount int, duration time.Duration, err error)

	// Solve events
	OnSolveStart(ctx context.Context, keyCount int)
	OnSolveComplete(ctx context.Context, keyCount int, duration time.Duration, err error)

	// Write events
	OnWriteStart(ctx context.Context, boardPath string)
	OnWriteComplete(ctx context.Context, boardPath string, duration time.Duration, err error)
}

// NoopRunHooks is a no-op implementation of RunHooks.
type NoopRunHooks struct{}

func (NoopRunHooks) OnLoadStart(context.Context, string)                               {}
func (NoopRunHooks) OnLoadComplete(context.Context, string, int, time.Duration, error) {}
func (NoopRunHooks) OnSolveStart(context.Context, int)                                 {}
func (NoopRunHooks) OnSolveComplete(context.Context, int, time.Duration, error)        {}
func (NoopRunHooks) OnWriteStart(context.Context, string)                              {}
func (NoopRunHooks) OnWriteComplete(context.Context, string, time.Duration, error)     {}

var (
	runHooks RunHooks = NoopRunHooks{}
	hooksMu  sync.RWMutex
)

// SetRunHooks registers custom run hooks.
// This should be called once at application startup before any board runs.
func SetRunHooks(h RunHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		runHooks = h
	}
}

// Run returns the registered run hooks.
func Run() RunHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return runHooks
}

// Reset restores the hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	runHooks = NoopRunHooks{}
}
