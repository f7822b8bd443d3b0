// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers register
// hooks at startup to receive events about placement runs, annealing
// progress, and cache operations.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach avoids import cycles (hooks are registered by main, not by
// libraries) and keeps the core library free of observability frameworks.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetPlacementHooks(&myPlacementHooks{})
//	    // ... run application
//	}
package observability

import (
	"sync"
	"time"
)

// =============================================================================
// Placement Hooks
// =============================================================================

// PlacementHooks receives events from the placement engine.
type PlacementHooks interface {
	// OnPackStart records the beginning of a pack over a symmetry group.
	OnPackStart(group string, representatives int)

	// OnPackComplete records the outcome of a pack. err is nil on success;
	// rejection and fault errors carry structured codes.
	OnPackComplete(group string, err error)
}

// =============================================================================
// Anneal Hooks
// =============================================================================

// AnnealHooks receives events from the simulated-annealing loop.
type AnnealHooks interface {
	// OnAnnealStart records the beginning of an annealing run.
	OnAnnealStart(group string, iterations int)

	// OnAnnealProgress records periodic progress: the current iteration,
	// temperature, and best bounding-box area so far.
	OnAnnealProgress(group string, iteration int, temperature float64, bestArea int)

	// OnAnnealComplete records the end of an annealing run.
	OnAnnealComplete(group string, bestArea int, duration time.Duration)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(keyType string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPlacementHooks is a no-op implementation of PlacementHooks.
type NoopPlacementHooks struct{}

func (NoopPlacementHooks) OnPackStart(string, int)      {}
func (NoopPlacementHooks) OnPackComplete(string, error) {}

// NoopAnnealHooks is a no-op implementation of AnnealHooks.
type NoopAnnealHooks struct{}

func (NoopAnnealHooks) OnAnnealStart(string, int)                   {}
func (NoopAnnealHooks) OnAnnealProgress(string, int, float64, int)  {}
func (NoopAnnealHooks) OnAnnealComplete(string, int, time.Duration) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(string)      {}
func (NoopCacheHooks) OnCacheMiss(string)     {}
func (NoopCacheHooks) OnCacheSet(string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	placementHooks PlacementHooks = NoopPlacementHooks{}
	annealHooks    AnnealHooks    = NoopAnnealHooks{}
	cacheHooks     CacheHooks     = NoopCacheHooks{}
	hooksMu        sync.RWMutex
)

// SetPlacementHooks registers custom placement hooks.
// This should be called once at application startup before any packs run.
func SetPlacementHooks(h PlacementHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		placementHooks = h
	}
}

// SetAnnealHooks registers custom annealing hooks.
// This should be called once at application startup before any runs.
func SetAnnealHooks(h AnnealHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		annealHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Placement returns the registered placement hooks.
func Placement() PlacementHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return placementHooks
}

// Anneal returns the registered annealing hooks.
func Anneal() AnnealHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return annealHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	placementHooks = NoopPlacementHooks{}
	annealHooks = NoopAnnealHooks{}
	cacheHooks = NoopCacheHooks{}
}
