package config

import (
	"sync"
	"time"
)

// FlagTracker records which command line flags were set explicitly so that
// only those override configuration file values
type FlagTracker struct {
	mu    sync.RWMutex
	flags map[string]bool
}

// NewFlagTracker creates a new thread-safe flag tracker
func NewFlagTracker() *FlagTracker {
	return &FlagTracker{
		flags: make(map[string]bool),
	}
}

// NewFlagTrackerWithFlags creates a new flag tracker with initial flags
func NewFlagTrackerWithFlags(flags map[string]bool) *FlagTracker {
	copied := make(map[string]bool, len(flags))
	for k, v := range flags {
		copied[k] = v
	}
	return &FlagTracker{
		flags: copied,
	}
}

// Set marks a flag as explicitly set
func (ft *FlagTracker) Set(flagName string) {
	ft.mu.Lock()
	defer ft.mu.Unlock()
	ft.flags[flagName] = true
}

// WasSet checks if a flag was explicitly set
func (ft *FlagTracker) WasSet(flagName string) bool {
	ft.mu.RLock()
	defer ft.mu.RUnlock()
	return ft.flags[flagName]
}

// Count returns the number of explicitly set flags
func (ft *FlagTracker) Count() int {
	ft.mu.RLock()
	defer ft.mu.RUnlock()
	return len(ft.flags)
}

// MergeString returns override when flagName was set
func (ft *FlagTracker) MergeString(base, override, flagName string) string {
	if ft.WasSet(flagName) {
		return override
	}
	return base
}

// MergeInt returns override when flagName was set
func (ft *FlagTracker) MergeInt(base, override int, flagName string) int {
	if ft.WasSet(flagName) {
		return override
	}
	return base
}

// MergeBool returns override when flagName was set
func (ft *FlagTracker) MergeBool(base, override bool, flagName string) bool {
	if ft.WasSet(flagName) {
		return override
	}
	return base
}

// MergeDuration returns override when flagName was set
func (ft *FlagTracker) MergeDuration(base, override time.Duration, flagName string) time.Duration {
	if ft.WasSet(flagName) {
		return override
	}
	return base
}

// MergeStringSlice appends override to base when flagName was set. Repeated
// list flags extend the configured list rather than replacing it.
func (ft *FlagTracker) MergeStringSlice(base, override []string, flagName string) []string {
	if !ft.WasSet(flagName) || len(override) == 0 {
		return base
	}
	merged := make([]string, 0, len(base)+len(override))
	merged = append(merged, base...)
	return append(merged, override...)
}
