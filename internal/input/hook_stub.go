//go:build !windows

package input

import (
	"fmt"
)

// Stub implementation for non-Windows platforms

// Hook is a stub keyboard hook
type Hook struct{}

// NewHook creates a stub hook
func NewHook(decide DecideFunc) *Hook {
	return &Hook{}
}

// Start reports that global keyboard hooks are unsupported here
func (h *Hook) Start() error {
	return fmt.Errorf("keyboard hook not supported on this platform")
}

// Stop stops the hook (stub)
func (h *Hook) Stop() error {
	return nil
}
