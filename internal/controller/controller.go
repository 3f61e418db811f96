// Package controller holds the shared key/mode register and the decision
// logic that the global keyboard hook runs for every key transition.
package controller

import (
	"sync/atomic"

	"mousekeys/internal/keymap"
)

// Controller owns the enable/disable mode and the key register. HandleKey
// is safe to call from the hook callback: it only touches atomics and
// never blocks.
type Controller struct {
	state   State
	enabled atomic.Bool

	// onModeChange, if set, is dispatched on its own goroutine after a
	// toggle so the hook callback returns promptly.
	onModeChange func(enabled bool)
}

// New creates a controller in the disabled state.
func New() *Controller {
	return &Controller{}
}

// SetModeChangeCallback registers a callback invoked (on a goroutine)
// whenever the mode flips. Must be called before the hook starts.
func (c *Controller) SetModeChangeCallback(fn func(enabled bool)) {
	c.onModeChange = fn
}

// Enabled reports whether keyboard pointer control is active.
func (c *Controller) Enabled() bool {
	return c.enabled.Load()
}

// State returns the shared key register read by the physics loop.
func (c *Controller) State() *State {
	return &c.state
}

// Toggle flips the mode. Entering disabled clears the key register.
func (c *Controller) Toggle() {
	now := !c.enabled.Load()
	c.enabled.Store(now)
	if !now {
		c.state.Reset()
	}
	if c.onModeChange != nil {
		go c.onModeChange(now)
	}
}

// HandleKey classifies one key transition and reports whether the event
// must be swallowed (hidden from other applications).
//
//  1. A down-edge on a toggle key flips the mode and is always swallowed.
//  2. While enabled, bound keys update the register and are swallowed,
//     except the speed modifier whose event is applied and forwarded.
//  3. While disabled, every event defensively resets the register (a key
//     up missed around a toggle boundary heals here) and is forwarded.
func (c *Controller) HandleKey(vk uint32, down bool) (swallow bool) {
	action := keymap.Lookup(vk)

	if down && action == keymap.ActionToggle {
		c.Toggle()
		return true
	}

	if !c.enabled.Load() {
		c.state.Reset()
		return false
	}

	switch action {
	case keymap.ActionNone, keymap.ActionToggle:
		return false
	case keymap.ActionSpeedModifier:
		c.state.Set(action, down)
		return false
	default:
		c.state.Set(action, down)
		return true
	}
}
