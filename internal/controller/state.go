package controller

import (
	"sync/atomic"

	"mousekeys/internal/keymap"
)

// State is the shared key register: one independently-updated flag per
// held action. The hook callback writes it, the physics loop reads it
// every tick. Each flag has atomic read/write semantics on its own; no
// ordering is guaranteed across flags, which is fine because key
// transitions happen at human timescales well below the tick rate.
type State struct {
	up, down, left, right atomic.Bool
	primary, secondary    atomic.Bool
	slow                  atomic.Bool
}

// Set records a held/released transition for a movement or button action.
func (s *State) Set(a keymap.Action, held bool) {
	switch a {
	case keymap.ActionMoveUp:
		s.up.Store(held)
	case keymap.ActionMoveDown:
		s.down.Store(held)
	case keymap.ActionMoveLeft:
		s.left.Store(held)
	case keymap.ActionMoveRight:
		s.right.Store(held)
	case keymap.ActionClickPrimary:
		s.primary.Store(held)
	case keymap.ActionClickSecondary:
		s.secondary.Store(held)
	case keymap.ActionSpeedModifier:
		s.slow.Store(held)
	}
}

// Reset clears every flag. Called when the controller is disabled so a
// key held across the toggle can never act on a later re-enable.
func (s *State) Reset() {
	s.up.Store(false)
	s.down.Store(false)
	s.left.Store(false)
	s.right.Store(false)
	s.primary.Store(false)
	s.secondary.Store(false)
	s.slow.Store(false)
}

// Snapshot is a plain copy of the register taken one flag at a time.
type Snapshot struct {
	Up, Down, Left, Right bool
	Primary, Secondary    bool
	Slow                  bool
}

// Snapshot reads every flag. Flags are read independently, so a snapshot
// may interleave with concurrent hook updates.
func (s *State) Snapshot() Snapshot {
	return Snapshot{
		Up:        s.up.Load(),
		Down:      s.down.Load(),
		Left:      s.left.Load(),
		Right:     s.right.Load(),
		Primary:   s.primary.Load(),
		Secondary: s.secondary.Load(),
		Slow:      s.slow.Load(),
	}
}

// Direction builds the movement vector from the held flags. Opposing
// keys cancel exactly; the result is not normalized.
func (snap Snapshot) Direction() (dx, dy float64) {
	if snap.Up {
		dy -= 1
	}
	if snap.Down {
		dy += 1
	}
	if snap.Left {
		dx -= 1
	}
	if snap.Right {
		dx += 1
	}
	return dx, dy
}
