// Package keymap defines the logical pointer actions and the fixed
// keyboard bindings that trigger them.
package keymap

// Action is a logical pointer-control action bound to one or more
// physical keys.
type Action int

const (
	// ActionNone means the key is not bound to anything.
	ActionNone Action = iota

	// ActionToggle flips the controller between enabled and disabled.
	ActionToggle

	ActionMoveUp
	ActionMoveDown
	ActionMoveLeft
	ActionMoveRight

	// ActionClickPrimary holds/releases the primary pointer button.
	ActionClickPrimary

	// ActionClickSecondary holds/releases the secondary pointer button.
	ActionClickSecondary

	// ActionSpeedModifier halves cursor speed while held. Its key events
	// are still forwarded to other applications.
	ActionSpeedModifier
)

// Windows virtual-key codes for the fixed bindings
const (
	vkCapsLock   = 0x14
	vkLeft       = 0x25
	vkUp         = 0x26
	vkRight      = 0x27
	vkDown       = 0x28
	vkLeftShift  = 0xA0
	vkRightShift = 0xA1

	vkH = 0x48
	vkJ = 0x4A
	vkK = 0x4B
	vkL = 0x4C
	vkX = 0x58
	vkZ = 0x5A
)

// bindings is the compile-time key table. Movement actions each have two
// aliases (an arrow key and a vi-style letter key).
var bindings = map[uint32]Action{
	vkCapsLock:   ActionToggle,
	vkRightShift: ActionToggle,

	vkUp:    ActionMoveUp,
	vkK:     ActionMoveUp,
	vkDown:  ActionMoveDown,
	vkJ:     ActionMoveDown,
	vkLeft:  ActionMoveLeft,
	vkH:     ActionMoveLeft,
	vkRight: ActionMoveRight,
	vkL:     ActionMoveRight,

	vkZ: ActionClickPrimary,
	vkX: ActionClickSecondary,

	vkLeftShift: ActionSpeedModifier,
}

// Lookup maps a virtual-key code to its bound action. Returns ActionNone
// for unbound keys.
func Lookup(vk uint32) Action {
	return bindings[vk]
}

// String returns a readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionToggle:
		return "toggle"
	case ActionMoveUp:
		return "move_up"
	case ActionMoveDown:
		return "move_down"
	case ActionMoveLeft:
		return "move_left"
	case ActionMoveRight:
		return "move_right"
	case ActionClickPrimary:
		return "click_primary"
	case ActionClickSecondary:
		return "click_secondary"
	case ActionSpeedModifier:
		return "speed_modifier"
	default:
		return "none"
	}
}
