package keymap

import "testing"

// TestMovementAliases verifies each direction resolves from both of its
// physical keys
func TestMovementAliases(t *testing.T) {
	cases := []struct {
		vk   uint32
		want Action
	}{
		{0x26, ActionMoveUp},    // arrow up
		{0x4B, ActionMoveUp},    // K
		{0x28, ActionMoveDown},  // arrow down
		{0x4A, ActionMoveDown},  // J
		{0x25, ActionMoveLeft},  // arrow left
		{0x48, ActionMoveLeft},  // H
		{0x27, ActionMoveRight}, // arrow right
		{0x4C, ActionMoveRight}, // L
	}

	for _, c := range cases {
		if got := Lookup(c.vk); got != c.want {
			t.Errorf("Lookup(0x%X) = %v, want %v", c.vk, got, c.want)
		}
	}
}

// TestActionKeys verifies the click, modifier and toggle bindings
func TestActionKeys(t *testing.T) {
	if got := Lookup(0x5A); got != ActionClickPrimary {
		t.Errorf("Z should be the primary click key, got %v", got)
	}
	if got := Lookup(0x58); got != ActionClickSecondary {
		t.Errorf("X should be the secondary click key, got %v", got)
	}
	if got := Lookup(0xA0); got != ActionSpeedModifier {
		t.Errorf("left shift should be the speed modifier, got %v", got)
	}
	if got := Lookup(0x14); got != ActionToggle {
		t.Errorf("caps lock should toggle, got %v", got)
	}
	if got := Lookup(0xA1); got != ActionToggle {
		t.Errorf("right shift should toggle, got %v", got)
	}
}

// TestUnboundKey verifies unbound keys map to ActionNone
func TestUnboundKey(t *testing.T) {
	if got := Lookup(0x41); got != ActionNone { // A
		t.Errorf("expected ActionNone for unbound key, got %v", got)
	}
	if got := Lookup(0x0D); got != ActionNone { // Enter
		t.Errorf("expected ActionNone for unbound key, got %v", got)
	}
}
