package physics

import (
	"math"
	"testing"
	"time"

	"mousekeys/internal/controller"
	"mousekeys/internal/input"
	"mousekeys/internal/keymap"
)

// fakePointer records pointer output for assertions
type fakePointer struct {
	x, y    int
	w, h    int
	moves   [][2]int
	buttons []buttonEvent
}

type buttonEvent struct {
	button int
	down   bool
}

func newFakePointer(x, y int) *fakePointer {
	return &fakePointer{x: x, y: y, w: 1920, h: 1080}
}

func (p *fakePointer) Position() (int, int) { return p.x, p.y }

func (p *fakePointer) MoveTo(x, y int) {
	p.x, p.y = x, y
	p.moves = append(p.moves, [2]int{x, y})
}

func (p *fakePointer) Button(button int, down bool) {
	p.buttons = append(p.buttons, buttonEvent{button, down})
}

func (p *fakePointer) ScreenSize() (int, int) { return p.w, p.h }

func enabledController(t *testing.T) *controller.Controller {
	t.Helper()
	c := controller.New()
	c.Toggle()
	if !c.Enabled() {
		t.Fatal("controller should be enabled")
	}
	return c
}

func tickOnce(l *Loop, rate int) {
	l.Tick(time.Second / time.Duration(rate))
}

// TestSingleKeyDisplacement verifies right held for one 120 Hz tick at
// 700 px/s from (500,500) lands on (506,500)
func TestSingleKeyDisplacement(t *testing.T) {
	c := enabledController(t)
	p := newFakePointer(500, 500)
	l := NewLoop(c, p, &Linear{MaxSpeed: 700, SlowMultiplier: 0.5}, 120)

	c.State().Set(keymap.ActionMoveRight, true)
	tickOnce(l, 120)

	if len(p.moves) != 1 {
		t.Fatalf("expected 1 cursor write, got %d", len(p.moves))
	}
	if got := p.moves[0]; got != [2]int{506, 500} {
		t.Errorf("expected (506, 500), got (%d, %d)", got[0], got[1])
	}
}

// TestOpposingKeysZeroDisplacement verifies opposing flags cancel to
// zero displacement for the tick
func TestOpposingKeysZeroDisplacement(t *testing.T) {
	c := enabledController(t)
	p := newFakePointer(500, 500)
	l := NewLoop(c, p, &Linear{MaxSpeed: 700, SlowMultiplier: 0.5}, 120)

	c.State().Set(keymap.ActionMoveLeft, true)
	c.State().Set(keymap.ActionMoveRight, true)
	tickOnce(l, 120)

	if got := p.moves[0]; got != [2]int{500, 500} {
		t.Errorf("opposing keys should not move the cursor, got (%d, %d)", got[0], got[1])
	}
}

// TestDiagonalNormalized verifies two orthogonal directions move the
// cursor by the same distance as one direction
func TestDiagonalNormalized(t *testing.T) {
	c := enabledController(t)
	p := newFakePointer(500, 500)
	l := NewLoop(c, p, &Linear{MaxSpeed: 700, SlowMultiplier: 0.5}, 120)

	c.State().Set(keymap.ActionMoveRight, true)
	c.State().Set(keymap.ActionMoveDown, true)

	// Use many ticks so rounding noise stays small relative to the
	// travelled distance.
	for i := 0; i < 120; i++ {
		tickOnce(l, 120)
	}

	last := p.moves[len(p.moves)-1]
	dx := float64(last[0] - 500)
	dy := float64(last[1] - 500)
	dist := math.Hypot(dx, dy)

	// One second at 700 px/s should travel ~700 px regardless of how
	// many directions are held.
	if math.Abs(dist-700) > 2 {
		t.Errorf("diagonal travel should be ~700 px after 1s, got %.1f", dist)
	}
	if math.Abs(dx-dy) > 2 {
		t.Errorf("diagonal travel should be symmetric, got dx=%.1f dy=%.1f", dx, dy)
	}
}

// TestSpeedModifierHalves verifies the slow flag halves per-tick travel
func TestSpeedModifierHalves(t *testing.T) {
	c := enabledController(t)
	p := newFakePointer(100, 100)
	l := NewLoop(c, p, &Linear{MaxSpeed: 700, SlowMultiplier: 0.5}, 100)

	c.State().Set(keymap.ActionMoveRight, true)
	c.State().Set(keymap.ActionSpeedModifier, true)
	tickOnce(l, 100)

	// 700 * 0.5 / 100 = 3.5 px, rounded from 103.5 -> 104 (round half
	// away from zero)
	if got := p.moves[0][0]; got != 104 {
		t.Errorf("expected x=104 with modifier held, got %d", got)
	}
}

// TestClampAtBoundary verifies the position lands exactly on the screen
// edge, never past it
func TestClampAtBoundary(t *testing.T) {
	c := enabledController(t)
	p := newFakePointer(1918, 500)
	l := NewLoop(c, p, &Linear{MaxSpeed: 7000, SlowMultiplier: 0.5}, 120)

	c.State().Set(keymap.ActionMoveRight, true)
	for i := 0; i < 10; i++ {
		tickOnce(l, 120)
	}

	last := p.moves[len(p.moves)-1]
	if last[0] != 1919 {
		t.Errorf("x should clamp to 1919, got %d", last[0])
	}

	// And the origin edge
	c.State().Set(keymap.ActionMoveRight, false)
	c.State().Set(keymap.ActionMoveUp, true)
	for i := 0; i < 2000; i++ {
		tickOnce(l, 120)
	}
	last = p.moves[len(p.moves)-1]
	if last[1] != 0 {
		t.Errorf("y should clamp to 0, got %d", last[1])
	}
}

// TestClickEdgeSequence verifies a flag held for ticks 1-3 and released
// at tick 4 emits exactly one down and one up
func TestClickEdgeSequence(t *testing.T) {
	c := enabledController(t)
	p := newFakePointer(500, 500)
	l := NewLoop(c, p, &Linear{MaxSpeed: 700, SlowMultiplier: 0.5}, 120)

	c.State().Set(keymap.ActionClickPrimary, true)
	tickOnce(l, 120) // tick 1
	tickOnce(l, 120) // tick 2
	tickOnce(l, 120) // tick 3
	c.State().Set(keymap.ActionClickPrimary, false)
	tickOnce(l, 120) // tick 4

	want := []buttonEvent{
		{input.ButtonPrimary, true},
		{input.ButtonPrimary, false},
	}
	if len(p.buttons) != len(want) {
		t.Fatalf("expected %d button events, got %d: %v", len(want), len(p.buttons), p.buttons)
	}
	for i := range want {
		if p.buttons[i] != want[i] {
			t.Errorf("event %d: expected %+v, got %+v", i, want[i], p.buttons[i])
		}
	}
}

// TestSecondaryButtonIndependent verifies the two buttons are tracked
// separately
func TestSecondaryButtonIndependent(t *testing.T) {
	c := enabledController(t)
	p := newFakePointer(500, 500)
	l := NewLoop(c, p, &Linear{MaxSpeed: 700, SlowMultiplier: 0.5}, 120)

	c.State().Set(keymap.ActionClickPrimary, true)
	c.State().Set(keymap.ActionClickSecondary, true)
	tickOnce(l, 120)
	c.State().Set(keymap.ActionClickSecondary, false)
	tickOnce(l, 120)

	want := []buttonEvent{
		{input.ButtonPrimary, true},
		{input.ButtonSecondary, true},
		{input.ButtonSecondary, false},
	}
	if len(p.buttons) != len(want) {
		t.Fatalf("expected %d button events, got %d: %v", len(want), len(p.buttons), p.buttons)
	}
	for i := range want {
		if p.buttons[i] != want[i] {
			t.Errorf("event %d: expected %+v, got %+v", i, want[i], p.buttons[i])
		}
	}
}

// TestDisabledResyncsFromCursor verifies manual repositioning while
// disabled is adopted, not overwritten
func TestDisabledResyncsFromCursor(t *testing.T) {
	c := controller.New() // disabled
	p := newFakePointer(500, 500)
	l := NewLoop(c, p, &Linear{MaxSpeed: 700, SlowMultiplier: 0.5}, 120)

	// User drags the real mouse while disabled
	p.x, p.y = 123, 456
	tickOnce(l, 120)

	if len(p.moves) != 0 {
		t.Errorf("disabled loop should never write the cursor, got %d writes", len(p.moves))
	}
	if x, y := l.Position(); x != 123 || y != 456 {
		t.Errorf("position should resync to (123, 456), got (%d, %d)", x, y)
	}

	// Enable: motion continues from the adopted position
	c.Toggle()
	c.State().Set(keymap.ActionMoveRight, true)
	tickOnce(l, 120)
	if got := p.moves[0]; got[1] != 456 || got[0] <= 123 {
		t.Errorf("motion should continue from the adopted position, got (%d, %d)", got[0], got[1])
	}
}

// TestStopReleasesHeldButtons verifies shutdown emits exactly one up per
// held button
func TestStopReleasesHeldButtons(t *testing.T) {
	c := enabledController(t)
	p := newFakePointer(500, 500)
	l := NewLoop(c, p, &Linear{MaxSpeed: 700, SlowMultiplier: 0.5}, 120)

	c.State().Set(keymap.ActionClickPrimary, true)
	tickOnce(l, 120)

	go l.Run()
	l.Stop()

	var ups int
	for _, e := range p.buttons {
		if e.button == input.ButtonPrimary && !e.down {
			ups++
		}
	}
	if ups != 1 {
		t.Errorf("expected exactly one synthetic primary up on shutdown, got %d", ups)
	}
}

// TestStopWithoutHeldButtons verifies shutdown emits nothing when no
// button is held
func TestStopWithoutHeldButtons(t *testing.T) {
	c := enabledController(t)
	p := newFakePointer(500, 500)
	l := NewLoop(c, p, &Linear{MaxSpeed: 700, SlowMultiplier: 0.5}, 120)

	tickOnce(l, 120)
	go l.Run()
	l.Stop()

	for _, e := range p.buttons {
		if !e.down {
			t.Errorf("no synthetic up expected, got %+v", e)
		}
	}
}

// TestLargeDeltaClamped verifies a scheduling hiccup cannot cause a
// large position jump
func TestLargeDeltaClamped(t *testing.T) {
	c := enabledController(t)
	p := newFakePointer(500, 500)
	l := NewLoop(c, p, &Linear{MaxSpeed: 700, SlowMultiplier: 0.5}, 120)

	c.State().Set(keymap.ActionMoveRight, true)
	l.Tick(3 * time.Second)

	// dt clamps to 50 ms: 700 * 0.05 = 35 px
	if got := p.moves[0][0]; got != 535 {
		t.Errorf("expected x=535 after clamped delta, got %d", got)
	}
}

// TestZeroDeltaUsesNominalInterval verifies a zero elapsed time falls
// back to the nominal tick interval
func TestZeroDeltaUsesNominalInterval(t *testing.T) {
	c := enabledController(t)
	p := newFakePointer(500, 500)
	l := NewLoop(c, p, &Linear{MaxSpeed: 700, SlowMultiplier: 0.5}, 120)

	c.State().Set(keymap.ActionMoveRight, true)
	l.Tick(0)

	if got := p.moves[0]; got != [2]int{506, 500} {
		t.Errorf("zero dt should behave like one nominal tick, got (%d, %d)", got[0], got[1])
	}
}
