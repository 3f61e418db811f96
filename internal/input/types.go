// Package input provides the platform layer: the global keyboard hook
// and the pointer output used to move the real OS cursor.
package input

// Button identifies a pointer button
const (
	ButtonPrimary   = 1
	ButtonSecondary = 2
)

// Pointer is the outbound cursor interface. All calls are best-effort
// and fire-and-forget: a failed cursor write or button event is neither
// surfaced nor retried.
type Pointer interface {
	// Position returns the current OS cursor position in screen pixels.
	Position() (x, y int)

	// MoveTo places the OS cursor at an absolute screen position.
	MoveTo(x, y int)

	// Button presses or releases a pointer button.
	Button(button int, down bool)

	// ScreenSize returns the primary display bounds used for clamping.
	ScreenSize() (w, h int)
}

// DecideFunc classifies one key transition. It runs inside the OS hook
// callback and must return quickly: a true result swallows the event,
// false forwards it to the rest of the system.
type DecideFunc func(vk uint32, down bool) (swallow bool)
