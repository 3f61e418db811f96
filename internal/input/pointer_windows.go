//go:build windows

package input

import (
	"unsafe"
)

var (
	procGetCursorPos     = user32.NewProc("GetCursorPos")
	procSetCursorPos     = user32.NewProc("SetCursorPos")
	procSendInput        = user32.NewProc("SendInput")
	procGetSystemMetrics = user32.NewProc("GetSystemMetrics")
)

const (
	SM_CXSCREEN = 0
	SM_CYSCREEN = 1

	INPUT_MOUSE = 0

	MOUSEEVENTF_LEFTDOWN  = 0x0002
	MOUSEEVENTF_LEFTUP    = 0x0004
	MOUSEEVENTF_RIGHTDOWN = 0x0008
	MOUSEEVENTF_RIGHTUP   = 0x0010
)

type POINT struct {
	X, Y int32
}

type MOUSEINPUT struct {
	Dx          int32
	Dy          int32
	MouseData   uint32
	DwFlags     uint32
	Time        uint32
	DwExtraInfo uintptr
}

type INPUT struct {
	Type uint32
	Mi   MOUSEINPUT
}

// SystemPointer drives the real OS cursor through user32.
type SystemPointer struct{}

// NewPointer returns the Windows pointer implementation.
func NewPointer() (Pointer, error) {
	return &SystemPointer{}, nil
}

// Position reads the current cursor position. Falls back to the screen
// center if the call fails, mirroring fresh-session behavior.
func (p *SystemPointer) Position() (int, int) {
	var pt POINT
	ret, _, _ := procGetCursorPos.Call(uintptr(unsafe.Pointer(&pt)))
	if ret == 0 {
		w, h := p.ScreenSize()
		return w / 2, h / 2
	}
	return int(pt.X), int(pt.Y)
}

// MoveTo places the cursor at an absolute position. Best-effort.
func (p *SystemPointer) MoveTo(x, y int) {
	procSetCursorPos.Call(uintptr(x), uintptr(y))
}

// Button emits a press or release for a pointer button via SendInput.
// Best-effort.
func (p *SystemPointer) Button(button int, down bool) {
	var flags uint32
	switch {
	case button == ButtonPrimary && down:
		flags = MOUSEEVENTF_LEFTDOWN
	case button == ButtonPrimary && !down:
		flags = MOUSEEVENTF_LEFTUP
	case button == ButtonSecondary && down:
		flags = MOUSEEVENTF_RIGHTDOWN
	case button == ButtonSecondary && !down:
		flags = MOUSEEVENTF_RIGHTUP
	default:
		return
	}

	in := INPUT{
		Type: INPUT_MOUSE,
		Mi:   MOUSEINPUT{DwFlags: flags},
	}
	procSendInput.Call(1, uintptr(unsafe.Pointer(&in)), unsafe.Sizeof(in))
}

// ScreenSize returns the primary display dimensions.
func (p *SystemPointer) ScreenSize() (int, int) {
	w, _, _ := procGetSystemMetrics.Call(SM_CXSCREEN)
	h, _, _ := procGetSystemMetrics.Call(SM_CYSCREEN)
	return int(w), int(h)
}
