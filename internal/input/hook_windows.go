//go:build windows

package input

import (
	"fmt"
	"log"
	"runtime"
	"sync"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32                  = windows.NewLazySystemDLL("user32.dll")
	procSetWindowsHookEx    = user32.NewProc("SetWindowsHookExW")
	procCallNextHookEx      = user32.NewProc("CallNextHookEx")
	procUnhookWindowsHookEx = user32.NewProc("UnhookWindowsHookEx")
	procGetMessage          = user32.NewProc("GetMessageW")
	procTranslateMessage    = user32.NewProc("TranslateMessage")
	procDispatchMessage     = user32.NewProc("DispatchMessageW")
	procPostThreadMessage   = user32.NewProc("PostThreadMessageW")
	kernel32                = windows.NewLazySystemDLL("kernel32.dll")
	procGetModuleHandle     = kernel32.NewProc("GetModuleHandleW")
	procGetCurrentThreadId  = kernel32.NewProc("GetCurrentThreadId")
)

const (
	WH_KEYBOARD_LL = 13
	WM_KEYDOWN     = 0x0100
	WM_KEYUP       = 0x0101
	WM_SYSKEYDOWN  = 0x0104
	WM_SYSKEYUP    = 0x0105
	WM_QUIT        = 0x0012
)

type KBDLLHOOKSTRUCT struct {
	VkCode      uint32
	ScanCode    uint32
	Flags       uint32
	Time        uint32
	DwExtraInfo uintptr
}

type MSG struct {
	Hwnd    syscall.Handle
	Message uint32
	WParam  uintptr
	LParam  uintptr
	Time    uint32
	Pt      struct{ X, Y int32 }
}

// instanceHook is the hook bound to the process-wide low-level keyboard
// hook callback. Windows delivers hook calls on the installing thread,
// so a single instance is all that can exist.
var instanceHook *Hook

// Hook installs a session-global WH_KEYBOARD_LL hook and runs the
// message loop it requires on a locked OS thread.
type Hook struct {
	decide DecideFunc

	mu       sync.Mutex
	handle   uintptr
	threadID uint32
	running  bool
}

// NewHook creates a keyboard hook that consults decide for every key
// transition. decide runs inside the hook callback and must not block:
// the system drops hooks whose callbacks exceed its delivery timeout.
func NewHook(decide DecideFunc) *Hook {
	return &Hook{decide: decide}
}

// Start installs the hook. The error is synchronous: if installation
// fails the hook is unusable and the caller should treat it as fatal.
func (h *Hook) Start() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.running {
		return fmt.Errorf("keyboard hook already running")
	}
	instanceHook = h

	installed := make(chan error, 1)

	// The hook and its message loop must live on the same thread.
	go func() {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()

		hMod, _, _ := procGetModuleHandle.Call(0)
		handle, _, err := procSetWindowsHookEx.Call(
			WH_KEYBOARD_LL,
			syscall.NewCallback(keyboardHookProc),
			hMod,
			0,
		)
		if handle == 0 {
			installed <- fmt.Errorf("SetWindowsHookEx failed: %v", err)
			return
		}

		tid, _, _ := procGetCurrentThreadId.Call()

		// Published before the send on installed; Start returns only
		// after receiving, so later Stop calls see these.
		h.handle = handle
		h.threadID = uint32(tid)

		installed <- nil
		log.Println("Keyboard hook installed")

		var msg MSG
		for {
			ret, _, _ := procGetMessage.Call(uintptr(unsafe.Pointer(&msg)), 0, 0, 0)
			if int32(ret) <= 0 {
				break
			}
			procTranslateMessage.Call(uintptr(unsafe.Pointer(&msg)))
			procDispatchMessage.Call(uintptr(unsafe.Pointer(&msg)))
		}

		procUnhookWindowsHookEx.Call(handle)
		log.Println("Keyboard hook removed")
	}()

	if err := <-installed; err != nil {
		return err
	}
	h.running = true
	return nil
}

// Stop removes the hook by ending its message loop.
func (h *Hook) Stop() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.running {
		return nil
	}
	h.running = false

	procPostThreadMessage.Call(uintptr(h.threadID), WM_QUIT, 0, 0)
	return nil
}

func keyboardHookProc(nCode int, wParam uintptr, lParam uintptr) uintptr {
	if nCode >= 0 {
		kbd := (*KBDLLHOOKSTRUCT)(unsafe.Pointer(lParam))
		down := wParam == WM_KEYDOWN || wParam == WM_SYSKEYDOWN
		up := wParam == WM_KEYUP || wParam == WM_SYSKEYUP

		if (down || up) && instanceHook.decide(kbd.VkCode, down) {
			// Non-zero swallows the event
			return 1
		}
	}
	ret, _, _ := procCallNextHookEx.Call(0, uintptr(nCode), wParam, lParam)
	return ret
}
