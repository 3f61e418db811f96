// Package physics runs the fixed-rate loop that turns the key register
// into cursor motion and button events.
package physics

import (
	"math"
	"sync/atomic"
	"time"

	"mousekeys/internal/controller"
	"mousekeys/internal/input"
)

// maxTickDelta absorbs scheduler hiccups: a late tick moves the cursor
// by at most this much worth of time instead of jumping.
const maxTickDelta = 50 * time.Millisecond

// Loop integrates cursor position at a fixed rate. Position is
// accumulated in float64 and only rounded at the final cursor write.
type Loop struct {
	ctrl    *controller.Controller
	pointer input.Pointer
	model   Model
	rate    int

	px, py float64

	primary   edge
	secondary edge

	// last written pixel position, for the status API
	lastX, lastY atomic.Int64

	stop chan struct{}
	done chan struct{}
}

// NewLoop creates a loop ticking at rate Hz. The initial position is
// read from the OS cursor.
func NewLoop(ctrl *controller.Controller, pointer input.Pointer, model Model, rate int) *Loop {
	x, y := pointer.Position()
	l := &Loop{
		ctrl:    ctrl,
		pointer: pointer,
		model:   model,
		rate:    rate,
		px:      float64(x),
		py:      float64(y),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	l.lastX.Store(int64(x))
	l.lastY.Store(int64(y))
	return l
}

// Position returns the last pixel position written or observed.
func (l *Loop) Position() (x, y int) {
	return int(l.lastX.Load()), int(l.lastY.Load())
}

// Run executes ticks until Stop is called. The scheduler tracks the
// intended next-tick timestamp instead of sleeping a constant duration,
// so timing error does not accumulate over long sessions.
func (l *Loop) Run() {
	defer close(l.done)

	interval := time.Second / time.Duration(l.rate)
	last := time.Now()
	next := last.Add(interval)

	for {
		select {
		case <-l.stop:
			l.releaseButtons()
			return
		default:
		}

		now := time.Now()
		dt := now.Sub(last)
		last = now
		l.Tick(dt)

		next = next.Add(interval)
		wait := time.Until(next)
		if wait <= 0 {
			// Fell behind by a full period; restart the schedule
			// rather than spinning to catch up.
			next = time.Now().Add(interval)
			continue
		}
		select {
		case <-l.stop:
			l.releaseButtons()
			return
		case <-time.After(wait):
		}
	}
}

// Stop signals the loop and waits up to one tick period for it to finish
// its current iteration, including any pending button release.
func (l *Loop) Stop() {
	close(l.stop)
	select {
	case <-l.done:
	case <-time.After(time.Second / time.Duration(l.rate)):
	}
}

// Tick runs a single iteration for the given elapsed time. Exported so
// tests can drive the loop without real time.
func (l *Loop) Tick(dt time.Duration) {
	secs := dt.Seconds()
	if secs < 1e-9 {
		secs = 1.0 / float64(l.rate)
	}
	if dt > maxTickDelta {
		secs = maxTickDelta.Seconds()
	}

	if !l.ctrl.Enabled() {
		// Track the real cursor while disabled so a manual move is
		// never overwritten on re-enable.
		x, y := l.pointer.Position()
		l.px, l.py = float64(x), float64(y)
		l.lastX.Store(int64(x))
		l.lastY.Store(int64(y))
		return
	}

	snap := l.ctrl.State().Snapshot()

	dirX, dirY := snap.Direction()
	dirX, dirY = normalize(dirX, dirY)

	dx, dy := l.model.Step(dirX, dirY, snap.Slow, secs)
	l.px += dx
	l.py += dy

	w, h := l.pointer.ScreenSize()
	l.px = clamp(l.px, 0, float64(w-1))
	l.py = clamp(l.py, 0, float64(h-1))

	x := int(math.Round(l.px))
	y := int(math.Round(l.py))
	l.pointer.MoveTo(x, y)
	l.lastX.Store(int64(x))
	l.lastY.Store(int64(y))

	l.updateButton(&l.primary, input.ButtonPrimary, snap.Primary)
	l.updateButton(&l.secondary, input.ButtonSecondary, snap.Secondary)
}

func (l *Loop) updateButton(e *edge, button int, cur bool) {
	pressed, released := e.update(cur)
	if pressed {
		l.pointer.Button(button, true)
	}
	if released {
		l.pointer.Button(button, false)
	}
}

// releaseButtons emits one synthetic up for any button still logically
// held, so shutdown never leaves an OS button stuck down.
func (l *Loop) releaseButtons() {
	if l.primary.held() {
		l.pointer.Button(input.ButtonPrimary, false)
	}
	if l.secondary.held() {
		l.pointer.Button(input.ButtonSecondary, false)
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
