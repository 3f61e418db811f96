package physics

// edge tracks one pointer button's previous sampled value so held flags
// become discrete down/up events instead of one event per tick.
type edge struct {
	prev bool
}

// update compares the current sample against the previous one. Exactly
// one of pressed/released is true on a transition; both are false when
// the flag is unchanged.
func (e *edge) update(cur bool) (pressed, released bool) {
	pressed = cur && !e.prev
	released = !cur && e.prev
	e.prev = cur
	return pressed, released
}

// held reports whether the button was down at the last sample.
func (e *edge) held() bool {
	return e.prev
}
