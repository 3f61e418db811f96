package physics

import "math"

// Model converts the held movement direction into a cursor displacement
// for one tick. dirX/dirY form a unit vector (or zero), slow is the
// speed-modifier flag, dt is the elapsed time in seconds.
type Model interface {
	Step(dirX, dirY float64, slow bool, dt float64) (dx, dy float64)
}

// Linear is the shipped movement model: a constant speed with no
// velocity carried between ticks, so the cursor stops the instant every
// movement key is released.
type Linear struct {
	// MaxSpeed is the cursor speed in pixels per second.
	MaxSpeed float64

	// SlowMultiplier scales MaxSpeed while the speed modifier is held.
	SlowMultiplier float64
}

// Step computes displacement = direction * speed * dt.
func (m *Linear) Step(dirX, dirY float64, slow bool, dt float64) (float64, float64) {
	speed := m.MaxSpeed
	if slow {
		speed *= m.SlowMultiplier
	}
	return dirX * speed * dt, dirY * speed * dt
}

// Inertia is the alternate acceleration/friction model. Velocity persists
// between ticks: held keys accelerate the cursor, exponential friction
// bleeds speed off, and the magnitude is capped at MaxSpeed. Not the
// default; selectable via the tuning config.
type Inertia struct {
	// Accel is the acceleration applied while a key is held, px/s^2.
	Accel float64

	// Friction is the exponential decay coefficient, 1/s.
	Friction float64

	// MaxSpeed caps the velocity magnitude, px/s.
	MaxSpeed float64

	// SlowMultiplier scales the speed cap while the modifier is held.
	SlowMultiplier float64

	vx, vy float64
}

// Step integrates velocity with acceleration and friction, then returns
// the displacement for the tick.
func (m *Inertia) Step(dirX, dirY float64, slow bool, dt float64) (float64, float64) {
	m.vx += dirX * m.Accel * dt
	m.vy += dirY * m.Accel * dt

	decay := math.Exp(-m.Friction * dt)
	m.vx *= decay
	m.vy *= decay

	limit := m.MaxSpeed
	if slow {
		limit *= m.SlowMultiplier
	}
	if speed := math.Hypot(m.vx, m.vy); speed > limit {
		scale := limit / speed
		m.vx *= scale
		m.vy *= scale
	}

	return m.vx * dt, m.vy * dt
}

// Reset zeroes the persisted velocity so a re-enable never starts with a
// stale fling.
func (m *Inertia) Reset() {
	m.vx, m.vy = 0, 0
}

// normalize scales a non-zero vector to unit length so diagonal motion
// is no faster than axis-aligned motion.
func normalize(dx, dy float64) (float64, float64) {
	length := math.Hypot(dx, dy)
	if length == 0 {
		return 0, 0
	}
	return dx / length, dy / length
}
