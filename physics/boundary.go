package physics

import "fmt"

// BoundaryMode selects what happens at the world edge after integration.
type BoundaryMode uint8

const (
	// Bounce clamps particles inside the walls and damps their speed.
	Bounce BoundaryMode = iota
	// Teleport wraps particles to the opposite face, preserving velocity.
	// Force geometry becomes toroidal in this mode.
	Teleport
)

// ParseBoundaryMode converts a configuration string to a BoundaryMode.
func ParseBoundaryMode(s string) (BoundaryMode, error) {
	switch s {
	case "bounce":
		return Bounce, nil
	case "teleport":
		return Teleport, nil
	default:
		return Bounce, fmt.Errorf("unknown boundary mode %q", s)
	}
}

func (m BoundaryMode) String() string {
	switch m {
	case Bounce:
		return "bounce"
	case Teleport:
		return "teleport"
	default:
		return "unknown"
	}
}

// applyBounds applies the configured edge behavior to one particle in place.
func applyBounds(pos, vel *Vec3, mode BoundaryMode, half, radius float32) {
	switch mode {
	case Bounce:
		applyBounce(pos, vel, half, radius)
	case Teleport:
		applyTeleport(pos, half)
	}
}

// applyBounce clamps each out-of-wall axis to the wall (inset by the particle
// radius) and negates-and-halves that velocity axis in a scratch vector; the
// final velocity keeps the pre-bounce direction, rescaled so its magnitude
// matches the scratch speed. Zero pre-bounce speed leaves the velocity alone.
func applyBounce(pos, vel *Vec3, half, radius float32) {
	limit := half - radius
	pre := *vel
	preSpeed := pre.Len()
	scratch := pre

	if absf(pos.X) > limit {
		pos.X = copysignf(limit, pos.X)
		scratch.X = -0.5 * pre.X
	}
	if absf(pos.Y) > limit {
		pos.Y = copysignf(limit, pos.Y)
		scratch.Y = -0.5 * pre.Y
	}
	if absf(pos.Z) > limit {
		pos.Z = copysignf(limit, pos.Z)
		scratch.Z = -0.5 * pre.Z
	}

	if preSpeed > 0 {
		*vel = pre.Scale(scratch.Len() / preSpeed)
	}
}

// applyTeleport wraps each axis to the opposite face, keeping the overflow so
// motion across the edge is continuous. Velocity is untouched.
func applyTeleport(pos *Vec3, half float32) {
	if pos.X > half {
		pos.X = -half + (pos.X - half)
	} else if pos.X < -half {
		pos.X = half + (pos.X + half)
	}
	if pos.Y > half {
		pos.Y = -half + (pos.Y - half)
	} else if pos.Y < -half {
		pos.Y = half + (pos.Y + half)
	}
	if pos.Z > half {
		pos.Z = -half + (pos.Z - half)
	} else if pos.Z < -half {
		pos.Z = half + (pos.Z + half)
	}
}

// torusDelta returns the displacement from one point to another choosing, per
// axis, the shorter of the direct offset and the wrap-around offset. Used for
// all force geometry in teleport mode.
func torusDelta(from, to Vec3, size float32) Vec3 {
	half := size / 2
	d := to.Sub(from)

	if d.X > half {
		d.X -= size
	} else if d.X < -half {
		d.X += size
	}
	if d.Y > half {
		d.Y -= size
	} else if d.Y < -half {
		d.Y += size
	}
	if d.Z > half {
		d.Z -= size
	} else if d.Z < -half {
		d.Z += size
	}

	return d
}

func copysignf(mag, sign float32) float32 {
	if sign < 0 {
		return -mag
	}
	return mag
}
