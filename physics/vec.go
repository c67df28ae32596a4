// Package physics implements the per-tick force-and-motion kernel: pairwise
// type forces, food attraction, damped integration, and world boundaries.
// Step is a pure function from (state, genome, dt, params) to next state, so
// the same contract serves a sequential loop or a parallel dispatch.
package physics

// Vec3 is a 3-component float32 vector.
type Vec3 struct {
	X, Y, Z float32
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale returns v * s.
func (v Vec3) Scale(s float32) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Dot returns the dot product of v and o.
func (v Vec3) Dot(o Vec3) float32 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Len returns the magnitude of v.
func (v Vec3) Len() float32 {
	return fastSqrt(v.Dot(v))
}
