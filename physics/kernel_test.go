package physics

import (
	"math"
	"math/rand"
	"testing"

	"github.com/pthm-cable/broth/genome"
)

func testParams() *Params {
	return &Params{
		NumTypes:        1,
		WorldSize:       2000,
		Half:            1000,
		Boundary:        Bounce,
		MaxForceRange:   300,
		ForceScale:      80,
		ParticleRadius:  4,
		FoodRadius:      2,
		HalfLife:        0.043,
		MaxSpeed:        200,
		MaxInteractions: 100,
		MinDistance:     0.001,
	}
}

func twoParticleState(separation float32) *State {
	s := NewState(2)
	s.Pos[0] = Vec3{X: -separation / 2}
	s.Pos[1] = Vec3{X: separation / 2}
	return s
}

func TestPairAccelRepulsiveInsideContact(t *testing.T) {
	p := testParams()
	rmin := float32(p.NumTypes) * p.ParticleRadius

	// Attractive coefficient, but inside rmin the force must still repel.
	a := float32(1.0) * p.ForceScale
	d := Vec3{X: rmin * 0.5}
	accel := pairAccel(rmin, d, a, p.MaxForceRange)

	if accel.Dot(d) >= 0 {
		t.Errorf("acceleration %+v not repulsive for separation %v", accel, d.X)
	}

	// Repulsion grows as the pair closes.
	closer := pairAccel(rmin, Vec3{X: rmin * 0.1}, a, p.MaxForceRange)
	if absf(closer.X) <= absf(accel.X) {
		t.Errorf("repulsion at 0.1*rmin (%v) not stronger than at 0.5*rmin (%v)", closer.X, accel.X)
	}
}

func TestPairAccelFadesToZeroAtRange(t *testing.T) {
	p := testParams()
	rmin := float32(p.NumTypes) * p.ParticleRadius

	peak := pairAccel(rmin, Vec3{X: (rmin + p.MaxForceRange) / 2}, p.ForceScale, p.MaxForceRange)
	edge := pairAccel(rmin, Vec3{X: p.MaxForceRange * 0.999}, p.ForceScale, p.MaxForceRange)
	if absf(edge.X) > absf(peak.X)*0.01 {
		t.Errorf("acceleration %v at the range edge, want under 1%% of peak %v", edge.X, peak.X)
	}
}

func TestStepIgnoresPairsBeyondRange(t *testing.T) {
	p := testParams()
	g := genome.New(1)
	g.SetForce(0, 0, 1)

	cur := twoParticleState(p.MaxForceRange * 2)
	next := NewState(2)
	next.Type = cur.Type
	food := NewFoodState(0)

	Step(cur, next, food, g, 0.008, p)

	for i := range next.Pos {
		if next.Pos[i] != cur.Pos[i] {
			t.Errorf("particle %d moved from %+v to %+v with no force in range", i, cur.Pos[i], next.Pos[i])
		}
	}
}

func TestStepRepulsionSeparates(t *testing.T) {
	p := testParams()
	g := genome.New(1)
	g.SetForce(0, 0, 1)

	// Inside rmin both particles repel regardless of the coefficient sign.
	rmin := float32(p.NumTypes) * p.ParticleRadius
	cur := twoParticleState(rmin * 0.5)
	next := NewState(2)
	next.Type = cur.Type
	food := NewFoodState(0)

	before := cur.Pos[1].Sub(cur.Pos[0]).Len()
	for i := 0; i < 10; i++ {
		Step(cur, next, food, g, 0.008, p)
		cur, next = next, cur
	}
	after := cur.Pos[1].Sub(cur.Pos[0]).Len()

	if after <= before {
		t.Errorf("separation went from %v to %v, want strictly increasing", before, after)
	}
}

func TestStepVelocityHalfLife(t *testing.T) {
	p := testParams()
	p.HalfLife = 0.1
	g := genome.New(1)

	cur := NewState(1)
	cur.Vel[0] = Vec3{X: 100}
	next := NewState(1)
	next.Type = cur.Type
	food := NewFoodState(0)

	// 10 ticks of dt=0.01 is exactly one half-life.
	for i := 0; i < 10; i++ {
		Step(cur, next, food, g, 0.01, p)
		cur, next = next, cur
	}

	speed := cur.Vel[0].Len()
	if math.Abs(float64(speed-50)) > 0.5 {
		t.Errorf("speed after one half-life = %v, want ~50", speed)
	}
}

func TestStepClampsSpeed(t *testing.T) {
	p := testParams()
	g := genome.New(1)

	cur := NewState(1)
	cur.Vel[0] = Vec3{X: 10000}
	next := NewState(1)
	next.Type = cur.Type
	food := NewFoodState(0)

	Step(cur, next, food, g, 0.008, p)

	if speed := next.Vel[0].Len(); speed > p.MaxSpeed*1.001 {
		t.Errorf("speed %v exceeds cap %v", speed, p.MaxSpeed)
	}
}

func TestStepFoodAttraction(t *testing.T) {
	p := testParams()
	g := genome.New(1)
	g.FoodForces[0] = 1

	cur := NewState(1)
	cur.Pos[0] = Vec3{X: -50}
	next := NewState(1)
	next.Type = cur.Type

	food := NewFoodState(1)
	food.Pos[0] = Vec3{X: 0}
	food.Active[0] = true

	Step(cur, next, food, g, 0.008, p)

	if next.Vel[0].X <= 0 {
		t.Errorf("velocity.X = %v, want positive pull toward food", next.Vel[0].X)
	}

	// Inactive food exerts nothing.
	food.Active[0] = false
	cur.Vel[0] = Vec3{}
	Step(cur, next, food, g, 0.008, p)
	if next.Vel[0] != (Vec3{}) {
		t.Errorf("velocity %+v from inactive food, want zero", next.Vel[0])
	}
}

func TestStepDeterministic(t *testing.T) {
	p := testParams()
	g := genome.NewRandom(1, rand.New(rand.NewSource(7)))

	run := func() *State {
		cur := twoParticleState(50)
		cur.Vel[0] = Vec3{Y: 10}
		next := NewState(2)
		next.Type = cur.Type
		food := NewFoodState(1)
		food.Pos[0] = Vec3{Y: 30}
		food.Active[0] = true

		for i := 0; i < 50; i++ {
			Step(cur, next, food, g, 0.008, p)
			cur, next = next, cur
		}
		return cur
	}

	a, b := run(), run()
	for i := range a.Pos {
		if a.Pos[i] != b.Pos[i] || a.Vel[i] != b.Vel[i] {
			t.Fatalf("particle %d diverged: %+v/%+v vs %+v/%+v", i, a.Pos[i], a.Vel[i], b.Pos[i], b.Vel[i])
		}
	}
}
