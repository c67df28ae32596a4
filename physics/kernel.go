package physics

import (
	"math"

	"github.com/pthm-cable/broth/genome"
)

// State holds one population's particle attributes as flat parallel arrays,
// indexed by particle. Indices are stable within an epoch only.
type State struct {
	Pos  []Vec3
	Vel  []Vec3
	Type []uint8
}

// NewState allocates a zeroed state for n particles.
func NewState(n int) *State {
	return &State{
		Pos:  make([]Vec3, n),
		Vel:  make([]Vec3, n),
		Type: make([]uint8, n),
	}
}

// FoodState holds one population's food items. An item only ever transitions
// active to inactive within an epoch.
type FoodState struct {
	Pos    []Vec3
	Active []bool
}

// NewFoodState allocates a food state for n items, all inactive.
func NewFoodState(n int) *FoodState {
	return &FoodState{
		Pos:    make([]Vec3, n),
		Active: make([]bool, n),
	}
}

// Step advances cur by one tick into next. It reads only cur, food, g and p,
// and writes only next's position and velocity arrays, so callers may run
// disjoint index ranges (or whole instances) concurrently. Neighbor iteration
// is ascending index, which keeps the interaction cap's truncation
// deterministic regardless of execution order.
func Step(cur, next *State, food *FoodState, g *genome.Genotype, dt float32, p *Params) {
	damping := float32(math.Pow(0.5, float64(dt/p.HalfLife)))
	rmin := float32(p.NumTypes) * p.ParticleRadius
	rangeSq := p.MaxForceRange * p.MaxForceRange

	for i := range cur.Pos {
		total := Vec3{}
		ti := int(cur.Type[i])

		// Pairwise forces, capped per particle. The cap counts only pairs
		// that pass the range gate.
		count := 0
		for j := range cur.Pos {
			if j == i {
				continue
			}
			if count >= p.MaxInteractions {
				break
			}

			d := p.displacement(cur.Pos[i], cur.Pos[j])
			d2 := d.Dot(d)
			if d2 > rangeSq || d2 < p.MinDistance {
				continue
			}
			count++

			a := g.Force(ti, int(cur.Type[j])) * p.ForceScale
			total = total.Add(pairAccel(rmin, d, a, p.MaxForceRange).Scale(p.MaxForceRange))
		}

		// Food attraction, fading with distance.
		ff := g.FoodForce(ti) * p.ForceScale
		if absf(ff) > p.MinDistance {
			for k := range food.Pos {
				if !food.Active[k] {
					continue
				}
				d := p.displacement(cur.Pos[i], food.Pos[k])
				dist := d.Len()
				if dist > p.MinDistance && dist < p.MaxForceRange {
					falloff := fastSqrt(minf(2*p.FoodRadius/dist, 1))
					total = total.Add(d.Scale(ff * falloff / dist))
				}
			}
		}

		// Damped integration with a speed ceiling.
		v := cur.Vel[i].Add(total.Scale(dt)).Scale(damping)
		if speed := v.Len(); speed > p.MaxSpeed {
			v = v.Scale(p.MaxSpeed / speed)
		}
		pos := cur.Pos[i].Add(v.Scale(dt))
		applyBounds(&pos, &v, p.Boundary, p.Half, p.ParticleRadius)

		next.Pos[i] = pos
		next.Vel[i] = v
	}
}

// pairAccel computes one neighbor's acceleration contribution. Distances are
// normalized by the force range: inside rmin the force ramps linearly from -1
// at contact to 0 at rmin (always repulsive); outside it is a signed tent
// that peaks at (rmin+range)/2 with magnitude a and fades to 0 at the range.
func pairAccel(rmin float32, d Vec3, a, maxRange float32) Vec3 {
	dist := d.Len()
	if dist <= 0 {
		return Vec3{}
	}

	nd := dist / maxRange
	nr := rmin / maxRange

	var f float32
	if nd < nr {
		f = nd/nr - 1
	} else {
		f = a * (1 - absf(1+nr-2*nd)/(1-nr))
	}

	// unit(d) * f
	return d.Scale(f / dist)
}

// displacement returns the vector from a to b under the active geometry:
// toroidal shortest path in teleport mode, straight line otherwise.
func (p *Params) displacement(from, to Vec3) Vec3 {
	if p.Boundary == Teleport {
		return torusDelta(from, to, p.WorldSize)
	}
	return to.Sub(from)
}
