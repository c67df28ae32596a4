package sim

import (
	"github.com/pthm-cable/broth/config"
	"github.com/pthm-cable/broth/genome"
	"github.com/pthm-cable/broth/physics"
)

// Instance is one simulation: a fixed-size particle array, a fixed-size food
// array, a bound genotype, and an accumulated score. It is created once,
// reset at every epoch boundary, and stepped by the epoch scheduler. State
// is double-buffered; a tick writes only the back buffer and swaps.
type Instance struct {
	id     int
	cur    *physics.State
	next   *physics.State
	food   *physics.FoodState
	bound  *genome.Genotype
	params *physics.Params

	score   float32
	elapsed float32

	epochDuration float32
	collectReward float32
	surviveWeight float32
	collisionDist float32
}

// NewInstance creates an unbound instance. Reset must be called with a layout
// and genotype before stepping.
func NewInstance(id int, cfg *config.Config, params *physics.Params) *Instance {
	n := cfg.Derived.ActualParticles
	in := &Instance{
		id:            id,
		cur:           physics.NewState(n),
		next:          physics.NewState(n),
		food:          physics.NewFoodState(cfg.Food.Count),
		params:        params,
		epochDuration: float32(cfg.Simulation.EpochDuration),
		collectReward: float32(cfg.Food.Value * cfg.Scoring.CollectWeight),
		surviveWeight: float32(cfg.Scoring.SurviveWeight),
		collisionDist: float32(cfg.Physics.ParticleRadius + cfg.Physics.FoodRadius),
	}
	// Types never change mid-epoch; both buffers share the array.
	in.next.Type = in.cur.Type
	return in
}

// ID returns the instance's slot index.
func (in *Instance) ID() int { return in.id }

// Reset rebinds the instance for a new epoch: layout positions, zero
// velocities, all food active, score and clock cleared. The genotype's
// dimensions are checked before it is bound; a mismatched genotype is
// rejected and the instance is left untouched.
func (in *Instance) Reset(layout *SpawnLayout, g *genome.Genotype) error {
	if err := g.Validate(in.params.NumTypes); err != nil {
		return err
	}

	copy(in.cur.Pos, layout.Pos)
	copy(in.cur.Type, layout.Type)
	for i := range in.cur.Vel {
		in.cur.Vel[i] = physics.Vec3{}
	}
	copy(in.food.Pos, layout.Food)
	for i := range in.food.Active {
		in.food.Active[i] = true
	}

	in.bound = g
	in.score = 0
	in.elapsed = 0
	return nil
}

// Step advances the instance by one tick: kernel, buffer swap, food
// collection, survival reward, clock.
func (in *Instance) Step(dt float32) {
	physics.Step(in.cur, in.next, in.food, in.bound, dt, in.params)
	in.cur, in.next = in.next, in.cur

	in.collectFood()
	in.score += in.surviveWeight * float32(in.aliveCount()) * dt
	in.elapsed += dt
}

// collectFood deactivates food items touched by a particle and awards the
// collection reward. One particle consumes one item; consumed items stay
// inactive for the rest of the epoch.
func (in *Instance) collectFood() {
	for k := range in.food.Pos {
		if !in.food.Active[k] {
			continue
		}
		for i := range in.cur.Pos {
			d := in.cur.Pos[i].Sub(in.food.Pos[k])
			if d.Len() < in.collisionDist {
				in.food.Active[k] = false
				in.score += in.collectReward
				break
			}
		}
	}
}

// aliveCount returns the number of live particles. Particles have no death
// rule, so this is the full array; the survival reward still scales by it so
// the weighting survives if attrition is ever added.
func (in *Instance) aliveCount() int {
	return len(in.cur.Pos)
}

// Done reports whether the instance has reached the epoch duration.
func (in *Instance) Done() bool {
	return in.elapsed >= in.epochDuration
}

// Score returns the accumulated score so far.
func (in *Instance) Score() float32 { return in.score }

// Elapsed returns simulated seconds since the last reset.
func (in *Instance) Elapsed() float32 { return in.elapsed }

// Genotype returns the bound genotype. Nil before the first Reset.
func (in *Instance) Genotype() *genome.Genotype { return in.bound }

// FoodRemaining counts still-active food items.
func (in *Instance) FoodRemaining() int {
	n := 0
	for _, a := range in.food.Active {
		if a {
			n++
		}
	}
	return n
}
