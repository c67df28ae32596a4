// Package epoch drives the evolutionary loop: spawn identical boards, run all
// simulations for a fixed span, score them, evolve the genomes, repeat.
package epoch

// Phase is the scheduler's position in the epoch cycle.
type Phase int

const (
	Spawning Phase = iota
	Running
	Scoring
	Evolving
)

func (p Phase) String() string {
	switch p {
	case Spawning:
		return "spawning"
	case Running:
		return "running"
	case Scoring:
		return "scoring"
	case Evolving:
		return "evolving"
	default:
		return "unknown"
	}
}
