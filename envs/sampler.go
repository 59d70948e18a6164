package envs

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/sampleuv"
)

// Sampler draws trajectories from an MDP's dynamics
type Sampler struct {
	mdp  *MDP
	rand rand.Source
	cur  int
}

func NewSampler(mdp *MDP, src rand.Source) *Sampler {
	return &Sampler{mdp: mdp, rand: src}
}

// Reset moves the sampler back to state 0 and returns it
func (e *Sampler) Reset() int {
	e.cur = startState(e.mdp)
	return e.cur
}

func startState(mdp *MDP) int {
	for s := 0; s < mdp.NumStates; s++ {
		if !mdp.Terminal[s] {
			return s
		}
	}
	return 0
}

// Step samples the next state under the transition distribution and
// returns (next state, reward, terminal)
func (e *Sampler) Step(action int) (int, float64, bool) {
	weights := make([]float64, e.mdp.NumStates)
	copy(weights, e.mdp.Transitions[e.cur][action])
	next, ok := sampleuv.NewWeighted(weights, e.rand).Take()
	if !ok {
		// a state with no outgoing probability mass is absorbing
		return e.cur, 0, true
	}
	reward := e.mdp.Rewards[e.cur][action][next]
	e.cur = next
	return next, reward, e.mdp.Terminal[next]
}

func (e *Sampler) State() int {
	return e.cur
}
