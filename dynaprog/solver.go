// Package dynaprog computes converged state values for tabular MDPs by
// iterative policy evaluation under the uniform random policy.
package dynaprog

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/dsv-rl/daaf/envs"
)

const (
	// convergence threshold on the max value change per sweep
	tolerance = 1e-8
	maxSweeps = 100000
)

// StateValues iterates the Bellman expectation backup until the value
// function reaches its fixed point. The result is indexed by the MDP's
// state ordering. Deterministic for fixed inputs.
func StateValues(mdp *envs.MDP, gamma float64) []float64 {
	values := mat.NewVecDense(mdp.NumStates, nil)
	updated := mat.NewVecDense(mdp.NumStates, nil)

	for sweep := 0; sweep < maxSweeps; sweep++ {
		delta := 0.0
		for s := 0; s < mdp.NumStates; s++ {
			if mdp.Terminal[s] {
				updated.SetVec(s, 0)
				continue
			}
			backup := 0.0
			actionProb := 1.0 / float64(mdp.NumActions)
			for a := 0; a < mdp.NumActions; a++ {
				for next := 0; next < mdp.NumStates; next++ {
					p := mdp.Transitions[s][a][next]
					if p == 0 {
						continue
					}
					backup += actionProb * p * (mdp.Rewards[s][a][next] + gamma*values.AtVec(next))
				}
			}
			updated.SetVec(s, backup)
			delta = math.Max(delta, math.Abs(backup-values.AtVec(s)))
		}
		values.CopyVec(updated)
		if delta < tolerance {
			break
		}
	}

	out := make([]float64, mdp.NumStates)
	copy(out, values.RawVector().Data)
	return out
}
