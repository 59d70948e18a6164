package envs

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
)

// MDP is a finite tabular Markov Decision Process. States are indexed
// 0..NumStates-1 and actions 0..NumActions-1. The state indexing is the
// ordering convention for every state-value vector derived from the MDP.
type MDP struct {
	NumStates  int
	NumActions int
	// Transitions[s][a][s'] is the probability of moving to s'
	// when taking a in s. Rows must sum to 1.
	Transitions [][][]float64
	// Rewards[s][a][s'] is the expected reward of the transition
	Rewards [][][]float64
	// Terminal marks absorbing states
	Terminal []bool
}

// Fingerprint returns a stable hash of the dynamics. Two MDPs with the
// same fingerprint have identical transition and reward structure.
func (m *MDP) Fingerprint() string {
	bs, err := json.Marshal(m)
	if err != nil {
		panic(err)
	}
	return fmt.Sprintf("%x", sha256.Sum256(bs))
}

func newDynamics(numStates, numActions int) ([][][]float64, [][][]float64) {
	transitions := make([][][]float64, numStates)
	rewards := make([][][]float64, numStates)
	for s := 0; s < numStates; s++ {
		transitions[s] = make([][]float64, numActions)
		rewards[s] = make([][]float64, numActions)
		for a := 0; a < numActions; a++ {
			transitions[s][a] = make([]float64, numStates)
			rewards[s][a] = make([]float64, numStates)
		}
	}
	return transitions, rewards
}
