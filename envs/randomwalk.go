package envs

// RandomWalk is a bounded chain of Size states with absorbing ends.
// Both actions drift left or right with equal probability, the right
// end pays +1 and the left end pays nothing.
type RandomWalk struct {
	Size int
}

func NewRandomWalk(size int) *RandomWalk {
	if size < 3 {
		panic("random walk needs at least 3 states")
	}
	return &RandomWalk{Size: size}
}

func (w *RandomWalk) MDP() *MDP {
	numActions := 2
	transitions, rewards := newDynamics(w.Size, numActions)
	terminal := make([]bool, w.Size)
	terminal[0] = true
	terminal[w.Size-1] = true

	for s := 0; s < w.Size; s++ {
		for a := 0; a < numActions; a++ {
			if terminal[s] {
				transitions[s][a][s] = 1.0
				continue
			}
			transitions[s][a][s-1] = 0.5
			transitions[s][a][s+1] = 0.5
			if s+1 == w.Size-1 {
				rewards[s][a][s+1] = 1.0
			}
		}
	}

	return &MDP{
		NumStates:   w.Size,
		NumActions:  numActions,
		Transitions: transitions,
		Rewards:     rewards,
		Terminal:    terminal,
	}
}
