package dynaprog

import (
	"math"
	"testing"

	"github.com/dsv-rl/daaf/envs"
)

func TestStateValuesRandomWalk(t *testing.T) {
	// undiscounted bounded random walk: the value of state s is the
	// probability of exiting on the right, s/(size-1)
	mdp := envs.NewRandomWalk(7).MDP()
	values := StateValues(mdp, 1.0)

	for s := 1; s < 6; s++ {
		expected := float64(s) / 6.0
		if math.Abs(values[s]-expected) > 1e-6 {
			t.Errorf("state %d: expected %f, got %f", s, expected, values[s])
		}
	}
	if values[0] != 0 || values[6] != 0 {
		t.Errorf("terminal states should have value 0, got %f and %f", values[0], values[6])
	}
}

func TestStateValuesGridCorner(t *testing.T) {
	// 1x2 grid: from the start cell three actions bounce back at -1,
	// one reaches the goal at 0, so v = 0.75*(-1 + gamma*v) and
	// v = -0.75 / (1 - 0.75*gamma)
	mdp := envs.NewGridWorld(1, 2).MDP()
	gamma := 0.9
	values := StateValues(mdp, gamma)

	expected := -0.75 / (1 - 0.75*gamma)
	if math.Abs(values[0]-expected) > 1e-6 {
		t.Errorf("expected %f, got %f", expected, values[0])
	}
}

func TestStateValuesDeterministic(t *testing.T) {
	mdp := envs.NewGridWorld(4, 4).MDP()
	first := StateValues(mdp, 0.95)
	second := StateValues(mdp, 0.95)
	for s := range first {
		if first[s] != second[s] {
			t.Fatalf("state %d: %f vs %f across identical solves", s, first[s], second[s])
		}
	}
}
