package envs

// grid movement actions
const (
	MoveUp = iota
	MoveDown
	MoveLeft
	MoveRight
	numGridActions
)

// GridWorld is a deterministic grid with a single absorbing goal cell at
// the bottom-right corner. Every step costs -1, reaching the goal pays 0.
type GridWorld struct {
	Height int
	Width  int
}

func NewGridWorld(height, width int) *GridWorld {
	if height < 1 || width < 1 {
		panic("grid dimensions must be positive")
	}
	return &GridWorld{Height: height, Width: width}
}

// cell (i,j) maps to state i*Width+j
func (g *GridWorld) stateOf(i, j int) int {
	return i*g.Width + j
}

func (g *GridWorld) goal() int {
	return g.stateOf(g.Height-1, g.Width-1)
}

func (g *GridWorld) move(i, j, a int) (int, int) {
	switch a {
	case MoveUp:
		if i > 0 {
			i--
		}
	case MoveDown:
		if i < g.Height-1 {
			i++
		}
	case MoveLeft:
		if j > 0 {
			j--
		}
	case MoveRight:
		if j < g.Width-1 {
			j++
		}
	}
	return i, j
}

// MDP expands the grid dynamics into tabular form
func (g *GridWorld) MDP() *MDP {
	numStates := g.Height * g.Width
	transitions, rewards := newDynamics(numStates, numGridActions)
	terminal := make([]bool, numStates)
	terminal[g.goal()] = true

	for i := 0; i < g.Height; i++ {
		for j := 0; j < g.Width; j++ {
			s := g.stateOf(i, j)
			for a := 0; a < numGridActions; a++ {
				if terminal[s] {
					transitions[s][a][s] = 1.0
					continue
				}
				ni, nj := g.move(i, j, a)
				next := g.stateOf(ni, nj)
				transitions[s][a][next] = 1.0
				if next != g.goal() {
					rewards[s][a][next] = -1.0
				}
			}
		}
	}

	return &MDP{
		NumStates:   numStates,
		NumActions:  numGridActions,
		Transitions: transitions,
		Rewards:     rewards,
		Terminal:    terminal,
	}
}
