package envs

import (
	"fmt"

	"github.com/dsv-rl/daaf/expconfig"
)

// environment names accepted in EnvConfig
const (
	GridWorldEnv  = "grid-world"
	RandomWalkEnv = "random-walk"
)

// Spec is the resolved descriptor of one environment variant
type Spec struct {
	Name  string
	Level string
	MDP   *MDP
}

func intArg(args map[string]int, name string, fallback int) int {
	if v, ok := args[name]; ok {
		return v
	}
	return fallback
}

// Resolve constructs the MDP for an environment config. It is
// deterministic: the same config always yields the same Spec.
func Resolve(cfg expconfig.EnvConfig) (Spec, error) {
	var mdp *MDP
	switch cfg.Name {
	case GridWorldEnv:
		height := intArg(cfg.Args, "height", 4)
		width := intArg(cfg.Args, "width", 4)
		if height < 1 || width < 1 {
			return Spec{}, fmt.Errorf("invalid grid dimensions %dx%d for %s", height, width, cfg.Name)
		}
		mdp = NewGridWorld(height, width).MDP()
	case RandomWalkEnv:
		size := intArg(cfg.Args, "size", 7)
		if size < 3 {
			return Spec{}, fmt.Errorf("invalid chain size %d for %s", size, cfg.Name)
		}
		mdp = NewRandomWalk(size).MDP()
	default:
		return Spec{}, fmt.Errorf("unknown environment: %s", cfg.Name)
	}
	return Spec{Name: cfg.Name, Level: cfg.Level, MDP: mdp}, nil
}
