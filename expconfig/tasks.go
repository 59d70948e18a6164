package expconfig

import (
	"fmt"
	"math/rand"
)

// ExperimentWithContext attaches the baseline context mapping an
// experiment's tasks will carry to the workers
type ExperimentWithContext struct {
	Experiment Experiment
	Context    map[string][]float64
}

// CreateExperiments expands the full cross product of environments and
// experiment configs, in enumeration order. Repeated pairs are kept:
// they produce independent experiments.
func CreateExperiments(envConfigs []EnvConfig, configs []ExperimentConfig) []Experiment {
	experiments := make([]Experiment, 0, len(envConfigs)*len(configs))
	for _, env := range envConfigs {
		for _, cfg := range configs {
			experiments = append(experiments, Experiment{Env: env, Config: cfg})
		}
	}
	return experiments
}

// GenerateTasks emits numRuns tasks per experiment. Each experiment gets
// an id formed from the prefix and a monotonically increasing counter,
// so task ids are pairwise distinct across the batch.
func GenerateTasks(run RunConfig, experiments []ExperimentWithContext, numRuns int, taskPrefix string) []ExperimentTask {
	tasks := make([]ExperimentTask, 0, len(experiments)*numRuns)
	for i, ec := range experiments {
		expID := fmt.Sprintf("%s-%d", taskPrefix, i)
		for runID := 0; runID < numRuns; runID++ {
			tasks = append(tasks, ExperimentTask{
				ExpID:      expID,
				RunID:      runID,
				Experiment: ec.Experiment,
				Run:        run,
				Context:    copyContext(ec.Context),
			})
		}
	}
	return tasks
}

// each task carries its own copy of the context so tasks crossing the
// worker boundary share nothing mutable
func copyContext(context map[string][]float64) map[string][]float64 {
	out := make(map[string][]float64, len(context))
	for key, values := range context {
		copied := make([]float64, len(values))
		copy(copied, values)
		out[key] = copied
	}
	return out
}

// ShuffleTasks returns a uniformly random permutation of the tasks.
// Task running times vary widely with the environment and config, and
// generation order clusters similar tasks together; shuffling spreads
// them over the workers. Not deterministic across calls.
func ShuffleTasks(tasks []ExperimentTask) []ExperimentTask {
	shuffled := make([]ExperimentTask, len(tasks))
	copy(shuffled, tasks)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled
}
