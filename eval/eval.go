// Package eval runs a single policy-evaluation task: TD(0) state-value
// estimation of the uniform random policy, with the reward stream
// rewritten by the task's DAAF mapper, scored against the converged
// dynamic-programming baseline carried in the task context.
package eval

import (
	"fmt"
	"log"
	"math"
	"path"
	"strconv"
	"time"

	"golang.org/x/exp/rand"

	"github.com/dsv-rl/daaf/envs"
	"github.com/dsv-rl/daaf/expconfig"
)

// episode length cap, in multiples of the state count
const horizonPerState = 100

// Run executes one task and returns its id. Errors abort the task; the
// driver decides what an aborted task means for the batch.
func Run(task expconfig.ExperimentTask) (string, error) {
	taskID := task.ID()

	spec, err := envs.Resolve(task.Experiment.Env)
	if err != nil {
		return "", fmt.Errorf("task %s: %w", taskID, err)
	}
	baseline, ok := task.Context[expconfig.StateValuesContextKey]
	if !ok {
		return "", fmt.Errorf("task %s: no baseline state values in context", taskID)
	}
	if len(baseline) != spec.MDP.NumStates {
		return "", fmt.Errorf("task %s: baseline has %d values for %d states", taskID, len(baseline), spec.MDP.NumStates)
	}
	mapper, err := newStepMapper(task.Experiment.Config.Daaf, spec.MDP)
	if err != nil {
		return "", fmt.Errorf("task %s: %w", taskID, err)
	}

	control := task.Experiment.Config.Control
	src := rand.NewSource(uint64(time.Now().UnixNano()))
	rng := rand.New(src)
	sampler := envs.NewSampler(spec.MDP, src)

	values := make([]float64, spec.MDP.NumStates)
	rmseSeries := make([]float64, 0, task.Run.NumEpisodes)
	horizon := horizonPerState * spec.MDP.NumStates

	update := func(t transition) {
		target := t.reward + control.Gamma*values[t.next]
		values[t.state] += control.Alpha * (target - values[t.state])
	}

	log.Printf("Experiment %s starting", taskID)
	for episode := 1; episode <= task.Run.NumEpisodes; episode++ {
		sampler.Reset()
		for step := 0; step < horizon; step++ {
			state := sampler.State()
			action := rng.Intn(spec.MDP.NumActions)
			next, reward, done := sampler.Step(action)
			for _, t := range mapper.Map(transition{state: state, action: action, reward: reward, next: next}) {
				update(t)
			}
			if done {
				break
			}
		}
		for _, t := range mapper.EndEpisode() {
			update(t)
		}

		rmse := rootMeanSquaredError(values, baseline, spec.MDP.Terminal)
		rmseSeries = append(rmseSeries, rmse)
		if task.Run.LogEpisodeFrequency > 0 && episode%task.Run.LogEpisodeFrequency == 0 {
			log.Printf("Experiment %s episode %d/%d, rmse: %.5f", taskID, episode, task.Run.NumEpisodes, rmse)
		}
	}

	outDir := path.Join(task.Run.OutputDir, task.ExpID, strconv.Itoa(task.RunID))
	if err := writeResults(outDir, task, rmseSeries, values); err != nil {
		return "", fmt.Errorf("task %s: %w", taskID, err)
	}
	if err := plotRMSE(path.Join(outDir, "rmse.png"), taskID, rmseSeries); err != nil {
		return "", fmt.Errorf("task %s: %w", taskID, err)
	}
	log.Printf("Experiment %s finished", taskID)
	return taskID, nil
}

func rootMeanSquaredError(estimates, baseline []float64, terminal []bool) float64 {
	sum := 0.0
	count := 0
	for s := range estimates {
		if terminal[s] {
			continue
		}
		diff := estimates[s] - baseline[s]
		sum += diff * diff
		count++
	}
	if count == 0 {
		return 0
	}
	return math.Sqrt(sum / float64(count))
}
