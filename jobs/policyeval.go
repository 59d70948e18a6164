package jobs

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"

	"github.com/dsv-rl/daaf/baselines"
	"github.com/dsv-rl/daaf/dynaprog"
	"github.com/dsv-rl/daaf/envs"
	"github.com/dsv-rl/daaf/eval"
	"github.com/dsv-rl/daaf/expconfig"
	"github.com/dsv-rl/daaf/sched"
	"github.com/dsv-rl/daaf/util"
)

func PolicyEvalCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "policyeval",
		Short: "Run a batch of policy evaluation experiments",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPolicyEval(cmd.Context())
		},
	}
}

func runPolicyEval(ctx context.Context) error {
	envConfigs, err := expconfig.ParseEnvironments(envsPath)
	if err != nil {
		return err
	}
	configs, err := expconfig.ParseExperimentConfigs(configPath)
	if err != nil {
		return err
	}
	experiments := expconfig.CreateExperiments(envConfigs, configs)

	var store baselines.Store
	if redisAddr != "" {
		redisStore := baselines.NewRedisStore(ctx, redisAddr)
		defer redisStore.Close()
		store = redisStore
	} else {
		store = baselines.NewFileStore(assetsDir)
	}

	withContext, err := addExperimentContext(experiments, store)
	if err != nil {
		return err
	}

	runConfig := expconfig.RunConfig{
		NumEpisodes:         numEpisodes,
		LogEpisodeFrequency: logEpisodeFrequency,
		OutputDir:           outputDir,
	}
	if err := util.EnsureDir(outputDir); err != nil {
		return err
	}
	tasks := expconfig.GenerateTasks(runConfig, withContext, numRuns, taskPrefix)
	// shuffle tasks to balance workload
	tasks = expconfig.ShuffleTasks(tasks)
	log.Printf("Parsed %d configs and %d environments into %d tasks", len(configs), len(envConfigs), len(tasks))

	scheduler := sched.NewScheduler(sched.NewLocalPool(numWorkers))
	handles, byHandle := scheduler.SubmitAll(tasks, eval.Run)
	total := len(handles)

	printer := sched.NewProgressPrinter(ctx, total, time.Second)
	printer.Start()
	defer printer.Stop()

	for completion := range scheduler.RunToCompletion(handles) {
		if completion.Err != nil {
			return fmt.Errorf("task %s failed: %w", byHandle[completion.Handle].ID(), completion.Err)
		}
		printer.Update(completion.Value, completion.Remaining)
		log.Printf("Completed task %s, %d left out of %d.", completion.Value, completion.Remaining, total)
	}
	return nil
}

// addExperimentContext builds the baseline index over the exact union
// of the experiments' keys, then attaches each experiment's converged
// state values as plain serializable context. Build first, attach
// second: generation never triggers a solve.
func addExperimentContext(experiments []expconfig.Experiment, store baselines.Store) ([]expconfig.ExperimentWithContext, error) {
	specs := make([]baselines.Spec, 0, len(experiments))
	for _, experiment := range experiments {
		envSpec, err := envs.Resolve(experiment.Env)
		if err != nil {
			return nil, err
		}
		specs = append(specs, baselines.Spec{
			EnvName:        envSpec.Name,
			Level:          envSpec.Level,
			DiscountFactor: experiment.DiscountFactor(),
			MDP:            envSpec.MDP,
		})
	}

	index, err := baselines.BuildIndex(specs, dynaprog.StateValues, store)
	if err != nil {
		return nil, err
	}

	withContext := make([]expconfig.ExperimentWithContext, 0, len(experiments))
	for i, experiment := range experiments {
		values, err := index.Get(specs[i].EnvName, specs[i].Level, specs[i].DiscountFactor)
		if err != nil {
			return nil, err
		}
		withContext = append(withContext, expconfig.ExperimentWithContext{
			Experiment: experiment,
			Context: map[string][]float64{
				expconfig.StateValuesContextKey: values,
			},
		})
	}
	return withContext, nil
}
