package jobs

import "github.com/spf13/cobra"

var (
	envsPath            string
	configPath          string
	numRuns             int
	numEpisodes         int
	assetsDir           string
	outputDir           string
	logEpisodeFrequency int
	taskPrefix          string
	numWorkers          int
	redisAddr           string
)

func GetRootCommand() *cobra.Command {
	rootCommand := &cobra.Command{}
	rootCommand.PersistentFlags().StringVar(&envsPath, "envs-path", "", "Path to the environment definitions file")
	rootCommand.PersistentFlags().StringVar(&configPath, "config-path", "", "Path to the experiment configurations file")
	rootCommand.PersistentFlags().IntVar(&numRuns, "num-runs", 1, "Number of runs per experiment")
	rootCommand.PersistentFlags().IntVarP(&numEpisodes, "num-episodes", "e", 10000, "Number of episodes per run")
	rootCommand.PersistentFlags().StringVar(&assetsDir, "assets-dir", "assets", "Directory for persisted baseline state values")
	rootCommand.PersistentFlags().StringVarP(&outputDir, "output-dir", "o", "results", "Directory for run results")
	rootCommand.PersistentFlags().IntVar(&logEpisodeFrequency, "log-episode-frequency", 100, "Episodes between progress log lines")
	rootCommand.PersistentFlags().StringVar(&taskPrefix, "task-prefix", "exp", "Prefix for generated experiment ids")
	rootCommand.PersistentFlags().IntVar(&numWorkers, "workers", 4, "Number of pool workers")
	rootCommand.PersistentFlags().StringVar(&redisAddr, "redis-addr", "", "Redis address for a shared baseline store (file store if empty)")
	// adding the subcommands here
	rootCommand.AddCommand(PolicyEvalCommand())
	return rootCommand
}
