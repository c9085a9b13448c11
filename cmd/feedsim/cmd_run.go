package main

import (
	"github.com/spf13/cobra"

	"feedsim/simulation"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run replicas of a single configuration and save aggregated results",
		Long: `Run N independent replicas of one simulation configuration and save
the aggregated results as <out>.msgpack.lz4 plus <out>_config.json.

Examples:
  feedsim run --config config.json --out results/baseline
  feedsim run --config config.json --out results/baseline --replicas 100 --workers 8`,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			out, _ := cmd.Flags().GetString("out")
			replicas, _ := cmd.Flags().GetInt("replicas")
			trajectories, _ := cmd.Flags().GetInt("trajectories")
			workers, _ := cmd.Flags().GetInt("workers")
			seed, _ := cmd.Flags().GetUint64("seed")

			cfg, err := simulation.LoadConfig(configPath)
			if err != nil {
				return err
			}

			agg, err := simulation.RunReplicas(cfg, simulation.ReplicaOptions{
				NReplicas:         replicas,
				NSaveTrajectories: trajectories,
				Workers:           workers,
				Seed:              seed,
				Progress:          true,
			})
			if err != nil {
				return err
			}

			return simulation.SaveAggregate(out, cfg, agg)
		},
	}

	cmd.Flags().String("config", "config.json", "path to the run configuration JSON")
	cmd.Flags().String("out", "results/run", "base path for the result artifact pair")
	cmd.Flags().Int("replicas", 100, "number of independent replicas")
	cmd.Flags().Int("trajectories", 5, "replicas for which to keep full opinion trajectories")
	cmd.Flags().Int("workers", 0, "concurrent replicas (0 = all CPUs)")
	cmd.Flags().Uint64("seed", 1, "base random seed; replica i uses seed+i")
	cmd.MarkFlagRequired("config")
	cmd.MarkFlagRequired("out")

	return cmd
}
