package main

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"feedsim/simulation"
)

func newJobCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "job",
		Short: "Run one combination of an experiment's parameter grid",
		Long: `Run a single job of a parameter sweep. The experiment directory must
contain config.json (base configuration) and param_grid.json (sweep
grid). The job index selects one combination; results land under
<experiment>/results/ with a descriptive base name, and completed jobs
are recorded in <experiment>/results/jobs.db.

Typical use is one job per cluster array task:
  feedsim job --experiment ./exp1 --job $TASK_ID --replicas 100`,
		RunE: func(cmd *cobra.Command, args []string) error {
			expDir, _ := cmd.Flags().GetString("experiment")
			jobID, _ := cmd.Flags().GetInt("job")
			replicas, _ := cmd.Flags().GetInt("replicas")
			trajectories, _ := cmd.Flags().GetInt("trajectories")
			workers, _ := cmd.Flags().GetInt("workers")
			seed, _ := cmd.Flags().GetUint64("seed")
			force, _ := cmd.Flags().GetBool("force")

			base, err := simulation.LoadConfig(filepath.Join(expDir, "config.json"))
			if err != nil {
				return err
			}
			sweep, err := simulation.LoadSweep(filepath.Join(expDir, "param_grid.json"))
			if err != nil {
				return err
			}

			cfg, combo, err := sweep.JobConfig(base, jobID)
			if err != nil {
				return err
			}

			resultsDir := filepath.Join(expDir, "results")
			db, err := simulation.OpenResultsDB(filepath.Join(resultsDir, "jobs.db"))
			if err != nil {
				return err
			}
			defer db.Close()

			if !force {
				done, err := db.HasJob(jobID)
				if err != nil {
					return err
				}
				if done {
					slog.Info("job already recorded, skipping", "job", jobID)
					return nil
				}
			}

			slog.Info("running sweep job",
				"job", jobID,
				"epsilon", combo.Epsilon,
				"ranker", combo.Rule,
				"base_name", combo.BaseName())

			start := time.Now()
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

			outBase := filepath.Join(resultsDir, combo.BaseName())
			if err := simulation.SaveAggregate(outBase, cfg, agg); err != nil {
				return err
			}
			if err := db.RecordJob(jobID, combo.BaseName(), cfg, replicas, time.Since(start)); err != nil {
				return err
			}

			fmt.Printf("Job %d completed: %s%s\n", jobID, outBase, ".msgpack.lz4")
			return nil
		},
	}

	cmd.Flags().String("experiment", "", "experiment directory with config.json and param_grid.json")
	cmd.Flags().Int("job", 0, "job index into the sweep grid")
	cmd.Flags().Int("replicas", 100, "number of independent replicas")
	cmd.Flags().Int("trajectories", 5, "replicas for which to keep full opinion trajectories")
	cmd.Flags().Int("workers", 0, "concurrent replicas (0 = all CPUs)")
	cmd.Flags().Uint64("seed", 1, "base random seed; replica i uses seed+i")
	cmd.Flags().Bool("force", false, "rerun even if the job is already recorded")
	cmd.MarkFlagRequired("experiment")

	return cmd
}
