package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yourusername/backtest-console/internal/poller"
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "Inspect background jobs",
}

var jobsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List background jobs",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext()
		defer cancel()

		jobs, err := client.ListJobs(ctx)
		if err != nil {
			return err
		}

		fmt.Printf("%-36s %-10s %8s  %s\n", "ID", "Status", "Progress", "Error")
		for _, j := range jobs {
			fmt.Printf("%-36s %-10s %7.0f%%  %s\n", j.ID, j.Status, j.Progress*100, j.Error)
		}
		return nil
	},
}

var jobsWatchCmd = &cobra.Command{
	Use:   "watch <job-id>",
	Short: "Watch a job until it reaches a terminal status",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return watchJob(cmd.Context(), args[0])
	},
}

var jobsStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show job counts by status",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext()
		defer cancel()

		stats, err := client.GetJobStats(ctx)
		if err != nil {
			return err
		}

		fmt.Printf("pending:   %d\n", stats.Pending)
		fmt.Printf("running:   %d\n", stats.Running)
		fmt.Printf("completed: %d\n", stats.Completed)
		fmt.Printf("failed:    %d\n", stats.Failed)
		return nil
	},
}

var jobsResultCmd = &cobra.Command{
	Use:   "result <job-id>",
	Short: "Print the raw result payload of a completed job",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext()
		defer cancel()

		raw, err := client.GetJobResult(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Println(string(raw))
		return nil
	},
}

func init() {
	jobsCmd.AddCommand(jobsListCmd)
	jobsCmd.AddCommand(jobsWatchCmd)
	jobsCmd.AddCommand(jobsStatsCmd)
	jobsCmd.AddCommand(jobsResultCmd)
}

func watchJob(ctx context.Context, jobID string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	watcher := poller.New(client, cfg.PollInterval(), appLog)
	for update := range watcher.Watch(ctx, jobID) {
		if update.Err != nil {
			fmt.Printf("poll failed: %v\n", update.Err)
			continue
		}
		fmt.Printf("%-10s %5.0f%%", update.Job.Status, update.Job.Progress*100)
		if update.Job.Error != "" {
			fmt.Printf("  %s", update.Job.Error)
		}
		fmt.Println()
	}
	return nil
}
