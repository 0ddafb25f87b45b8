package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/yourusername/backtest-console/internal/api"
)

var importFile string

var importCmd = &cobra.Command{
	Use:   "import <strategies|datasets>",
	Short: "Bulk-register discovered strategies or datasets",
	Long: `Reads a JSON array of {"name": ..., "payload": {...}} items and registers
each one on the backend. Items the backend already knows are reported as
skipped; individual failures do not abort the batch.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(importFile)
		if err != nil {
			return fmt.Errorf("failed to read import file: %w", err)
		}

		var items []api.RegisterItem
		if err := json.Unmarshal(raw, &items); err != nil {
			return fmt.Errorf("failed to parse import file: %w", err)
		}

		ctx, cancel := commandContext()
		defer cancel()

		report, err := client.RegisterDiscovered(ctx, args[0], items)
		if err != nil {
			return err
		}

		fmt.Printf("succeeded: %d\nskipped:   %d\nfailed:    %d\n",
			report.Succeeded, report.Skipped, report.Failed)

		names := make([]string, 0, len(report.Failures))
		for name := range report.Failures {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Printf("  %s: %s\n", name, report.Failures[name])
		}
		return nil
	},
}

func init() {
	importCmd.Flags().StringVarP(&importFile, "file", "f", "", "Path to the JSON items file")
	_ = importCmd.MarkFlagRequired("file")
}
