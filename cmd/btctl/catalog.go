package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func commandContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 30*time.Second)
}

var strategiesCmd = &cobra.Command{
	Use:   "strategies",
	Short: "List registered strategies",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext()
		defer cancel()

		strategies, err := client.ListStrategies(ctx)
		if err != nil {
			return err
		}

		fmt.Printf("%-36s %-28s %-8s %s\n", "ID", "Name", "Active", "Description")
		for _, s := range strategies {
			fmt.Printf("%-36s %-28s %-8v %s\n", s.ID, s.Name, s.Active, s.Description)
		}
		return nil
	},
}

var datasetsCmd = &cobra.Command{
	Use:   "datasets",
	Short: "List available datasets",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext()
		defer cancel()

		datasets, err := client.ListDatasets(ctx)
		if err != nil {
			return err
		}

		fmt.Printf("%-36s %-24s %-10s %-8s %10s  %s\n", "ID", "Name", "Symbol", "TF", "Rows", "Range")
		for _, d := range datasets {
			fmt.Printf("%-36s %-24s %-10s %-8s %10d  %s .. %s\n",
				d.ID, d.Name, d.Symbol, d.Timeframe, d.RowsCount, d.StartDate, d.EndDate)
		}
		return nil
	},
}
