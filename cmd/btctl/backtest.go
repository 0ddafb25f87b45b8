package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yourusername/backtest-console/internal/draft"
	"github.com/yourusername/backtest-console/internal/models"
	"github.com/yourusername/backtest-console/internal/submit"
)

var (
	newStrategyID string
	newDatasetID  string
	newCapital    float64
	newLots       int
	newCommission string
	newSlippage   string
	newStartDate  string
	newEndDate    string
	newParams     []string
	newWatch      bool

	listStrategyFilter string
)

var backtestCmd = &cobra.Command{
	Use:   "backtest",
	Short: "Launch and inspect backtests",
}

var backtestNewCmd = &cobra.Command{
	Use:   "new",
	Short: "Validate and submit a new backtest",
	RunE:  runBacktestNew,
}

var backtestListCmd = &cobra.Command{
	Use:   "list",
	Short: "List backtests",
	RunE:  runBacktestList,
}

var backtestShowCmd = &cobra.Command{
	Use:   "show <backtest-id>",
	Short: "Show one backtest with its metrics",
	Args:  cobra.ExactArgs(1),
	RunE:  runBacktestShow,
}

var backtestDeleteCmd = &cobra.Command{
	Use:   "delete <backtest-id>",
	Short: "Delete a backtest",
	Args:  cobra.ExactArgs(1),
	RunE:  runBacktestDelete,
}

func init() {
	backtestNewCmd.Flags().StringVar(&newStrategyID, "strategy", "", "Strategy id")
	backtestNewCmd.Flags().StringVar(&newDatasetID, "dataset", "", "Dataset id")
	backtestNewCmd.Flags().Float64Var(&newCapital, "capital", 0, "Initial capital (default from preferences)")
	backtestNewCmd.Flags().IntVar(&newLots, "lots", 0, "Position size in lots (default from preferences)")
	backtestNewCmd.Flags().StringVar(&newCommission, "commission", "", "Commission as a percentage, e.g. 0.05")
	backtestNewCmd.Flags().StringVar(&newSlippage, "slippage", "", "Slippage as a percentage, e.g. 0.01")
	backtestNewCmd.Flags().StringVar(&newStartDate, "start-date", "", "Start date (YYYY-MM-DD)")
	backtestNewCmd.Flags().StringVar(&newEndDate, "end-date", "", "End date (YYYY-MM-DD)")
	backtestNewCmd.Flags().StringArrayVar(&newParams, "param", nil, "Strategy parameter as name=value, repeatable")
	backtestNewCmd.Flags().BoolVar(&newWatch, "watch", false, "Watch the job until it finishes")

	backtestListCmd.Flags().StringVar(&listStrategyFilter, "strategy", "", "Filter by strategy id")

	backtestCmd.AddCommand(backtestNewCmd)
	backtestCmd.AddCommand(backtestListCmd)
	backtestCmd.AddCommand(backtestShowCmd)
	backtestCmd.AddCommand(backtestDeleteCmd)
}

// printNotifier routes pipeline notifications to the terminal.
type printNotifier struct{}

func (printNotifier) Success(msg string) { fmt.Println(msg) }
func (printNotifier) Error(msg string)   { fmt.Println("error: " + msg) }

func runBacktestNew(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext()
	defer cancel()

	strategies, err := client.ListStrategies(ctx)
	if err != nil {
		return err
	}
	datasets, err := client.ListDatasets(ctx)
	if err != nil {
		return err
	}

	drafts := draft.NewStore(prefStore)
	drafts.Open(draft.OpenOptions{StrategyID: newStrategyID}, strategies, datasets)
	if newDatasetID != "" {
		drafts.SetField("dataset_id", newDatasetID)
	}
	if cmd.Flags().Changed("capital") {
		drafts.SetField("initial_capital", newCapital)
	}
	if cmd.Flags().Changed("lots") {
		drafts.SetField("lots", float64(newLots))
	}
	if newCommission != "" {
		rate, err := draft.PercentToRate(newCommission)
		if err != nil {
			return fmt.Errorf("invalid commission: %w", err)
		}
		drafts.SetField("commission", rate)
	}
	if newSlippage != "" {
		rate, err := draft.PercentToRate(newSlippage)
		if err != nil {
			return fmt.Errorf("invalid slippage: %w", err)
		}
		drafts.SetField("slippage", rate)
	}
	if newStartDate != "" {
		drafts.SetField("start_date", newStartDate)
	}
	if newEndDate != "" {
		drafts.SetField("end_date", newEndDate)
	}

	d := drafts.Draft()

	var schema []models.ParameterSpec
	if d.StrategyID != "" {
		schema, err = client.GetStrategySchema(ctx, d.StrategyID)
		if err != nil {
			return err
		}
		seedSchemaDefaults(drafts, schema)
	}
	if err := applyParamFlags(drafts, schema, newParams); err != nil {
		return err
	}

	d = drafts.Draft()
	handler := submit.NewHandler(client, printNotifier{}, appLog)
	outcome := handler.Submit(ctx, d, findStrategy(strategies, d.StrategyID), findDataset(datasets, d.DatasetID), schema)

	if !outcome.Submitted {
		printValidationErrors(outcome.Validation.Errors)
		return fmt.Errorf("backtest not submitted")
	}

	fmt.Printf("job id: %s\n", outcome.JobID)
	if newWatch {
		return watchJob(cmd.Context(), outcome.JobID)
	}
	return nil
}

func seedSchemaDefaults(drafts *draft.Store, schema []models.ParameterSpec) {
	if len(drafts.Draft().Parameters) > 0 {
		return
	}
	defaults := make(map[string]interface{})
	for _, spec := range schema {
		if spec.Default != nil {
			defaults[spec.Name] = spec.Default
		}
	}
	drafts.SetParameters(defaults)
}

func applyParamFlags(drafts *draft.Store, schema []models.ParameterSpec, flags []string) error {
	for _, flag := range flags {
		name, raw, ok := strings.Cut(flag, "=")
		if !ok {
			return fmt.Errorf("invalid --param %q, expected name=value", flag)
		}
		drafts.SetParameter(name, parseParamValue(schema, name, raw))
	}
	return nil
}

func parseParamValue(schema []models.ParameterSpec, name, raw string) interface{} {
	for _, spec := range schema {
		if spec.Name != name {
			continue
		}
		switch {
		case spec.Type == models.ParamInt:
			if v, err := strconv.Atoi(raw); err == nil {
				return v
			}
		case spec.Type.IsNumeric():
			if v, err := strconv.ParseFloat(raw, 64); err == nil {
				return v
			}
		case spec.Type == models.ParamBool:
			return raw == "true" || raw == "yes"
		}
		return raw
	}
	return raw
}

func printValidationErrors(errs draft.ErrorMap) {
	keys := make([]string, 0, len(errs))
	for k := range errs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Printf("  %s: %s\n", k, errs[k])
	}
}

func runBacktestList(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext()
	defer cancel()

	backtests, err := client.ListBacktests(ctx, listStrategyFilter)
	if err != nil {
		return err
	}

	fmt.Printf("%-36s %-28s %-10s %9s %8s\n", "ID", "Strategy", "Status", "Return", "Sharpe")
	for _, bt := range backtests {
		name := bt.StrategyName
		if name == "" {
			name = bt.StrategyID
		}
		ret, sharpe := "-", "-"
		if bt.Metrics != nil {
			ret = fmt.Sprintf("%8.2f%%", bt.Metrics.TotalReturn*100)
			sharpe = fmt.Sprintf("%8.2f", bt.Metrics.SharpeRatio)
		}
		fmt.Printf("%-36s %-28s %-10s %9s %8s\n", bt.ID, name, bt.Status, ret, sharpe)
	}
	return nil
}

func runBacktestShow(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext()
	defer cancel()

	bt, err := client.GetBacktest(ctx, args[0])
	if err != nil {
		return err
	}

	fmt.Printf("Backtest:  %s\n", bt.ID)
	fmt.Printf("Strategy:  %s\n", bt.StrategyID)
	fmt.Printf("Dataset:   %s\n", bt.DatasetID)
	fmt.Printf("Status:    %s\n", bt.Status)
	if bt.Metrics == nil {
		fmt.Println("No metrics yet.")
		return nil
	}

	m := bt.Metrics
	fmt.Printf("Total return:   %8.2f%%\n", m.TotalReturn*100)
	fmt.Printf("Sharpe ratio:   %8.2f\n", m.SharpeRatio)
	fmt.Printf("Max drawdown:   %8.2f%%\n", m.MaxDrawdown*100)
	fmt.Printf("Win rate:       %8.2f%%\n", m.WinRate*100)
	fmt.Printf("Profit factor:  %8.2f\n", m.ProfitFactor)
	fmt.Printf("Trades:         %8d\n", m.TotalTrades)
	fmt.Printf("Final capital:  %8.2f\n", m.FinalCapital)
	return nil
}

func runBacktestDelete(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext()
	defer cancel()

	if err := client.DeleteBacktest(ctx, args[0]); err != nil {
		return err
	}
	fmt.Println("deleted", args[0])
	return nil
}

func findStrategy(strategies []models.Strategy, id string) *models.Strategy {
	for i := range strategies {
		if strategies[i].ID == id {
			return &strategies[i]
		}
	}
	return nil
}

func findDataset(datasets []models.Dataset, id string) *models.Dataset {
	for i := range datasets {
		if datasets[i].ID == id {
			return &datasets[i]
		}
	}
	return nil
}
