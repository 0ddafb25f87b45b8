package draft

import "github.com/yourusername/backtest-console/internal/prefs"

// Baseline values used when no preference default has been persisted.
const (
	defaultInitialCapital   = 10000
	defaultLots             = 1
	defaultCommission       = 0.0005
	defaultSlippage         = 0.0001
	defaultSessionCloseTime = "15:15"
	defaultDirectionFilter  = "both"
)

// buildDefaults merges, in increasing priority: hard-coded baseline values,
// then the persisted per-field preference defaults. Caller pre-selection is
// layered on top by Store.Open.
func buildDefaults(store *prefs.Store) Draft {
	commission := float64(defaultCommission)
	slippage := float64(defaultSlippage)

	d := Draft{
		InitialCapital:   defaultInitialCapital,
		Lots:             defaultLots,
		Commission:       &commission,
		Slippage:         &slippage,
		SessionCloseTime: defaultSessionCloseTime,
		DirectionFilter:  defaultDirectionFilter,
		Parameters:       make(map[string]interface{}),
	}

	if store == nil {
		return d
	}

	userDefaults := store.Defaults()
	if userDefaults == nil {
		return d
	}

	if userDefaults.InitialCapital > 0 {
		d.InitialCapital = userDefaults.InitialCapital
	}
	if userDefaults.Lots > 0 {
		d.Lots = userDefaults.Lots
	}
	if userDefaults.FeePerTrade > 0 {
		fee := userDefaults.FeePerTrade
		d.Commission = &fee
	}
	if userDefaults.Slippage > 0 {
		slip := userDefaults.Slippage
		d.Slippage = &slip
	}
	if userDefaults.DailyProfitTarget > 0 {
		d.DailyProfitTarget = userDefaults.DailyProfitTarget
	}
	if userDefaults.OptionDelta != 0 {
		d.OptionDelta = userDefaults.OptionDelta
	}
	if userDefaults.OptionPrice > 0 {
		d.OptionPrice = userDefaults.OptionPrice
	}
	d.IntradayMode = userDefaults.IntradayMode
	if userDefaults.SessionCloseTime != "" {
		d.SessionCloseTime = userDefaults.SessionCloseTime
	}
	if userDefaults.DirectionFilter != "" {
		d.DirectionFilter = userDefaults.DirectionFilter
	}
	if len(userDefaults.TimeFilters) > 0 {
		d.TimeFilters = append([]string(nil), userDefaults.TimeFilters...)
	}
	if len(userDefaults.WeekdayFilters) > 0 {
		d.WeekdayFilters = append([]string(nil), userDefaults.WeekdayFilters...)
	}

	return d
}
