package submit

import (
	"github.com/yourusername/backtest-console/internal/api"
	"github.com/yourusername/backtest-console/internal/draft"
)

// BuildRequest transforms a validated draft into the backend's job payload:
// lots map to position_size, fee_per_trade maps to commission, slippage passes
// through, and the strategy-specific fields fold into the parameters bag
// alongside the user-entered schema parameters.
func BuildRequest(d draft.Draft) api.SubmitJobRequest {
	parameters := make(map[string]interface{}, len(d.Parameters)+8)
	for name, value := range d.Parameters {
		parameters[name] = value
	}

	if d.DailyProfitTarget > 0 {
		parameters["daily_profit_target"] = d.DailyProfitTarget
	}
	if d.OptionDelta != 0 {
		parameters["option_delta"] = d.OptionDelta
	}
	if d.OptionPrice > 0 {
		parameters["option_price_per_unit"] = d.OptionPrice
	}
	parameters["intraday_mode"] = d.IntradayMode
	if d.SessionCloseTime != "" {
		parameters["session_close_time"] = d.SessionCloseTime
	}
	if d.DirectionFilter != "" {
		parameters["direction_filter"] = d.DirectionFilter
	}
	if len(d.TimeFilters) > 0 {
		parameters["time_filters"] = d.TimeFilters
	}
	if len(d.WeekdayFilters) > 0 {
		parameters["weekday_filters"] = d.WeekdayFilters
	}

	req := api.SubmitJobRequest{
		StrategyID:     d.StrategyID,
		DatasetID:      d.DatasetID,
		InitialCapital: d.InitialCapital,
		PositionSize:   d.Lots,
		StartDate:      d.StartDate,
		EndDate:        d.EndDate,
		Parameters:     parameters,
	}
	if d.Commission != nil {
		req.Commission = *d.Commission
	}
	if d.Slippage != nil {
		req.Slippage = *d.Slippage
	}
	return req
}
