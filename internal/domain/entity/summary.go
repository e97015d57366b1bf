package entity

import "time"

// DateWindow is a half-open [Start, End) range of calendar days.
type DateWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// String formats the window the way Cost Explorer expects dates.
func (w DateWindow) String() string {
	return w.Start.Format("2006-01-02") + " - " + w.End.Format("2006-01-02")
}

// BillingWindows are the three windows one run queries.
type BillingWindows struct {
	TwoDaysAgo DateWindow `json:"two_days_ago"`
	Month      DateWindow `json:"month"`
	Forecast   DateWindow `json:"forecast"`
}

// MonthlyCostSummary contains everything one report run produced.
type MonthlyCostSummary struct {
	RunID               string         `json:"run_id"`
	AccountID           string         `json:"account_id,omitempty"`
	GeneratedAt         time.Time      `json:"generated_at"`
	Windows             BillingWindows `json:"windows"`
	TotalTwoDaysAgo     float64        `json:"total_two_days_ago"`
	TotalMonthToDate    float64        `json:"total_month_to_date"`
	ForecastRestOfMonth float64        `json:"forecast_rest_of_month"`
	TopServices         CostEntryList  `json:"top_services"`
	Rate                ExchangeRate   `json:"exchange_rate"`
	Budgets             []BudgetInfo   `json:"budgets,omitempty"`
	Report              string         `json:"report"`
}
