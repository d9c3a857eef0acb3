package domain

// AccountRecord is the merged output of one account's aggregation. Field
// groups are additive: whichever sub-fetches succeeded contribute their
// fields, everything else is omitted from the JSON entirely (nil, never
// zeroed). The JSON keys reproduce the names the upstream dashboard
// historically exported, misspellings included ("defered_amount",
// "energy_percent_by_applicance"), so existing consumers keep working.
type AccountRecord struct {
	AccountID       string `json:"account_id"`
	MeterSerialNo   string `json:"meterSerialNo"`
	CurrentBillDate string `json:"current_bill_date"`
	NextBillDate    string `json:"next_bill_date"`
	ServiceDays     int    `json:"service_days"`
	AsOfDays        int    `json:"as_of_days"`
	RemainingDays   int    `json:"remaining_days"`

	// Projected-bill group. BillToDate is shared with the budget-billing
	// graph group below; see the merge rules in internal/aggregate.
	BillToDate    *float64 `json:"bill_to_date,omitempty"`
	ProjectedBill *float64 `json:"projected_bill,omitempty"`
	DailyAvg      *float64 `json:"daily_avg,omitempty"`
	AvgHighTemp   *int     `json:"avg_high_temp,omitempty"`

	// Budget-billing group.
	BudgetBill                 bool     `json:"budget_bill"`
	BudgetBillingDailyAvg      *float64 `json:"budget_billing_daily_avg,omitempty"`
	BudgetBillingBillToDate    *float64 `json:"budget_billing_bill_to_date,omitempty"`
	BudgetBillingProjectedBill *float64 `json:"budget_billing_projected_bill,omitempty"`
	DeferedAmount              *float64 `json:"defered_amount,omitempty"`

	// Energy-service group.
	DailyUsage      []DailyUsageEntry `json:"daily_usage,omitempty"`
	ProjectedKWH    *float64          `json:"projectedKWH,omitempty"`
	DailyAverageKWH *float64          `json:"dailyAverageKWH,omitempty"`
	BillToDateKWH   *float64          `json:"billToDateKWH,omitempty"`
	RecMtrReading   *int              `json:"recMtrReading,omitempty"`
	DelMtrReading   *int              `json:"delMtrReading,omitempty"`
	BillStartDate   *string           `json:"billStartDate,omitempty"`

	// Appliance-usage group: category label -> integer percent of the bill.
	ApplianceUsage map[string]int `json:"energy_percent_by_applicance,omitempty"`

	// Balance group. DebtAmount is the amount of the first DEBT ledger
	// line, when one exists.
	BalanceData []BalanceLine `json:"balance_data,omitempty"`
	DebtAmount  *float64      `json:"debt_amount,omitempty"`
}

// LatestDailyUsage returns the last entry of the daily usage sequence,
// which upstream orders chronologically, or false when there is none.
func (r AccountRecord) LatestDailyUsage() (DailyUsageEntry, bool) {
	if len(r.DailyUsage) == 0 {
		return DailyUsageEntry{}, false
	}
	return r.DailyUsage[len(r.DailyUsage)-1], true
}
