package domain

import "time"

// DailyUsageEntry is one day of interval usage, normalized from the energy
// service response. Optional readings stay nil when the upstream payload
// omits them; the net meter values default to zero instead because the
// upstream reports them only for net-metered premises.
type DailyUsageEntry struct {
	Usage           *float64  `json:"usage"`
	Cost            *float64  `json:"cost"`
	MaxTemperature  *float64  `json:"max_temperature"`
	NetDeliveredKwh float64   `json:"netDeliveredKwh"`
	NetReceivedKwh  float64   `json:"netReceivedKwh"`
	ReadTime        time.Time `json:"readTime"`
}

// CurrentUsageSummary holds the current-period usage totals from the energy
// service. BillStartDate is passed through unparsed, as upstream sends it.
type CurrentUsageSummary struct {
	ProjectedKWH    float64 `json:"projectedKWH"`
	DailyAverageKWH float64 `json:"dailyAverageKWH"`
	BillToDateKWH   float64 `json:"billToDateKWH"`
	RecMtrReading   int     `json:"recMtrReading"`
	DelMtrReading   int     `json:"delMtrReading"`
	BillStartDate   string  `json:"billStartDate"`
}

// BalanceLine is one ledger line from the balance resource. Details is the
// category label; the DEBT category marks the outstanding-debt line.
type BalanceLine struct {
	Details string  `json:"details"`
	Amount  float64 `json:"amount"`
}

// DebtCategory is the ledger label of the outstanding-debt line.
const DebtCategory = "DEBT"
