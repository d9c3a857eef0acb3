package fpl

import (
	"context"
	"fmt"
	"time"

	"github.com/fplstat/fplstat/internal/domain"
)

// EnergyServiceRequest is the fixed-shape configuration payload the energy
// service expects. Only PremiseNumber and LastBilledDate vary per call; the
// rest mirrors what the residential dashboard sends.
type EnergyServiceRequest struct {
	RecordCount        int    `json:"recordCount"`
	Status             int    `json:"status"`
	Channel            string `json:"channel"`
	AmrFlag            string `json:"amrFlag"`
	AccountType        string `json:"accountType"`
	RevCode            string `json:"revCode"`
	PremiseNumber      string `json:"premiseNumber"`
	ProjectedBillFlag  bool   `json:"projectedBillFlag"`
	BillComparisonFlag bool   `json:"billComparisionFlag"`
	MonthlyFlag        bool   `json:"monthlyFlag"`
	FrequencyType      string `json:"frequencyType"`
	LastBilledDate     string `json:"lastBilledDate"`
	ApplicationPage    string `json:"applicationPage"`
}

// NewEnergyServiceRequest builds the daily interval-usage request for a
// residential premise.
func NewEnergyServiceRequest(premise string, lastBilledDate time.Time) EnergyServiceRequest {
	return EnergyServiceRequest{
		RecordCount:        24,
		Status:             2,
		Channel:            "WEB",
		AmrFlag:            "Y",
		AccountType:        "RESIDENTIAL",
		RevCode:            "1",
		PremiseNumber:      premise,
		ProjectedBillFlag:  true,
		BillComparisonFlag: true,
		MonthlyFlag:        true,
		FrequencyType:      "Daily",
		LastBilledDate:     lastBilledDate.Format(billDateFormat),
		ApplicationPage:    "resDashBoard",
	}
}

// EnergyUsage is the normalized energy service result. DataPresent is false
// when the response carried no data key at all, in which case both parts are
// empty. CurrentUsage is nil when the sub-section was absent; accumulated
// daily usage is still returned in that case.
type EnergyUsage struct {
	DataPresent  bool
	DailyUsage   []domain.DailyUsageEntry
	CurrentUsage *domain.CurrentUsageSummary
}

// missingDayFlag is compared as a string; upstream sends "true"/"false"
// literals, and anything other than "true" keeps the entry.
const missingDayFlag = "true"

// FetchEnergyUsage posts the interval-usage request and normalizes daily
// entries and the current-usage summary.
func (c *Client) FetchEnergyUsage(ctx context.Context, accountID, premise string, lastBilledDate time.Time) (EnergyUsage, error) {
	path := fmt.Sprintf("/dashboard-api/resources/account/%s/energyService/%s", accountID, accountID)
	payload := NewEnergyServiceRequest(premise, lastBilledDate)

	var resp energyServiceResponse
	if err := c.postJSON(ctx, path, payload, &resp); err != nil {
		return EnergyUsage{}, fmt.Errorf("fetching energy usage for %s: %w", accountID, err)
	}

	if resp.Data == nil {
		return EnergyUsage{}, nil
	}

	result := EnergyUsage{DataPresent: true}

	if resp.Data.DailyUsage != nil {
		for _, d := range resp.Data.DailyUsage.Data {
			if d.MissingDay == missingDayFlag {
				continue
			}
			readTime, err := time.Parse(time.RFC3339, d.ReadTime)
			if err != nil {
				return EnergyUsage{}, fmt.Errorf("parsing readTime %q for %s: %w", d.ReadTime, accountID, err)
			}
			result.DailyUsage = append(result.DailyUsage, domain.DailyUsageEntry{
				Usage:           d.KwhUsed,
				Cost:            d.BillingCharge,
				MaxTemperature:  d.AverageHighTemperature,
				NetDeliveredKwh: zeroIfNil(d.NetDeliveredKwh),
				NetReceivedKwh:  zeroIfNil(d.NetReceivedKwh),
				ReadTime:        readTime,
			})
		}
	}

	if cu := resp.Data.CurrentUsage; cu != nil {
		result.CurrentUsage = &domain.CurrentUsageSummary{
			ProjectedKWH:    cu.ProjectedKWH,
			DailyAverageKWH: cu.DailyAverageKWH,
			BillToDateKWH:   cu.BillToDateKWH,
			RecMtrReading:   int(zeroIfNil(cu.RecMtrReading)),
			DelMtrReading:   int(zeroIfNil(cu.DelMtrReading)),
			BillStartDate:   cu.BillStartDate,
		}
	}

	return result, nil
}

func zeroIfNil(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}
