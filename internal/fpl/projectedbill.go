package fpl

import (
	"context"
	"fmt"
	"time"
)

// billDateFormat is the MMDDYYYY layout the dashboard API expects.
const billDateFormat = "01022006"

// ProjectedBillSnapshot holds the billing-to-date figures for the current
// period.
type ProjectedBillSnapshot struct {
	BillToDate    float64
	ProjectedBill float64
	DailyAvg      float64
	AvgHighTemp   int
}

// FetchProjectedBill retrieves the projected-bill resource for the account's
// premise and current bill date.
func (c *Client) FetchProjectedBill(ctx context.Context, accountID, premise string, currentBillDate time.Time) (ProjectedBillSnapshot, error) {
	path := fmt.Sprintf("/api/resources/account/%s/projectedBill?premiseNumber=%s&lastBilledDate=%s",
		accountID, premise, currentBillDate.Format(billDateFormat))

	var resp projectedBillResponse
	if err := c.getJSON(ctx, path, &resp); err != nil {
		return ProjectedBillSnapshot{}, fmt.Errorf("fetching projected bill for %s: %w", accountID, err)
	}

	return ProjectedBillSnapshot{
		BillToDate:    resp.Data.BillToDate,
		ProjectedBill: resp.Data.ProjectedBill,
		DailyAvg:      resp.Data.DailyAvg,
		AvgHighTemp:   int(resp.Data.AvgHighTemp),
	}, nil
}
