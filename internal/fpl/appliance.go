package fpl

import (
	"context"
	"fmt"
	"time"
)

// applianceUsageRequest carries the billing-period start date for the
// appliance usage resource.
type applianceUsageRequest struct {
	StartDate string `json:"startDate"`
}

// FetchApplianceUsage retrieves per-category percentage-of-dollar figures,
// in the order upstream provides them. Allocation happens in the aggregation
// layer because it is order-dependent.
func (c *Client) FetchApplianceUsage(ctx context.Context, accountID string, lastBilledDate time.Time) ([]ApplianceCategory, error) {
	path := fmt.Sprintf("/dashboard-api/resources/account/%s/applianceUsage/%s", accountID, accountID)
	payload := applianceUsageRequest{StartDate: lastBilledDate.Format(billDateFormat)}

	var resp applianceUsageResponse
	if err := c.postJSON(ctx, path, payload, &resp); err != nil {
		return nil, fmt.Errorf("fetching appliance usage for %s: %w", accountID, err)
	}
	return resp.Data.Electric, nil
}
