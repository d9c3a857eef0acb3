package fpl

import (
	"context"
	"fmt"

	"github.com/fplstat/fplstat/internal/domain"
)

// FetchAccountSummary retrieves the account resource and normalizes it.
// Unlike the other fetchers, a failure here aborts the whole aggregation
// for the account, so errors propagate.
func (c *Client) FetchAccountSummary(ctx context.Context, accountID string) (domain.AccountSummary, error) {
	var resp accountResponse
	if err := c.getJSON(ctx, fmt.Sprintf("/api/resources/account/%s", accountID), &resp); err != nil {
		return domain.AccountSummary{}, fmt.Errorf("fetching account %s: %w", accountID, err)
	}

	current, err := domain.ParseBillDate(resp.Data.CurrentBillDate)
	if err != nil {
		return domain.AccountSummary{}, fmt.Errorf("account %s: %w", accountID, err)
	}
	next, err := domain.ParseBillDate(resp.Data.NextBillDate)
	if err != nil {
		return domain.AccountSummary{}, fmt.Errorf("account %s: %w", accountID, err)
	}

	// Programs without an enrollmentStatus are skipped; enrollment requires
	// the exact ENROLLED marker, nothing looser.
	programs := make(map[string]bool)
	for _, p := range resp.Data.Programs.Data {
		if p.EnrollmentStatus == nil {
			continue
		}
		programs[p.Name] = *p.EnrollmentStatus == domain.EnrolledStatus
	}

	return domain.AccountSummary{
		AccountID:       accountID,
		PremiseNumber:   domain.PadPremise(resp.Data.PremiseNumber),
		MeterSerialNo:   resp.Data.MeterSerialNo,
		CurrentBillDate: current,
		NextBillDate:    next,
		Programs:        programs,
	}, nil
}
