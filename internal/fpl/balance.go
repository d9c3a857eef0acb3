package fpl

import (
	"context"
	"fmt"

	"github.com/samber/lo"

	"github.com/fplstat/fplstat/internal/domain"
)

// FetchBalance retrieves the account's full balance ledger. count=-1 asks
// for every line without pagination.
func (c *Client) FetchBalance(ctx context.Context, accountID string) ([]domain.BalanceLine, error) {
	path := fmt.Sprintf("/api/resources/account/%s/balance?count=-1", accountID)

	var resp balanceResponse
	if err := c.getJSON(ctx, path, &resp); err != nil {
		return nil, fmt.Errorf("fetching balance for %s: %w", accountID, err)
	}

	return lo.Map(resp.Data, func(e balanceEntry, _ int) domain.BalanceLine {
		return domain.BalanceLine{Details: e.Details, Amount: e.Amount}
	}), nil
}
