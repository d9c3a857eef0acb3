package fpl

import (
	"context"
	"fmt"

	"github.com/samber/lo"
)

// BudgetBillingDetail holds the historical charge data and deferred balance
// from the premise-details resource.
type BudgetBillingDetail struct {
	ActualBillAmounts []float64
	DeferredBalance   float64
}

// BudgetBillingGraph holds the current period's actual-to-date and deferred
// amounts from the graph resource.
type BudgetBillingGraph struct {
	BillToDate     float64
	DeferredAmount float64
}

// FetchBudgetBillingDetail retrieves the budget-billing premise details.
func (c *Client) FetchBudgetBillingDetail(ctx context.Context, accountID string) (BudgetBillingDetail, error) {
	path := fmt.Sprintf("/api/resources/account/%s/budgetBillingGraph/premiseDetails", accountID)

	var resp budgetDetailResponse
	if err := c.getJSON(ctx, path, &resp); err != nil {
		return BudgetBillingDetail{}, fmt.Errorf("fetching budget billing detail for %s: %w", accountID, err)
	}

	return BudgetBillingDetail{
		ActualBillAmounts: lo.Map(resp.Data.GraphData, func(g budgetGraphEntry, _ int) float64 {
			return g.ActuallBillAmt
		}),
		DeferredBalance: resp.Data.DefAmt,
	}, nil
}

// FetchBudgetBillingGraph retrieves the budget-billing graph amounts.
func (c *Client) FetchBudgetBillingGraph(ctx context.Context, accountID string) (BudgetBillingGraph, error) {
	path := fmt.Sprintf("/api/resources/account/%s/budgetBillingGraph", accountID)

	var resp budgetGraphResponse
	if err := c.getJSON(ctx, path, &resp); err != nil {
		return BudgetBillingGraph{}, fmt.Errorf("fetching budget billing graph for %s: %w", accountID, err)
	}

	return BudgetBillingGraph{
		BillToDate:     resp.Data.EleAmt,
		DeferredAmount: resp.Data.DefAmt,
	}, nil
}
