package aggregate

import (
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/fplstat/fplstat/internal/domain"
)

// BudgetBillingSnapshot holds the smoothed monthly-bill estimate derived
// from the historical charges and the deferred balance.
type BudgetBillingSnapshot struct {
	DailyAvg      float64
	BillToDate    float64
	ProjectedBill float64
}

var (
	twelve = decimal.NewFromInt(12)
	thirty = decimal.NewFromInt(30)
)

// computeBudgetBilling smooths the projected bill plus one year of actual
// charges into a monthly estimate, amortizing the deferred balance over the
// same twelve months. The daily average is rounded to cents before the
// as-of-days multiply; bill_to_date intentionally scales the displayed
// (rounded) daily figure, so e.g. a 114.50 projection over 10 of 30 days
// yields 38.20, not 38.17.
func computeBudgetBilling(projectedBill float64, actualBillAmounts []float64, deferredBalance float64, asOfDays int) BudgetBillingSnapshot {
	billingCharge := lo.Reduce(actualBillAmounts, func(acc decimal.Decimal, amt float64, _ int) decimal.Decimal {
		return acc.Add(domain.CurrencyFromFloat(amt))
	}, decimal.Zero)

	calc1 := domain.CurrencyFromFloat(projectedBill).Add(billingCharge).Div(twelve)
	calc2 := domain.CurrencyFromFloat(deferredBalance).Div(twelve)

	projected := calc1.Add(calc2).Round(2)
	dailyAvg := projected.Div(thirty).Round(2)
	billToDate := dailyAvg.Mul(decimal.NewFromInt(int64(asOfDays))).Round(2)

	return BudgetBillingSnapshot{
		DailyAvg:      domain.RoundCurrency(dailyAvg),
		BillToDate:    domain.RoundCurrency(billToDate),
		ProjectedBill: domain.RoundCurrency(projected),
	}
}
