package aggregate

import "testing"

func TestComputeBudgetBilling(t *testing.T) {
	// (150 + 1200)/12 + 24/12 = 112.5 + 2.0 = 114.50
	snap := computeBudgetBilling(150.00, []float64{400, 400, 400}, 24.00, 10)

	if snap.ProjectedBill != 114.50 {
		t.Errorf("ProjectedBill = %v, want 114.50", snap.ProjectedBill)
	}
	if snap.DailyAvg != 3.82 {
		t.Errorf("DailyAvg = %v, want 3.82", snap.DailyAvg)
	}
	// The rounded daily average is what gets scaled: 3.82 * 10, not
	// 114.50/30*10 = 38.17.
	if snap.BillToDate != 38.20 {
		t.Errorf("BillToDate = %v, want 38.20", snap.BillToDate)
	}
}

func TestComputeBudgetBillingNoHistory(t *testing.T) {
	snap := computeBudgetBilling(120.00, nil, 0, 15)

	if snap.ProjectedBill != 10.00 {
		t.Errorf("ProjectedBill = %v, want 10.00", snap.ProjectedBill)
	}
	if snap.DailyAvg != 0.33 {
		t.Errorf("DailyAvg = %v, want 0.33", snap.DailyAvg)
	}
	if snap.BillToDate != 4.95 {
		t.Errorf("BillToDate = %v, want 4.95", snap.BillToDate)
	}
}

func TestComputeBudgetBillingNegativeDeferred(t *testing.T) {
	// Overpaid budget accounts carry a negative deferred balance.
	snap := computeBudgetBilling(150.00, []float64{1200}, -24.00, 10)

	if snap.ProjectedBill != 110.50 {
		t.Errorf("ProjectedBill = %v, want 110.50", snap.ProjectedBill)
	}
}
