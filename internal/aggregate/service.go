// Package aggregate assembles one normalized AccountRecord per account from
// the semi-independent FPL dashboard resources. Only the account summary
// fetch is fatal; every other stage contributes its field group when it
// succeeds and is recorded as failed or skipped in the Manifest otherwise.
package aggregate

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/samber/lo"

	"github.com/fplstat/fplstat/internal/domain"
	"github.com/fplstat/fplstat/internal/fpl"
)

// Fetcher is the upstream resource surface the pipeline consumes,
// implemented by *fpl.Client.
type Fetcher interface {
	FetchAccountSummary(ctx context.Context, accountID string) (domain.AccountSummary, error)
	FetchProjectedBill(ctx context.Context, accountID, premise string, currentBillDate time.Time) (fpl.ProjectedBillSnapshot, error)
	FetchBudgetBillingDetail(ctx context.Context, accountID string) (fpl.BudgetBillingDetail, error)
	FetchBudgetBillingGraph(ctx context.Context, accountID string) (fpl.BudgetBillingGraph, error)
	FetchEnergyUsage(ctx context.Context, accountID, premise string, lastBilledDate time.Time) (fpl.EnergyUsage, error)
	FetchApplianceUsage(ctx context.Context, accountID string, lastBilledDate time.Time) ([]fpl.ApplianceCategory, error)
	FetchBalance(ctx context.Context, accountID string) ([]domain.BalanceLine, error)
}

// StageStatus classifies one stage's outcome.
type StageStatus string

const (
	StageOK      StageStatus = "ok"
	StageFailed  StageStatus = "failed"
	StageSkipped StageStatus = "skipped"
)

// StageOutcome is one stage's tagged result.
type StageOutcome struct {
	Status StageStatus `json:"status"`
	Reason string      `json:"reason,omitempty"`
}

// Manifest records which sub-fetches contributed to the merged record,
// keyed by stage name.
type Manifest map[string]StageOutcome

// Stage names as they appear in the Manifest.
const (
	StageProjectedBill      = "projected_bill"
	StageBudgetBillingCalc  = "budget_billing_detail"
	StageBudgetBillingGraph = "budget_billing_graph"
	StageEnergyUsage        = "energy_usage"
	StageApplianceUsage     = "appliance_usage"
	StageBalance            = "balance"
)

// Service runs the account aggregation pipeline.
type Service struct {
	fetcher Fetcher
	now     func() time.Time
}

// NewService creates a new aggregation Service.
func NewService(fetcher Fetcher) *Service {
	if fetcher == nil {
		panic("aggregate.NewService: fetcher is nil")
	}
	return &Service{fetcher: fetcher, now: time.Now}
}

// build carries the state threaded through the pipeline stages.
type build struct {
	accountID string
	summary   domain.AccountSummary
	period    domain.UsagePeriod
	record    *domain.AccountRecord
}

// stage is one pipeline step. needs names a stage that must have succeeded
// first; skip, when set, can veto the stage before it runs. The declared
// order is the merge order.
type stage struct {
	name  string
	needs string
	skip  func(b *build) (bool, string)
	run   func(ctx context.Context, b *build) error
}

func (s *Service) stages() []stage {
	skipUnlessBudgetBilled := func(b *build) (bool, string) {
		if !b.summary.Enrolled(domain.BudgetBillingProgram) {
			return true, "not enrolled in budget billing"
		}
		return false, ""
	}

	return []stage{
		{name: StageProjectedBill, run: s.runProjectedBill},
		{name: StageBudgetBillingCalc, needs: StageProjectedBill, skip: skipUnlessBudgetBilled, run: s.runBudgetBillingCalc},
		// Runs after the calc stage; its bill_to_date and deferred amount
		// overwrite the calculated ones. Last writer wins.
		{name: StageBudgetBillingGraph, skip: skipUnlessBudgetBilled, run: s.runBudgetBillingGraph},
		{name: StageEnergyUsage, run: s.runEnergyUsage},
		{name: StageApplianceUsage, run: s.runApplianceUsage},
		{name: StageBalance, run: s.runBalance},
	}
}

// Aggregate fetches and merges all field groups for one account. The account
// summary failure is the only fatal one; any other stage failure is absorbed
// and reported through the Manifest. On context cancellation the partially
// merged record built so far is returned alongside the context error.
func (s *Service) Aggregate(ctx context.Context, accountID string) (domain.AccountRecord, Manifest, error) {
	summary, err := s.fetcher.FetchAccountSummary(ctx, accountID)
	if err != nil {
		return domain.AccountRecord{}, nil, fmt.Errorf("aggregating account %s: %w", accountID, err)
	}

	period := domain.NewUsagePeriod(summary.CurrentBillDate, summary.NextBillDate, s.now())

	record := domain.AccountRecord{
		AccountID:       summary.AccountID,
		MeterSerialNo:   summary.MeterSerialNo,
		CurrentBillDate: period.CurrentBillDate.Format("2006-01-02"),
		NextBillDate:    period.NextBillDate.Format("2006-01-02"),
		ServiceDays:     period.ServiceDays,
		AsOfDays:        period.AsOfDays,
		RemainingDays:   period.RemainingDays,
		BudgetBill:      summary.Enrolled(domain.BudgetBillingProgram),
	}

	b := &build{
		accountID: accountID,
		summary:   summary,
		period:    period,
		record:    &record,
	}

	manifest := make(Manifest)
	for _, st := range s.stages() {
		if err := ctx.Err(); err != nil {
			return record, manifest, err
		}

		if st.skip != nil {
			if skip, reason := st.skip(b); skip {
				manifest[st.name] = StageOutcome{Status: StageSkipped, Reason: reason}
				continue
			}
		}
		if st.needs != "" && manifest[st.needs].Status != StageOK {
			manifest[st.name] = StageOutcome{Status: StageSkipped, Reason: st.needs + " unavailable"}
			continue
		}

		if err := st.run(ctx, b); err != nil {
			slog.Warn("aggregation stage failed", "account", accountID, "stage", st.name, "error", err)
			manifest[st.name] = StageOutcome{Status: StageFailed, Reason: err.Error()}
			continue
		}
		manifest[st.name] = StageOutcome{Status: StageOK}
	}

	return record, manifest, nil
}

func (s *Service) runProjectedBill(ctx context.Context, b *build) error {
	snap, err := s.fetcher.FetchProjectedBill(ctx, b.accountID, b.summary.PremiseNumber, b.period.CurrentBillDate)
	if err != nil {
		return err
	}
	b.record.BillToDate = &snap.BillToDate
	b.record.ProjectedBill = &snap.ProjectedBill
	b.record.DailyAvg = &snap.DailyAvg
	b.record.AvgHighTemp = &snap.AvgHighTemp
	return nil
}

func (s *Service) runBudgetBillingCalc(ctx context.Context, b *build) error {
	detail, err := s.fetcher.FetchBudgetBillingDetail(ctx, b.accountID)
	if err != nil {
		return err
	}

	snap := computeBudgetBilling(*b.record.ProjectedBill, detail.ActualBillAmounts, detail.DeferredBalance, b.period.AsOfDays)
	b.record.BudgetBillingDailyAvg = &snap.DailyAvg
	b.record.BudgetBillingBillToDate = &snap.BillToDate
	b.record.BudgetBillingProjectedBill = &snap.ProjectedBill
	return nil
}

func (s *Service) runBudgetBillingGraph(ctx context.Context, b *build) error {
	graph, err := s.fetcher.FetchBudgetBillingGraph(ctx, b.accountID)
	if err != nil {
		return err
	}
	// Overwrites the projected-bill stage's bill_to_date.
	b.record.BillToDate = &graph.BillToDate
	b.record.DeferedAmount = &graph.DeferredAmount
	return nil
}

func (s *Service) runEnergyUsage(ctx context.Context, b *build) error {
	usage, err := s.fetcher.FetchEnergyUsage(ctx, b.accountID, b.summary.PremiseNumber, b.period.CurrentBillDate)
	if err != nil {
		return err
	}
	if !usage.DataPresent {
		return nil
	}

	b.record.DailyUsage = usage.DailyUsage
	if cu := usage.CurrentUsage; cu != nil {
		b.record.ProjectedKWH = &cu.ProjectedKWH
		b.record.DailyAverageKWH = &cu.DailyAverageKWH
		b.record.BillToDateKWH = &cu.BillToDateKWH
		b.record.RecMtrReading = &cu.RecMtrReading
		b.record.DelMtrReading = &cu.DelMtrReading
		b.record.BillStartDate = &cu.BillStartDate
	}
	return nil
}

func (s *Service) runApplianceUsage(ctx context.Context, b *build) error {
	categories, err := s.fetcher.FetchApplianceUsage(ctx, b.accountID, b.period.CurrentBillDate)
	if err != nil {
		return err
	}
	b.record.ApplianceUsage = allocateAppliancePercentages(categories)
	return nil
}

func (s *Service) runBalance(ctx context.Context, b *build) error {
	ledger, err := s.fetcher.FetchBalance(ctx, b.accountID)
	if err != nil {
		return err
	}
	b.record.BalanceData = ledger

	if debt, found := lo.Find(ledger, func(l domain.BalanceLine) bool {
		return l.Details == domain.DebtCategory
	}); found {
		b.record.DebtAmount = &debt.Amount
	}
	return nil
}
