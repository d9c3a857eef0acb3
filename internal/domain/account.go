package domain

import (
	"fmt"
	"strings"
	"time"
)

// EnrolledStatus is the exact enrollment marker used by the upstream
// programs list. Only a case-sensitive match counts.
const EnrolledStatus = "ENROLLED"

// BudgetBillingProgram is the program code for budget billing.
const BudgetBillingProgram = "BBL"

// AccountSummary holds the account-level state fetched once per aggregation.
// It is immutable after the fetch; everything downstream derives from it.
type AccountSummary struct {
	AccountID       string
	PremiseNumber   string // 9 digits, left-zero-padded
	MeterSerialNo   string
	CurrentBillDate time.Time
	NextBillDate    time.Time
	Programs        map[string]bool // program code -> enrolled
}

// Enrolled reports whether the account is enrolled in the given program.
func (a AccountSummary) Enrolled(program string) bool {
	return a.Programs[program]
}

// UsagePeriod describes the current billing period's boundaries and day
// counts. All counts use calendar-day granularity; ServiceDays can be
// negative if the upstream billing dates are malformed, and consumers must
// tolerate that.
type UsagePeriod struct {
	CurrentBillDate time.Time
	NextBillDate    time.Time
	ServiceDays     int
	AsOfDays        int
	RemainingDays   int
}

// NewUsagePeriod derives the usage period from the two billing dates and
// the reference day (normally today).
func NewUsagePeriod(currentBillDate, nextBillDate, today time.Time) UsagePeriod {
	current := truncateToDay(currentBillDate)
	next := truncateToDay(nextBillDate)
	day := truncateToDay(today)

	return UsagePeriod{
		CurrentBillDate: current,
		NextBillDate:    next,
		ServiceDays:     daysBetween(current, next),
		AsOfDays:        daysBetween(current, day),
		RemainingDays:   daysBetween(day, next),
	}
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}

// ParseBillDate parses an upstream billing date such as
// "2022-02-25T00:00:00.000-05:00". The time-of-day component and offset are
// discarded; only the calendar date matters.
func ParseBillDate(s string) (time.Time, error) {
	datePart, _, _ := strings.Cut(s, "T")
	datePart = strings.ReplaceAll(datePart, "-", "")
	t, err := time.Parse("20060102", datePart)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing bill date %q: %w", s, err)
	}
	return t, nil
}

// PadPremise left-pads a premise number to the canonical 9 digits.
func PadPremise(premise string) string {
	if len(premise) >= 9 {
		return premise
	}
	return strings.Repeat("0", 9-len(premise)) + premise
}
