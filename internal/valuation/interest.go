// Package valuation is the authoritative debt engine: interest accrual,
// the payment ledger view, the status state machine, per-loan snapshots
// and the portfolio aggregator. Everything here is pure computation over
// already-fetched data; persistence and delivery live with the callers.
package valuation

import (
	"time"

	"github.com/shopspring/decimal"
)

// A month is a fixed 30-day approximation, not calendar-aware.
const daysPerMonth = 30

var hundred = decimal.NewFromInt(100)

// ElapsedMonths returns the number of whole 30-day months between since
// and asOf, clamped at zero when asOf precedes since.
func ElapsedMonths(since, asOf time.Time) int64 {
	days := int64(asOf.Sub(since).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days / daysPerMonth
}

// AccruedValue computes principal plus simple interest accrued over the
// whole months elapsed between since and asOf:
//
//	value = principal + principal * (monthlyRatePercent/100) * elapsedMonths
func AccruedValue(principal, monthlyRatePercent decimal.Decimal, since, asOf time.Time) decimal.Decimal {
	months := decimal.NewFromInt(ElapsedMonths(since, asOf))
	interest := principal.Mul(monthlyRatePercent).Div(hundred).Mul(months)
	return principal.Add(interest).Round(2)
}

// FlatInterest is the non-time-weighted interest credit used for the
// realized-profit aggregate: one month of interest on the principal.
func FlatInterest(principal, monthlyRatePercent decimal.Decimal) decimal.Decimal {
	return principal.Mul(monthlyRatePercent).Div(hundred).Round(2)
}

// ExpectedReturn estimates what a running loan should bring in by its
// contracted due date: the unpaid principal plus interest on it over the
// full loan term. Unlike AccruedValue it looks at the due-date horizon,
// not at time elapsed so far.
func ExpectedReturn(principal, paid, monthlyRatePercent decimal.Decimal, loanDate, dueDate time.Time) decimal.Decimal {
	base := principal.Sub(paid)
	months := decimal.NewFromInt(ElapsedMonths(loanDate, dueDate))
	interest := base.Mul(monthlyRatePercent).Div(hundred).Mul(months)
	return base.Add(interest).Round(2)
}
