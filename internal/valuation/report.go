package valuation

import (
	"time"

	"github.com/google/uuid"

	"github.com/acff/debt-engine/internal/domain"
)

const (
	dueSoonWindowDays     = 7
	approachingWindowDays = 3
)

// BuildReport folds a user's loans and their payments into the
// portfolio dashboard figures at the asOf instant. Each loan is
// re-valuated here, so the report always reflects derived statuses even
// when the stored ones lag by a sweep cycle.
func BuildReport(user *domain.User, loans []*domain.Loan, paymentsByLoan map[uuid.UUID][]*domain.Payment, asOf time.Time) *domain.PortfolioReport {
	report := &domain.PortfolioReport{
		UserID:          user.ID,
		UserName:        user.Name,
		GeneratedAt:     asOf,
		DeclaredCapital: user.DeclaredCapital,
		DueToday:        []*domain.LoanResponse{},
		DueThisWeek:     []*domain.LoanResponse{},
		Approaching:     []*domain.LoanResponse{},
	}

	for _, loan := range loans {
		snapshot := Valuate(loan, paymentsByLoan[loan.ID], asOf)
		entry := &domain.LoanResponse{Loan: loan, Snapshot: snapshot}

		report.TotalReceived = report.TotalReceived.Add(snapshot.Paid)

		if snapshot.Status == domain.LoanStatusSettled {
			report.TotalProfit = report.TotalProfit.Add(FlatInterest(loan.Principal, loan.MonthlyRate))
			continue
		}

		report.CapitalInvested = report.CapitalInvested.Add(loan.Principal)
		report.TotalPending = report.TotalPending.Add(snapshot.DisplayRemaining)
		report.ExpectedReturn = report.ExpectedReturn.Add(
			ExpectedReturn(loan.Principal, snapshot.Paid, loan.MonthlyRate, loan.LoanDate, loan.DueDate))

		switch snapshot.Status {
		case domain.LoanStatusActive:
			report.ActiveLoans++
		case domain.LoanStatusOverdue:
			report.OverdueLoans++
		}

		days := daysUntil(asOf, loan.DueDate)
		if days == 0 {
			report.DueToday = append(report.DueToday, entry)
		}
		if days >= 0 && days <= dueSoonWindowDays {
			report.DueThisWeek = append(report.DueThisWeek, entry)
		}
		// Overdue loans are already flagged; the approaching bucket only
		// warns about loans that can still be paid on time.
		if days >= 0 && days <= approachingWindowDays && snapshot.Status != domain.LoanStatusOverdue {
			report.Approaching = append(report.Approaching, entry)
		}
	}

	// Not clamped: investing past the declared capital shows up negative.
	report.CapitalAvailable = report.DeclaredCapital.Sub(report.CapitalInvested)

	return report
}

// daysUntil counts calendar days from one date to another, ignoring the
// time of day.
func daysUntil(from, to time.Time) int {
	f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())
	t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, from.Location())
	return int(t.Sub(f).Hours() / 24)
}
