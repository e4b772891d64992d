package service

import (
	"context"
	"log"
	"time"

	"github.com/acff/debt-engine/internal/domain"
	"github.com/acff/debt-engine/internal/notify"
	"github.com/acff/debt-engine/internal/repository"
	"github.com/acff/debt-engine/internal/valuation"
	customError "github.com/acff/debt-engine/pkg/errors"
)

// Notifier runs the scheduled sweeps: upcoming-due reminders and overdue
// escalations. One loan failing never stops the rest of a sweep; the
// error is logged and the loop moves on.
type Notifier struct {
	loans     repository.LoanRepository
	debtors   repository.DebtorRepository
	engine    *LoanService
	messenger notify.Messenger
	leadDays  int
}

func NewNotifier(
	loans repository.LoanRepository,
	debtors repository.DebtorRepository,
	engine *LoanService,
	messenger notify.Messenger,
	leadDays int,
) *Notifier {
	return &Notifier{
		loans:     loans,
		debtors:   debtors,
		engine:    engine,
		messenger: messenger,
		leadDays:  leadDays,
	}
}

// SendDueSoonReminders messages every debtor whose active loan falls due
// leadDays from now. The reminder quotes the amount at maturity, the
// figure the debtor is expected to settle.
func (n *Notifier) SendDueSoonReminders(ctx context.Context, asOf time.Time) error {
	target := asOf.AddDate(0, 0, n.leadDays)

	loans, err := n.loans.ListDueOn(ctx, target, []string{domain.LoanStatusActive})
	if err != nil {
		return customError.WrapDatabaseError(err)
	}

	log.Printf("due-soon sweep: %d loan(s) due on %s", len(loans), target.Format("2006-01-02"))

	for _, loan := range loans {
		snapshot, err := n.engine.Reevaluate(ctx, loan, asOf)
		if err != nil {
			log.Printf("due-soon sweep: valuation of loan %s failed: %v", loan.ID, err)
			continue
		}
		if snapshot.Status == domain.LoanStatusSettled {
			continue
		}

		debtor, err := n.debtors.GetByID(ctx, loan.DebtorID)
		if err != nil {
			log.Printf("due-soon sweep: debtor lookup for loan %s failed: %v", loan.ID, err)
			continue
		}

		totalAtDue := valuation.AccruedValue(loan.Principal, loan.MonthlyRate, loan.LoanDate, loan.DueDate)
		interest := totalAtDue.Sub(loan.Principal)
		message := notify.ReminderMessage(debtor.Name, loan.Principal, interest, totalAtDue, n.leadDays)

		if err := n.messenger.Send(ctx, debtor.Phone, message); err != nil {
			log.Printf("due-soon sweep: message to %s for loan %s failed: %v", debtor.Phone, loan.ID, err)
			continue
		}

		log.Printf("due-soon sweep: reminder sent to %s for loan %s", debtor.Name, loan.ID)
	}

	return nil
}

// EscalateOverdue persists OVERDUE transitions for every loan past its
// due date and messages the debtor with the current owed amount.
func (n *Notifier) EscalateOverdue(ctx context.Context, asOf time.Time) error {
	loans, err := n.loans.ListDueBefore(ctx, asOf, []string{domain.LoanStatusActive, domain.LoanStatusOverdue})
	if err != nil {
		return customError.WrapDatabaseError(err)
	}

	log.Printf("overdue sweep: %d candidate loan(s)", len(loans))

	for _, loan := range loans {
		snapshot, err := n.engine.Reevaluate(ctx, loan, asOf)
		if err != nil {
			log.Printf("overdue sweep: valuation of loan %s failed: %v", loan.ID, err)
			continue
		}
		// Payments may have settled the loan since it was listed.
		if snapshot.Status != domain.LoanStatusOverdue {
			continue
		}

		debtor, err := n.debtors.GetByID(ctx, loan.DebtorID)
		if err != nil {
			log.Printf("overdue sweep: debtor lookup for loan %s failed: %v", loan.ID, err)
			continue
		}

		daysLate := int(asOf.Sub(loan.DueDate).Hours() / 24)
		message := notify.OverdueMessage(debtor.Name, loan.Principal, snapshot.Owed, daysLate)

		if err := n.messenger.Send(ctx, debtor.Phone, message); err != nil {
			log.Printf("overdue sweep: message to %s for loan %s failed: %v", debtor.Phone, loan.ID, err)
			continue
		}

		log.Printf("overdue sweep: escalation sent to %s for loan %s (%d days late)", debtor.Name, loan.ID, daysLate)
	}

	return nil
}
