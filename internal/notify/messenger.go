// Package notify delivers templated debtor messages through an external
// messaging gateway. The engine only depends on the Messenger interface,
// so sweeps stay testable without network calls.
package notify

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

// Messenger sends a text message to a phone number.
type Messenger interface {
	Send(ctx context.Context, number, text string) error
}

// ReminderMessage is the friendly notice sent two days before a loan
// falls due.
func ReminderMessage(debtorName string, principal, interest, total decimal.Decimal, daysAhead int) string {
	return fmt.Sprintf(
		"Good morning %s, your loan of %s plus accrued interest of %s (total %s) is due in %d days. #SystemACFF",
		debtorName,
		principal.StringFixed(2),
		interest.StringFixed(2),
		total.StringFixed(2),
		daysAhead,
	)
}

// OverdueMessage is the escalation notice sent once a loan is past due.
func OverdueMessage(debtorName string, principal, owed decimal.Decimal, daysLate int) string {
	return fmt.Sprintf(
		"URGENT %s: your loan of %s is %d day(s) overdue. The amount owed is now %s and keeps growing. Please get in touch immediately. #SystemACFF",
		debtorName,
		principal.StringFixed(2),
		daysLate,
		owed.StringFixed(2),
	)
}
