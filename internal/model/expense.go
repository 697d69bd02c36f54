// Package model defines the core domain models used throughout the application.
package model

import "time"

// DateLayout is the on-disk format of Expense.Date. It is zero-padded so that
// lexicographic order matches calendar order.
const DateLayout = "2006-01-02"

// DefaultPaymentMethod is used when an expense is added without one.
const DefaultPaymentMethod = "Cash"

// PaymentMethods are the choices offered by the UI. The store accepts any text.
var PaymentMethods = []string{
	"Cash",
	"Credit Card",
	"Debit Card",
	"Bank Transfer",
}

// Expense is one recorded spending event.
type Expense struct {
	Date          string
	Description   string
	Category      string
	PaymentMethod string
	ID            int64
	Amount        float64 // negative amounts are refunds
	Recurring     bool    // advisory only
}

// NewExpense carries the fields needed to record an expense.
// An empty Date means today and an empty PaymentMethod means DefaultPaymentMethod.
type NewExpense struct {
	Date          string
	Description   string
	Category      string
	PaymentMethod string
	Amount        float64
	Recurring     bool
}

// RecurringLabel renders the recurring flag the way reports and exports show it.
func (e Expense) RecurringLabel() string {
	if e.Recurring {
		return "Yes"
	}
	return "No"
}

// Day parses the stored date.
func (e Expense) Day() (time.Time, error) {
	return time.ParseInLocation(DateLayout, e.Date, time.Local)
}

// FormatDay formats t as a stored expense date.
func FormatDay(t time.Time) string {
	return t.Format(DateLayout)
}
