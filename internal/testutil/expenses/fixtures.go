package expenses

import "github.com/Veraticus/pennywise/internal/model"

// Fixture is a named, reusable set of expenses. Dates are relative to
// 2024-03-15, the clock testutil stores run against.
type Fixture string

// Available fixtures.
const (
	// FixtureMixedMonth spreads expenses across every timeframe boundary.
	FixtureMixedMonth Fixture = "mixed-month"
	// FixtureSingleCategory puts several expenses in Food only.
	FixtureSingleCategory Fixture = "single-category"
)

// Expenses returns the fixture's expenses.
func (f Fixture) Expenses() []model.NewExpense {
	switch f {
	case FixtureMixedMonth:
		return []model.NewExpense{
			{Date: "2024-03-15", Description: "Lunch", Category: "Food", Amount: 12.5, PaymentMethod: "Debit Card"},
			{Date: "2024-03-10", Description: "Bus pass", Category: "Transport", Amount: 30},
			{Date: "2024-03-08", Description: "Power bill", Category: "Utilities", Amount: 80, PaymentMethod: "Bank Transfer", Recurring: true},
			{Date: "2024-02-20", Description: "Cinema", Category: "Entertainment", Amount: 15, PaymentMethod: "Credit Card"},
			{Date: "2024-01-01", Description: "Rent", Category: "Rent", Amount: 1200, PaymentMethod: "Bank Transfer", Recurring: true},
		}
	case FixtureSingleCategory:
		return []model.NewExpense{
			{Date: "2024-03-15", Description: "Groceries", Category: "Food", Amount: 5},
			{Date: "2024-03-14", Description: "Bakery", Category: "Food", Amount: 7},
		}
	default:
		return nil
	}
}
