package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Veraticus/pennywise/internal/model"
	"github.com/Veraticus/pennywise/internal/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderExpenses(t *testing.T) {
	var out bytes.Buffer
	err := RenderExpenses(&out, []model.Expense{
		{ID: 7, Date: "2024-03-15", Description: "Coffee", Category: "Food", Amount: 3.5, PaymentMethod: "Cash"},
		{ID: 6, Date: "2024-03-01", Description: "Rent", Category: "Rent", Amount: 900, PaymentMethod: "Bank Transfer", Recurring: true},
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "ID"))
	assert.Contains(t, lines[2], "Coffee")
	assert.Contains(t, lines[2], "3.50")
	assert.Contains(t, lines[3], "900.00")
	assert.True(t, strings.HasSuffix(lines[3], "Yes"))
}

func TestRenderExpenses_Empty(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, RenderExpenses(&out, nil))
	assert.Contains(t, out.String(), "No expenses found.")
}

func TestRenderSummary(t *testing.T) {
	expenses := []model.Expense{{Amount: 10}, {Amount: 20}}
	var out bytes.Buffer
	require.NoError(t, RenderSummary(&out, report.Build(model.TimeframeWeek, expenses)))

	assert.Contains(t, out.String(), "Summary (This Week)")
	assert.Contains(t, out.String(), "Total Expenses: 30.00")
	assert.Contains(t, out.String(), "Number of Expenses: 2")
	assert.Contains(t, out.String(), "Average Expense: 15.00")
}
