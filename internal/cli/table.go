package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/Veraticus/pennywise/internal/model"
	"github.com/Veraticus/pennywise/internal/report"
)

// RenderExpenses writes expenses as an aligned table.
func RenderExpenses(w io.Writer, expenses []model.Expense) error {
	if len(expenses) == 0 {
		_, err := fmt.Fprintln(w, SubtleStyle.Render("No expenses found."))
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDate\tDescription\tCategory\tAmount\tPayment Method\tRecurring")
	fmt.Fprintln(tw, strings.Join([]string{
		strings.Repeat("-", 4),
		strings.Repeat("-", 10),
		strings.Repeat("-", 20),
		strings.Repeat("-", 12),
		strings.Repeat("-", 10),
		strings.Repeat("-", 14),
		strings.Repeat("-", 9),
	}, "\t"))

	for _, e := range expenses {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%.2f\t%s\t%s\n",
			e.ID, e.Date, e.Description, e.Category, e.Amount, e.PaymentMethod, e.RecurringLabel())
	}
	return tw.Flush()
}

// RenderSummary writes the summary block of a report.
func RenderSummary(w io.Writer, rep report.Report) error {
	_, err := fmt.Fprintf(w, "%s\nTotal Expenses: %.2f\nNumber of Expenses: %d\nAverage Expense: %.2f\n",
		TitleStyle.UnsetMargins().Render("Summary ("+rep.Timeframe.Label()+")"),
		rep.Summary.Total, rep.Summary.Count, rep.Summary.Average)
	return err
}
