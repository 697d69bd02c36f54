// Package report derives summary statistics from an already-fetched expense list.
// Nothing here performs I/O.
package report

import (
	"math"
	"sort"

	"github.com/Veraticus/pennywise/internal/model"
)

// Summary holds the aggregate figures shown at the top of a report.
type Summary struct {
	Total   float64
	Average float64
	Count   int
}

// CategoryShare is one category's slice of a report.
type CategoryShare struct {
	Category string
	Amount   float64
	Percent  float64 // share of the sum of absolute amounts, 0-100
}

// Report bundles everything the report view and exporters render for one window.
type Report struct {
	Timeframe  model.Timeframe
	ByCategory map[string]float64
	Shares     []CategoryShare
	Summary    Summary
}

// Summarize computes total, count and average. The average of no expenses is 0.
func Summarize(expenses []model.Expense) Summary {
	var total float64
	for _, e := range expenses {
		total += e.Amount
	}

	summary := Summary{
		Total: total,
		Count: len(expenses),
	}
	if summary.Count > 0 {
		summary.Average = total / float64(summary.Count)
	}
	return summary
}

// ByCategory sums amounts per category. Categories with no expenses in the
// input are absent from the result.
func ByCategory(expenses []model.Expense) map[string]float64 {
	totals := make(map[string]float64)
	for _, e := range expenses {
		totals[e.Category] += e.Amount
	}
	return totals
}

// Shares orders category totals by amount, largest first, and attaches each
// category's percentage. Refunds can make a total negative, so percentages are
// taken over absolute amounts.
func Shares(totals map[string]float64) []CategoryShare {
	var denominator float64
	for _, amount := range totals {
		denominator += math.Abs(amount)
	}

	shares := make([]CategoryShare, 0, len(totals))
	for category, amount := range totals {
		share := CategoryShare{Category: category, Amount: amount}
		if denominator > 0 {
			share.Percent = math.Abs(amount) / denominator * 100
		}
		shares = append(shares, share)
	}

	sort.Slice(shares, func(i, j int) bool {
		if shares[i].Amount != shares[j].Amount {
			return shares[i].Amount > shares[j].Amount
		}
		return shares[i].Category < shares[j].Category
	})
	return shares
}

// Build assembles a Report for expenses fetched with timeframe.
func Build(timeframe model.Timeframe, expenses []model.Expense) Report {
	totals := ByCategory(expenses)
	return Report{
		Timeframe:  timeframe,
		Summary:    Summarize(expenses),
		ByCategory: totals,
		Shares:     Shares(totals),
	}
}

// Empty reports whether there is anything to show.
func (r Report) Empty() bool {
	return r.Summary.Count == 0
}
