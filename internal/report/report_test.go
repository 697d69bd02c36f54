package report

import (
	"testing"

	"github.com/Veraticus/pennywise/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func expenses(pairs ...any) []model.Expense {
	out := make([]model.Expense, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, model.Expense{
			Category: pairs[i].(string),
			Amount:   pairs[i+1].(float64),
		})
	}
	return out
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name     string
		expenses []model.Expense
		want     Summary
	}{
		{
			name:     "empty list",
			expenses: nil,
			want:     Summary{Total: 0, Count: 0, Average: 0},
		},
		{
			name:     "two expenses",
			expenses: expenses("Food", 10.0, "Rent", 20.0),
			want:     Summary{Total: 30, Count: 2, Average: 15},
		},
		{
			name:     "refund offsets spending",
			expenses: expenses("Food", 50.0, "Food", -20.0, "Other", 0.5),
			want:     Summary{Total: 30.5, Count: 3, Average: 30.5 / 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Summarize(tt.expenses)
			assert.Equal(t, tt.want.Count, got.Count)
			assert.InDelta(t, tt.want.Total, got.Total, 1e-9)
			assert.InDelta(t, tt.want.Average, got.Average, 1e-9)
		})
	}
}

func TestByCategory(t *testing.T) {
	got := ByCategory(expenses("Food", 5.0, "Food", 7.0, "Rent", 100.0))

	require.Len(t, got, 2)
	assert.InDelta(t, 12.0, got["Food"], 1e-9)
	assert.InDelta(t, 100.0, got["Rent"], 1e-9)

	_, present := got["Transport"]
	assert.False(t, present, "categories without expenses are absent")

	assert.Empty(t, ByCategory(nil))
}

func TestShares(t *testing.T) {
	shares := Shares(map[string]float64{
		"Food":      25,
		"Rent":      75,
		"Transport": 25,
	})

	require.Len(t, shares, 3)
	assert.Equal(t, "Rent", shares[0].Category)
	assert.InDelta(t, 60.0, shares[0].Percent, 1e-9)
	// ties are broken by name
	assert.Equal(t, "Food", shares[1].Category)
	assert.Equal(t, "Transport", shares[2].Category)
	assert.InDelta(t, 20.0, shares[2].Percent, 1e-9)

	var sum float64
	for _, s := range shares {
		sum += s.Percent
	}
	assert.InDelta(t, 100.0, sum, 1e-9)
}

func TestShares_NegativeAndZero(t *testing.T) {
	shares := Shares(map[string]float64{"Food": 30, "Other": -10})
	require.Len(t, shares, 2)
	assert.Equal(t, "Food", shares[0].Category)
	assert.InDelta(t, 75.0, shares[0].Percent, 1e-9)
	assert.InDelta(t, 25.0, shares[1].Percent, 1e-9)

	zero := Shares(map[string]float64{"Food": 0})
	require.Len(t, zero, 1)
	assert.Zero(t, zero[0].Percent)

	assert.Empty(t, Shares(nil))
}

func TestBuild(t *testing.T) {
	rep := Build(model.TimeframeMonth, expenses("Food", 5.0, "Food", 7.0, "Rent", 100.0))

	assert.Equal(t, model.TimeframeMonth, rep.Timeframe)
	assert.False(t, rep.Empty())
	assert.Equal(t, 3, rep.Summary.Count)
	assert.InDelta(t, 112.0, rep.Summary.Total, 1e-9)
	assert.Len(t, rep.Shares, 2)
	assert.Equal(t, "Rent", rep.Shares[0].Category)

	assert.True(t, Build(model.TimeframeToday, nil).Empty())
}
