package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/Veraticus/pennywise/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrompter_Confirm(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "yes", input: "y\n", want: true},
		{name: "full yes", input: "YES\n", want: true},
		{name: "no", input: "n\n", want: false},
		{name: "empty defaults to no", input: "\n", want: false},
		{name: "end of input", input: "", want: false},
		{name: "anything else", input: "maybe\n", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			p := NewCLIPrompter(strings.NewReader(tt.input), &out)

			got, err := p.Confirm(context.Background(), "Delete it?")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Contains(t, out.String(), "Delete it? [y/N]")
		})
	}
}

func TestPrompter_ConfirmCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := NewCLIPrompter(strings.NewReader("y\n"), &bytes.Buffer{})
	_, err := p.Confirm(ctx, "Proceed?")
	assert.ErrorIs(t, err, ErrInputCancelled)
}

func TestPrompter_ShowExpense(t *testing.T) {
	var out bytes.Buffer
	p := NewCLIPrompter(strings.NewReader(""), &out)

	p.ShowExpense("New expense", model.NewExpense{
		Date:          "2024-03-15",
		Description:   "Coffee",
		Category:      "Food",
		Amount:        3.5,
		PaymentMethod: "Cash",
	})

	for _, want := range []string{"New expense", "2024-03-15", "Coffee", "Food", "3.50", "Cash", "Recurring: No"} {
		assert.Contains(t, out.String(), want)
	}

	out.Reset()
	p.ShowExpense("Rent", model.NewExpense{Description: "Rent", Amount: 1200, Recurring: true})
	assert.Contains(t, out.String(), "Recurring: Yes")
}

func TestPrompter_ImportProgress(t *testing.T) {
	var out bytes.Buffer
	p := NewCLIPrompter(strings.NewReader(""), &out)

	p.Advance() // no bar yet
	p.StartProgress(2, "Importing")
	p.Advance()
	p.Advance()
	p.ShowImportSummary(ImportStats{Total: 3, Added: 2, Skipped: 1, Duration: time.Second})

	output := out.String()
	assert.Contains(t, output, "Import Complete")
	assert.Contains(t, output, "Added: 2")
	assert.Contains(t, output, "Skipped: 1")
	assert.Contains(t, output, "Time taken: 1s")
}
