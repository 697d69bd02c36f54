// Package export writes the expense list to spreadsheet or delimited files.
package export

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Veraticus/pennywise/internal/model"
)

// ErrNothingToExport is returned when there are no expenses to write.
var ErrNothingToExport = errors.New("no expenses to export")

// Format identifies an output file format.
type Format string

// Supported formats.
const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

// Header is the column order of every export.
var Header = []string{"Date", "Description", "Category", "Amount", "Payment Method", "Recurring"}

// FormatForPath selects the format from the file extension. Anything that is
// not .xlsx is written as CSV.
func FormatForPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return FormatXLSX
	}
	return FormatCSV
}

// ToFile writes expenses to path in the format implied by its extension.
func ToFile(path string, expenses []model.Expense) error {
	if len(expenses) == 0 {
		return ErrNothingToExport
	}
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("export path cannot be empty")
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create export directory: %w", err)
		}
	}

	format := FormatForPath(path)
	var err error
	switch format {
	case FormatXLSX:
		err = writeXLSX(path, expenses)
	default:
		err = writeCSV(path, expenses)
	}
	if err != nil {
		return err
	}

	slog.Info("exported expenses", "path", path, "format", string(format), "rows", len(expenses))
	return nil
}

// record flattens an expense into the export columns.
func record(e model.Expense) []string {
	return []string{
		e.Date,
		e.Description,
		e.Category,
		strconv.FormatFloat(e.Amount, 'f', -1, 64),
		e.PaymentMethod,
		e.RecurringLabel(),
	}
}
