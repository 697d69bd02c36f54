package sheets

import (
	"context"
	"sync"

	"github.com/Veraticus/pennywise/internal/model"
	"github.com/Veraticus/pennywise/internal/report"
)

// MockWriter records Write calls instead of talking to Google.
type MockWriter struct {
	WriteFunc      func(ctx context.Context, expenses []model.Expense, rep report.Report) error
	WriteCalls     []WriteCall
	WriteCallCount int
	mu             sync.Mutex
}

// WriteCall represents a single call to Write.
type WriteCall struct {
	Error    error
	Expenses []model.Expense
	Report   report.Report
}

// NewMockWriter creates a new mock writer.
func NewMockWriter() *MockWriter {
	return &MockWriter{}
}

// Write records the call and returns WriteFunc's result, if set.
func (m *MockWriter) Write(ctx context.Context, expenses []model.Expense, rep report.Report) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.WriteCallCount++

	var err error
	if m.WriteFunc != nil {
		err = m.WriteFunc(ctx, expenses, rep)
	}

	m.WriteCalls = append(m.WriteCalls, WriteCall{
		Expenses: expenses,
		Report:   rep,
		Error:    err,
	})
	return err
}

// LastCall returns the most recent call and whether there was one.
func (m *MockWriter) LastCall() (WriteCall, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.WriteCalls) == 0 {
		return WriteCall{}, false
	}
	return m.WriteCalls[len(m.WriteCalls)-1], true
}

// SetWriteError configures the mock to fail every following Write.
func (m *MockWriter) SetWriteError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.WriteFunc = func(context.Context, []model.Expense, report.Report) error {
		return err
	}
}
