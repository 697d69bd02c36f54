package tui

import (
	"fmt"
	"strings"

	"github.com/Veraticus/pennywise/internal/app"
	"github.com/Veraticus/pennywise/internal/model"
	"github.com/Veraticus/pennywise/internal/tui/themes"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type formField int

const (
	fieldDescription formField = iota
	fieldCategory
	fieldAmount
	fieldDate
	fieldPayment
	fieldRecurring
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"Description", "Category", "Amount", "Date", "Payment Method", "Recurring",
}

// expenseForm is the Add Expense tab.
type expenseForm struct {
	description textinput.Model
	amount      textinput.Model
	date        textinput.Model
	categories  []string
	category    int
	payment     int
	focus       formField
	recurring   bool
}

func newExpenseForm() expenseForm {
	description := textinput.New()
	description.Placeholder = "What was it?"
	description.CharLimit = 120
	description.Focus()

	amount := textinput.New()
	amount.Placeholder = "0.00"
	amount.CharLimit = 20

	date := textinput.New()
	date.Placeholder = "YYYY-MM-DD (today)"
	date.CharLimit = len(model.DateLayout)

	return expenseForm{
		description: description,
		amount:      amount,
		date:        date,
	}
}

// setCategories replaces the choices, keeping the current one when it survives.
func (f *expenseForm) setCategories(categories []model.Category) {
	current := f.selectedCategory()
	f.categories = model.CategoryNames(categories)
	f.category = 0
	for i, name := range f.categories {
		if name == current {
			f.category = i
			break
		}
	}
}

func (f expenseForm) selectedCategory() string {
	if f.category < 0 || f.category >= len(f.categories) {
		return ""
	}
	return f.categories[f.category]
}

// value collects the form into controller input.
func (f expenseForm) value() app.ExpenseForm {
	return app.ExpenseForm{
		Description:   f.description.Value(),
		Category:      f.selectedCategory(),
		Amount:        f.amount.Value(),
		Date:          f.date.Value(),
		PaymentMethod: model.PaymentMethods[f.payment],
		Recurring:     f.recurring,
	}
}

// reset clears the typed fields after a successful add. The category and
// payment choices are kept.
func (f *expenseForm) reset() {
	f.description.Reset()
	f.amount.Reset()
	f.date.Reset()
	f.recurring = false
	f.setFocus(fieldDescription)
}

func (f *expenseForm) setFocus(field formField) {
	f.focus = (field + fieldCount) % fieldCount
	f.description.Blur()
	f.amount.Blur()
	f.date.Blur()

	switch f.focus {
	case fieldDescription:
		f.description.Focus()
	case fieldAmount:
		f.amount.Focus()
	case fieldDate:
		f.date.Focus()
	}
}

// update handles keys for the form. Enter is handled by the model.
func (f expenseForm) update(msg tea.KeyMsg, keys KeyMap) (expenseForm, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.NextField), key.Matches(msg, keys.Down):
		f.setFocus(f.focus + 1)
		return f, nil
	case key.Matches(msg, keys.PrevField), key.Matches(msg, keys.Up):
		f.setFocus(f.focus - 1)
		return f, nil
	}

	switch f.focus {
	case fieldCategory:
		if n := len(f.categories); n > 0 {
			switch {
			case key.Matches(msg, keys.Left):
				f.category = (f.category - 1 + n) % n
			case key.Matches(msg, keys.Right), key.Matches(msg, keys.Toggle):
				f.category = (f.category + 1) % n
			}
		}
	case fieldPayment:
		n := len(model.PaymentMethods)
		switch {
		case key.Matches(msg, keys.Left):
			f.payment = (f.payment - 1 + n) % n
		case key.Matches(msg, keys.Right), key.Matches(msg, keys.Toggle):
			f.payment = (f.payment + 1) % n
		}
	case fieldRecurring:
		if key.Matches(msg, keys.Toggle, keys.Left, keys.Right) {
			f.recurring = !f.recurring
		}
	}

	var cmd tea.Cmd
	switch f.focus {
	case fieldDescription:
		f.description, cmd = f.description.Update(msg)
	case fieldAmount:
		f.amount, cmd = f.amount.Update(msg)
	case fieldDate:
		f.date, cmd = f.date.Update(msg)
	}
	return f, cmd
}

func (f expenseForm) view(theme themes.Theme) string {
	label := lipgloss.NewStyle().Width(18)
	rows := make([]string, 0, fieldCount+2)

	for field := fieldDescription; field < fieldCount; field++ {
		var value string
		switch field {
		case fieldDescription:
			value = f.description.View()
		case fieldAmount:
			value = f.amount.View()
		case fieldDate:
			value = f.date.View()
		case fieldCategory:
			value = choice(f.selectedCategory(), field == f.focus)
		case fieldPayment:
			value = choice(model.PaymentMethods[f.payment], field == f.focus)
		case fieldRecurring:
			box := "[ ]"
			if f.recurring {
				box = "[x]"
			}
			value = box + " Recurring"
		}

		name := label.Render(fieldLabels[field] + ":")
		if field == f.focus {
			name = theme.Bold.Inherit(label).Foreground(theme.Primary).Render("> " + fieldLabels[field] + ":")
		}
		rows = append(rows, name+value)
	}

	rows = append(rows, "", theme.Subtitle.Render("Enter to add the expense"))
	return strings.Join(rows, "\n")
}

func choice(value string, focused bool) string {
	if value == "" {
		value = "(none)"
	}
	if focused {
		return fmt.Sprintf("◀ %s ▶", value)
	}
	return value
}
