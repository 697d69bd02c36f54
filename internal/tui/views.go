package tui

import (
	"fmt"
	"strings"

	"github.com/Veraticus/pennywise/internal/chart"
	"github.com/Veraticus/pennywise/internal/tui/themes"
	"github.com/charmbracelet/lipgloss"
)

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return m.renderLoading()
	}

	var body string
	switch m.overlay {
	case OverlayMenu:
		body = m.renderMenu()
	case OverlayExport:
		body = m.renderExport()
	case OverlayAbout:
		body = m.renderAbout()
	case OverlayConfirm:
		body = m.renderConfirm()
	default:
		body = m.renderTab()
	}

	sections := []string{m.renderTabs(), body, m.renderStatus()}
	if m.config.ShowHelp {
		sections = append(sections, m.help.View(m.keymap))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderLoading() string {
	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		m.theme.Title.Render("Loading expenses..."),
	)
}

func (m Model) renderTabs() string {
	tabs := make([]string, len(tabTitles))
	for i, title := range tabTitles {
		if Tab(i) == m.tab {
			tabs[i] = m.theme.ActiveTab.Render(title)
		} else {
			tabs[i] = m.theme.InactiveTab.Render(title)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)
}

func (m Model) renderTab() string {
	var content string
	switch m.tab {
	case TabAddExpense:
		content = m.form.view(m.theme)
	case TabViewExpenses:
		content = m.renderExpenses()
	case TabReports:
		content = m.renderReport()
	case TabCategories:
		content = m.renderCategories()
	}
	return m.theme.RoundedBox.Width(max(m.width-2, 20)).Render(content)
}

func (m Model) renderExpenses() string {
	header := m.theme.Bold.Render(fmt.Sprintf("Timeframe: %s", m.listTimeframe.Label())) +
		m.theme.Subtitle.Render("  (Ctrl+T to change)")

	if len(m.snapshot.Expenses) == 0 {
		return header + "\n\n" + m.theme.Subtitle.Render("No expenses found.")
	}

	// Keep the cursor row visible when the list is taller than the window.
	visible := max(m.height-12, 5)
	start := 0
	if m.expenseCursor >= visible {
		start = m.expenseCursor - visible + 1
	}
	end := min(start+visible, len(m.snapshot.Expenses))

	rows := []string{
		header,
		"",
		m.theme.Bold.Render(fmt.Sprintf("%-10s  %-24s  %-14s  %10s  %-14s  %s",
			"Date", "Description", "Category", "Amount", "Payment", "Recurring")),
	}
	for i := start; i < end; i++ {
		e := m.snapshot.Expenses[i]
		line := fmt.Sprintf("%-10s  %-24s  %-14s  %10.2f  %-14s  %s",
			e.Date, clip(e.Description, 24), clip(e.Category, 14), e.Amount, clip(e.PaymentMethod, 14), e.RecurringLabel())
		if i == m.expenseCursor {
			line = m.theme.Selected.Render(line)
		}
		rows = append(rows, line)
	}
	if end < len(m.snapshot.Expenses) {
		rows = append(rows, m.theme.Subtitle.Render(fmt.Sprintf("… %d more", len(m.snapshot.Expenses)-end)))
	}
	return strings.Join(rows, "\n")
}

func (m Model) renderReport() string {
	rep := m.snapshot.Report
	header := m.theme.Bold.Render(fmt.Sprintf("Timeframe: %s", m.reportTimeframe.Label())) +
		m.theme.Subtitle.Render("  (Ctrl+T to change)")

	summary := fmt.Sprintf("Total Expenses: %.2f\nNumber of Expenses: %d\nAverage Expense: %.2f",
		rep.Summary.Total, rep.Summary.Count, rep.Summary.Average)

	pie := chart.NewPie(rep.ByCategory, max(m.width-8, 40))
	return strings.Join([]string{header, "", summary, "", pie.Render()}, "\n")
}

func (m Model) renderCategories() string {
	rows := []string{
		m.theme.Bold.Render("Add category: ") + m.newCategory.View(),
		m.theme.Subtitle.Render("Enter to add, Del to remove the selected category"),
		"",
	}
	for i, cat := range m.snapshot.Categories {
		line := fmt.Sprintf("%s %s", themes.GetCategoryIcon(cat.Name), cat.Name)
		if i == m.categoryCursor {
			line = m.theme.Selected.Render(line)
		}
		rows = append(rows, line)
	}
	return strings.Join(rows, "\n")
}

func (m Model) renderMenu() string {
	rows := []string{m.theme.Title.Render("Menu")}
	for i, item := range MenuItems {
		line := "  " + item
		if i == m.menuCursor {
			line = m.theme.Selected.Render("> " + item)
		}
		rows = append(rows, line)
	}
	rows = append(rows, "", m.theme.Subtitle.Render("Enter to choose, Esc to close"))
	return m.theme.RoundedBox.Render(strings.Join(rows, "\n"))
}

func (m Model) renderExport() string {
	content := strings.Join([]string{
		m.theme.Title.Render("Export to Excel or CSV"),
		"File: " + m.exportInput.View(),
		"",
		m.theme.Subtitle.Render(".xlsx writes a workbook, anything else writes CSV"),
	}, "\n")
	return m.theme.RoundedBox.Render(content)
}

func (m Model) renderAbout() string {
	content := strings.Join([]string{
		m.theme.Title.Render("About"),
		fmt.Sprintf("pennywise %s", m.config.Version),
		"A personal expense tracker.",
		"Record expenses, review them by timeframe and manage categories.",
		"",
		m.theme.Subtitle.Render("Press any key to close"),
	}, "\n")
	return m.theme.RoundedBox.Render(content)
}

func (m Model) renderConfirm() string {
	content := m.theme.StatusWarning.Render(m.confirmPrompt) + "\n\n" +
		m.theme.Subtitle.Render("y to confirm, any other key to cancel")
	return m.theme.RoundedBox.Render(content)
}

func (m Model) renderStatus() string {
	switch m.status.kind {
	case statusError:
		return m.theme.StatusError.Render(m.status.text)
	case statusSuccess:
		return m.theme.StatusSuccess.Render(m.status.text)
	default:
		return m.theme.StatusInfo.Render(m.status.text)
	}
}

func clip(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-1]) + "…"
}
