// Package cli provides styled terminal output using lipgloss.
package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	primaryColor = lipgloss.Color("#2ECC71")
	refundColor  = lipgloss.Color("#4ECDC4")
	warningColor = lipgloss.Color("#FFE66D")
	errorColor   = lipgloss.Color("#FF6B6B")
	infoColor    = lipgloss.Color("#95E1D3")
	subtleColor  = lipgloss.Color("#666666")
	borderColor  = lipgloss.Color("#333")

	// TitleStyle is used for report and box titles.
	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(primaryColor).MarginBottom(1)

	// HeaderStyle is used for table column headers.
	HeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(primaryColor)

	// InfoStyle is used for neutral notices such as empty listings.
	InfoStyle = lipgloss.NewStyle().Foreground(infoColor)

	// SubtleStyle is used for placeholder text.
	SubtleStyle = lipgloss.NewStyle().Foreground(subtleColor)

	successStyle = lipgloss.NewStyle().Foreground(refundColor)
	warningStyle = lipgloss.NewStyle().Foreground(warningColor)
	errorStyle   = lipgloss.NewStyle().Foreground(errorColor)
	promptStyle  = lipgloss.NewStyle().Bold(true).Foreground(primaryColor)
	boxStyle     = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor).
			Padding(1, 2)
)

const (
	successIcon = "✓"
	errorIcon   = "✗"
	warningIcon = "⚠️"
	infoIcon    = "ℹ️"

	// MoneyIcon prefixes the application name and report titles.
	MoneyIcon = "💰"
)

// FormatSuccess marks a completed change, e.g. an added expense.
func FormatSuccess(message string) string {
	return successStyle.Render(successIcon + " " + message)
}

// FormatError marks a failure shown to the user.
func FormatError(message string) string {
	return errorStyle.Render(errorIcon + " " + message)
}

// FormatWarning marks an interrupted or partial operation.
func FormatWarning(message string) string {
	return warningStyle.Render(warningIcon + " " + message)
}

// FormatInfo marks a notice that changed nothing.
func FormatInfo(message string) string {
	return InfoStyle.Render(infoIcon + " " + message)
}

// FormatTitle renders a report heading.
func FormatTitle(title string) string {
	return TitleStyle.Render(MoneyIcon + " " + title)
}

// FormatAmount renders money with two decimals. Refunds are shown in the
// success color.
func FormatAmount(amount float64) string {
	text := fmt.Sprintf("%.2f", amount)
	if amount < 0 {
		return successStyle.Render(text)
	}
	return text
}

func formatPrompt(prompt string) string {
	return promptStyle.Render(prompt + " → ")
}

// RenderBox frames content under a title.
func RenderBox(title, content string) string {
	return boxStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		TitleStyle.UnsetMargins().Render(title),
		content,
	))
}
