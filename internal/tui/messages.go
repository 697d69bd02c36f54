package tui

import "github.com/Veraticus/pennywise/internal/app"

// snapshotMsg carries the initial load.
type snapshotMsg struct {
	err      error
	snapshot app.Snapshot
}

// Tab identifies one of the four main views.
type Tab int

// Tabs in display order.
const (
	TabAddExpense Tab = iota
	TabViewExpenses
	TabReports
	TabCategories
)

var tabTitles = []string{"Add Expense", "View Expenses", "Reports", "Categories"}

func (t Tab) String() string {
	if t < 0 || int(t) >= len(tabTitles) {
		return "Unknown"
	}
	return tabTitles[t]
}

// Overlay is a modal drawn over the tabs.
type Overlay int

// Overlays.
const (
	OverlayNone Overlay = iota
	OverlayMenu
	OverlayExport
	OverlayAbout
	OverlayConfirm
)

// MenuItems are the entries of the menu overlay.
var MenuItems = []string{"Export", "About", "Exit"}

type statusKind int

const (
	statusInfo statusKind = iota
	statusSuccess
	statusError
)

type status struct {
	text string
	kind statusKind
}
