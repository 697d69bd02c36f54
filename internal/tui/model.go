// Package tui is the interactive terminal front end: four tabs (Add Expense,
// View Expenses, Reports, Categories) and a menu with Export, About and Exit.
package tui

import (
	"context"
	"fmt"

	"github.com/Veraticus/pennywise/internal/app"
	"github.com/Veraticus/pennywise/internal/common"
	"github.com/Veraticus/pennywise/internal/model"
	"github.com/Veraticus/pennywise/internal/tui/themes"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Model holds the main TUI state. Every mutation calls the controller
// synchronously and then reloads the snapshot, so all tabs agree.
type Model struct {
	ctx             context.Context
	controller      Controller
	theme           themes.Theme
	confirmAction   func() error
	snapshot        app.Snapshot
	status          status
	confirmPrompt   string
	config          Config
	exportInput     textinput.Model
	newCategory     textinput.Model
	keymap          KeyMap
	help            help.Model
	form            expenseForm
	listTimeframe   model.Timeframe
	reportTimeframe model.Timeframe
	tab             Tab
	overlay         Overlay
	width           int
	height          int
	expenseCursor   int
	categoryCursor  int
	menuCursor      int
	ready           bool
	quitting        bool
}

// New creates the TUI model.
func New(ctx context.Context, opts ...Option) (Model, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Controller == nil {
		return Model{}, fmt.Errorf("controller is required")
	}
	return newModel(ctx, cfg), nil
}

func newModel(ctx context.Context, cfg Config) Model {
	exportInput := textinput.New()
	exportInput.CharLimit = 255
	exportInput.SetValue(cfg.ExportPath)

	newCategory := textinput.New()
	newCategory.Placeholder = "New category name"
	newCategory.CharLimit = 40
	newCategory.Focus()

	h := help.New()
	h.Width = cfg.Width

	return Model{
		ctx:             ctx,
		controller:      cfg.Controller,
		config:          cfg,
		theme:           cfg.Theme,
		keymap:          DefaultKeyMap(),
		help:            h,
		form:            newExpenseForm(),
		exportInput:     exportInput,
		newCategory:     newCategory,
		listTimeframe:   cfg.ListTimeframe,
		reportTimeframe: cfg.ReportTimeframe,
		width:           cfg.Width,
		height:          cfg.Height,
	}
}

// Init loads the first snapshot.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.loadSnapshot())
}

func (m Model) loadSnapshot() tea.Cmd {
	return func() tea.Msg {
		snap, err := m.controller.Snapshot(m.ctx, m.listTimeframe, m.reportTimeframe)
		return snapshotMsg{snapshot: snap, err: err}
	}
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case snapshotMsg:
		m.ready = true
		if msg.err != nil {
			m.setError(msg.err)
			return m, nil
		}
		m.applySnapshot(msg.snapshot)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keymap.Quit) {
			m.quitting = true
			return m, tea.Quit
		}
		if m.overlay != OverlayNone {
			return m.updateOverlay(msg)
		}
		if cmd, handled := m.handleGlobalKeys(msg); handled {
			return m, cmd
		}
		return m.updateTab(msg)
	}

	return m, m.forwardToInputs(msg)
}

// forwardToInputs passes non-key messages such as cursor blinks to the
// focused text inputs.
func (m *Model) forwardToInputs(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch {
	case m.overlay == OverlayExport:
		m.exportInput, cmd = m.exportInput.Update(msg)
		cmds = append(cmds, cmd)
	case m.tab == TabAddExpense:
		switch m.form.focus {
		case fieldDescription:
			m.form.description, cmd = m.form.description.Update(msg)
		case fieldAmount:
			m.form.amount, cmd = m.form.amount.Update(msg)
		case fieldDate:
			m.form.date, cmd = m.form.date.Update(msg)
		}
		cmds = append(cmds, cmd)
	case m.tab == TabCategories:
		m.newCategory, cmd = m.newCategory.Update(msg)
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// handleGlobalKeys handles keys that work on every tab.
func (m *Model) handleGlobalKeys(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keymap.Menu):
		m.overlay = OverlayMenu
		m.menuCursor = 0
		return nil, true
	case key.Matches(msg, m.keymap.NextTab):
		m.switchTab((m.tab + 1) % Tab(len(tabTitles)))
		return nil, true
	case key.Matches(msg, m.keymap.PrevTab):
		m.switchTab((m.tab - 1 + Tab(len(tabTitles))) % Tab(len(tabTitles)))
		return nil, true
	case key.Matches(msg, m.keymap.Tab1):
		m.switchTab(TabAddExpense)
		return nil, true
	case key.Matches(msg, m.keymap.Tab2):
		m.switchTab(TabViewExpenses)
		return nil, true
	case key.Matches(msg, m.keymap.Tab3):
		m.switchTab(TabReports)
		return nil, true
	case key.Matches(msg, m.keymap.Tab4):
		m.switchTab(TabCategories)
		return nil, true
	case key.Matches(msg, m.keymap.Refresh):
		m.refresh()
		return nil, true
	}
	return nil, false
}

func (m *Model) switchTab(tab Tab) {
	m.tab = tab
	m.status = status{}
}

func (m Model) updateTab(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.tab {
	case TabAddExpense:
		if key.Matches(msg, m.keymap.Submit) {
			m.submitExpense()
			return m, nil
		}
		var cmd tea.Cmd
		m.form, cmd = m.form.update(msg, m.keymap)
		return m, cmd

	case TabViewExpenses:
		switch {
		case key.Matches(msg, m.keymap.Up):
			m.expenseCursor = max(m.expenseCursor-1, 0)
		case key.Matches(msg, m.keymap.Down):
			m.expenseCursor = min(m.expenseCursor+1, max(len(m.snapshot.Expenses)-1, 0))
		case key.Matches(msg, m.keymap.Timeframe):
			m.listTimeframe = m.listTimeframe.Next()
			m.expenseCursor = 0
			m.refresh()
		case key.Matches(msg, m.keymap.Delete):
			m.confirmDeleteExpense()
		}
		return m, nil

	case TabReports:
		if key.Matches(msg, m.keymap.Timeframe) {
			m.reportTimeframe = m.reportTimeframe.Next()
			m.refresh()
		}
		return m, nil

	case TabCategories:
		switch {
		case key.Matches(msg, m.keymap.Up):
			m.categoryCursor = max(m.categoryCursor-1, 0)
			return m, nil
		case key.Matches(msg, m.keymap.Down):
			m.categoryCursor = min(m.categoryCursor+1, max(len(m.snapshot.Categories)-1, 0))
			return m, nil
		case key.Matches(msg, m.keymap.Submit):
			m.submitCategory()
			return m, nil
		case key.Matches(msg, m.keymap.Delete):
			m.confirmDeleteCategory()
			return m, nil
		}
		var cmd tea.Cmd
		m.newCategory, cmd = m.newCategory.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateOverlay(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.overlay {
	case OverlayMenu:
		switch {
		case key.Matches(msg, m.keymap.Menu):
			m.overlay = OverlayNone
		case key.Matches(msg, m.keymap.Up):
			m.menuCursor = max(m.menuCursor-1, 0)
		case key.Matches(msg, m.keymap.Down):
			m.menuCursor = min(m.menuCursor+1, len(MenuItems)-1)
		case key.Matches(msg, m.keymap.Submit):
			switch MenuItems[m.menuCursor] {
			case "Export":
				m.overlay = OverlayExport
				m.exportInput.Focus()
				m.exportInput.CursorEnd()
			case "About":
				m.overlay = OverlayAbout
			case "Exit":
				m.quitting = true
				return m, tea.Quit
			}
		}
		return m, nil

	case OverlayExport:
		switch {
		case key.Matches(msg, m.keymap.Menu):
			m.exportInput.Blur()
			m.overlay = OverlayNone
			return m, nil
		case key.Matches(msg, m.keymap.Submit):
			m.exportInput.Blur()
			m.overlay = OverlayNone
			m.export()
			return m, nil
		}
		var cmd tea.Cmd
		m.exportInput, cmd = m.exportInput.Update(msg)
		return m, cmd

	case OverlayAbout:
		m.overlay = OverlayNone
		return m, nil

	case OverlayConfirm:
		action := m.confirmAction
		m.overlay = OverlayNone
		m.confirmAction = nil
		m.confirmPrompt = ""
		if key.Matches(msg, m.keymap.Confirm) && action != nil {
			if err := action(); err != nil {
				m.setError(err)
				return m, nil
			}
			m.refresh()
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) submitExpense() {
	expense, err := m.controller.AddExpense(m.ctx, m.form.value())
	if err != nil {
		m.setError(err)
		return
	}
	m.form.reset()
	m.refresh()
	m.status = status{text: fmt.Sprintf("Added %q (%.2f)", expense.Description, expense.Amount), kind: statusSuccess}
}

func (m *Model) submitCategory() {
	name := m.newCategory.Value()
	if err := m.controller.AddCategory(m.ctx, name); err != nil {
		m.setError(err)
		return
	}
	m.newCategory.Reset()
	m.refresh()
	m.status = status{text: fmt.Sprintf("Category %q added", name), kind: statusSuccess}
}

func (m *Model) confirmDeleteExpense() {
	if len(m.snapshot.Expenses) == 0 {
		m.status = status{text: "Please select an expense to delete", kind: statusError}
		return
	}
	expense := m.snapshot.Expenses[m.expenseCursor]
	ctrl, ctx := m.controller, m.ctx
	m.confirm(fmt.Sprintf("Delete %q from %s?", expense.Description, expense.Date), func() error {
		return ctrl.DeleteExpense(ctx, expense.ID)
	})
}

func (m *Model) confirmDeleteCategory() {
	if len(m.snapshot.Categories) == 0 {
		m.status = status{text: "Please select a category to delete", kind: statusError}
		return
	}
	name := m.snapshot.Categories[m.categoryCursor].Name
	ctrl, ctx := m.controller, m.ctx
	m.confirm(fmt.Sprintf("Delete category %q?", name), func() error {
		return ctrl.DeleteCategory(ctx, name)
	})
}

func (m *Model) confirm(prompt string, action func() error) {
	m.overlay = OverlayConfirm
	m.confirmPrompt = prompt
	m.confirmAction = action
}

func (m *Model) export() {
	path := m.exportInput.Value()
	n, err := m.controller.Export(m.ctx, path)
	if err != nil {
		m.setError(err)
		return
	}
	m.status = status{text: fmt.Sprintf("Exported %d expense(s) to %s", n, path), kind: statusSuccess}
}

// refresh reloads every view from the store.
func (m *Model) refresh() {
	snap, err := m.controller.Snapshot(m.ctx, m.listTimeframe, m.reportTimeframe)
	if err != nil {
		m.setError(err)
		return
	}
	m.applySnapshot(snap)
}

func (m *Model) applySnapshot(snap app.Snapshot) {
	m.snapshot = snap
	m.form.setCategories(snap.Categories)
	m.expenseCursor = clamp(m.expenseCursor, len(snap.Expenses))
	m.categoryCursor = clamp(m.categoryCursor, len(snap.Categories))
}

func (m *Model) setError(err error) {
	m.status = status{text: common.UserMessage(err), kind: statusError}
}

func clamp(cursor, n int) int {
	if n == 0 {
		return 0
	}
	return min(max(cursor, 0), n-1)
}
