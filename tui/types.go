package tui

import (
	"junit-reporter-cli/testreport"

	tea "github.com/charmbracelet/bubbletea"
)

// Component interface for the failure browser
type Component interface {
	Init() tea.Cmd
	Update(tea.Msg) (tea.Model, tea.Cmd)
	View() string
	SetGroups(*testreport.GroupedFailures)
	SelectedGroup() *testreport.ClassFailures
}

// viewMode identifies which screen the browser is showing
type viewMode int

const (
	viewGroups viewMode = iota
	viewFailures
)

// BackToGroupsMsg is sent when the user returns from a group's failure list
type BackToGroupsMsg struct{}

// failureItem represents one failure in the detail list with UI state
type failureItem struct {
	Failure  *testreport.TestFailure
	Expanded bool
}
