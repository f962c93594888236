// Package tui implements the interactive failure browser: a table of failing
// classes that drills down into an expandable per-class failure list.
package tui

import (
	"fmt"
	"strconv"
	"strings"

	"junit-reporter-cli/testreport"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	btable "github.com/evertras/bubble-table/table"
)

// Styles for the failure browser
var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00ffaa")).
			Underline(true).
			Padding(0, 1)

	groupHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#ffaa00")).
				Padding(0, 1)

	failedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ff0000"))

	selectedStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#00aa00")).
			Foreground(lipgloss.Color("#000000")).
			Bold(true)

	detailStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#ff0000")).
			Padding(0, 1)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			Faint(true)
)

// Key bindings
type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Open   key.Binding
	Toggle key.Binding
	Back   key.Binding
	Quit   key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Open: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "open"),
	),
	Toggle: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "toggle trace"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc", "b"),
		key.WithHelp("esc/b", "back"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// ShortHelp returns the bindings shown in the mini help view
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Open, k.Toggle, k.Back, k.Quit}
}

// FullHelp returns the bindings shown in the expanded help view
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Open}, {k.Toggle, k.Back, k.Quit}}
}

// Browser is the top-level model for the failure browser
type Browser struct {
	help help.Model

	groups *testreport.GroupedFailures
	table  btable.Model
	mode   viewMode

	// failure list state for the opened group
	openGroup     *testreport.ClassFailures
	items         []failureItem
	selectedIndex int
}

// New creates a failure browser for the given groups
func New(groups *testreport.GroupedFailures) *Browser {
	columns := []btable.Column{
		btable.NewColumn("index", "#", 4),
		btable.NewColumn("class", "Class", 48),
		btable.NewColumn("failures", "Failures", 10),
		btable.NewColumn("time", "Time (s)", 10),
	}

	b := &Browser{
		help:  help.New(),
		table: btable.New(columns).Focused(true),
		mode:  viewGroups,
	}
	b.SetGroups(groups)
	return b
}

// SetGroups replaces the browsed data and rebuilds the group table
func (b *Browser) SetGroups(groups *testreport.GroupedFailures) {
	b.groups = groups
	b.refreshTable()
}

func (b *Browser) refreshTable() {
	var rows []btable.Row
	if b.groups != nil {
		for i, group := range b.groups.Groups() {
			rows = append(rows, btable.NewRow(map[string]interface{}{
				"index":    strconv.Itoa(i + 1),
				"class":    group.ClassName(),
				"failures": strconv.Itoa(group.TotalFailures()),
				"time":     fmt.Sprintf("%.3f", group.TotalTime()),
			}))
		}
	}
	b.table = b.table.WithRows(rows)
}

// SelectedGroup returns the group highlighted in the table
func (b *Browser) SelectedGroup() *testreport.ClassFailures {
	if b.groups == nil {
		return nil
	}
	row := b.table.HighlightedRow()
	if row.Data == nil {
		return nil
	}
	if class, ok := row.Data["class"].(string); ok {
		if group, found := b.groups.Group(class); found {
			return group
		}
	}
	return nil
}

// Init initializes the browser
func (b *Browser) Init() tea.Cmd {
	return nil
}

// Update handles incoming messages
func (b *Browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case BackToGroupsMsg:
		b.mode = viewGroups
		b.openGroup = nil
		b.items = nil
		return b, nil

	case tea.KeyMsg:
		if key.Matches(msg, keys.Quit) {
			return b, tea.Quit
		}
		if b.mode == viewGroups {
			return b.updateGroupsView(msg)
		}
		return b.updateFailuresView(msg)
	}

	return b, nil
}

func (b *Browser) updateGroupsView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keys.Open) {
		if group := b.SelectedGroup(); group != nil {
			b.openFailures(group)
		}
		return b, nil
	}

	var cmd tea.Cmd
	b.table, cmd = b.table.Update(msg)
	return b, cmd
}

func (b *Browser) openFailures(group *testreport.ClassFailures) {
	b.openGroup = group
	b.selectedIndex = 0
	b.items = nil
	for _, failure := range group.Failures() {
		b.items = append(b.items, failureItem{Failure: failure})
	}
	b.mode = viewFailures
}

func (b *Browser) updateFailuresView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if b.selectedIndex > 0 {
			b.selectedIndex--
		}

	case key.Matches(msg, keys.Down):
		if b.selectedIndex < len(b.items)-1 {
			b.selectedIndex++
		}

	case key.Matches(msg, keys.Toggle), key.Matches(msg, keys.Open):
		if b.selectedIndex >= 0 && b.selectedIndex < len(b.items) {
			b.items[b.selectedIndex].Expanded = !b.items[b.selectedIndex].Expanded
		}

	case key.Matches(msg, keys.Back):
		return b, func() tea.Msg { return BackToGroupsMsg{} }
	}

	return b, nil
}

// View renders the browser
func (b *Browser) View() string {
	if b.groups == nil || b.groups.Len() == 0 {
		return dimStyle.Render("No test failures to browse") + "\n"
	}

	if b.mode == viewFailures && b.openGroup != nil {
		return b.failuresView()
	}
	return b.groupsView()
}

func (b *Browser) groupsView() string {
	header := headerStyle.Render(fmt.Sprintf("JUnit Failures: %d classes, %d failures",
		b.groups.Len(), b.groups.TotalFailures()))
	return fmt.Sprintf("%s\n\n%s\n\n%s", header, b.table.View(), dimStyle.Render(b.help.View(keys)))
}

func (b *Browser) failuresView() string {
	var sb strings.Builder

	sb.WriteString(groupHeaderStyle.Render(fmt.Sprintf("%s (%d failures, %.3fs)",
		b.openGroup.ClassName(), b.openGroup.TotalFailures(), b.openGroup.TotalTime())))
	sb.WriteString("\n\n")

	for i, item := range b.items {
		line := fmt.Sprintf("[%d] %s", i+1, failureLabel(item.Failure))
		if i == b.selectedIndex {
			sb.WriteString(selectedStyle.Render(line))
		} else {
			sb.WriteString(failedStyle.Render(line))
		}
		sb.WriteString("\n")

		if item.Expanded {
			sb.WriteString(detailStyle.Render(failureDetail(item.Failure)))
			sb.WriteString("\n")
		}
	}

	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render(b.help.View(keys)))
	return sb.String()
}

// failureLabel appends the display name when it adds information beyond the
// raw test name.
func failureLabel(failure *testreport.TestFailure) string {
	if strings.TrimSpace(failure.DisplayName) == "" || failure.DisplayName == failure.TestName {
		return failure.TestName
	}
	return failure.TestName + " (" + failure.DisplayName + ")"
}

func failureDetail(failure *testreport.TestFailure) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Type: %s\nMessage: %s\nTime: %vs",
		failure.FailureType, failure.FailureMessage, failure.Time))
	if failure.StackTrace != "" {
		sb.WriteString("\n\n")
		sb.WriteString(failure.StackTrace)
	}
	return sb.String()
}

// Run starts the interactive browser over the given groups
func Run(groups *testreport.GroupedFailures) error {
	var browser Component = New(groups)
	program := tea.NewProgram(browser, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
