package tui

import (
	"strings"
	"testing"

	"junit-reporter-cli/testreport"

	tea "github.com/charmbracelet/bubbletea"
)

var _ Component = (*Browser)(nil)

func buildGroups(t *testing.T) *testreport.GroupedFailures {
	t.Helper()

	alpha := testreport.NewClassFailures("com.example.AlphaTests")
	beta := testreport.NewClassFailures("com.example.BetaTests")

	add := func(group *testreport.ClassFailures, testName, trace string) {
		t.Helper()
		failure, err := testreport.NewTestFailure(testName, "", group.ClassName(), "failure", "boom", trace, 0.5)
		if err != nil {
			t.Fatalf("Failed to build failure: %v", err)
		}
		if err := group.AddFailure(failure); err != nil {
			t.Fatalf("Failed to add failure: %v", err)
		}
	}
	add(alpha, "shouldAdd", "at AlphaTests.shouldAdd(AlphaTests.java:42)")
	add(alpha, "shouldSubtract", "")
	add(beta, "shouldWork", "")

	return testreport.NewGroupedFailures(alpha, beta)
}

func TestNew(t *testing.T) {
	browser := New(buildGroups(t))

	if browser == nil {
		t.Fatal("Expected browser to be created")
	}
	if browser.mode != viewGroups {
		t.Error("Expected the browser to start on the groups view")
	}
}

func TestView_GroupsTable(t *testing.T) {
	browser := New(buildGroups(t))
	view := browser.View()

	if !strings.Contains(view, "com.example.AlphaTests") {
		t.Error("Expected the groups view to list the alpha class")
	}
	if !strings.Contains(view, "2 classes, 3 failures") {
		t.Errorf("Expected the header to show totals, got:\n%s", view)
	}
}

func TestView_EmptyGroups(t *testing.T) {
	browser := New(testreport.NewGroupedFailures())
	if !strings.Contains(browser.View(), "No test failures") {
		t.Error("Expected an empty-state message")
	}
}

func TestUpdate_OpenGroupShowsFailures(t *testing.T) {
	browser := New(buildGroups(t))

	model, _ := browser.Update(tea.KeyMsg{Type: tea.KeyEnter})
	browser = model.(*Browser)

	if browser.mode != viewFailures {
		t.Fatal("Expected enter to open the highlighted group")
	}

	view := browser.View()
	if !strings.Contains(view, "shouldAdd") {
		t.Error("Expected the failure list to show the group's tests")
	}
}

func TestUpdate_ToggleExpandsFailureDetail(t *testing.T) {
	browser := New(buildGroups(t))

	model, _ := browser.Update(tea.KeyMsg{Type: tea.KeyEnter})
	browser = model.(*Browser)

	model, _ = browser.Update(tea.KeyMsg{Type: tea.KeySpace})
	browser = model.(*Browser)

	if len(browser.items) == 0 || !browser.items[0].Expanded {
		t.Fatal("Expected space to expand the selected failure")
	}
	if !strings.Contains(browser.View(), "at AlphaTests.shouldAdd") {
		t.Error("Expected the expanded detail to include the stack trace")
	}
}

func TestUpdate_NavigationStaysInBounds(t *testing.T) {
	browser := New(buildGroups(t))

	model, _ := browser.Update(tea.KeyMsg{Type: tea.KeyEnter})
	browser = model.(*Browser)

	model, _ = browser.Update(tea.KeyMsg{Type: tea.KeyUp})
	browser = model.(*Browser)
	if browser.selectedIndex != 0 {
		t.Error("Expected navigation above the first item to clamp")
	}

	for i := 0; i < 10; i++ {
		model, _ = browser.Update(tea.KeyMsg{Type: tea.KeyDown})
		browser = model.(*Browser)
	}
	if browser.selectedIndex != len(browser.items)-1 {
		t.Error("Expected navigation below the last item to clamp")
	}
}

func TestUpdate_BackReturnsToGroups(t *testing.T) {
	browser := New(buildGroups(t))

	model, _ := browser.Update(tea.KeyMsg{Type: tea.KeyEnter})
	browser = model.(*Browser)

	model, cmd := browser.Update(tea.KeyMsg{Type: tea.KeyEsc})
	browser = model.(*Browser)
	if cmd == nil {
		t.Fatal("Expected back to produce a command")
	}

	model, _ = browser.Update(cmd())
	browser = model.(*Browser)
	if browser.mode != viewGroups {
		t.Error("Expected the browser to return to the groups view")
	}
}

func TestUpdate_QuitFromAnywhere(t *testing.T) {
	browser := New(buildGroups(t))

	_, cmd := browser.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("Expected quit to produce a command")
	}
}
