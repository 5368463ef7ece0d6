package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"huntctl/internal/client"
	"huntctl/internal/hunt"
)

func newTestApp() App {
	a := NewApp(client.New("http://localhost:9"), NewStyles(LightTheme()))
	model, _ := a.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return model.(App)
}

func TestAppInitializing(t *testing.T) {
	a := NewApp(client.New("http://localhost:9"), NewStyles(LightTheme()))
	if !strings.Contains(a.View(), "Initializing") {
		t.Error("expected placeholder before the first window size")
	}
}

func TestAppSwitchesViews(t *testing.T) {
	a := newTestApp()
	if a.viewMode != SolveView {
		t.Fatal("expected the solve view by default")
	}

	model, _ := a.Update(tea.KeyMsg{Type: tea.KeyF2})
	a = model.(App)
	if a.viewMode != SearchView {
		t.Fatal("expected F2 to switch to the search view")
	}

	model, _ = a.Update(tea.KeyMsg{Type: tea.KeyF2})
	a = model.(App)
	if a.viewMode != SolveView {
		t.Fatal("expected F2 to switch back to the solve view")
	}
}

func TestAppHelpToggle(t *testing.T) {
	a := newTestApp()

	model, _ := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}})
	a = model.(App)
	if a.viewMode != HelpView {
		t.Fatal("expected ? to open help")
	}
	if !strings.Contains(a.View(), "huntctl") {
		t.Error("expected help content to render")
	}

	model, _ = a.Update(tea.KeyMsg{Type: tea.KeyEsc})
	a = model.(App)
	if a.viewMode != SolveView {
		t.Error("expected esc to restore the previous view")
	}
}

func TestAppRoutesKeysToActivePanel(t *testing.T) {
	a := newTestApp()

	// Type into the form on the solve view.
	model, _ := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'3'}})
	a = model.(App)
	if a.formPanel.state.N != "3" {
		t.Errorf("expected the solve panel to receive input, got N=%q", a.formPanel.state.N)
	}

	// Switch and type into the lookup id.
	model, _ = a.Update(tea.KeyMsg{Type: tea.KeyF2})
	a = model.(App)
	model, _ = a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'8'}})
	a = model.(App)
	if a.lookupPanel.idInput.Value() != "8" {
		t.Errorf("expected the lookup panel to receive input, got %q", a.lookupPanel.idInput.Value())
	}
	if a.formPanel.state.N != "3" {
		t.Error("expected the solve panel state to be untouched")
	}
}

// A solve that resolves while the user is on the search tab must still
// reach the form panel; the flows are independent.
func TestAppDeliversResultsAcrossViews(t *testing.T) {
	a := newTestApp()

	model, _ := a.Update(tea.KeyMsg{Type: tea.KeyF2}) // now on search
	a = model.(App)

	model, _ = a.Update(solvedMsg{result: &hunt.SolveResult{ID: 5, MinimumFuel: 12}})
	a = model.(App)

	view := a.formPanel.View()
	if !strings.Contains(view, "Calculation ID: 5") {
		t.Error("expected the form panel to hold the delivered result")
	}
}

// The help renderer is built once per resize and reused across renders,
// not rebuilt on every View.
func TestAppCachesHelpRenderer(t *testing.T) {
	a := newTestApp()
	if a.renderer == nil {
		t.Fatal("expected the help renderer to be built on resize")
	}

	before := a.renderer
	_ = a.View()
	_ = a.View()
	if a.renderer != before {
		t.Error("expected the cached renderer to survive renders")
	}

	model, _ := a.Update(tea.WindowSizeMsg{Width: 60, Height: 20})
	a = model.(App)
	if a.renderer == nil {
		t.Error("expected a renderer after resize")
	}
	if a.renderer == before {
		t.Error("expected the renderer to be rebuilt for the new width")
	}
}

func TestAppHelpFallsBackWithoutRenderer(t *testing.T) {
	a := newTestApp()
	a.renderer = nil

	out := a.renderHelp()
	if !strings.Contains(out, "huntctl") {
		t.Error("expected plain-text help when no renderer is available")
	}
}

func TestAppTabsRender(t *testing.T) {
	a := newTestApp()
	view := a.View()
	for _, want := range []string{"Treasure Hunt", "Solve", "Search"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected chrome to contain %q", want)
		}
	}
}
