package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"huntctl/internal/client"
)

// ViewMode determines which panel is focused/active
type ViewMode int

const (
	SolveView ViewMode = iota
	SearchView
	HelpView
)

const helpText = `# huntctl

Submit an N×M treasure hunt matrix to the solving service, or look up a
previous calculation by id.

## Solve

* Fill in **Rows (N)**, **Columns (M)** and **Max value (P)**; the grid
  resizes as you type, keeping the values you already entered.
* Every cell must hold an integer between 1 and P.
* Press ` + "`ctrl+s`" + ` to submit. One request at a time; the trigger is
  disabled while a request is pending.

## Search

* Enter a calculation id and press ` + "`enter`" + `.
* The record shows the computed minimum fuel and the original input.

## Keys

| Key | Action |
| --- | ------ |
| tab / shift+tab | next / previous field |
| F2 | switch between Solve and Search |
| ? | toggle this help |
| ctrl+c | quit |
`

// App is the root model: it owns the two panels, the active view, and the
// shared chrome (header, tabs, footer, help overlay). The two request
// flows live entirely inside their panels and never interleave.
type App struct {
	formPanel   FormModel
	lookupPanel LookupModel

	viewMode ViewMode
	lastView ViewMode // view to restore when help closes

	styles   Styles
	renderer *glamour.TermRenderer
	width    int
	height   int
	ready    bool
}

// NewApp wires the panels to a service client.
func NewApp(c *client.Client, styles Styles) App {
	return App{
		formPanel:   NewFormModel(c, styles),
		lookupPanel: NewLookupModel(c, styles),
		styles:      styles,
	}
}

// Init starts cursor blinking for the form.
func (a App) Init() tea.Cmd {
	return a.formPanel.Init()
}

// Update routes messages. Request-terminal messages always reach their
// panel regardless of which view is active, so a flow started on one tab
// resolves even if the user switches away.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.renderer = newHelpRenderer(msg.Width)
		return a, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return a, tea.Quit
		case "f2":
			if a.viewMode == HelpView {
				return a, nil
			}
			return a.switchView(), nil
		case "?":
			if a.viewMode == HelpView {
				a.viewMode = a.lastView
			} else {
				a.lastView = a.viewMode
				a.viewMode = HelpView
			}
			return a, nil
		case "esc":
			if a.viewMode == HelpView {
				a.viewMode = a.lastView
				return a, nil
			}
		}

		// All other keys go to the active panel only.
		switch a.viewMode {
		case SolveView:
			var cmd tea.Cmd
			a.formPanel, cmd = a.formPanel.Update(msg)
			return a, cmd
		case SearchView:
			var cmd tea.Cmd
			a.lookupPanel, cmd = a.lookupPanel.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	// Non-key messages (spinner ticks, request results) fan out to both
	// panels; each ignores what is not addressed to it.
	var cmds []tea.Cmd
	var cmd tea.Cmd
	a.formPanel, cmd = a.formPanel.Update(msg)
	cmds = append(cmds, cmd)
	a.lookupPanel, cmd = a.lookupPanel.Update(msg)
	cmds = append(cmds, cmd)
	return a, tea.Batch(cmds...)
}

// switchView toggles between the solve and search tabs, moving keyboard
// focus with it.
func (a App) switchView() App {
	if a.viewMode == SolveView {
		a.viewMode = SearchView
		a.lookupPanel = a.lookupPanel.Focus()
	} else {
		a.viewMode = SolveView
		a.lookupPanel = a.lookupPanel.Blur()
	}
	return a
}

// View renders the chrome and the active panel.
func (a App) View() string {
	if !a.ready {
		return "Initializing..."
	}

	var sb strings.Builder

	sb.WriteString(a.styles.Header.Render(" Treasure Hunt "))
	sb.WriteString("\n")
	sb.WriteString(a.renderTabs())
	sb.WriteString("\n")

	switch a.viewMode {
	case SolveView:
		sb.WriteString(a.styles.Content.Render(a.formPanel.View()))
	case SearchView:
		sb.WriteString(a.styles.Content.Render(a.lookupPanel.View()))
	case HelpView:
		sb.WriteString(a.styles.Content.Render(a.renderHelp()))
	}

	sb.WriteString("\n")
	sb.WriteString(a.styles.Footer.Render("[F2] switch  [?] help  [ctrl+c] quit"))

	return sb.String()
}

func (a App) renderTabs() string {
	solve := a.styles.Tab.Render("Solve")
	search := a.styles.Tab.Render("Search")
	switch a.viewMode {
	case SolveView:
		solve = a.styles.TabOn.Render("Solve")
	case SearchView:
		search = a.styles.TabOn.Render("Search")
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, solve, search)
}

// newHelpRenderer builds the glamour renderer for the given terminal
// width; the result is cached on the model until the next resize. Returns
// nil on error, which renderHelp treats as plain-text fallback.
func newHelpRenderer(termWidth int) *glamour.TermRenderer {
	width := termWidth - 4
	if width < 20 || width > 100 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil
	}
	return r
}

// renderHelp renders the markdown help with panic recovery; glamour can
// choke on odd terminal capabilities and plain text is an acceptable
// fallback.
func (a App) renderHelp() (out string) {
	defer func() {
		if r := recover(); r != nil {
			out = helpText
		}
	}()

	if a.renderer == nil {
		return helpText
	}

	rendered, err := a.renderer.Render(helpText)
	if err != nil {
		return helpText
	}
	return rendered
}
