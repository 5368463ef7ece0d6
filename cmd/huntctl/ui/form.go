package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"huntctl/internal/client"
	"huntctl/internal/form"
	"huntctl/internal/hunt"
)

// =============================================================================
// MESSAGES
// =============================================================================

type (
	// solvedMsg carries a successful solve response.
	solvedMsg struct{ result *hunt.SolveResult }

	// solveFailedMsg carries the single human-readable error for a failed
	// solve attempt.
	solveFailedMsg struct{ message string }
)

// =============================================================================
// FOCUS
// =============================================================================

type fieldKind int

const (
	fieldN fieldKind = iota
	fieldM
	fieldP
	fieldCell
)

// focusRef identifies the currently focused input. row/col are only
// meaningful for fieldCell.
type focusRef struct {
	kind fieldKind
	row  int
	col  int
}

// =============================================================================
// MODEL
// =============================================================================

// FormModel is the problem entry form: three scalar fields, a dynamically
// sized cell grid, and the solve flow. The flow is idle → pending →
// (success | failure) → idle, serialized by the solving flag which
// disables the trigger; there is no cancellation.
type FormModel struct {
	state *form.State
	errs  form.Errors

	nInput textinput.Model
	mInput textinput.Model
	pInput textinput.Model
	cells  [][]textinput.Model
	focus  focusRef

	solving  bool
	result   *hunt.SolveResult
	solveErr string

	spinner spinner.Model
	client  *client.Client
	styles  Styles
}

// NewFormModel creates an empty form bound to the given service client.
func NewFormModel(c *client.Client, styles Styles) FormModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	m := FormModel{
		state:   form.NewState(),
		errs:    form.Errors{Cells: map[string]string{}},
		nInput:  newScalarInput("rows"),
		mInput:  newScalarInput("cols"),
		pInput:  newScalarInput("max"),
		spinner: sp,
		client:  c,
		styles:  styles,
	}
	m.nInput.Focus()
	return m
}

func newScalarInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 4
	ti.Width = 6
	ti.Prompt = ""
	return ti
}

func newCellInput(value string) textinput.Model {
	ti := textinput.New()
	ti.CharLimit = 9
	ti.Width = 4
	ti.Prompt = ""
	ti.Placeholder = "·"
	ti.SetValue(value)
	return ti
}

// Init starts nothing; the spinner only ticks while a request is pending.
func (m FormModel) Init() tea.Cmd {
	return textinput.Blink
}

// Solving reports whether a solve request is in flight; the parent model
// uses it to keep global keys from re-triggering the flow.
func (m FormModel) Solving() bool {
	return m.solving
}

// =============================================================================
// UPDATE
// =============================================================================

// Update handles messages for the form.
func (m FormModel) Update(msg tea.Msg) (FormModel, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !m.solving {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case solvedMsg:
		m.solving = false
		m.result = msg.result
		m.solveErr = ""
		return m, nil

	case solveFailedMsg:
		m.solving = false
		m.result = nil
		m.solveErr = msg.message
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "enter", "down":
			m.blurCurrent()
			m.focus = m.nextFocus(m.focus)
			return m.focusCurrent(), nil
		case "shift+tab", "up":
			m.blurCurrent()
			m.focus = m.prevFocus(m.focus)
			return m.focusCurrent(), nil
		case "left", "right":
			// Grid navigation; in scalar fields the arrows move the cursor.
			if m.focus.kind == fieldCell {
				m.blurCurrent()
				if msg.String() == "left" {
					m.focus = m.prevFocus(m.focus)
				} else {
					m.focus = m.nextFocus(m.focus)
				}
				return m.focusCurrent(), nil
			}
		case "ctrl+s":
			return m.submit()
		}
		return m.updateFocusedInput(msg)
	}

	return m, nil
}

// updateFocusedInput routes a key to the focused textinput, then pulls the
// sanitized value back into the form state. Dimension edits reshape the
// grid immediately.
func (m FormModel) updateFocusedInput(msg tea.KeyMsg) (FormModel, tea.Cmd) {
	var cmd tea.Cmd

	switch m.focus.kind {
	case fieldN:
		m.nInput, cmd = m.nInput.Update(msg)
		m.state.SetN(m.nInput.Value())
		m.setScalarValue(&m.nInput, m.state.N)
		m.syncGrid()
	case fieldM:
		m.mInput, cmd = m.mInput.Update(msg)
		m.state.SetM(m.mInput.Value())
		m.setScalarValue(&m.mInput, m.state.M)
		m.syncGrid()
	case fieldP:
		m.pInput, cmd = m.pInput.Update(msg)
		m.state.SetP(m.pInput.Value())
		m.setScalarValue(&m.pInput, m.state.P)
	case fieldCell:
		r, c := m.focus.row, m.focus.col
		if r < len(m.cells) && c < len(m.cells[r]) {
			m.cells[r][c], cmd = m.cells[r][c].Update(msg)
			m.state.SetCell(r, c, m.cells[r][c].Value())
			if v := m.state.Cell(r, c); v != m.cells[r][c].Value() {
				m.cells[r][c].SetValue(v)
				m.cells[r][c].CursorEnd()
			}
		}
	}

	return m, cmd
}

// setScalarValue writes the sanitized canonical value back into a scalar
// input when filtering changed it ("007" shows as "7").
func (m *FormModel) setScalarValue(ti *textinput.Model, v string) {
	if ti.Value() != v {
		ti.SetValue(v)
		ti.CursorEnd()
	}
}

// syncGrid reshapes the cell inputs to the state's grid, preserving values
// through the state buffer. Focus is clamped back into bounds.
func (m *FormModel) syncGrid() {
	rows, cols := m.state.Rows(), m.state.Cols()

	next := make([][]textinput.Model, rows)
	for r := 0; r < rows; r++ {
		next[r] = make([]textinput.Model, cols)
		for c := 0; c < cols; c++ {
			if r < len(m.cells) && c < len(m.cells[r]) {
				next[r][c] = m.cells[r][c]
				next[r][c].SetValue(m.state.Cell(r, c))
			} else {
				next[r][c] = newCellInput(m.state.Cell(r, c))
			}
		}
	}
	m.cells = next

	if m.focus.kind == fieldCell {
		if m.focus.row >= rows || m.focus.col >= cols {
			m.focus = focusRef{kind: fieldP}
			m.pInput.Focus()
		}
	}
}

// blurCurrent removes focus from the active input and records its partial
// validation result, mirroring on-blur validation.
func (m *FormModel) blurCurrent() {
	switch m.focus.kind {
	case fieldN:
		m.nInput.Blur()
		m.errs.N = m.state.ValidateField("n")
	case fieldM:
		m.mInput.Blur()
		m.errs.M = m.state.ValidateField("m")
	case fieldP:
		m.pInput.Blur()
		m.errs.P = m.state.ValidateField("p")
	case fieldCell:
		r, c := m.focus.row, m.focus.col
		if r < len(m.cells) && c < len(m.cells[r]) {
			m.cells[r][c].Blur()
			if m.errs.Cells == nil {
				m.errs.Cells = map[string]string{}
			}
			if msg := m.state.ValidateCell(r, c); msg != "" {
				m.errs.Cells[form.CellKey(r, c)] = msg
			} else {
				delete(m.errs.Cells, form.CellKey(r, c))
			}
		}
	}
}

func (m FormModel) focusCurrent() FormModel {
	switch m.focus.kind {
	case fieldN:
		m.nInput.Focus()
	case fieldM:
		m.mInput.Focus()
	case fieldP:
		m.pInput.Focus()
	case fieldCell:
		r, c := m.focus.row, m.focus.col
		if r < len(m.cells) && c < len(m.cells[r]) {
			m.cells[r][c].Focus()
		}
	}
	return m
}

// nextFocus advances row-major: N → M → P → cells → back to N.
func (m FormModel) nextFocus(f focusRef) focusRef {
	rows, cols := m.state.Rows(), m.state.Cols()

	switch f.kind {
	case fieldN:
		return focusRef{kind: fieldM}
	case fieldM:
		return focusRef{kind: fieldP}
	case fieldP:
		if rows > 0 && cols > 0 {
			return focusRef{kind: fieldCell}
		}
		return focusRef{kind: fieldN}
	case fieldCell:
		if f.col+1 < cols {
			return focusRef{kind: fieldCell, row: f.row, col: f.col + 1}
		}
		if f.row+1 < rows {
			return focusRef{kind: fieldCell, row: f.row + 1}
		}
		return focusRef{kind: fieldN}
	}
	return focusRef{kind: fieldN}
}

func (m FormModel) prevFocus(f focusRef) focusRef {
	rows, cols := m.state.Rows(), m.state.Cols()

	switch f.kind {
	case fieldN:
		if rows > 0 && cols > 0 {
			return focusRef{kind: fieldCell, row: rows - 1, col: cols - 1}
		}
		return focusRef{kind: fieldP}
	case fieldM:
		return focusRef{kind: fieldN}
	case fieldP:
		return focusRef{kind: fieldM}
	case fieldCell:
		if f.col > 0 {
			return focusRef{kind: fieldCell, row: f.row, col: f.col - 1}
		}
		if f.row > 0 {
			return focusRef{kind: fieldCell, row: f.row - 1, col: cols - 1}
		}
		return focusRef{kind: fieldP}
	}
	return focusRef{kind: fieldN}
}

// =============================================================================
// SOLVE FLOW
// =============================================================================

// submit runs the authoritative validation pass and, when clean, fires the
// solve request. A pending request disables the trigger entirely.
func (m FormModel) submit() (FormModel, tea.Cmd) {
	if m.solving {
		return m, nil
	}
	if !m.state.CanSubmit() {
		return m, nil
	}

	m.errs = m.state.Validate()
	if !m.errs.Empty() {
		return m, nil
	}

	problem, err := m.state.Problem()
	if err != nil {
		m.solveErr = err.Error()
		return m, nil
	}

	m.solving = true
	m.result = nil
	m.solveErr = ""
	return m, tea.Batch(m.spinner.Tick, solveCmd(m.client, problem))
}

// solveCmd issues the request off the update loop and resolves to exactly
// one terminal message.
func solveCmd(c *client.Client, problem hunt.Problem) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), client.DefaultTimeout)
		defer cancel()

		result, err := c.Solve(ctx, problem)
		if err != nil {
			return solveFailedMsg{message: err.Error()}
		}
		return solvedMsg{result: result}
	}
}

// =============================================================================
// VIEW
// =============================================================================

// View renders the form, the grid, and the result or error panel.
func (m FormModel) View() string {
	var sb strings.Builder

	sb.WriteString(m.styles.Title.Render("New Problem"))
	sb.WriteString("\n")

	sb.WriteString(m.renderScalar("Rows (N)", m.nInput, m.errs.N))
	sb.WriteString(m.renderScalar("Columns (M)", m.mInput, m.errs.M))
	sb.WriteString(m.renderScalar("Max value (P)", m.pInput, m.errs.P))
	sb.WriteString("\n")

	if grid := m.renderGrid(); grid != "" {
		sb.WriteString(grid)
		sb.WriteString("\n")
	}

	sb.WriteString(m.renderTrigger())
	sb.WriteString("\n")

	if m.solveErr != "" {
		sb.WriteString("\n")
		sb.WriteString(m.styles.Error.Render("Error: " + m.solveErr))
		sb.WriteString("\n")
	}
	if m.result != nil {
		sb.WriteString("\n")
		panel := fmt.Sprintf("%s\n%s",
			m.styles.Body.Render(fmt.Sprintf("Calculation ID: %d", m.result.ID)),
			m.styles.Success.Render(fmt.Sprintf("Minimum Fuel Required: %d", m.result.MinimumFuel)))
		sb.WriteString(m.styles.Panel.Render(panel))
		sb.WriteString("\n")
	}

	return sb.String()
}

func (m FormModel) renderScalar(label string, ti textinput.Model, errMsg string) string {
	line := m.styles.Label.Render(label) + " " + ti.View()
	if errMsg != "" {
		line += "  " + m.styles.FieldError.Render(errMsg)
	}
	return line + "\n"
}

// renderGrid draws the editable matrix; cell errors are summarized below
// it so the grid itself stays compact.
func (m FormModel) renderGrid() string {
	if len(m.cells) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(m.styles.Label.Render("Matrix"))
	sb.WriteString("\n")

	for r := range m.cells {
		for c := range m.cells[r] {
			cell := m.cells[r][c].View()
			if m.focus.kind == fieldCell && m.focus.row == r && m.focus.col == c {
				sb.WriteString(m.styles.FieldFocused.Render(cell))
			} else if m.errs.Cell(r, c) != "" {
				sb.WriteString(m.styles.FieldError.Render("[" + cell + "]"))
			} else {
				sb.WriteString(m.styles.FieldBlurred.Render(cell))
			}
		}
		sb.WriteString("\n")
	}

	// One line per distinct cell error, worst offenders first by position.
	for r := range m.cells {
		for c := range m.cells[r] {
			if msg := m.errs.Cell(r, c); msg != "" {
				sb.WriteString(m.styles.FieldError.Render(
					fmt.Sprintf("cell %d,%d: %s", r+1, c+1, msg)))
				sb.WriteString("\n")
			}
		}
	}

	return sb.String()
}

// renderTrigger shows the solve hint, the disabled state while a request
// is pending, or the spinner.
func (m FormModel) renderTrigger() string {
	if m.solving {
		return m.spinner.View() + m.styles.Muted.Render(" solving…")
	}
	if !m.state.CanSubmit() {
		return m.styles.Disabled.Render("[ctrl+s] Solve (fill in all fields)")
	}
	return m.styles.Info.Render("[ctrl+s] Solve")
}
