package ui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"huntctl/internal/client"
	"huntctl/internal/form"
	"huntctl/internal/hunt"
)

type (
	// lookupDoneMsg carries a successfully retrieved record.
	lookupDoneMsg struct{ record *hunt.Record }

	// lookupFailedMsg carries the single human-readable error for a failed
	// lookup.
	lookupFailedMsg struct{ message string }
)

// LookupModel is the search panel: a single id field and the retrieved
// record, including its original matrix rendered read-only. The flow
// mirrors the solve flow and never interleaves with it.
type LookupModel struct {
	idInput   textinput.Model
	searching bool
	record    *hunt.Record
	searchErr string

	spinner spinner.Model
	client  *client.Client
	styles  Styles
}

// NewLookupModel creates an empty lookup panel bound to the service client.
func NewLookupModel(c *client.Client, styles Styles) LookupModel {
	ti := textinput.New()
	ti.Placeholder = "calculation id"
	ti.CharLimit = 12
	ti.Width = 16
	ti.Prompt = ""

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	return LookupModel{
		idInput: ti,
		spinner: sp,
		client:  c,
		styles:  styles,
	}
}

// Init does nothing; the id field is focused by the parent on tab switch.
func (m LookupModel) Init() tea.Cmd {
	return textinput.Blink
}

// Focus gives keyboard focus to the id field.
func (m LookupModel) Focus() LookupModel {
	m.idInput.Focus()
	return m
}

// Blur removes keyboard focus from the id field.
func (m LookupModel) Blur() LookupModel {
	m.idInput.Blur()
	return m
}

// Searching reports whether a lookup is in flight.
func (m LookupModel) Searching() bool {
	return m.searching
}

// Update handles messages for the lookup panel.
func (m LookupModel) Update(msg tea.Msg) (LookupModel, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !m.searching {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case lookupDoneMsg:
		m.searching = false
		m.record = msg.record
		m.searchErr = ""
		return m, nil

	case lookupFailedMsg:
		m.searching = false
		m.record = nil
		m.searchErr = msg.message
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "enter" {
			return m.search()
		}

		var cmd tea.Cmd
		m.idInput, cmd = m.idInput.Update(msg)

		// Ids share the dimension rules: digits only, no leading zeros.
		if v := form.SanitizeDimension(m.idInput.Value()); v != m.idInput.Value() {
			m.idInput.SetValue(v)
			m.idInput.CursorEnd()
		}
		return m, cmd
	}

	return m, nil
}

// search fires the lookup request; the searching flag disables the trigger
// until the request resolves or rejects.
func (m LookupModel) search() (LookupModel, tea.Cmd) {
	if m.searching {
		return m, nil
	}

	id, err := strconv.Atoi(m.idInput.Value())
	if err != nil || id <= 0 {
		m.searchErr = "enter a positive calculation id"
		return m, nil
	}

	m.searching = true
	m.record = nil
	m.searchErr = ""
	return m, tea.Batch(m.spinner.Tick, lookupCmd(m.client, id))
}

func lookupCmd(c *client.Client, id int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), client.DefaultTimeout)
		defer cancel()

		record, err := c.Lookup(ctx, id)
		if err != nil {
			return lookupFailedMsg{message: err.Error()}
		}
		return lookupDoneMsg{record: record}
	}
}

// View renders the lookup field and, when present, the full record.
func (m LookupModel) View() string {
	var sb strings.Builder

	sb.WriteString(m.styles.Title.Render("Find Calculation"))
	sb.WriteString("\n")

	sb.WriteString(m.styles.Label.Render("ID") + " " + m.idInput.View())
	sb.WriteString("\n")

	if m.searching {
		sb.WriteString(m.spinner.View() + m.styles.Muted.Render(" searching…"))
	} else {
		sb.WriteString(m.styles.Info.Render("[enter] Search"))
	}
	sb.WriteString("\n")

	if m.searchErr != "" {
		sb.WriteString("\n")
		sb.WriteString(m.styles.Error.Render("Error: " + m.searchErr))
		sb.WriteString("\n")
	}

	if m.record != nil {
		sb.WriteString("\n")
		sb.WriteString(m.renderRecord(m.record))
	}

	return sb.String()
}

// renderRecord shows a persisted calculation verbatim: id, fuel, original
// input and timestamp.
func (m LookupModel) renderRecord(rec *hunt.Record) string {
	var sb strings.Builder

	sb.WriteString(m.styles.Body.Render(fmt.Sprintf("Calculation ID: %d", rec.ID)))
	sb.WriteString("\n")
	sb.WriteString(m.styles.Success.Render(fmt.Sprintf("Minimum Fuel Required: %d", rec.MinimumFuel)))
	sb.WriteString("\n")
	sb.WriteString(m.styles.Muted.Render(fmt.Sprintf("N=%d  M=%d  P=%d", rec.Input.N, rec.Input.M, rec.Input.P)))
	sb.WriteString("\n")
	if rec.CalculatedAt != "" {
		sb.WriteString(m.styles.Muted.Render("Calculated at " + rec.CalculatedAt))
		sb.WriteString("\n")
	}

	table := NewMatrixTable("Input", rec.Input.Matrix)
	if body := table.View(m.styles); body != "" {
		sb.WriteString("\n")
		sb.WriteString(body)
		sb.WriteString("\n")
	}

	return m.styles.Panel.Render(sb.String())
}
