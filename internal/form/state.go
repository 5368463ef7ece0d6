// Package form holds the treasure hunt input form state and its validation
// rules, independent of any UI toolkit so both the TUI and tests can drive
// it directly.
package form

import (
	"fmt"
	"strconv"
	"strings"

	"huntctl/internal/hunt"
)

// MaxDimension caps N and M so the grid stays renderable in a terminal.
const MaxDimension = 20

// State is the string-typed form buffer. Scalars stay strings until
// submission so partially typed input never loses information; Cells is
// always shaped exactly Rows()×Cols().
type State struct {
	N string
	M string
	P string

	Cells [][]string
}

// NewState returns an empty form with no grid allocated.
func NewState() *State {
	return &State{}
}

// =============================================================================
// KEYSTROKE SANITIZERS
// =============================================================================

// SanitizeDimension filters raw input for the N, M and P fields: digits
// only, leading zeros stripped ("007" becomes "7"), and a bare zero is
// rejected outright so the field reads as unset.
func SanitizeDimension(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	s := strings.TrimLeft(b.String(), "0")
	return s
}

// SanitizeCell filters raw input for a matrix cell: digits only. Empty and
// zero values are allowed here as intermediate states; the validator flags
// them before submission.
func SanitizeCell(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// =============================================================================
// SCALAR FIELDS
// =============================================================================

// SetN sanitizes and stores the row count, then reshapes the grid.
func (s *State) SetN(raw string) {
	s.N = clampDimension(SanitizeDimension(raw))
	s.Resize()
}

// SetM sanitizes and stores the column count, then reshapes the grid.
func (s *State) SetM(raw string) {
	s.M = clampDimension(SanitizeDimension(raw))
	s.Resize()
}

// SetP sanitizes and stores the value cap. P does not affect grid shape.
func (s *State) SetP(raw string) {
	s.P = SanitizeDimension(raw)
}

// clampDimension caps a sanitized dimension string at MaxDimension.
func clampDimension(v string) string {
	if v == "" {
		return v
	}
	if n, err := strconv.Atoi(v); err == nil && n > MaxDimension {
		return strconv.Itoa(MaxDimension)
	}
	return v
}

// Rows returns the parsed row count, 0 when N is unset.
func (s *State) Rows() int {
	n, err := strconv.Atoi(s.N)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// Cols returns the parsed column count, 0 when M is unset.
func (s *State) Cols() int {
	m, err := strconv.Atoi(s.M)
	if err != nil || m < 0 {
		return 0
	}
	return m
}

// Cap returns the parsed value cap, 0 when P is unset.
func (s *State) Cap() int {
	p, err := strconv.Atoi(s.P)
	if err != nil || p < 0 {
		return 0
	}
	return p
}

// =============================================================================
// GRID
// =============================================================================

// Resize rebuilds Cells to the current Rows()×Cols(), preserving every
// previously entered value whose index is valid in both the old and new
// dimensions. Cells outside the new bounds are discarded; new cells start
// empty.
func (s *State) Resize() {
	rows, cols := s.Rows(), s.Cols()

	next := make([][]string, rows)
	for r := 0; r < rows; r++ {
		next[r] = make([]string, cols)
		if r >= len(s.Cells) {
			continue
		}
		for c := 0; c < cols && c < len(s.Cells[r]); c++ {
			next[r][c] = s.Cells[r][c]
		}
	}
	s.Cells = next
}

// SetCell sanitizes and stores one matrix cell. Out-of-bounds writes are
// ignored; the grid shape is owned by Resize.
func (s *State) SetCell(row, col int, raw string) {
	if row < 0 || row >= len(s.Cells) || col < 0 || col >= len(s.Cells[row]) {
		return
	}
	s.Cells[row][col] = SanitizeCell(raw)
}

// Cell returns the buffered value at row,col, empty when out of bounds.
func (s *State) Cell(row, col int) string {
	if row < 0 || row >= len(s.Cells) || col < 0 || col >= len(s.Cells[row]) {
		return ""
	}
	return s.Cells[row][col]
}

// CellKey is the "row-col" key used by the validation error map.
func CellKey(row, col int) string {
	return fmt.Sprintf("%d-%d", row, col)
}

// =============================================================================
// SUBMISSION
// =============================================================================

// CanSubmit is the loose gate for enabling the solve trigger: all three
// scalars parse positive and the grid matches the declared dimensions. The
// authoritative check is Validate.
func (s *State) CanSubmit() bool {
	rows, cols := s.Rows(), s.Cols()
	if rows <= 0 || cols <= 0 || s.Cap() <= 0 {
		return false
	}
	if len(s.Cells) != rows {
		return false
	}
	for _, row := range s.Cells {
		if len(row) != cols {
			return false
		}
	}
	return true
}

// Problem builds the typed request object from the current buffer. It
// requires a clean Validate pass and fails otherwise.
func (s *State) Problem() (hunt.Problem, error) {
	if errs := s.Validate(); !errs.Empty() {
		return hunt.Problem{}, fmt.Errorf("form has %d invalid fields", errs.Count())
	}

	rows, cols := s.Rows(), s.Cols()
	matrix := make([][]int, rows)
	for r := 0; r < rows; r++ {
		matrix[r] = make([]int, cols)
		for c := 0; c < cols; c++ {
			v, err := strconv.Atoi(s.Cells[r][c])
			if err != nil {
				return hunt.Problem{}, fmt.Errorf("cell %s: %w", CellKey(r, c), err)
			}
			matrix[r][c] = v
		}
	}

	return hunt.Problem{N: rows, M: cols, P: s.Cap(), Matrix: matrix}, nil
}
