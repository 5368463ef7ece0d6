package form

import (
	"fmt"
	"strconv"
)

// Validation messages. Cell range errors are built per-call because they
// embed the current cap.
const (
	msgRequired = "required"
	msgPositive = "must be a positive number"
)

// Errors is the structured validation result. Zero-value fields mean the
// field is valid; Cells is sparse, keyed "row-col".
type Errors struct {
	N     string
	M     string
	P     string
	Cells map[string]string
}

// Empty reports whether the form validated clean.
func (e Errors) Empty() bool {
	return e.N == "" && e.M == "" && e.P == "" && len(e.Cells) == 0
}

// Count returns the number of invalid fields, cells included.
func (e Errors) Count() int {
	n := len(e.Cells)
	if e.N != "" {
		n++
	}
	if e.M != "" {
		n++
	}
	if e.P != "" {
		n++
	}
	return n
}

// Cell returns the error message for one cell, empty when valid.
func (e Errors) Cell(row, col int) string {
	return e.Cells[CellKey(row, col)]
}

// Validate is the authoritative pass run on submit: every scalar must be
// present and positive, every in-bounds cell present and parseable, and —
// when P itself is valid — within [1, P]. It is pure: callers may run it
// on every blur without side effects.
func (s *State) Validate() Errors {
	errs := Errors{Cells: make(map[string]string)}

	errs.N = validateDimension(s.N)
	errs.M = validateDimension(s.M)
	errs.P = validateDimension(s.P)

	limit := s.Cap()
	for r := range s.Cells {
		for c := range s.Cells[r] {
			if msg := validateCellValue(s.Cells[r][c], limit); msg != "" {
				errs.Cells[CellKey(r, c)] = msg
			}
		}
	}
	return errs
}

// ValidateField re-checks a single scalar field by name; used on blur.
func (s *State) ValidateField(name string) string {
	switch name {
	case "n":
		return validateDimension(s.N)
	case "m":
		return validateDimension(s.M)
	case "p":
		return validateDimension(s.P)
	}
	return ""
}

// ValidateCell re-checks a single cell; used on blur.
func (s *State) ValidateCell(row, col int) string {
	return validateCellValue(s.Cell(row, col), s.Cap())
}

func validateDimension(v string) string {
	if v == "" {
		return msgRequired
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return msgPositive
	}
	return ""
}

// validateCellValue checks one cell value against the cap. The range check
// only applies when the cap is itself valid; an invalid P is reported on
// the P field, not on every cell.
func validateCellValue(v string, limit int) string {
	if v == "" {
		return msgRequired
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return msgPositive
	}
	if limit > 0 && (n < 1 || n > limit) {
		return fmt.Sprintf("must be between 1 and %d", limit)
	}
	if n < 1 {
		return msgPositive
	}
	return ""
}
