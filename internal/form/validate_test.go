package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fullState builds a 2×3 form with every cell in range for P=5.
func fullState(t *testing.T) *State {
	t.Helper()
	s := NewState()
	s.SetN("2")
	s.SetM("3")
	s.SetP("5")
	values := [][]string{
		{"1", "5", "2"},
		{"3", "4", "1"},
	}
	for r := range values {
		for c := range values[r] {
			s.SetCell(r, c, values[r][c])
		}
	}
	return s
}

func TestValidateCleanForm(t *testing.T) {
	s := fullState(t)
	errs := s.Validate()
	assert.True(t, errs.Empty(), "expected no errors, got %+v", errs)
	assert.Zero(t, errs.Count())
}

func TestValidateReportsExactlyTheBrokenCell(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"empty cell", ""},
		{"zero", "0"},
		{"above cap", "6"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := fullState(t)
			s.SetCell(1, 2, tt.value)

			errs := s.Validate()
			require.False(t, errs.Empty())
			assert.Equal(t, 1, errs.Count(), "exactly one field should be invalid")
			assert.NotEmpty(t, errs.Cell(1, 2))
			assert.Contains(t, errs.Cells, "1-2")
		})
	}
}

func TestValidateMissingScalars(t *testing.T) {
	s := NewState()
	errs := s.Validate()

	assert.Equal(t, msgRequired, errs.N)
	assert.Equal(t, msgRequired, errs.M)
	assert.Equal(t, msgRequired, errs.P)
	assert.Empty(t, errs.Cells, "no grid, no cell errors")
}

func TestValidateCellRangeUsesCap(t *testing.T) {
	s := fullState(t)
	s.SetCell(0, 0, "5")
	assert.True(t, s.Validate().Empty(), "cap value itself is in range")

	s.SetP("4")
	errs := s.Validate()
	assert.Equal(t, "must be between 1 and 4", errs.Cell(0, 0))
}

func TestValidateSkipsRangeWhenCapInvalid(t *testing.T) {
	s := fullState(t)
	s.SetP("") // clear the cap

	errs := s.Validate()
	assert.NotEmpty(t, errs.P)
	// Cells are still required and numeric, but no range check applies.
	assert.Empty(t, errs.Cell(0, 1), "in-range check must not run against an invalid cap")
}

func TestValidateFieldOnBlur(t *testing.T) {
	s := NewState()
	assert.Equal(t, msgRequired, s.ValidateField("n"))

	s.SetN("3")
	assert.Equal(t, "", s.ValidateField("n"))
	assert.Equal(t, "", s.ValidateField("unknown"), "unknown fields are not an error")
}

func TestValidateCellOnBlur(t *testing.T) {
	s := fullState(t)
	assert.Equal(t, "", s.ValidateCell(0, 0))

	s.SetCell(0, 0, "")
	assert.Equal(t, msgRequired, s.ValidateCell(0, 0))

	s.SetCell(0, 0, "9")
	assert.Equal(t, "must be between 1 and 5", s.ValidateCell(0, 0))
}
