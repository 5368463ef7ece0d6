package form

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeDimension(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "7", "7"},
		{"leading zeros stripped", "007", "7"},
		{"bare zero rejected", "0", ""},
		{"all zeros rejected", "000", ""},
		{"letters dropped", "1a2", "12"},
		{"empty", "", ""},
		{"mixed garbage", "x0y3", "3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeDimension(tt.in))
		})
	}
}

func TestSanitizeCell(t *testing.T) {
	assert.Equal(t, "12", SanitizeCell("12"))
	assert.Equal(t, "0", SanitizeCell("0"), "zero is a legal intermediate cell value")
	assert.Equal(t, "", SanitizeCell("abc"))
	assert.Equal(t, "34", SanitizeCell("3a4"))
}

func TestSetDimensionNormalizes(t *testing.T) {
	s := NewState()

	s.SetN("007")
	assert.Equal(t, "7", s.N)

	s.SetN("0")
	assert.Equal(t, "", s.N, "a bare zero leaves the field unset")
}

func TestSetDimensionClampsToMax(t *testing.T) {
	s := NewState()
	s.SetN("999")
	assert.Equal(t, "20", s.N)
	assert.Len(t, s.Cells, MaxDimension)
}

func TestResizePreservesOverlap(t *testing.T) {
	s := NewState()
	s.SetN("3")
	s.SetM("3")
	require.Len(t, s.Cells, 3)

	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			s.SetCell(r, c, CellKey(r+1, c+1))
		}
	}

	// Shrink: overlapping submatrix survives, the rest is discarded.
	s.SetN("2")
	s.SetM("2")
	want := [][]string{
		{"1-1", "1-2"},
		{"2-1", "2-2"},
	}
	if diff := cmp.Diff(want, s.Cells); diff != "" {
		t.Errorf("grid after shrink mismatch (-want +got):\n%s", diff)
	}

	// Grow again: the kept values stay, new cells start empty.
	s.SetM("4")
	want = [][]string{
		{"1-1", "1-2", "", ""},
		{"2-1", "2-2", "", ""},
	}
	if diff := cmp.Diff(want, s.Cells); diff != "" {
		t.Errorf("grid after grow mismatch (-want +got):\n%s", diff)
	}
}

func TestResizeToUnsetDimensionEmptiesGrid(t *testing.T) {
	s := NewState()
	s.SetN("2")
	s.SetM("2")
	s.SetCell(0, 0, "5")

	s.SetN("0") // rejected, field unset
	assert.Equal(t, "", s.N)
	assert.Empty(t, s.Cells)

	// Restoring the dimension starts from a clean grid.
	s.SetN("2")
	assert.Equal(t, "", s.Cell(0, 0))
}

func TestSetCellOutOfBoundsIgnored(t *testing.T) {
	s := NewState()
	s.SetN("2")
	s.SetM("2")

	s.SetCell(5, 5, "9")
	s.SetCell(-1, 0, "9")
	assert.Equal(t, "", s.Cell(5, 5))
}

func TestCanSubmit(t *testing.T) {
	s := NewState()
	assert.False(t, s.CanSubmit(), "empty form")

	s.SetN("2")
	s.SetM("2")
	assert.False(t, s.CanSubmit(), "P unset")

	s.SetP("3")
	assert.True(t, s.CanSubmit(), "dimensions match and scalars positive; cells need not be filled for enablement")
}

func TestProblemBuildsExactMatrix(t *testing.T) {
	s := NewState()
	s.SetN("2")
	s.SetM("2")
	s.SetP("3")
	s.SetCell(0, 0, "1")
	s.SetCell(0, 1, "2")
	s.SetCell(1, 0, "3")
	s.SetCell(1, 1, "1")

	p, err := s.Problem()
	require.NoError(t, err)
	assert.Equal(t, 2, p.N)
	assert.Equal(t, 2, p.M)
	assert.Equal(t, 3, p.P)
	assert.Equal(t, [][]int{{1, 2}, {3, 1}}, p.Matrix)
}

func TestProblemFailsOnInvalidForm(t *testing.T) {
	s := NewState()
	s.SetN("2")
	s.SetM("2")
	s.SetP("3")
	// one cell left empty
	s.SetCell(0, 0, "1")
	s.SetCell(0, 1, "2")
	s.SetCell(1, 0, "3")

	_, err := s.Problem()
	require.Error(t, err)
}
