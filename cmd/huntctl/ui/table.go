package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// MatrixTable renders an integer matrix read-only, used when displaying a
// retrieved calculation's original input.
type MatrixTable struct {
	Title  string
	Matrix [][]int
}

// NewMatrixTable creates a table over the given matrix.
func NewMatrixTable(title string, matrix [][]int) *MatrixTable {
	return &MatrixTable{Title: title, Matrix: matrix}
}

// View renders the table using the provided styles.
func (t *MatrixTable) View(styles Styles) string {
	if len(t.Matrix) == 0 {
		return ""
	}

	var sb strings.Builder

	if t.Title != "" {
		sb.WriteString(styles.Title.Render(t.Title))
		sb.WriteString("\n")
	}

	// Column width follows the widest value in the matrix.
	width := 1
	for _, row := range t.Matrix {
		for _, v := range row {
			if w := len(strconv.Itoa(v)); w > width {
				width = w
			}
		}
	}

	cellStyle := styles.Body.Padding(0, 1).Width(width + 2).Align(lipgloss.Right)
	sepStyle := styles.Muted

	for i, row := range t.Matrix {
		if i > 0 {
			sb.WriteString("\n")
		}
		for j, v := range row {
			if j > 0 {
				sb.WriteString(sepStyle.Render("│"))
			}
			sb.WriteString(cellStyle.Render(strconv.Itoa(v)))
		}
	}

	return sb.String()
}
