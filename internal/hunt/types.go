// Package hunt defines the treasure hunt problem and result types exchanged
// with the solving service. The solver itself lives behind the HTTP API;
// these types only describe its wire contract.
package hunt

import "fmt"

// Problem is an N×M matrix of integers in [1, P] submitted for solving.
type Problem struct {
	N      int     `json:"n"`
	M      int     `json:"m"`
	P      int     `json:"p"`
	Matrix [][]int `json:"matrix"`
}

// SolveResult is the service's answer to a solve request. MinimumFuel is
// opaque to the client and displayed verbatim.
type SolveResult struct {
	ID          int `json:"id"`
	MinimumFuel int `json:"minimumFuel"`
}

// Record is a persisted past calculation retrieved by identifier. It is
// read-only from the client's perspective; the service owns it.
type Record struct {
	ID           int     `json:"id"`
	MinimumFuel  int     `json:"minimumFuel"`
	Input        Problem `json:"input"`
	CalculatedAt string  `json:"calculatedAt"`
}

// Validate checks structural sanity before a problem is sent to the
// service: positive dimensions and cap, matrix shaped exactly N×M, every
// cell in [1, P]. The interactive form performs its own field-level
// validation; this guards the non-interactive path.
func (p Problem) Validate() error {
	if p.N <= 0 {
		return fmt.Errorf("n must be positive, got %d", p.N)
	}
	if p.M <= 0 {
		return fmt.Errorf("m must be positive, got %d", p.M)
	}
	if p.P <= 0 {
		return fmt.Errorf("p must be positive, got %d", p.P)
	}
	if len(p.Matrix) != p.N {
		return fmt.Errorf("matrix has %d rows, want %d", len(p.Matrix), p.N)
	}
	for r, row := range p.Matrix {
		if len(row) != p.M {
			return fmt.Errorf("matrix row %d has %d columns, want %d", r, len(row), p.M)
		}
		for c, v := range row {
			if v < 1 || v > p.P {
				return fmt.Errorf("matrix[%d][%d] = %d is outside [1, %d]", r, c, v, p.P)
			}
		}
	}
	return nil
}
