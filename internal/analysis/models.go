package analysis

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Column is a named column descriptor used to assemble a Table.
type Column struct {
	Name   string
	Values []float64
}

// Table is a dense numeric table with one name per column. Rows are sample
// points (wavenumbers or time samples) and columns are quantities.
type Table struct {
	Columns []string
	data    *mat.Dense
}

// Dims returns the number of rows and columns.
func (t *Table) Dims() (rows, cols int) { return t.data.Dims() }

// At returns the value in row i, column j.
func (t *Table) At(i, j int) float64 { return t.data.At(i, j) }

// Row returns a copy of row i.
func (t *Table) Row(i int) []float64 { return mat.Row(nil, i, t.data) }

// Col returns a copy of column j.
func (t *Table) Col(j int) []float64 { return mat.Col(nil, j, t.data) }

// ColumnByName returns a copy of the named column.
func (t *Table) ColumnByName(name string) ([]float64, bool) {
	for j, c := range t.Columns {
		if c == name {
			return t.Col(j), true
		}
	}
	return nil, false
}

// Matrix exposes the table values as a read-only gonum matrix.
func (t *Table) Matrix() mat.Matrix { return t.data }

// TableBuilder assembles a Table of a fixed row count from column
// descriptors. Errors are deferred to Build.
type TableBuilder struct {
	rows int
	cols []Column
	err  error
}

// NewTableBuilder starts a table with the given number of rows.
func NewTableBuilder(rows int) *TableBuilder {
	return &TableBuilder{rows: rows}
}

// Add appends a column. The values are copied when the table is built.
func (b *TableBuilder) Add(name string, values []float64) *TableBuilder {
	if b.err != nil {
		return b
	}
	if name == "" {
		b.err = fmt.Errorf("column %d has no name", len(b.cols))
		return b
	}
	if len(values) != b.rows {
		b.err = fmt.Errorf("column '%s' has %d rows, expected %d", name, len(values), b.rows)
		return b
	}
	b.cols = append(b.cols, Column{Name: name, Values: values})
	return b
}

// AddColumns appends every descriptor in cols.
func (b *TableBuilder) AddColumns(cols ...Column) *TableBuilder {
	for _, c := range cols {
		b.Add(c.Name, c.Values)
	}
	return b
}

// Build returns the assembled table.
func (b *TableBuilder) Build() (*Table, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.rows <= 0 || len(b.cols) == 0 {
		return nil, fmt.Errorf("cannot build a %dx%d table", b.rows, len(b.cols))
	}
	data := mat.NewDense(b.rows, len(b.cols), nil)
	names := make([]string, len(b.cols))
	for j, c := range b.cols {
		data.SetCol(j, c.Values)
		names[j] = c.Name
	}
	return &Table{Columns: names, data: data}, nil
}

// Primordial holds the parameters of the primordial curvature spectrum.
type Primordial struct {
	AmplitudeS    float64 // A_s
	SpectralIndex float64 // n_s
	PivotScale    float64 // k_pivot in 1/Mpc
}

// Validate checks that the parameters can be used in a power-law spectrum.
func (p Primordial) Validate() error {
	if !(p.PivotScale > 0) {
		return fmt.Errorf("pivot scale must be positive, got %g", p.PivotScale)
	}
	if !(p.AmplitudeS > 0) {
		return fmt.Errorf("primordial amplitude must be positive, got %g", p.AmplitudeS)
	}
	return nil
}

// SigmaResult is the smoothed density fluctuation of one density function.
type SigmaResult struct {
	Title    string  `json:"title"`
	Radius   float64 `json:"radius_mpc"`
	Variance float64 `json:"variance"`
	Sigma    float64 `json:"sigma"`
}
