package rain

import "strings"

// Grid is the set of columns making up one screen.
type Grid struct {
	cols []Column
	rows int
}

// NewGrid allocates an empty grid. Zero or negative dimensions are rejected.
func NewGrid(columns, rows int) (*Grid, error) {
	if columns <= 0 {
		return nil, ConfigurationError{Field: "columns", Value: columns}
	}
	if rows <= 0 {
		return nil, ConfigurationError{Field: "rows", Value: rows}
	}
	g := &Grid{cols: make([]Column, columns), rows: rows}
	for i := range g.cols {
		g.cols[i] = NewColumn(rows)
	}
	return g, nil
}

// GridFromRows builds a grid from row strings, top row first. A space is an
// empty cell. Short rows are padded with empty cells.
func GridFromRows(rows ...string) (*Grid, error) {
	width := 0
	runes := make([][]rune, len(rows))
	for i, r := range rows {
		runes[i] = []rune(r)
		if len(runes[i]) > width {
			width = len(runes[i])
		}
	}
	g, err := NewGrid(width, len(rows))
	if err != nil {
		return nil, err
	}
	for y, r := range runes {
		for x, ch := range r {
			if ch != ' ' {
				g.cols[x].Set(y, Cell(ch))
			}
		}
	}
	return g, nil
}

func (g *Grid) Columns() int { return len(g.cols) }
func (g *Grid) Rows() int    { return g.rows }

func (g *Grid) Column(i int) *Column { return &g.cols[i] }

func (g *Grid) At(col, row int) Cell { return g.cols[col].At(row) }

func (g *Grid) Clear() {
	for i := range g.cols {
		g.cols[i].Clear()
	}
}

func (g *Grid) Clone() *Grid {
	c := &Grid{cols: make([]Column, len(g.cols)), rows: g.rows}
	for i := range g.cols {
		c.cols[i] = g.cols[i].Clone()
	}
	return c
}

func (g *Grid) Equal(o *Grid) bool {
	if o == nil || o.rows != g.rows || len(o.cols) != len(g.cols) {
		return false
	}
	for x := range g.cols {
		for y := 0; y < g.rows; y++ {
			if g.cols[x].At(y) != o.cols[x].At(y) {
				return false
			}
		}
	}
	return true
}

// RowStrings returns the grid as row strings, top row first.
func (g *Grid) RowStrings() []string {
	out := make([]string, g.rows)
	var b strings.Builder
	for y := 0; y < g.rows; y++ {
		b.Reset()
		for x := range g.cols {
			b.WriteRune(g.cols[x].At(y).Rune())
		}
		out[y] = b.String()
	}
	return out
}
