package rain

// Column is a fixed-length vertical buffer. Index 0 is the top row. None of
// its operations change its length.
type Column struct {
	cells []Cell
}

func NewColumn(rows int) Column {
	return Column{cells: make([]Cell, rows)}
}

func (c *Column) Len() int { return len(c.cells) }

func (c *Column) At(i int) Cell { return c.cells[i] }

func (c *Column) Set(i int, cell Cell) { c.cells[i] = cell }

// ShiftDown moves every cell one row down, discarding the bottom cell, and
// places head at the top.
func (c *Column) ShiftDown(head Cell) {
	c.InsertAt(0, head)
}

// InsertAt places cell at index i and moves the cells from i onwards one row
// down, discarding the bottom cell.
func (c *Column) InsertAt(i int, cell Cell) {
	n := len(c.cells)
	if i >= n {
		return
	}
	copy(c.cells[i+1:], c.cells[i:n-1])
	c.cells[i] = cell
}

// FirstEmpty returns the index of the topmost empty cell, or -1 when the
// column is full.
func (c *Column) FirstEmpty() int {
	for i, cell := range c.cells {
		if cell == Empty {
			return i
		}
	}
	return -1
}

func (c *Column) Idle() bool {
	for _, cell := range c.cells {
		if cell != Empty {
			return false
		}
	}
	return true
}

func (c *Column) State() TrailState {
	switch {
	case len(c.cells) > 0 && c.cells[0] != Empty:
		return Attached
	case c.Idle():
		return Idle
	default:
		return Detached
	}
}

// Clear empties every cell.
func (c *Column) Clear() {
	for i := range c.cells {
		c.cells[i] = Empty
	}
}

func (c *Column) Clone() Column {
	cells := make([]Cell, len(c.cells))
	copy(cells, c.cells)
	return Column{cells: cells}
}

// String renders the column top to bottom, spaces for empty cells.
func (c *Column) String() string {
	rs := make([]rune, len(c.cells))
	for i, cell := range c.cells {
		rs[i] = cell.Rune()
	}
	return string(rs)
}
