package metrics

import "github.com/san-kum/termrain/internal/rain"

// Metric accumulates a value over the grids it observes, one per tick.
type Metric interface {
	Name() string
	Observe(g *rain.Grid)
	Value() float64
	Reset()
}

// mean is the shared running average behind the grid metrics.
type mean struct {
	total   float64
	samples int
}

func (m *mean) add(v float64) {
	m.total += v
	m.samples++
}

func (m *mean) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.total / float64(m.samples)
}

func (m *mean) Reset() {
	m.total = 0
	m.samples = 0
}

// Density is the average fraction of occupied cells.
type Density struct{ mean }

func NewDensity() *Density { return &Density{} }

func (d *Density) Name() string { return "density" }

func (d *Density) Observe(g *rain.Grid) { d.add(Occupancy(g)) }

// Activity is the average fraction of columns that are not idle.
type Activity struct{ mean }

func NewActivity() *Activity { return &Activity{} }

func (a *Activity) Name() string { return "activity" }

func (a *Activity) Observe(g *rain.Grid) {
	active := 0
	for x := 0; x < g.Columns(); x++ {
		if !g.Column(x).Idle() {
			active++
		}
	}
	a.add(float64(active) / float64(g.Columns()))
}

// Attachment is the average fraction of columns still emitting from the top.
type Attachment struct{ mean }

func NewAttachment() *Attachment { return &Attachment{} }

func (a *Attachment) Name() string { return "attached" }

func (a *Attachment) Observe(g *rain.Grid) {
	attached := 0
	for x := 0; x < g.Columns(); x++ {
		if g.Column(x).State() == rain.Attached {
			attached++
		}
	}
	a.add(float64(attached) / float64(g.Columns()))
}

// Trails is the average number of trails on screen.
type Trails struct{ mean }

func NewTrails() *Trails { return &Trails{} }

func (t *Trails) Name() string { return "trails" }

func (t *Trails) Observe(g *rain.Grid) { t.add(float64(CountTrails(g))) }

// Occupancy returns the fraction of occupied cells in g.
func Occupancy(g *rain.Grid) float64 {
	occupied := 0
	for x := 0; x < g.Columns(); x++ {
		col := g.Column(x)
		for y := 0; y < col.Len(); y++ {
			if col.At(y).Occupied() {
				occupied++
			}
		}
	}
	return float64(occupied) / float64(g.Columns()*g.Rows())
}

// CountTrails returns the number of maximal runs of occupied cells.
func CountTrails(g *rain.Grid) int {
	trails := 0
	for x := 0; x < g.Columns(); x++ {
		col := g.Column(x)
		prev := false
		for y := 0; y < col.Len(); y++ {
			occ := col.At(y).Occupied()
			if occ && !prev {
				trails++
			}
			prev = occ
		}
	}
	return trails
}

// Default returns the metrics reported by the stats command.
func Default() []Metric {
	return []Metric{NewDensity(), NewActivity(), NewAttachment(), NewTrails()}
}
