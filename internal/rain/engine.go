package rain

import (
	"fmt"
	"math/rand"
	"runtime"
)

const (
	DefaultStart       = 80 // 1 in n chance a detached column starts a new trail
	DefaultBreak       = 10 // break draws above this free the trail
	DefaultChange      = 2  // 1 in n chance the tail glyph flickers
	DefaultLenIncrease = 10 // 1 in n chance an attached trail grows
	DefaultFallDrop    = 2  // 1 in n chance a detached trail falls

	minColumnsPerWorker = 16
)

// Params holds the tuning constants of the column state machine. Every value
// except Break is a "1 in n" chance.
type Params struct {
	Start       int
	Break       int
	Change      int
	LenIncrease int
	FallDrop    int
	// Spawn is the idle-column spawn chance; 0 uses the column count.
	Spawn int
}

func DefaultParams() Params {
	return Params{
		Start:       DefaultStart,
		Break:       DefaultBreak,
		Change:      DefaultChange,
		LenIncrease: DefaultLenIncrease,
		FallDrop:    DefaultFallDrop,
	}
}

func (p Params) Validate() error {
	checks := []struct {
		name string
		v    int
	}{
		{"start", p.Start},
		{"change", p.Change},
		{"len_increase", p.LenIncrease},
		{"fall_drop", p.FallDrop},
	}
	for _, c := range checks {
		if c.v < 1 {
			return fmt.Errorf("probability %s must be at least 1, got %d", c.name, c.v)
		}
	}
	if p.Break < 0 {
		return fmt.Errorf("probability break must not be negative, got %d", p.Break)
	}
	if p.Spawn < 0 {
		return fmt.Errorf("probability spawn must not be negative, got %d", p.Spawn)
	}
	return nil
}

// Rules advances a single column. It holds no per-column state, so one value
// is shared by every column of a grid.
type Rules struct {
	Params
	Glyphs  []rune
	Columns int
}

func (r Rules) glyph(rng Source) Cell {
	return Cell(r.Glyphs[rng.Intn(len(r.Glyphs))])
}

func (r Rules) spawnChance() int {
	if r.Spawn > 0 {
		return r.Spawn
	}
	if r.Columns > 0 {
		return r.Columns
	}
	return 1
}

// Advance moves col forward one tick, drawing from rng only.
func (r Rules) Advance(col *Column, rng Source) {
	switch col.State() {
	case Idle:
		if rng.Intn(r.spawnChance()) < 1 {
			col.ShiftDown(r.glyph(rng))
		}

	case Detached:
		if rng.Intn(r.FallDrop) < 1 {
			col.ShiftDown(Empty)
		}
		if rng.Intn(r.Start) < 1 {
			col.Set(0, r.glyph(rng))
		}

	case Attached:
		b := col.FirstEmpty()
		if b < 0 {
			// full column: the run already touches the bottom row
			col.ShiftDown(Empty)
			return
		}
		if rng.Intn(b) > r.Break || b+1 == col.Len() {
			col.ShiftDown(Empty)
			return
		}
		switch {
		case rng.Intn(r.LenIncrease) < 1:
			col.InsertAt(b, r.glyph(rng))
		case rng.Intn(r.Change) < 1:
			col.Set(b-1, r.glyph(rng))
		}
	}
}

// Options configures an Engine.
type Options struct {
	Columns int
	Rows    int
	Params  Params
	Glyphs  []rune
	Seed    int64
	// Workers bounds the goroutines used per tick; 0 uses runtime.NumCPU.
	Workers int
	// Source, when set, drives every column in order on one goroutine.
	// Used for scripted draw sequences.
	Source Source
}

// Engine owns the grid and advances it one tick at a time.
type Engine struct {
	grid    *Grid
	rules   Rules
	sources []Source
	workers int
	ticks   int
}

func NewEngine(o Options) (*Engine, error) {
	grid, err := NewGrid(o.Columns, o.Rows)
	if err != nil {
		return nil, err
	}
	if len(o.Glyphs) == 0 {
		return nil, fmt.Errorf("glyph palette is empty")
	}
	if err := o.Params.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		grid:    grid,
		rules:   Rules{Params: o.Params, Glyphs: o.Glyphs, Columns: o.Columns},
		workers: o.Workers,
	}
	if e.workers <= 0 {
		e.workers = runtime.NumCPU()
	}

	if o.Source != nil {
		e.sources = []Source{o.Source}
		e.workers = 1
	} else {
		e.sources = make([]Source, o.Columns)
		for i := range e.sources {
			e.sources[i] = rand.New(rand.NewSource(o.Seed + int64(i)))
		}
	}
	return e, nil
}

func (e *Engine) Grid() *Grid  { return e.grid }
func (e *Engine) Rules() Rules { return e.rules }
func (e *Engine) Ticks() int   { return e.ticks }
func (e *Engine) Workers() int { return e.workers }

func (e *Engine) source(col int) Source {
	if len(e.sources) == 1 {
		return e.sources[0]
	}
	return e.sources[col]
}

// Step advances every column once. It returns after all columns are done.
func (e *Engine) Step() {
	ParallelFor(e.grid.Columns(), e.workers, minColumnsPerWorker, func(start, end int) {
		for x := start; x < end; x++ {
			e.rules.Advance(e.grid.Column(x), e.source(x))
		}
	})
	e.ticks++
}

// Reset empties the grid without touching the random sources.
func (e *Engine) Reset() {
	e.grid.Clear()
	e.ticks = 0
}
