package rain

import (
	"errors"
	"testing"
)

func TestRules_Advance(t *testing.T) {
	tests := []struct {
		name  string
		col   string
		brk   int
		draws []int
		want  string
	}{
		{"idle stays idle", "     ", 10, []int{1}, "     "},
		{"idle spawns", "     ", 10, []int{0, 2}, "C    "},
		{"detached falls", " A   ", 10, []int{0, 5}, "  A  "},
		{"detached falls and restarts", " A   ", 10, []int{0, 0, 1}, "B A  "},
		{"detached restarts without falling", " A   ", 10, []int{1, 0, 0}, "AA   "},
		{"detached holds", " A   ", 10, []int{1, 3}, " A   "},
		{"attached breaks on draw", "AB   ", 0, []int{1}, " AB  "},
		{"attached forced at bottom", "AB ", 10, []int{0}, " AB"},
		{"full column breaks", "ABC", 10, nil, " AB"},
		{"attached grows", "A B  ", 10, []int{0, 0, 2}, "AC B "},
		{"attached flickers tail", "AB   ", 10, []int{0, 1, 0, 2}, "AC   "},
		{"attached unchanged", "AB   ", 10, []int{1, 1, 1}, "AB   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			p.Break = tt.brk
			r := Rules{Params: p, Glyphs: testGlyphs, Columns: 3}

			col := columnOf(tt.col)
			src := script(tt.draws...)
			r.Advance(&col, src)

			if got := col.String(); got != tt.want {
				t.Errorf("Advance(%q) = %q, want %q", tt.col, got, tt.want)
			}
			if src.remaining() != 0 {
				t.Errorf("%d scripted draws left unused", src.remaining())
			}
		})
	}
}

func TestRules_SpawnOverride(t *testing.T) {
	p := DefaultParams()
	p.Spawn = 1
	r := Rules{Params: p, Glyphs: testGlyphs, Columns: 500}

	col := NewColumn(4)
	r.Advance(&col, script(0, 1))
	if got := col.String(); got != "B   " {
		t.Errorf("Advance() = %q, want %q", got, "B   ")
	}
}

func TestNewEngine_Errors(t *testing.T) {
	tests := []struct {
		name  string
		opts  Options
		field string
	}{
		{"zero columns", Options{Columns: 0, Rows: 5, Params: DefaultParams(), Glyphs: testGlyphs}, "columns"},
		{"zero rows", Options{Columns: 5, Rows: 0, Params: DefaultParams(), Glyphs: testGlyphs}, "rows"},
		{"negative rows", Options{Columns: 5, Rows: -3, Params: DefaultParams(), Glyphs: testGlyphs}, "rows"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewEngine(tt.opts)
			var cfgErr ConfigurationError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("expected ConfigurationError, got %v", err)
			}
			if cfgErr.Field != tt.field {
				t.Errorf("Field = %q, want %q", cfgErr.Field, tt.field)
			}
		})
	}

	if _, err := NewEngine(Options{Columns: 2, Rows: 2, Params: DefaultParams()}); err == nil {
		t.Error("expected error for empty glyph palette")
	}

	bad := DefaultParams()
	bad.FallDrop = 0
	if _, err := NewEngine(Options{Columns: 2, Rows: 2, Params: bad, Glyphs: testGlyphs}); err == nil {
		t.Error("expected error for zero fall_drop")
	}
}

func TestConfigurationError(t *testing.T) {
	err := ConfigurationError{Field: "rows", Value: 0}
	expected := "invalid rows: 0 (must be positive)"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
}

func TestEngine_SingleCell(t *testing.T) {
	e, err := NewEngine(Options{Columns: 1, Rows: 1, Params: DefaultParams(), Glyphs: testGlyphs, Seed: 7})
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	comp := NewCompositor(testStyles, 1)

	e.Step()
	if !e.Grid().At(0, 0).Occupied() {
		t.Fatal("tick 1: expected the cell to be occupied")
	}
	if tier := comp.Classify(e.Grid())[0][0]; tier != DimGreen {
		t.Errorf("tick 1: tier = %v, want %v", tier, DimGreen)
	}

	e.Step()
	if e.Grid().At(0, 0).Occupied() {
		t.Error("tick 2: expected the cell to break free and empty")
	}
	if e.Ticks() != 2 {
		t.Errorf("Ticks() = %d, want 2", e.Ticks())
	}
}

func TestEngine_ScriptedThreeByFive(t *testing.T) {
	p := DefaultParams()
	p.Break = 0
	src := script(
		// tick 1
		0, 0, 1, 0, 2,
		// tick 2
		0, 0, 1, 0, 1, 0, 5, 0, 0,
		// tick 3
		1, 0, 0, 2, 0, 9, 0, 1,
	)
	e, err := NewEngine(Options{Columns: 3, Rows: 5, Params: p, Glyphs: testGlyphs, Source: src})
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	for i := 0; i < 3; i++ {
		e.Step()
	}

	want, _ := GridFromRows(" BB", "AC ", "B  ", "   ", "   ")
	if !e.Grid().Equal(want) {
		t.Errorf("grid after 3 ticks:\n%q\nwant:\n%q", e.Grid().RowStrings(), want.RowStrings())
	}
	if src.remaining() != 0 {
		t.Errorf("%d scripted draws left unused", src.remaining())
	}

	frame := NewCompositor(testStyles, 1).Composite(e.Grid(), Tiered)
	wantFrame := "{_} {w}B{W}B\n{w}A{W}C{_} \n{W}B{_}  \n   \n   \n"
	if frame != wantFrame {
		t.Errorf("frame = %q, want %q", frame, wantFrame)
	}
}

func TestEngine_Deterministic(t *testing.T) {
	run := func(workers int) *Grid {
		e, err := NewEngine(Options{Columns: 64, Rows: 20, Params: DefaultParams(), Glyphs: testGlyphs, Seed: 42, Workers: workers})
		if err != nil {
			t.Fatalf("NewEngine: %v", err)
		}
		for i := 0; i < 300; i++ {
			e.Step()
		}
		return e.Grid()
	}

	a := run(1)
	b := run(1)
	c := run(8)
	if !a.Equal(b) {
		t.Error("same seed produced different grids")
	}
	if !a.Equal(c) {
		t.Error("worker count changed the outcome")
	}
}

func TestEngine_Reset(t *testing.T) {
	p := DefaultParams()
	p.Spawn = 1
	e, err := NewEngine(Options{Columns: 4, Rows: 4, Params: p, Glyphs: testGlyphs, Seed: 1})
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	e.Step()
	e.Reset()
	for x := 0; x < 4; x++ {
		if !e.Grid().Column(x).Idle() {
			t.Errorf("column %d not idle after Reset", x)
		}
	}
	if e.Ticks() != 0 {
		t.Errorf("Ticks() = %d after Reset", e.Ticks())
	}
}

func TestParallelFor_CoversRange(t *testing.T) {
	for _, n := range []int{0, 1, 15, 16, 17, 100, 1000} {
		seen := make([]int, n)
		ParallelFor(n, 4, 16, func(start, end int) {
			for i := start; i < end; i++ {
				seen[i]++
			}
		})
		for i, v := range seen {
			if v != 1 {
				t.Fatalf("n=%d: index %d visited %d times", n, i, v)
			}
		}
	}
}
