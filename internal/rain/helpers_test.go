package rain

import "fmt"

// scriptedSource replays a fixed list of draws.
type scriptedSource struct {
	draws []int
	pos   int
}

func script(draws ...int) *scriptedSource {
	return &scriptedSource{draws: draws}
}

func (s *scriptedSource) Intn(n int) int {
	if s.pos >= len(s.draws) {
		panic(fmt.Sprintf("draw %d requested, only %d scripted", s.pos+1, len(s.draws)))
	}
	v := s.draws[s.pos]
	s.pos++
	if v < 0 || v >= n {
		panic(fmt.Sprintf("scripted draw %d out of range [0, %d)", v, n))
	}
	return v
}

func (s *scriptedSource) remaining() int { return len(s.draws) - s.pos }

func columnOf(s string) Column {
	rs := []rune(s)
	c := NewColumn(len(rs))
	for i, r := range rs {
		if r != ' ' {
			c.Set(i, Cell(r))
		}
	}
	return c
}

var testGlyphs = []rune("ABC")

var testStyles = Styles{
	Foreground: "{fg}",
	Tiers: [tierCount]string{
		Background:  "{_}",
		DimGreen:    "{g}",
		BrightGreen: "{G}",
		DimWhite:    "{w}",
		BrightWhite: "{W}",
	},
}
