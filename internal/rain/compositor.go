package rain

import (
	"runtime"
	"strings"
)

// Tier is the colour class of one cell in one frame.
type Tier uint8

const (
	Background Tier = iota
	DimGreen
	BrightGreen
	DimWhite
	BrightWhite

	tierCount
)

var tierNames = [tierCount]string{"background", "dim_green", "bright_green", "dim_white", "bright_white"}

func (t Tier) String() string {
	if t < tierCount {
		return tierNames[t]
	}
	return "unknown"
}

// Tiers lists every tier from Background to BrightWhite.
func Tiers() []Tier {
	return []Tier{Background, DimGreen, BrightGreen, DimWhite, BrightWhite}
}

// next returns the tier of an occupied cell sitting on a cell of tier below.
func (below Tier) next() Tier {
	switch below {
	case Background:
		return BrightWhite
	case BrightWhite:
		return DimWhite
	case DimWhite:
		return BrightGreen
	default:
		return DimGreen
	}
}

type StyleMode int

const (
	Plain StyleMode = iota
	Tiered
)

func (m StyleMode) String() string {
	if m == Tiered {
		return "tiered"
	}
	return "plain"
}

// Styles maps tiers to opaque tokens written before a cell. Foreground is the
// single token written at the start of a Plain frame. Empty tokens are never
// written.
type Styles struct {
	Foreground string
	Tiers      [tierCount]string
}

func (s Styles) Token(t Tier) string { return s.Tiers[t] }

// Compositor turns a grid into frame text. It keeps its tier buffer between
// frames and must not be shared between goroutines.
type Compositor struct {
	styles  Styles
	workers int
	tiers   [][]Tier
	buf     strings.Builder
}

func NewCompositor(styles Styles, workers int) *Compositor {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Compositor{styles: styles, workers: workers}
}

func (c *Compositor) Styles() Styles { return c.styles }

func (c *Compositor) SetStyles(s Styles) { c.styles = s }

// Classify fills the tier buffer for g and returns it indexed [column][row].
// The returned slices are reused by the next call.
func (c *Compositor) Classify(g *Grid) [][]Tier {
	c.resize(g.Columns(), g.Rows())
	ParallelFor(g.Columns(), c.workers, minColumnsPerWorker, func(start, end int) {
		for x := start; x < end; x++ {
			classifyColumn(g.Column(x), c.tiers[x])
		}
	})
	return c.tiers
}

func classifyColumn(col *Column, tiers []Tier) {
	last := col.Len() - 1
	for y := last; y >= 0; y-- {
		switch {
		case !col.At(y).Occupied():
			tiers[y] = Background
		case y == last:
			// no head glow pinned to the bottom edge
			tiers[y] = DimGreen
		default:
			tiers[y] = tiers[y+1].next()
		}
	}
}

func (c *Compositor) resize(cols, rows int) {
	if len(c.tiers) == cols && (cols == 0 || len(c.tiers[0]) == rows) {
		return
	}
	c.tiers = make([][]Tier, cols)
	for i := range c.tiers {
		c.tiers[i] = make([]Tier, rows)
	}
}

// Composite renders g as one block of text, rows top to bottom, each row
// followed by a newline.
func (c *Compositor) Composite(g *Grid, mode StyleMode) string {
	c.buf.Reset()
	c.buf.Grow(g.Columns()*g.Rows()*2 + g.Rows())

	if mode == Plain {
		c.buf.WriteString(c.styles.Foreground)
		for y := 0; y < g.Rows(); y++ {
			for x := 0; x < g.Columns(); x++ {
				c.buf.WriteRune(g.At(x, y).Rune())
			}
			c.buf.WriteByte('\n')
		}
		return c.buf.String()
	}

	tiers := c.Classify(g)
	cur := tokenCursor{styles: c.styles}
	for y := 0; y < g.Rows(); y++ {
		for x := 0; x < g.Columns(); x++ {
			cur.emit(&c.buf, tiers[x][y])
			c.buf.WriteRune(g.At(x, y).Rune())
		}
		c.buf.WriteByte('\n')
	}
	return c.buf.String()
}

// tokenCursor remembers the last token written so repeated styles are
// skipped.
type tokenCursor struct {
	styles  Styles
	last    Tier
	started bool
}

func (tc *tokenCursor) emit(b *strings.Builder, t Tier) {
	tok := tc.styles.Token(t)
	if tc.started && tok == tc.styles.Token(tc.last) {
		return
	}
	b.WriteString(tok)
	tc.last = t
	tc.started = true
}
