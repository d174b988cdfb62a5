package rain

import "fmt"

// Cell is one slot of a column. The zero value is Empty; any other value is
// the glyph occupying the slot.
type Cell rune

const Empty Cell = 0

func (c Cell) Occupied() bool { return c != Empty }

// Rune returns the character drawn for the cell, a space when empty.
func (c Cell) Rune() rune {
	if c == Empty {
		return ' '
	}
	return rune(c)
}

// TrailState classifies a column relative to its top row.
type TrailState int

const (
	Idle TrailState = iota
	Attached
	Detached
)

func (s TrailState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Attached:
		return "attached"
	case Detached:
		return "detached"
	default:
		return "unknown"
	}
}

// Source is the random source consumed by the engine. *rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
}

// ConfigurationError reports a grid dimension the core cannot work with.
type ConfigurationError struct {
	Field string
	Value int
}

func (e ConfigurationError) Error() string {
	return fmt.Sprintf("invalid %s: %d (must be positive)", e.Field, e.Value)
}
