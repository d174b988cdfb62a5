package glyphs

import (
	"fmt"
	"sort"
	"unicode"
)

// span returns the runes in [start, end).
func span(start, end rune) []rune {
	out := make([]rune, 0, end-start)
	for r := start; r < end; r++ {
		out = append(out, r)
	}
	return out
}

func concat(parts ...[]rune) []rune {
	var out []rune
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

var (
	Latin    = span(0x21, 0x7F)
	Greek    = concat(span(0x38E, 0x3A2), span(0x3A3, 0x400))
	Cyrillic = span(0x400, 0x500)
	Hebrew   = span(0x5D0, 0x5EB)
	Digits   = span('0', '9'+1)
	Binary   = []rune("01")

	// Classic mixes every script in the order latin, greek, cyrillic, hebrew.
	Classic = concat(Latin, Greek, Cyrillic, Hebrew)
)

var palettes = map[string][]rune{
	"classic":  Classic,
	"latin":    Latin,
	"greek":    Greek,
	"cyrillic": Cyrillic,
	"hebrew":   Hebrew,
	"digits":   Digits,
	"binary":   Binary,
}

// Get returns a copy of the named palette.
func Get(name string) ([]rune, error) {
	p, ok := palettes[name]
	if !ok {
		return nil, fmt.Errorf("unknown palette: %s (available: %v)", name, Names())
	}
	out := make([]rune, len(p))
	copy(out, p)
	return out, nil
}

func Names() []string {
	names := make([]string, 0, len(palettes))
	for name := range palettes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Parse turns a custom alphabet into a palette. Whitespace, control
// characters and duplicates are rejected since they cannot be told apart
// from empty cells or each other.
func Parse(s string) ([]rune, error) {
	seen := make(map[rune]bool)
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if unicode.IsSpace(r) || unicode.IsControl(r) || r == unicode.ReplacementChar {
			return nil, fmt.Errorf("glyph %q is not printable", r)
		}
		if seen[r] {
			continue
		}
		seen[r] = true
		out = append(out, r)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("glyph alphabet is empty")
	}
	return out, nil
}

// Resolve picks the custom alphabet when given, the named palette otherwise.
func Resolve(name, custom string) ([]rune, error) {
	if custom != "" {
		return Parse(custom)
	}
	return Get(name)
}
