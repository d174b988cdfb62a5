package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/termrain/internal/glyphs"
	"github.com/san-kum/termrain/internal/rain"
	"github.com/san-kum/termrain/internal/viz"
)

const (
	DefaultFrameInterval = 100 * time.Millisecond
	DefaultPalette       = "classic"
	DefaultTheme         = "classic"
	// DefaultRowMargin is subtracted from the terminal height in stream mode
	// so the trailing newline of the last row never scrolls the screen.
	DefaultRowMargin = 2
)

type Config struct {
	Columns       int           `yaml:"columns"`
	Rows          int           `yaml:"rows"`
	FrameInterval time.Duration `yaml:"frame_interval"`
	Color         bool          `yaml:"color"`
	Palette       string        `yaml:"palette"`
	Glyphs        string        `yaml:"glyphs,omitempty"`
	Theme         string        `yaml:"theme"`
	Seed          int64         `yaml:"seed"`
	Workers       int           `yaml:"workers"`
	Status        bool          `yaml:"status"`
	Probabilities Probabilities `yaml:"probabilities"`
}

// Probabilities are "1 in n" chances, except Break which is the threshold a
// break draw must exceed.
type Probabilities struct {
	Start       int `yaml:"start"`
	Break       int `yaml:"break"`
	Change      int `yaml:"change"`
	LenIncrease int `yaml:"len_increase"`
	FallDrop    int `yaml:"fall_drop"`
	Spawn       int `yaml:"spawn"`
}

func DefaultConfig() *Config {
	return &Config{
		FrameInterval: DefaultFrameInterval,
		Color:         true,
		Palette:       DefaultPalette,
		Theme:         DefaultTheme,
		Probabilities: Probabilities{
			Start:       rain.DefaultStart,
			Break:       rain.DefaultBreak,
			Change:      rain.DefaultChange,
			LenIncrease: rain.DefaultLenIncrease,
			FallDrop:    rain.DefaultFallDrop,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Columns < 0 {
		return fmt.Errorf("columns must not be negative, got %d", c.Columns)
	}
	if c.Rows < 0 {
		return fmt.Errorf("rows must not be negative, got %d", c.Rows)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	if c.FrameInterval <= 0 {
		return fmt.Errorf("frame_interval must be positive, got %v", c.FrameInterval)
	}
	if err := c.Params().Validate(); err != nil {
		return err
	}
	if _, err := c.Alphabet(); err != nil {
		return err
	}
	if _, ok := viz.LookupTheme(c.Theme); !ok {
		return fmt.Errorf("unknown theme: %s (available: %v)", c.Theme, viz.ThemeNames())
	}
	return nil
}

func (c *Config) Params() rain.Params {
	return rain.Params{
		Start:       c.Probabilities.Start,
		Break:       c.Probabilities.Break,
		Change:      c.Probabilities.Change,
		LenIncrease: c.Probabilities.LenIncrease,
		FallDrop:    c.Probabilities.FallDrop,
		Spawn:       c.Probabilities.Spawn,
	}
}

func (c *Config) Alphabet() ([]rune, error) {
	return glyphs.Resolve(c.Palette, c.Glyphs)
}

func (c *Config) Mode() rain.StyleMode {
	if c.Color {
		return rain.Tiered
	}
	return rain.Plain
}

// SeedOrNow returns the configured seed, or a time based one when unset.
func (c *Config) SeedOrNow() int64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return time.Now().UnixNano()
}

// EngineOptions builds engine options for a grid of the given size. The
// dimensions come from the caller since they usually follow the terminal.
func (c *Config) EngineOptions(columns, rows int) (rain.Options, error) {
	alphabet, err := c.Alphabet()
	if err != nil {
		return rain.Options{}, err
	}
	return rain.Options{
		Columns: columns,
		Rows:    rows,
		Params:  c.Params(),
		Glyphs:  alphabet,
		Seed:    c.SeedOrNow(),
		Workers: c.Workers,
	}, nil
}
