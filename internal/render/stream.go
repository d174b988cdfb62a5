package render

import (
	"context"
	"io"
	"time"

	"github.com/muesli/termenv"

	"github.com/san-kum/termrain/internal/metrics"
	"github.com/san-kum/termrain/internal/rain"
)

// Stream writes frames straight to a terminal, repainting from the home
// position each tick.
type Stream struct {
	out      *termenv.Output
	engine   *rain.Engine
	comp     *rain.Compositor
	mode     rain.StyleMode
	interval time.Duration
	// MaxFrames stops the loop after that many frames; 0 runs until the
	// context is cancelled.
	MaxFrames int
	observers []metrics.Metric
}

func NewStream(w io.Writer, engine *rain.Engine, comp *rain.Compositor, mode rain.StyleMode, interval time.Duration) *Stream {
	return &Stream{
		out:      termenv.NewOutput(w),
		engine:   engine,
		comp:     comp,
		mode:     mode,
		interval: interval,
	}
}

func (s *Stream) AddMetric(m metrics.Metric) { s.observers = append(s.observers, m) }

func (s *Stream) Start() {
	s.out.ClearScreen()
	s.out.HideCursor()
}

func (s *Stream) Stop() {
	s.out.Reset()
	s.out.ShowCursor()
}

// Frame advances the engine one tick and writes the resulting frame.
func (s *Stream) Frame() error {
	s.engine.Step()
	for _, m := range s.observers {
		m.Observe(s.engine.Grid())
	}
	s.out.MoveCursor(1, 1)
	_, err := io.WriteString(s.out, s.comp.Composite(s.engine.Grid(), s.mode))
	return err
}

// Run paints frames at the configured interval until ctx is done, a write
// fails or MaxFrames is reached. The terminal is restored before returning.
func (s *Stream) Run(ctx context.Context) error {
	s.Start()
	defer s.Stop()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for frames := 0; s.MaxFrames == 0 || frames < s.MaxFrames; frames++ {
		if err := s.Frame(); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
	return nil
}
