package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/san-kum/termrain/internal/config"
	"github.com/san-kum/termrain/internal/glyphs"
	"github.com/san-kum/termrain/internal/metrics"
	"github.com/san-kum/termrain/internal/rain"
	"github.com/san-kum/termrain/internal/render"
	"github.com/san-kum/termrain/internal/tui"
	"github.com/san-kum/termrain/internal/viz"
)

var (
	configFile string
	preset     string
	logFile    string
	logOut     io.Closer

	columns  int
	rows     int
	interval time.Duration
	noColor  bool
	palette  string
	alphabet string
	theme    string
	seed     int64
	workers  int
	status   bool

	// Probability overrides
	pStart  int
	pBreak  int
	pChange int
	pGrow   int
	pFall   int
	pSpawn  int

	// Frame and stats commands
	frameTicks int
	statsTicks int
	maxFrames  int
	everyTick  bool
)

const resetStyle = termenv.CSI + termenv.ResetSeq + "m"

// main registers the termrain commands and runs the live view when no
// subcommand is given.
func main() {
	rootCmd := &cobra.Command{
		Use:               "termrain",
		Short:             "falling character rain for the terminal",
		SilenceUsage:      true,
		PersistentPreRunE: setupLogging,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logOut != nil {
				logOut.Close()
			}
		},
		RunE: runLive,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.StringVar(&logFile, "log", "", "write diagnostics to this file")
	pf.IntVar(&columns, "cols", 0, "columns (0 = terminal width)")
	pf.IntVar(&rows, "rows", 0, "rows (0 = terminal height)")
	pf.DurationVar(&interval, "interval", config.DefaultFrameInterval, "time between frames")
	pf.BoolVar(&noColor, "no-color", false, "disable tier colouring")
	pf.StringVar(&palette, "palette", config.DefaultPalette, "glyph palette ["+strings.Join(glyphs.Names(), "|")+"]")
	pf.StringVar(&alphabet, "glyphs", "", "custom glyph alphabet (overrides --palette)")
	pf.StringVar(&theme, "theme", config.DefaultTheme, "colour theme ["+strings.Join(viz.ThemeNames(), "|")+"]")
	pf.Int64Var(&seed, "seed", 0, "random seed (0 = time based)")
	pf.IntVar(&workers, "workers", 0, "goroutines per tick (0 = number of CPUs)")
	pf.BoolVar(&status, "status", false, "show the status bar in live mode")
	pf.IntVar(&pStart, "start", rain.DefaultStart, "1 in n chance a detached column starts a new trail")
	pf.IntVar(&pBreak, "break", rain.DefaultBreak, "break draws above this free a trail")
	pf.IntVar(&pChange, "change", rain.DefaultChange, "1 in n chance the tail glyph changes")
	pf.IntVar(&pGrow, "grow", rain.DefaultLenIncrease, "1 in n chance an attached trail grows")
	pf.IntVar(&pFall, "fall", rain.DefaultFallDrop, "1 in n chance a detached trail falls")
	pf.IntVar(&pSpawn, "spawn", 0, "1 in n chance an idle column spawns (0 = column count)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "stream frames straight to the terminal",
		RunE:  runStream,
	}
	runCmd.Flags().IntVar(&maxFrames, "frames", 0, "stop after this many frames (0 = until interrupted)")

	framesCmd := &cobra.Command{
		Use:   "frames",
		Short: "print frames for a seed without animation",
		RunE:  printFrames,
	}
	framesCmd.Flags().IntVar(&frameTicks, "ticks", 20, "number of ticks to simulate")
	framesCmd.Flags().BoolVar(&everyTick, "every", false, "print every tick instead of the last one")

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "simulate and plot grid density",
		RunE:  printStats,
	}
	statsCmd.Flags().IntVar(&statsTicks, "ticks", 500, "number of ticks to simulate")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tINTERVAL\tPALETTE\tTHEME\tSTART\tBREAK\tCHANGE\tGROW\tFALL\tSPAWN")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				pr := p.Probabilities
				fmt.Fprintf(w, "%s\t%v\t%s\t%s\t%d\t%d\t%d\t%d\t%d\t%d\n",
					name, p.FrameInterval, p.Palette, p.Theme, pr.Start, pr.Break, pr.Change, pr.LenIncrease, pr.FallDrop, pr.Spawn)
			}
			return w.Flush()
		},
	}

	themesCmd := &cobra.Command{
		Use:   "themes",
		Short: "list colour themes",
		RunE: func(cmd *cobra.Command, args []string) error {
			profile := lipgloss.ColorProfile()
			for _, t := range viz.Themes {
				s := t.Styles(profile)
				var b strings.Builder
				for _, tier := range rain.Tiers()[1:] {
					b.WriteString(s.Token(tier) + "██")
				}
				if profile != termenv.Ascii {
					b.WriteString(resetStyle)
				}
				fmt.Printf("  %-8s %s\n", t.Name, b.String())
			}
			return nil
		},
	}

	palettesCmd := &cobra.Command{
		Use:   "palettes",
		Short: "list glyph palettes",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range glyphs.Names() {
				p, err := glyphs.Get(name)
				if err != nil {
					return err
				}
				sample := p
				if len(sample) > 24 {
					sample = sample[:24]
				}
				fmt.Printf("  %-9s %4d  %s\n", name, len(p), string(sample))
			}
			return nil
		},
	}

	initCmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "write the effective configuration to a yaml file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := config.Save(args[0], cfg); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}
			fmt.Printf("wrote %s\n", args[0])
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, framesCmd, statsCmd, presetsCmd, themesCmd, palettesCmd, initCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setupLogging sends log output to --log, or discards it so diagnostics never
// land on top of a frame.
func setupLogging(cmd *cobra.Command, args []string) error {
	if logFile == "" {
		log.SetOutput(io.Discard)
		return nil
	}
	f, err := tea.LogToFile(logFile, "termrain")
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	logOut = f
	return nil
}

// loadConfig layers preset, config file and explicitly set flags, in that
// order, and validates the result.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("cols") {
		cfg.Columns = columns
	}
	if flags.Changed("rows") {
		cfg.Rows = rows
	}
	if flags.Changed("interval") {
		cfg.FrameInterval = interval
	}
	if flags.Changed("no-color") {
		cfg.Color = !noColor
	}
	if flags.Changed("palette") {
		cfg.Palette = palette
	}
	if flags.Changed("glyphs") {
		cfg.Glyphs = alphabet
	}
	if flags.Changed("theme") {
		cfg.Theme = theme
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("workers") {
		cfg.Workers = workers
	}
	if flags.Changed("status") {
		cfg.Status = status
	}
	if flags.Changed("start") {
		cfg.Probabilities.Start = pStart
	}
	if flags.Changed("break") {
		cfg.Probabilities.Break = pBreak
	}
	if flags.Changed("change") {
		cfg.Probabilities.Change = pChange
	}
	if flags.Changed("grow") {
		cfg.Probabilities.LenIncrease = pGrow
	}
	if flags.Changed("fall") {
		cfg.Probabilities.FallDrop = pFall
	}
	if flags.Changed("spawn") {
		cfg.Probabilities.Spawn = pSpawn
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log.Printf("live: preset=%q theme=%s palette=%s interval=%v", preset, cfg.Theme, cfg.Palette, cfg.FrameInterval)
	return tui.Run(cfg)
}

// newPipeline builds the engine and compositor for a fixed grid size.
func newPipeline(cfg *config.Config, cols, rows int) (*rain.Engine, *rain.Compositor, error) {
	opts, err := cfg.EngineOptions(cols, rows)
	if err != nil {
		return nil, nil, err
	}
	engine, err := rain.NewEngine(opts)
	if err != nil {
		return nil, nil, err
	}
	styles := viz.GetTheme(cfg.Theme).Styles(lipgloss.ColorProfile())
	log.Printf("pipeline: %dx%d seed=%d workers=%d", cols, rows, opts.Seed, engine.Workers())
	return engine, rain.NewCompositor(styles, cfg.Workers), nil
}

func runStream(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	cols, rows := render.Dimensions(os.Stdout, cfg.Columns, cfg.Rows, config.DefaultRowMargin)
	engine, comp, err := newPipeline(cfg, cols, rows)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stream := render.NewStream(os.Stdout, engine, comp, cfg.Mode(), cfg.FrameInterval)
	stream.MaxFrames = maxFrames
	return stream.Run(ctx)
}

func printFrames(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if frameTicks < 1 {
		return fmt.Errorf("ticks must be positive, got %d", frameTicks)
	}

	cols, rows := cfg.Columns, cfg.Rows
	if cols == 0 {
		cols = 40
	}
	if rows == 0 {
		rows = 12
	}
	engine, comp, err := newPipeline(cfg, cols, rows)
	if err != nil {
		return err
	}

	for i := 1; i <= frameTicks; i++ {
		engine.Step()
		if !everyTick && i < frameTicks {
			continue
		}
		fmt.Printf("tick %d\n", engine.Ticks())
		fmt.Print(comp.Composite(engine.Grid(), cfg.Mode()))
		if cfg.Color {
			fmt.Print(resetStyle)
		}
		fmt.Println()
	}
	return nil
}

func printStats(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if statsTicks < 1 {
		return fmt.Errorf("ticks must be positive, got %d", statsTicks)
	}

	cols, rows := render.Dimensions(os.Stdout, cfg.Columns, cfg.Rows, config.DefaultRowMargin)
	engine, _, err := newPipeline(cfg, cols, rows)
	if err != nil {
		return err
	}

	ms := metrics.Default()
	density := metrics.NewSeries(0)

	fmt.Printf("simulating %d ticks on a %dx%d grid...\n", statsTicks, cols, rows)
	start := time.Now()
	for i := 0; i < statsTicks; i++ {
		engine.Step()
		for _, m := range ms {
			m.Observe(engine.Grid())
		}
		density.Add(metrics.Occupancy(engine.Grid()) * 100)
	}
	elapsed := time.Since(start)

	graph := asciigraph.Plot(density.Values(),
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption("occupied cells (%) per tick"),
	)
	fmt.Println(graph)
	fmt.Println()

	fmt.Printf("completed in %v (%.1f µs/tick)\n", elapsed, float64(elapsed.Microseconds())/float64(statsTicks))
	fmt.Println("\nmetrics:")
	for _, m := range ms {
		fmt.Printf("  %s: %.4f\n", m.Name(), m.Value())
	}
	return nil
}
