package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gookit/color"
	"github.com/leonelquinteros/gotext"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"tileforge/pkg/level"
	"tileforge/pkg/preview"
	"tileforge/pkg/synth"
	"tileforge/pkg/watch"
)

func initGotext() {
	gotext.Configure("locales", "en_GB.utf8", "default")
}

var (
	styleHeading = color.Style{color.FgCyan, color.OpBold}
	styleWarn    = color.Style{color.FgYellow}
	styleError   = color.Style{color.FgRed, color.OpBold}
	styleOK      = color.Style{color.FgGreen}
)

// loadConfig reads a YAML config file into a Config.
func loadConfig(filename string) (level.Config, error) {
	var cfg level.Config
	data, err := os.ReadFile(filename)
	if err != nil {
		return cfg, fmt.Errorf("load %s: %w", filename, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("unmarshal %s: %w", filename, err)
	}
	return cfg, nil
}

type options struct {
	configPath string
	outPath    string
	preview    bool
	watch      bool
	timeout    time.Duration
}

// parseFlags builds the effective config: YAML file first, then any flag
// given on the command line overrides the file's value.
func parseFlags() (level.Config, options, error) {
	var (
		opts       options
		biome      string
		width      int
		height     int
		tileSize   int
		seed       int64
		theme      string
		difficulty string
		name       string
	)

	flag.StringVar(&opts.configPath, "config", "", "YAML config file")
	flag.StringVar(&biome, "biome", "dungeon", "biome pipeline (dungeon, cave, forest, town, castle)")
	flag.IntVar(&width, "width", 32, "grid width in tiles")
	flag.IntVar(&height, "height", 24, "grid height in tiles")
	flag.IntVar(&tileSize, "tile-size", 0, "tile edge length in pixels (0 = default)")
	flag.Int64Var(&seed, "seed", 0, "generation seed (0 = random)")
	flag.StringVar(&theme, "theme", "", "visual theme (defaults to the biome name)")
	flag.StringVar(&difficulty, "difficulty", "", "easy, normal or hard")
	flag.StringVar(&name, "name", "", "level name (generated when empty)")
	flag.StringVar(&opts.outPath, "out", "", "write the exported level JSON to this path")
	flag.BoolVar(&opts.preview, "preview", false, "render an ASCII preview to stdout")
	flag.BoolVar(&opts.watch, "watch", false, "regenerate when the config file changes")
	flag.DurationVar(&opts.timeout, "timeout", 0, "abort generation after this duration (0 = none)")
	flag.Parse()

	var cfg level.Config
	if opts.configPath != "" {
		loaded, err := loadConfig(opts.configPath)
		if err != nil {
			return cfg, opts, err
		}
		cfg = loaded
	}

	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	// Without a config file every flag applies; with one, only explicit
	// flags override the file.
	fromFile := opts.configPath != ""
	if !fromFile || set["biome"] {
		cfg.BiomeType = level.BiomeType(biome)
	}
	if !fromFile || set["width"] {
		cfg.Width = width
	}
	if !fromFile || set["height"] {
		cfg.Height = height
	}
	if !fromFile || set["tile-size"] {
		cfg.TileSize = tileSize
	}
	if !fromFile || set["seed"] {
		cfg.Seed = seed
	}
	if !fromFile || set["theme"] {
		cfg.Theme = theme
	}
	if !fromFile || set["difficulty"] {
		cfg.Difficulty = difficulty
	}
	if !fromFile || set["name"] {
		cfg.Name = name
	}

	if opts.watch && opts.configPath == "" {
		return cfg, opts, errors.New("-watch requires -config")
	}
	return cfg, opts, nil
}

// run generates once and performs the requested outputs. It returns a
// non-nil error only for fatal conditions (bad config, IO).
func run(cfg level.Config, opts options, colored bool) error {
	var (
		lvl    *level.Level
		report *synth.Report
		err    error
	)
	if opts.timeout > 0 {
		lvl, report, err = synth.GenerateWithTimeout(cfg, opts.timeout)
	} else {
		lvl, report, err = synth.Generate(context.Background(), cfg)
	}
	if err != nil {
		var cfgErr *level.ConfigError
		if errors.As(err, &cfgErr) {
			return err
		}
		// Soft failure: report it and keep whatever was built.
		styleWarn.Printf("%s: %v\n", gotext.Get("generation incomplete"), err)
		if lvl == nil {
			return nil
		}
	}

	styleHeading.Printf("%s %q (%s, %dx%d, %s %d)\n",
		gotext.Get("generated"), lvl.Name, lvl.BiomeType,
		lvl.Width(), lvl.Height(), gotext.Get("seed"), lvl.Metadata.Seed)

	if report != nil {
		printReport(report)
	}

	if opts.preview {
		fmt.Print(preview.Render(lvl, colored))
	}

	if opts.outPath != "" {
		// Record the seed actually drawn so the export replays exactly.
		cfg.Seed = lvl.Metadata.Seed
		if err := level.ExportToFile(lvl, cfg.Normalize(), opts.outPath); err != nil {
			return err
		}
		styleOK.Printf("%s %s\n", gotext.Get("exported to"), opts.outPath)
	}
	return nil
}

func printReport(r *synth.Report) {
	checks := []struct {
		label string
		ok    bool
	}{
		{gotext.Get("start point"), r.HasStartPoint},
		{gotext.Get("end point"), r.HasEndPoint},
		{gotext.Get("treasures"), r.HasTreasures},
		{gotext.Get("enemies"), r.HasEnemies},
		{gotext.Get("connected"), r.IsConnected},
	}
	for _, c := range checks {
		if c.ok {
			styleOK.Printf("  [ok] %s\n", c.label)
		} else {
			styleWarn.Printf("  [--] %s\n", c.label)
		}
	}
}

// watchLoop regenerates on every settled change to the config file.
func watchLoop(opts options, colored bool) error {
	w, err := watch.New(opts.configPath)
	if err != nil {
		return err
	}
	defer w.Close()

	fmt.Println(gotext.Get("watching for changes, press Ctrl+C to stop"))
	for {
		select {
		case _, ok := <-w.Events:
			if !ok {
				return nil
			}
			cfg, err := loadConfig(opts.configPath)
			if err != nil {
				styleWarn.Printf("%s: %v\n", gotext.Get("reload failed"), err)
				continue
			}
			if err := run(cfg, opts, colored); err != nil {
				styleWarn.Printf("%s: %v\n", gotext.Get("regeneration failed"), err)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			styleWarn.Printf("%s: %v\n", gotext.Get("watch error"), err)
		}
	}
}

func main() {
	initGotext()

	cfg, opts, err := parseFlags()
	if err != nil {
		styleError.Println(err)
		os.Exit(1)
	}

	colored := term.IsTerminal(int(os.Stdout.Fd()))

	if err := run(cfg, opts, colored); err != nil {
		styleError.Println(err)
		os.Exit(1)
	}

	if opts.watch {
		if err := watchLoop(opts, colored); err != nil {
			styleError.Println(err)
			os.Exit(1)
		}
	}
}
