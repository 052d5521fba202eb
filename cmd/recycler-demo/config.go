package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
)

// demoConfig is read from an optional TOML file; flags given on the command
// line override it.
type demoConfig struct {
	Items       int     `toml:"items"`
	Grid        bool    `toml:"grid"`
	Columns     int     `toml:"columns"`
	RenderAhead float64 `toml:"render_ahead"`
	StatePath   string  `toml:"state"`
	DebugLog    string  `toml:"debug_log"`
}

func defaultDemoConfig() demoConfig {
	return demoConfig{
		Items:       200,
		Columns:     3,
		RenderAhead: 10,
	}
}

func (c demoConfig) validate() error {
	if c.Items < 0 {
		return fmt.Errorf("items cannot be negative")
	}
	if c.Columns <= 0 {
		return fmt.Errorf("columns must be positive")
	}
	if c.RenderAhead < 0 {
		return fmt.Errorf("render ahead cannot be negative")
	}
	return nil
}

// parseConfig parses command arguments. Output of the flag package (usage
// and parse errors) goes to stderr.
func parseConfig(name string, args []string, stderr io.Writer) (demoConfig, error) {
	cfg := defaultDemoConfig()

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "TOML settings file")
	items := fs.Int("items", cfg.Items, "number of generated items")
	grid := fs.Bool("grid", cfg.Grid, "start in grid layout")
	columns := fs.Int("columns", cfg.Columns, "grid columns")
	ahead := fs.Float64("ahead", cfg.RenderAhead, "render-ahead offset in lines")
	state := fs.String("state", "", "bbolt file for the scroll position")
	debugLog := fs.String("debug", "", "debug log file")
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	if *configPath != "" {
		if _, err := toml.DecodeFile(*configPath, &cfg); err != nil {
			return cfg, fmt.Errorf("reading config %s: %w", *configPath, err)
		}
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "items":
			cfg.Items = *items
		case "grid":
			cfg.Grid = *grid
		case "columns":
			cfg.Columns = *columns
		case "ahead":
			cfg.RenderAhead = *ahead
		case "state":
			cfg.StatePath = *state
		case "debug":
			cfg.DebugLog = *debugLog
		}
	})

	return cfg, cfg.validate()
}
