package app

import (
	"flag"
	"strconv"
)

// Config represents the command-line parameters for the GUI.
type Config struct {
	Sim      string
	Rows     int
	Cols     int
	Rule     string
	Scale    int
	TPS      int
	SPS      int
	Seed     int64
	HUDWidth int
	LogLevel string
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Sim:      "socio",
		Rows:     40,
		Cols:     40,
		Rule:     "infrastructure",
		Scale:    15,
		TPS:      60,
		SPS:      4,
		Seed:     42,
		HUDWidth: 260,
		LogLevel: "info",
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Sim, "sim", c.Sim, "simulation to run")
	fs.IntVar(&c.Rows, "rows", c.Rows, "grid rows")
	fs.IntVar(&c.Cols, "cols", c.Cols, "grid columns")
	fs.StringVar(&c.Rule, "rule", c.Rule, "initial transition rule")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.IntVar(&c.SPS, "sps", c.SPS, "automaton steps per second while running")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for the initial grid")
	fs.IntVar(&c.HUDWidth, "hud", c.HUDWidth, "HUD panel width in pixels (0 hides it)")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "log level (debug, info, warn, error)")
}

// SimConfig renders the grid settings as a factory configuration map.
func (c *Config) SimConfig() map[string]string {
	return map[string]string{
		"rows": strconv.Itoa(c.Rows),
		"cols": strconv.Itoa(c.Cols),
		"rule": c.Rule,
		"seed": strconv.FormatInt(c.Seed, 10),
	}
}
