package config

import (
	"fmt"

	"github.com/giongto35/glprobe/pkg/probe"
	"github.com/spf13/pflag"
)

type Config struct {
	Probe  Probe
	Output Output
	Log    Log
}

type Probe struct {
	Backend string `default:"glx"`
	Loader  string `default:"native"`
	// Display overrides $DISPLAY for the glx backend.
	Display    string
	Window     Window
	Format     Format
	Indirect   bool
	Extensions int `default:"5"`
	// NoAltLookup skips the direct proc-address lookups.
	NoAltLookup bool
}

type Window struct {
	Width  int    `default:"1"`
	Height int    `default:"1"`
	Title  string `default:"GL Loader Probe"`
}

type Format struct {
	Red          int `default:"8"`
	Green        int `default:"8"`
	Blue         int `default:"8"`
	Alpha        int `default:"8"`
	Depth        int `default:"24"`
	Stencil      int
	SingleBuffer bool
}

type Output struct {
	Format   string `default:"text"`
	Metrics  string
	LockFile string
}

type Log struct {
	Debug   bool
	NoColor bool
	Json    bool
}

var (
	Backends = []string{"glx", "sdl"}
	Loaders  = []string{"native", "go-gl"}
	Formats  = []string{"text", "json"}
)

// WithFlags binds command-line flags onto c. The current values of c
// become the flag defaults.
func (c *Config) WithFlags(fs *pflag.FlagSet) *Config {
	fs.StringVar(&c.Probe.Backend, "backend", c.Probe.Backend, "Window system backend: [glx, sdl]")
	fs.StringVar(&c.Probe.Loader, "loader", c.Probe.Loader, "GL function loader: [native, go-gl]")
	fs.StringVar(&c.Probe.Display, "display", c.Probe.Display, "X display name, $DISPLAY when empty")
	fs.IntVar(&c.Probe.Extensions, "extensions", c.Probe.Extensions, "Max extension names to list")
	fs.BoolVar(&c.Probe.Indirect, "indirect", c.Probe.Indirect, "Request an indirect rendering context")
	fs.BoolVar(&c.Probe.NoAltLookup, "no-alt-lookup", c.Probe.NoAltLookup, "Skip direct proc-address lookups")
	fs.StringVar(&c.Output.Format, "format", c.Output.Format, "Report format: [text, json]")
	fs.StringVar(&c.Output.Metrics, "metrics-file", c.Output.Metrics, "Write Prometheus textfile metrics to this path")
	fs.StringVar(&c.Output.LockFile, "lock-file", c.Output.LockFile, "Lock file guarding the metrics file")
	fs.BoolVar(&c.Log.Debug, "debug", c.Log.Debug, "Debug logging")
	fs.BoolVar(&c.Log.NoColor, "no-color", c.Log.NoColor, "Disable colored logs")
	fs.BoolVar(&c.Log.Json, "log-json", c.Log.Json, "JSON logs")
	return c
}

func (c *Config) Validate() error {
	if !oneOf(c.Probe.Backend, Backends) {
		return fmt.Errorf("unknown backend %q, want one of %v", c.Probe.Backend, Backends)
	}
	if !oneOf(c.Probe.Loader, Loaders) {
		return fmt.Errorf("unknown loader %q, want one of %v", c.Probe.Loader, Loaders)
	}
	if !oneOf(c.Output.Format, Formats) {
		return fmt.Errorf("unknown format %q, want one of %v", c.Output.Format, Formats)
	}
	if c.Probe.Extensions < 0 {
		return fmt.Errorf("extensions must be >= 0, got %d", c.Probe.Extensions)
	}
	if c.Probe.Window.Width < 1 || c.Probe.Window.Height < 1 {
		return fmt.Errorf("bad window size %dx%d", c.Probe.Window.Width, c.Probe.Window.Height)
	}
	return nil
}

// Options converts the probe section into probe options.
func (c *Config) Options() probe.Options {
	f := c.Probe.Format
	return probe.Options{
		Width:  c.Probe.Window.Width,
		Height: c.Probe.Window.Height,
		Title:  c.Probe.Window.Title,
		Format: probe.PixelFormat{
			Red: f.Red, Green: f.Green, Blue: f.Blue, Alpha: f.Alpha,
			Depth:        f.Depth,
			Stencil:      f.Stencil,
			DoubleBuffer: !f.SingleBuffer,
		},
		Direct:         !c.Probe.Indirect,
		ExtensionLimit: c.Probe.Extensions,
		AltLookup:      !c.Probe.NoAltLookup,
	}
}

func oneOf(v string, list []string) bool {
	for _, x := range list {
		if v == x {
			return true
		}
	}
	return false
}
