package main

import (
	"fmt"
	"io"
	"os"

	"github.com/giongto35/glprobe/pkg/config"
	"github.com/giongto35/glprobe/pkg/graphics"
	"github.com/giongto35/glprobe/pkg/logger"
	"github.com/giongto35/glprobe/pkg/probe"
	"github.com/giongto35/glprobe/pkg/report"
	"github.com/giongto35/glprobe/pkg/thread"
	"github.com/mattn/go-isatty"
	flag "github.com/spf13/pflag"
)

var Version = "?"

const (
	exitOK = iota
	exitFatal
	exitUsage
)

// parseConfig resolves the configuration from defaults, the config file,
// GLPROBE_* variables and flags, in that order of precedence.
func parseConfig(args []string) (*config.Config, error) {
	var path string
	pre := flag.NewFlagSet("glprobe", flag.ContinueOnError)
	pre.ParseErrorsWhitelist.UnknownFlags = true
	pre.Usage = func() {}
	pre.StringVarP(&path, "conf", "c", "", "")
	_ = pre.Parse(args)

	conf := &config.Config{}
	if err := config.LoadConfig(conf, path); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	fs := flag.NewFlagSet("glprobe", flag.ContinueOnError)
	fs.StringVarP(&path, "conf", "c", path, "Path to the config file")
	conf.WithFlags(fs)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return conf, nil
}

func newLogger(conf *config.Config) *logger.Logger {
	if conf.Log.Json {
		return logger.New(os.Stderr, conf.Log.Debug)
	}
	noColor := conf.Log.NoColor || !isatty.IsTerminal(os.Stderr.Fd())
	return logger.NewConsole(conf.Log.Debug, "probe", noColor)
}

func write(w io.Writer, format string, r *probe.Result) error {
	if format == "json" {
		return report.JSON(w, r)
	}
	return report.Text(w, r)
}

// factories build the backend and loader named in the config.
type factories struct {
	backend func(name, display string) (probe.Backend, error)
	loader  func(name string, log *logger.Logger) (probe.Loader, error)
}

func run(args []string, stdout io.Writer, f factories) int {
	conf, err := parseConfig(args)
	if err != nil {
		if err == flag.ErrHelp {
			return exitOK
		}
		fmt.Fprintln(os.Stderr, "glprobe:", err)
		return exitUsage
	}

	log := newLogger(conf)
	log.Info().Msgf("version %s", Version)
	if log.GetLevel() < logger.InfoLevel {
		log.Debug().Msgf("config: %+v", conf)
	}

	backend, err := f.backend(conf.Probe.Backend, conf.Probe.Display)
	if err != nil {
		log.Error().Err(err).Msg("backend")
		return exitUsage
	}
	loader, err := f.loader(conf.Probe.Loader, log)
	if err != nil {
		log.Error().Err(err).Msg("loader")
		return exitUsage
	}

	var res *probe.Result
	thread.MainMaybe(func() {
		thread.Locked(func() { res = probe.New(backend, loader, conf.Options(), log).Run() })
	})

	if err := write(stdout, conf.Output.Format, res); err != nil {
		log.Error().Err(err).Msg("report")
	}
	if conf.Output.Metrics != "" {
		if err := report.WriteMetrics(conf.Output.Metrics, conf.Output.LockFile, res); err != nil {
			log.Error().Err(err).Str("path", conf.Output.Metrics).Msg("metrics")
		}
	}

	if res.Fatal() {
		return exitFatal
	}
	return exitOK
}

func main() {
	code := exitOK
	thread.MainWrapMaybe(func() {
		code = run(os.Args[1:], os.Stdout, factories{backend: graphics.NewBackend, loader: graphics.NewLoader})
	})
	os.Exit(code)
}
