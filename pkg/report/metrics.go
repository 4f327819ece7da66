package report

import (
	"strconv"
	"time"

	oss "github.com/giongto35/glprobe/pkg/os"
	"github.com/giongto35/glprobe/pkg/probe"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "glprobe"

// Registry builds a fresh registry holding the metrics of r.
func Registry(r *probe.Result, now time.Time) *prometheus.Registry {
	reg := prometheus.NewRegistry()

	gauge := func(name, help string, v float64) {
		g := prometheus.NewGauge(prometheus.GaugeOpts{Namespace: namespace, Name: name, Help: help})
		g.Set(v)
		reg.MustRegister(g)
	}
	vec := func(name, help, label string) *prometheus.GaugeVec {
		g := prometheus.NewGaugeVec(prometheus.GaugeOpts{Namespace: namespace, Name: name, Help: help}, []string{label})
		reg.MustRegister(g)
		return g
	}

	gauge("success", "1 if the loader ran and all core functions resolved.", b2f(r.OK()))
	gauge("fatal", "1 if setup failed before the loader ran.", b2f(r.Fatal()))
	gauge("extensions", "Number of extensions reported by the context.", float64(r.ExtensionCount))
	gauge("last_run_timestamp_seconds", "Unix time of the probe run.", float64(now.Unix()))

	steps := vec("step_ok", "1 if the probe step succeeded.", "step")
	for _, s := range r.Steps {
		steps.WithLabelValues(s.Step.String()).Set(b2f(s.OK))
	}

	symbols := vec("symbol_resolved", "1 if the loader resolved the entry point.", "symbol")
	for _, s := range r.Symbols {
		symbols.WithLabelValues(s.Name).Set(b2f(s.Resolved()))
	}

	api := vec("api_version", "OpenGL version reported through the loader.", "part")
	api.WithLabelValues("major").Set(float64(r.Version.Major()))
	api.WithLabelValues("minor").Set(float64(r.Version.Minor()))

	info := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace, Name: "info", Help: "Driver identification strings.",
	}, []string{"backend", "loader", "vendor", "renderer", "direct"})
	reg.MustRegister(info)
	info.WithLabelValues(r.Backend, r.Loader, r.Vendor, r.Renderer, strconv.FormatBool(r.Direct)).Set(1)

	return reg
}

// WriteMetrics writes r to path in the Prometheus text format, for the
// node_exporter textfile collector. Concurrent runs are serialized with a
// lock file, path + ".lock" unless lockPath is set.
func WriteMetrics(path, lockPath string, r *probe.Result) error {
	if lockPath == "" {
		lockPath = path + ".lock"
	}
	lock, err := oss.NewFileLock(lockPath)
	if err != nil {
		return err
	}
	reg := Registry(r, time.Now())
	return lock.WithLock(func() error { return prometheus.WriteToTextfile(path, reg) })
}

func b2f(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
