// Package probe runs a one-shot OpenGL loader self-check: it opens a display,
// creates a hidden window and a GL context, runs a function-pointer loader
// against that context and collects what the driver reports.
package probe

import (
	"errors"
	"fmt"
	"strings"

	"github.com/giongto35/glprobe/pkg/logger"
	"github.com/gofrs/uuid"
)

type Options struct {
	Width, Height int
	Title         string
	Format        PixelFormat
	// Direct requests a direct rendering context.
	Direct bool
	// ExtensionLimit caps how many extension names are queried.
	ExtensionLimit int
	// AltLookup resolves AltSymbols straight through the backend as well.
	AltLookup bool
}

func DefaultOptions() Options {
	return Options{
		Width:          1,
		Height:         1,
		Title:          "GL Loader Probe",
		Format:         DefaultPixelFormat(),
		Direct:         true,
		ExtensionLimit: 5,
		AltLookup:      true,
	}
}

// maxGLErrors bounds the error-flag drain before the integer version query.
const maxGLErrors = 8

type Probe struct {
	backend Backend
	loader  Loader
	opts    Options
	log     *logger.Logger
}

func New(backend Backend, loader Loader, opts Options, log *logger.Logger) *Probe {
	if log == nil {
		log = logger.Default()
	}
	log = log.Extend(log.With().Str("backend", backend.Name()).Str("loader", loader.Name()))
	if opts.Width < 1 {
		opts.Width = 1
	}
	if opts.Height < 1 {
		opts.Height = 1
	}
	if opts.ExtensionLimit < 0 {
		opts.ExtensionLimit = 0
	}
	return &Probe{backend: backend, loader: loader, opts: opts, log: log}
}

// Run performs the probe once. Everything acquired is released before Run
// returns, on every path. A non-nil Result.Err means setup failed.
func (p *Probe) Run() (res *Result) {
	res = &Result{ID: runID(), Backend: p.backend.Name(), Loader: p.loader.Name()}
	p.log.Info().Str("run", res.ID).Msg("Probe start")

	var s session
	defer func() {
		held := s.size()
		res.ReleaseErrs = s.release()
		for _, err := range res.ReleaseErrs {
			p.log.Error().Err(err).Msg("Release failed")
		}
		if len(res.ReleaseErrs) > 0 {
			res.Steps = append(res.Steps, StepStatus{Step: StepRelease, Err: errors.Join(res.ReleaseErrs...).Error()})
		} else {
			res.ok(StepRelease, fmt.Sprintf("%d released", held))
		}
		p.log.Debug().Int("held", held).Msg("Released")
	}()

	if err := p.setup(res, &s); err != nil {
		res.Err, res.Aborted = err, err.Step
		res.fail(err)
		p.log.Error().Err(err).Str("step", err.Step.String()).Msg("Probe aborted")
		return res
	}

	p.load(res)
	p.symbols(res)
	p.info(res)
	p.extensions(res)
	if p.opts.AltLookup {
		p.altLookup(res)
	}
	p.log.Info().Bool("ok", res.OK()).Str("api", res.Version.String()).Msg("Probe done")
	return res
}

func (p *Probe) setup(res *Result, s *session) *StepError {
	b := p.backend

	name, rel, err := b.OpenDisplay()
	if err != nil {
		return newStepError(StepConnect, err)
	}
	s.push(StepConnect, rel)
	res.Display = name
	res.ok(StepConnect, name)
	p.log.Debug().Str("display", name).Msg("Display open")

	n, rel, err := b.ChooseConfig(p.opts.Format)
	s.push(StepConfig, rel)
	if err == nil && n <= 0 {
		err = ErrConfig
	}
	if err != nil {
		return newStepError(StepConfig, err)
	}
	res.Configs = n
	res.ok(StepConfig, fmt.Sprintf("%d matching", n))
	p.log.Debug().Int("configs", n).Msg("Framebuffer configs")

	vis, rel, err := b.ChooseVisual()
	if err != nil {
		return newStepError(StepVisual, err)
	}
	s.push(StepVisual, rel)
	res.Visual = vis
	if vis.Known() {
		res.ok(StepVisual, fmt.Sprintf("id 0x%x depth %d", vis.ID, vis.Depth))
	} else {
		res.ok(StepVisual, "derived at window creation")
	}

	rel, err = b.CreateWindow(p.opts.Width, p.opts.Height, p.opts.Title)
	if err != nil {
		return newStepError(StepWindow, err)
	}
	s.push(StepWindow, rel)
	res.ok(StepWindow, fmt.Sprintf("%dx%d", p.opts.Width, p.opts.Height))

	direct, rel, err := b.CreateContext(p.opts.Direct)
	if err != nil {
		return newStepError(StepContext, err)
	}
	s.push(StepContext, rel)
	res.Direct = direct
	if p.opts.Direct && !direct {
		p.log.Warn().Msg("Direct rendering requested, got an indirect context")
	}
	mode := "direct"
	if !direct {
		mode = "indirect"
	}
	res.ok(StepContext, mode)

	rel, err = b.MakeCurrent()
	if err != nil {
		return newStepError(StepBind, err)
	}
	s.push(StepBind, rel)
	res.ok(StepBind, "")
	return nil
}

func (p *Probe) warn(res *Result, err *StepError) {
	res.Warnings = append(res.Warnings, err)
	p.log.Warn().Err(err).Str("step", err.Step.String()).Msg("Degraded")
}

func (p *Probe) load(res *Result) {
	res.Version = p.loader.Load(p.backend.ProcAddress)
	if !res.Version.Ok() {
		err := newStepError(StepLoad, nil)
		res.fail(err)
		p.warn(res, err)
		return
	}
	res.ok(StepLoad, "API "+res.Version.String())
}

func (p *Probe) symbols(res *Result) {
	res.CoreLoaded = true
	var missing []string
	for _, name := range CoreSymbols {
		sym := Symbol{Name: name, Address: p.loader.Address(name), Core: true}
		if !sym.Resolved() {
			res.CoreLoaded = false
			missing = append(missing, name)
			p.warn(res, newStepError(StepSymbols, errors.New(name)))
		}
		res.Symbols = append(res.Symbols, sym)
	}
	res.Symbols = append(res.Symbols, Symbol{Name: SymGetStringi, Address: p.loader.Address(SymGetStringi)})

	if len(missing) > 0 {
		res.Steps = append(res.Steps, StepStatus{Step: StepSymbols, Err: "missing " + strings.Join(missing, ", ")})
		return
	}
	res.ok(StepSymbols, fmt.Sprintf("%d core resolved", len(CoreSymbols)))
}

// queryable reports whether GL queries can be issued, recording a skip
// for step if not.
func (p *Probe) queryable(res *Result, step Step) bool {
	if !res.Version.Ok() {
		res.skip(step, "loader failed")
		return false
	}
	if !p.resolved(res, SymGetString) {
		res.skip(step, SymGetString+" unresolved")
		return false
	}
	return true
}

func (p *Probe) resolved(res *Result, name string) bool {
	sym, ok := res.Symbol(name)
	return ok && sym.Resolved()
}

func (p *Probe) info(res *Result) {
	if !p.queryable(res, StepInfo) {
		return
	}
	l := p.loader
	res.Vendor = l.GetString(GLVendor)
	res.Renderer = l.GetString(GLRenderer)
	res.GLVersion = l.GetString(GLVersion)
	res.GLSL = l.GetString(GLShadingLanguageVersion)

	if p.resolved(res, SymGetIntegerv) {
		for i := 0; i < maxGLErrors && l.Error() != 0; i++ {
		}
		major, minor := l.GetInteger(GLMajorVersion), l.GetInteger(GLMinorVersion)
		if e := l.Error(); e != 0 {
			p.log.Debug().Uint32("gl_error", e).Msg("Integer version query rejected")
		} else {
			res.ContextMajor, res.ContextMinor, res.ContextVersionKnown = major, minor, true
		}
	}
	p.log.Debug().Str("vendor", res.Vendor).Str("renderer", res.Renderer).Str("version", res.GLVersion).Msg("GL info")
	res.ok(StepInfo, res.Renderer)
}

func (p *Probe) extensions(res *Result) {
	if !p.queryable(res, StepExtensions) {
		return
	}
	if !p.resolved(res, SymGetStringi) || !p.resolved(res, SymGetIntegerv) {
		res.skip(StepExtensions, SymGetStringi+" unavailable")
		return
	}
	res.ExtensionsAvailable = true

	count := p.loader.GetInteger(GLNumExtensions)
	if count < 0 {
		count = 0
	}
	res.ExtensionCount = count

	n := int(count)
	if n > p.opts.ExtensionLimit {
		n = p.opts.ExtensionLimit
	}
	res.Extensions = make([]string, 0, n)
	for i := 0; i < n; i++ {
		res.Extensions = append(res.Extensions, p.loader.GetStringi(GLExtensions, uint32(i)))
	}
	res.ok(StepExtensions, fmt.Sprintf("%d of %d", n, count))
}

func (p *Probe) altLookup(res *Result) {
	all := true
	for _, name := range AltSymbols {
		sym := Symbol{Name: name, Address: uintptr(p.backend.ProcAddress(name))}
		all = all && sym.Resolved()
		res.AltSymbols = append(res.AltSymbols, sym)
	}
	if !all {
		res.Steps = append(res.Steps, StepStatus{Step: StepAltLookup, Err: "some symbols unresolved"})
		return
	}
	res.ok(StepAltLookup, "")
}

func runID() string {
	id, err := uuid.NewV4()
	if err != nil {
		return ""
	}
	return id.String()
}
