package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/giongto35/glprobe/pkg/probe"
	"github.com/olekukonko/tablewriter"
)

const goglNote = "go-gl binds all entry points or none; addresses are the ones it was given by the backend"

// printer keeps the first write error so the report reads top to bottom.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) f(format string, a ...any) {
	if p.err == nil {
		_, p.err = fmt.Fprintf(p.w, format, a...)
	}
}

func (p *printer) ln(s ...string) { p.f("%s\n", strings.Join(s, "")) }

// Text writes the human-readable report of r to w.
func Text(w io.Writer, r *probe.Result) error {
	p := &printer{w: w}

	p.ln("=== GL loader probe ===")
	p.f("run:     %s\n", r.ID)
	p.f("backend: %s\n", r.Backend)
	p.f("loader:  %s\n", r.Loader)
	if r.Display != "" {
		p.f("display: %s\n", r.Display)
	}

	p.ln("\n=== steps ===")
	for _, s := range r.Steps {
		p.f("  %-6s %-11s %s\n", mark(s), s.Step, detail(s))
	}

	if r.Fatal() {
		p.f("\n[FATAL] setup failed at %v: %v\n", r.Aborted, r.Err)
		suggestions(p, r)
		p.ln("\nProbe aborted.")
		return p.err
	}

	p.ln("\n=== loader result ===")
	if r.Version.Ok() {
		p.f("[ok] loaded OpenGL functions (API %d.%d)\n", r.Version.Major(), r.Version.Minor())
	} else {
		p.ln("[FATAL] the loader failed completely (returned 0)")
	}

	p.ln("\ncore functions:")
	symbols(p, r.Symbols)
	if r.Loader == "go-gl" {
		p.ln(goglNote)
	}
	status := "ok"
	if !r.CoreLoaded {
		status = "FAILED"
	}
	p.f("core functions loaded: %s\n", status)

	if st, ok := r.Status(probe.StepInfo); ok && st.OK {
		p.ln("\nOpenGL info:")
		p.f("GL_VENDOR:   %s\n", r.Vendor)
		p.f("GL_RENDERER: %s\n", r.Renderer)
		p.f("GL_VERSION:  %s\n", r.GLVersion)
		if r.GLSL != "" {
			p.f("GLSL:        %s\n", r.GLSL)
		}
		if r.ContextVersionKnown {
			p.f("context version: %d.%d\n", r.ContextMajor, r.ContextMinor)
		} else {
			p.ln("context version: unknown")
		}
	} else {
		p.f("\nOpenGL info skipped: %s\n", st.Detail)
	}

	extensions(p, r)

	if len(r.AltSymbols) > 0 {
		p.ln("\n=== alternate lookup (direct proc address) ===")
		symbols(p, r.AltSymbols)
	}

	suggestions(p, r)

	for _, err := range r.ReleaseErrs {
		p.f("\n[warn] %v", err)
	}
	p.ln("\nProbe complete.")
	return p.err
}

func extensions(p *printer, r *probe.Result) {
	st, ok := r.Status(probe.StepExtensions)
	if !ok {
		return
	}
	p.ln("\n=== extensions (sample) ===")
	switch {
	case st.OK:
		p.f("extension count: %d\n", r.ExtensionCount)
		for i, name := range r.Extensions {
			p.f("  extension %d: %s\n", i, name)
		}
	case !r.ExtensionsAvailable && st.Detail == probe.SymGetStringi+" unavailable":
		p.f("%s unavailable, extensions cannot be enumerated.\n", probe.SymGetStringi)
	default:
		p.f("skipped: %s\n", st.Detail)
	}
}

func symbols(p *printer, syms []probe.Symbol) {
	if p.err != nil {
		return
	}
	table := tablewriter.NewWriter(p.w)
	table.SetHeader([]string{"Symbol", "Status", "Address"})
	table.SetAutoFormatHeaders(false)
	for _, s := range syms {
		status, addr := "loaded", fmt.Sprintf("%#x", s.Address)
		if !s.Resolved() {
			status, addr = "MISSING", "-"
		}
		table.Append([]string{s.Name, status, addr})
	}
	table.Render()
}

func suggestions(p *printer, r *probe.Result) {
	p.ln("\n=== suggestions ===")
	list := Suggestions(r)
	if len(list) == 1 {
		p.ln(list[0])
		return
	}
	for i, s := range list {
		p.f("%d. %s\n", i+1, s)
	}
}

func mark(s probe.StepStatus) string {
	switch {
	case s.OK:
		return "[ok]"
	case s.Skipped:
		return "[skip]"
	}
	return "[fail]"
}

func detail(s probe.StepStatus) string {
	if s.Err != "" {
		return s.Err
	}
	return s.Detail
}
