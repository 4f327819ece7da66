package report

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"testing"

	"github.com/giongto35/glprobe/pkg/probe"
	"github.com/goccy/go-json"
)

func stubGlxinfo(t *testing.T, present bool) {
	t.Helper()
	old := LookPath
	LookPath = func(file string) (string, error) {
		if present {
			return "/usr/bin/" + file, nil
		}
		return "", exec.ErrNotFound
	}
	t.Cleanup(func() { LookPath = old })
}

func setupSteps() []probe.StepStatus {
	return []probe.StepStatus{
		{Step: probe.StepConnect, OK: true, Detail: ":0"},
		{Step: probe.StepConfig, OK: true, Detail: "12 matching"},
		{Step: probe.StepVisual, OK: true},
		{Step: probe.StepWindow, OK: true},
		{Step: probe.StepContext, OK: true, Detail: "direct"},
		{Step: probe.StepBind, OK: true},
	}
}

func passing(count int32, listed int) *probe.Result {
	r := &probe.Result{
		ID:      "b5a7e8f2-5a4e-4b1e-9f57-0c8d7c6e1a11",
		Backend: "x11/glx",
		Loader:  "native",
		Display: ":0",
		Steps:   setupSteps(),
		Version: probe.MakeVersion(4, 6),
		Symbols: []probe.Symbol{
			{Name: probe.SymGetString, Address: 0x7f10, Core: true},
			{Name: probe.SymGetIntegerv, Address: 0x7f20, Core: true},
			{Name: probe.SymViewport, Address: 0x7f30, Core: true},
			{Name: probe.SymGetStringi, Address: 0x7f40},
		},
		CoreLoaded:          true,
		Vendor:              "Mesa",
		Renderer:            "llvmpipe (LLVM 15.0.7, 256 bits)",
		GLVersion:           "4.6 (Compatibility Profile) Mesa 23.2.1",
		ContextMajor:        4,
		ContextMinor:        6,
		ContextVersionKnown: true,
		ExtensionsAvailable: true,
		ExtensionCount:      count,
	}
	for i := 0; i < listed; i++ {
		r.Extensions = append(r.Extensions, fmt.Sprintf("GL_EXT_sample_%d", i))
	}
	r.Steps = append(r.Steps,
		probe.StepStatus{Step: probe.StepLoad, OK: true},
		probe.StepStatus{Step: probe.StepSymbols, OK: true},
		probe.StepStatus{Step: probe.StepInfo, OK: true},
		probe.StepStatus{Step: probe.StepExtensions, OK: true},
		probe.StepStatus{Step: probe.StepRelease, OK: true},
	)
	return r
}

func extensionLines(out string) []string {
	var lines []string
	for _, l := range strings.Split(out, "\n") {
		if strings.HasPrefix(l, "  extension ") {
			lines = append(lines, l)
		}
	}
	return lines
}

func TestTextExtensions(t *testing.T) {
	stubGlxinfo(t, true)
	var buf bytes.Buffer
	if err := Text(&buf, passing(12, 5)); err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	lines := extensionLines(out)
	if len(lines) != 5 {
		t.Fatalf("got %d extension lines, want 5:\n%s", len(lines), out)
	}
	for i, l := range lines {
		if want := fmt.Sprintf("  extension %d: GL_EXT_sample_%d", i, i); l != want {
			t.Errorf("line %d = %q, want %q", i, l, want)
		}
	}
	for _, want := range []string{
		"extension count: 12",
		"loaded OpenGL functions (API 4.6)",
		"GL_VENDOR:   Mesa",
		"context version: 4.6",
		allPassed,
		"Probe complete.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report lacks %q", want)
		}
	}
}

func TestTextStringiUnavailable(t *testing.T) {
	stubGlxinfo(t, true)
	r := passing(0, 0)
	r.ExtensionsAvailable = false
	r.Symbols[3].Address = 0
	r.Steps[len(r.Steps)-2] = probe.StepStatus{Step: probe.StepExtensions, Skipped: true, Detail: probe.SymGetStringi + " unavailable"}

	var buf bytes.Buffer
	if err := Text(&buf, r); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "glGetStringi unavailable, extensions cannot be enumerated.") {
		t.Errorf("unavailable message missing:\n%s", out)
	}
	if n := len(extensionLines(out)); n != 0 || strings.Contains(out, "extension count") {
		t.Errorf("extensions listed although unavailable (%d lines)", n)
	}
	if !strings.Contains(out, "MISSING") {
		t.Error("missing glGetStringi not shown in symbol table")
	}
}

func TestTextFatal(t *testing.T) {
	stubGlxinfo(t, true)
	r := &probe.Result{
		ID:      "x",
		Backend: "x11/glx",
		Loader:  "native",
		Aborted: probe.StepConnect,
		Err:     &probe.StepError{Step: probe.StepConnect, Err: errors.New("XOpenDisplay($DISPLAY) failed")},
		Steps:   []probe.StepStatus{{Step: probe.StepConnect, Err: "connect: display connection unavailable"}},
	}
	var buf bytes.Buffer
	if err := Text(&buf, r); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "[FATAL] setup failed at connect") || !strings.Contains(out, "Xvfb :99") {
		t.Errorf("fatal report incomplete:\n%s", out)
	}
	if strings.Contains(out, "loader result") || strings.Contains(out, "Probe complete.") {
		t.Errorf("fatal report continued past setup:\n%s", out)
	}
}

func TestTextGoGLNote(t *testing.T) {
	stubGlxinfo(t, true)
	for _, loader := range []string{"native", "go-gl"} {
		r := passing(3, 3)
		r.Loader = loader
		var buf bytes.Buffer
		if err := Text(&buf, r); err != nil {
			t.Fatal(err)
		}
		if got := strings.Contains(buf.String(), goglNote); got != (loader == "go-gl") {
			t.Errorf("%s: address note shown = %v", loader, got)
		}
	}
}

func TestSuggestions(t *testing.T) {
	loadFailed := passing(0, 0)
	loadFailed.Version = 0

	noCore := passing(0, 0)
	noCore.CoreLoaded = false

	fatal := &probe.Result{Aborted: probe.StepContext, Err: &probe.StepError{Step: probe.StepContext, Err: probe.ErrContext}}

	tests := []struct {
		name    string
		r       *probe.Result
		glxinfo bool
		want    int
		first   string
	}{
		{name: "pass", r: passing(3, 3), glxinfo: true, want: 1, first: allPassed},
		{name: "load failed", r: loadFailed, glxinfo: true, want: 6, first: loadFailure[0]},
		{name: "load failed no glxinfo", r: loadFailed, glxinfo: false, want: 7, first: loadFailure[0]},
		{name: "core missing", r: noCore, glxinfo: true, want: 3, first: coreMissing[0]},
		{name: "fatal", r: fatal, glxinfo: true, want: 1, first: setupFailure[probe.StepContext]},
		{name: "fatal no glxinfo", r: fatal, glxinfo: false, want: 2, first: setupFailure[probe.StepContext]},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stubGlxinfo(t, tt.glxinfo)
			got := Suggestions(tt.r)
			if len(got) != tt.want || got[0] != tt.first {
				t.Errorf("Suggestions() = %q", got)
			}
		})
	}

	stubGlxinfo(t, true)
	a := Suggestions(loadFailed)
	a[0] = "changed"
	if loadFailure[0] == "changed" {
		t.Error("Suggestions returned the shared list")
	}
}

func TestJSON(t *testing.T) {
	stubGlxinfo(t, true)
	r := passing(12, 5)
	r.Warnings = []*probe.StepError{{Step: probe.StepSymbols, Err: errors.New(probe.SymViewport)}}

	var buf bytes.Buffer
	if err := JSON(&buf, r); err != nil {
		t.Fatal(err)
	}
	var out struct {
		OK         bool     `json:"ok"`
		API        string   `json:"api"`
		Backend    string   `json:"backend"`
		Extensions []string `json:"extensions"`
		Warnings   []string `json:"warnings"`
		Steps      []struct {
			Step string `json:"step"`
			OK   bool   `json:"ok"`
		} `json:"steps"`
	}
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid json: %v\n%s", err, buf.String())
	}
	if !out.OK || out.API != "4.6" || out.Backend != "x11/glx" || len(out.Extensions) != 5 {
		t.Errorf("unexpected report %+v", out)
	}
	if len(out.Steps) == 0 || out.Steps[0].Step != "connect" {
		t.Errorf("steps = %+v", out.Steps)
	}
	if len(out.Warnings) != 1 || !strings.Contains(out.Warnings[0], probe.SymViewport) {
		t.Errorf("warnings = %v", out.Warnings)
	}
}
