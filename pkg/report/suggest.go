package report

import (
	"os/exec"

	"github.com/giongto35/glprobe/pkg/probe"
)

// LookPath finds helper tools named in suggestions.
var LookPath = exec.LookPath

var loadFailure = []string{
	"Check that the graphics driver is installed:\n   glxinfo | grep 'OpenGL vendor'",
	"Check that the Mesa/libGL libraries are present:\n   ls /usr/lib/x86_64-linux-gnu/libGL*",
	"Try the alternate loader:\n   glprobe --loader=go-gl",
	"Resolve entry points only after the context is current, on the OS thread that made it current",
	"Look for unresolved symbols in the binary:\n   objdump -T $(command -v glprobe) | grep UND",
	"Check the GLX and OpenGL versions the server offers:\n   glxinfo -B | grep 'OpenGL version'",
}

var coreMissing = []string{
	"The loader ran but core functions are missing; compare with the alternate loader:\n   glprobe --loader=go-gl",
	"Compare the alternate lookup table: a symbol found there but not by the loader points at the loader",
	"Rerun with --debug to see which entry points the loader gave up on",
}

var setupFailure = map[probe.Step]string{
	probe.StepConnect: "No display connection. Check that DISPLAY is set and an X server is reachable,\n" +
		"   e.g. Xvfb :99 & DISPLAY=:99 glprobe",
	probe.StepConfig: "No framebuffer config matches the requested format. List what the server offers\n" +
		"   with glxinfo -t, or lower probe.format in config.yaml",
	probe.StepVisual: "The framebuffer config has no X visual. Check the server visuals with xdpyinfo",
	probe.StepWindow: "The X server refused the window. Check xdpyinfo and the X server log",
	probe.StepContext: "The driver refused to create a context. Check glxinfo -B, try --indirect,\n" +
		"   or LIBGL_ALWAYS_SOFTWARE=1 to fall back to Mesa llvmpipe",
	probe.StepBind: "The context could not be made current on the window. Check glxinfo -B and\n" +
		"   that the driver and libGL come from the same vendor",
}

const allPassed = "Loader test passed, all checks are fine"

const noGlxinfo = "glxinfo is not installed; it ships in mesa-utils (Debian, Ubuntu) or glx-utils (Fedora)"

// Suggestions returns remediation steps for r, most relevant first.
func Suggestions(r *probe.Result) []string {
	switch {
	case r.Fatal():
		if s, ok := setupFailure[r.Aborted]; ok {
			return withGlxinfo([]string{s})
		}
		return withGlxinfo([]string{r.Err.Error()})
	case !r.Version.Ok():
		return withGlxinfo(append([]string(nil), loadFailure...))
	case !r.CoreLoaded:
		return append([]string(nil), coreMissing...)
	}
	return []string{allPassed}
}

func withGlxinfo(s []string) []string {
	if _, err := LookPath("glxinfo"); err != nil {
		s = append(s, noGlxinfo)
	}
	return s
}
