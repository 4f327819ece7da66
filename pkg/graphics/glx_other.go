//go:build !linux && !freebsd && !openbsd

package graphics

import (
	"errors"
	"unsafe"

	"github.com/giongto35/glprobe/pkg/probe"
)

var errNoGLX = errors.New("glx backend is not available on this platform")

type GLX struct{}

func NewGLX(string) (*GLX, error) { return nil, errNoGLX }

func (g *GLX) Name() string { return "x11/glx" }

func (g *GLX) OpenDisplay() (string, probe.Release, error) { return "", nil, errNoGLX }

func (g *GLX) ChooseConfig(probe.PixelFormat) (int, probe.Release, error) { return 0, nil, errNoGLX }

func (g *GLX) ChooseVisual() (probe.Visual, probe.Release, error) {
	return probe.Visual{}, nil, errNoGLX
}

func (g *GLX) CreateWindow(int, int, string) (probe.Release, error) { return nil, errNoGLX }

func (g *GLX) CreateContext(bool) (bool, probe.Release, error) { return false, nil, errNoGLX }

func (g *GLX) MakeCurrent() (probe.Release, error) { return nil, errNoGLX }

func (g *GLX) ProcAddress(string) unsafe.Pointer { return nil }
