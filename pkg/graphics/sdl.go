package graphics

import (
	"fmt"
	"os"
	"unsafe"

	"github.com/giongto35/glprobe/pkg/probe"
	"github.com/veandco/go-sdl2/sdl"
)

// SDL creates the hidden GL window through SDL2. SDL hides the framebuffer
// config and visual selection behind its GL attributes, so those steps map
// onto attribute setup and are reported as such.
type SDL struct {
	w   *sdl.Window
	ctx sdl.GLContext
}

func NewSDL() *SDL { return &SDL{} }

func (s *SDL) Name() string { return "sdl" }

func (s *SDL) OpenDisplay() (string, probe.Release, error) {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return "", nil, fmt.Errorf("sdl: %w", err)
	}
	name := os.Getenv("DISPLAY")
	if name == "" {
		name = "default"
	}
	return name, func() error { sdl.Quit(); return nil }, nil
}

func (s *SDL) ChooseConfig(pf probe.PixelFormat) (int, probe.Release, error) {
	doubleBuffer := 0
	if pf.DoubleBuffer {
		doubleBuffer = 1
	}
	for _, a := range []struct {
		attr  sdl.GLattr
		value int
	}{
		{sdl.GL_RED_SIZE, pf.Red},
		{sdl.GL_GREEN_SIZE, pf.Green},
		{sdl.GL_BLUE_SIZE, pf.Blue},
		{sdl.GL_ALPHA_SIZE, pf.Alpha},
		{sdl.GL_DEPTH_SIZE, pf.Depth},
		{sdl.GL_STENCIL_SIZE, pf.Stencil},
		{sdl.GL_DOUBLEBUFFER, doubleBuffer},
	} {
		if err := sdl.GLSetAttribute(a.attr, a.value); err != nil {
			return 0, nil, fmt.Errorf("gl attribute %v: %w", a.attr, err)
		}
	}
	return 1, nil, nil
}

// ChooseVisual returns an unknown visual: SDL picks it when the window
// is created.
func (s *SDL) ChooseVisual() (probe.Visual, probe.Release, error) { return probe.Visual{}, nil, nil }

func (s *SDL) CreateWindow(width, height int, title string) (probe.Release, error) {
	w, err := sdl.CreateWindow(title, sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		int32(width), int32(height), sdl.WINDOW_OPENGL|sdl.WINDOW_HIDDEN)
	if err != nil {
		return nil, fmt.Errorf("window: %w", err)
	}
	s.w = w
	return func() error {
		err := s.w.Destroy()
		s.w = nil
		return err
	}, nil
}

// CreateContext cannot force direct rendering through SDL; the flag is
// only reported back.
func (s *SDL) CreateContext(direct bool) (bool, probe.Release, error) {
	ctx, err := s.w.GLCreateContext()
	if err != nil {
		return false, nil, fmt.Errorf("gl context: %w", err)
	}
	s.ctx = ctx
	return direct, func() error {
		sdl.GLDeleteContext(s.ctx)
		s.ctx = nil
		return nil
	}, nil
}

func (s *SDL) MakeCurrent() (probe.Release, error) {
	if err := s.w.GLMakeCurrent(s.ctx); err != nil {
		return nil, fmt.Errorf("gl bind: %w", err)
	}
	return func() error { return s.w.GLMakeCurrent(nil) }, nil
}

func (s *SDL) ProcAddress(name string) unsafe.Pointer { return sdl.GLGetProcAddress(name) }
