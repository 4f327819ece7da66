//go:build linux || freebsd || openbsd

package graphics

/*
#cgo linux freebsd openbsd pkg-config: x11 gl

#include <stdlib.h>
#include <X11/Xlib.h>
#include <X11/Xutil.h>
#include <GL/glx.h>

// Xlib's default handler exits the process on any protocol error,
// so errors are recorded here and checked after a round trip.
static int xErrorCode = 0;
static XErrorHandler prevHandler = NULL;

static int onXError(Display *d, XErrorEvent *e) {
  (void)d;
  xErrorCode = e->error_code;
  return 0;
}

static void trapXErrors(void) {
  xErrorCode = 0;
  prevHandler = XSetErrorHandler(onXError);
}

static void untrapXErrors(void) {
  XSetErrorHandler(prevHandler);
  prevHandler = NULL;
}

static int lastXError(Display *d) {
  XSync(d, False);
  int code = xErrorCode;
  xErrorCode = 0;
  return code;
}

static int defaultScreen(Display *d) { return DefaultScreen(d); }
static char *displayString(Display *d) { return DisplayString(d); }
static GLXFBConfig fbConfigAt(GLXFBConfig *c, int i) { return c[i]; }

static Window createWindow(Display *d, XVisualInfo *vi, Colormap *cmap, unsigned int w, unsigned int h) {
  Window root = RootWindow(d, vi->screen);
  XSetWindowAttributes swa;
  swa.colormap = *cmap = XCreateColormap(d, root, vi->visual, AllocNone);
  swa.event_mask = ExposureMask | KeyPressMask | StructureNotifyMask;
  swa.background_pixmap = None;
  swa.border_pixel = 0;
  return XCreateWindow(d, root, 0, 0, w, h, 0, vi->depth, InputOutput, vi->visual,
                       CWBorderPixel | CWColormap | CWEventMask, &swa);
}

static void *procAddress(const char *name) {
  return (void *)glXGetProcAddressARB((const GLubyte *)name);
}
*/
import "C"
import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/giongto35/glprobe/pkg/probe"
)

// GLX is the Xlib + GLX backend. Its handles are only valid between the
// acquiring call and the matching release.
type GLX struct {
	name string

	display  *C.Display
	screen   C.int
	configs  *C.GLXFBConfig
	nconfigs C.int
	visual   *C.XVisualInfo
	cmap     C.Colormap
	window   C.Window
	ctx      C.GLXContext
}

// NewGLX prepares a backend for the named X display, $DISPLAY when empty.
func NewGLX(display string) (*GLX, error) { return &GLX{name: display}, nil }

func (g *GLX) Name() string { return "x11/glx" }

func xerr(call string, code C.int) error {
	if code == 0 {
		return fmt.Errorf("%s failed", call)
	}
	return fmt.Errorf("%s failed: X error %d", call, int(code))
}

func (g *GLX) OpenDisplay() (string, probe.Release, error) {
	var cname *C.char
	if g.name != "" {
		cname = C.CString(g.name)
		defer C.free(unsafe.Pointer(cname))
	}
	g.display = C.XOpenDisplay(cname)
	if g.display == nil {
		name := g.name
		if name == "" {
			name = "$DISPLAY"
		}
		return "", nil, fmt.Errorf("XOpenDisplay(%s) failed", name)
	}
	C.trapXErrors()
	g.screen = C.defaultScreen(g.display)

	return C.GoString(C.displayString(g.display)), func() error {
		C.untrapXErrors()
		C.XCloseDisplay(g.display)
		g.display = nil
		return nil
	}, nil
}

func (g *GLX) ChooseConfig(pf probe.PixelFormat) (int, probe.Release, error) {
	attrs := []C.int{
		C.GLX_X_RENDERABLE, C.True,
		C.GLX_DRAWABLE_TYPE, C.GLX_WINDOW_BIT,
		C.GLX_RENDER_TYPE, C.GLX_RGBA_BIT,
		C.GLX_X_VISUAL_TYPE, C.GLX_TRUE_COLOR,
		C.GLX_RED_SIZE, C.int(pf.Red),
		C.GLX_GREEN_SIZE, C.int(pf.Green),
		C.GLX_BLUE_SIZE, C.int(pf.Blue),
		C.GLX_ALPHA_SIZE, C.int(pf.Alpha),
		C.GLX_DEPTH_SIZE, C.int(pf.Depth),
	}
	if pf.Stencil > 0 {
		attrs = append(attrs, C.GLX_STENCIL_SIZE, C.int(pf.Stencil))
	}
	doubleBuffer := C.int(C.False)
	if pf.DoubleBuffer {
		doubleBuffer = C.True
	}
	attrs = append(attrs, C.GLX_DOUBLEBUFFER, doubleBuffer, C.None)

	g.configs = C.glXChooseFBConfig(g.display, g.screen, &attrs[0], &g.nconfigs)
	if g.configs == nil {
		return 0, nil, nil
	}
	return int(g.nconfigs), func() error {
		C.XFree(unsafe.Pointer(g.configs))
		g.configs, g.nconfigs = nil, 0
		return nil
	}, nil
}

func (g *GLX) ChooseVisual() (probe.Visual, probe.Release, error) {
	if g.nconfigs == 0 {
		return probe.Visual{}, nil, errors.New("no framebuffer config")
	}
	g.visual = C.glXGetVisualFromFBConfig(g.display, C.fbConfigAt(g.configs, 0))
	if g.visual == nil {
		return probe.Visual{}, nil, errors.New("glXGetVisualFromFBConfig returned NULL")
	}
	v := probe.Visual{ID: uint64(g.visual.visualid), Depth: int(g.visual.depth)}
	return v, func() error {
		C.XFree(unsafe.Pointer(g.visual))
		g.visual = nil
		return nil
	}, nil
}

func (g *GLX) CreateWindow(width, height int, title string) (probe.Release, error) {
	g.window = C.createWindow(g.display, g.visual, &g.cmap, C.uint(width), C.uint(height))
	if code := C.lastXError(g.display); g.window == 0 || code != 0 {
		if g.window != 0 {
			C.XDestroyWindow(g.display, g.window)
			g.window = 0
		}
		if g.cmap != 0 {
			C.XFreeColormap(g.display, g.cmap)
			g.cmap = 0
		}
		return nil, xerr("XCreateWindow", code)
	}
	ctitle := C.CString(title)
	defer C.free(unsafe.Pointer(ctitle))
	C.XStoreName(g.display, g.window, ctitle)

	return func() error {
		C.XDestroyWindow(g.display, g.window)
		C.XFreeColormap(g.display, g.cmap)
		g.window, g.cmap = 0, 0
		if code := C.lastXError(g.display); code != 0 {
			return xerr("XDestroyWindow", code)
		}
		return nil
	}, nil
}

func (g *GLX) CreateContext(direct bool) (bool, probe.Release, error) {
	d := C.int(C.False)
	if direct {
		d = C.True
	}
	g.ctx = C.glXCreateNewContext(g.display, C.fbConfigAt(g.configs, 0), C.GLX_RGBA_TYPE, nil, d)
	if code := C.lastXError(g.display); g.ctx == nil || code != 0 {
		if g.ctx != nil {
			C.glXDestroyContext(g.display, g.ctx)
			g.ctx = nil
		}
		return false, nil, xerr("glXCreateNewContext", code)
	}
	isDirect := C.glXIsDirect(g.display, g.ctx) != 0

	return isDirect, func() error {
		C.glXDestroyContext(g.display, g.ctx)
		g.ctx = nil
		if code := C.lastXError(g.display); code != 0 {
			return xerr("glXDestroyContext", code)
		}
		return nil
	}, nil
}

func (g *GLX) MakeCurrent() (probe.Release, error) {
	ok := C.glXMakeCurrent(g.display, C.GLXDrawable(g.window), g.ctx)
	if code := C.lastXError(g.display); ok == 0 || code != 0 {
		return nil, xerr("glXMakeCurrent", code)
	}
	return func() error {
		if C.glXMakeCurrent(g.display, 0, nil) == 0 {
			return errors.New("glXMakeCurrent(None) failed")
		}
		return nil
	}, nil
}

func (g *GLX) ProcAddress(name string) unsafe.Pointer {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	return C.procAddress(cname)
}
