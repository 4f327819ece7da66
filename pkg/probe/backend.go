package probe

import "unsafe"

// Release frees something acquired by a Backend.
type Release func() error

// ProcAddrFunc resolves a GL entry point by name against the current context.
type ProcAddrFunc func(name string) unsafe.Pointer

// Backend drives a windowing system and the context-creation library that
// goes with it. Each acquiring call returns a Release that undoes it; a nil
// Release means there is nothing to undo.
type Backend interface {
	Name() string
	// OpenDisplay connects to the display server and returns its name.
	OpenDisplay() (string, Release, error)
	// ChooseConfig returns the number of framebuffer configs matching pf.
	ChooseConfig(pf PixelFormat) (int, Release, error)
	// ChooseVisual derives a visual from the first matching config.
	ChooseVisual() (Visual, Release, error)
	CreateWindow(width, height int, title string) (Release, error)
	// CreateContext creates a context without a share list and reports
	// whether it ended up direct.
	CreateContext(direct bool) (bool, Release, error)
	// MakeCurrent binds the context to the window on the calling thread.
	// The returned Release unbinds it.
	MakeCurrent() (Release, error)
	ProcAddress(name string) unsafe.Pointer
}

// Loader resolves GL entry points and exposes the few the probe calls.
type Loader interface {
	Name() string
	// Load resolves entry points through getProcAddr and returns the
	// version code of the current context, or zero.
	Load(getProcAddr ProcAddrFunc) Version
	// Address returns the resolved address of symbol, zero if unresolved.
	Address(symbol string) uintptr
	GetString(name uint32) string
	GetStringi(name, index uint32) string
	GetInteger(name uint32) int32
	Error() uint32
}

// GL enums used by the probe.
const (
	GLVendor                 = 0x1F00
	GLRenderer               = 0x1F01
	GLVersion                = 0x1F02
	GLExtensions             = 0x1F03
	GLShadingLanguageVersion = 0x8B8C
	GLMajorVersion           = 0x821B
	GLMinorVersion           = 0x821C
	GLNumExtensions          = 0x821D
)

const (
	SymGetString   = "glGetString"
	SymGetIntegerv = "glGetIntegerv"
	SymViewport    = "glViewport"
	SymGetStringi  = "glGetStringi"
)

// CoreSymbols must all resolve for a load to count as successful.
var CoreSymbols = []string{SymGetString, SymGetIntegerv, SymViewport}

// AltSymbols are looked up directly through the backend, bypassing the loader.
var AltSymbols = []string{SymGetString, SymGetIntegerv, SymGetStringi}
