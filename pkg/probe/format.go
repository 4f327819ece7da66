package probe

// PixelFormat is the framebuffer layout requested from the backend.
type PixelFormat struct {
	Red, Green, Blue, Alpha int
	Depth                   int
	Stencil                 int
	DoubleBuffer            bool
}

// DefaultPixelFormat is RGBA 8/8/8/8 with a 24-bit depth buffer, double-buffered.
func DefaultPixelFormat() PixelFormat {
	return PixelFormat{Red: 8, Green: 8, Blue: 8, Alpha: 8, Depth: 24, DoubleBuffer: true}
}

// Visual describes the window-system visual derived from a framebuffer config.
type Visual struct {
	ID    uint64 `json:"id"`
	Depth int    `json:"depth"`
}

// Known is false when the backend leaves the visual to window creation.
func (v Visual) Known() bool { return v.ID != 0 }
