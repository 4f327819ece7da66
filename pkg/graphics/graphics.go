// Package graphics binds the probe to native window systems and GL loaders.
package graphics

import (
	"fmt"

	"github.com/giongto35/glprobe/pkg/logger"
	"github.com/giongto35/glprobe/pkg/probe"
)

// NewBackend returns the named backend: glx or sdl.
func NewBackend(name, display string) (probe.Backend, error) {
	switch name {
	case "glx":
		g, err := NewGLX(display)
		if err != nil {
			return nil, err
		}
		return g, nil
	case "sdl":
		return NewSDL(), nil
	}
	return nil, fmt.Errorf("unknown backend: %v", name)
}

// NewLoader returns the named loader: native or go-gl.
func NewLoader(name string, log *logger.Logger) (probe.Loader, error) {
	switch name {
	case "native":
		return NewNative(log), nil
	case "go-gl":
		return NewGoGL(log), nil
	}
	return nil, fmt.Errorf("unknown loader: %v", name)
}
