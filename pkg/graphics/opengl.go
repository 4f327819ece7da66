package graphics

import (
	"github.com/giongto35/glprobe/pkg/graphics/gl"
	"github.com/giongto35/glprobe/pkg/logger"
	"github.com/giongto35/glprobe/pkg/probe"
)

// Native is the built-in loader from the gl package.
type Native struct {
	log *logger.Logger
	// str reads a GL string through the loaded glGetString.
	str func(name uint32) string
}

func NewNative(log *logger.Logger) *Native {
	return &Native{log: log, str: func(name uint32) string { return gl.GoStr(gl.GetString(name)) }}
}

func (n *Native) Name() string { return "native" }

func (n *Native) Load(getProcAddr probe.ProcAddrFunc) probe.Version {
	if err := gl.InitWithProcAddrFunc(getProcAddr); err != nil {
		n.log.Warn().Err(err).Msg("GL entry point missing")
		return 0
	}
	version := n.str(gl.VERSION)
	v := probe.ParseVersion(version)
	if !v.Ok() {
		n.log.Warn().Str("version", version).Msg("Unreadable GL_VERSION")
	}
	return v
}

func (n *Native) Address(symbol string) uintptr { return uintptr(gl.ProcAddr(symbol)) }

func (n *Native) GetString(name uint32) string { return n.str(name) }

func (n *Native) GetStringi(name, index uint32) string { return gl.GoStr(gl.GetStringi(name, index)) }

func (n *Native) GetInteger(name uint32) int32 {
	var v int32
	gl.GetIntegerv(name, &v)
	return v
}

func (n *Native) Error() uint32 { return gl.GetError() }
