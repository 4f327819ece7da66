package graphics

import (
	"github.com/giongto35/glprobe/pkg/logger"
	"github.com/giongto35/glprobe/pkg/probe"
	gogl "github.com/go-gl/gl/v3.2-core/gl"
)

// GoGL loads through go-gl's generated 3.2 core bindings. Its init is all
// or nothing: after a failed init no symbol counts as loaded, after a
// successful one the addresses are the ones go-gl was given.
type GoGL struct {
	log    *logger.Logger
	procs  probe.ProcAddrFunc
	loaded bool
}

func NewGoGL(log *logger.Logger) *GoGL { return &GoGL{log: log} }

func (g *GoGL) Name() string { return "go-gl" }

func (g *GoGL) Load(getProcAddr probe.ProcAddrFunc) probe.Version {
	g.procs = getProcAddr
	if err := gogl.InitWithProcAddrFunc(getProcAddr); err != nil {
		g.log.Warn().Err(err).Msg("go-gl init failed")
		return 0
	}
	g.loaded = true
	return probe.ParseVersion(gogl.GoStr(gogl.GetString(gogl.VERSION)))
}

func (g *GoGL) Address(symbol string) uintptr {
	if !g.loaded {
		return 0
	}
	return uintptr(g.procs(symbol))
}

func (g *GoGL) GetString(name uint32) string {
	if !g.loaded {
		return ""
	}
	return gogl.GoStr(gogl.GetString(name))
}

func (g *GoGL) GetStringi(name, index uint32) string {
	if !g.loaded {
		return ""
	}
	return gogl.GoStr(gogl.GetStringi(name, index))
}

func (g *GoGL) GetInteger(name uint32) int32 {
	var v int32
	if g.loaded {
		gogl.GetIntegerv(name, &v)
	}
	return v
}

func (g *GoGL) Error() uint32 {
	if !g.loaded {
		return 0
	}
	return gogl.GetError()
}
