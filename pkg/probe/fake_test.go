package probe

import (
	"errors"
	"unsafe"
)

var procTable [8]byte

type fakeBackend struct {
	failAt   Step
	configs  int
	noProcs  map[string]bool
	noVisual bool
	calls    []string
	acquired int
	released int
}

func newFakeBackend() *fakeBackend { return &fakeBackend{configs: 3} }

var errFake = errors.New("fake failure")

func (b *fakeBackend) Name() string { return "fake" }

func (b *fakeBackend) acquire(step Step) (Release, error) {
	b.calls = append(b.calls, step.String())
	if b.failAt == step {
		return nil, errFake
	}
	b.acquired++
	return func() error {
		b.released++
		b.calls = append(b.calls, "release:"+step.String())
		return nil
	}, nil
}

func (b *fakeBackend) OpenDisplay() (string, Release, error) {
	rel, err := b.acquire(StepConnect)
	return ":99", rel, err
}

func (b *fakeBackend) ChooseConfig(PixelFormat) (int, Release, error) {
	if b.configs == 0 && b.failAt != StepConfig {
		b.calls = append(b.calls, StepConfig.String())
		return 0, nil, nil
	}
	rel, err := b.acquire(StepConfig)
	return b.configs, rel, err
}

func (b *fakeBackend) ChooseVisual() (Visual, Release, error) {
	rel, err := b.acquire(StepVisual)
	if b.noVisual {
		return Visual{}, rel, err
	}
	return Visual{ID: 0x21, Depth: 24}, rel, err
}

func (b *fakeBackend) CreateWindow(int, int, string) (Release, error) {
	return b.acquire(StepWindow)
}

func (b *fakeBackend) CreateContext(direct bool) (bool, Release, error) {
	rel, err := b.acquire(StepContext)
	return direct, rel, err
}

func (b *fakeBackend) MakeCurrent() (Release, error) { return b.acquire(StepBind) }

func (b *fakeBackend) ProcAddress(name string) unsafe.Pointer {
	if b.noProcs[name] {
		return nil
	}
	return unsafe.Pointer(&procTable[len(name)%len(procTable)])
}

func (b *fakeBackend) called(step Step) bool {
	for _, c := range b.calls {
		if c == step.String() {
			return true
		}
	}
	return false
}

type fakeLoader struct {
	version  Version
	missing  map[string]bool
	strs     map[uint32]string
	ints     map[uint32]int32
	exts     []string
	glErr    uint32
	glErrs   []uint32
	loads    int
	indices  []uint32
	countAsk int
}

func newFakeLoader(extensions int) *fakeLoader {
	l := &fakeLoader{
		version: MakeVersion(4, 6),
		missing: map[string]bool{},
		strs: map[uint32]string{
			GLVendor:                 "Mesa",
			GLRenderer:               "llvmpipe (LLVM 15.0.7, 256 bits)",
			GLVersion:                "4.5 (Compatibility Profile) Mesa 23.2.1",
			GLShadingLanguageVersion: "4.50",
		},
		ints: map[uint32]int32{GLMajorVersion: 4, GLMinorVersion: 5, GLNumExtensions: int32(extensions)},
	}
	for i := 0; i < extensions; i++ {
		l.exts = append(l.exts, "GL_EXT_fake_"+string(rune('a'+i%26)))
	}
	return l
}

func (l *fakeLoader) Name() string { return "fake" }

func (l *fakeLoader) Load(getProcAddr ProcAddrFunc) Version {
	l.loads++
	_ = getProcAddr(SymGetString)
	return l.version
}

func (l *fakeLoader) Address(symbol string) uintptr {
	if l.missing[symbol] {
		return 0
	}
	return 0x7f0000001000 + uintptr(len(symbol))
}

func (l *fakeLoader) GetString(name uint32) string { return l.strs[name] }

func (l *fakeLoader) GetStringi(_ uint32, index uint32) string {
	l.indices = append(l.indices, index)
	if int(index) < len(l.exts) {
		return l.exts[index]
	}
	return ""
}

func (l *fakeLoader) GetInteger(name uint32) int32 {
	if name == GLNumExtensions {
		l.countAsk++
	}
	return l.ints[name]
}

// Error pops queued flags first, then keeps returning glErr.
func (l *fakeLoader) Error() uint32 {
	if len(l.glErrs) > 0 {
		e := l.glErrs[0]
		l.glErrs = l.glErrs[1:]
		return e
	}
	return l.glErr
}
