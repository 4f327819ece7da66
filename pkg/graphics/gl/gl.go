package gl

// Minimal OpenGL function loader.
// Based on https://github.com/go-gl/gl/tree/master/v2.1/gl

/*
#cgo egl,windows LDFLAGS: -lEGL
#cgo egl,darwin  LDFLAGS: -lEGL
#cgo !gles2,darwin        LDFLAGS: -framework OpenGL
#cgo gles2,darwin         LDFLAGS: -lGLESv2
#cgo !gles2,windows       LDFLAGS: -lopengl32
#cgo gles2,windows        LDFLAGS: -lGLESv2
#cgo !egl,linux !egl,freebsd !egl,openbsd pkg-config: gl
#cgo egl,linux egl,freebsd egl,openbsd    pkg-config: egl

#if defined(_WIN32) && !defined(APIENTRY) && !defined(__CYGWIN__) && !defined(__SCITECH_SNAP__)
#ifndef WIN32_LEAN_AND_MEAN
#define WIN32_LEAN_AND_MEAN 1
#endif

#include <windows.h>

#endif
#ifndef APIENTRY
#define APIENTRY
#endif
#ifndef APIENTRYP
#define APIENTRYP APIENTRY*
#endif
#ifndef GLAPI
#define GLAPI extern
#endif

#include <KHR/khrplatform.h>

typedef unsigned int GLenum;
typedef unsigned char GLubyte;
typedef unsigned int GLuint;
typedef int GLint;
typedef int GLsizei;

typedef const GLubyte *(APIENTRYP GPGETSTRING)(GLenum name);
typedef const GLubyte *(APIENTRYP GPGETSTRINGI)(GLenum name, GLuint index);
typedef void (APIENTRYP GPGETINTEGERV)(GLenum pname, GLint *data);
typedef void (APIENTRYP GPVIEWPORT)(GLint x, GLint y, GLsizei width, GLsizei height);
typedef GLenum (APIENTRYP GPGETERROR)();

static const GLubyte *getString(GPGETSTRING ptr, GLenum name) { return (*ptr)(name); }
static const GLubyte *getStringi(GPGETSTRINGI ptr, GLenum name, GLuint index) { return (*ptr)(name, index); }
static void getIntegerv(GPGETINTEGERV ptr, GLenum pname, GLint *data) { (*ptr)(pname, data); }
static GLenum getError(GPGETERROR ptr) { return (*ptr)(); }
*/
import "C"
import (
	"errors"
	"unsafe"
)

const (
	VERSION = 0x1F02
	NoError = 0
)

var (
	gpGetString   C.GPGETSTRING
	gpGetStringi  C.GPGETSTRINGI
	gpGetIntegerv C.GPGETINTEGERV
	gpViewport    C.GPVIEWPORT
	gpGetError    C.GPGETERROR
)

// InitWithProcAddrFunc resolves every entry point through getProcAddr.
// Unlike a render loader it does not stop at the first miss: all names
// are attempted so the caller can see each one's state. Only a missing
// glGetString is reported as an error, nothing can be queried without it.
func InitWithProcAddrFunc(getProcAddr func(name string) unsafe.Pointer) error {
	gpGetString = (C.GPGETSTRING)(getProcAddr("glGetString"))
	gpGetStringi = (C.GPGETSTRINGI)(getProcAddr("glGetStringi"))
	gpGetIntegerv = (C.GPGETINTEGERV)(getProcAddr("glGetIntegerv"))
	gpViewport = (C.GPVIEWPORT)(getProcAddr("glViewport"))
	gpGetError = (C.GPGETERROR)(getProcAddr("glGetError"))
	if gpGetString == nil {
		return errors.New("glGetString")
	}
	return nil
}

// ProcAddr returns the address resolved for name by the last init,
// nil if it was not resolved or is not one this package loads.
func ProcAddr(name string) unsafe.Pointer {
	switch name {
	case "glGetString":
		return unsafe.Pointer(gpGetString)
	case "glGetStringi":
		return unsafe.Pointer(gpGetStringi)
	case "glGetIntegerv":
		return unsafe.Pointer(gpGetIntegerv)
	case "glViewport":
		return unsafe.Pointer(gpViewport)
	case "glGetError":
		return unsafe.Pointer(gpGetError)
	}
	return nil
}

func GetString(name uint32) *uint8 {
	if gpGetString == nil {
		return nil
	}
	return (*uint8)(C.getString(gpGetString, (C.GLenum)(name)))
}

func GetStringi(name uint32, index uint32) *uint8 {
	if gpGetStringi == nil {
		return nil
	}
	return (*uint8)(C.getStringi(gpGetStringi, (C.GLenum)(name), (C.GLuint)(index)))
}

func GetIntegerv(pname uint32, data *int32) {
	if gpGetIntegerv == nil {
		return
	}
	C.getIntegerv(gpGetIntegerv, (C.GLenum)(pname), (*C.GLint)(unsafe.Pointer(data)))
}

func GetError() uint32 {
	if gpGetError == nil {
		return NoError
	}
	return (uint32)(C.getError(gpGetError))
}

// GoStr converts a GL string into a Go string, "" for nil.
func GoStr(str *uint8) string {
	if str == nil {
		return ""
	}
	return C.GoString((*C.char)(unsafe.Pointer(str)))
}
