package probe

import (
	"fmt"
	"strconv"
	"strings"
)

// Version is a loader version code, major*10000 + minor.
// Zero means the loader failed.
type Version int

func MakeVersion(major, minor int) Version { return Version(major*10000 + minor) }

func (v Version) Major() int { return int(v) / 10000 }
func (v Version) Minor() int { return int(v) % 10000 }
func (v Version) Ok() bool   { return v > 0 }

func (v Version) String() string {
	if !v.Ok() {
		return "none"
	}
	return fmt.Sprintf("%d.%d", v.Major(), v.Minor())
}

var versionPrefixes = []string{
	"OpenGL ES-CM ",
	"OpenGL ES-CL ",
	"OpenGL ES ",
	"OpenGL SC ",
}

// ParseVersion reads the leading major.minor pair of a GL_VERSION string,
// e.g. "4.6 (Core Profile) Mesa 23.2.1" or "OpenGL ES 3.2 NVIDIA 535.54".
// It returns zero when no version can be read.
func ParseVersion(s string) Version {
	for _, p := range versionPrefixes {
		if strings.HasPrefix(s, p) {
			s = s[len(p):]
			break
		}
	}
	major, rest, ok := leadingInt(s)
	if !ok || !strings.HasPrefix(rest, ".") {
		return 0
	}
	minor, _, ok := leadingInt(rest[1:])
	if !ok || major == 0 {
		return 0
	}
	return MakeVersion(major, minor)
}

func leadingInt(s string) (int, string, bool) {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 {
		return 0, s, false
	}
	n, err := strconv.Atoi(s[:i])
	if err != nil {
		return 0, s, false
	}
	return n, s[i:], true
}
