package probe

import "strconv"

// Step is one stage of the probe pipeline.
type Step int

const (
	StepNone Step = iota
	StepConnect
	StepConfig
	StepVisual
	StepWindow
	StepContext
	StepBind
	StepLoad
	StepSymbols
	StepInfo
	StepExtensions
	StepAltLookup
	StepRelease
)

var stepNames = [...]string{
	StepNone:       "none",
	StepConnect:    "connect",
	StepConfig:     "config",
	StepVisual:     "visual",
	StepWindow:     "window",
	StepContext:    "context",
	StepBind:       "bind",
	StepLoad:       "load",
	StepSymbols:    "symbols",
	StepInfo:       "info",
	StepExtensions: "extensions",
	StepAltLookup:  "alt_lookup",
	StepRelease:    "release",
}

func (s Step) String() string {
	if s >= 0 && int(s) < len(stepNames) {
		return stepNames[s]
	}
	return "step(" + strconv.Itoa(int(s)) + ")"
}

// Setup reports whether a failure at s aborts the run.
func (s Step) Setup() bool { return s >= StepConnect && s <= StepBind }

// StepStatus is the outcome of a single step.
type StepStatus struct {
	Step    Step   `json:"step"`
	OK      bool   `json:"ok"`
	Skipped bool   `json:"skipped,omitempty"`
	Detail  string `json:"detail,omitempty"`
	Err     string `json:"error,omitempty"`
}

func (s Step) MarshalText() ([]byte, error) { return []byte(s.String()), nil }
