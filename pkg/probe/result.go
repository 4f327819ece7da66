package probe

// Symbol is the resolution state of one GL entry point.
type Symbol struct {
	Name    string  `json:"name"`
	Address uintptr `json:"address"`
	Core    bool    `json:"core,omitempty"`
}

func (s Symbol) Resolved() bool { return s.Address != 0 }

// Result is everything a single probe run found out.
type Result struct {
	ID      string `json:"id"`
	Backend string `json:"backend"`
	Loader  string `json:"loader"`
	Display string `json:"display,omitempty"`
	Configs int    `json:"configs"`
	Visual  Visual `json:"visual"`
	Direct  bool   `json:"direct"`

	Steps   []StepStatus `json:"steps"`
	Aborted Step         `json:"aborted"`
	// Err is the fatal setup error, nil unless the run aborted.
	Err *StepError `json:"-"`
	// Warnings holds degraded conditions: loader failure, missing symbols.
	Warnings []*StepError `json:"-"`

	Version    Version  `json:"version"`
	Symbols    []Symbol `json:"symbols"`
	CoreLoaded bool     `json:"core_loaded"`

	Vendor    string `json:"vendor,omitempty"`
	Renderer  string `json:"renderer,omitempty"`
	GLVersion string `json:"gl_version,omitempty"`
	GLSL      string `json:"glsl,omitempty"`

	ContextMajor        int32 `json:"context_major"`
	ContextMinor        int32 `json:"context_minor"`
	ContextVersionKnown bool  `json:"context_version_known"`

	ExtensionsAvailable bool     `json:"extensions_available"`
	ExtensionCount      int32    `json:"extension_count"`
	Extensions          []string `json:"extensions"`

	AltSymbols []Symbol `json:"alt_symbols,omitempty"`

	ReleaseErrs []error `json:"-"`
}

// OK is true when the loader ran and every core symbol resolved.
func (r *Result) OK() bool { return r.Err == nil && r.Version.Ok() && r.CoreLoaded }

// Fatal is true when setup failed and the run was aborted.
func (r *Result) Fatal() bool { return r.Err != nil }

// Status returns the recorded status of step.
func (r *Result) Status(step Step) (StepStatus, bool) {
	for _, s := range r.Steps {
		if s.Step == step {
			return s, true
		}
	}
	return StepStatus{}, false
}

// Symbol returns the resolution state of name as seen by the loader.
func (r *Result) Symbol(name string) (Symbol, bool) {
	for _, s := range r.Symbols {
		if s.Name == name {
			return s, true
		}
	}
	return Symbol{}, false
}

func (r *Result) ok(step Step, detail string) {
	r.Steps = append(r.Steps, StepStatus{Step: step, OK: true, Detail: detail})
}

func (r *Result) skip(step Step, detail string) {
	r.Steps = append(r.Steps, StepStatus{Step: step, Skipped: true, Detail: detail})
}

func (r *Result) fail(err *StepError) {
	r.Steps = append(r.Steps, StepStatus{Step: err.Step, Err: err.Error()})
}
