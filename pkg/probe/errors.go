package probe

import (
	"errors"
	"fmt"
)

var (
	ErrConnection = errors.New("display connection unavailable")
	ErrConfig     = errors.New("no matching framebuffer config")
	ErrVisual     = errors.New("no visual for framebuffer config")
	ErrWindow     = errors.New("window creation failed")
	ErrContext    = errors.New("rendering context creation failed")
	ErrBind       = errors.New("context could not be made current")

	ErrLoad          = errors.New("loader returned zero")
	ErrSymbolMissing = errors.New("symbol not resolved")
)

var stepErrors = map[Step]error{
	StepConnect: ErrConnection,
	StepConfig:  ErrConfig,
	StepVisual:  ErrVisual,
	StepWindow:  ErrWindow,
	StepContext: ErrContext,
	StepBind:    ErrBind,
	StepLoad:    ErrLoad,
	StepSymbols: ErrSymbolMissing,
}

// StepError ties a failure to the pipeline step that produced it.
// It matches both the step's sentinel and the underlying cause with errors.Is.
type StepError struct {
	Step Step
	Err  error
}

func newStepError(step Step, cause error) *StepError { return &StepError{Step: step, Err: cause} }

func (e *StepError) Error() string {
	kind := stepErrors[e.Step]
	switch {
	case kind == nil && e.Err == nil:
		return e.Step.String() + ": failed"
	case kind == nil:
		return fmt.Sprintf("%v: %v", e.Step, e.Err)
	case e.Err == nil || errors.Is(e.Err, kind):
		return fmt.Sprintf("%v: %v", e.Step, kind)
	}
	return fmt.Sprintf("%v: %v: %v", e.Step, kind, e.Err)
}

func (e *StepError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if kind := stepErrors[e.Step]; kind != nil {
		errs = append(errs, kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// Fatal reports whether the error aborts the run.
func (e *StepError) Fatal() bool { return e.Step.Setup() }
