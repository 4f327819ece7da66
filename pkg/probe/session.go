package probe

import "fmt"

type held struct {
	step    Step
	release Release
}

// session keeps what a run acquired so it can be undone in reverse order.
type session struct {
	stack []held
}

func (s *session) push(step Step, r Release) {
	if r != nil {
		s.stack = append(s.stack, held{step: step, release: r})
	}
}

// release undoes every acquisition, newest first, exactly once.
func (s *session) release() (errs []error) {
	for i := len(s.stack) - 1; i >= 0; i-- {
		h := s.stack[i]
		if err := h.release(); err != nil {
			errs = append(errs, fmt.Errorf("release %v: %w", h.step, err))
		}
	}
	s.stack = nil
	return errs
}

func (s *session) size() int { return len(s.stack) }
