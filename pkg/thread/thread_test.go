package thread

import "testing"

func TestMainMaybe(t *testing.T) {
	calls := 0
	MainWrapMaybe(func() {
		MainMaybe(func() { calls++ })
		Locked(func() { calls++ })
	})
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}
