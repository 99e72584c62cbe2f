package hdc302x

import "fmt"

// Mode is the sampling mode tracked by the driver.
type Mode int

const (
	// ModeSleeping is the post-reset state: no conversion running.
	ModeSleeping Mode = iota
	// ModeAutoRunning means the device samples on its own timer.
	ModeAutoRunning
)

func (m Mode) String() string {
	switch m {
	case ModeSleeping:
		return "sleeping"
	case ModeAutoRunning:
		return "auto"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// requireMode rejects op unless the device is in want. Enforcement can be
// switched off for the legacy permissive behavior.
func (s *Device) requireMode(op string, want Mode) error {
	if !s.config.EnforceMode || s.mode == want {
		return nil
	}
	return fmt.Errorf("%w: %s requires %s mode, device is %s", ErrInvalidMode, op, want, s.mode)
}
