// Package process terminates the headless browser started for PDF export,
// including the helper processes it spawns.
package process

import (
	"errors"
	"fmt"
)

// ErrInvalidPID rejects PIDs that would address the caller's own process
// group (0) or a group by accident (negative values).
var ErrInvalidPID = errors.New("invalid pid")

// KillProcessGroup kills pid and its children. Failures are returned for
// logging only; the browser launcher's own kill remains the fallback.
func KillProcessGroup(pid int) error {
	if pid <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidPID, pid)
	}
	return killGroup(pid)
}
