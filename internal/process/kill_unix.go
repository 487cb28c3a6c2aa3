//go:build !windows

package process

import "syscall"

// killGroup sends SIGKILL to the process group (negative PID).
func killGroup(pid int) error {
	return syscall.Kill(-pid, syscall.SIGKILL)
}
