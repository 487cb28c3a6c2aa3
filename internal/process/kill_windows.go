//go:build windows

package process

import (
	"os/exec"
	"strconv"
)

// killGroup force-kills the process tree with taskkill (/F force, /T tree).
func killGroup(pid int) error {
	return exec.Command("taskkill", "/F", "/T", "/PID", strconv.Itoa(pid)).Run()
}
