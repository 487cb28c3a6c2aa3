//go:build !windows

package main

import (
	"os"
	"syscall"
)

// shutdownSignals stop a conversion or watch loop. The error report is
// still written after either one.
var shutdownSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}
