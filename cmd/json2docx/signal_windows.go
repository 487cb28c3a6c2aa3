//go:build windows

package main

import "os"

// shutdownSignals stop a conversion or watch loop. Windows has no SIGTERM.
var shutdownSignals = []os.Signal{os.Interrupt}
