//go:build unix

package main

import (
	"os"
	"syscall"
)

func lifecycleSignals() []os.Signal {
	return []os.Signal{syscall.SIGUSR1, syscall.SIGUSR2}
}

func isBackground(sig os.Signal) bool { return sig == syscall.SIGUSR1 }
func isForeground(sig os.Signal) bool { return sig == syscall.SIGUSR2 }
