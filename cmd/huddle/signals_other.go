//go:build !unix

package main

import "os"

func lifecycleSignals() []os.Signal { return nil }

func isBackground(os.Signal) bool { return false }
func isForeground(os.Signal) bool { return false }
