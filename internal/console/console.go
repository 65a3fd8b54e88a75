//go:build !windows

// Package console detects a double-click launch so the binary can default
// to serving and keep its window open on errors.
package console

// DoubleClicked reports whether the process was started from a file
// manager rather than a shell. Always false outside Windows.
func DoubleClicked() bool { return false }
