// Package util contains small helpers used across the application that
// don't belong to any other package
package util

import "os"

// IsRunningInDocker reports whether the process runs inside a container.
// Docker leaves /.dockerenv behind, podman sets the container variable.
func IsRunningInDocker() bool {
	if _, err := os.Stat("/.dockerenv"); err == nil {
		return true
	}

	return os.Getenv("container") != ""
}
