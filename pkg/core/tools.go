// pkg/core/tools.go
package core

import (
	"errors"
	"fmt"
	"os/exec"
)

var (
	// ErrToolNotFound indicates a required external tool is missing from PATH
	ErrToolNotFound = errors.New("tool not found")

	// ErrFormatNotSupported indicates an unknown output format
	ErrFormatNotSupported = errors.New("format not supported")
)

// RequireTools asserts that every named tool resolves on PATH
func RequireTools(names ...string) error {
	for _, name := range names {
		if _, err := exec.LookPath(name); err != nil {
			return fmt.Errorf("%w: %s", ErrToolNotFound, name)
		}
	}
	return nil
}
