// pkg/pipeline/venv.go
package pipeline

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// buildEnv is the ephemeral virtual environment one run installs into.
// It lives in a temporary directory owned by the run and is removed when
// the run finishes.
type buildEnv struct {
	pip     string // pip entry point inside the environment
	version string // interpreter minor version, e.g. "3.12"
}

// createEnv provisions a virtual environment under dir. The environment
// keeps visibility into the host's site-packages so requirements already
// satisfied system-wide are not installed twice.
func (r *Runner) createEnv(ctx context.Context, pythonBin, dir string) (*buildEnv, error) {
	r.logger.Debug("creating virtual environment", "python", pythonBin, "dir", dir)

	cmd := exec.CommandContext(ctx, pythonBin, "-m", "venv", "--system-site-packages", dir)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("creating venv: %w", err)
	}

	// The site-packages path is versioned after the environment's own
	// interpreter, which need not match whatever runs on the host.
	python := filepath.Join(dir, "bin", "python")
	out, err := exec.CommandContext(ctx, python, "-c",
		`import sys; print("%d.%d" % sys.version_info[:2])`).Output()
	if err != nil {
		return nil, fmt.Errorf("querying interpreter version: %w", err)
	}

	env := &buildEnv{
		pip:     filepath.Join(dir, "bin", "pip"),
		version: strings.TrimSpace(string(out)),
	}
	r.logger.Debug("environment ready", "pip", env.pip, "version", env.version)
	return env, nil
}
