// pkg/deb/builder.go
package deb

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/wtnb75/localpkg/pkg/core"
	"github.com/wtnb75/localpkg/pkg/pipeline"
)

// Config configures the deb Builder
type Config struct {
	Logger *log.Logger
}

// Builder produces a Debian binary package via dpkg-deb under fakeroot
type Builder struct {
	config *Config
	logger *log.Logger
}

// New creates a deb Builder
func New(cfg *Config) *Builder {
	if cfg == nil {
		cfg = &Config{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Builder{config: cfg, logger: logger}
}

// Name returns the format name
func (b *Builder) Name() string { return "deb" }

// CheckTools verifies dpkg-deb and its privilege-dropping wrapper
func (b *Builder) CheckTools() error {
	return core.RequireTools("fakeroot", "dpkg-deb")
}

// controlFile renders the DEBIAN/control contents
func controlFile(name, maintainer, version, relLibPath string) string {
	return fmt.Sprintf(`Package: %s
Maintainer: %s
Architecture: all
Version: %s
Depends: python3
Description: local package for %s
  use as library: PYTHONPATH=/%s
`, name, maintainer, version, name, relLibPath)
}

// Build writes the control file into the destination tree and hands the
// whole tree to dpkg-deb
func (b *Builder) Build(ctx context.Context, res *pipeline.Result, bctx *pipeline.Context, opts *core.Options) error {
	rel, err := res.RelLibPath()
	if err != nil {
		return err
	}

	ctlDir := filepath.Join(res.RootDir, "DEBIAN")
	if err := os.Mkdir(ctlDir, 0o755); err != nil {
		return fmt.Errorf("creating DEBIAN dir: %w", err)
	}
	control := controlFile(bctx.Name, opts.Maintainer, opts.Version, rel)
	if err := os.WriteFile(filepath.Join(ctlDir, "control"), []byte(control), 0o644); err != nil {
		return fmt.Errorf("writing control: %w", err)
	}

	b.logger.Info("building deb", "name", bctx.Name, "version", opts.Version)

	cmd := exec.CommandContext(ctx, "fakeroot", "--", "dpkg-deb",
		"--root-owner-group", "--build", res.RootDir, opts.OutputDir)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("dpkg-deb: %w", err)
	}
	return nil
}
