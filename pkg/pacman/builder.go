// pkg/pacman/builder.go
package pacman

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/wtnb75/localpkg/pkg/archive"
	"github.com/wtnb75/localpkg/pkg/core"
	"github.com/wtnb75/localpkg/pkg/pipeline"
)

// Config configures the pacman Builder
type Config struct {
	Logger *log.Logger
}

// Builder produces an Arch package via makepkg
type Builder struct {
	config *Config
	logger *log.Logger
}

// New creates a pacman Builder
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
func (b *Builder) Name() string { return "pacman" }

// CheckTools verifies makepkg and its debug-info helper
func (b *Builder) CheckTools() error {
	return core.RequireTools("makepkg", "debugedit")
}

// pkgbuildFile renders the PKGBUILD contents
func pkgbuildFile(name, version, maintainer, relLibPath string) string {
	return fmt.Sprintf(`# Maintainer: %[3]s
pkgname=%[1]s
pkgver=%[2]s
pkgrel=1
pkgdesc="local package for %[1]s. if use as library: PYTHONPATH=/%[4]s"
arch=('any')
url="https://github.com/wtnb75/localpkg"
license=('unknown')
depends=('python')
source=("%[1]s-%[2]s.tar.xz")
sha256sums=('SKIP')

package() {
	mkdir -p "$pkgdir/usr"
	cp -r "$srcdir/%[1]s-%[2]s/usr/" "$pkgdir/"
}
`, name, version, maintainer, relLibPath)
}

// Build writes a PKGBUILD plus xz source tarball and runs makepkg
func (b *Builder) Build(ctx context.Context, res *pipeline.Result, bctx *pipeline.Context, opts *core.Options) error {
	rel, err := res.RelLibPath()
	if err != nil {
		return err
	}

	buildDir := filepath.Join(res.RootDir, "build")
	if err := os.Mkdir(buildDir, 0o755); err != nil {
		return fmt.Errorf("creating build dir: %w", err)
	}

	src := filepath.Join(buildDir, fmt.Sprintf("%s-%s.tar.xz", bctx.Name, opts.Version))
	tarPrefix := fmt.Sprintf("%s-%s/%s/", bctx.Name, opts.Version, bctx.Prefix)
	if err := archive.WriteTar(filepath.Join(res.RootDir, bctx.Prefix), src, tarPrefix, archive.Xz); err != nil {
		return err
	}

	pkgbuild := pkgbuildFile(bctx.Name, opts.Version, opts.Maintainer, rel)
	if err := os.WriteFile(filepath.Join(buildDir, "PKGBUILD"), []byte(pkgbuild), 0o644); err != nil {
		return fmt.Errorf("writing PKGBUILD: %w", err)
	}

	b.logger.Info("building pacman package", "name", bctx.Name, "version", opts.Version)

	outDir, err := filepath.Abs(opts.OutputDir)
	if err != nil {
		return err
	}

	cmd := exec.CommandContext(ctx, "makepkg", "--nodeps", "--force")
	cmd.Dir = buildDir
	cmd.Env = append(os.Environ(), "PKGDEST="+outDir)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("makepkg: %w", err)
	}
	return nil
}
