// pkg/alpine/builder.go
package alpine

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

// Config configures the alpine Builder
type Config struct {
	Logger *log.Logger
}

// Builder produces an Alpine package via abuild. Signing is delegated
// entirely to abuild-sign and its key configuration.
type Builder struct {
	config *Config
	logger *log.Logger
}

// New creates an alpine Builder
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
func (b *Builder) Name() string { return "apk" }

// CheckTools verifies abuild and the signing setup before anything is
// installed; a missing signer key fails the run up front
func (b *Builder) CheckTools() error {
	if err := core.RequireTools("abuild", "abuild-sign"); err != nil {
		return err
	}
	cmd := exec.Command("abuild-sign", "-e")
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("abuild-sign: %w", err)
	}
	return nil
}

// apkbuildFile renders the APKBUILD contents
func apkbuildFile(name, version, maintainer, arch, relLibPath string) string {
	return fmt.Sprintf(`# Contributor: %[3]s
# Maintainer: %[3]s
pkgname=%[1]s
pkgver=%[2]s
pkgrel=1
pkgdesc="local package for %[1]s. if use as library: PYTHONPATH=/%[5]s"
arch="%[4]s"
url="https://github.com/wtnb75/localpkg"
license="Unknown"
depends="python3"
makedepends=""
install=""
subpackages=""
source="%[1]s-%[2]s.tar.gz"
builddir="$srcdir/$pkgname-$pkgver"

prepare() {
	:
}

build() {
	:
}

check() {
	:
}

package() {
	mkdir -p ${pkgdir}/usr
	cp -r ${builddir}/usr/ ${pkgdir}/
}
`, name, version, maintainer, arch, relLibPath)
}

// Build writes an APKBUILD plus source tarball and runs abuild
func (b *Builder) Build(ctx context.Context, res *pipeline.Result, bctx *pipeline.Context, opts *core.Options) error {
	rel, err := res.RelLibPath()
	if err != nil {
		return err
	}

	arch := opts.Architecture
	if arch == "" {
		arch = "noarch"
	}

	buildDir := filepath.Join(res.RootDir, "build")
	if err := os.Mkdir(buildDir, 0o755); err != nil {
		return fmt.Errorf("creating build dir: %w", err)
	}

	src := filepath.Join(buildDir, fmt.Sprintf("%s-%s.tar.gz", bctx.Name, opts.Version))
	tarPrefix := fmt.Sprintf("%s-%s/%s/", bctx.Name, opts.Version, bctx.Prefix)
	if err := archive.WriteTar(filepath.Join(res.RootDir, bctx.Prefix), src, tarPrefix, archive.Gzip); err != nil {
		return err
	}

	apkbuild := apkbuildFile(bctx.Name, opts.Version, opts.Maintainer, arch, rel)
	if err := os.WriteFile(filepath.Join(buildDir, "APKBUILD"), []byte(apkbuild), 0o644); err != nil {
		return fmt.Errorf("writing APKBUILD: %w", err)
	}

	b.logger.Info("building apk", "name", bctx.Name, "version", opts.Version, "arch", arch)

	outDir, err := filepath.Abs(opts.OutputDir)
	if err != nil {
		return err
	}

	// abuild reads CARCH and the signer key from its environment; both
	// are opaque pass-through configuration here.
	env := append(os.Environ(), "CARCH="+arch)
	if opts.KeyPath != "" {
		env = append(env, "PACKAGER_PRIVKEY="+opts.KeyPath)
	}

	for _, args := range [][]string{
		{"abuild", "checksum"},
		{"abuild", "-rF", "-P", outDir},
	} {
		cmd := exec.CommandContext(ctx, args[0], args[1:]...)
		cmd.Dir = buildDir
		cmd.Env = env
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		if err := cmd.Run(); err != nil {
			return fmt.Errorf("%s: %w", args[0], err)
		}
	}
	return nil
}
