// pkg/rpm/builder.go
package rpm

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

// Config configures the rpm Builder
type Config struct {
	Logger *log.Logger
}

// Builder produces a noarch RPM via rpmbuild with a throwaway topdir
type Builder struct {
	config *Config
	logger *log.Logger
}

// New creates an rpm Builder
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
func (b *Builder) Name() string { return "rpm" }

// CheckTools verifies rpmbuild is available
func (b *Builder) CheckTools() error {
	return core.RequireTools("rpmbuild")
}

// specFile renders the rpm spec contents
func specFile(name, version, maintainer, prefix, relLibPath string) string {
	return fmt.Sprintf(`Summary: local package for %[1]s
Name: %[1]s
Version: %[2]s
Release: 1
BuildArch: noarch
License: Unknown
Packager: %[3]s
Requires: python3
Source0: %%{name}-%%{version}.tar.gz
BuildRoot: %%{_tmppath}/%%{name}-%%{version}-root

%%description
local package for %[1]s
use as library: PYTHONPATH=/%[5]s

%%prep
rm -rf %%{buildroot}

%%setup -q

%%build

%%install
mkdir -p %%{buildroot}/%[4]s
cp -r %[4]s/ %%{buildroot}/%[4]s

%%clean
rm -rf %%{buildroot}

%%files
%%defattr(-, root, root)
/%[4]s/*/*
`, name, version, maintainer, prefix, relLibPath)
}

// Build sets up an rpmbuild topdir inside the destination tree, tars the
// prefix as Source0, runs rpmbuild -bb and copies the result out
func (b *Builder) Build(ctx context.Context, res *pipeline.Result, bctx *pipeline.Context, opts *core.Options) error {
	rel, err := res.RelLibPath()
	if err != nil {
		return err
	}

	for _, n := range []string{"BUILD", "RPMS", "SOURCES", "SPECS"} {
		if err := os.Mkdir(filepath.Join(res.RootDir, n), 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", n, err)
		}
	}

	src := filepath.Join(res.RootDir, "SOURCES",
		fmt.Sprintf("%s-%s.tar.gz", bctx.Name, opts.Version))
	tarPrefix := fmt.Sprintf("%s-%s/%s/", bctx.Name, opts.Version, bctx.Prefix)
	if err := archive.WriteTar(filepath.Join(res.RootDir, bctx.Prefix), src, tarPrefix, archive.Gzip); err != nil {
		return err
	}

	specPath := filepath.Join(res.RootDir, "SPECS", bctx.Name+".spec")
	spec := specFile(bctx.Name, opts.Version, opts.Maintainer, bctx.Prefix, rel)
	if err := os.WriteFile(specPath, []byte(spec), 0o644); err != nil {
		return fmt.Errorf("writing spec: %w", err)
	}

	b.logger.Info("building rpm", "name", bctx.Name, "version", opts.Version)

	cmd := exec.CommandContext(ctx, "rpmbuild",
		"--define", "_topdir "+res.RootDir, "-bb", specPath)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("rpmbuild: %w", err)
	}

	rpmPath := filepath.Join(res.RootDir, "RPMS", "noarch",
		fmt.Sprintf("%s-%s-1.noarch.rpm", bctx.Name, opts.Version))
	if _, err := os.Stat(rpmPath); err != nil {
		got, _ := filepath.Glob(filepath.Join(res.RootDir, "RPMS", "*", "*.rpm"))
		b.logger.Error("expected rpm missing", "want", rpmPath, "got", got)
		return fmt.Errorf("rpm not produced: %w", err)
	}
	return copyFile(rpmPath, filepath.Join(opts.OutputDir, filepath.Base(rpmPath)))
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
