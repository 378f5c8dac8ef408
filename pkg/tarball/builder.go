// pkg/tarball/builder.go
package tarball

import (
	"context"
	"io"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/wtnb75/localpkg/pkg/archive"
	"github.com/wtnb75/localpkg/pkg/core"
	"github.com/wtnb75/localpkg/pkg/pipeline"
)

// Config configures the tarball Builder
type Config struct {
	Logger *log.Logger
}

// Builder wraps an installed tree into a plain compressed tarball
type Builder struct {
	config *Config
	logger *log.Logger
}

// New creates a tarball Builder
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
func (b *Builder) Name() string { return "tar" }

// CheckTools has nothing to check; the archive is written in-process
func (b *Builder) CheckTools() error { return nil }

// Build writes <name>.tar.<comp> with entries under <name>/<prefix>/
func (b *Builder) Build(ctx context.Context, res *pipeline.Result, bctx *pipeline.Context, opts *core.Options) error {
	comp := archive.Gzip
	if opts.Compression == string(archive.Xz) {
		comp = archive.Xz
	}

	rel, err := res.RelLibPath()
	if err != nil {
		return err
	}

	dest := filepath.Join(opts.OutputDir, bctx.Name+".tar."+string(comp))
	b.logger.Info("writing tarball", "dest", dest, "pythonpath", "/"+rel)

	return archive.WriteTar(
		filepath.Join(res.RootDir, bctx.Prefix),
		dest,
		bctx.Name+"/"+bctx.Prefix+"/",
		comp,
	)
}
