// pkg/narball/builder.go
package narball

import (
	"context"
	"io"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/wtnb75/localpkg/pkg/archive"
	"github.com/wtnb75/localpkg/pkg/core"
	"github.com/wtnb75/localpkg/pkg/pipeline"
)

// Config configures the narball Builder
type Config struct {
	Logger *log.Logger
}

// Builder serializes an installed tree into a Nix archive (NAR), for
// consumers that want to import the tree into a nix store
type Builder struct {
	config *Config
	logger *log.Logger
}

// New creates a narball Builder
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
func (b *Builder) Name() string { return "nar" }

// CheckTools has nothing to check; the NAR is written in-process
func (b *Builder) CheckTools() error { return nil }

// Build dumps the destination tree to <name>.nar
func (b *Builder) Build(ctx context.Context, res *pipeline.Result, bctx *pipeline.Context, opts *core.Options) error {
	rel, err := res.RelLibPath()
	if err != nil {
		return err
	}

	dest := filepath.Join(opts.OutputDir, bctx.Name+".nar")
	b.logger.Info("writing nar", "dest", dest, "pythonpath", "/"+rel)

	return archive.DumpNar(res.RootDir, dest)
}
