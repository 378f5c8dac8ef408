// pkg/core/types.go
package core

import (
	"context"

	"github.com/wtnb75/localpkg/pkg/pipeline"
)

// Options carries the packaging metadata shared by all output formats.
// The trailing fields are optional extensions consumed only by the
// builders that understand them; the core never interprets their values.
type Options struct {
	Version    string // package version
	Maintainer string // "Name <email>"
	OutputDir  string // where the finished artifact lands

	Architecture string // apk CARCH override; empty means noarch
	KeyPath      string // apk private signing key, passed through untouched
	Compression  string // tarball compression: "gz" or "xz"
}

// Builder turns one pipeline result into a distribution artifact
type Builder interface {
	// Name returns the output format name (e.g. "deb", "rpm")
	Name() string

	// CheckTools verifies the external tools this format needs before
	// any destination-tree mutation happens
	CheckTools() error

	// Build produces the artifact from an installed destination tree
	Build(ctx context.Context, res *pipeline.Result, bctx *pipeline.Context, opts *Options) error
}
