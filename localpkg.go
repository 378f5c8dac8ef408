// localpkg.go
package localpkg

import (
	"github.com/wtnb75/localpkg/pkg/core"
	"github.com/wtnb75/localpkg/pkg/pipeline"
)

// Re-export core types for convenience
type (
	// Context is the set of parameters for one packaging run
	Context = pipeline.Context
	// Result is the outcome of a pipeline run
	Result = pipeline.Result
	// Runner executes the install pipeline
	Runner = pipeline.Runner
	// Options carries packaging metadata for the output formats
	Options = core.Options
	// Builder turns a pipeline result into a distribution artifact
	Builder = core.Builder
	// Config is the localpkg configuration
	Config = core.Config
)

// Re-export sentinel errors
var (
	ErrToolNotFound       = core.ErrToolNotFound
	ErrFormatNotSupported = core.ErrFormatNotSupported
)

// NewRunner creates a pipeline Runner
func NewRunner(cfg *pipeline.Config) *Runner {
	return pipeline.NewRunner(cfg)
}

// Version is the localpkg release version
const Version = "0.1.0"
