// pkg/pipeline/types.go
package pipeline

import (
	"io"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// Context holds the parameters of one packaging run. It is built once by
// the caller and flows unchanged through every stage.
type Context struct {
	PythonBin    string   // interpreter used to build the environment
	PythonName   string   // interpreter name embedded in patched scripts
	Name         string   // package display name
	Compile      bool     // pre-compile bytecode at install time
	Zip          bool     // compact site-packages into a single zip
	Prefix       string   // destination prefix, e.g. "usr"
	Requirements []string // pip requirement specifiers
}

// Result is what a pipeline run hands to the packaging backends.
type Result struct {
	RootDir string // destination tree root, contains <prefix>/bin and <prefix>/lib
	LibPath string // final location of installed code: zip file or directory
}

// RelLibPath returns LibPath relative to the destination root. Package
// descriptions embed it as an install-time absolute path ("/usr/lib/...").
func (r *Result) RelLibPath() (string, error) {
	return filepath.Rel(r.RootDir, r.LibPath)
}

// Config configures a pipeline Runner
type Config struct {
	Logger *log.Logger
}

// Runner executes the install pipeline: provision an environment, install
// requirements, relocate the site-packages tree, patch the executables.
type Runner struct {
	config *Config
	logger *log.Logger
}

// NewRunner creates a pipeline Runner
func NewRunner(cfg *Config) *Runner {
	if cfg == nil {
		cfg = &Config{}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return &Runner{
		config: cfg,
		logger: logger,
	}
}
