// internal/cli/options.go
package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/wtnb75/localpkg/pkg/core"
	"github.com/wtnb75/localpkg/pkg/pipeline"
	"github.com/wtnb75/localpkg/pkg/registry"
)

// buildFlags holds the flag values shared by every output format command
type buildFlags struct {
	pythonBin  string
	pythonName string
	name       string
	compile    bool
	zip        bool
}

func (f *buildFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.pythonBin, "python-bin", "", "interpreter used to build the environment (default from config)")
	cmd.Flags().StringVar(&f.pythonName, "python-name", "", "destination binary name of python (default from config)")
	cmd.Flags().StringVar(&f.name, "name", "", "package name (default: current directory name)")
	cmd.Flags().BoolVar(&f.compile, "compile", false, "pre-compile bytecode at install time")
	cmd.Flags().BoolVar(&f.zip, "zip", false, "compact site-packages into a single zip")
}

// buildContext resolves flags against config defaults into a pipeline
// Context for the given requirements
func (f *buildFlags) buildContext(prefix string, reqs []string) *pipeline.Context {
	pythonBin := f.pythonBin
	if pythonBin == "" {
		pythonBin = config.PythonBin
	}
	pythonName := f.pythonName
	if pythonName == "" {
		pythonName = config.PythonName
	}
	name := f.name
	if name == "" {
		if wd, err := os.Getwd(); err == nil {
			name = filepath.Base(wd)
		} else {
			name = "localpkg"
		}
	}

	return &pipeline.Context{
		PythonBin:    pythonBin,
		PythonName:   pythonName,
		Name:         name,
		Compile:      f.compile,
		Zip:          f.zip,
		Prefix:       prefix,
		Requirements: reqs,
	}
}

// packageFlags holds the metadata flags shared by the package formats
type packageFlags struct {
	version    string
	maintainer string
	outputDir  string
}

func (f *packageFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.version, "version", "0.0.1", "package version")
	cmd.Flags().StringVar(&f.maintainer, "maintainer", "", "package maintainer (default from config)")
	cmd.Flags().StringVar(&f.outputDir, "output-dir", "", "artifact destination (default from config)")
}

func (f *packageFlags) options() *core.Options {
	maintainer := f.maintainer
	if maintainer == "" {
		maintainer = config.Maintainer
	}
	outputDir := f.outputDir
	if outputDir == "" {
		outputDir = config.OutputDir
	}
	return &core.Options{
		Version:    f.version,
		Maintainer: maintainer,
		OutputDir:  outputDir,
	}
}

// runFormat is the shared flow of every output format command: resolve
// the builder, assert its tools, run the pipeline into a throwaway work
// directory and hand the result to the builder.
func runFormat(format string, bf *buildFlags, opts *core.Options, reqs []string) error {
	ctx := context.Background()

	builder, err := registry.Get(format, logger.With("format", format))
	if err != nil {
		return err
	}
	if err := builder.CheckTools(); err != nil {
		return err
	}

	workDir, err := os.MkdirTemp("", "localpkg-*")
	if err != nil {
		return fmt.Errorf("creating work dir: %w", err)
	}
	defer os.RemoveAll(workDir)

	bctx := bf.buildContext(config.Prefix, reqs)
	runner := pipeline.NewRunner(&pipeline.Config{Logger: logger.With("component", "pipeline")})
	res, err := runner.Run(ctx, bctx, workDir)
	if err != nil {
		return err
	}

	if rel, err := res.RelLibPath(); err == nil {
		logger.Info("installed", "pythonpath", "/"+rel)
	}

	return builder.Build(ctx, res, bctx, opts)
}
