// pkg/pipeline/pipeline.go
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Run executes the full install pipeline into destDir: provision a
// virtual environment, install the requirements under
// <destDir>/<prefix>, relocate the site-packages tree, and patch the
// installed executables. The stages run sequentially and each waits for
// its external tool to exit; the first failure aborts the run.
//
// The temporary environment is always removed, on success and failure
// alike. Mutations already applied to destDir are not rolled back.
func (r *Runner) Run(ctx context.Context, bctx *Context, destDir string) (*Result, error) {
	tmp, err := os.MkdirTemp("", "localpkg-*")
	if err != nil {
		return nil, fmt.Errorf("creating temp dir: %w", err)
	}
	defer os.RemoveAll(tmp)

	env, err := r.createEnv(ctx, bctx.PythonBin, tmp)
	if err != nil {
		return nil, err
	}

	prefixDir := filepath.Join(destDir, bctx.Prefix)
	binDir := filepath.Join(prefixDir, "bin")
	libDir := filepath.Join(prefixDir, "lib")
	siteDir := filepath.Join(libDir, "python"+env.version, "site-packages")
	libZip := filepath.Join(libDir, bctx.Name+".zip")

	if err := r.pipInstall(ctx, env.pip, bctx, prefixDir); err != nil {
		return nil, err
	}

	libPath, err := r.relocate(siteDir, libZip, bctx.Zip)
	if err != nil {
		return nil, err
	}

	if err := r.patchBin(binDir, libPath, bctx.PythonName); err != nil {
		return nil, err
	}

	return &Result{RootDir: destDir, LibPath: libPath}, nil
}
