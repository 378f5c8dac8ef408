// internal/cli/install.go
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wtnb75/localpkg/pkg/pipeline"
)

var (
	installFlags   buildFlags
	installDestdir string
	installPrefix  string
)

var installCmd = &cobra.Command{
	Use:   "install [requirement...]",
	Short: "Install requirements into an existing destination tree",
	Long: `Install pip requirements into <destdir>/<prefix> and patch the
installed scripts so they find the relocated library tree.

Examples:
  localpkg install --destdir=/tmp/root httpie
  localpkg install --destdir=out --zip --name=mytool "mytool==1.2"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runInstall,
}

func init() {
	installFlags.register(installCmd)
	installCmd.Flags().StringVar(&installDestdir, "destdir", "", "existing destination directory")
	installCmd.Flags().StringVar(&installPrefix, "prefix", "usr", "install prefix under destdir")
	installCmd.MarkFlagRequired("destdir")
}

func runInstall(cmd *cobra.Command, args []string) error {
	info, err := os.Stat(installDestdir)
	if err != nil {
		return fmt.Errorf("destdir: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("destdir %s is not a directory", installDestdir)
	}

	bctx := installFlags.buildContext(installPrefix, args)
	runner := pipeline.NewRunner(&pipeline.Config{Logger: logger.With("component", "pipeline")})
	res, err := runner.Run(context.Background(), bctx, installDestdir)
	if err != nil {
		return err
	}

	fmt.Printf("PYTHONPATH=%s\n", res.LibPath)
	return nil
}
