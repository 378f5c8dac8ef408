// internal/cli/tar.go
package cli

import (
	"github.com/spf13/cobra"

	"github.com/wtnb75/localpkg/pkg/core"
)

var (
	tarFlags       buildFlags
	tarOutputDir   string
	tarCompression string
)

var tarCmd = &cobra.Command{
	Use:   "tar [requirement...]",
	Short: "Build a compressed tarball",
	Long: `Install requirements into a work tree and wrap it as <name>.tar.gz.

Examples:
  localpkg tar httpie
  localpkg tar --zip --compression=xz "ansible-core>=2.16"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runTar,
}

func init() {
	tarFlags.register(tarCmd)
	tarCmd.Flags().StringVar(&tarOutputDir, "output-dir", "", "artifact destination (default from config)")
	tarCmd.Flags().StringVar(&tarCompression, "compression", "gz", "tar compression: gz or xz")
}

func runTar(cmd *cobra.Command, args []string) error {
	outputDir := tarOutputDir
	if outputDir == "" {
		outputDir = config.OutputDir
	}
	opts := &core.Options{
		OutputDir:   outputDir,
		Compression: tarCompression,
	}
	return runFormat("tar", &tarFlags, opts, args)
}
