// internal/cli/nar.go
package cli

import (
	"github.com/spf13/cobra"

	"github.com/wtnb75/localpkg/pkg/core"
)

var (
	narFlags     buildFlags
	narOutputDir string
)

var narCmd = &cobra.Command{
	Use:   "nar [requirement...]",
	Short: "Build a Nix archive (NAR)",
	Long: `Install requirements and serialize the tree as <name>.nar,
written entirely in-process.

Examples:
  localpkg nar httpie`,
	Args: cobra.MinimumNArgs(1),
	RunE: runNar,
}

func init() {
	narFlags.register(narCmd)
	narCmd.Flags().StringVar(&narOutputDir, "output-dir", "", "artifact destination (default from config)")
}

func runNar(cmd *cobra.Command, args []string) error {
	outputDir := narOutputDir
	if outputDir == "" {
		outputDir = config.OutputDir
	}
	return runFormat("nar", &narFlags, &core.Options{OutputDir: outputDir}, args)
}
