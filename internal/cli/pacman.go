// internal/cli/pacman.go
package cli

import (
	"github.com/spf13/cobra"
)

var (
	pacmanFlags    buildFlags
	pacmanPkgFlags packageFlags
)

var pacmanCmd = &cobra.Command{
	Use:   "pacman [requirement...]",
	Short: "Build an Arch package",
	Long: `Install requirements and wrap the tree as a pacman package via
makepkg. Requires makepkg and debugedit on PATH.

Examples:
  localpkg pacman httpie
  localpkg pacman --version=1.0.0 httpie`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPacman,
}

func init() {
	pacmanFlags.register(pacmanCmd)
	pacmanPkgFlags.register(pacmanCmd)
}

func runPacman(cmd *cobra.Command, args []string) error {
	return runFormat("pacman", &pacmanFlags, pacmanPkgFlags.options(), args)
}
