// internal/cli/deb.go
package cli

import (
	"github.com/spf13/cobra"
)

var (
	debFlags    buildFlags
	debPkgFlags packageFlags
)

var debCmd = &cobra.Command{
	Use:   "deb [requirement...]",
	Short: "Build a Debian package",
	Long: `Install requirements and wrap the tree as a .deb via dpkg-deb.
Requires fakeroot and dpkg-deb on PATH.

Examples:
  localpkg deb httpie
  localpkg deb --version=1.0.0 --maintainer="Dev <dev@example.com>" httpie`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDeb,
}

func init() {
	debFlags.register(debCmd)
	debPkgFlags.register(debCmd)
}

func runDeb(cmd *cobra.Command, args []string) error {
	return runFormat("deb", &debFlags, debPkgFlags.options(), args)
}
