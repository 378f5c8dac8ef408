// internal/cli/rpm.go
package cli

import (
	"github.com/spf13/cobra"
)

var (
	rpmFlags    buildFlags
	rpmPkgFlags packageFlags
)

var rpmCmd = &cobra.Command{
	Use:   "rpm [requirement...]",
	Short: "Build a noarch RPM",
	Long: `Install requirements and wrap the tree as a .rpm via rpmbuild.
Requires rpmbuild on PATH.

Examples:
  localpkg rpm httpie
  localpkg rpm --version=1.0.0 httpie`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRpm,
}

func init() {
	rpmFlags.register(rpmCmd)
	rpmPkgFlags.register(rpmCmd)
}

func runRpm(cmd *cobra.Command, args []string) error {
	return runFormat("rpm", &rpmFlags, rpmPkgFlags.options(), args)
}
