// internal/cli/apk.go
package cli

import (
	"github.com/spf13/cobra"
)

var (
	apkFlags    buildFlags
	apkPkgFlags packageFlags
	apkArch     string
	apkKeyPath  string
)

var apkCmd = &cobra.Command{
	Use:   "apk [requirement...]",
	Short: "Build an Alpine package",
	Long: `Install requirements and wrap the tree as an .apk via abuild.
Requires abuild and a configured abuild-sign key.

Examples:
  localpkg apk httpie
  localpkg apk --arch=noarch --key=~/.abuild/key.rsa httpie`,
	Args: cobra.MinimumNArgs(1),
	RunE: runApk,
}

func init() {
	apkFlags.register(apkCmd)
	apkPkgFlags.register(apkCmd)
	apkCmd.Flags().StringVar(&apkArch, "arch", "", "CARCH override (default noarch)")
	apkCmd.Flags().StringVar(&apkKeyPath, "key", "", "private signing key path, passed to abuild")
}

func runApk(cmd *cobra.Command, args []string) error {
	opts := apkPkgFlags.options()
	opts.Architecture = apkArch
	opts.KeyPath = apkKeyPath
	return runFormat("apk", &apkFlags, opts, args)
}
