// internal/cli/root.go
package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/wtnb75/localpkg/pkg/core"
)

var (
	cfgFile string
	verbose bool
	quiet   bool
	config  *core.Config
	logger  *log.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "localpkg",
	Short: "Pack Python requirements into native packages",
	Long: `localpkg - local Python packaging

Installs a set of pip requirements into a relocatable tree and wraps it
into a distribution-native artifact: tarball, deb, rpm, apk, pacman or nar.`,
	Version: "0.1.0",
}

// Execute executes the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/localpkg/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "debug logging")
	rootCmd.PersistentFlags().BoolVar(&quiet, "quiet", false, "warnings and errors only")

	// Add commands
	rootCmd.AddCommand(installCmd)
	rootCmd.AddCommand(tarCmd)
	rootCmd.AddCommand(debCmd)
	rootCmd.AddCommand(rpmCmd)
	rootCmd.AddCommand(apkCmd)
	rootCmd.AddCommand(pacmanCmd)
	rootCmd.AddCommand(narCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	var err error
	config, err = core.LoadConfig(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		config = core.DefaultConfig()
	}

	logger = newLogger()
}

// newLogger maps the tri-state verbosity onto log levels:
// default Info, --quiet Warn, --verbose Debug.
func newLogger() *log.Logger {
	level := log.InfoLevel
	if verbose || config.Debug {
		level = log.DebugLevel
	} else if quiet {
		level = log.WarnLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Level:           level,
	})
}
