package cli

import (
	"fmt"
	"os"

	"github.com/mvp-joe/preproc-explorer/internal/logging"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	cfgFile  string
	rootDir  string
	verbose  bool
	logLevel string

	// logger writes to stderr so stdout stays clean for rendered trees and MCP
	logger = zerolog.Nop()
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "preproc",
	Short: "Explore AL preprocessor symbols",
	Long: `preproc scans an AL workspace for preprocessor directives (#define, #if,
#elseif, #ifdef, #ifndef) and groups every occurrence into a tree:

  folder → #symbol → object file → line

The tree can be printed, kept up to date while files change, or served to
coding assistants over the Model Context Protocol.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initLogging)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .preproc/config.yml in the workspace root)")
	rootCmd.PersistentFlags().StringVarP(&rootDir, "root", "C", "", "workspace root (default is the current directory)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error or off")
}

// initLogging configures the shared logger from the global flags.
func initLogging() {
	logger = logging.New(loggingConfig(logLevel, verbose))
}

// loggingConfig maps the global flags to a logging config. --verbose wins
// over --log-level.
func loggingConfig(level string, verbose bool) logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level = logging.ParseLevel(level)
	if verbose {
		cfg.Level = zerolog.DebugLevel
	}
	return cfg
}
