package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "about",
	Short: "Document the origin and license of third-party software",
	Long: `about maintains ABOUT files: small YAML records kept beside third-party
code that describe where it came from, who holds its copyright and under
which license it is used.

It collects ABOUT files into inventories, generates them from inventories,
validates them, renders attribution documents and gathers the sources that
must be redistributed.

Exit Codes:
  0  - Success
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration or parameters
  11 - Unreadable input or unusable output location
  12 - Problems found while validating ABOUT data
  13 - Attribution template failed to parse or render
  14 - License library unreachable or refused access`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo(rootCmd.OutOrStdout())
		return nil
	}
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&globalFlags.verbose, "verbose", "v", false,
		"Print all diagnostics, including INFO and DEBUG")
	rootCmd.PersistentFlags().BoolVarP(&globalFlags.quiet, "quiet", "q", false,
		"Print no diagnostics")
	rootCmd.PersistentFlags().StringVar(&globalFlags.configPath, "config", "",
		"Project configuration file (default: ./about.yaml when present)")
	rootCmd.PersistentFlags().BoolVar(&globalFlags.noColor, "no-color", false,
		"Disable colored diagnostics (also honours $NO_COLOR)")
}
