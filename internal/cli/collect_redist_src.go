package cli

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aboutkit/aboutkit/internal/files/loader"
	"github.com/aboutkit/aboutkit/internal/redist"
)

var collectFlags struct {
	fromInventory  string
	withStructures bool
	zip            bool
	worksheet      string
	excludes       []string
}

var collectRedistSrcCmd = &cobra.Command{
	Use:   "collect_redist_src <location> <output>",
	Short: "Collect the sources of redistributable components",
	Long: `Copy the resources of every component marked "redistribute: yes" from the
source tree at LOCATION to OUTPUT.

Components are read from the ABOUT files under LOCATION, or from the
inventory given with --from-inventory. Resources are placed directly in
OUTPUT unless --with-structures keeps their paths. With --zip, OUTPUT is
written as a zip archive and must end in .zip.`,
	Example: `  about collect_redist_src ./src ./redist
  about collect_redist_src ./src redist.zip --zip --with-structures
  about collect_redist_src ./src ./redist --from-inventory inventory.csv`,
	Args: requireArgs("./src ./redist", "location", "output"),
	RunE: runCollectRedistSrc,
}

func init() {
	rootCmd.AddCommand(collectRedistSrcCmd)

	f := collectRedistSrcCmd.Flags()
	f.StringVar(&collectFlags.fromInventory, "from-inventory", "",
		"Read components from this inventory instead of ABOUT files")
	f.BoolVar(&collectFlags.withStructures, "with-structures", false,
		"Keep resource paths relative to LOCATION")
	f.BoolVar(&collectFlags.zip, "zip", false,
		"Write OUTPUT as a zip archive")
	f.StringVar(&collectFlags.worksheet, "worksheet", "",
		"XLSX worksheet of --from-inventory (default: first sheet)")
	f.StringArrayVar(&collectFlags.excludes, "exclude", nil,
		"Exclude paths matching this doublestar pattern (repeatable)")
}

func runCollectRedistSrc(cmd *cobra.Command, args []string) error {
	location, output := args[0], args[1]

	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	source := location
	if collectFlags.fromInventory != "" {
		source = collectFlags.fromInventory
	}
	res, err := loader.NewLoader(loader.Options{
		Worksheet: collectFlags.worksheet,
		Excludes:  append(append([]string{}, s.cfg.Exclude...), collectFlags.excludes...),
		Logger:    s.logger,
	}).Load(source)
	if err != nil {
		return err
	}
	defer res.Close()

	collected, err := redist.Collect(res.Records, location, output, redist.Options{
		WithStructures: collectFlags.withStructures,
		Zip:            collectFlags.zip,
		Logger:         s.logger,
	})
	if err != nil {
		return err
	}

	diags := res.Diagnostics
	diags.Extend(collected.Diagnostics)
	logDir := output
	if collectFlags.zip {
		logDir = filepath.Dir(output)
	}
	s.report(diags, logDir)
	s.reporter.Summary("Collected %d redistributable resource(s)", len(collected.Collected))
	return nil
}
