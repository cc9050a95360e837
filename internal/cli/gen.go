package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aboutkit/aboutkit/internal/gen"
	"github.com/aboutkit/aboutkit/internal/license"
	"github.com/aboutkit/aboutkit/pkg/about"
)

var genFlags struct {
	fetchLicense    bool
	fetchLicenseDJC bool
	library         libraryFlagValues
	reference       string
	android         bool
	worksheet       string
}

var genCmd = &cobra.Command{
	Use:   "gen <location> <output>",
	Short: "Generate ABOUT files from an inventory",
	Long: `Generate one ABOUT file per row of the inventory at LOCATION under the
existing directory OUTPUT.

LOCATION must be a .csv, .json or .xlsx file with at least the
about_resource and name columns. A resource ending with "/" documents a
directory: lib/zlib/ writes lib/zlib/zlib.ABOUT with about_resource ".".

License texts can be fetched from ScanCode LicenseDB (--fetch-license) or
from DejaCode (--fetch-license-djc with --api_url and --api_key).`,
	Example: `  about gen inventory.csv ./thirdparty
  about gen inventory.xlsx ./thirdparty --worksheet Components --reference ./licenses
  about gen inventory.json ./thirdparty --fetch-license --android`,
	Args: requireArgs("inventory.csv ./thirdparty", "location", "output"),
	RunE: runGen,
}

func init() {
	rootCmd.AddCommand(genCmd)

	genCmd.Flags().BoolVar(&genFlags.fetchLicense, "fetch-license", false,
		"Fetch license texts from ScanCode LicenseDB")
	genCmd.Flags().BoolVar(&genFlags.fetchLicenseDJC, "fetch-license-djc", false,
		"Fetch license texts from DejaCode")
	addLibraryFlags(genCmd, &genFlags.library)
	genCmd.Flags().StringVar(&genFlags.reference, "reference", "",
		"Directory holding license and notice files to copy beside ABOUT files")
	genCmd.Flags().BoolVar(&genFlags.android, "android", false,
		"Also write MODULE_LICENSE_* and NOTICE files for Android builds")
	genCmd.Flags().StringVar(&genFlags.worksheet, "worksheet", "",
		"XLSX worksheet to read (default: first sheet)")

	genCmd.MarkFlagsMutuallyExclusive("fetch-license", "fetch-license-djc")
}

func runGen(cmd *cobra.Command, args []string) error {
	location, output := args[0], args[1]

	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	var lib license.Library
	if genFlags.fetchLicense || genFlags.fetchLicenseDJC {
		if lib, err = s.licenseLibrary(genFlags.fetchLicenseDJC, genFlags.library); err != nil {
			return err
		}
	}

	inv, err := gen.Load(location, genFlags.worksheet)
	if err != nil {
		return err
	}

	ctx, cancel := commandContext(s.err)
	defer cancel()

	res, err := gen.New(gen.Options{
		OutputDir:    output,
		ReferenceDir: s.referenceDir(genFlags.reference),
		Library:      lib,
		Android:      genFlags.android,
		Logger:       s.logger,
	}).Generate(ctx, inv)
	if err != nil {
		return err
	}

	s.report(res.Diagnostics, output)
	s.reporter.Summary("Generated %d .ABOUT files with %d errors or warnings",
		len(res.Records), res.Diagnostics.Unique().CountProblems())
	if res.Aborted {
		return fmt.Errorf("%w: inventory checks failed", about.ErrValidationFailed)
	}
	return nil
}
