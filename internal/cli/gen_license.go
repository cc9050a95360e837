package cli

import (
	"github.com/spf13/cobra"

	"github.com/aboutkit/aboutkit/internal/files/loader"
	"github.com/aboutkit/aboutkit/internal/gen"
)

var genLicenseFlags struct {
	djc       bool
	library   libraryFlagValues
	scancode  bool
	worksheet string
	excludes  []string
}

var genLicenseCmd = &cobra.Command{
	Use:   "gen_license <location> <output>",
	Short: "Fetch the license texts used by components",
	Long: `Fetch the text of every license key used at LOCATION and write each one to
OUTPUT/<key>.LICENSE.

LOCATION is an ABOUT file, a directory tree or .zip of ABOUT files, an
inventory or, with --scancode, a ScanCode JSON scan. Licenses come from
ScanCode LicenseDB unless --djc selects DejaCode.`,
	Example: `  about gen_license ./thirdparty ./licenses
  about gen_license inventory.csv ./licenses --djc --api_url https://dejacode.example.com/api/v2/licenses/ --api_key $KEY`,
	Args: requireArgs("./thirdparty ./licenses", "location", "output"),
	RunE: runGenLicense,
}

func init() {
	rootCmd.AddCommand(genLicenseCmd)

	genLicenseCmd.Flags().BoolVar(&genLicenseFlags.djc, "djc", false,
		"Fetch from DejaCode instead of ScanCode LicenseDB")
	addLibraryFlags(genLicenseCmd, &genLicenseFlags.library)
	genLicenseCmd.Flags().BoolVar(&genLicenseFlags.scancode, "scancode", false,
		"Read LOCATION as a ScanCode JSON scan")
	genLicenseCmd.Flags().StringVar(&genLicenseFlags.worksheet, "worksheet", "",
		"XLSX worksheet to read (default: first sheet)")
	genLicenseCmd.Flags().StringArrayVar(&genLicenseFlags.excludes, "exclude", nil,
		"Exclude paths matching this doublestar pattern (repeatable)")
}

func runGenLicense(cmd *cobra.Command, args []string) error {
	location, output := args[0], args[1]

	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	lib, err := s.licenseLibrary(genLicenseFlags.djc, genLicenseFlags.library)
	if err != nil {
		return err
	}

	res, err := loader.NewLoader(loader.Options{
		ScanCode:  genLicenseFlags.scancode,
		Worksheet: genLicenseFlags.worksheet,
		Excludes:  append(append([]string{}, s.cfg.Exclude...), genLicenseFlags.excludes...),
		Logger:    s.logger,
	}).Load(location)
	if err != nil {
		return err
	}
	defer res.Close()

	ctx, cancel := commandContext(s.err)
	defer cancel()

	written, diags, err := gen.WriteLicenses(ctx, lib, res.Records, output)
	if err != nil {
		return err
	}
	s.report(diags, output)
	s.reporter.Summary("Generated %d license file(s) in %s with %d errors or warnings",
		len(written), output, diags.Unique().CountProblems())
	return nil
}
