package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aboutkit/aboutkit/internal/check"
	"github.com/aboutkit/aboutkit/internal/files/loader"
	"github.com/aboutkit/aboutkit/pkg/about"
)

var checkFlags struct {
	license  bool
	djc      bool
	library  libraryFlagValues
	excludes []string
}

var checkCmd = &cobra.Command{
	Use:   "check <location>",
	Short: "Validate ABOUT files",
	Long: `Validate the ABOUT files found at LOCATION and report problems.

With --license (ScanCode LicenseDB) or --djc (DejaCode) every license key
of license_expression is also looked up in the license library.

Exits with code 12 when any WARNING, ERROR or CRITICAL problem is found.`,
	Example: `  about check ./thirdparty
  about check ./thirdparty --license --exclude 'build/**'
  about check ./thirdparty --djc --api_url https://dejacode.example.com/api/v2/licenses/ --api_key $KEY`,
	Args: requireArgs("./thirdparty", "location"),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().BoolVar(&checkFlags.license, "license", false,
		"Look up license keys in ScanCode LicenseDB")
	checkCmd.Flags().BoolVar(&checkFlags.djc, "djc", false,
		"Look up license keys in DejaCode")
	addLibraryFlags(checkCmd, &checkFlags.library)
	checkCmd.Flags().StringArrayVar(&checkFlags.excludes, "exclude", nil,
		"Exclude paths matching this doublestar pattern (repeatable)")

	checkCmd.MarkFlagsMutuallyExclusive("license", "djc")
}

func runCheck(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	res, err := loader.NewLoader(loader.Options{
		Excludes: append(append([]string{}, s.cfg.Exclude...), checkFlags.excludes...),
		Logger:   s.logger,
	}).Load(args[0])
	if err != nil {
		return err
	}
	defer res.Close()

	diags := res.Diagnostics
	if checkFlags.license || checkFlags.djc {
		lib, err := s.licenseLibrary(checkFlags.djc, checkFlags.library)
		if err != nil {
			return err
		}
		ctx, cancel := commandContext(s.err)
		defer cancel()
		diags.Extend(check.Licenses(ctx, lib, res.Records))
		if err := ctx.Err(); err != nil {
			return err
		}
	}

	s.report(diags, "")
	s.reporter.Summary("%s", check.Summary(diags))
	if diags.HasProblems() {
		return fmt.Errorf("%w: %d problem(s) found", about.ErrValidationFailed, diags.Unique().CountProblems())
	}
	return nil
}
