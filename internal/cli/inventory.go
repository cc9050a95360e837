package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aboutkit/aboutkit/internal/files/loader"
	"github.com/aboutkit/aboutkit/internal/inventory"
	"github.com/aboutkit/aboutkit/pkg/about"
)

var inventoryFlags struct {
	format   string
	excludes []string
}

var inventoryCmd = &cobra.Command{
	Use:   "inventory <location> <output>",
	Short: "Collect ABOUT files into an inventory",
	Long: `Collect the ABOUT files found at LOCATION and write an inventory to OUTPUT.

LOCATION is an ABOUT file, a directory tree or a .zip archive of ABOUT files.
Each ABOUT file becomes one row; about_resource comes first, then the
standard fields in order, then custom fields sorted by name.

--exclude takes doublestar patterns matched against paths relative to
LOCATION, e.g. --exclude 'vendor/**' --exclude '**/*-test.ABOUT'.`,
	Args:              requireArgs("./thirdparty inventory.csv", "location", "output"),
	RunE:              runInventory,
	ValidArgsFunction: cobra.NoFileCompletions,
}

func init() {
	rootCmd.AddCommand(inventoryCmd)

	inventoryCmd.Flags().StringVarP(&inventoryFlags.format, "format", "f", "csv",
		"Output format: csv, json or excel")
	inventoryCmd.Flags().StringArrayVar(&inventoryFlags.excludes, "exclude", nil,
		"Exclude paths matching this doublestar pattern (repeatable)")

	_ = inventoryCmd.RegisterFlagCompletionFunc("format", completeFormats)
}

func runInventory(cmd *cobra.Command, args []string) error {
	location, output := args[0], args[1]

	format, err := inventory.ParseFormat(inventoryFlags.format)
	if err != nil {
		return err
	}
	if err := requireOutputParent(output); err != nil {
		return err
	}

	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	res, err := loader.NewLoader(loader.Options{
		Excludes: append(append([]string{}, s.cfg.Exclude...), inventoryFlags.excludes...),
		Logger:   s.logger,
	}).Load(location)
	if err != nil {
		return err
	}
	defer res.Close()

	logDir := filepath.Dir(output)
	if res.DuplicateKeys {
		s.report(res.Diagnostics, logDir)
		s.reporter.Summary("Duplicated key names are not supported. Please correct and re-run.")
		return fmt.Errorf("%w: duplicated key names", about.ErrValidationFailed)
	}

	if err := inventory.Write(output, format, inventory.FromRecords(res.Records)); err != nil {
		return err
	}
	s.report(res.Diagnostics, logDir)
	s.reporter.Summary("Collected %d ABOUT file(s) into %s with %d errors or warnings",
		len(res.Records), output, res.Diagnostics.Unique().CountProblems())
	return nil
}
