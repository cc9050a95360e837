package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aboutkit/aboutkit/internal/transform"
	"github.com/aboutkit/aboutkit/pkg/about"
)

var transformFlags struct {
	config    string
	worksheet string
}

var transformCmd = &cobra.Command{
	Use:   "transform <location> <output>",
	Short: "Rename, filter and check inventory columns",
	Long: `Transform the inventory at LOCATION and write it to OUTPUT.

Input and output formats follow the file extensions (.csv, .json, .xlsx).
The YAML configuration may declare:

  field_renamings:  map of old column name to new column name
  required_fields:  columns that must have a value in every row
  field_filters:    columns to keep (all when empty)
  exclude_fields:   columns to drop

about_resource and name are always required. Nothing is written when a
problem is found.`,
	Example: `  about transform inventory.xlsx inventory.csv -c transform.yaml
  about transform scan.json inventory.json`,
	Args: requireArgs("inventory.csv cleaned.csv -c transform.yaml", "location", "output"),
	RunE: runTransform,
}

func init() {
	rootCmd.AddCommand(transformCmd)

	transformCmd.Flags().StringVarP(&transformFlags.config, "configuration", "c", "",
		"YAML transform configuration")
	transformCmd.Flags().StringVar(&transformFlags.worksheet, "worksheet", "",
		"XLSX worksheet to read (default: first sheet)")
}

func runTransform(cmd *cobra.Command, args []string) error {
	location, output := args[0], args[1]

	if err := requireOutputParent(output); err != nil {
		return err
	}
	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	cfg := &transform.Config{}
	if transformFlags.config != "" {
		if cfg, err = transform.LoadConfig(transformFlags.config); err != nil {
			return err
		}
	}

	diags, err := transform.File(location, output, cfg, transformFlags.worksheet)
	if err != nil {
		return err
	}
	s.report(diags, filepath.Dir(output))
	if diags.HasSeverity(about.Error) {
		s.reporter.Summary("Transformation aborted with %d errors or warnings", diags.Unique().CountProblems())
		return fmt.Errorf("%w: transformation aborted", about.ErrValidationFailed)
	}
	s.reporter.Summary("Transformed %s to %s", location, output)
	return nil
}
