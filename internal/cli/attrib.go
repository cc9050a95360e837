package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aboutkit/aboutkit/internal/attrib"
	"github.com/aboutkit/aboutkit/internal/files/loader"
	"github.com/aboutkit/aboutkit/internal/inventory"
	"github.com/aboutkit/aboutkit/internal/license"
	"github.com/aboutkit/aboutkit/internal/params"
	"github.com/aboutkit/aboutkit/pkg/about"
)

var attribFlags struct {
	template        string
	vartext         []string
	vartextFile     string
	reference       string
	fetchLicense    bool
	fetchLicenseDJC bool
	library         libraryFlagValues
	scancode        bool
	minLicenseScore float64
	worksheet       string
	inventory       string
	excludes        []string
}

var attribCmd = &cobra.Command{
	Use:   "attrib <input> <output>",
	Short: "Render an attribution document",
	Long: `Render an attribution document for the components found at INPUT and write
it to OUTPUT.

INPUT is an ABOUT file, a directory tree or .zip of ABOUT files, an
inventory (.csv, .json, .xlsx) or, with --scancode, a ScanCode JSON scan.

The document is rendered with the built-in default.html template unless
--template names a built-in template or a template file. Templates ending
in .html or .htm are HTML-escaped; others render as plain text. Sprig
functions are available, plus multiSort and uniqueTogether.

Variables passed with --vartext or --vartext-file are available to the
template as .Variables.`,
	Example: `  about attrib ./thirdparty attribution.html
  about attrib inventory.csv NOTICE.txt --template default.txt
  about attrib scan.json attribution.html --scancode --min-license-score 90
  about attrib ./thirdparty attribution.html --vartext title="Acme OSS" --reference ./licenses`,
	Args: requireArgs("./thirdparty attribution.html", "input", "output"),
	RunE: runAttrib,
}

func init() {
	rootCmd.AddCommand(attribCmd)

	f := attribCmd.Flags()
	f.StringVar(&attribFlags.template, "template", "",
		"Template file or built-in template name (default: default.html)")
	f.StringArrayVar(&attribFlags.vartext, "vartext", nil,
		"Template variable (key=value, repeatable)")
	f.StringVar(&attribFlags.vartextFile, "vartext-file", "",
		"File of key=value template variables (.env format)")
	f.StringVar(&attribFlags.reference, "reference", "",
		"Directory holding <key>.LICENSE texts")
	f.BoolVar(&attribFlags.fetchLicense, "fetch-license", false,
		"Fetch missing license texts from ScanCode LicenseDB")
	f.BoolVar(&attribFlags.fetchLicenseDJC, "fetch-license-djc", false,
		"Fetch missing license texts from DejaCode")
	addLibraryFlags(attribCmd, &attribFlags.library)
	f.BoolVar(&attribFlags.scancode, "scancode", false,
		"Read INPUT as a ScanCode JSON scan")
	f.Float64Var(&attribFlags.minLicenseScore, "min-license-score", 0,
		"Drop ScanCode license detections scoring below this value (requires --scancode)")
	f.StringVar(&attribFlags.worksheet, "worksheet", "",
		"XLSX worksheet to read (default: first sheet)")
	f.StringVar(&attribFlags.inventory, "inventory", "",
		"Only render the components listed in this inventory")
	f.StringArrayVar(&attribFlags.excludes, "exclude", nil,
		"Exclude paths matching this doublestar pattern (repeatable)")

	attribCmd.MarkFlagsMutuallyExclusive("fetch-license", "fetch-license-djc")
	_ = attribCmd.RegisterFlagCompletionFunc("template", completeTemplates)
}

func runAttrib(cmd *cobra.Command, args []string) error {
	input, output := args[0], args[1]

	if cmd.Flags().Changed("min-license-score") && !attribFlags.scancode {
		return fmt.Errorf("invalid argument: --min-license-score requires --scancode")
	}
	if err := requireOutputParent(output); err != nil {
		return err
	}

	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	logDir := filepath.Dir(output)

	variables, err := attribVariables(s.cfg.Variables)
	if err != nil {
		return err
	}

	templatePath := attribFlags.template
	if templatePath == "" {
		templatePath = s.cfg.Template
	}
	tmpl, err := attrib.LoadTemplate(templatePath)
	if err != nil {
		var terr *attrib.TemplateError
		if errors.As(err, &terr) {
			s.report(about.Diagnostics{terr.Diagnostic()}, logDir)
		}
		return err
	}

	var lib license.Library
	if attribFlags.fetchLicense || attribFlags.fetchLicenseDJC {
		if lib, err = s.licenseLibrary(attribFlags.fetchLicenseDJC, attribFlags.library); err != nil {
			return err
		}
	}

	reference := s.referenceDir(attribFlags.reference)
	res, err := loader.NewLoader(loader.Options{
		ScanCode:        attribFlags.scancode,
		MinLicenseScore: attribFlags.minLicenseScore,
		Worksheet:       attribFlags.worksheet,
		ReferenceDir:    reference,
		Excludes:        append(append([]string{}, s.cfg.Exclude...), attribFlags.excludes...),
		Logger:          s.logger,
	}).Load(input)
	if err != nil {
		return err
	}
	defer res.Close()

	records := res.Records
	if attribFlags.inventory != "" {
		inv, err := inventory.Read(attribFlags.inventory, inventory.ReadOptions{Worksheet: attribFlags.worksheet})
		if err != nil {
			return err
		}
		records = attrib.FilterByInventory(records, inv)
		s.logger.Verbose("Selected %d of %d components from %s", len(records), len(res.Records), attribFlags.inventory)
	}

	ctx, cancel := commandContext(s.err)
	defer cancel()

	v, _, _ := resolveVersionInfo()
	text, diags, err := attrib.Generate(ctx, tmpl, records, attrib.Options{
		ReferenceDir:    reference,
		Library:         lib,
		Variables:       variables,
		MinLicenseScore: attribFlags.minLicenseScore,
		ToolVersion:     v,
		Logger:          s.logger,
	})
	var all about.Diagnostics
	all.Extend(res.Diagnostics)
	all.Extend(diags)
	if err != nil {
		s.report(all, logDir)
		return err
	}
	if err := attrib.WriteFile(output, text); err != nil {
		return err
	}

	s.report(all, logDir)
	s.reporter.Summary("Generated attribution for %d component(s) in %s with %d errors or warnings",
		len(records), output, all.Unique().CountProblems())
	return nil
}

// attribVariables merges template variables: config, then --vartext-file,
// then --vartext.
func attribVariables(configured map[string]string) (map[string]string, error) {
	var fileVars map[string]string
	if attribFlags.vartextFile != "" {
		var err error
		if fileVars, err = params.ReadVarFile(attribFlags.vartextFile); err != nil {
			return nil, fmt.Errorf("%w: %v", about.ErrInvalidInput, err)
		}
	}
	cliVars, err := params.ParseKeyValuePairs(attribFlags.vartext)
	if err != nil {
		return nil, fmt.Errorf("invalid argument: --vartext: %w", err)
	}
	return params.Merge(configured, fileVars, cliVars), nil
}
