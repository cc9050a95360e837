package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aboutkit/aboutkit/internal/attrib"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "Inspect the built-in attribution templates",
	Long: `List and print the attribution templates embedded in about.

A built-in template can be copied and customized, then passed to
"about attrib --template FILE".`,
}

var templatesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the built-in templates",
	Args:  cobra.NoArgs,
	RunE:  runTemplatesList,
}

var templatesShowCmd = &cobra.Command{
	Use:               "show <template_name>",
	Short:             "Print the source of a built-in template",
	Args:              requireArgs("default.txt > NOTICE.tmpl", "template_name"),
	ValidArgsFunction: completeTemplateNames,
	RunE:              runTemplatesShow,
}

func init() {
	rootCmd.AddCommand(templatesCmd)
	templatesCmd.AddCommand(templatesListCmd)
	templatesCmd.AddCommand(templatesShowCmd)
}

// templateDescriptions holds a one-line summary per built-in template.
var templateDescriptions = map[string]string{
	"default.html": "HTML document with a table of contents and one section per component",
	"default.txt":  "Plain-text notice listing each component and its license texts",
}

func runTemplatesList(cmd *cobra.Command, args []string) error {
	names, err := attrib.BuiltinTemplates()
	if err != nil {
		return fmt.Errorf("failed to list templates: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Available templates:")
	fmt.Fprintln(out)
	for _, n := range names {
		desc := templateDescriptions[n]
		if desc == "" {
			desc = "No description available"
		}
		if n == attrib.DefaultTemplate {
			desc += " (default)"
		}
		fmt.Fprintf(out, "  %-14s %s\n", n, desc)
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Use: about attrib <input> <output> --template <template_name>")
	return nil
}

func runTemplatesShow(cmd *cobra.Command, args []string) error {
	text, err := attrib.BuiltinSource(args[0])
	if err != nil {
		names, _ := attrib.BuiltinTemplates()
		return fmt.Errorf("%w. Available templates: %s", err, strings.Join(names, ", "))
	}
	fmt.Fprint(cmd.OutOrStdout(), text)
	return nil
}

// completeTemplateNames completes the positional template name.
func completeTemplateNames(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) != 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	matches, _ := completeTemplates(cmd, args, toComplete)
	return matches, cobra.ShellCompDirectiveNoFileComp
}
