package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/aboutkit/aboutkit/internal/attrib"
)

// inventoryFormats contains the --format values for shell completion.
var inventoryFormats = []string{"csv", "json", "excel"}

// completeFormats provides shell completion for inventory format flag values.
func completeFormats(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var matches []string
	for _, f := range inventoryFormats {
		if strings.HasPrefix(f, toComplete) {
			matches = append(matches, f)
		}
	}
	return matches, cobra.ShellCompDirectiveNoFileComp
}

// completeTemplates offers the built-in template names and lets the shell
// complete file paths as well.
func completeTemplates(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	names, err := attrib.BuiltinTemplates()
	if err != nil {
		return nil, cobra.ShellCompDirectiveDefault
	}
	var matches []string
	for _, n := range names {
		if strings.HasPrefix(n, toComplete) {
			matches = append(matches, n)
		}
	}
	return matches, cobra.ShellCompDirectiveDefault
}
