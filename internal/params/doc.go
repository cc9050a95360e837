// Package params parses the user variables passed to attribution templates.
//
// Variables come from repeated --vartext key=value flags and from an
// optional var file in .env format. Flag values override file values.
//
//	vars, err := params.Merge(fileVars, flagVars)
//	// In a template: {{ .Variables.product }}
package params
