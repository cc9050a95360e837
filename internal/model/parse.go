package model

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Pair is one field as read from an ABOUT file, in file order.
type Pair struct {
	Name  string
	Value string
	Line  int
}

// ParseResult is the outcome of Parse.
type ParseResult struct {
	Pairs []Pair
	// DuplicateKeys lists keys that appear more than once, ignoring case.
	DuplicateKeys []string
}

// Parse reads ABOUT text. Tabs are replaced by spaces first. Sequences of
// scalars are joined with newlines. A `licenses` sequence of mappings is
// expanded into the license_key, license_name, license_file, license_url and
// spdx_license_key fields.
func Parse(text string, filePath string) (*ParseResult, error) {
	text = strings.ReplaceAll(text, "\t", " ")

	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(text), &doc); err != nil {
		return nil, wrapYAMLError(err, filePath)
	}

	result := &ParseResult{}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return result, nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, &ParseError{
			FilePath: filePath,
			Line:     root.Line,
			Message:  "content is not a mapping of field names to values",
			Hint:     "each line should read 'name: value'",
		}
	}

	seen := make(map[string]int)
	for i := 0; i+1 < len(root.Content); i += 2 {
		keyNode, valueNode := root.Content[i], root.Content[i+1]
		name := strings.TrimSpace(keyNode.Value)
		lower := strings.ToLower(name)
		seen[lower]++
		if seen[lower] == 2 {
			result.DuplicateKeys = append(result.DuplicateKeys, name)
		}

		if lower == FieldLicenses && valueNode.Kind == yaml.SequenceNode {
			pairs, err := expandLicenses(valueNode, filePath)
			if err != nil {
				return nil, err
			}
			result.Pairs = append(result.Pairs, pairs...)
			continue
		}

		value, err := scalarText(valueNode, name, filePath)
		if err != nil {
			return nil, err
		}
		result.Pairs = append(result.Pairs, Pair{Name: name, Value: value, Line: keyNode.Line})
	}
	return result, nil
}

// scalarText flattens a value node: scalars as-is, sequences of scalars
// joined by newlines, null as "".
func scalarText(n *yaml.Node, name, filePath string) (string, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		if n.Tag == "!!null" {
			return "", nil
		}
		return n.Value, nil
	case yaml.SequenceNode:
		items := make([]string, 0, len(n.Content))
		for _, item := range n.Content {
			if item.Kind != yaml.ScalarNode {
				return "", &ParseError{
					FilePath: filePath,
					Line:     item.Line,
					Message:  fmt.Sprintf("field %s: nested values are not supported", name),
				}
			}
			if item.Tag == "!!null" {
				items = append(items, "")
				continue
			}
			items = append(items, item.Value)
		}
		return strings.Join(items, "\n"), nil
	case yaml.AliasNode:
		return scalarText(n.Alias, name, filePath)
	default:
		return "", &ParseError{
			FilePath: filePath,
			Line:     n.Line,
			Message:  fmt.Sprintf("field %s: nested mappings are not supported", name),
		}
	}
}

// expandLicenses turns a `licenses` block into flat pairs, keeping entries
// aligned by index so that the n-th key, name and file belong together.
func expandLicenses(seq *yaml.Node, filePath string) ([]Pair, error) {
	columns := make(map[string][]string)
	present := make(map[string]bool)
	for _, entry := range seq.Content {
		if entry.Kind != yaml.MappingNode {
			return nil, &ParseError{
				FilePath: filePath,
				Line:     entry.Line,
				Message:  "licenses entries must be mappings with key, name, file and url",
			}
		}
		values := make(map[string]string)
		for i := 0; i+1 < len(entry.Content); i += 2 {
			k := strings.ToLower(strings.TrimSpace(entry.Content[i].Value))
			v, err := scalarText(entry.Content[i+1], "licenses."+k, filePath)
			if err != nil {
				return nil, err
			}
			values[k] = v
		}
		for _, m := range licenseBlockFields {
			v, ok := values[m.Key]
			if ok {
				present[m.Field] = true
			}
			columns[m.Field] = append(columns[m.Field], v)
		}
	}

	var pairs []Pair
	for _, m := range licenseBlockFields {
		if !present[m.Field] {
			continue
		}
		pairs = append(pairs, Pair{Name: m.Field, Value: strings.Join(columns[m.Field], "\n"), Line: seq.Line})
	}
	return pairs, nil
}
