package model

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Dump serializes the record as ABOUT text in canonical field order.
// When license keys are known, license fields are written as a `licenses`
// block instead of parallel lists.
func (r *Record) Dump(withAbsent, withEmpty bool) (string, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}

	licenseBlock := r.licensesNode()
	for _, f := range r.Fields(withAbsent, withEmpty) {
		if licenseBlock != nil && isLicenseBlockField(f.Name) {
			if f.Name == FieldLicenseKey {
				root.Content = append(root.Content, keyNode(FieldLicenses), licenseBlock)
			}
			continue
		}
		root.Content = append(root.Content, keyNode(f.Name), valueNode(f))
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return "", fmt.Errorf("failed to serialize %s: %w", r.AboutFilePath, err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("failed to serialize %s: %w", r.AboutFilePath, err)
	}
	out := buf.String()
	if out == "{}\n" {
		return "", nil
	}
	return out, nil
}

// WriteFile dumps the record to location, creating parent directories.
func (r *Record) WriteFile(location string, withAbsent, withEmpty bool) error {
	text, err := r.Dump(withAbsent, withEmpty)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(location), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", location, err)
	}
	if err := os.WriteFile(location, []byte(text), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", location, err)
	}
	return nil
}

func isLicenseBlockField(name string) bool {
	for _, m := range licenseBlockFields {
		if m.Field == name {
			return true
		}
	}
	return false
}

// licensesNode builds the `licenses` block, or nil when there are no keys.
func (r *Record) licensesNode() *yaml.Node {
	refs := r.LicenseRefs()
	if !r.Has(FieldLicenseKey) || len(refs) == 0 {
		return nil
	}
	seq := &yaml.Node{Kind: yaml.SequenceNode}
	for _, ref := range refs {
		entry := &yaml.Node{Kind: yaml.MappingNode}
		add := func(k, v string) {
			if v == "" {
				return
			}
			entry.Content = append(entry.Content, keyNode(k), textNode(v))
		}
		add("key", ref.Key)
		add("name", ref.Name)
		add("file", ref.Filename)
		add("url", ref.URL)
		add("spdx_license_key", ref.SPDXKey)
		seq.Content = append(seq.Content, entry)
	}
	return seq
}

func keyNode(name string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Value: name}
}

func valueNode(f *Field) *yaml.Node {
	if !f.Present {
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: ""}
	}
	if f.Kind == KindBoolean {
		return &yaml.Node{Kind: yaml.ScalarNode, Value: f.Value()}
	}
	if f.Kind.IsList() {
		items := f.Items()
		if len(items) > 1 {
			seq := &yaml.Node{Kind: yaml.SequenceNode}
			for _, item := range items {
				seq.Content = append(seq.Content, textNode(item))
			}
			return seq
		}
	}
	return textNode(f.Value())
}

// textNode renders plain scalars where possible. Values YAML would read as
// null are forced to strings.
func textNode(v string) *yaml.Node {
	n := &yaml.Node{Kind: yaml.ScalarNode, Value: v}
	switch strings.ToLower(v) {
	case "", "~", "null":
		n.Tag = "!!str"
	}
	if strings.Contains(v, "\n") {
		n.Style = yaml.LiteralStyle
	}
	return n
}
