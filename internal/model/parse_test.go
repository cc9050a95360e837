package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_ScalarsAndLists(t *testing.T) {
	text := `about_resource: zlib
Name: zlib
version: 1.2.11
description: |
  A massively spiffy yet delicately unobtrusive
  compression library.
contact:
  - jloup@gzip.org
  - madler@alumni.caltech.edu
notes:
`
	result, err := Parse(text, "zlib.ABOUT")
	require.NoError(t, err)
	assert.Empty(t, result.DuplicateKeys)

	require.Len(t, result.Pairs, 6)
	assert.Equal(t, Pair{Name: "Name", Value: "zlib", Line: 2}, result.Pairs[1])
	assert.Equal(t, "1.2.11", result.Pairs[2].Value)
	assert.Equal(t, "A massively spiffy yet delicately unobtrusive\ncompression library.\n", result.Pairs[3].Value)
	assert.Equal(t, "jloup@gzip.org\nmadler@alumni.caltech.edu", result.Pairs[4].Value)
	assert.Equal(t, "", result.Pairs[5].Value)
}

func TestParse_TabsAreReplaced(t *testing.T) {
	result, err := Parse("name:\tzlib\n", "a.ABOUT")
	require.NoError(t, err)
	assert.Equal(t, "zlib", result.Pairs[0].Value)
}

func TestParse_DuplicateKeysIgnoreCase(t *testing.T) {
	result, err := Parse("name: a\nNAME: b\nversion: 1\nname: c\n", "a.ABOUT")
	require.NoError(t, err)
	assert.Equal(t, []string{"NAME"}, result.DuplicateKeys)
}

func TestParse_LicensesBlock(t *testing.T) {
	text := `name: x
licenses:
  - key: mit
    name: MIT License
    file: mit.LICENSE
  - key: apache-2.0
    name: Apache 2.0
    file: apache-2.0.LICENSE
    url: https://www.apache.org/licenses/LICENSE-2.0
`
	result, err := Parse(text, "x.ABOUT")
	require.NoError(t, err)

	values := map[string]string{}
	for _, p := range result.Pairs {
		values[p.Name] = p.Value
	}
	assert.Equal(t, "mit\napache-2.0", values["license_key"])
	assert.Equal(t, "MIT License\nApache 2.0", values["license_name"])
	assert.Equal(t, "mit.LICENSE\napache-2.0.LICENSE", values["license_file"])
	assert.Equal(t, "\nhttps://www.apache.org/licenses/LICENSE-2.0", values["license_url"])
	_, hasSPDX := values["spdx_license_key"]
	assert.False(t, hasSPDX)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"not a mapping", "- a\n- b\n"},
		{"invalid yaml", "name: a: b\n"},
		{"nested mapping", "name:\n  first: a\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.text, "bad.ABOUT")
			require.Error(t, err)
			assert.True(t, IsParseError(err))
			assert.Contains(t, err.Error(), "bad.ABOUT")
		})
	}
}

func TestParse_Empty(t *testing.T) {
	result, err := Parse("", "empty.ABOUT")
	require.NoError(t, err)
	assert.Empty(t, result.Pairs)
}
