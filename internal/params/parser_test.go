package params

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseKeyValuePairs(t *testing.T) {
	tests := []struct {
		name    string
		input   []string
		want    map[string]string
		wantErr string
	}{
		{
			name:  "single pair",
			input: []string{"product=Widget"},
			want:  map[string]string{"product": "Widget"},
		},
		{
			name:  "multiple pairs",
			input: []string{"product=Widget", "version=2.0", "vendor=ACME Inc."},
			want:  map[string]string{"product": "Widget", "version": "2.0", "vendor": "ACME Inc."},
		},
		{
			name:  "nil input",
			input: nil,
			want:  map[string]string{},
		},
		{
			name:  "empty value",
			input: []string{"subtitle="},
			want:  map[string]string{"subtitle": ""},
		},
		{
			name:  "value with equals",
			input: []string{"footer=a=b"},
			want:  map[string]string{"footer": "a=b"},
		},
		{
			name:  "key is trimmed",
			input: []string{" product =Widget"},
			want:  map[string]string{"product": "Widget"},
		},
		{
			name:    "missing equals",
			input:   []string{"product"},
			wantErr: "not in key=value format",
		},
		{
			name:    "empty key",
			input:   []string{"=value"},
			wantErr: "empty key",
		},
		{
			name:  "duplicate key last wins",
			input: []string{"version=1", "version=2"},
			want:  map[string]string{"version": "2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseKeyValuePairs(tt.input)
			if tt.wantErr != "" {
				if err == nil {
					t.Fatalf("Expected error containing %q, got nil", tt.wantErr)
				}
				if !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("Expected error containing %q, got: %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMerge(t *testing.T) {
	got := Merge(
		map[string]string{"product": "File", "vendor": "ACME"},
		nil,
		map[string]string{"product": "Flag"},
	)
	assert.Equal(t, map[string]string{"product": "Flag", "vendor": "ACME"}, got)
}
