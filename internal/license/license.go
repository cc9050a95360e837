package license

import (
	"sort"
	"strings"
)

// License is the reference data for one license key.
type License struct {
	Key     string
	Name    string
	SPDXKey string
	URL     string
	Text    string

	// Filename is the name of the license text file beside an ABOUT file.
	Filename string

	// Score is the detection score when the license comes from a ScanCode scan.
	Score float64
}

// DefaultFilename returns <key>.LICENSE.
func DefaultFilename(key string) string {
	return key + ".LICENSE"
}

// DisplayName returns Name, falling back to Key.
func (l *License) DisplayName() string {
	if strings.TrimSpace(l.Name) != "" {
		return l.Name
	}
	return l.Key
}

// SortByKey returns the licenses sorted by key.
func SortByKey(m map[string]*License) []*License {
	out := make([]*License, 0, len(m))
	for _, l := range m {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}
