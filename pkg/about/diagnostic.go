package about

import (
	"fmt"
	"strings"
)

// Severity mirrors conventional logging levels so that diagnostics can be
// filtered and ordered numerically.
type Severity int

const (
	NotSet   Severity = 0
	Debug    Severity = 10
	Info     Severity = 20
	Warning  Severity = 30
	Error    Severity = 40
	Critical Severity = 50
)

var severityNames = map[Severity]string{
	NotSet:   "NOTSET",
	Debug:    "DEBUG",
	Info:     "INFO",
	Warning:  "WARNING",
	Error:    "ERROR",
	Critical: "CRITICAL",
}

func (s Severity) String() string {
	if name, ok := severityNames[s]; ok {
		return name
	}
	return fmt.Sprintf("LEVEL%d", int(s))
}

// IsProblem reports whether the severity is WARNING or above.
func (s Severity) IsProblem() bool {
	return s >= Warning
}

// ParseSeverity converts a severity name to its value. Matching is case-insensitive.
func ParseSeverity(name string) (Severity, bool) {
	upper := strings.ToUpper(strings.TrimSpace(name))
	for sev, n := range severityNames {
		if n == upper {
			return sev, true
		}
	}
	return NotSet, false
}

// Diagnostic is a severity-leveled message produced while reading,
// validating or writing ABOUT data. Diagnostics are data, not Go errors.
type Diagnostic struct {
	Severity Severity
	Message  string
}

// NewDiagnostic creates a diagnostic with a formatted message.
func NewDiagnostic(sev Severity, format string, args ...interface{}) Diagnostic {
	if len(args) == 0 {
		return Diagnostic{Severity: sev, Message: format}
	}
	return Diagnostic{Severity: sev, Message: fmt.Sprintf(format, args...)}
}

// String renders "SEVERITY: message".
func (d Diagnostic) String() string {
	return d.Severity.String() + ": " + d.Message
}

// Diagnostics is an ordered collection of diagnostics.
type Diagnostics []Diagnostic

// Add appends a formatted diagnostic.
func (ds *Diagnostics) Add(sev Severity, format string, args ...interface{}) {
	*ds = append(*ds, NewDiagnostic(sev, format, args...))
}

// Extend appends all diagnostics of other.
func (ds *Diagnostics) Extend(other Diagnostics) {
	*ds = append(*ds, other...)
}

// HasProblems reports whether any diagnostic is WARNING or above.
func (ds Diagnostics) HasProblems() bool {
	for _, d := range ds {
		if d.Severity.IsProblem() {
			return true
		}
	}
	return false
}

// HasSeverity reports whether any diagnostic is at or above min.
func (ds Diagnostics) HasSeverity(min Severity) bool {
	for _, d := range ds {
		if d.Severity >= min {
			return true
		}
	}
	return false
}

// CountProblems returns the number of WARNING or higher diagnostics.
func (ds Diagnostics) CountProblems() int {
	n := 0
	for _, d := range ds {
		if d.Severity.IsProblem() {
			n++
		}
	}
	return n
}

// Problems returns only WARNING or higher diagnostics.
func (ds Diagnostics) Problems() Diagnostics {
	var out Diagnostics
	for _, d := range ds {
		if d.Severity.IsProblem() {
			out = append(out, d)
		}
	}
	return out
}

// Unique returns the diagnostics with duplicates removed, keeping first occurrences.
func (ds Diagnostics) Unique() Diagnostics {
	seen := make(map[Diagnostic]struct{}, len(ds))
	out := make(Diagnostics, 0, len(ds))
	for _, d := range ds {
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	return out
}

// WithPrefix returns a copy whose messages start with prefix + ": ".
func (ds Diagnostics) WithPrefix(prefix string) Diagnostics {
	out := make(Diagnostics, len(ds))
	for i, d := range ds {
		out[i] = Diagnostic{Severity: d.Severity, Message: prefix + ": " + d.Message}
	}
	return out
}
