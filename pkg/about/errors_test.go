package about_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/aboutkit/aboutkit/pkg/about"
)

func TestExitCodeForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, about.ExitSuccess},
		{"general error", errors.New("something went wrong"), about.ExitGeneralError},
		{"unknown flag", errors.New("unknown flag --foo"), about.ExitUsageError},
		{"unknown shorthand flag", errors.New("unknown shorthand flag: 'x'"), about.ExitUsageError},
		{"accepts args", errors.New("accepts 2 arg(s), received 0"), about.ExitUsageError},
		{"missing argument", errors.New("missing required argument: <output>"), about.ExitUsageError},
		{"invalid argument", errors.New("invalid argument \"abc\" for \"--min-license-score\""), about.ExitUsageError},
		{"config", about.ErrInvalidConfig, about.ExitConfigError},
		{"wrapped input", fmt.Errorf("read inventory: %w", about.ErrInvalidInput), about.ExitInputError},
		{"output", about.ErrOutputLocation, about.ExitInputError},
		{"validation", about.ErrValidationFailed, about.ExitValidationFailed},
		{"template", fmt.Errorf("%w: bad", about.ErrTemplate), about.ExitTemplateError},
		{"unauthorized", about.ErrUnauthorized, about.ExitLicenseLibrary},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := about.ExitCodeForError(tt.err); got != tt.want {
				t.Errorf("ExitCodeForError(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
