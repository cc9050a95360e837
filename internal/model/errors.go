package model

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

// ParseError describes an ABOUT file that is not a valid YAML mapping.
type ParseError struct {
	FilePath string // Path to the file with the error
	Line     int    // Line number (0 if unknown)
	Message  string // Primary error message
	Hint     string // Actionable suggestion for fixing
}

func (e *ParseError) Error() string {
	location := e.FilePath
	if e.Line > 0 {
		location = fmt.Sprintf("%s (line %d)", e.FilePath, e.Line)
	}
	msg := fmt.Sprintf("%s: %s", location, e.Message)
	if e.Hint != "" {
		msg += " (hint: " + e.Hint + ")"
	}
	return msg
}

var yamlLine = regexp.MustCompile(`line (\d+): `)

// wrapYAMLError converts a yaml.v3 error into a ParseError carrying the line.
func wrapYAMLError(err error, filePath string) error {
	msg := err.Error()
	line := 0
	if m := yamlLine.FindStringSubmatchIndex(msg); m != nil {
		line, _ = strconv.Atoi(msg[m[2]:m[3]])
		msg = msg[:m[0]] + msg[m[1]:]
	}
	return &ParseError{
		FilePath: filePath,
		Line:     line,
		Message:  msg,
		Hint:     "values containing ': ' or starting with special characters must be quoted or use a '|' block",
	}
}

// IsParseError reports whether err is a *ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}
