package attrib

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"io"
	"path"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	texttemplate "text/template"

	"github.com/Masterminds/sprig/v3"

	"github.com/aboutkit/aboutkit/internal/files/filesystem"
	"github.com/aboutkit/aboutkit/pkg/about"
)

//go:embed templates
var builtinFS embed.FS

// DefaultTemplate is the built-in template used when none is given.
const DefaultTemplate = "default.html"

// builtins returns the file system holding the built-in templates.
func builtins() filesystem.FileSystemProvider {
	return filesystem.NewIOFileSystem(builtinFS, "templates")
}

// BuiltinTemplates lists the names of the embedded templates.
func BuiltinTemplates() ([]string, error) {
	dir, err := builtins().Open(".")
	if err != nil {
		return nil, err
	}
	var names []string
	err = dir.Walk(func(f filesystem.File, err error) error {
		if err != nil {
			return err
		}
		if !f.Info().IsDir() {
			names = append(names, f.RelativePath())
		}
		return nil
	})
	sort.Strings(names)
	return names, err
}

// BuiltinSource returns the text of the named built-in template.
func BuiltinSource(name string) (string, error) {
	text, err := builtins().ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("%w: template %s does not exist", about.ErrInvalidInput, name)
	}
	return string(text), nil
}

// Template is a parsed attribution template.
type Template struct {
	name    string
	execute func(io.Writer, interface{}) error
}

// Name returns the template file name.
func (t *Template) Name() string { return t.name }

// TemplateError reports a template that failed to parse.
type TemplateError struct {
	Name    string
	Line    int
	Message string
}

func (e *TemplateError) Error() string {
	return fmt.Sprintf("Template validation error at line: %d: %q", e.Line, e.Message)
}

// Unwrap classifies template errors as about.ErrTemplate.
func (e *TemplateError) Unwrap() error { return about.ErrTemplate }

// Diagnostic returns the CRITICAL diagnostic reported for e.
func (e *TemplateError) Diagnostic() about.Diagnostic {
	return about.NewDiagnostic(about.Critical, "%s", e.Error())
}

// parseErrorPattern matches "template: NAME:LINE: msg" and the
// "NAME:LINE:COL:" variant.
var parseErrorPattern = regexp.MustCompile(`^(?:html/)?template: .*?:(\d+):(?:\d+:)?\s*(.*)$`)

func newTemplateError(name string, err error) *TemplateError {
	msg := err.Error()
	if m := parseErrorPattern.FindStringSubmatch(msg); m != nil {
		line, _ := strconv.Atoi(m[1])
		return &TemplateError{Name: name, Line: line, Message: m[2]}
	}
	return &TemplateError{Name: name, Message: msg}
}

// LoadTemplate reads and parses a template. An empty location selects the
// default template. A location that is not an existing file is looked up
// among the built-in templates.
func LoadTemplate(location string) (*Template, error) {
	if location == "" {
		location = DefaultTemplate
	}
	osfs := filesystem.NewOSFileSystem()
	if filesystem.Exists(osfs, location) && !filesystem.IsDir(osfs, location) {
		text, err := osfs.ReadFile(location)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", about.ErrInvalidInput, err)
		}
		return ParseTemplate(filepath.Base(location), string(text))
	}

	text, err := BuiltinSource(path.Base(filepath.ToSlash(location)))
	if err != nil {
		return nil, fmt.Errorf("%w: template %s does not exist", about.ErrInvalidInput, location)
	}
	return ParseTemplate(path.Base(location), text)
}

// ParseTemplate parses text. Names ending in .html or .htm use html/template.
func ParseTemplate(name, text string) (*Template, error) {
	switch strings.ToLower(path.Ext(name)) {
	case ".html", ".htm":
		funcs := sprig.HtmlFuncMap()
		for k, v := range extraFuncs() {
			funcs[k] = v
		}
		tmpl, err := htmltemplate.New(name).Funcs(funcs).Parse(text)
		if err != nil {
			return nil, newTemplateError(name, err)
		}
		return &Template{name: name, execute: tmpl.Execute}, nil
	default:
		funcs := sprig.TxtFuncMap()
		for k, v := range extraFuncs() {
			funcs[k] = v
		}
		tmpl, err := texttemplate.New(name).Funcs(funcs).Parse(text)
		if err != nil {
			return nil, newTemplateError(name, err)
		}
		return &Template{name: name, execute: tmpl.Execute}, nil
	}
}

// Execute renders the template with data.
func (t *Template) Execute(data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := t.execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: %s: %v", about.ErrTemplate, t.name, err)
	}
	return buf.String(), nil
}
