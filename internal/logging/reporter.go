package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/aboutkit/aboutkit/pkg/about"
)

// Verbosity controls which diagnostics a Reporter prints.
type Verbosity int

const (
	// Normal prints problematic diagnostics (WARNING and above).
	Normal Verbosity = iota
	// Quiet prints nothing.
	Quiet
	// Loud prints every diagnostic.
	Loud
)

// Reporter prints diagnostics to a terminal stream and persists problems
// to error.log files.
type Reporter struct {
	out       io.Writer
	verbosity Verbosity
	color     bool
	mu        sync.Mutex
}

// NewReporter creates a Reporter writing to out.
func NewReporter(out io.Writer, verbosity Verbosity, color bool) *Reporter {
	return &Reporter{out: out, verbosity: verbosity, color: color}
}

// NewStderrReporter creates a Reporter on stderr with color auto-detection.
func NewStderrReporter(verbosity Verbosity) *Reporter {
	return NewReporter(os.Stderr, verbosity, ColorEnabled(os.Stderr))
}

// Visible returns the diagnostics that the configured verbosity prints.
func (r *Reporter) Visible(ds about.Diagnostics) about.Diagnostics {
	switch r.verbosity {
	case Quiet:
		return nil
	case Loud:
		return ds.Unique()
	default:
		return ds.Unique().Problems()
	}
}

// Report prints the visible diagnostics, one per line.
func (r *Reporter) Report(ds about.Diagnostics) {
	visible := r.Visible(ds)
	if len(visible) == 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range visible {
		if r.color {
			fmt.Fprintf(r.out, "%s: %s\n", styleSeverity(d.Severity), d.Message)
		} else {
			fmt.Fprintln(r.out, d.String())
		}
	}
}

// Summary prints a plain line unless the reporter is quiet.
func (r *Reporter) Summary(format string, args ...interface{}) {
	if r.verbosity == Quiet {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintf(r.out, format+"\n", args...)
}

// WriteErrorLog writes problematic diagnostics to <dir>/error.log, replacing
// any previous file. Nothing is written when there are no problems.
// Returns the log path, or "" when no file was written.
func WriteErrorLog(dir string, ds about.Diagnostics) (string, error) {
	problems := ds.Unique().Problems()
	if len(problems) == 0 {
		return "", nil
	}

	path := filepath.Join(dir, about.ErrorLogName)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create error log: %w", err)
	}
	defer f.Close()

	logger := newFileLogger(f)
	for _, d := range problems {
		logger.Log(zapLevel(d.Severity), d.String())
	}
	if err := logger.Sync(); err != nil {
		return "", fmt.Errorf("failed to flush error log: %w", err)
	}
	return path, nil
}

// newFileLogger builds a zap logger emitting bare "SEVERITY: message" lines.
func newFileLogger(w io.Writer) *zap.Logger {
	encoderCfg := zapcore.EncoderConfig{
		MessageKey: "msg",
		LineEnding: zapcore.DefaultLineEnding,
	}
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderCfg),
		zapcore.AddSync(w),
		zapcore.WarnLevel,
	)
	return zap.New(core)
}

func zapLevel(sev about.Severity) zapcore.Level {
	switch {
	case sev >= about.Error:
		return zapcore.ErrorLevel
	case sev >= about.Warning:
		return zapcore.WarnLevel
	case sev >= about.Info:
		return zapcore.InfoLevel
	default:
		return zapcore.DebugLevel
	}
}
