package cli

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/aboutkit/aboutkit/internal/config"
	"github.com/aboutkit/aboutkit/internal/files/filesystem"
	"github.com/aboutkit/aboutkit/internal/license"
	"github.com/aboutkit/aboutkit/internal/logging"
	"github.com/aboutkit/aboutkit/pkg/about"
)

// globalFlagValues holds the persistent flags shared by every command.
type globalFlagValues struct {
	verbose    bool
	quiet      bool
	noColor    bool
	configPath string
}

var globalFlags globalFlagValues

// libraryFlagValues holds the DejaCode credentials accepted by the commands
// that fetch licenses.
type libraryFlagValues struct {
	apiURL string
	apiKey string
}

func addLibraryFlags(cmd *cobra.Command, flags *libraryFlagValues) {
	cmd.Flags().StringVar(&flags.apiURL, "api_url", "",
		"DejaCode license API URL (default: $"+config.EnvAPIURL+" or api_url in about.yaml)")
	cmd.Flags().StringVar(&flags.apiKey, "api_key", "",
		"DejaCode API key (default: $"+config.EnvAPIKey+" or api_key in about.yaml)")
}

// session carries what a command run needs: the resolved project
// configuration and the diagnostic outputs.
type session struct {
	cfg      *config.ProjectConfig
	logger   about.Logger
	reporter *logging.Reporter
	err      io.Writer
}

// newSession loads .env and the project configuration, then sets up
// logging for cmd according to the global flags.
func newSession(cmd *cobra.Command) (*session, error) {
	if globalFlags.verbose && globalFlags.quiet {
		return nil, fmt.Errorf("invalid argument: --verbose and --quiet cannot be used together")
	}
	_ = godotenv.Load()

	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	cfg, err := config.Resolve(globalFlags.configPath, wd, os.LookupEnv)
	if err != nil {
		return nil, err
	}

	errOut := cmd.ErrOrStderr()
	verbosity := logging.Normal
	var logger about.Logger = logging.NewConsoleLoggerTo(errOut, globalFlags.verbose)
	switch {
	case globalFlags.quiet:
		verbosity = logging.Quiet
		logger = logging.NewNullLogger()
	case globalFlags.verbose:
		verbosity = logging.Loud
	}
	color := false
	if f, ok := errOut.(*os.File); ok && !globalFlags.noColor {
		color = logging.ColorEnabled(f)
	}

	return &session{
		cfg:      cfg,
		logger:   logger,
		reporter: logging.NewReporter(errOut, verbosity, color),
		err:      errOut,
	}, nil
}

// report prints diagnostics and, when logDir is an existing directory,
// writes the problematic ones to its error.log.
func (s *session) report(diags about.Diagnostics, logDir string) {
	s.reporter.Report(diags)
	if logDir == "" || !filesystem.IsDir(filesystem.NewOSFileSystem(), logDir) {
		return
	}
	path, err := logging.WriteErrorLog(logDir, diags)
	if err != nil {
		s.logger.Error("%v", err)
		return
	}
	if path != "" {
		s.logger.Verbose("Problems written to %s", path)
	}
}

// referenceDir returns the --reference flag value, or the configured one.
func (s *session) referenceDir(flag string) string {
	if flag != "" {
		return flag
	}
	return s.cfg.ReferenceDir
}

// licenseLibrary returns DejaCode when djc is set, LicenseDB otherwise.
func (s *session) licenseLibrary(djc bool, flags libraryFlagValues) (license.Library, error) {
	timeout, err := s.cfg.HTTPTimeout()
	if err != nil {
		return nil, err
	}
	opts := []license.ClientOption{
		license.WithHTTPClient(&http.Client{Timeout: timeout}),
		license.WithLogger(s.logger),
	}
	if !djc {
		return license.NewLicenseDB(s.cfg.LicenseDB(), opts...), nil
	}

	apiURL, apiKey := flags.apiURL, flags.apiKey
	if apiURL == "" {
		apiURL = s.cfg.APIURL
	}
	if apiKey == "" {
		apiKey = s.cfg.APIKey
	}
	if apiURL == "" || apiKey == "" {
		return nil, fmt.Errorf("%w: DejaCode requires --api_url and --api_key (or $%s and $%s)",
			about.ErrInvalidConfig, config.EnvAPIURL, config.EnvAPIKey)
	}
	return license.NewDejaCode(apiURL, apiKey, opts...), nil
}

// commandContext returns a context cancelled on Ctrl+C or SIGTERM.
func commandContext(errOut io.Writer) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case <-sigChan:
			fmt.Fprintln(errOut, "\n[INTERRUPT] Received interrupt signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
	}()
	return ctx, func() {
		signal.Stop(sigChan)
		cancel()
	}
}

// requireOutputParent checks that the directory holding output exists.
func requireOutputParent(output string) error {
	parent := filepath.Dir(output)
	if !filesystem.IsDir(filesystem.NewOSFileSystem(), parent) {
		return fmt.Errorf("%w: %s path does not exist", about.ErrOutputLocation, output)
	}
	return nil
}
