// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - Root command, global flags and shared setup.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gt-buzzlink/buzzlink/internal/chatapi"
	"github.com/gt-buzzlink/buzzlink/internal/config"
	"github.com/gt-buzzlink/buzzlink/internal/util"
)

// Command annotations read by setup.
const (
	// annotationLogToFile sends the diagnostic log to a file so it never
	// draws over a full-screen UI.
	annotationLogToFile = "buzzlink/log-to-file"

	// annotationTolerateConfig lets a command run with defaults when the
	// config file is broken, so it can be inspected or rewritten.
	annotationTolerateConfig = "buzzlink/tolerate-config"
)

// BuildInfo describes the running binary.
type BuildInfo struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
}

// globalFlags holds the persistent flags of the root command.
type globalFlags struct {
	configPath string
	endpoint   string
	timeout    int
	logLevel   string
	logFile    string
}

// App holds the state shared by all commands of one invocation.
type App struct {
	Build  BuildInfo
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	flags globalFlags

	cfg     *config.Config
	cfgPath string // file the config came from, "" for defaults
	cfgErr  error  // load error tolerated by annotationTolerateConfig
	log     *zap.Logger

	closeLog func() error // flushes the logger and closes its file
}

// NewApp creates an App wired to the process's standard streams.
func NewApp(build BuildInfo) *App {
	return &App{
		Build:  build,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		log:    zap.NewNop(),
	}
}

// Execute runs the command line and returns the process exit code.
func (a *App) Execute(ctx context.Context, args []string) int {
	root := a.RootCommand()
	root.SetArgs(args)
	defer a.closeLogger()

	if err := root.ExecuteContext(ctx); err != nil {
		DisplayError(a.Stderr, err)
		return GetExitCode(err)
	}
	return ExitSuccess
}

// RootCommand builds the full command tree.
func (a *App) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "buzzlink",
		Short: "Find Georgia Tech alumni from your terminal",
		Long: `BuzzLink sends natural-language questions about Georgia Tech alumni to a
chat backend and shows the answer with a card for each matching profile.

Run without a command to open the full-screen chat view.`,
		Example: `  buzzlink
  buzzlink ask "Find alumni in software engineering"
  buzzlink chat --endpoint http://localhost:8000`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		Annotations:       map[string]string{annotationLogToFile: "true"},
		PersistentPreRunE: a.setup,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runTUI(cmd.Context(), a.cfg.UI.AltScreen)
		},
	}
	root.SetIn(a.Stdin)
	root.SetOut(a.Stdout)
	root.SetErr(a.Stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.configPath, "config", "", "config file (default ~/.buzzlink/config.toml)")
	pf.StringVar(&a.flags.endpoint, "endpoint", "", "chat backend base URL")
	pf.IntVar(&a.flags.timeout, "timeout", 0, "request timeout in seconds")
	pf.StringVar(&a.flags.logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.StringVar(&a.flags.logFile, "log-file", "", "write the diagnostic log to this file")

	root.AddCommand(
		a.tuiCommand(),
		a.chatCommand(),
		a.askCommand(),
		a.configCommand(),
		a.doctorCommand(),
		a.versionCommand(),
	)
	return root
}

// =============================================================================
// SETUP
// =============================================================================

// setup loads .env and the config, applies flag overrides and builds the
// logger. It runs before every command.
func (a *App) setup(cmd *cobra.Command, _ []string) error {
	lipgloss.SetColorProfile(GetColorProfile())

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return &ConfigError{Err: err}
	}

	cfg, path, err := a.loadConfig()
	if err != nil {
		if !toleratesConfigErrors(cmd) {
			return &ConfigError{Err: err}
		}
		a.cfgErr = err
		cfg = config.Default()
	}
	a.cfg = cfg
	a.cfgPath = path

	if err := a.applyFlags(); err != nil {
		return err
	}

	return a.setupLogger(cmd.Annotations[annotationLogToFile] == "true")
}

// loadConfig loads --config if given, otherwise the default locations.
// A broken default file falls back to defaults with a warning.
func (a *App) loadConfig() (*config.Config, string, error) {
	if a.flags.configPath != "" {
		cfg, err := config.LoadFromPath(a.flags.configPath)
		return cfg, a.flags.configPath, err
	}

	path := config.ActivePath()
	cfg, err := config.Load()
	if cfg != nil && err != nil {
		// defaults were substituted for an unreadable file
		a.cfgErr = err
		return cfg, path, nil
	}
	return cfg, path, err
}

// applyFlags layers the global flags over the loaded config.
func (a *App) applyFlags() error {
	if a.flags.endpoint != "" {
		a.cfg.Endpoint.URL = a.flags.endpoint
	}
	if a.flags.timeout != 0 {
		a.cfg.Endpoint.TimeoutSecs = a.flags.timeout
	}
	if a.flags.logLevel != "" {
		a.cfg.Logging.Level = a.flags.logLevel
	}
	if a.flags.logFile != "" {
		a.cfg.Logging.File = a.flags.logFile
	}

	a.cfg.Migrate()
	if err := a.cfg.Validate(); err != nil {
		return &ConfigError{Err: err}
	}
	return nil
}

func (a *App) setupLogger(toFile bool) error {
	logFile := a.cfg.Logging.File
	if toFile && logFile == "" {
		path, err := config.DefaultLogPath()
		if err == nil {
			logFile = path
		}
	}

	logger, closeLog, err := util.NewLogger(a.cfg.Logging.Level, logFile, a.Stderr)
	if err != nil {
		return &ConfigError{Err: err}
	}
	a.log = logger
	a.closeLog = closeLog

	if a.cfgErr != nil {
		a.log.Warn("config file ignored", zap.String("path", a.cfgPath), zap.Error(a.cfgErr))
	}
	a.log.Debug("config loaded", zap.String("path", a.cfgPath), zap.Stringer("config", a.cfg))
	return nil
}

// closeLogger flushes the log and closes the log file, if one was opened.
func (a *App) closeLogger() {
	if a.closeLog == nil {
		return
	}
	if err := a.closeLog(); err != nil {
		fmt.Fprintf(a.Stderr, "%s closing log file: %v\n", WarningStyle.Render("Warning:"), err)
	}
	a.closeLog = nil
	a.log = zap.NewNop()
}

func toleratesConfigErrors(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[annotationTolerateConfig] == "true" {
			return true
		}
	}
	return false
}

// =============================================================================
// SHARED HELPERS
// =============================================================================

// newClient builds a chat client from the active config.
func (a *App) newClient() *chatapi.Client {
	return chatapi.NewClientWithConfig(&chatapi.ClientConfig{
		BaseURL:           a.cfg.Endpoint.URL,
		Path:              a.cfg.Endpoint.Path,
		Timeout:           a.cfg.Timeout(),
		UserAgent:         a.userAgent(),
		RequestsPerMinute: a.cfg.Endpoint.RequestsPerMinute,
		Fallbacks:         a.cfg.Fallbacks(),
		Logger:            a.log,
	})
}

func (a *App) userAgent() string {
	if ua := strings.TrimSpace(a.cfg.Endpoint.UserAgent); ua != "" {
		return ua
	}
	v := a.Build.Version
	if v == "" {
		v = "dev"
	}
	return "buzzlink/" + v
}
