// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// doctor.go - Health checks for the local setup.
//
// Command: doctor [--json]
//
// Checks:
//   - Config file loads and validates
//   - Chat backend answers at the configured URL
//   - Log directory is writable
//   - A terminal is attached for the full-screen view
//
// Exit Codes:
//
//	0   All checks passed (warnings allowed)
//	1   One or more checks failed
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/gt-buzzlink/buzzlink/internal/config"
)

// reachTimeout bounds the backend probe.
const reachTimeout = 5 * time.Second

// =============================================================================
// HEALTH CHECK TYPES
// =============================================================================

// CheckStatus represents the status of a health check.
type CheckStatus int

const (
	// CheckPass indicates the check passed successfully.
	CheckPass CheckStatus = iota
	// CheckWarn indicates the check passed with warnings.
	CheckWarn
	// CheckFail indicates the check failed.
	CheckFail
)

// String returns the lowercase name used in JSON output.
func (s CheckStatus) String() string {
	switch s {
	case CheckPass:
		return "pass"
	case CheckWarn:
		return "warn"
	case CheckFail:
		return "fail"
	default:
		return "unknown"
	}
}

// Symbol returns the bracketed marker for the status.
func (s CheckStatus) Symbol() string {
	switch s {
	case CheckPass:
		return SuccessStyle.Render("[OK]")
	case CheckWarn:
		return WarningStyle.Render("[!!]")
	case CheckFail:
		return ErrorStyle.Render("[FAIL]")
	default:
		return "?"
	}
}

// HealthCheck represents a single health check result.
type HealthCheck struct {
	Name    string
	Status  CheckStatus
	Message string
	Fix     string // suggested fix, shown for non-passing checks
}

// Render returns a formatted string representation of the health check.
func (c *HealthCheck) Render() string {
	result := fmt.Sprintf("%s %s", c.Status.Symbol(), ValueStyle.Render(c.Message))
	if c.Status != CheckPass && c.Fix != "" {
		result += "\n" + DimStyle.Render("   -> "+c.Fix)
	}
	return result
}

// DoctorCheck is one check in JSON output.
type DoctorCheck struct {
	Name    string `json:"name"`
	Status  string `json:"status"`
	Message string `json:"message"`
	Fix     string `json:"fix,omitempty"`
}

// DoctorSummary counts the check results.
type DoctorSummary struct {
	Passed  int  `json:"passed"`
	Warned  int  `json:"warned"`
	Failed  int  `json:"failed"`
	Healthy bool `json:"healthy"`
}

// DoctorData is the data of doctor --json.
type DoctorData struct {
	Checks  []DoctorCheck `json:"checks"`
	Summary DoctorSummary `json:"summary"`
}

// =============================================================================
// COMMAND
// =============================================================================

func (a *App) doctorCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:         "doctor",
		Short:       "Check the config, backend and terminal",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationTolerateConfig: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runDoctor(cmd.Context(), asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the results as JSON")
	return cmd
}

func (a *App) runDoctor(ctx context.Context, asJSON bool) error {
	checks := a.runAllChecks(ctx)

	var summary DoctorSummary
	for _, check := range checks {
		switch check.Status {
		case CheckPass:
			summary.Passed++
		case CheckWarn:
			summary.Warned++
		case CheckFail:
			summary.Failed++
		}
	}
	summary.Healthy = summary.Failed == 0

	var failErr error
	if summary.Failed > 0 {
		failErr = fmt.Errorf("%d health check(s) failed", summary.Failed)
	}

	if asJSON {
		data := DoctorData{Checks: make([]DoctorCheck, 0, len(checks)), Summary: summary}
		for _, check := range checks {
			data.Checks = append(data.Checks, DoctorCheck{
				Name:    check.Name,
				Status:  check.Status.String(),
				Message: check.Message,
				Fix:     check.Fix,
			})
		}
		resp := NewJSONResponse("doctor", data)
		if failErr != nil {
			resp = NewJSONErrorResponse("doctor", failErr, data)
		}
		if err := resp.Write(a.Stdout); err != nil {
			return err
		}
		return failErr
	}

	printDoctorReport(a.Stdout, checks, summary)
	return failErr
}

func printDoctorReport(w io.Writer, checks []*HealthCheck, summary DoctorSummary) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, TitleStyle.Render("BuzzLink Doctor"))
	fmt.Fprintln(w, DimStyle.Render(strings.Repeat("=", 41)))
	fmt.Fprintln(w)

	for _, check := range checks {
		fmt.Fprintln(w, check.Render())
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, DimStyle.Render(strings.Repeat("-", 41)))

	parts := []string{fmt.Sprintf("%d passed", summary.Passed)}
	if summary.Warned > 0 {
		parts = append(parts, WarningStyle.Render(fmt.Sprintf("%d warning", summary.Warned)))
	}
	if summary.Failed > 0 {
		parts = append(parts, ErrorStyle.Render(fmt.Sprintf("%d failed", summary.Failed)))
	}
	fmt.Fprintln(w, strings.Join(parts, ", "))
	fmt.Fprintln(w)
}

// =============================================================================
// HEALTH CHECK FUNCTIONS
// =============================================================================

func (a *App) runAllChecks(ctx context.Context) []*HealthCheck {
	return []*HealthCheck{
		a.checkConfig(),
		a.checkBackend(ctx),
		a.checkLogWritable(),
		a.checkTerminal(),
	}
}

func (a *App) checkConfig() *HealthCheck {
	check := &HealthCheck{Name: "Config"}

	switch {
	case a.cfgErr != nil:
		check.Status = CheckFail
		check.Message = fmt.Sprintf("Config invalid: %s", a.cfgErr)
		check.Fix = "Run: buzzlink config init --force"
	case a.cfgPath == "":
		check.Status = CheckPass
		check.Message = "Config valid (using defaults)"
	default:
		check.Status = CheckPass
		check.Message = "Config valid: " + a.cfgPath
	}
	return check
}

func (a *App) checkBackend(ctx context.Context) *HealthCheck {
	check := &HealthCheck{Name: "Backend"}
	client := a.newClient()

	ctx, cancel := context.WithTimeout(ctx, reachTimeout)
	defer cancel()

	if err := client.CheckReachable(ctx); err != nil {
		check.Status = CheckFail
		check.Message = fmt.Sprintf("Backend unreachable at %s: %s", client.BaseURL(), err)
		check.Fix = "Start the backend or run: buzzlink config set endpoint.url <url>"
		return check
	}

	check.Status = CheckPass
	check.Message = "Backend reachable: " + client.Endpoint()
	return check
}

func (a *App) checkLogWritable() *HealthCheck {
	check := &HealthCheck{Name: "Log Writable"}

	logFile := a.cfg.Logging.File
	if logFile == "" {
		path, err := config.DefaultLogPath()
		if err != nil {
			check.Status = CheckWarn
			check.Message = fmt.Sprintf("Could not determine log path: %s", err)
			return check
		}
		logFile = path
	}
	dir := filepath.Dir(logFile)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		check.Status = CheckFail
		check.Message = fmt.Sprintf("Could not create log directory: %s", err)
		check.Fix = fmt.Sprintf("Create manually: mkdir -p %s", dir)
		return check
	}

	probe := filepath.Join(dir, ".write_test")
	if err := os.WriteFile(probe, []byte("test"), 0o644); err != nil {
		check.Status = CheckFail
		check.Message = fmt.Sprintf("Log directory not writable: %s", err)
		check.Fix = fmt.Sprintf("Check permissions: chmod 755 %s", dir)
		return check
	}
	os.Remove(probe)

	check.Status = CheckPass
	check.Message = "Log directory writable: " + dir
	return check
}

func (a *App) checkTerminal() *HealthCheck {
	check := &HealthCheck{Name: "Terminal"}

	if isTerminalReader(a.Stdin) && isTerminalWriter(a.Stdout) {
		check.Status = CheckPass
		check.Message = fmt.Sprintf("Terminal attached (%d columns)", terminalWidth(a.Stdout))
		return check
	}

	check.Status = CheckWarn
	check.Message = "No terminal attached; the full-screen view is unavailable"
	check.Fix = "Use: buzzlink ask <query> or buzzlink chat"
	return check
}
