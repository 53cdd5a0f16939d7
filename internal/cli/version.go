// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// version.go - Build information.
package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// VersionData is the data of version --json.
type VersionData struct {
	BuildInfo
	GoVersion string `json:"go_version"`
}

func (a *App) versionCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:         "version",
		Short:       "Print version information",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationTolerateConfig: "true"},
		RunE: func(*cobra.Command, []string) error {
			if asJSON {
				data := VersionData{BuildInfo: a.Build, GoVersion: runtime.Version()}
				return NewJSONResponse("version", data).Write(a.Stdout)
			}
			a.printVersion()
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print version information as JSON")
	return cmd
}

func (a *App) printVersion() {
	fmt.Fprintf(a.Stdout, "buzzlink version %s\n", a.Build.Version)
	fmt.Fprintf(a.Stdout, "  Git commit: %s\n", a.Build.GitCommit)
	fmt.Fprintf(a.Stdout, "  Build date: %s\n", a.Build.BuildDate)
}
