// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config_cmd.go - Configuration management commands.
//
// Command: config [subcommand]
//
// Subcommands:
//
//	show [--json]       Show the effective configuration (default)
//	path                Show the config file path
//	init [--force]      Write a config file with the defaults
//	get <key>           Print one value (dot notation, e.g. endpoint.url)
//	set <key> <value>   Change one value in the config file
//	keys                List the settable keys
//
// These commands still run when the config file is broken, so it can be
// inspected and rewritten.
package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gt-buzzlink/buzzlink/internal/config"
)

func (a *App) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:         "config",
		Short:       "Show and edit the configuration",
		Annotations: map[string]string{annotationTolerateConfig: "true"},
		Args:        cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return a.runConfigShow(false)
		},
	}

	var showJSON bool
	show := &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return a.runConfigShow(showJSON)
		},
	}
	show.Flags().BoolVar(&showJSON, "json", false, "print the configuration as JSON")

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the defaults",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return a.runConfigInit(force)
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	cmd.AddCommand(
		show,
		initCmd,
		&cobra.Command{
			Use:   "path",
			Short: "Show the config file path",
			Args:  cobra.NoArgs,
			RunE: func(*cobra.Command, []string) error {
				return a.runConfigPath()
			},
		},
		&cobra.Command{
			Use:   "get <key>",
			Short: "Print one configuration value",
			Args:  cobra.ExactArgs(1),
			RunE: func(_ *cobra.Command, args []string) error {
				return a.runConfigGet(args[0])
			},
		},
		&cobra.Command{
			Use:     "set <key> <value>",
			Short:   "Change one value in the config file",
			Example: "  buzzlink config set endpoint.url https://buzzlink.example.edu",
			Args:    cobra.ExactArgs(2),
			RunE: func(_ *cobra.Command, args []string) error {
				return a.runConfigSet(args[0], args[1])
			},
		},
		&cobra.Command{
			Use:   "keys",
			Short: "List the settable keys",
			Args:  cobra.NoArgs,
			RunE: func(*cobra.Command, []string) error {
				for _, key := range config.GetAllKeys() {
					fmt.Fprintln(a.Stdout, key)
				}
				return nil
			},
		},
	)
	return cmd
}

// targetPath is the file init and set write: --config, the file in use,
// or the default TOML location.
func (a *App) targetPath() (string, error) {
	if a.flags.configPath != "" {
		return a.flags.configPath, nil
	}
	if path := config.ActivePath(); path != "" {
		return path, nil
	}
	return config.ConfigPathTOML()
}

func (a *App) runConfigShow(asJSON bool) error {
	if asJSON {
		return NewJSONResponse("config show", a.cfg).Write(a.Stdout)
	}

	if a.cfgErr != nil {
		fmt.Fprintf(a.Stderr, "%s %s (using defaults)\n", WarningStyle.Render("Warning:"), a.cfgErr)
	}

	out := a.Stdout
	fmt.Fprintln(out)
	fmt.Fprintln(out, TitleStyle.Render("BuzzLink Configuration"))
	fmt.Fprintln(out, DimStyle.Render(strings.Repeat("=", 41)))

	section := ""
	for _, key := range config.GetAllKeys() {
		group, name, _ := strings.Cut(key, ".")
		if group != section {
			section = group
			fmt.Fprintln(out)
			fmt.Fprintln(out, WarningStyle.Render("["+group+"]"))
		}
		value, err := a.cfg.Get(key)
		if err != nil {
			continue
		}
		fmt.Fprintf(out, "  %s%s\n", LabelStyle.Width(22).Render(name+":"), ValueStyle.Render(formatValue(value)))
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, DimStyle.Render(strings.Repeat("-", 41)))
	path := a.cfgPath
	if path == "" {
		path = "(defaults)"
	}
	fmt.Fprintf(out, "Config file: %s\n", DimStyle.Render(path))
	fmt.Fprintf(out, "Chat URL:    %s\n\n", DimStyle.Render(a.cfg.ChatURL()))
	return nil
}

func (a *App) runConfigPath() error {
	path, err := a.targetPath()
	if err != nil {
		return NewCommandError("config", "path", "could not determine config path", err)
	}
	fmt.Fprintln(a.Stdout, path)

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(a.Stderr, "%s file does not exist; run buzzlink config init\n", DimStyle.Render("Note:"))
	}
	return nil
}

func (a *App) runConfigInit(force bool) error {
	path, err := a.targetPath()
	if err != nil {
		return NewCommandError("config", "init", "could not determine config path", err)
	}
	if _, err := os.Stat(path); err == nil && !force {
		return NewCommandError("config", "init", path+" already exists (use --force to overwrite)", nil)
	}

	if err := saveConfigFile(config.Default(), path); err != nil {
		return NewCommandError("config", "init", "could not write config", err)
	}
	fmt.Fprintf(a.Stdout, "%s Wrote default configuration\n", SuccessStyle.Render("[OK]"))
	fmt.Fprintf(a.Stdout, "Config file: %s\n", DimStyle.Render(path))
	return nil
}

func (a *App) runConfigGet(key string) error {
	value, err := a.cfg.Get(key)
	if err != nil {
		return NewValidationError("key", key, err.Error())
	}
	fmt.Fprintln(a.Stdout, formatValue(value))
	return nil
}

// runConfigSet edits the file itself, so environment and flag overrides
// are never written back.
func (a *App) runConfigSet(key, value string) error {
	path, err := a.targetPath()
	if err != nil {
		return NewCommandError("config", "set", "could not determine config path", err)
	}

	cfg := config.Default()
	if _, statErr := os.Stat(path); statErr == nil {
		if err := loadConfigFile(cfg, path); err != nil {
			return &ConfigError{Err: err}
		}
	}

	if err := cfg.Set(key, value); err != nil {
		return NewValidationError(key, value, err.Error())
	}
	cfg.Migrate()
	if err := cfg.Validate(); err != nil {
		return NewValidationError(key, value, err.Error())
	}

	if err := saveConfigFile(cfg, path); err != nil {
		return NewCommandError("config", "set", "could not write config", err)
	}
	fmt.Fprintf(a.Stdout, "%s %s = %s\n", SuccessStyle.Render("[OK]"), key, value)
	return nil
}

// =============================================================================
// HELPERS
// =============================================================================

func isJSONPath(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), ".json")
}

func loadConfigFile(cfg *config.Config, path string) error {
	if isJSONPath(path) {
		return config.LoadJSON(cfg, path)
	}
	return config.LoadTOML(cfg, path)
}

func saveConfigFile(cfg *config.Config, path string) error {
	if isJSONPath(path) {
		return config.SaveJSON(cfg, path)
	}
	return config.SaveTOML(cfg, path)
}

func formatValue(v interface{}) string {
	if s, ok := v.(string); ok && s == "" {
		return `""`
	}
	return fmt.Sprint(v)
}
