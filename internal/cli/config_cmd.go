// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/advitiya-sood/RAG-chatbot-frontend-test/internal/config"
)

// HandleConfig handles "config show|path|init".
//
// Examples:
//
//	chatwidget config              Same as "config show"
//	chatwidget config show --json  Effective config as JSON
//	chatwidget config init --force Overwrite config.toml with defaults
func HandleConfig(w io.Writer, args Args) error {
	parser := NewArgParser(args.Raw, "json", "force")

	switch parser.Subcommand() {
	case "", "show":
		return handleConfigShow(w, parser.BoolFlag("json"))
	case "path":
		return handleConfigPath(w)
	case "init":
		return handleConfigInit(w, parser.BoolFlag("force"))
	default:
		return &UsageError{Message: fmt.Sprintf("unknown config subcommand %q", parser.Subcommand())}
	}
}

func handleConfigShow(w io.Writer, asJSON bool) error {
	cfg := config.Global()
	if asJSON {
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return &CommandError{Command: "config", Action: "show", Reason: "encode", Err: err}
		}
		fmt.Fprintln(w, string(data))
		return nil
	}
	fmt.Fprint(w, cfg.String())
	return nil
}

func handleConfigPath(w io.Writer) error {
	path, err := config.ActivePath()
	if err != nil {
		return &CommandError{Command: "config", Action: "path", Reason: "no config directory", Err: err}
	}
	fmt.Fprintln(w, path)
	return nil
}

func handleConfigInit(w io.Writer, force bool) error {
	path, err := config.ConfigPathTOML()
	if err != nil {
		return &CommandError{Command: "config", Action: "init", Reason: "no config directory", Err: err}
	}
	if _, err := os.Stat(path); err == nil && !force {
		return &CommandError{Command: "config", Action: "init", Reason: path + " already exists (use --force)"}
	}
	if err := config.Save(config.Default()); err != nil {
		return &CommandError{Command: "config", Action: "init", Reason: "write failed", Err: err}
	}
	fmt.Fprintf(w, "Wrote %s\n", path)
	return nil
}
