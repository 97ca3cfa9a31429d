// chatwidget - company knowledge assistant for the terminal.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/advitiya-sood/RAG-chatbot-frontend-test/internal/cli"
	"github.com/advitiya-sood/RAG-chatbot-frontend-test/internal/config"
	"github.com/advitiya-sood/RAG-chatbot-frontend-test/internal/gateway"
	"github.com/advitiya-sood/RAG-chatbot-frontend-test/internal/ui/chat"
	"github.com/advitiya-sood/RAG-chatbot-frontend-test/internal/ui/styles"
	"github.com/advitiya-sood/RAG-chatbot-frontend-test/internal/widget"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// configDebounce absorbs the burst of events editors emit per save.
const configDebounce = 250 * time.Millisecond

func init() {
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.Parse()

	switch cmd {
	case cli.CmdVersion:
		cli.HandleVersion(os.Stdout)
		return
	case cli.CmdHelp:
		cli.HandleHelp(os.Stdout)
		return
	}

	// .env beside the binary's working dir, then the config dir.
	envFiles := []string{".env"}
	if dir, err := config.ConfigDir(); err == nil {
		envFiles = append(envFiles, filepath.Join(dir, ".env"))
	}
	if err := config.LoadDotEnv(envFiles...); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	cfg := config.Global().Clone()
	applyFlags(cfg, args)
	config.SetGlobal(cfg)

	closeLog := setupLogging(cfg)
	defer closeLog()

	var err error
	switch cmd {
	case cli.CmdConfig:
		err = cli.HandleConfig(os.Stdout, args)
	case cli.CmdAsk:
		err = cli.HandleAskCommand(lineEnv(cfg), args)
	case cli.CmdRepl:
		err = cli.HandleReplCommand(lineEnv(cfg), args)
	default:
		if !cli.CanRunTUI() {
			log.Printf("TUI_UNAVAILABLE | falling back to repl")
			err = cli.HandleReplCommand(lineEnv(cfg), args)
			break
		}
		err = runTUI(cfg, args)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cli.GetExitCode(err))
	}
}

// applyFlags lets command-line flags override the loaded config.
func applyFlags(cfg *config.Config, args cli.Args) {
	if args.APIURL != "" {
		cfg.API.BaseURL = strings.TrimRight(args.APIURL, "/")
	}
	if args.Debug {
		cfg.Log.Debug = true
	}
	if args.Open {
		cfg.UI.StartOpen = true
	}
	if args.NoColor {
		cfg.UI.NoColor = true
	}
}

// setupLogging routes the std logger. The TUI owns the terminal, so logs go
// to a file when requested and are discarded otherwise.
func setupLogging(cfg *config.Config) func() {
	path := cfg.Log.File
	if path == "" && cfg.Log.Debug {
		if dir, err := config.ConfigDir(); err == nil {
			if err := os.MkdirAll(dir, 0700); err == nil {
				path = filepath.Join(dir, "debug.log")
			}
		}
	}
	if path == "" {
		log.SetOutput(io.Discard)
		return func() {}
	}

	f, err := tea.LogToFile(path, "chatwidget")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: cannot open log file %s: %v\n", path, err)
		log.SetOutput(io.Discard)
		return func() {}
	}
	log.Printf("STARTUP | version=%s base_url=%s", Version, cfg.API.BaseURL)
	return func() { f.Close() }
}

func newClient(cfg *config.Config) *gateway.Client {
	return gateway.NewClientWithConfig(&gateway.ClientConfig{
		BaseURL:            cfg.API.BaseURL,
		Timeout:            cfg.API.Timeout(),
		RateLimitPerMinute: cfg.API.RateLimitPerMinute,
	})
}

// lineEnv builds the environment for ask and repl.
func lineEnv(cfg *config.Config) cli.Env {
	noColor := cfg.UI.NoColor || !cli.ColorsEnabled()
	return cli.Env{
		Config:    cfg,
		Asker:     newClient(cfg),
		Clipboard: widget.SystemClipboard{},
		Out:       os.Stdout,
		Theme:     styles.NewTheme(cfg.UI.Theme, noColor),
		Width:     cli.GetTerminalWidth() - 2,
	}
}

// runTUI starts the widget and the config watcher.
func runTUI(cfg *config.Config, args cli.Args) error {
	client := newClient(cfg)
	ctrl := widget.New(widget.Options{
		Asker:     client,
		StartOpen: cfg.UI.StartOpen,
	})
	defer ctrl.Shutdown()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var updates <-chan *config.Config
	if path, err := config.ActivePath(); err == nil {
		if w, err := config.NewWatcher(path, configDebounce); err == nil {
			defer w.Close()
			go w.Watch(ctx)
			updates = w.Updates()
		} else {
			log.Printf("CONFIG_WATCH_DISABLED | error=%v", err)
		}
	}

	theme := styles.NewTheme(cfg.UI.Theme, cfg.UI.NoColor)
	m := chat.New(theme, chat.Options{
		Controller:     ctrl,
		Client:         client,
		ConfigUpdates:  updates,
		ShowTimestamps: cfg.UI.ShowTimestamps,
		NoColor:        cfg.UI.NoColor,
		Override:       func(c *config.Config) { applyFlags(c, args) },
	})

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running widget: %w", err)
	}
	return nil
}
