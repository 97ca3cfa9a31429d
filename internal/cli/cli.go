// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/advitiya-sood/RAG-chatbot-frontend-test/internal/config"
	"github.com/advitiya-sood/RAG-chatbot-frontend-test/internal/ui/styles"
	"github.com/advitiya-sood/RAG-chatbot-frontend-test/internal/widget"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdAsk
	CmdRepl
	CmdConfig
	CmdVersion
	CmdHelp
)

// String returns the command name as typed.
func (c Command) String() string {
	switch c {
	case CmdTUI:
		return "tui"
	case CmdAsk:
		return "ask"
	case CmdRepl:
		return "repl"
	case CmdConfig:
		return "config"
	case CmdVersion:
		return "version"
	case CmdHelp:
		return "help"
	default:
		return "unknown"
	}
}

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	APIURL  string
	Debug   bool
	Open    bool
	NoColor bool

	// Command-specific
	Query      string
	Subcommand string

	// Raw args (remaining after the command name)
	Raw []string
}

// Env carries what the line-based commands need.
type Env struct {
	Config    *config.Config
	Asker     widget.Asker
	Clipboard widget.Clipboard
	Out       io.Writer
	Theme     *styles.Theme
	Width     int
}

func (e Env) renderer() *Renderer {
	r := NewRenderer(e.Theme, e.Width)
	if e.Config != nil {
		r.ShowTimestamps = e.Config.UI.ShowTimestamps
	}
	return r
}

const usageText = `chatwidget - company knowledge assistant in your terminal

Ask questions about company policies, leave, benefits and teams. Answers
come from the document search backend and cite their source passage.

Usage:
  chatwidget                    Start the chat widget (default)
  chatwidget ask "question"     Ask a single question
  chatwidget repl               Line-based chat (used when no TUI is available)
  chatwidget config show        Show effective configuration
  chatwidget config path        Print the config file path
  chatwidget config init        Write a default config file
    --force                     Overwrite an existing file
  chatwidget version            Show version
  chatwidget help               Show this help

Global flags:
  --api-url URL                 Backend base URL (overrides config)
  --debug                       Write a debug log to the config directory
  --open                        Start with the widget expanded
  --no-color                    Disable colors

Environment:
  CHATWIDGET_API_URL            Backend base URL (VITE_API_URL also accepted)
  CHATWIDGET_TIMEOUT            Request timeout in seconds
  CHATWIDGET_THEME              dark, light or auto
  NO_COLOR                      Disable colors

Version: %s
`

// PrintUsage prints the usage/help text.
func PrintUsage(w io.Writer) {
	fmt.Fprintf(w, usageText, Version)
}

// PrintVersion prints version information.
func PrintVersion(w io.Writer) {
	fmt.Fprintf(w, "chatwidget version %s\n", Version)
	fmt.Fprintf(w, "  Git commit: %s\n", GitCommit)
	fmt.Fprintf(w, "  Build date: %s\n", BuildDate)
}

// Parse parses os.Args.
func Parse() (Command, Args) {
	return ParseArgs(os.Args[1:])
}

// ParseArgs parses args (without the program name) into a command.
func ParseArgs(args []string) (Command, Args) {
	remaining, parsedArgs := parseGlobalFlags(args)

	if len(remaining) == 0 {
		return CmdTUI, parsedArgs
	}

	first := remaining[0]
	cmd := strings.ToLower(first)
	remaining = remaining[1:]
	parsedArgs.Raw = remaining

	switch cmd {
	case "tui":
		return CmdTUI, parsedArgs

	case "ask":
		parsedArgs.Query = JoinPositionalArgs(NewArgParser(remaining), 0)
		return CmdAsk, parsedArgs

	case "repl", "chat":
		return CmdRepl, parsedArgs

	case "config":
		parsedArgs.Subcommand = NewArgParser(remaining).Subcommand()
		return CmdConfig, parsedArgs

	case "version", "-v", "--version":
		return CmdVersion, parsedArgs

	case "help", "-h", "--help":
		return CmdHelp, parsedArgs

	default:
		// Bare words are treated as a question.
		parsedArgs.Raw = append([]string{first}, remaining...)
		parsedArgs.Query = strings.Join(parsedArgs.Raw, " ")
		return CmdAsk, parsedArgs
	}
}

// parseGlobalFlags extracts global flags from args and returns remaining args.
func parseGlobalFlags(args []string) ([]string, Args) {
	var remaining []string
	var parsedArgs Args

	for i := 0; i < len(args); i++ {
		arg := args[i]

		switch arg {
		case "--debug":
			parsedArgs.Debug = true
		case "--open":
			parsedArgs.Open = true
		case "--no-color":
			parsedArgs.NoColor = true
		case "--api-url":
			if i+1 < len(args) {
				i++
				parsedArgs.APIURL = args[i]
			}
		default:
			if strings.HasPrefix(arg, "--api-url=") {
				parsedArgs.APIURL = strings.TrimPrefix(arg, "--api-url=")
			} else {
				remaining = append(remaining, arg)
			}
		}
	}

	return remaining, parsedArgs
}

// =============================================================================
// COMMAND HANDLERS
// =============================================================================

// HandleVersion handles the "version" command.
func HandleVersion(w io.Writer) {
	PrintVersion(w)
}

// HandleHelp handles the "help" command.
func HandleHelp(w io.Writer) {
	PrintUsage(w)
}
