package main

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/justyntemme/editorhost/pkg/debug"
	"github.com/justyntemme/editorhost/pkg/editorhost"
	"github.com/justyntemme/editorhost/pkg/hosting"
	"github.com/justyntemme/editorhost/pkg/platform/headless"
	"github.com/justyntemme/editorhost/pkg/platform/tty"
)

// Environment keys, read with the EDITORHOST_ prefix.
const (
	envLogLevel = "log_level"
	envLogFile  = "log_file"
	envPlatform = "platform"
)

const defaultTerminalLog = "editorhost.log"

func newRootCommand(version, commit, date string) *cobra.Command {
	env := viper.New()
	env.SetEnvPrefix("EDITORHOST")
	env.AutomaticEnv()
	env.SetDefault(envLogLevel, "info")
	env.SetDefault(envPlatform, "tty")

	return &cobra.Command{
		Use:   "editorhost [options] configPath",
		Short: "Open the editor of a VST3 plugin",
		Long: editorhost.HelpText + fmt.Sprintf(`
builtin modules: %s

environment:

EDITORHOST_LOG_LEVEL  trace, debug, info, warn or error
EDITORHOST_LOG_FILE   log destination (terminal default: %s)
EDITORHOST_PLATFORM   tty or headless
`, strings.Join(hosting.Builtins(), ", "), defaultTerminalLog),
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		// The host parses its own options and ignores unknown ones.
		DisableFlagParsing: true,
		SilenceUsage:       true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			switch {
			case slices.Contains(args, "-h"), slices.Contains(args, "--help"):
				return cmd.Help()
			case slices.Contains(args, "--version"):
				fmt.Fprintln(cmd.OutOrStdout(), cmd.Version)
				return nil
			}
			return run(env, args)
		},
	}
}

func run(env *viper.Viper, args []string) error {
	level, err := debug.ParseLevel(env.GetString(envLogLevel))
	if err != nil {
		return err
	}

	kind := strings.ToLower(env.GetString(envPlatform))
	logger, closer, err := newLogger(logDestination(env.GetString(envLogFile), kind, args), level)
	if err != nil {
		return err
	}
	defer closer.Close()
	debug.SetDefault(logger)

	switch kind {
	case "tty":
		p := tty.New(tea.WithAltScreen())
		return p.Run(editorhost.New(p), args)
	case "headless":
		// Opens the editor, then quits once the queue is reached.
		p := headless.New()
		p.Shell.Out = os.Stdout
		p.Shell.Exit = os.Exit
		p.Post(p.Quit)
		p.Run(editorhost.New(p), args)
		return nil
	default:
		return fmt.Errorf("unknown platform %q", kind)
	}
}

// logDestination returns the log file path, or "" for stderr. The terminal
// binding logs to a file once the UI owns the terminal; printing the help
// never starts the UI.
func logDestination(configured, kind string, args []string) string {
	if configured != "" {
		return configured
	}
	if kind == "tty" && len(args) > 0 {
		return defaultTerminalLog
	}
	return ""
}

func newLogger(path string, level debug.LogLevel) (*debug.Logger, io.Closer, error) {
	if path == "" {
		return debug.New(os.Stderr, "editorhost", level), nopCloser{}, nil
	}
	return debug.NewFileLogger(path, "editorhost", level)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
