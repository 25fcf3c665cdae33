package editorhost

import (
	"errors"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/pflag"
)

// Flag names accepted on the command line.
const (
	FlagComponentHandler = "componentHandler"
	FlagSecondWindow     = "secondWindow"
)

var (
	// ErrNoArgs is returned by ParseArgs for an empty argument list.
	ErrNoArgs = errors.New("no arguments")
	// ErrNoConfigPath is returned when only flags were given.
	ErrNoConfigPath = errors.New("missing configuration path")
)

// HelpText is printed when the host is started without arguments.
var HelpText = heredoc.Doc(`

	usage: editorhost [options] configPath

	options:

	--componentHandler
	  set optional component handler on edit controller

	--secondWindow
	  create a second window
`)

// Flags are the boolean toggles of the command line.
type Flags struct {
	ComponentHandler bool
	SecondWindow     bool
}

// Options is the parsed command line.
type Options struct {
	Flags
	// ConfigPath is the last positional argument.
	ConfigPath string
	// Ignored lists flags the host does not know.
	Ignored []string
}

// ParseArgs parses the command line (without the program name). Unknown
// flags are ignored.
func ParseArgs(args []string) (Options, error) {
	var opts Options
	if len(args) == 0 {
		return opts, ErrNoArgs
	}

	fs := pflag.NewFlagSet("editorhost", pflag.ContinueOnError)
	fs.BoolVar(&opts.ComponentHandler, FlagComponentHandler, false, "set optional component handler on edit controller")
	fs.BoolVar(&opts.SecondWindow, FlagSecondWindow, false, "create a second window")

	known := make([]string, 0, len(args))
	for _, arg := range args {
		if name, ok := flagName(arg); ok && fs.Lookup(name) == nil {
			opts.Ignored = append(opts.Ignored, arg)
			continue
		}
		known = append(known, arg)
	}
	if err := fs.Parse(known); err != nil {
		return opts, err
	}

	positional := fs.Args()
	if len(positional) == 0 {
		return opts, ErrNoConfigPath
	}
	opts.ConfigPath = positional[len(positional)-1]
	return opts, nil
}

// flagName returns the name of a "-x" or "--name[=value]" argument.
func flagName(arg string) (string, bool) {
	if len(arg) < 2 || arg[0] != '-' || arg == "--" {
		return "", false
	}
	name := strings.TrimLeft(arg, "-")
	if i := strings.IndexByte(name, '='); i >= 0 {
		name = name[:i]
	}
	return name, true
}
