package platform

import (
	"io"
	"os"

	"github.com/fatih/color"

	"github.com/justyntemme/editorhost/pkg/debug"
)

// Shell holds the binding-independent half of a Platform: the window
// registry, quit sequencing and process termination. Bindings embed it.
type Shell struct {
	app      Application
	windows  []Window
	quitting bool

	// Stop ends the binding's event loop. Set by the binding.
	Stop func()
	// Exit ends the process. Defaults to os.Exit.
	Exit func(code int)
	// Out receives Kill diagnostics. Defaults to os.Stdout.
	Out io.Writer

	Log *debug.Logger
}

// NewShell returns a shell writing diagnostics to stdout.
func NewShell() *Shell {
	return &Shell{
		Exit: os.Exit,
		Out:  os.Stdout,
		Log:  debug.Default().Named("platform"),
	}
}

// SetApplication sets the application terminated by Quit.
func (s *Shell) SetApplication(app Application) {
	s.app = app
}

// Register adds a window to the registry.
func (s *Shell) Register(w Window) {
	s.windows = append(s.windows, w)
}

// Unregister removes a closed window from the registry.
func (s *Shell) Unregister(w Window) {
	for i, other := range s.windows {
		if other == w {
			s.windows = append(s.windows[:i], s.windows[i+1:]...)
			return
		}
	}
}

// Windows returns the open windows in creation order.
func (s *Shell) Windows() []Window {
	out := make([]Window, len(s.windows))
	copy(out, s.windows)
	return out
}

// Quit closes every window, terminates the application, then stops the
// event loop. Re-entrant calls made during the sequence return immediately.
func (s *Shell) Quit() {
	if s.quitting {
		return
	}
	s.quitting = true
	defer func() { s.quitting = false }()

	s.Log.Debug("quit: closing %d window(s)", len(s.windows))
	for _, w := range s.Windows() {
		w.Close()
	}
	if s.app != nil {
		s.app.Terminate()
	}
	if s.Stop != nil {
		s.Stop()
	}
}

// Kill prints reason and exits with code. Non-zero codes are printed in red
// when the output is a terminal.
func (s *Shell) Kill(code int, reason string) {
	if code != 0 {
		color.New(color.FgRed).Fprintln(s.Out, reason)
	} else {
		io.WriteString(s.Out, reason+"\n")
	}
	s.Exit(code)
}
