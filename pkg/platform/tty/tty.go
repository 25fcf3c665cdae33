// Package tty binds the platform contract to a terminal. Windows are panes
// laid out side by side; each pane's client area is measured in character
// cells and capped by the terminal size. The whole event loop is a
// bubbletea program: window callbacks, key handling, timers and descriptor
// callbacks all run inside its Update.
package tty

import (
	"errors"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/justyntemme/editorhost/pkg/platform"
	"github.com/justyntemme/editorhost/pkg/platform/runloop"
	"github.com/justyntemme/editorhost/pkg/vst3"
)

const (
	// borderCells is the space a pane border takes on each axis.
	borderCells = 2
	// chromeRows are the rows outside the panes: the help line and the
	// pane title.
	chromeRows = 2

	scaleStep = 0.25
	minScale  = 0.5
	maxScale  = 4
)

// ErrTooManyWindows is returned when the terminal has no room for another
// pane.
var ErrTooManyWindows = errors.New("tty: no room for another window")

// invokeMsg runs fn on the event loop.
type invokeMsg struct{ fn func() }

// Platform implements platform.Platform on a terminal.
type Platform struct {
	*platform.Shell

	program *tea.Program
	loop    *runloop.Loop
	keys    keyMap
	help    help.Model

	width, height int
	focus         int
	quit          bool
	running       bool
}

var _ platform.Platform = (*Platform)(nil)

// New returns a terminal platform. Options are passed to bubbletea.
func New(opts ...tea.ProgramOption) *Platform {
	p := &Platform{
		Shell: platform.NewShell(),
		keys:  defaultKeyMap(),
		help:  help.New(),
	}
	p.program = tea.NewProgram(model{p}, opts...)
	p.loop = runloop.New(runloop.DispatcherFunc(func(fn func()) {
		p.program.Send(invokeMsg{fn})
	}))
	p.Shell.Stop = func() {
		p.loop.Close()
		p.quit = true
	}
	return p
}

// Run initializes app and runs the event loop until Quit.
func (p *Platform) Run(app platform.Application, args []string) error {
	p.SetApplication(app)
	app.Init(args)
	if p.quit {
		return nil
	}
	p.running = true
	_, err := p.program.Run()
	p.running = false
	if !p.quit {
		// The program ended without Quit, e.g. on SIGINT.
		p.Quit()
	}
	return err
}

// CreateWindow adds a pane. The client size is in character cells.
func (p *Platform) CreateWindow(title string, size platform.Size, resizable bool, controller platform.WindowController) (platform.Window, error) {
	if p.width > 0 && p.paneWidth(len(p.Windows())+1) < 1 {
		return nil, ErrTooManyWindows
	}
	w := &Window{p: p, surface: &platform.Surface{}}
	w.Init(w, title, size, resizable, controller, p.clamp, p.windowClosed)
	p.Register(w)
	p.relayout()
	p.Log.Debug("window %q created (%dx%d)", title, size.Width, size.Height)
	return w, nil
}

// Kill restores the terminal, prints reason and exits.
func (p *Platform) Kill(code int, reason string) {
	if p.running {
		p.program.ReleaseTerminal()
	}
	p.Shell.Kill(code, reason)
}

// PluginFactoryContext returns the run loop.
func (p *Platform) PluginFactoryContext() any {
	return p.loop
}

func (p *Platform) windowClosed(w platform.Window) {
	p.Unregister(w)
	if n := len(p.Windows()); p.focus >= n {
		p.focus = max(n-1, 0)
	}
	p.relayout()
}

// paneWidth is the client width available to each of n panes.
func (p *Platform) paneWidth(n int) int {
	if n == 0 {
		n = 1
	}
	return p.width/n - borderCells
}

func (p *Platform) paneHeight() int {
	return p.height - chromeRows - borderCells
}

// clamp is the terminal's limit on a pane's client size. Before the first
// terminal size report every size is granted.
func (p *Platform) clamp(s platform.Size) platform.Size {
	if p.width <= 0 || p.height <= 0 {
		return s
	}
	s.Width = min(s.Width, max(p.paneWidth(len(p.Windows())), 1))
	s.Height = min(s.Height, max(p.paneHeight(), 1))
	return s
}

func (p *Platform) relayout() {
	for _, w := range p.Windows() {
		w.(*Window).Relayout()
	}
}

func (p *Platform) focused() *Window {
	windows := p.Windows()
	if len(windows) == 0 {
		return nil
	}
	return windows[p.focus].(*Window)
}

func (p *Platform) handleKey(msg tea.KeyMsg) {
	if key.Matches(msg, p.keys.Quit) {
		p.Quit()
		return
	}
	w := p.focused()
	if w == nil {
		return
	}
	size := w.Size()
	switch {
	case key.Matches(msg, p.keys.Focus):
		p.focus = (p.focus + 1) % len(p.Windows())
	case key.Matches(msg, p.keys.Close):
		w.Close()
	case key.Matches(msg, p.keys.Wider):
		w.UserResize(platform.Size{Width: size.Width + 1, Height: size.Height})
	case key.Matches(msg, p.keys.Narrower):
		w.UserResize(platform.Size{Width: size.Width - 1, Height: size.Height})
	case key.Matches(msg, p.keys.Taller):
		w.UserResize(platform.Size{Width: size.Width, Height: size.Height + 1})
	case key.Matches(msg, p.keys.Shorter):
		w.UserResize(platform.Size{Width: size.Width, Height: size.Height - 1})
	case key.Matches(msg, p.keys.ScaleUp):
		w.SetContentScaleFactor(min(w.ContentScaleFactor()+scaleStep, maxScale))
	case key.Matches(msg, p.keys.ScaleDown):
		w.SetContentScaleFactor(max(w.ContentScaleFactor()-scaleStep, minScale))
	default:
		w.surface.Press(msg.String())
	}
}

// model is the bubbletea face of the platform. All state lives in Platform.
type model struct {
	p *Platform
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	p := m.p
	switch msg := msg.(type) {
	case invokeMsg:
		msg.fn()
	case tea.WindowSizeMsg:
		p.width, p.height = msg.Width, msg.Height
		p.help.Width = msg.Width
		p.relayout()
	case tea.KeyMsg:
		p.handleKey(msg)
	}
	if p.quit {
		return m, tea.Quit
	}
	return m, nil
}

func (m model) View() string {
	return m.p.render()
}

// Window is a terminal pane.
type Window struct {
	platform.BaseWindow

	p       *Platform
	surface *platform.Surface
}

// NativeWindow returns the pane's text surface.
func (w *Window) NativeWindow() platform.NativeWindow {
	return platform.NativeWindow{Type: vst3.PlatformTypeTextSurface, Handle: w.surface}
}

// RunLoop returns the platform loop.
func (w *Window) RunLoop() vst3.RunLoop {
	return w.p.loop
}
