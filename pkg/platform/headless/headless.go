// Package headless is an in-memory binding of the platform contract. Windows
// have no pixels; their size, scale and close events are driven by calls, and
// the text surface handed to views records what they render. It backs the
// tests and the smoke-run mode of the command.
package headless

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/justyntemme/editorhost/pkg/platform"
	"github.com/justyntemme/editorhost/pkg/platform/runloop"
	"github.com/justyntemme/editorhost/pkg/vst3"
)

// ErrWindowRefused is returned by CreateWindow when RefuseWindows is set.
var ErrWindowRefused = errors.New("headless: window creation refused")

// Killed is the panic value raised by Kill unless Exit is replaced.
type Killed struct {
	Code   int
	Reason string
}

func (k *Killed) Error() string {
	return fmt.Sprintf("killed (%d): %s", k.Code, k.Reason)
}

// Platform implements platform.Platform without a window system.
type Platform struct {
	*platform.Shell

	// NativeType is the surface type windows report. Defaults to TextSurface.
	NativeType vst3.PlatformType
	// RefuseWindows makes CreateWindow fail.
	RefuseWindows bool
	// Output collects Kill diagnostics.
	Output bytes.Buffer

	queue   *runloop.Queue
	loop    *runloop.Loop
	maxSize platform.Size
	kills   []Killed
	created int
}

var _ platform.Platform = (*Platform)(nil)

// New returns a headless platform whose Kill panics with *Killed.
func New() *Platform {
	p := &Platform{
		Shell:      platform.NewShell(),
		NativeType: vst3.PlatformTypeTextSurface,
		queue:      runloop.NewQueue(),
	}
	p.loop = runloop.New(p.queue)
	p.Shell.Out = &p.Output
	p.Shell.Exit = func(code int) {
		k := p.kills[len(p.kills)-1]
		panic(&k)
	}
	p.Shell.Stop = func() {
		p.loop.Close()
		p.queue.Stop()
	}
	return p
}

// CreateWindow creates and registers a window. It is not shown.
func (p *Platform) CreateWindow(title string, size platform.Size, resizable bool, controller platform.WindowController) (platform.Window, error) {
	if p.RefuseWindows {
		return nil, ErrWindowRefused
	}
	p.created++
	w := &Window{
		id:      p.created,
		p:       p,
		surface: &platform.Surface{},
	}
	w.Init(w, title, size, resizable, controller, p.clamp, p.Unregister)
	p.Register(w)
	p.Log.Debug("window %d %q created (%dx%d)", w.id, title, size.Width, size.Height)
	return w, nil
}

// Kill records the kill, writes reason to Output and calls Exit.
func (p *Platform) Kill(code int, reason string) {
	p.kills = append(p.kills, Killed{Code: code, Reason: reason})
	p.Shell.Kill(code, reason)
}

// Kills returns every Kill call seen so far.
func (p *Platform) Kills() []Killed {
	return p.kills
}

// PluginFactoryContext returns the platform run loop.
func (p *Platform) PluginFactoryContext() any {
	return p.loop
}

// RunLoop returns the loop shared by all windows.
func (p *Platform) RunLoop() *runloop.Loop {
	return p.loop
}

// Created returns the number of windows created so far.
func (p *Platform) Created() int {
	return p.created
}

// SetMaxSize limits the client size of every window, as a screen would.
// A zero dimension means unlimited. Open windows are laid out again.
func (p *Platform) SetMaxSize(size platform.Size) {
	p.maxSize = size
	for _, w := range p.Windows() {
		w.(*Window).Relayout()
	}
}

func (p *Platform) clamp(s platform.Size) platform.Size {
	if p.maxSize.Width > 0 && s.Width > p.maxSize.Width {
		s.Width = p.maxSize.Width
	}
	if p.maxSize.Height > 0 && s.Height > p.maxSize.Height {
		s.Height = p.maxSize.Height
	}
	return s
}

// Post queues fn on the event loop.
func (p *Platform) Post(fn func()) {
	p.queue.Post(fn)
}

// Drain runs queued callbacks without blocking.
func (p *Platform) Drain() int {
	return p.queue.Drain()
}

// Run initializes app and processes queued callbacks until Quit.
func (p *Platform) Run(app platform.Application, args []string) {
	p.SetApplication(app)
	app.Init(args)
	p.queue.Run()
}

// Catch runs fn and returns the *Killed it panicked with, or nil.
func Catch(fn func()) (k *Killed) {
	defer func() {
		if r := recover(); r != nil {
			var ok bool
			if k, ok = r.(*Killed); !ok {
				panic(r)
			}
		}
	}()
	fn()
	return nil
}
