package headless

import (
	"github.com/justyntemme/editorhost/pkg/platform"
	"github.com/justyntemme/editorhost/pkg/vst3"
)

// Window is a headless platform window.
type Window struct {
	platform.BaseWindow

	id      int
	p       *Platform
	surface *platform.Surface
}

// ID returns the creation index of the window, starting at 1.
func (w *Window) ID() int {
	return w.id
}

// NativeWindow returns the window's text surface under the platform's
// native type.
func (w *Window) NativeWindow() platform.NativeWindow {
	return platform.NativeWindow{Type: w.p.NativeType, Handle: w.surface}
}

// RunLoop returns the platform loop.
func (w *Window) RunLoop() vst3.RunLoop {
	return w.p.loop
}

// Surface returns what views attached to the window draw into.
func (w *Window) Surface() *platform.Surface {
	return w.surface
}
