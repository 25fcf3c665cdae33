// Package platform defines the contract between the host application and a
// native windowing binding. Bindings live in sub-packages.
package platform

import (
	"github.com/justyntemme/editorhost/pkg/vst3"
)

// Size is a window client size in native units
type Size struct {
	Width  int
	Height int
}

// Rect converts the size into a view rectangle at the origin.
func (s Size) Rect() vst3.ViewRect {
	return vst3.RectOfSize(int32(s.Width), int32(s.Height))
}

// SizeOf returns the extent of a view rectangle.
func SizeOf(r vst3.ViewRect) Size {
	return Size{Width: int(r.Width()), Height: int(r.Height())}
}

// NativeWindow is the handle a view attaches to
type NativeWindow struct {
	Type   vst3.PlatformType
	Handle any
}

// Window is a platform window hosting one editor view.
type Window interface {
	Show()
	Close()
	// Resize asks the window for a new client size. The window consults its
	// controller and the platform limits, then reports the granted size back
	// through WindowController.OnResize.
	Resize(size Size)
	Size() Size
	ContentScaleFactor() float32
	NativeWindow() NativeWindow
	// RunLoop returns the loop plugins may register timers and descriptors
	// with, or nil when the window does not offer one.
	RunLoop() vst3.RunLoop
}

// WindowController receives window events.
type WindowController interface {
	OnShow(w Window)
	OnClose(w Window)
	OnResize(w Window, newSize Size)
	ConstrainSize(w Window, requested Size) Size
	OnContentScaleFactorChanged(w Window, factor float32)
}

// Application is driven by a Platform.
type Application interface {
	Init(args []string)
	Terminate()
}

// Platform is the process-wide windowing shell.
type Platform interface {
	// CreateWindow returns an error when the window system refuses the window.
	CreateWindow(title string, size Size, resizable bool, controller WindowController) (Window, error)
	// Windows returns the currently open windows in creation order.
	Windows() []Window
	// Quit closes all windows, terminates the application and stops the
	// event loop. Calls made while a quit is in progress are ignored.
	Quit()
	// Kill prints reason and ends the process with code. It does not return.
	Kill(code int, reason string)
	// PluginFactoryContext is handed to plugin factories as host context.
	PluginFactoryContext() any
}
