package editorhost

import (
	"github.com/justyntemme/editorhost/pkg/debug"
	"github.com/justyntemme/editorhost/pkg/platform"
	"github.com/justyntemme/editorhost/pkg/vst3"
)

// WindowController connects one editor view to one platform window. It is
// the window's controller and the view's plug frame at the same time.
type WindowController struct {
	view     vst3.PlugView
	window   platform.Window
	platform platform.Platform
	log      *debug.Logger

	// resizeGuard is set while ResizeView is resizing the window.
	resizeGuard bool
}

var (
	_ platform.WindowController = (*WindowController)(nil)
	_ vst3.PlugFrame            = (*WindowController)(nil)
	_ vst3.RunLoopFrame         = (*WindowController)(nil)
)

// NewWindowController returns a controller for view. Fatal errors are
// reported through p.Kill.
func NewWindowController(view vst3.PlugView, p platform.Platform) *WindowController {
	return &WindowController{
		view:     view,
		platform: p,
		log:      debug.Default().Named("window"),
	}
}

// View returns the attached view, nil after CloseView.
func (c *WindowController) View() vst3.PlugView {
	return c.view
}

// Window returns the bound window, nil before OnShow and after CloseView.
func (c *WindowController) Window() platform.Window {
	return c.window
}

// OnShow attaches the view to the window.
func (c *WindowController) OnShow(w platform.Window) {
	c.log.Debug("onShow called (%p)", w)

	c.window = w
	if c.view == nil {
		return
	}

	native := w.NativeWindow()
	if !c.view.IsPlatformTypeSupported(native.Type) {
		c.platform.Kill(-1, "PlugView does not support platform type:"+string(native.Type))
		return
	}

	c.view.SetFrame(c)

	if err := c.view.Attached(native.Handle, native.Type); err != nil {
		c.log.Error("attached: %v", err)
		c.platform.Kill(-1, "Attaching PlugView failed")
	}
}

// CloseView detaches and drops the view. It is safe to call repeatedly.
func (c *WindowController) CloseView() {
	if view := c.view; view != nil {
		c.view = nil
		view.SetFrame(nil)
		if err := view.Removed(); err != nil {
			c.log.Error("removed: %v", err)
			c.platform.Kill(-1, "Removing PlugView failed")
			return
		}
		if r, ok := view.(vst3.Releaser); ok {
			r.Release()
		}
	}
	c.window = nil
}

// OnClose detaches the view. The platform quits once no other window is
// left open.
func (c *WindowController) OnClose(w platform.Window) {
	c.log.Debug("onClose called (%p)", w)

	c.CloseView()

	for _, other := range c.platform.Windows() {
		if other != w {
			return
		}
	}
	c.platform.Quit()
}

// OnResize forwards a window-driven size change to the view unless the view
// already has that size.
func (c *WindowController) OnResize(w platform.Window, newSize platform.Size) {
	c.log.Debug("onResize called (%p) %dx%d", w, newSize.Width, newSize.Height)

	if c.view == nil {
		return
	}
	r := newSize.Rect()
	if cur, err := c.view.GetSize(); err == nil && cur != r {
		c.view.OnSize(r)
	}
}

// ConstrainSize returns the size closest to requested that the view accepts.
func (c *WindowController) ConstrainSize(w platform.Window, requested platform.Size) platform.Size {
	c.log.Trace("constrainSize called (%p)", w)

	if c.view == nil {
		return requested
	}
	r := requested.Rect()
	if !c.view.CheckSizeConstraint(&r) {
		return platform.SizeOf(r)
	}
	return requested
}

// OnContentScaleFactorChanged forwards the factor to views that support it.
func (c *WindowController) OnContentScaleFactorChanged(w platform.Window, factor float32) {
	c.log.Debug("onContentScaleFactorChanged called (%p) %.2f", w, factor)

	if css, ok := c.view.(vst3.ContentScaleSupport); ok {
		css.SetContentScaleFactor(factor)
	}
}

// ResizeView is called by the view to change its own size. The window is
// resized to the request; if the window grants a different size the view is
// told the size it actually got.
func (c *WindowController) ResizeView(view vst3.PlugView, newSize *vst3.ViewRect) error {
	c.log.Debug("resizeView called (%p)", view)

	if newSize == nil || view == nil || view != c.view {
		return vst3.ErrInvalidArgument
	}
	if c.window == nil {
		return vst3.ErrInternalError
	}
	if c.resizeGuard {
		return vst3.ErrResultFalse
	}
	r, err := c.view.GetSize()
	if err != nil {
		return vst3.ErrInternalError
	}
	if r == *newSize {
		return nil
	}

	c.resizeWindow(platform.SizeOf(*newSize))

	// The window may have closed the view while resizing.
	if c.view == nil || c.window == nil {
		return nil
	}
	if r, err = c.view.GetSize(); err != nil {
		return vst3.ErrInternalError
	}
	if r != *newSize {
		if granted := c.window.Size().Rect(); granted != r {
			c.view.OnSize(granted)
		}
	}
	return nil
}

func (c *WindowController) resizeWindow(size platform.Size) {
	c.resizeGuard = true
	defer func() { c.resizeGuard = false }()
	c.window.Resize(size)
}

// ResizeGuarded reports whether a view-driven resize is in progress.
func (c *WindowController) ResizeGuarded() bool {
	return c.resizeGuard
}

// RunLoop returns the bound window's run loop, or nil.
func (c *WindowController) RunLoop() vst3.RunLoop {
	if c.window == nil {
		return nil
	}
	return c.window.RunLoop()
}
