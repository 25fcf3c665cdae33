package platform

// BaseWindow implements the size, scale and close bookkeeping shared by all
// bindings. A binding embeds it, calls Init with the outer window and adds
// NativeWindow and RunLoop.
type BaseWindow struct {
	Title string

	self       Window
	controller WindowController
	size       Size
	desired    Size
	scale      float32
	resizable  bool
	shown      bool
	closed     bool
	limit      func(Size) Size
	onClosed   func(Window)
}

// Init prepares the window. limit clamps any requested size to what the
// window system grants; nil means no limit. onClosed runs after the
// controller has seen OnClose.
func (b *BaseWindow) Init(self Window, title string, size Size, resizable bool, controller WindowController, limit func(Size) Size, onClosed func(Window)) {
	if limit == nil {
		limit = func(s Size) Size { return s }
	}
	b.self = self
	b.Title = title
	b.controller = controller
	b.size = limit(size)
	b.desired = size
	b.scale = 1
	b.resizable = resizable
	b.limit = limit
	b.onClosed = onClosed
}

// Show makes the window visible and lets the controller attach its view.
func (b *BaseWindow) Show() {
	if b.shown || b.closed {
		return
	}
	b.shown = true
	if b.controller != nil {
		b.controller.OnShow(b.self)
	}
	b.apply(b.desired)
}

// Close closes the window once; later calls do nothing.
func (b *BaseWindow) Close() {
	if b.closed {
		return
	}
	b.closed = true
	if b.controller != nil {
		b.controller.OnClose(b.self)
	}
	if b.onClosed != nil {
		b.onClosed(b.self)
	}
}

// Resize requests a new client size on behalf of the program.
func (b *BaseWindow) Resize(size Size) {
	if b.closed {
		return
	}
	b.desired = size
	b.apply(size)
}

// UserResize requests a new client size on behalf of the user. It is ignored
// for fixed-size windows.
func (b *BaseWindow) UserResize(size Size) {
	if !b.resizable {
		return
	}
	b.Resize(size)
}

// Relayout re-applies the last requested size after the window system
// limits changed.
func (b *BaseWindow) Relayout() {
	if b.closed {
		return
	}
	b.apply(b.desired)
}

func (b *BaseWindow) apply(requested Size) {
	if b.controller != nil {
		requested = b.controller.ConstrainSize(b.self, requested)
	}
	granted := b.limit(requested)
	if granted == b.size {
		return
	}
	b.size = granted
	if b.shown && b.controller != nil {
		b.controller.OnResize(b.self, granted)
	}
}

// Size returns the granted client size.
func (b *BaseWindow) Size() Size {
	return b.size
}

// Desired returns the last requested client size.
func (b *BaseWindow) Desired() Size {
	return b.desired
}

// Resizable reports whether the user may resize the window.
func (b *BaseWindow) Resizable() bool {
	return b.resizable
}

// Closed reports whether Close has been called.
func (b *BaseWindow) Closed() bool {
	return b.closed
}

// ContentScaleFactor returns the current scale factor.
func (b *BaseWindow) ContentScaleFactor() float32 {
	return b.scale
}

// SetContentScaleFactor changes the scale factor and notifies the controller.
func (b *BaseWindow) SetContentScaleFactor(factor float32) {
	if factor <= 0 || factor == b.scale {
		return
	}
	b.scale = factor
	if b.shown && !b.closed && b.controller != nil {
		b.controller.OnContentScaleFactorChanged(b.self, factor)
	}
}
