package vst3

// PlatformType names the kind of native surface a view is attached to
type PlatformType string

const (
	PlatformTypeHWND             PlatformType = "HWND"
	PlatformTypeNSView           PlatformType = "NSView"
	PlatformTypeX11EmbedWindowID PlatformType = "X11EmbedWindowID"
	// PlatformTypeTextSurface is a character-cell surface; the handle passed
	// to Attached implements TextSurface.
	PlatformTypeTextSurface PlatformType = "TextSurface"
)

// ViewRect is a view rectangle in native units
type ViewRect struct {
	Left, Top, Right, Bottom int32
}

// RectOfSize returns a rectangle at the origin with the given dimensions.
func RectOfSize(width, height int32) ViewRect {
	return ViewRect{Right: width, Bottom: height}
}

// Width returns the horizontal extent
func (r ViewRect) Width() int32 { return r.Right - r.Left }

// Height returns the vertical extent
func (r ViewRect) Height() int32 { return r.Bottom - r.Top }

// PlugView is an editor view created by an edit controller.
type PlugView interface {
	IsPlatformTypeSupported(t PlatformType) bool
	Attached(parent any, t PlatformType) error
	Removed() error
	OnKeyDown(key string) error
	OnFocus(state bool) error
	GetSize() (ViewRect, error)
	OnSize(newSize ViewRect) error
	SetFrame(frame PlugFrame) error
	CanResize() bool

	// CheckSizeConstraint reports whether rect is acceptable. When it is
	// not, rect is corrected in place.
	CheckSizeConstraint(rect *ViewRect) bool
}

// PlugFrame is the host side of a view: the view asks it for size changes.
type PlugFrame interface {
	ResizeView(view PlugView, newSize *ViewRect) error
}

// ContentScaleSupport is optionally implemented by views
type ContentScaleSupport interface {
	SetContentScaleFactor(factor float32) error
}

// TextSurface is the native handle for PlatformTypeTextSurface
type TextSurface interface {
	SetContent(content string)
	SetKeyHandler(handler func(key string) bool)
}
