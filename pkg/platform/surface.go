package platform

import "github.com/justyntemme/editorhost/pkg/vst3"

// Surface is an in-memory vst3.TextSurface. Bindings render its content and
// feed it the keys the window does not consume itself.
type Surface struct {
	content string
	handler func(key string) bool
}

var _ vst3.TextSurface = (*Surface)(nil)

// SetContent replaces the rendered text.
func (s *Surface) SetContent(content string) {
	s.content = content
}

// SetKeyHandler sets the function receiving key presses.
func (s *Surface) SetKeyHandler(handler func(key string) bool) {
	s.handler = handler
}

// Content returns the last rendered text.
func (s *Surface) Content() string {
	return s.content
}

// Press delivers a key and reports whether it was handled.
func (s *Surface) Press(key string) bool {
	if s.handler == nil {
		return false
	}
	return s.handler(key)
}
