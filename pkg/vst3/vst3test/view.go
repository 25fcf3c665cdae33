package vst3test

import (
	"slices"

	"github.com/justyntemme/editorhost/pkg/vst3"
)

// View is a scriptable vst3.PlugView.
type View struct {
	Log       *Log
	Rect      vst3.ViewRect
	Resizable bool
	// Supported lists the accepted platform types; nil accepts all.
	Supported []vst3.PlatformType
	// Min and Max bound the size accepted by CheckSizeConstraint. Zero
	// dimensions are unbounded.
	MinWidth, MinHeight int32
	MaxWidth, MaxHeight int32

	SizeErr   error
	AttachErr error
	RemoveErr error
	// OnSizeHook runs inside OnSize after the new size is stored.
	OnSizeHook func(r vst3.ViewRect)

	Frame        vst3.PlugFrame
	FrameSets    int
	Parent       any
	PlatformType vst3.PlatformType
	IsAttached   bool
	Attaches     int
	Removes      int
	SizeCalls    []vst3.ViewRect
	Keys         []string
	Focused      bool
}

// NewView returns a resizable view of the given size.
func NewView(width, height int32) *View {
	return &View{Rect: vst3.RectOfSize(width, height), Resizable: true}
}

func (v *View) IsPlatformTypeSupported(t vst3.PlatformType) bool {
	return v.Supported == nil || slices.Contains(v.Supported, t)
}

func (v *View) Attached(parent any, t vst3.PlatformType) error {
	v.Log.Add("view.attached")
	if v.AttachErr != nil {
		return v.AttachErr
	}
	v.Parent = parent
	v.PlatformType = t
	v.IsAttached = true
	v.Attaches++
	return nil
}

func (v *View) Removed() error {
	v.Log.Add("view.removed")
	v.Removes++
	if v.RemoveErr != nil {
		return v.RemoveErr
	}
	v.IsAttached = false
	v.Parent = nil
	return nil
}

func (v *View) OnKeyDown(key string) error {
	v.Keys = append(v.Keys, key)
	return nil
}

func (v *View) OnFocus(state bool) error {
	v.Focused = state
	return nil
}

func (v *View) GetSize() (vst3.ViewRect, error) {
	if v.SizeErr != nil {
		return vst3.ViewRect{}, v.SizeErr
	}
	return v.Rect, nil
}

func (v *View) OnSize(r vst3.ViewRect) error {
	v.SizeCalls = append(v.SizeCalls, r)
	v.Rect = r
	if v.OnSizeHook != nil {
		v.OnSizeHook(r)
	}
	return nil
}

func (v *View) SetFrame(frame vst3.PlugFrame) error {
	v.Frame = frame
	v.FrameSets++
	return nil
}

func (v *View) CanResize() bool { return v.Resizable }

func (v *View) CheckSizeConstraint(r *vst3.ViewRect) bool {
	w, h := r.Width(), r.Height()
	cw := clamp(w, v.MinWidth, v.MaxWidth)
	ch := clamp(h, v.MinHeight, v.MaxHeight)
	if cw == w && ch == h {
		return true
	}
	r.Right = r.Left + cw
	r.Bottom = r.Top + ch
	return false
}

func clamp(x, lo, hi int32) int32 {
	if lo > 0 && x < lo {
		x = lo
	}
	if hi > 0 && x > hi {
		x = hi
	}
	return x
}

// ScalableView is a View that accepts content scale factors.
type ScalableView struct {
	*View
	Scales []float32
}

func (s *ScalableView) SetContentScaleFactor(factor float32) error {
	s.Scales = append(s.Scales, factor)
	return nil
}
