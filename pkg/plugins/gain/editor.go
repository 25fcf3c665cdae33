package gain

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/justyntemme/editorhost/pkg/debug"
	"github.com/justyntemme/editorhost/pkg/dsp"
	"github.com/justyntemme/editorhost/pkg/vst3"
)

// BlinkInterval is the period of the selection marker animation.
const BlinkInterval = 400 * time.Millisecond

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	meterStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	bypassStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

// Editor is the text editor of the gain plugin.
type Editor struct {
	ctrl *Controller
	log  *debug.Logger

	frame    vst3.PlugFrame
	surface  vst3.TextSurface
	loop     vst3.RunLoop
	rect     vst3.ViewRect
	scale    float32
	selected int
	focused  bool
	blink    bool
}

var (
	_ vst3.PlugView            = (*Editor)(nil)
	_ vst3.ContentScaleSupport = (*Editor)(nil)
	_ vst3.TimerHandler        = (*Editor)(nil)
)

func newEditor(ctrl *Controller, size vst3.ViewRect) *Editor {
	return &Editor{
		ctrl:  ctrl,
		log:   ctrl.log.Named("editor"),
		rect:  size,
		scale: 1,
	}
}

func (e *Editor) IsPlatformTypeSupported(t vst3.PlatformType) bool {
	return t == vst3.PlatformTypeTextSurface
}

// Attached starts drawing into parent, which must be a vst3.TextSurface.
func (e *Editor) Attached(parent any, t vst3.PlatformType) error {
	surface, ok := parent.(vst3.TextSurface)
	if !ok || !e.IsPlatformTypeSupported(t) {
		return vst3.ErrInvalidArgument
	}
	e.surface = surface
	surface.SetKeyHandler(func(key string) bool { return e.OnKeyDown(key) == nil })

	if rf, ok := e.frame.(vst3.RunLoopFrame); ok {
		e.loop = rf.RunLoop()
	}
	if e.loop == nil {
		e.loop = e.ctrl.hostRunLoop()
	}
	if e.loop != nil {
		if err := e.loop.RegisterTimer(e, BlinkInterval); err != nil {
			e.log.Warn("register timer: %v", err)
			e.loop = nil
		}
	}

	e.render()
	return nil
}

// Removed stops drawing and leaves the run loop.
func (e *Editor) Removed() error {
	if e.surface == nil {
		return nil
	}
	if e.loop != nil {
		e.loop.UnregisterTimer(e)
		e.loop = nil
	}
	e.surface.SetKeyHandler(nil)
	e.surface = nil
	e.ctrl.editorRemoved(e)
	return nil
}

// OnKeyDown handles the editor keys. Unknown keys return ErrResultFalse so
// the host may use them.
func (e *Editor) OnKeyDown(key string) error {
	params := e.ctrl.Parameters()
	p := params.GetByIndex(int32(e.selected))

	switch key {
	case "up", "k":
		e.selected = (e.selected + int(params.Count()) - 1) % int(params.Count())
	case "down", "j":
		e.selected = (e.selected + 1) % int(params.Count())
	case "left", "h", "right", "l":
		step := 1
		if key == "left" || key == "h" {
			step = -1
		}
		size := 0.01
		if p.StepCount > 0 {
			size = 1 / float64(p.StepCount)
		}
		e.ctrl.edit(p.ID, p.GetValue()+float64(step)*size)
	case "r":
		e.ctrl.edit(p.ID, p.DefaultValue)
	case "]":
		e.requestSize(e.rect.Width()+4, e.rect.Height()+1)
	case "[":
		e.requestSize(e.rect.Width()-4, e.rect.Height()-1)
	default:
		return vst3.ErrResultFalse
	}
	e.render()
	return nil
}

// requestSize asks the frame for a new size. The frame answers through
// OnSize.
func (e *Editor) requestSize(width, height int32) {
	if e.frame == nil {
		return
	}
	r := vst3.RectOfSize(width, height)
	e.CheckSizeConstraint(&r)
	if err := e.frame.ResizeView(e, &r); err != nil {
		e.log.Debug("resize to %dx%d refused: %v", r.Width(), r.Height(), err)
	}
}

func (e *Editor) OnFocus(state bool) error {
	e.focused = state
	e.render()
	return nil
}

func (e *Editor) GetSize() (vst3.ViewRect, error) {
	return e.rect, nil
}

func (e *Editor) OnSize(newSize vst3.ViewRect) error {
	e.rect = newSize
	e.ctrl.editorResized(e)
	e.render()
	return nil
}

func (e *Editor) SetFrame(frame vst3.PlugFrame) error {
	e.frame = frame
	return nil
}

func (e *Editor) CanResize() bool {
	return true
}

// CheckSizeConstraint enforces the minimum editor size.
func (e *Editor) CheckSizeConstraint(rect *vst3.ViewRect) bool {
	w, h := rect.Width(), rect.Height()
	if w >= MinWidth && h >= MinHeight {
		return true
	}
	rect.Right = rect.Left + max(w, MinWidth)
	rect.Bottom = rect.Top + max(h, MinHeight)
	return false
}

func (e *Editor) SetContentScaleFactor(factor float32) error {
	if factor <= 0 {
		return vst3.ErrInvalidArgument
	}
	e.scale = factor
	e.render()
	return nil
}

// OnTimer animates the selection marker.
func (e *Editor) OnTimer() {
	e.blink = !e.blink
	e.render()
}

// Selected returns the index of the selected parameter.
func (e *Editor) Selected() int {
	return e.selected
}

func (e *Editor) render() {
	if e.surface == nil {
		return
	}
	e.surface.SetContent(e.View())
}

// View renders the editor at its current size.
func (e *Editor) View() string {
	width := int(e.rect.Width())
	barWidth := max(width-24, 4)

	var b strings.Builder
	header := fmt.Sprintf("%s %s", Info.Name, Info.Version)
	scale := fmt.Sprintf("@%.2gx", e.scale)
	b.WriteString(headerStyle.Render(header))
	b.WriteString(strings.Repeat(" ", max(width-len(header)-len(scale), 1)))
	b.WriteString(dimStyle.Render(scale))
	b.WriteString("\n\n")

	marker := "▸"
	if e.blink {
		marker = "▹"
	}
	for i, p := range e.ctrl.Parameters().All() {
		line := fmt.Sprintf("%-7s %s %s", p.Name, bar(p.GetValue(), barWidth), p.FormatValue(p.GetValue()))
		if i == e.selected {
			b.WriteString(selectedStyle.Render(marker + " " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteByte('\n')
	}

	b.WriteByte('\n')
	params := e.ctrl.Parameters()
	if params.Get(ParamBypass).GetValue() > 0.5 {
		b.WriteString(bypassStyle.Render("bypassed"))
	} else {
		left, right := dsp.ChannelLevels(params.Get(ParamGain).GetPlainValue(), params.Get(ParamPan).GetPlainValue(), dsp.ConstantPower)
		half := max((width-8)/2, 2)
		b.WriteString("L " + meterStyle.Render(meter(left, half)) + "  R " + meterStyle.Render(meter(right, half)))
	}
	b.WriteByte('\n')
	b.WriteString(dimStyle.Render("↑↓ select  ←→ adjust  r reset  [ ] size"))

	return lipgloss.NewStyle().
		Width(width).
		MaxWidth(width).
		Height(int(e.rect.Height())).
		MaxHeight(int(e.rect.Height())).
		Render(b.String())
}

// bar draws a normalized value as a horizontal bar.
func bar(value float64, width int) string {
	filled := int(math.Round(value * float64(width)))
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + "]"
}

// meter draws a linear level on a -60..+12 dB scale.
func meter(linear float64, width int) string {
	db := dsp.LinearToDb(linear)
	return bar(min(max((db+60)/72, 0), 1), width)
}
