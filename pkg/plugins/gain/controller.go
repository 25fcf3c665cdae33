package gain

import (
	"encoding/binary"
	"io"

	"github.com/justyntemme/editorhost/pkg/debug"
	"github.com/justyntemme/editorhost/pkg/framework/param"
	"github.com/justyntemme/editorhost/pkg/framework/plugin"
	"github.com/justyntemme/editorhost/pkg/vst3"
)

// Default and minimum editor sizes, in terminal cells.
const (
	DefaultWidth  = 44
	DefaultHeight = 12
	MinWidth      = 32
	MinHeight     = 9
)

// Controller is the edit controller of the gain plugin. Besides the
// parameter values its state remembers the editor size.
type Controller struct {
	*plugin.Base

	log        *debug.Logger
	handler    vst3.ComponentHandler
	peer       vst3.ConnectionPoint
	runLoop    func() vst3.RunLoop
	editorSize vst3.ViewRect
	editors    []*Editor
}

var (
	_ vst3.EditController  = (*Controller)(nil)
	_ vst3.ConnectionPoint = (*Controller)(nil)
)

// NewController creates a controller. runLoop, when not nil, supplies the
// host run loop for editors whose frame does not offer one.
func NewController(runLoop func() vst3.RunLoop) *Controller {
	c := &Controller{
		Base:       plugin.NewBase(Info),
		log:        debug.Default().Named("gain"),
		runLoop:    runLoop,
		editorSize: vst3.RectOfSize(DefaultWidth, DefaultHeight),
	}
	newParameters(c.Parameters())
	// Every value change, from the host, the component state or an editor,
	// redraws all editors.
	c.Parameters().Listen(func(*param.Parameter) { c.refreshEditors() })
	c.State().SetCustomState(c.saveEditorSize, c.loadEditorSize)
	return c
}

func (c *Controller) saveEditorSize(w io.Writer) error {
	return binary.Write(w, binary.LittleEndian, [2]int32{c.editorSize.Width(), c.editorSize.Height()})
}

func (c *Controller) loadEditorSize(r io.Reader) error {
	var size [2]int32
	if err := binary.Read(r, binary.LittleEndian, &size); err != nil {
		return err
	}
	c.editorSize = vst3.RectOfSize(max(size[0], MinWidth), max(size[1], MinHeight))
	return nil
}

// Terminate closes what is left of the editors.
func (c *Controller) Terminate() error {
	c.editors = nil
	c.handler = nil
	return c.Base.Terminate()
}

// SetComponentState takes over the parameter values of the component. The
// component state carries no editor size, so the current one is kept.
func (c *Controller) SetComponentState(r io.Reader) error {
	return c.State().Load(r)
}

func (c *Controller) ParameterCount() int32 {
	return c.Parameters().Count()
}

func (c *Controller) ParameterInfo(index int32) (vst3.ParameterInfo, error) {
	return c.Parameters().Info(index)
}

func (c *Controller) ParamNormalized(id vst3.ParamID) float64 {
	v, _ := c.Parameters().Value(id)
	return v
}

func (c *Controller) SetParamNormalized(id vst3.ParamID, value float64) error {
	_, err := c.Parameters().SetValue(id, value)
	return err
}

func (c *Controller) SetComponentHandler(handler vst3.ComponentHandler) error {
	c.handler = handler
	return nil
}

// CreateView returns a new editor for vst3.ViewTypeEditor.
func (c *Controller) CreateView(name string) vst3.PlugView {
	if name != vst3.ViewTypeEditor {
		return nil
	}
	e := newEditor(c, c.editorSize)
	c.editors = append(c.editors, e)
	return e
}

// EditorSize returns the size new editors open with.
func (c *Controller) EditorSize() vst3.ViewRect {
	return c.editorSize
}

// edit performs a complete user edit: every editor redraws, the component
// handler sees begin/perform/end and the component is notified.
func (c *Controller) edit(id vst3.ParamID, value float64) {
	if changed, err := c.Parameters().SetValue(id, value); err != nil || !changed {
		return
	}
	p := c.Parameters().Get(id)
	value = p.GetValue()

	if c.handler != nil {
		c.handler.BeginEdit(id)
		c.handler.PerformEdit(id, value)
		c.handler.EndEdit(id)
	}
	if c.peer != nil {
		msg := &vst3.Message{
			ID:         MessageParamChanged,
			Attributes: map[string]any{"id": id, "value": value},
		}
		if err := c.peer.Notify(msg); err != nil {
			c.log.Warn("notify %s: %v", p.Name, err)
		}
	}
}

func (c *Controller) refreshEditors() {
	for _, e := range c.editors {
		e.render()
	}
}

func (c *Controller) editorResized(e *Editor) {
	c.editorSize = vst3.RectOfSize(e.rect.Width(), e.rect.Height())
}

func (c *Controller) editorRemoved(e *Editor) {
	for i, other := range c.editors {
		if other == e {
			c.editors = append(c.editors[:i], c.editors[i+1:]...)
			return
		}
	}
}

func (c *Controller) hostRunLoop() vst3.RunLoop {
	if c.runLoop == nil {
		return nil
	}
	return c.runLoop()
}

func (c *Controller) Connect(other vst3.ConnectionPoint) error {
	if other == nil {
		return vst3.ErrInvalidArgument
	}
	c.peer = other
	return nil
}

func (c *Controller) Disconnect(other vst3.ConnectionPoint) error {
	if c.peer == nil || other != c.peer {
		return vst3.ErrResultFalse
	}
	c.peer = nil
	return nil
}

func (c *Controller) Notify(*vst3.Message) error {
	return vst3.ErrResultFalse
}
