package gain

import (
	"github.com/justyntemme/editorhost/pkg/debug"
	"github.com/justyntemme/editorhost/pkg/framework/bus"
	"github.com/justyntemme/editorhost/pkg/framework/plugin"
	"github.com/justyntemme/editorhost/pkg/vst3"
)

// MessageParamChanged is sent by the controller when the editor changes a
// parameter. Attributes: "id" (vst3.ParamID), "value" (float64).
const MessageParamChanged = "paramChanged"

// Component is the processing half of the gain plugin.
type Component struct {
	*plugin.Base

	log    *debug.Logger
	peer   vst3.ConnectionPoint
	active bool
	buses  *bus.Configuration
}

var (
	_ vst3.Component       = (*Component)(nil)
	_ vst3.AudioProcessor  = (*Component)(nil)
	_ vst3.ConnectionPoint = (*Component)(nil)
)

// NewComponent creates a component with default parameter values and a
// stereo bus on each side.
func NewComponent() *Component {
	c := &Component{
		Base:  plugin.NewBase(Info),
		log:   debug.Default().Named("gain"),
		buses: bus.NewEffect(vst3.ArrStereo, bus.SameChannels(2)),
	}
	newParameters(c.Parameters())
	return c
}

func (c *Component) ControllerClassID() vst3.UID {
	return Info.ControllerUID()
}

func (c *Component) SetActive(state bool) error {
	c.active = state
	return nil
}

// Active reports the last SetActive state.
func (c *Component) Active() bool {
	return c.active
}

// SetBusArrangements accepts one mono or stereo bus per direction with the
// same channel count on both sides.
func (c *Component) SetBusArrangements(inputs, outputs []vst3.SpeakerArrangement) error {
	if err := c.buses.SetArrangements(inputs, outputs); err != nil {
		c.log.Debug("bus arrangements rejected: %v", err)
		return err
	}
	c.log.Debug("bus arrangements: %s -> %s", inputs[0], outputs[0])
	return nil
}

// BusArrangements returns the active input and output arrangements.
func (c *Component) BusArrangements() (inputs, outputs []vst3.SpeakerArrangement) {
	return c.buses.Arrangements(bus.Input), c.buses.Arrangements(bus.Output)
}

// Buses returns the component's bus layout.
func (c *Component) Buses() *bus.Configuration {
	return c.buses
}

func (c *Component) Connect(other vst3.ConnectionPoint) error {
	if other == nil {
		return vst3.ErrInvalidArgument
	}
	c.peer = other
	return nil
}

func (c *Component) Disconnect(other vst3.ConnectionPoint) error {
	if c.peer == nil || other != c.peer {
		return vst3.ErrResultFalse
	}
	c.peer = nil
	return nil
}

// Notify applies parameter changes sent by the controller.
func (c *Component) Notify(msg *vst3.Message) error {
	if msg == nil || msg.ID != MessageParamChanged {
		return vst3.ErrResultFalse
	}
	id, ok1 := msg.Attributes["id"].(vst3.ParamID)
	value, ok2 := msg.Attributes["value"].(float64)
	if !ok1 || !ok2 {
		return vst3.ErrInvalidArgument
	}
	_, err := c.Parameters().SetValue(id, value)
	return err
}
