// Package vst3test provides scriptable plugin objects for tests: a factory,
// components, controllers and views that record what the host does to them.
package vst3test

import (
	"fmt"
	"io"

	"github.com/justyntemme/editorhost/pkg/vst3"
)

// Log records calls across objects so tests can check their order.
type Log struct {
	entries []string
}

// Add appends an entry. A nil log ignores it.
func (l *Log) Add(format string, args ...any) {
	if l == nil {
		return
	}
	l.entries = append(l.entries, fmt.Sprintf(format, args...))
}

// Entries returns everything recorded so far.
func (l *Log) Entries() []string {
	if l == nil {
		return nil
	}
	return l.entries
}

// Factory is a vst3.PluginFactory over a fixed class list.
type Factory struct {
	FactoryInfo vst3.FactoryInfo
	ClassList   []vst3.ClassInfo
	// New maps class IDs to constructors.
	New map[vst3.UID]func() (any, error)

	HostContext any
	Created     []vst3.UID
}

// NewFactory returns an empty factory.
func NewFactory() *Factory {
	return &Factory{
		FactoryInfo: vst3.FactoryInfo{Vendor: "Test Vendor"},
		New:         make(map[vst3.UID]func() (any, error)),
	}
}

// AddClass appends a class and its constructor.
func (f *Factory) AddClass(info vst3.ClassInfo, create func() (any, error)) {
	f.ClassList = append(f.ClassList, info)
	f.New[info.ID] = create
}

func (f *Factory) Info() vst3.FactoryInfo    { return f.FactoryInfo }
func (f *Factory) Classes() []vst3.ClassInfo { return f.ClassList }

func (f *Factory) CreateInstance(cid vst3.UID) (any, error) {
	create, ok := f.New[cid]
	if !ok {
		return nil, vst3.ErrInvalidArgument
	}
	f.Created = append(f.Created, cid)
	return create()
}

func (f *Factory) SetHostContext(ctx any) error {
	f.HostContext = ctx
	return nil
}

// Component is a scriptable vst3.Component that is also an AudioProcessor
// and a ConnectionPoint.
type Component struct {
	Log           *Log
	ControllerCID vst3.UID
	State         []byte
	InitErr       error
	BusErr        error

	Host        vst3.HostApplication
	Initialized int
	Terminated  int
	Active      bool
	Inputs      []vst3.SpeakerArrangement
	Outputs     []vst3.SpeakerArrangement
	Peer        vst3.ConnectionPoint
	Released    bool
}

func (c *Component) Initialize(host vst3.HostApplication) error {
	c.Log.Add("component.initialize")
	c.Host = host
	c.Initialized++
	return c.InitErr
}

func (c *Component) Terminate() error {
	c.Log.Add("component.terminate")
	c.Terminated++
	return nil
}

func (c *Component) ControllerClassID() vst3.UID { return c.ControllerCID }

func (c *Component) SetActive(state bool) error {
	c.Active = state
	return nil
}

func (c *Component) SetState(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	c.Log.Add("component.setState")
	c.State = data
	return nil
}

func (c *Component) GetState(w io.Writer) error {
	_, err := w.Write(c.State)
	return err
}

func (c *Component) SetBusArrangements(inputs, outputs []vst3.SpeakerArrangement) error {
	c.Inputs, c.Outputs = inputs, outputs
	return c.BusErr
}

func (c *Component) Connect(other vst3.ConnectionPoint) error {
	c.Peer = other
	return nil
}

func (c *Component) Disconnect(vst3.ConnectionPoint) error {
	c.Log.Add("component.disconnect")
	c.Peer = nil
	return nil
}

func (c *Component) Notify(*vst3.Message) error { return nil }

func (c *Component) Release() {
	c.Log.Add("component.release")
	c.Released = true
}

// Controller is a scriptable vst3.EditController and ConnectionPoint.
type Controller struct {
	Log     *Log
	State   []byte
	InitErr error
	// NewView builds the editor view; nil means the controller has none.
	NewView func() vst3.PlugView

	Host           vst3.HostApplication
	ComponentState []byte
	Initialized    int
	Terminated     int
	Handler        vst3.ComponentHandler
	Views          []vst3.PlugView
	Params         map[vst3.ParamID]float64
	Peer           vst3.ConnectionPoint
}

func (c *Controller) Initialize(host vst3.HostApplication) error {
	c.Log.Add("controller.initialize")
	c.Host = host
	c.Initialized++
	return c.InitErr
}

func (c *Controller) Terminate() error {
	c.Log.Add("controller.terminate")
	c.Terminated++
	return nil
}

func (c *Controller) SetComponentState(r io.Reader) error {
	data, err := io.ReadAll(r)
	c.ComponentState = data
	return err
}

func (c *Controller) SetState(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	c.Log.Add("controller.setState")
	c.State = data
	return nil
}

func (c *Controller) GetState(w io.Writer) error {
	_, err := w.Write(c.State)
	return err
}

func (c *Controller) ParameterCount() int32 { return int32(len(c.Params)) }

func (c *Controller) ParameterInfo(int32) (vst3.ParameterInfo, error) {
	return vst3.ParameterInfo{}, vst3.ErrNotImplemented
}

func (c *Controller) ParamNormalized(id vst3.ParamID) float64 { return c.Params[id] }

func (c *Controller) SetParamNormalized(id vst3.ParamID, value float64) error {
	if c.Params == nil {
		c.Params = make(map[vst3.ParamID]float64)
	}
	c.Params[id] = value
	return nil
}

func (c *Controller) SetComponentHandler(handler vst3.ComponentHandler) error {
	c.Handler = handler
	return nil
}

func (c *Controller) CreateView(name string) vst3.PlugView {
	if name != vst3.ViewTypeEditor || c.NewView == nil {
		return nil
	}
	v := c.NewView()
	if v != nil {
		c.Views = append(c.Views, v)
	}
	return v
}

func (c *Controller) Connect(other vst3.ConnectionPoint) error {
	c.Peer = other
	return nil
}

func (c *Controller) Disconnect(vst3.ConnectionPoint) error {
	c.Log.Add("controller.disconnect")
	c.Peer = nil
	return nil
}

func (c *Controller) Notify(*vst3.Message) error { return nil }

// SingleComponent is a component that is its own edit controller.
type SingleComponent struct {
	*Controller
}

func (s SingleComponent) ControllerClassID() vst3.UID { return vst3.NilUID }
func (s SingleComponent) SetActive(bool) error        { return nil }
