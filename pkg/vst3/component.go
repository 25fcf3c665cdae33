package vst3

import "io"

// HostApplication is the context object handed to PluginBase.Initialize.
type HostApplication interface {
	Name() string
}

// PluginBase is the lifecycle shared by components and controllers
type PluginBase interface {
	Initialize(host HostApplication) error
	Terminate() error
}

// Component represents the processing half of a plugin class
type Component interface {
	PluginBase

	// ControllerClassID returns the class of the paired edit controller, or
	// NilUID when the component implements EditController itself.
	ControllerClassID() UID
	SetActive(state bool) error
	SetState(r io.Reader) error
	GetState(w io.Writer) error
}

// AudioProcessor is optionally implemented by components
type AudioProcessor interface {
	SetBusArrangements(inputs, outputs []SpeakerArrangement) error
}

// EditController represents the parameter and UI half of a plugin class
type EditController interface {
	PluginBase

	SetComponentState(r io.Reader) error
	SetState(r io.Reader) error
	GetState(w io.Writer) error
	ParameterCount() int32
	ParameterInfo(index int32) (ParameterInfo, error)
	ParamNormalized(id ParamID) float64
	SetParamNormalized(id ParamID, value float64) error
	SetComponentHandler(handler ComponentHandler) error

	// CreateView returns nil when the controller has no view of that type.
	CreateView(name string) PlugView
}

// ComponentHandler receives edits performed in the controller (usually from the editor)
type ComponentHandler interface {
	BeginEdit(id ParamID) error
	PerformEdit(id ParamID, valueNormalized float64) error
	EndEdit(id ParamID) error
	RestartComponent(flags int32) error
}

// Message is exchanged between connected component and controller
type Message struct {
	ID         string
	Attributes map[string]any
}

// ConnectionPoint lets a component and its controller talk to each other
type ConnectionPoint interface {
	Connect(other ConnectionPoint) error
	Disconnect(other ConnectionPoint) error
	Notify(msg *Message) error
}

// Releaser is implemented by objects holding resources beyond Terminate,
// such as views and modules.
type Releaser interface {
	Release()
}
