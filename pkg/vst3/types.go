// Package vst3 describes the plugin-side objects a host talks to: factories,
// components, edit controllers and editor views. The plugin implements these
// interfaces; the host only consumes them.
package vst3

// Class categories
const (
	CategoryAudioEffect    = "Audio Module Class"
	CategoryComponentCtrl  = "Component Controller Class"
	CategoryTestClass      = "Test Class"
	CategoryPluginCompatib = "Plugin Compatibility Class"
)

// ViewTypeEditor is the view name passed to EditController.CreateView for the main editor.
const ViewTypeEditor = "editor"

// ParamID identifies a parameter of an edit controller
type ParamID = uint32

// Error codes returned across the plugin boundary. A nil error is the
// equivalent of kResultOk/kResultTrue.
type Error int

const (
	ErrResultFalse     Error = 1
	ErrNotImplemented  Error = -1
	ErrInvalidArgument Error = -2
	ErrInternalError   Error = -3
	ErrNotInitialized  Error = -4
	ErrNoInterface     Error = -5
	ErrOutOfMemory     Error = -6
)

func (e Error) Error() string {
	switch e {
	case ErrResultFalse:
		return "result false"
	case ErrNotImplemented:
		return "not implemented"
	case ErrInvalidArgument:
		return "invalid argument"
	case ErrInternalError:
		return "internal error"
	case ErrNotInitialized:
		return "not initialized"
	case ErrNoInterface:
		return "no interface"
	case ErrOutOfMemory:
		return "out of memory"
	default:
		return "unknown error"
	}
}

// ParameterInfo describes a parameter
type ParameterInfo struct {
	ID           ParamID
	Title        string
	ShortTitle   string
	Units        string
	StepCount    int32
	DefaultValue float64
	UnitID       int32
	Flags        int32
}

// Parameter flags
const (
	ParameterCanAutomate  int32 = 1 << 0
	ParameterIsReadOnly   int32 = 1 << 1
	ParameterIsWrapAround int32 = 1 << 2
	ParameterIsList       int32 = 1 << 3
	ParameterIsHidden     int32 = 1 << 4
	ParameterIsBypass     int32 = 1 << 16
)

// Restart flags passed to ComponentHandler.RestartComponent
const (
	RestartReloadComponent     int32 = 1 << 0
	RestartIoChanged           int32 = 1 << 1
	RestartParamValuesChanged  int32 = 1 << 2
	RestartLatencyChanged      int32 = 1 << 3
	RestartParamTitlesChanged  int32 = 1 << 4
	RestartMidiCCAssignChanged int32 = 1 << 5
)
