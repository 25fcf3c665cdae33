// Package gain is a built-in stereo gain plugin. It exists so the host can
// be run without an external module: its controller offers a text editor
// that renders into a TextSurface, asks the host for size changes and
// animates through the host run loop.
//
// Importing the package registers it as "builtin:gain".
package gain

import (
	"github.com/justyntemme/editorhost/pkg/framework/param"
	"github.com/justyntemme/editorhost/pkg/framework/plugin"
	"github.com/justyntemme/editorhost/pkg/hosting"
	"github.com/justyntemme/editorhost/pkg/vst3"
)

// Name is the builtin module name.
const Name = "gain"

// Parameter IDs
const (
	ParamGain vst3.ParamID = iota
	ParamPan
	ParamBypass
)

// Info describes the plugin class.
var Info = plugin.Info{
	ID:            "com.editorhost.gain",
	Name:          "Gain",
	Version:       "1.0.0",
	Vendor:        "editorhost",
	SubCategories: "Fx",
}

func init() {
	hosting.Register(Name, func() vst3.PluginFactory { return NewFactory() })
}

// NewFactory returns a factory exporting the gain component and controller.
func NewFactory() *plugin.Factory {
	f := plugin.NewFactory(vst3.FactoryInfo{Vendor: Info.Vendor, URL: "https://github.com/justyntemme/editorhost"})
	f.Register(Info,
		func() vst3.Component { return NewComponent() },
		func() vst3.EditController { return NewController(f.RunLoop) },
	)
	return f
}

// newParameters registers the gain parameters on r.
func newParameters(r *param.Registry) {
	r.Add(
		param.New(ParamGain, "Gain").
			ShortName("Gain").
			Range(-60, 12).
			Default(0).
			Unit("dB").
			Formatter(param.DecibelFormatter, param.DecibelParser).
			Build(),
		param.New(ParamPan, "Pan").
			Range(-1, 1).
			Default(0).
			Formatter(param.PanFormatter, param.PanParser).
			Build(),
		param.New(ParamBypass, "Bypass").
			Bypass().
			Build(),
	)
}
