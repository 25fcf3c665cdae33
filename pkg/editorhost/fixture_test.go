package editorhost

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/justyntemme/editorhost/pkg/hosting"
	"github.com/justyntemme/editorhost/pkg/platform/headless"
	"github.com/justyntemme/editorhost/pkg/vst3"
	"github.com/justyntemme/editorhost/pkg/vst3/vst3test"
)

var (
	effectA    = vst3.MustUID("A0000000000000000000000000000001")
	effectB    = vst3.MustUID("B0000000000000000000000000000002")
	controlID  = vst3.MustUID("C0000000000000000000000000000003")
	instrument = vst3.MustUID("D0000000000000000000000000000004")
)

// plugin is a fake module: a factory registered as a builtin, the objects it
// hands out and the views its controller creates.
type plugin struct {
	path       string
	log        *vst3test.Log
	factory    *vst3test.Factory
	component  *vst3test.Component
	controller *vst3test.Controller
	views      []*vst3test.View

	// newView customizes each created view.
	newView func(v *vst3test.View) vst3.PlugView
}

// newPlugin registers a module with an instrument class followed by the
// audio effects A and B, in that order.
func newPlugin(t *testing.T) *plugin {
	t.Helper()
	pl := &plugin{log: &vst3test.Log{}}
	pl.component = &vst3test.Component{Log: pl.log, ControllerCID: controlID, State: []byte("component")}
	pl.controller = &vst3test.Controller{Log: pl.log, State: []byte("controller")}
	pl.controller.NewView = func() vst3.PlugView {
		v := vst3test.NewView(400, 300)
		v.Log = pl.log
		pl.views = append(pl.views, v)
		if pl.newView != nil {
			return pl.newView(v)
		}
		return v
	}

	pl.factory = vst3test.NewFactory()
	pl.factory.AddClass(vst3.ClassInfo{ID: instrument, Category: "Instrument Class", Name: "Synth"}, func() (any, error) {
		return &vst3test.Component{}, nil
	})
	for _, info := range []vst3.ClassInfo{
		{ID: effectA, Category: vst3.CategoryAudioEffect, Name: "Effect A"},
		{ID: effectB, Category: vst3.CategoryAudioEffect, Name: "Effect B"},
	} {
		pl.factory.AddClass(info, func() (any, error) { return pl.component, nil })
	}
	pl.factory.New[controlID] = func() (any, error) { return pl.controller, nil }

	name := strings.ReplaceAll(t.Name(), "/", "-")
	hosting.Register(name, func() vst3.PluginFactory { return pl.factory })
	t.Cleanup(func() { hosting.Unregister(name) })
	pl.path = hosting.BuiltinPrefix + name
	return pl
}

// writeConfig writes a TOML configuration and returns its path.
func writeConfig(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "host.toml")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644))
	return path
}

func (pl *plugin) config(t *testing.T, extra ...string) string {
	t.Helper()
	return writeConfig(t, append([]string{fmt.Sprintf("plugin_path = %q", pl.path)}, extra...)...)
}

// initApp runs Init on a new app over p and returns the Kill it ended
// with, if any.
func initApp(p *headless.Platform, args ...string) (*App, *headless.Killed) {
	app := New(p)
	p.SetApplication(app)
	return app, headless.Catch(func() { app.Init(args) })
}

// start runs Init over a new headless platform and fails the test on Kill.
func start(t *testing.T, args ...string) (*App, *headless.Platform) {
	t.Helper()
	p := headless.New()
	app, k := initApp(p, args...)
	require.Nil(t, k, "unexpected kill")
	return app, p
}

// startKilled runs Init and returns the Kill it ended with.
func startKilled(t *testing.T, args ...string) *headless.Killed {
	t.Helper()
	_, k := initApp(headless.New(), args...)
	require.NotNil(t, k, "Init did not kill")
	return k
}
