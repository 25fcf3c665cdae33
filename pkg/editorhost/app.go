// Package editorhost opens the editor of one plugin class in platform
// windows. App is the platform application; WindowController ties one editor
// view to one window.
package editorhost

import (
	"errors"
	"fmt"

	"github.com/justyntemme/editorhost/pkg/debug"
	"github.com/justyntemme/editorhost/pkg/hosting"
	"github.com/justyntemme/editorhost/pkg/platform"
	"github.com/justyntemme/editorhost/pkg/preset"
	"github.com/justyntemme/editorhost/pkg/vst3"
)

// WindowTitle is the title of every editor window.
const WindowTitle = "Editor"

// App loads a plugin from a configuration file and shows its editor.
type App struct {
	platform platform.Platform
	log      *debug.Logger

	opts   Options
	config *Config
	host   *hosting.HostApplication

	module         *vst3.Owned[*hosting.Module]
	provider       *vst3.Owned[*hosting.PlugProvider]
	hostContextSet bool
	handler        *ComponentHandler

	controllers []*WindowController
	windows     []platform.Window

	terminated bool
}

var _ platform.Application = (*App)(nil)

// New returns an application driven by p.
func New(p platform.Platform) *App {
	return &App{
		platform: p,
		log:      debug.Default().Named("app"),
	}
}

// Init parses args and opens the editor. Failures end the process through
// Platform.Kill.
func (a *App) Init(args []string) {
	opts, err := ParseArgs(args)
	switch {
	case errors.Is(err, ErrNoArgs):
		a.platform.Kill(0, HelpText)
		return
	case err != nil:
		a.platform.Kill(-1, fmt.Sprintf("%v\n\n%s", err, HelpText))
		return
	}
	for _, arg := range opts.Ignored {
		a.log.Debug("ignoring unknown option %s", arg)
	}
	a.opts = opts

	cfg, err := LoadConfig(opts.ConfigPath)
	if err != nil {
		a.platform.Kill(-1, err.Error())
		return
	}
	a.config = cfg

	a.OpenEditor(cfg)
}

// OpenEditor loads the configured module, instantiates the selected class
// and opens its editor in one window, or two with --secondWindow.
func (a *App) OpenEditor(cfg *Config) {
	a.config = cfg
	path := cfg.PluginPath

	uid, haveUID, err := cfg.ClassID()
	if err != nil {
		a.platform.Kill(-1, fmt.Sprintf("Invalid class UID %q in configuration", cfg.UID))
		return
	}

	m, err := hosting.Create(path)
	if err != nil {
		a.platform.Kill(-1, fmt.Sprintf("Could not create Module for file:%s\nError: %v", path, err))
		return
	}
	a.module = vst3.Own(m)

	factory := m.Factory()
	took, err := factory.SetHostContext(a.platform.PluginFactoryContext())
	if err != nil {
		a.log.Warn("set host context: %v", err)
	}
	a.hostContextSet = took && err == nil

	a.host = hosting.NewHostApplication(hosting.DefaultHostName)
	provider := a.selectClass(factory, uid, haveUID)
	if provider == nil {
		if haveUID {
			a.platform.Kill(-1, fmt.Sprintf("No VST3 Audio Module Class with UID %s found in file %s", uid, path))
		} else {
			a.platform.Kill(-1, "No VST3 Audio Module Class found in file "+path)
		}
		return
	}
	a.provider = vst3.Own(provider)

	controller := provider.Controller()
	if controller == nil {
		a.platform.Kill(-1, "No EditController found (needed for allowing editor) in file "+path)
		return
	}

	if a.opts.ComponentHandler {
		a.handler = NewComponentHandler()
		if err := controller.SetComponentHandler(a.handler); err != nil {
			a.log.Warn("set component handler: %v", err)
		}
	}

	a.applyBusArrangements(provider.Component())

	if cfg.PluginStatePath != "" {
		if err := preset.LoadFile(cfg.PluginStatePath, provider.ComponentUID(), provider.Component(), controller); err != nil {
			a.log.Debug("state not restored from %s: %v", cfg.PluginStatePath, err)
		}
	}

	if !a.createViewAndShow(controller) {
		return
	}
	if a.opts.SecondWindow {
		a.createViewAndShow(controller)
	}
}

// selectClass walks the audio effect classes of f in order. With a target the
// first class with that ID is used, otherwise the first one. The search ends
// with the first candidate: if it cannot be initialized, nil is returned.
func (a *App) selectClass(f hosting.Factory, target vst3.UID, haveTarget bool) *hosting.PlugProvider {
	for _, info := range f.ClassInfos() {
		if info.Category != vst3.CategoryAudioEffect {
			continue
		}
		if haveTarget && info.ID != target {
			continue
		}
		p := hosting.NewPlugProvider(f, info)
		if err := p.Initialize(a.host); err != nil {
			a.log.Error("initialize %s: %v", info.Name, err)
			p.Release()
			return nil
		}
		a.log.Info("hosting %s (%s)", info.Name, info.ID)
		return p
	}
	return nil
}

func (a *App) applyBusArrangements(component vst3.Component) {
	cfg := a.config
	if len(cfg.InputBusArrangements) == 0 && len(cfg.OutputBusArrangements) == 0 {
		return
	}
	inputs, skippedIn := Arrangements(cfg.InputBusArrangements)
	outputs, skippedOut := Arrangements(cfg.OutputBusArrangements)
	for _, name := range append(skippedIn, skippedOut...) {
		a.log.Warn("unknown speaker arrangement %q", name)
	}

	proc, ok := component.(vst3.AudioProcessor)
	if !ok {
		a.log.Debug("component is not an audio processor, bus arrangements ignored")
		return
	}
	if err := proc.SetBusArrangements(inputs, outputs); err != nil {
		a.log.Warn("set bus arrangements: %v", err)
	}
}

func (a *App) createViewAndShow(controller vst3.EditController) bool {
	view := controller.CreateView(vst3.ViewTypeEditor)
	if view == nil {
		a.platform.Kill(-1, "EditController does not provide its own editor")
		return false
	}

	rect, err := view.GetSize()
	if err != nil {
		a.platform.Kill(-1, "Could not get editor view size")
		return false
	}

	wc := NewWindowController(view, a.platform)
	window, err := a.platform.CreateWindow(WindowTitle, platform.SizeOf(rect), view.CanResize(), wc)
	if err != nil || window == nil {
		if err != nil {
			a.log.Error("create window: %v", err)
		}
		a.platform.Kill(-1, "Could not create window")
		return false
	}

	a.controllers = append(a.controllers, wc)
	a.windows = append(a.windows, window)
	window.Show()
	return true
}

// Terminate detaches the views, saves the plugin state and releases the
// plugin and its module. Only the first call has an effect.
func (a *App) Terminate() {
	if a.terminated {
		return
	}
	a.terminated = true

	for _, wc := range a.controllers {
		wc.CloseView()
	}

	open := a.platform.Windows()
	for _, w := range a.windows {
		for _, o := range open {
			if o == w {
				w.Close()
				break
			}
		}
	}
	a.controllers = nil
	a.windows = nil

	a.saveState()

	a.provider.Release()

	if a.hostContextSet {
		if m := a.module.Get(); m != nil {
			if _, err := m.Factory().SetHostContext(nil); err != nil {
				a.log.Debug("clear host context: %v", err)
			}
		}
		a.hostContextSet = false
	}
	a.module.Release()
	a.host = nil
}

func (a *App) saveState() {
	if a.config == nil || a.config.PluginStatePath == "" || !a.provider.Held() {
		return
	}
	p := a.provider.Get()
	if err := preset.SaveFile(a.config.PluginStatePath, p.ComponentUID(), p.Component(), p.Controller()); err != nil {
		a.log.Debug("state not saved to %s: %v", a.config.PluginStatePath, err)
		return
	}
	a.log.Info("state saved to %s", a.config.PluginStatePath)
}

// Controllers returns the window controllers of the open editors.
func (a *App) Controllers() []*WindowController {
	return a.controllers
}

// Windows returns the windows created for the editors.
func (a *App) Windows() []platform.Window {
	return a.windows
}

// Provider returns the hosted plugin, nil before OpenEditor and after
// Terminate.
func (a *App) Provider() *hosting.PlugProvider {
	return a.provider.Get()
}

// Module returns the loaded module, nil before OpenEditor and after
// Terminate.
func (a *App) Module() *hosting.Module {
	return a.module.Get()
}

// Options returns the parsed command line.
func (a *App) Options() Options {
	return a.opts
}
