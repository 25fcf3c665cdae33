package hosting

import (
	"bytes"
	"fmt"

	"github.com/justyntemme/editorhost/pkg/debug"
	"github.com/justyntemme/editorhost/pkg/vst3"
)

// HostApplication is the host context handed to plugin objects on Initialize.
type HostApplication struct {
	name string
}

// DefaultHostName is the name reported to plugins.
const DefaultHostName = "EditorHost"

// NewHostApplication returns a host context reporting name.
func NewHostApplication(name string) *HostApplication {
	if name == "" {
		name = DefaultHostName
	}
	return &HostApplication{name: name}
}

// Name implements vst3.HostApplication.
func (h *HostApplication) Name() string {
	return h.name
}

// PlugProvider creates and owns the component and controller of one class.
type PlugProvider struct {
	factory Factory
	info    vst3.ClassInfo
	log     *debug.Logger

	component  vst3.Component
	controller vst3.EditController
	// separate is set when the controller is its own object rather than the
	// component itself.
	separate  bool
	connected bool
	released  bool
}

// NewPlugProvider prepares a provider for class info of f.
func NewPlugProvider(f Factory, info vst3.ClassInfo) *PlugProvider {
	return &PlugProvider{
		factory: f,
		info:    info,
		log:     debug.Default().Named("provider"),
	}
}

// Initialize creates the component and its controller. A missing or failing
// controller is not an error; Controller then returns nil.
func (p *PlugProvider) Initialize(host vst3.HostApplication) error {
	comp, err := p.factory.CreateComponent(p.info.ID)
	if err != nil {
		return err
	}
	if err := comp.Initialize(host); err != nil {
		if r, ok := comp.(vst3.Releaser); ok {
			r.Release()
		}
		return fmt.Errorf("initialize component %s: %w", p.info.Name, err)
	}
	p.component = comp

	cid := comp.ControllerClassID()
	if cid.IsNil() {
		if ctrl, ok := comp.(vst3.EditController); ok {
			p.controller = ctrl
		} else {
			p.log.Warn("%s has no edit controller", p.info.Name)
		}
		return nil
	}

	ctrl, err := p.factory.CreateController(cid)
	if err != nil {
		p.log.Warn("%s: %v", p.info.Name, err)
		return nil
	}
	if err := ctrl.Initialize(host); err != nil {
		p.log.Warn("initialize controller of %s: %v", p.info.Name, err)
		if r, ok := ctrl.(vst3.Releaser); ok {
			r.Release()
		}
		return nil
	}
	p.controller = ctrl
	p.separate = true

	p.connect()
	p.syncComponentState()
	return nil
}

func (p *PlugProvider) connect() {
	compCP, ok1 := p.component.(vst3.ConnectionPoint)
	ctrlCP, ok2 := p.controller.(vst3.ConnectionPoint)
	if !ok1 || !ok2 {
		return
	}
	if err := compCP.Connect(ctrlCP); err != nil {
		p.log.Warn("connect component: %v", err)
		return
	}
	if err := ctrlCP.Connect(compCP); err != nil {
		p.log.Warn("connect controller: %v", err)
		compCP.Disconnect(ctrlCP)
		return
	}
	p.connected = true
}

func (p *PlugProvider) disconnect() {
	if !p.connected {
		return
	}
	compCP := p.component.(vst3.ConnectionPoint)
	ctrlCP := p.controller.(vst3.ConnectionPoint)
	compCP.Disconnect(ctrlCP)
	ctrlCP.Disconnect(compCP)
	p.connected = false
}

// syncComponentState hands the component's current state to the controller.
func (p *PlugProvider) syncComponentState() {
	var buf bytes.Buffer
	if err := p.component.GetState(&buf); err != nil {
		p.log.Debug("component state not available: %v", err)
		return
	}
	if err := p.controller.SetComponentState(&buf); err != nil {
		p.log.Debug("controller rejected component state: %v", err)
	}
}

// Component returns the component, nil before Initialize or after Release.
func (p *PlugProvider) Component() vst3.Component {
	return p.component
}

// Controller returns the edit controller or nil.
func (p *PlugProvider) Controller() vst3.EditController {
	return p.controller
}

// ComponentUID returns the class ID of the component.
func (p *PlugProvider) ComponentUID() vst3.UID {
	return p.info.ID
}

// ClassInfo returns the descriptor the provider was created for.
func (p *PlugProvider) ClassInfo() vst3.ClassInfo {
	return p.info
}

// Release disconnects and terminates the controller, then the component.
// Later calls do nothing.
func (p *PlugProvider) Release() {
	if p.released {
		return
	}
	p.released = true
	p.disconnect()

	if p.separate && p.controller != nil {
		if err := p.controller.Terminate(); err != nil {
			p.log.Warn("terminate controller: %v", err)
		}
		if r, ok := p.controller.(vst3.Releaser); ok {
			r.Release()
		}
	}
	p.controller = nil

	if p.component != nil {
		if err := p.component.Terminate(); err != nil {
			p.log.Warn("terminate component: %v", err)
		}
		if r, ok := p.component.(vst3.Releaser); ok {
			r.Release()
		}
	}
	p.component = nil
}
