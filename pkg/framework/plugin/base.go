// Package plugin provides the plumbing shared by the built-in plugins: class
// metadata, a factory, and the parameter registry and state manager every
// component and controller carries.
package plugin

import (
	"io"

	"github.com/justyntemme/editorhost/pkg/framework/param"
	"github.com/justyntemme/editorhost/pkg/framework/state"
	"github.com/justyntemme/editorhost/pkg/vst3"
)

// Base provides core functionality for all plugins
type Base struct {
	Info   Info
	params *param.Registry
	state  *state.Manager
	host   vst3.HostApplication
}

// NewBase creates a new plugin base
func NewBase(info Info) *Base {
	b := &Base{
		Info:   info,
		params: param.NewRegistry(),
	}
	b.state = state.NewManager(b.params)
	return b
}

// Parameters returns the parameter registry for configuration
func (b *Base) Parameters() *param.Registry {
	return b.params
}

// State returns the state manager.
func (b *Base) State() *state.Manager {
	return b.state
}

// Host returns the host application passed to Initialize.
func (b *Base) Host() vst3.HostApplication {
	return b.host
}

func (b *Base) Initialize(host vst3.HostApplication) error {
	b.host = host
	return nil
}

func (b *Base) Terminate() error {
	b.host = nil
	return nil
}

func (b *Base) GetState(w io.Writer) error {
	return b.state.Save(w)
}

func (b *Base) SetState(r io.Reader) error {
	return b.state.Load(r)
}
