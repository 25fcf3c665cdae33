package param

import (
	"fmt"
	"sync"

	"github.com/justyntemme/editorhost/pkg/vst3"
)

// Listener is called after a value set through the registry changed.
type Listener func(p *Parameter)

// Registry manages plugin parameters
type Registry struct {
	params    map[vst3.ParamID]*Parameter
	order     []vst3.ParamID // registration order, for indexed access
	listeners []Listener
	mu        sync.RWMutex
}

// NewRegistry creates a new parameter registry
func NewRegistry() *Registry {
	return &Registry{
		params: make(map[vst3.ParamID]*Parameter),
	}
}

// Add registers parameters. Duplicate IDs are rejected.
func (r *Registry) Add(params ...*Parameter) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range params {
		if _, exists := r.params[p.ID]; exists {
			return fmt.Errorf("parameter %d (%s) already registered", p.ID, p.Name)
		}
		r.params[p.ID] = p
		r.order = append(r.order, p.ID)
	}
	return nil
}

// Get retrieves a parameter by ID
func (r *Registry) Get(id vst3.ParamID) *Parameter {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.params[id]
}

// GetByIndex retrieves a parameter by index
func (r *Registry) GetByIndex(index int32) *Parameter {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if index < 0 || index >= int32(len(r.order)) {
		return nil
	}
	return r.params[r.order[index]]
}

// Count returns the number of parameters
func (r *Registry) Count() int32 {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return int32(len(r.order))
}

// All returns all parameters in order
func (r *Registry) All() []*Parameter {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*Parameter, len(r.order))
	for i, id := range r.order {
		result[i] = r.params[id]
	}
	return result
}

// Listen adds fn to the listeners notified by SetValue and Reset.
func (r *Registry) Listen(fn Listener) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.listeners = append(r.listeners, fn)
}

// SetValue sets the normalized value of parameter id and notifies the
// listeners when it changed. Unknown IDs are vst3.ErrInvalidArgument.
func (r *Registry) SetValue(id vst3.ParamID, value float64) (bool, error) {
	p := r.Get(id)
	if p == nil {
		return false, fmt.Errorf("%w: unknown parameter %d", vst3.ErrInvalidArgument, id)
	}
	if !p.SetValue(value) {
		return false, nil
	}
	r.notify(p)
	return true, nil
}

// Value returns the normalized value of parameter id.
func (r *Registry) Value(id vst3.ParamID) (float64, bool) {
	p := r.Get(id)
	if p == nil {
		return 0, false
	}
	return p.GetValue(), true
}

// Info describes the parameter at index for the host.
func (r *Registry) Info(index int32) (vst3.ParameterInfo, error) {
	p := r.GetByIndex(index)
	if p == nil {
		return vst3.ParameterInfo{}, fmt.Errorf("%w: parameter index %d", vst3.ErrInvalidArgument, index)
	}
	return p.Info(), nil
}

// Reset restores every parameter to its default.
func (r *Registry) Reset() {
	for _, p := range r.All() {
		if p.SetValue(p.DefaultValue) {
			r.notify(p)
		}
	}
}

func (r *Registry) notify(p *Parameter) {
	r.mu.RLock()
	listeners := r.listeners
	r.mu.RUnlock()

	for _, fn := range listeners {
		fn(p)
	}
}
