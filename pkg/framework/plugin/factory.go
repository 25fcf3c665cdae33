package plugin

import (
	"fmt"
	"sync"

	"github.com/justyntemme/editorhost/pkg/vst3"
)

// Factory is a vst3.PluginFactory over registered plugins.
type Factory struct {
	info vst3.FactoryInfo

	mu      sync.RWMutex
	classes []vst3.ClassInfo
	create  map[vst3.UID]func() any
	context any
}

var (
	_ vst3.PluginFactory     = (*Factory)(nil)
	_ vst3.HostContextSetter = (*Factory)(nil)
)

// NewFactory creates an empty factory.
func NewFactory(info vst3.FactoryInfo) *Factory {
	return &Factory{
		info:   info,
		create: make(map[vst3.UID]func() any),
	}
}

// Register adds the component class of info and, when newController is not
// nil, its edit controller class.
func (f *Factory) Register(info Info, newComponent func() vst3.Component, newController func() vst3.EditController) error {
	if err := info.ValidateUID(); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if _, dup := f.create[info.UID()]; dup {
		return fmt.Errorf("plugin %s already registered", info.ID)
	}
	f.classes = append(f.classes, info.ClassInfo())
	f.create[info.UID()] = func() any { return newComponent() }
	if newController != nil {
		f.classes = append(f.classes, info.ControllerClassInfo())
		f.create[info.ControllerUID()] = func() any { return newController() }
	}
	return nil
}

func (f *Factory) Info() vst3.FactoryInfo {
	return f.info
}

func (f *Factory) Classes() []vst3.ClassInfo {
	f.mu.RLock()
	defer f.mu.RUnlock()

	out := make([]vst3.ClassInfo, len(f.classes))
	copy(out, f.classes)
	return out
}

func (f *Factory) CreateInstance(cid vst3.UID) (any, error) {
	f.mu.RLock()
	create, ok := f.create[cid]
	f.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("class %s: %w", cid, vst3.ErrInvalidArgument)
	}
	return create(), nil
}

// SetHostContext stores the host context, usually the platform run loop.
func (f *Factory) SetHostContext(ctx any) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.context = ctx
	return nil
}

// RunLoop returns the host context when it is a run loop.
func (f *Factory) RunLoop() vst3.RunLoop {
	f.mu.RLock()
	defer f.mu.RUnlock()

	rl, _ := f.context.(vst3.RunLoop)
	return rl
}
