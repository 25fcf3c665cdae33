package hosting

import (
	"fmt"

	"github.com/justyntemme/editorhost/pkg/vst3"
)

// Factory wraps a module's vst3.PluginFactory with typed creation helpers.
type Factory struct {
	f vst3.PluginFactory
}

// NewFactory wraps f.
func NewFactory(f vst3.PluginFactory) Factory {
	return Factory{f}
}

// Info returns the vendor information.
func (f Factory) Info() vst3.FactoryInfo {
	return f.f.Info()
}

// ClassInfos returns the exported classes in factory order.
func (f Factory) ClassInfos() []vst3.ClassInfo {
	return f.f.Classes()
}

// SetHostContext passes ctx to factories that accept one. It reports
// whether the factory took it.
func (f Factory) SetHostContext(ctx any) (bool, error) {
	s, ok := f.f.(vst3.HostContextSetter)
	if !ok {
		return false, nil
	}
	return true, s.SetHostContext(ctx)
}

// CreateComponent instantiates cid as a component.
func (f Factory) CreateComponent(cid vst3.UID) (vst3.Component, error) {
	obj, err := f.f.CreateInstance(cid)
	if err != nil {
		return nil, fmt.Errorf("create component %s: %w", cid, err)
	}
	c, ok := obj.(vst3.Component)
	if !ok {
		return nil, fmt.Errorf("create component %s: %w", cid, vst3.ErrNoInterface)
	}
	return c, nil
}

// CreateController instantiates cid as an edit controller.
func (f Factory) CreateController(cid vst3.UID) (vst3.EditController, error) {
	obj, err := f.f.CreateInstance(cid)
	if err != nil {
		return nil, fmt.Errorf("create controller %s: %w", cid, err)
	}
	c, ok := obj.(vst3.EditController)
	if !ok {
		return nil, fmt.Errorf("create controller %s: %w", cid, vst3.ErrNoInterface)
	}
	return c, nil
}
