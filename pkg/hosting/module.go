// Package hosting loads plugin modules and instantiates their classes. A
// module is either statically linked (see Register), a ".vst3" bundle
// directory or a Go shared object.
package hosting

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"plugin"
	"runtime"
	"strings"

	"github.com/justyntemme/editorhost/pkg/debug"
	"github.com/justyntemme/editorhost/pkg/vst3"
)

// Symbols looked up in shared object modules.
const (
	SymbolGetPluginFactory = "GetPluginFactory"
	SymbolModuleEntry      = "ModuleEntry"
	SymbolModuleExit       = "ModuleExit"
)

var (
	// ErrModuleNotFound is returned when the path names nothing loadable.
	ErrModuleNotFound = errors.New("module not found")
	// ErrNoFactory is returned when a module does not export a factory.
	ErrNoFactory = errors.New("module does not export " + SymbolGetPluginFactory)
	// ErrEntryFailed is returned when ModuleEntry reports failure.
	ErrEntryFailed = errors.New(SymbolModuleEntry + " failed")
)

// Module is a loaded plugin module.
type Module struct {
	name    string
	path    string
	factory Factory
	exit    func() bool
	log     *debug.Logger
}

// Create loads the module at path.
func Create(path string) (*Module, error) {
	log := debug.Default().Named("hosting")

	if strings.HasPrefix(path, BuiltinPrefix) {
		entry, ok := lookupBuiltin(path)
		if !ok {
			return nil, fmt.Errorf("%w: %s (registered: %s)", ErrModuleNotFound, path, strings.Join(Builtins(), ", "))
		}
		f := entry()
		if f == nil {
			return nil, ErrNoFactory
		}
		log.Debug("using built-in module %s", path)
		return &Module{
			name:    strings.TrimPrefix(path, BuiltinPrefix),
			path:    path,
			factory: Factory{f},
			log:     log,
		}, nil
	}

	so, err := resolveBinary(path)
	if err != nil {
		return nil, err
	}
	m, err := openShared(so)
	if err != nil {
		return nil, err
	}
	m.name = moduleName(path)
	m.path = path
	m.log = log
	log.Debug("loaded %s from %s", m.name, so)
	return m, nil
}

// Name returns the module name without extension.
func (m *Module) Name() string {
	return m.name
}

// Path returns the path the module was created from.
func (m *Module) Path() string {
	return m.path
}

// Factory returns the module's plugin factory.
func (m *Module) Factory() Factory {
	return m.factory
}

// Release calls ModuleExit when the module exported it. The shared object
// itself stays mapped; Go cannot unload plugins.
func (m *Module) Release() {
	if m.exit == nil {
		return
	}
	exit := m.exit
	m.exit = nil
	if !exit() {
		m.log.Warn("%s: %s returned false", m.name, SymbolModuleExit)
	}
}

func moduleName(path string) string {
	base := filepath.Base(filepath.Clean(path))
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// bundleArch maps GOARCH to the architecture directory of a bundle.
func bundleArch() string {
	switch runtime.GOARCH {
	case "amd64":
		return "x86_64-linux"
	case "arm64":
		return "aarch64-linux"
	case "386":
		return "i386-linux"
	case "arm":
		return "armv7l-linux"
	}
	return runtime.GOARCH + "-linux"
}

// resolveBinary finds the shared object of a bundle, or returns path itself
// when it already names a file.
func resolveBinary(path string) (string, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrModuleNotFound, err)
	}
	if !fi.IsDir() {
		return path, nil
	}

	name := moduleName(path)
	candidates := []string{
		filepath.Join(path, "Contents", bundleArch(), name+".so"),
		filepath.Join(path, "Contents", "MacOS", name),
	}
	for _, c := range candidates {
		if fi, err := os.Stat(c); err == nil && !fi.IsDir() {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: no binary for %s in bundle %s", ErrModuleNotFound, bundleArch(), path)
}

func openShared(path string) (*Module, error) {
	p, err := plugin.Open(path)
	if err != nil {
		return nil, err
	}

	sym, err := p.Lookup(SymbolGetPluginFactory)
	if err != nil {
		return nil, ErrNoFactory
	}
	getFactory, ok := sym.(func() vst3.PluginFactory)
	if !ok {
		return nil, fmt.Errorf("%w: %s has type %T", ErrNoFactory, SymbolGetPluginFactory, sym)
	}

	m := &Module{}
	if entry, ok := lookupBoolFunc(p, SymbolModuleEntry); ok && !entry() {
		return nil, ErrEntryFailed
	}
	if exit, ok := lookupBoolFunc(p, SymbolModuleExit); ok {
		m.exit = exit
	}

	f := getFactory()
	if f == nil {
		m.Release()
		return nil, ErrNoFactory
	}
	m.factory = Factory{f}
	return m, nil
}

func lookupBoolFunc(p *plugin.Plugin, name string) (func() bool, bool) {
	sym, err := p.Lookup(name)
	if err != nil {
		return nil, false
	}
	fn, ok := sym.(func() bool)
	return fn, ok
}
