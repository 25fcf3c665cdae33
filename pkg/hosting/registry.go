package hosting

import (
	"sort"
	"strings"
	"sync"

	"github.com/justyntemme/editorhost/pkg/vst3"
)

// BuiltinPrefix marks module paths served from the built-in registry.
const BuiltinPrefix = "builtin:"

// Entry returns the factory of a statically linked module. It is called
// every time the module is created.
type Entry func() vst3.PluginFactory

var (
	builtins   = make(map[string]Entry)
	builtinsMu sync.RWMutex
)

// Register makes a statically linked module available as "builtin:<name>".
// Registering a name twice replaces the earlier entry.
func Register(name string, entry Entry) {
	builtinsMu.Lock()
	defer builtinsMu.Unlock()
	builtins[name] = entry
}

// Unregister removes a built-in module.
func Unregister(name string) {
	builtinsMu.Lock()
	defer builtinsMu.Unlock()
	delete(builtins, name)
}

// Builtins returns the registered built-in names, sorted.
func Builtins() []string {
	builtinsMu.RLock()
	defer builtinsMu.RUnlock()
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func lookupBuiltin(path string) (Entry, bool) {
	builtinsMu.RLock()
	defer builtinsMu.RUnlock()
	entry, ok := builtins[strings.TrimPrefix(path, BuiltinPrefix)]
	return entry, ok
}
