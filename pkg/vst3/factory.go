package vst3

// FactoryInfo describes the vendor of a module
type FactoryInfo struct {
	Vendor string
	URL    string
	Email  string
}

// ClassInfo describes one class exported by a factory
type ClassInfo struct {
	ID            UID
	Category      string
	Name          string
	Vendor        string
	Version       string
	SubCategories string
	Cardinality   int32
}

// PluginFactory is the entry object of a plugin module
type PluginFactory interface {
	Info() FactoryInfo
	Classes() []ClassInfo

	// CreateInstance returns a new object of class cid. The host type-asserts
	// the result to Component or EditController.
	CreateInstance(cid UID) (any, error)
}

// HostContextSetter is implemented by factories that accept a host context
// (the platform run loop) before any instance is created.
type HostContextSetter interface {
	SetHostContext(ctx any) error
}
