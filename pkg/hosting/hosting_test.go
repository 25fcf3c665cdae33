package hosting

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justyntemme/editorhost/pkg/vst3"
	"github.com/justyntemme/editorhost/pkg/vst3/vst3test"
)

var (
	effectID     = vst3.MustUID("11111111111111111111111111111111")
	controllerID = vst3.MustUID("22222222222222222222222222222222")
)

func effectClass() vst3.ClassInfo {
	return vst3.ClassInfo{ID: effectID, Category: vst3.CategoryAudioEffect, Name: "Effect"}
}

func TestBuiltinRegistry(t *testing.T) {
	f := vst3test.NewFactory()
	Register("test-registry", func() vst3.PluginFactory { return f })
	defer Unregister("test-registry")

	assert.Contains(t, Builtins(), "test-registry")

	m, err := Create(BuiltinPrefix + "test-registry")
	require.NoError(t, err)
	assert.Equal(t, "test-registry", m.Name())
	assert.Equal(t, "builtin:test-registry", m.Path())
	assert.Equal(t, "Test Vendor", m.Factory().Info().Vendor)
	m.Release()
	m.Release()

	_, err = Create(BuiltinPrefix + "missing")
	assert.ErrorIs(t, err, ErrModuleNotFound)

	Register("nil-factory", func() vst3.PluginFactory { return nil })
	defer Unregister("nil-factory")
	_, err = Create(BuiltinPrefix + "nil-factory")
	assert.ErrorIs(t, err, ErrNoFactory)
}

func TestResolveBinary(t *testing.T) {
	dir := t.TempDir()

	bundle := filepath.Join(dir, "Foo.vst3")
	so := filepath.Join(bundle, "Contents", bundleArch(), "Foo.so")
	require.NoError(t, os.MkdirAll(filepath.Dir(so), 0o755))
	require.NoError(t, os.WriteFile(so, []byte("not really"), 0o644))

	got, err := resolveBinary(bundle)
	require.NoError(t, err)
	assert.Equal(t, so, got)

	got, err = resolveBinary(so)
	require.NoError(t, err)
	assert.Equal(t, so, got, "files are used as they are")

	empty := filepath.Join(dir, "Empty.vst3")
	require.NoError(t, os.Mkdir(empty, 0o755))
	_, err = resolveBinary(empty)
	assert.ErrorIs(t, err, ErrModuleNotFound)

	_, err = Create(filepath.Join(dir, "Missing.vst3"))
	assert.ErrorIs(t, err, ErrModuleNotFound)

	_, err = Create(bundle)
	assert.Error(t, err, "garbage is not a loadable object")
}

func TestModuleName(t *testing.T) {
	assert.Equal(t, "Foo", moduleName("/plugins/Foo.vst3"))
	assert.Equal(t, "Foo", moduleName("/plugins/Foo.vst3/"))
	assert.Equal(t, "gain", moduleName("gain.so"))
}

func TestFactory(t *testing.T) {
	tf := vst3test.NewFactory()
	tf.AddClass(effectClass(), func() (any, error) { return &vst3test.Component{}, nil })
	tf.AddClass(vst3.ClassInfo{ID: controllerID, Category: vst3.CategoryComponentCtrl}, func() (any, error) {
		return &vst3test.Controller{}, nil
	})
	f := NewFactory(tf)

	took, err := f.SetHostContext("loop")
	require.NoError(t, err)
	assert.True(t, took)
	assert.Equal(t, "loop", tf.HostContext)

	assert.Len(t, f.ClassInfos(), 2)

	_, err = f.CreateComponent(effectID)
	assert.NoError(t, err)
	_, err = f.CreateComponent(controllerID)
	assert.ErrorIs(t, err, vst3.ErrNoInterface)
	_, err = f.CreateController(effectID)
	assert.ErrorIs(t, err, vst3.ErrNoInterface)
	_, err = f.CreateController(vst3.MustUID("33333333333333333333333333333333"))
	assert.ErrorIs(t, err, vst3.ErrInvalidArgument)
}

func newPair(log *vst3test.Log) (*vst3test.Factory, *vst3test.Component, *vst3test.Controller) {
	comp := &vst3test.Component{Log: log, ControllerCID: controllerID, State: []byte("component")}
	ctrl := &vst3test.Controller{Log: log}
	f := vst3test.NewFactory()
	f.AddClass(effectClass(), func() (any, error) { return comp, nil })
	f.New[controllerID] = func() (any, error) { return ctrl, nil }
	return f, comp, ctrl
}

func TestPlugProvider(t *testing.T) {
	log := &vst3test.Log{}
	f, comp, ctrl := newPair(log)
	host := NewHostApplication("")
	assert.Equal(t, DefaultHostName, host.Name())

	p := NewPlugProvider(NewFactory(f), effectClass())
	require.NoError(t, p.Initialize(host))

	assert.Same(t, comp, p.Component())
	assert.Same(t, ctrl, p.Controller())
	assert.Equal(t, effectID, p.ComponentUID())
	assert.Equal(t, "Effect", p.ClassInfo().Name)
	assert.Equal(t, host, comp.Host)
	assert.Equal(t, host, ctrl.Host)
	assert.NotNil(t, comp.Peer, "component connected")
	assert.NotNil(t, ctrl.Peer, "controller connected")
	assert.Equal(t, []byte("component"), ctrl.ComponentState)

	p.Release()
	p.Release()
	assert.Equal(t, []string{
		"component.initialize",
		"controller.initialize",
		"component.disconnect",
		"controller.disconnect",
		"controller.terminate",
		"component.terminate",
		"component.release",
	}, log.Entries())
	assert.Nil(t, p.Component())
	assert.Nil(t, p.Controller())
}

func TestPlugProviderSingleComponent(t *testing.T) {
	ctrl := &vst3test.Controller{}
	f := vst3test.NewFactory()
	f.AddClass(effectClass(), func() (any, error) { return vst3test.SingleComponent{Controller: ctrl}, nil })

	p := NewPlugProvider(NewFactory(f), effectClass())
	require.NoError(t, p.Initialize(NewHostApplication("")))
	assert.Equal(t, vst3test.SingleComponent{Controller: ctrl}, p.Controller())
	assert.Equal(t, 1, ctrl.Initialized, "initialized once as component")

	p.Release()
	assert.Equal(t, 1, ctrl.Terminated, "terminated once as component")
}

func TestPlugProviderWithoutController(t *testing.T) {
	t.Run("UnknownClass", func(t *testing.T) {
		f, _, _ := newPair(nil)
		delete(f.New, controllerID)
		p := NewPlugProvider(NewFactory(f), effectClass())
		require.NoError(t, p.Initialize(NewHostApplication("")))
		assert.Nil(t, p.Controller())
		assert.NotNil(t, p.Component())
		p.Release()
	})

	t.Run("ControllerInitFails", func(t *testing.T) {
		f, _, ctrl := newPair(nil)
		ctrl.InitErr = vst3.ErrInternalError
		p := NewPlugProvider(NewFactory(f), effectClass())
		require.NoError(t, p.Initialize(NewHostApplication("")))
		assert.Nil(t, p.Controller())
		p.Release()
		assert.Zero(t, ctrl.Terminated)
	})

	t.Run("NoControllerAtAll", func(t *testing.T) {
		comp := &vst3test.Component{}
		f := vst3test.NewFactory()
		f.AddClass(effectClass(), func() (any, error) { return comp, nil })
		p := NewPlugProvider(NewFactory(f), effectClass())
		require.NoError(t, p.Initialize(NewHostApplication("")))
		assert.Nil(t, p.Controller())
	})
}

func TestPlugProviderComponentFails(t *testing.T) {
	f, comp, _ := newPair(nil)
	comp.InitErr = errors.New("boom")
	p := NewPlugProvider(NewFactory(f), effectClass())
	err := p.Initialize(NewHostApplication(""))
	assert.ErrorContains(t, err, "boom")
	assert.Nil(t, p.Component())
	assert.Nil(t, p.Controller())
	assert.True(t, comp.Released, "failed component is released")
	p.Release()
	assert.Zero(t, comp.Terminated)
}
