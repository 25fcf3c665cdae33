package editorhost

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justyntemme/editorhost/pkg/vst3"
)

func TestParseArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    Options
		wantErr error
	}{
		{
			name:    "Empty",
			wantErr: ErrNoArgs,
		},
		{
			name: "PathOnly",
			args: []string{"host.toml"},
			want: Options{ConfigPath: "host.toml"},
		},
		{
			name: "Flags",
			args: []string{"--componentHandler", "--secondWindow", "host.toml"},
			want: Options{Flags: Flags{ComponentHandler: true, SecondWindow: true}, ConfigPath: "host.toml"},
		},
		{
			name: "LastPositionalWins",
			args: []string{"first.toml", "--secondWindow", "second.toml"},
			want: Options{Flags: Flags{SecondWindow: true}, ConfigPath: "second.toml"},
		},
		{
			name: "UnknownFlagsIgnored",
			args: []string{"--foo", "-x", "--bar=1", "host.toml"},
			want: Options{ConfigPath: "host.toml", Ignored: []string{"--foo", "-x", "--bar=1"}},
		},
		{
			name:    "FlagsOnly",
			args:    []string{"--componentHandler"},
			want:    Options{Flags: Flags{ComponentHandler: true}},
			wantErr: ErrNoConfigPath,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseArgs(tt.args)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHelpText(t *testing.T) {
	assert.Contains(t, HelpText, "usage: editorhost [options] configPath")
	assert.Contains(t, HelpText, "--"+FlagComponentHandler)
	assert.Contains(t, HelpText, "--"+FlagSecondWindow)
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		return path
	}
	want := &Config{
		PluginPath:            "/plugins/Foo.vst3",
		UID:                   "0123456789ABCDEF0123456789ABCDEF",
		PluginStatePath:       "/tmp/foo.vstpreset",
		InputBusArrangements:  []string{"Stereo"},
		OutputBusArrangements: []string{"5.1", "Mono"},
	}

	t.Run("TOML", func(t *testing.T) {
		cfg, err := LoadConfig(write("host.toml", `
plugin_path = "/plugins/Foo.vst3"
uid = "0123456789ABCDEF0123456789ABCDEF"
plugin_state_path = "/tmp/foo.vstpreset"
input_bus_arrangements = ["Stereo"]
output_bus_arrangements = ["5.1", "Mono"]
`))
		require.NoError(t, err)
		assert.Equal(t, want, cfg)
	})

	t.Run("UnknownExtensionIsTOML", func(t *testing.T) {
		cfg, err := LoadConfig(write("host.conf", `plugin_path = "builtin:gain"`))
		require.NoError(t, err)
		assert.Equal(t, "builtin:gain", cfg.PluginPath)
		assert.Empty(t, cfg.UID)
	})

	t.Run("JSON", func(t *testing.T) {
		cfg, err := LoadConfig(write("host.json", `{
  "plugin_path": "/plugins/Foo.vst3",
  "uid": "0123456789ABCDEF0123456789ABCDEF",
  "plugin_state_path": "/tmp/foo.vstpreset",
  "input_bus_arrangements": ["Stereo"],
  "output_bus_arrangements": ["5.1", "Mono"]
}`))
		require.NoError(t, err)
		assert.Equal(t, want, cfg)
	})

	t.Run("YAML", func(t *testing.T) {
		cfg, err := LoadConfig(write("host.yaml", `
plugin_path: /plugins/Foo.vst3
uid: "0123456789ABCDEF0123456789ABCDEF"
plugin_state_path: /tmp/foo.vstpreset
input_bus_arrangements: [Stereo]
output_bus_arrangements: ["5.1", Mono]
`))
		require.NoError(t, err)
		assert.Equal(t, want, cfg)
	})

	t.Run("MissingPluginPath", func(t *testing.T) {
		_, err := LoadConfig(write("empty.toml", `uid = "x"`))
		assert.ErrorIs(t, err, ErrNoPluginPath)
	})

	t.Run("Syntax", func(t *testing.T) {
		_, err := LoadConfig(write("broken.toml", `plugin_path = `))
		assert.Error(t, err)
	})

	t.Run("Missing", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(dir, "nope.toml"))
		assert.Error(t, err)
	})
}

func TestClassID(t *testing.T) {
	id, ok, err := (&Config{}).ClassID()
	require.NoError(t, err)
	assert.False(t, ok)
	assert.True(t, id.IsNil())

	id, ok, err = (&Config{UID: "0123456789abcdef0123456789abcdef"}).ClassID()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, vst3.MustUID("0123456789ABCDEF0123456789ABCDEF"), id)

	_, _, err = (&Config{UID: "zz"}).ClassID()
	assert.Error(t, err)
}

func TestArrangements(t *testing.T) {
	arrs, skipped := Arrangements([]string{"Stereo", "7.1", "Dolby Atmos", " mono "})
	assert.Equal(t, []vst3.SpeakerArrangement{vst3.ArrStereo, vst3.Arr71Music, vst3.ArrMono}, arrs)
	assert.Equal(t, []string{"Dolby Atmos"}, skipped)

	arrs, skipped = Arrangements(nil)
	assert.Empty(t, arrs)
	assert.Empty(t, skipped)
}
