package editorhost

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/viper"

	"github.com/justyntemme/editorhost/pkg/vst3"
)

// DefaultConfigType is used for configuration files without one of the
// extensions in configTypes.
const DefaultConfigType = "toml"

var configTypes = []string{"toml", "json", "yaml", "yml"}

// ErrNoPluginPath is returned by Validate when plugin_path is missing.
var ErrNoPluginPath = errors.New("plugin_path is required")

// Config describes the plugin to host.
type Config struct {
	// PluginPath is a module path: a ".vst3" bundle, a shared object or
	// "builtin:<name>".
	PluginPath string `json:"plugin_path" mapstructure:"plugin_path"`
	// UID selects the audio effect class. Empty selects the first one.
	UID string `json:"uid" mapstructure:"uid"`
	// PluginStatePath is read before the editor opens and written on exit.
	PluginStatePath string `json:"plugin_state_path" mapstructure:"plugin_state_path"`
	// InputBusArrangements and OutputBusArrangements hold speaker
	// arrangement names such as "Stereo" or "5.1".
	InputBusArrangements  []string `json:"input_bus_arrangements" mapstructure:"input_bus_arrangements"`
	OutputBusArrangements []string `json:"output_bus_arrangements" mapstructure:"output_bus_arrangements"`
}

// LoadConfig reads the configuration file at path. The format follows the
// file extension; unknown extensions are read as TOML.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if ext := strings.TrimPrefix(filepath.Ext(path), "."); !slices.Contains(configTypes, ext) {
		v.SetConfigType(DefaultConfigType)
	}
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the fields that must be present.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.PluginPath) == "" {
		return ErrNoPluginPath
	}
	return nil
}

// ClassID parses UID. It reports false when no class is configured.
func (c *Config) ClassID() (vst3.UID, bool, error) {
	if c.UID == "" {
		return vst3.NilUID, false, nil
	}
	id, err := vst3.UIDFromString(c.UID)
	if err != nil {
		return vst3.NilUID, false, err
	}
	return id, true, nil
}

// Arrangements parses speaker arrangement names, skipping unknown ones.
func Arrangements(names []string) (arrs []vst3.SpeakerArrangement, skipped []string) {
	for _, name := range names {
		arr, ok := vst3.SpeakerArrangementFromString(name)
		if !ok {
			skipped = append(skipped, name)
			continue
		}
		arrs = append(arrs, arr)
	}
	return arrs, skipped
}
