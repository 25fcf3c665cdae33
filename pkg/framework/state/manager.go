// Package state serializes the parameter values of a built-in plugin. The
// component and the controller of a plugin share one format, so the
// component state handed to the controller restores its parameters too.
package state

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/justyntemme/editorhost/pkg/framework/param"
	"github.com/justyntemme/editorhost/pkg/vst3"
)

const magic = "EHSTATE1"

// Version is the current state layout.
const Version uint32 = 1

var (
	// ErrFormat is returned for data that is not a state blob.
	ErrFormat = errors.New("state: invalid format")
	// ErrVersion is returned for blobs written by a newer layout.
	ErrVersion = errors.New("state: unsupported version")
)

// CustomStateFunc saves data beyond the parameter values.
type CustomStateFunc func(w io.Writer) error

// CustomLoadFunc restores what the matching CustomStateFunc wrote.
type CustomLoadFunc func(r io.Reader) error

// Manager handles plugin state saving and loading
type Manager struct {
	version    uint32
	registry   *param.Registry
	customSave CustomStateFunc
	customLoad CustomLoadFunc
}

// NewManager creates a new state manager
func NewManager(registry *param.Registry) *Manager {
	return &Manager{
		version:  Version,
		registry: registry,
	}
}

// SetCustomState sets the functions saving and restoring custom state.
func (m *Manager) SetCustomState(save CustomStateFunc, load CustomLoadFunc) {
	m.customSave = save
	m.customLoad = load
}

// Save writes the plugin state to a writer
func (m *Manager) Save(w io.Writer) error {
	if _, err := io.WriteString(w, magic); err != nil {
		return err
	}
	params := m.registry.All()
	header := struct {
		Version uint32
		Count   int32
	}{m.version, int32(len(params))}
	if err := binary.Write(w, binary.LittleEndian, header); err != nil {
		return err
	}

	for _, p := range params {
		entry := struct {
			ID    vst3.ParamID
			Value float64
		}{p.ID, p.GetValue()}
		if err := binary.Write(w, binary.LittleEndian, entry); err != nil {
			return err
		}
	}

	if m.customSave == nil {
		return binary.Write(w, binary.LittleEndian, uint32(0))
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(1)); err != nil {
		return err
	}
	return m.customSave(w)
}

// Load reads the plugin state from a reader. Values of unknown parameters
// are skipped. Nothing is applied unless the whole parameter block reads.
func (m *Manager) Load(r io.Reader) error {
	head := make([]byte, len(magic))
	if _, err := io.ReadFull(r, head); err != nil {
		return fmt.Errorf("%w: %v", ErrFormat, err)
	}
	if string(head) != magic {
		return ErrFormat
	}

	var header struct {
		Version uint32
		Count   int32
	}
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return fmt.Errorf("%w: %v", ErrFormat, err)
	}
	if header.Version > m.version {
		return fmt.Errorf("%w: %d is newer than %d", ErrVersion, header.Version, m.version)
	}
	if header.Count < 0 {
		return ErrFormat
	}

	values := make(map[vst3.ParamID]float64, header.Count)
	for range header.Count {
		var entry struct {
			ID    vst3.ParamID
			Value float64
		}
		if err := binary.Read(r, binary.LittleEndian, &entry); err != nil {
			return fmt.Errorf("%w: %v", ErrFormat, err)
		}
		values[entry.ID] = entry.Value
	}

	var hasCustom uint32
	if err := binary.Read(r, binary.LittleEndian, &hasCustom); err != nil {
		return fmt.Errorf("%w: %v", ErrFormat, err)
	}

	for id, v := range values {
		// Unknown IDs come from other versions of the plugin.
		m.registry.SetValue(id, v)
	}

	if hasCustom != 0 && m.customLoad != nil {
		return m.customLoad(r)
	}
	return nil
}
