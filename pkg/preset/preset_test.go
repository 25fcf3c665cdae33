package preset

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/justyntemme/editorhost/pkg/vst3"
)

var testClass = vst3.MustUID("84E8DE5F92554F5396FAE4133C935A18")

// blobState stores whatever bytes it is given. It satisfies both the
// component and the controller interfaces.
type blobState struct {
	state          []byte
	componentState []byte
	failGet        bool
}

func (b *blobState) Initialize(vst3.HostApplication) error { return nil }
func (b *blobState) Terminate() error                      { return nil }
func (b *blobState) ControllerClassID() vst3.UID           { return vst3.NilUID }
func (b *blobState) SetActive(bool) error                  { return nil }

func (b *blobState) SetState(r io.Reader) error {
	data, err := io.ReadAll(r)
	b.state = data
	return err
}

func (b *blobState) GetState(w io.Writer) error {
	if b.failGet {
		return errors.New("no state")
	}
	_, err := w.Write(b.state)
	return err
}

func (b *blobState) SetComponentState(r io.Reader) error {
	data, err := io.ReadAll(r)
	b.componentState = data
	return err
}

func (b *blobState) ParameterCount() int32                           { return 0 }
func (b *blobState) ParameterInfo(int32) (vst3.ParameterInfo, error) { return vst3.ParameterInfo{}, vst3.ErrInvalidArgument }
func (b *blobState) ParamNormalized(vst3.ParamID) float64            { return 0 }
func (b *blobState) SetParamNormalized(vst3.ParamID, float64) error  { return nil }
func (b *blobState) SetComponentHandler(vst3.ComponentHandler) error { return nil }
func (b *blobState) CreateView(string) vst3.PlugView                 { return nil }

func TestSaveLoadRoundTrip(t *testing.T) {
	comp := &blobState{state: []byte("component-bytes")}
	ctrl := &blobState{state: []byte("controller-bytes")}

	var buf bytes.Buffer
	require.NoError(t, Save(&buf, testClass, comp, ctrl))

	comp2 := &blobState{}
	ctrl2 := &blobState{}
	require.NoError(t, Load(bytes.NewReader(buf.Bytes()), testClass, comp2, ctrl2))

	assert.Equal(t, comp.state, comp2.state)
	assert.Equal(t, ctrl.state, ctrl2.state)
	assert.Equal(t, comp.state, ctrl2.componentState, "controller receives the component state too")
}

func TestSaveLayout(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Save(&buf, testClass, &blobState{state: []byte{1, 2, 3}}, nil))

	data := buf.Bytes()
	assert.Equal(t, "VST3", string(data[0:4]))
	assert.Equal(t, testClass.String(), string(data[8:40]))

	f, err := Parse(bytes.NewReader(data))
	require.NoError(t, err)
	require.Len(t, f.Entries, 1)
	assert.Equal(t, ChunkComponentState, f.Entries[0].ID)
	assert.Equal(t, int64(headerSize), f.Entries[0].Offset)

	chunk, ok := f.Chunk(ChunkComponentState)
	require.True(t, ok)
	assert.Equal(t, []byte{1, 2, 3}, chunk)

	_, ok = f.Chunk(ChunkControllerState)
	assert.False(t, ok)
}

func TestLoadRejects(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Save(&buf, testClass, &blobState{state: []byte("x")}, &blobState{state: []byte("y")}))
	valid := buf.Bytes()

	t.Run("ClassMismatch", func(t *testing.T) {
		comp := &blobState{}
		err := Load(bytes.NewReader(valid), vst3.MustUID("00000000000000000000000000000001"), comp, nil)
		assert.ErrorIs(t, err, ErrClassMismatch)
		assert.Nil(t, comp.state, "no state applied on mismatch")
	})

	t.Run("Truncated", func(t *testing.T) {
		comp := &blobState{}
		err := Load(bytes.NewReader(valid[:len(valid)-5]), testClass, comp, nil)
		assert.ErrorIs(t, err, ErrInvalidFormat)
		assert.Nil(t, comp.state)
	})

	// Rewrites one int64 field of the first chunk list entry.
	withEntry := func(field int, value int64) []byte {
		data := bytes.Clone(valid)
		list := int64(binary.LittleEndian.Uint64(data[40:48]))
		binary.LittleEndian.PutUint64(data[list+8+int64(field):], uint64(value))
		return data
	}
	const entryOffset, entrySize = 4, 12
	for name, data := range map[string][]byte{
		"ChunkSizeOverflows":   withEntry(entrySize, math.MaxInt64),
		"ChunkPastList":        withEntry(entrySize, int64(len(valid))),
		"NegativeChunkSize":    withEntry(entrySize, -1),
		"ChunkOffsetPastList":  withEntry(entryOffset, int64(len(valid))),
		"ChunkOffsetOverflows": withEntry(entryOffset, math.MaxInt64),
	} {
		t.Run(name, func(t *testing.T) {
			comp := &blobState{}
			assert.NotPanics(t, func() {
				assert.ErrorIs(t, Load(bytes.NewReader(data), testClass, comp, nil), ErrInvalidFormat)
			})
			assert.Nil(t, comp.state)
		})
	}

	t.Run("Garbage", func(t *testing.T) {
		err := Load(bytes.NewReader([]byte("definitely not a preset file at all, no no no no")), testClass, &blobState{}, nil)
		assert.ErrorIs(t, err, ErrInvalidFormat)
	})

	t.Run("Empty", func(t *testing.T) {
		err := Load(bytes.NewReader(nil), testClass, &blobState{}, nil)
		assert.ErrorIs(t, err, ErrInvalidFormat)
	})
}

func TestSaveStopsOnStateError(t *testing.T) {
	var buf bytes.Buffer
	err := Save(&buf, testClass, &blobState{failGet: true}, nil)
	assert.Error(t, err)
	assert.Zero(t, buf.Len(), "nothing written when a state cannot be collected")
}

func TestFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.vstpreset")
	require.NoError(t, os.WriteFile(path, []byte("old contents"), 0o644))

	require.NoError(t, SaveFile(path, testClass, &blobState{state: []byte("c")}, &blobState{state: []byte("k")}))

	comp, ctrl := &blobState{}, &blobState{}
	require.NoError(t, LoadFile(path, testClass, comp, ctrl))
	assert.Equal(t, []byte("c"), comp.state)
	assert.Equal(t, []byte("k"), ctrl.state)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file is cleaned up")

	assert.Error(t, LoadFile(filepath.Join(t.TempDir(), "missing"), testClass, comp, ctrl))
}

func TestRoundTripProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		compState := rapid.SliceOf(rapid.Byte()).Draw(t, "component")
		ctrlState := rapid.SliceOf(rapid.Byte()).Draw(t, "controller")

		var buf bytes.Buffer
		if err := Save(&buf, testClass, &blobState{state: compState}, &blobState{state: ctrlState}); err != nil {
			t.Fatalf("save: %v", err)
		}
		comp, ctrl := &blobState{}, &blobState{}
		if err := Load(&buf, testClass, comp, ctrl); err != nil {
			t.Fatalf("load: %v", err)
		}
		if !bytes.Equal(comp.state, compState) || !bytes.Equal(ctrl.state, ctrlState) {
			t.Fatalf("state changed across save/load")
		}
	})
}
