// Package preset reads and writes .vstpreset files: a class-tagged container
// holding the component state and the controller state of one plugin.
package preset

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/justyntemme/editorhost/pkg/vst3"
)

// ChunkID is a four-character chunk tag
type ChunkID [4]byte

// Chunk tags
var (
	ChunkHeader          = ChunkID{'V', 'S', 'T', '3'}
	ChunkComponentState  = ChunkID{'C', 'o', 'm', 'p'}
	ChunkControllerState = ChunkID{'C', 'o', 'n', 't'}
	ChunkProgramData     = ChunkID{'P', 'r', 'o', 'g'}
	ChunkMetaInfo        = ChunkID{'I', 'n', 'f', 'o'}
	ChunkList            = ChunkID{'L', 'i', 's', 't'}
)

const (
	formatVersion = 1
	classIDSize   = 32
	// header: tag, version, class id, chunk list offset
	headerSize = 4 + 4 + classIDSize + 8
)

var (
	// ErrInvalidFormat is returned for data that is not a preset file.
	ErrInvalidFormat = errors.New("preset: invalid format")
	// ErrClassMismatch is returned when the file belongs to another class.
	ErrClassMismatch = errors.New("preset: class ID mismatch")
)

// Entry locates one chunk inside the file
type Entry struct {
	ID     ChunkID
	Offset int64
	Size   int64
}

// File is a parsed preset file kept in memory
type File struct {
	ClassID vst3.UID
	Entries []Entry
	data    []byte
}

// Parse reads a complete preset file. The whole stream is consumed so a
// truncated file is rejected before any state reaches the plugin.
func Parse(r io.Reader) (*File, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("preset: read: %w", err)
	}
	if len(data) < headerSize {
		return nil, ErrInvalidFormat
	}
	if chunkIDAt(data) != ChunkHeader {
		return nil, ErrInvalidFormat
	}
	version := int32(binary.LittleEndian.Uint32(data[4:8]))
	if version < formatVersion {
		return nil, fmt.Errorf("%w: version %d", ErrInvalidFormat, version)
	}
	classID, err := vst3.UIDFromString(string(data[8 : 8+classIDSize]))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	listOffset := int64(binary.LittleEndian.Uint64(data[8+classIDSize : headerSize]))

	f := &File{ClassID: classID, data: data}
	if err := f.readChunkList(listOffset); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *File) readChunkList(offset int64) error {
	if offset < headerSize || offset+8 > int64(len(f.data)) {
		return fmt.Errorf("%w: chunk list offset %d", ErrInvalidFormat, offset)
	}
	list := f.data[offset:]
	if chunkIDAt(list) != ChunkList {
		return fmt.Errorf("%w: missing chunk list", ErrInvalidFormat)
	}
	count := int32(binary.LittleEndian.Uint32(list[4:8]))
	const entrySize = 4 + 8 + 8
	if count < 0 || int64(8+int(count)*entrySize) > int64(len(list)) {
		return fmt.Errorf("%w: chunk count %d", ErrInvalidFormat, count)
	}
	for i := 0; i < int(count); i++ {
		e := list[8+i*entrySize:]
		entry := Entry{
			ID:     chunkIDAt(e),
			Offset: int64(binary.LittleEndian.Uint64(e[4:12])),
			Size:   int64(binary.LittleEndian.Uint64(e[12:20])),
		}
		if entry.Offset < headerSize || entry.Offset > offset || entry.Size < 0 || entry.Size > offset-entry.Offset {
			return fmt.Errorf("%w: chunk %s out of range", ErrInvalidFormat, entry.ID)
		}
		f.Entries = append(f.Entries, entry)
	}
	return nil
}

// Chunk returns the contents of the first chunk with the given tag.
func (f *File) Chunk(id ChunkID) ([]byte, bool) {
	for _, e := range f.Entries {
		if e.ID == id {
			return f.data[e.Offset : e.Offset+e.Size], true
		}
	}
	return nil, false
}

func chunkIDAt(b []byte) ChunkID {
	var id ChunkID
	copy(id[:], b)
	return id
}

// String returns the tag as text
func (c ChunkID) String() string {
	return string(c[:])
}

// Load restores component and controller state from r. The file must carry
// classID. The component state is also handed to the controller, as a host
// does after instantiation. controller may be nil.
func Load(r io.Reader, classID vst3.UID, component vst3.Component, controller vst3.EditController) error {
	f, err := Parse(r)
	if err != nil {
		return err
	}
	if f.ClassID != classID {
		return fmt.Errorf("%w: file has %s, want %s", ErrClassMismatch, f.ClassID, classID)
	}

	if comp, ok := f.Chunk(ChunkComponentState); ok && component != nil {
		if err := component.SetState(bytes.NewReader(comp)); err != nil {
			return fmt.Errorf("preset: component state: %w", err)
		}
		if controller != nil {
			if err := controller.SetComponentState(bytes.NewReader(comp)); err != nil {
				return fmt.Errorf("preset: controller component state: %w", err)
			}
		}
	}
	if cont, ok := f.Chunk(ChunkControllerState); ok && controller != nil {
		if err := controller.SetState(bytes.NewReader(cont)); err != nil {
			return fmt.Errorf("preset: controller state: %w", err)
		}
	}
	return nil
}

// Save writes a preset for classID holding the states of component and
// controller. Both states are collected before anything is written to w.
func Save(w io.Writer, classID vst3.UID, component vst3.Component, controller vst3.EditController) error {
	type chunk struct {
		id   ChunkID
		data []byte
	}
	var chunks []chunk

	if component != nil {
		var buf bytes.Buffer
		if err := component.GetState(&buf); err != nil {
			return fmt.Errorf("preset: component state: %w", err)
		}
		chunks = append(chunks, chunk{ChunkComponentState, buf.Bytes()})
	}
	if controller != nil {
		var buf bytes.Buffer
		if err := controller.GetState(&buf); err != nil {
			return fmt.Errorf("preset: controller state: %w", err)
		}
		chunks = append(chunks, chunk{ChunkControllerState, buf.Bytes()})
	}

	var out bytes.Buffer
	offset := int64(headerSize)
	entries := make([]Entry, 0, len(chunks))
	for _, c := range chunks {
		entries = append(entries, Entry{ID: c.id, Offset: offset, Size: int64(len(c.data))})
		offset += int64(len(c.data))
	}

	out.Write(ChunkHeader[:])
	binary.Write(&out, binary.LittleEndian, int32(formatVersion))
	out.WriteString(classID.String())
	binary.Write(&out, binary.LittleEndian, offset)
	for _, c := range chunks {
		out.Write(c.data)
	}
	out.Write(ChunkList[:])
	binary.Write(&out, binary.LittleEndian, int32(len(entries)))
	for _, e := range entries {
		out.Write(e.ID[:])
		binary.Write(&out, binary.LittleEndian, e.Offset)
		binary.Write(&out, binary.LittleEndian, e.Size)
	}

	if _, err := w.Write(out.Bytes()); err != nil {
		return fmt.Errorf("preset: write: %w", err)
	}
	return nil
}
