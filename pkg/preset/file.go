package preset

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/justyntemme/editorhost/pkg/vst3"
)

// LoadFile restores state from the preset at path.
func LoadFile(path string, classID vst3.UID, component vst3.Component, controller vst3.EditController) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return Load(f, classID, component, controller)
}

// SaveFile writes the preset to path. The file is replaced as a whole: the
// blob goes to a temporary file in the same directory which is then renamed
// over path, so readers never see a partial preset.
func SaveFile(path string, classID vst3.UID, component vst3.Component, controller vst3.EditController) error {
	var buf bytes.Buffer
	if err := Save(&buf, classID, component, controller); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("preset: write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
