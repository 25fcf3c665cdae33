package plugin

import (
	"errors"

	"github.com/google/uuid"

	"github.com/justyntemme/editorhost/pkg/vst3"
)

// namespace seeds the class IDs derived from plugin IDs.
var namespace = uuid.MustParse("6f1c2d8e-5b7a-4f3e-9c1d-2a4b6c8d0e1f")

// Info contains plugin metadata
type Info struct {
	ID            string // Unique plugin identifier (e.g., "com.example.myplugin")
	Name          string // Display name
	Version       string // Semantic version (e.g., "1.0.0")
	Vendor        string // Company/developer name
	SubCategories string // e.g. "Fx|Dynamics"
}

// UID derives the component class ID from the string ID. The same ID always
// yields the same UID.
func (i Info) UID() vst3.UID {
	return vst3.UID(uuid.NewSHA1(namespace, []byte(i.ID)))
}

// ControllerUID derives the class ID of the edit controller.
func (i Info) ControllerUID() vst3.UID {
	return vst3.UID(uuid.NewSHA1(namespace, []byte(i.ID+".controller")))
}

// ValidateUID checks that a class ID can be derived.
func (i Info) ValidateUID() error {
	if i.ID == "" {
		return errors.New("plugin ID is empty")
	}
	return nil
}

// ClassInfo describes the component class.
func (i Info) ClassInfo() vst3.ClassInfo {
	return vst3.ClassInfo{
		ID:            i.UID(),
		Category:      vst3.CategoryAudioEffect,
		Name:          i.Name,
		Vendor:        i.Vendor,
		Version:       i.Version,
		SubCategories: i.SubCategories,
		Cardinality:   1,
	}
}

// ControllerClassInfo describes the edit controller class.
func (i Info) ControllerClassInfo() vst3.ClassInfo {
	return vst3.ClassInfo{
		ID:          i.ControllerUID(),
		Category:    vst3.CategoryComponentCtrl,
		Name:        i.Name + " Controller",
		Vendor:      i.Vendor,
		Version:     i.Version,
		Cardinality: 1,
	}
}
