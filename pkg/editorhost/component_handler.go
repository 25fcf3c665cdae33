package editorhost

import (
	"github.com/justyntemme/editorhost/pkg/debug"
	"github.com/justyntemme/editorhost/pkg/vst3"
)

// ComponentHandler is installed on the edit controller with
// --componentHandler. It only logs what the controller reports.
type ComponentHandler struct {
	log *debug.Logger
}

var _ vst3.ComponentHandler = (*ComponentHandler)(nil)

// NewComponentHandler returns a logging component handler.
func NewComponentHandler() *ComponentHandler {
	return &ComponentHandler{log: debug.Default().Named("componentHandler")}
}

func (h *ComponentHandler) BeginEdit(id vst3.ParamID) error {
	h.log.Debug("beginEdit called (%d)", id)
	return vst3.ErrNotImplemented
}

func (h *ComponentHandler) PerformEdit(id vst3.ParamID, valueNormalized float64) error {
	h.log.Debug("performEdit called (%d, %f)", id, valueNormalized)
	return vst3.ErrNotImplemented
}

func (h *ComponentHandler) EndEdit(id vst3.ParamID) error {
	h.log.Debug("endEdit called (%d)", id)
	return vst3.ErrNotImplemented
}

func (h *ComponentHandler) RestartComponent(flags int32) error {
	h.log.Debug("restartComponent called (%d)", flags)
	return vst3.ErrNotImplemented
}
