package vst3

import (
	"syscall"
	"time"
)

// TimerHandler is called periodically by a RunLoop
type TimerHandler interface {
	OnTimer()
}

// EventHandler is called by a RunLoop when a registered descriptor is readable
type EventHandler interface {
	OnFDIsSet(fd uintptr)
}

// RunLoop is offered by the host so plugins can run code on the UI thread.
type RunLoop interface {
	RegisterEventHandler(handler EventHandler, conn syscall.Conn) error
	UnregisterEventHandler(handler EventHandler) error
	RegisterTimer(handler TimerHandler, interval time.Duration) error
	UnregisterTimer(handler TimerHandler) error
}

// RunLoopFrame is implemented by plug frames that expose the host run loop
// to their view.
type RunLoopFrame interface {
	RunLoop() RunLoop
}
