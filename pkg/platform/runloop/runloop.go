// Package runloop provides the vst3.RunLoop handed to plugins. Timers and
// file descriptor watchers run on helper goroutines but their callbacks are
// always delivered through a Dispatcher, i.e. on the event loop thread.
package runloop

import (
	"sync"
	"syscall"
	"time"

	"github.com/justyntemme/editorhost/pkg/debug"
	"github.com/justyntemme/editorhost/pkg/vst3"
)

// Dispatcher runs functions on the event loop thread.
type Dispatcher interface {
	Post(fn func())
}

// DispatcherFunc adapts a function to the Dispatcher interface.
type DispatcherFunc func(fn func())

// Post calls f(fn).
func (f DispatcherFunc) Post(fn func()) { f(fn) }

type timer struct {
	handler vst3.TimerHandler
	stop    chan struct{}
}

type watch struct {
	handler vst3.EventHandler
	conn    syscall.Conn
	stop    chan struct{}
	exited  chan struct{}
}

// Loop implements vst3.RunLoop on top of a Dispatcher.
type Loop struct {
	d   Dispatcher
	log *debug.Logger

	mu     sync.Mutex
	timers map[vst3.TimerHandler]*timer
	events map[vst3.EventHandler]*watch
}

var _ vst3.RunLoop = (*Loop)(nil)

// New returns a loop delivering callbacks through d.
func New(d Dispatcher) *Loop {
	return &Loop{
		d:      d,
		log:    debug.Default().Named("runloop"),
		timers: make(map[vst3.TimerHandler]*timer),
		events: make(map[vst3.EventHandler]*watch),
	}
}

// RegisterTimer calls h.OnTimer every interval until UnregisterTimer.
// Registering a handler twice replaces the first registration.
func (l *Loop) RegisterTimer(h vst3.TimerHandler, interval time.Duration) error {
	if h == nil || interval <= 0 {
		return vst3.ErrInvalidArgument
	}
	t := &timer{handler: h, stop: make(chan struct{})}

	l.mu.Lock()
	if old, ok := l.timers[h]; ok {
		close(old.stop)
	}
	l.timers[h] = t
	l.mu.Unlock()

	go l.runTimer(t, interval)
	l.log.Debug("timer registered (%s)", interval)
	return nil
}

func (l *Loop) runTimer(t *timer, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-t.stop:
			return
		case <-ticker.C:
			l.d.Post(func() {
				// The handler may have been removed while the tick was queued.
				if l.timerActive(t) {
					t.handler.OnTimer()
				}
			})
		}
	}
}

func (l *Loop) timerActive(t *timer) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.timers[t.handler] == t
}

// UnregisterTimer stops the timer registered for h.
func (l *Loop) UnregisterTimer(h vst3.TimerHandler) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	t, ok := l.timers[h]
	if !ok {
		return vst3.ErrResultFalse
	}
	close(t.stop)
	delete(l.timers, h)
	return nil
}

// RegisterEventHandler calls h.OnFDIsSet whenever conn becomes readable. The
// watcher does not re-arm until the handler has returned, so the handler is
// expected to drain the descriptor.
func (l *Loop) RegisterEventHandler(h vst3.EventHandler, conn syscall.Conn) error {
	if h == nil || conn == nil {
		return vst3.ErrInvalidArgument
	}
	raw, err := conn.SyscallConn()
	if err != nil {
		return err
	}
	w := &watch{handler: h, conn: conn, stop: make(chan struct{}), exited: make(chan struct{})}

	l.mu.Lock()
	if _, ok := l.events[h]; ok {
		l.mu.Unlock()
		return vst3.ErrInvalidArgument
	}
	l.events[h] = w
	l.mu.Unlock()

	go l.runWatch(w, raw)
	return nil
}

func (l *Loop) runWatch(w *watch, raw syscall.RawConn) {
	defer close(w.exited)
	for {
		var fd uintptr
		armed := false
		err := raw.Read(func(f uintptr) bool {
			fd = f
			if !armed {
				armed = true
				return false
			}
			return true
		})
		select {
		case <-w.stop:
			return
		default:
		}
		if err != nil {
			l.log.Warn("event handler watch ended: %v", err)
			return
		}

		// Post may block until the loop takes the message, and the loop may be
		// inside stopWatch waiting for this goroutine.
		done := make(chan struct{})
		go l.d.Post(func() {
			defer close(done)
			if l.watchActive(w) {
				w.handler.OnFDIsSet(fd)
			}
		})
		select {
		case <-done:
		case <-w.stop:
			return
		}
	}
}

func (l *Loop) watchActive(w *watch) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.events[w.handler] == w
}

// UnregisterEventHandler stops watching the descriptor registered for h.
func (l *Loop) UnregisterEventHandler(h vst3.EventHandler) error {
	l.mu.Lock()
	w, ok := l.events[h]
	if ok {
		delete(l.events, h)
	}
	l.mu.Unlock()
	if !ok {
		return vst3.ErrResultFalse
	}
	stopWatch(w)
	return nil
}

// Close unregisters every timer and event handler.
func (l *Loop) Close() {
	l.mu.Lock()
	timers := l.timers
	events := l.events
	l.timers = make(map[vst3.TimerHandler]*timer)
	l.events = make(map[vst3.EventHandler]*watch)
	l.mu.Unlock()

	for _, t := range timers {
		close(t.stop)
	}
	for _, w := range events {
		stopWatch(w)
	}
	if n := len(timers) + len(events); n > 0 {
		l.log.Debug("closed with %d registration(s) left", n)
	}
}

type readDeadliner interface {
	SetReadDeadline(t time.Time) error
}

// stopWatch ends a watcher. When the connection supports deadlines the
// watcher is woken from RawConn.Read and waited for, then the deadline is
// cleared again; otherwise the watcher exits the next time conn is readable.
func stopWatch(w *watch) {
	close(w.stop)
	d, ok := w.conn.(readDeadliner)
	if !ok {
		return
	}
	d.SetReadDeadline(time.Now())
	<-w.exited
	d.SetReadDeadline(time.Time{})
}
