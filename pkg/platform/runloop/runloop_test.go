package runloop

import (
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justyntemme/editorhost/pkg/vst3"
)

type countingTimer struct{ n atomic.Int32 }

func (c *countingTimer) OnTimer() { c.n.Add(1) }

type pipeReader struct {
	r    *os.File
	n    atomic.Int32
	last atomic.Uintptr
}

func (p *pipeReader) OnFDIsSet(fd uintptr) {
	buf := make([]byte, 64)
	p.r.Read(buf)
	p.last.Store(fd)
	p.n.Add(1)
}

func TestQueue(t *testing.T) {
	q := NewQueue()
	var order []int
	q.Post(func() { order = append(order, 1) })
	q.Post(func() { order = append(order, 2) })

	assert.Equal(t, 2, q.Drain())
	assert.Equal(t, []int{1, 2}, order)
	assert.Equal(t, 0, q.Drain())

	done := make(chan struct{})
	go func() {
		q.Run()
		close(done)
	}()
	q.Post(func() { q.Stop() })
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after Stop")
	}
	assert.True(t, q.Stopped())

	q.Post(func() { order = append(order, 3) })
	assert.Equal(t, 0, q.Drain(), "posts after stop are dropped")
}

func TestTimer(t *testing.T) {
	q := NewQueue()
	loop := New(q)
	defer loop.Close()

	h := &countingTimer{}
	assert.ErrorIs(t, loop.RegisterTimer(h, 0), vst3.ErrInvalidArgument)
	assert.ErrorIs(t, loop.RegisterTimer(nil, time.Millisecond), vst3.ErrInvalidArgument)

	require.NoError(t, loop.RegisterTimer(h, 2*time.Millisecond))
	assert.Zero(t, h.n.Load(), "callbacks only run on the dispatcher")

	require.Eventually(t, func() bool {
		q.Drain()
		return h.n.Load() >= 3
	}, time.Second, time.Millisecond)

	require.NoError(t, loop.UnregisterTimer(h))
	q.Drain()
	seen := h.n.Load()
	time.Sleep(10 * time.Millisecond)
	q.Drain()
	assert.Equal(t, seen, h.n.Load(), "no ticks after unregister")

	assert.ErrorIs(t, loop.UnregisterTimer(h), vst3.ErrResultFalse)
}

func TestEventHandler(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()
	defer w.Close()

	q := NewQueue()
	loop := New(q)
	defer loop.Close()

	h := &pipeReader{r: r}
	require.NoError(t, loop.RegisterEventHandler(h, r))
	assert.ErrorIs(t, loop.RegisterEventHandler(h, r), vst3.ErrInvalidArgument)

	_, err = w.Write([]byte("x"))
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		q.Drain()
		return h.n.Load() == 1
	}, time.Second, time.Millisecond)
	assert.NotZero(t, h.last.Load(), "handler receives the descriptor")

	require.NoError(t, loop.UnregisterEventHandler(h))
	_, err = w.Write([]byte("y"))
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)
	q.Drain()
	assert.Equal(t, int32(1), h.n.Load(), "no callbacks after unregister")

	// The descriptor is usable again once the watcher is gone.
	buf := make([]byte, 1)
	n, err := r.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "y", string(buf[:n]))

	assert.ErrorIs(t, loop.UnregisterEventHandler(h), vst3.ErrResultFalse)
}

func TestUnregisterWhileDispatcherBlocked(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()
	defer w.Close()

	// Like a bubbletea program: Post blocks until the loop takes the message.
	msgs := make(chan func())
	posting := make(chan struct{}, 1)
	loop := New(DispatcherFunc(func(fn func()) {
		posting <- struct{}{}
		msgs <- fn
	}))

	h := &pipeReader{r: r}
	require.NoError(t, loop.RegisterEventHandler(h, r))
	_, err = w.Write([]byte("x"))
	require.NoError(t, err)

	select {
	case <-posting:
	case <-time.After(time.Second):
		t.Fatal("watcher never posted")
	}

	unregistered := make(chan error)
	go func() { unregistered <- loop.UnregisterEventHandler(h) }()
	select {
	case err := <-unregistered:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("UnregisterEventHandler did not return while a callback was pending")
	}

	// The pending callback is delivered late and ignored.
	(<-msgs)()
	assert.Zero(t, h.n.Load())
	loop.Close()
}

func TestDispatcherFunc(t *testing.T) {
	var ran bool
	d := DispatcherFunc(func(fn func()) { fn() })
	d.Post(func() { ran = true })
	assert.True(t, ran)
}
