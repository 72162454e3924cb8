// Package bus connects the editor and tray surfaces with a duplex pair of
// unbounded FIFO queues. Sends never block, receives never wait: each
// surface drains its end from its own event loop tick. Order is guaranteed
// per direction only; the two directions are independent.
package bus

import (
	"errors"
	"sync"
)

// ErrDisconnected is returned once a drained end's peer has closed the
// pair. Receivers terminate their loop on it instead of retrying.
var ErrDisconnected = errors.New("bus: disconnected")

var errEmpty = errors.New("bus: empty")

// queue is an unbounded FIFO shared by one sender and one receiver.
// closed points at the pair-wide disconnect flag; queued messages remain
// readable after disconnect until drained.
type queue[T any] struct {
	mu     sync.Mutex
	items  []T
	closed *bool
}

func (q *queue[T]) send(msg T) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if *q.closed {
		return ErrDisconnected
	}
	q.items = append(q.items, msg)
	return nil
}

func (q *queue[T]) tryReceive() (T, error) {
	var zero T
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		if *q.closed {
			return zero, ErrDisconnected
		}
		return zero, errEmpty
	}
	msg := q.items[0]
	q.items = q.items[1:]
	return msg, nil
}

func (q *queue[T]) markClosed() {
	q.mu.Lock()
	*q.closed = true
	q.mu.Unlock()
}

// EditorEnd is the editor surface's handle on the bus.
type EditorEnd struct {
	out *queue[EditorMsg]
	in  *queue[TrayMsg]
}

// TrayEnd is the tray surface's handle on the bus.
type TrayEnd struct {
	out *queue[TrayMsg]
	in  *queue[EditorMsg]
}

// New creates one connected pair of bus ends. Exactly one pair exists per
// process run; each end is handed to its surface at startup.
func New() (*EditorEnd, *TrayEnd) {
	var closed bool
	editorToTray := &queue[EditorMsg]{closed: &closed}
	trayToEditor := &queue[TrayMsg]{closed: &closed}

	editor := &EditorEnd{out: editorToTray, in: trayToEditor}
	tray := &TrayEnd{out: trayToEditor, in: editorToTray}
	return editor, tray
}

// Send enqueues a message for the tray. It never blocks. Sending on a
// disconnected bus returns ErrDisconnected.
func (e *EditorEnd) Send(msg EditorMsg) error {
	return e.out.send(msg)
}

// TryReceive returns the next tray message without waiting. ok is false
// when nothing is queued. After the pair disconnects and the queue drains,
// err is ErrDisconnected.
func (e *EditorEnd) TryReceive() (msg TrayMsg, ok bool, err error) {
	m, err := e.in.tryReceive()
	if err == errEmpty {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return m, true, nil
}

// Close disconnects the pair. Idempotent.
func (e *EditorEnd) Close() {
	e.out.markClosed()
}

// Send enqueues a message for the editor. It never blocks. Sending on a
// disconnected bus returns ErrDisconnected.
func (t *TrayEnd) Send(msg TrayMsg) error {
	return t.out.send(msg)
}

// TryReceive returns the next editor message without waiting. ok is false
// when nothing is queued. After the pair disconnects and the queue drains,
// err is ErrDisconnected.
func (t *TrayEnd) TryReceive() (msg EditorMsg, ok bool, err error) {
	m, err := t.in.tryReceive()
	if err == errEmpty {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return m, true, nil
}

// Close disconnects the pair. Idempotent.
func (t *TrayEnd) Close() {
	t.out.markClosed()
}
