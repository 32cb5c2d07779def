//go:build !libretro

package standalone

import (
	"io"
	"sync"
)

// AudioRingBuffer is a fixed-size byte FIFO between the emulation
// goroutine (writer) and oto's player (reader). Writes never block: when
// full, the oldest bytes are dropped. Reads block until data arrives or
// the buffer is closed.
type AudioRingBuffer struct {
	mu       sync.Mutex
	cond     *sync.Cond
	buf      []byte
	readPos  int
	writePos int
	count    int
	closed   bool
}

// NewAudioRingBuffer creates a ring buffer holding up to capacity bytes.
func NewAudioRingBuffer(capacity int) *AudioRingBuffer {
	rb := &AudioRingBuffer{buf: make([]byte, capacity)}
	rb.cond = sync.NewCond(&rb.mu)
	return rb
}

// Write appends p, overwriting the oldest data on overflow. Writes after
// Close are ignored.
func (rb *AudioRingBuffer) Write(p []byte) {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	if rb.closed || len(p) == 0 {
		return
	}

	size := len(rb.buf)
	if len(p) >= size {
		// Only the tail survives
		copy(rb.buf, p[len(p)-size:])
		rb.readPos = 0
		rb.writePos = 0
		rb.count = size
		rb.cond.Broadcast()
		return
	}

	if overflow := rb.count + len(p) - size; overflow > 0 {
		rb.readPos = (rb.readPos + overflow) % size
		rb.count -= overflow
	}

	n := copy(rb.buf[rb.writePos:], p)
	if n < len(p) {
		copy(rb.buf, p[n:])
	}
	rb.writePos = (rb.writePos + len(p)) % size
	rb.count += len(p)
	rb.cond.Broadcast()
}

// Read implements io.Reader. It blocks while the buffer is empty and
// returns io.EOF once closed and drained.
func (rb *AudioRingBuffer) Read(p []byte) (int, error) {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	for rb.count == 0 && !rb.closed {
		rb.cond.Wait()
	}
	if rb.count == 0 {
		return 0, io.EOF
	}

	n := min(len(p), rb.count)
	first := copy(p[:n], rb.buf[rb.readPos:])
	if first < n {
		copy(p[first:n], rb.buf)
	}
	rb.readPos = (rb.readPos + n) % len(rb.buf)
	rb.count -= n
	return n, nil
}

// Buffered returns the number of unread bytes.
func (rb *AudioRingBuffer) Buffered() int {
	rb.mu.Lock()
	defer rb.mu.Unlock()
	return rb.count
}

// Clear discards all unread bytes.
func (rb *AudioRingBuffer) Clear() {
	rb.mu.Lock()
	defer rb.mu.Unlock()
	rb.readPos = 0
	rb.writePos = 0
	rb.count = 0
}

// Close wakes blocked readers. Remaining data can still be read.
func (rb *AudioRingBuffer) Close() {
	rb.mu.Lock()
	defer rb.mu.Unlock()
	rb.closed = true
	rb.cond.Broadcast()
}
