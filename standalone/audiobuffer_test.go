//go:build !libretro

package standalone

import (
	"bytes"
	"errors"
	"io"
	"sync"
	"testing"
	"time"
)

// drain reads everything currently buffered without blocking.
func drain(t *testing.T, rb *AudioRingBuffer) []byte {
	t.Helper()
	out := make([]byte, rb.Buffered())
	if len(out) == 0 {
		return out
	}
	n, err := rb.Read(out)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	return out[:n]
}

func TestAudioRingBufferWrites(t *testing.T) {
	tests := []struct {
		name     string
		capacity int
		writes   [][]byte
		want     []byte
	}{
		{
			name:     "fits",
			capacity: 16,
			writes:   [][]byte{{1, 2, 3}, {4, 5}},
			want:     []byte{1, 2, 3, 4, 5},
		},
		{
			name:     "overflow drops oldest",
			capacity: 8,
			writes:   [][]byte{{1, 2, 3, 4, 5, 6}, {7, 8, 9, 10, 11}},
			want:     []byte{4, 5, 6, 7, 8, 9, 10, 11},
		},
		{
			name:     "single write larger than capacity keeps tail",
			capacity: 4,
			writes:   [][]byte{{1, 2, 3, 4, 5, 6, 7}},
			want:     []byte{4, 5, 6, 7},
		},
		{
			name:     "exactly full",
			capacity: 4,
			writes:   [][]byte{{1, 2}, {3, 4}},
			want:     []byte{1, 2, 3, 4},
		},
		{
			name:     "empty write",
			capacity: 4,
			writes:   [][]byte{{}, {9}},
			want:     []byte{9},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rb := NewAudioRingBuffer(tt.capacity)
			for _, w := range tt.writes {
				rb.Write(w)
			}
			if rb.Buffered() != len(tt.want) {
				t.Fatalf("Buffered() = %d, want %d", rb.Buffered(), len(tt.want))
			}
			if got := drain(t, rb); !bytes.Equal(got, tt.want) {
				t.Errorf("read %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAudioRingBufferWrapAround(t *testing.T) {
	rb := NewAudioRingBuffer(6)
	rb.Write([]byte{1, 2, 3, 4})

	head := make([]byte, 3)
	if n, _ := rb.Read(head); n != 3 {
		t.Fatalf("read %d bytes, want 3", n)
	}

	// writePos is at 4; this write wraps to the start of the backing array
	rb.Write([]byte{5, 6, 7, 8})
	if got, want := drain(t, rb), []byte{4, 5, 6, 7, 8}; !bytes.Equal(got, want) {
		t.Errorf("read %v, want %v", got, want)
	}
}

func TestAudioRingBufferPartialRead(t *testing.T) {
	rb := NewAudioRingBuffer(8)
	rb.Write([]byte{1, 2, 3, 4, 5})

	out := make([]byte, 2)
	n, err := rb.Read(out)
	if err != nil || n != 2 || !bytes.Equal(out, []byte{1, 2}) {
		t.Fatalf("Read = %d, %v, %v", n, out, err)
	}
	if rb.Buffered() != 3 {
		t.Errorf("Buffered() = %d, want 3", rb.Buffered())
	}
}

func TestAudioRingBufferClear(t *testing.T) {
	rb := NewAudioRingBuffer(8)
	rb.Write([]byte{1, 2, 3})
	rb.Clear()
	if rb.Buffered() != 0 {
		t.Fatalf("Buffered() after Clear = %d", rb.Buffered())
	}
	rb.Write([]byte{4})
	if got := drain(t, rb); !bytes.Equal(got, []byte{4}) {
		t.Errorf("read %v after Clear, want [4]", got)
	}
}

func TestAudioRingBufferClose(t *testing.T) {
	rb := NewAudioRingBuffer(8)
	rb.Write([]byte{1, 2})
	rb.Close()
	rb.Write([]byte{3})

	// Data written before Close is still readable
	if got := drain(t, rb); !bytes.Equal(got, []byte{1, 2}) {
		t.Errorf("read %v, want [1 2]", got)
	}
	if _, err := rb.Read(make([]byte, 1)); !errors.Is(err, io.EOF) {
		t.Errorf("Read after drain = %v, want io.EOF", err)
	}
}

func TestAudioRingBufferCloseUnblocksReader(t *testing.T) {
	rb := NewAudioRingBuffer(8)
	done := make(chan error, 1)
	go func() {
		_, err := rb.Read(make([]byte, 4))
		done <- err
	}()

	time.Sleep(10 * time.Millisecond)
	rb.Close()

	select {
	case err := <-done:
		if !errors.Is(err, io.EOF) {
			t.Errorf("blocked Read returned %v, want io.EOF", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Close did not wake the reader")
	}
}

func TestAudioRingBufferConcurrent(t *testing.T) {
	const total = 1 << 14
	rb := NewAudioRingBuffer(total)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		chunk := make([]byte, 64)
		for written := 0; written < total; written += len(chunk) {
			for i := range chunk {
				chunk[i] = byte(written + i)
			}
			rb.Write(chunk)
		}
		rb.Close()
	}()

	// Capacity covers everything, so nothing is dropped and order holds
	var got []byte
	buf := make([]byte, 100)
	for {
		n, err := rb.Read(buf)
		got = append(got, buf[:n]...)
		if errors.Is(err, io.EOF) {
			break
		}
	}
	wg.Wait()

	if len(got) != total {
		t.Fatalf("read %d bytes, want %d", len(got), total)
	}
	for i, b := range got {
		if b != byte(i) {
			t.Fatalf("byte %d = %d, want %d", i, b, byte(i))
		}
	}
}
