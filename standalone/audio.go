//go:build !libretro

package standalone

import (
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

const defaultSampleRate = 48000

// ringBufferCapacity is ~170ms at 48kHz stereo 16-bit.
const ringBufferCapacity = 32768

// playerBufferSize caps oto's internal buffer at ~50ms so it does not
// accumulate at startup and throw off frame pacing.
const playerBufferSize = 19200

// AudioPlayer plays the core's stereo int16 samples through oto. Samples
// go into a ring buffer which oto's player pulls from.
type AudioPlayer struct {
	player     *oto.Player
	ringBuffer *AudioRingBuffer
	audioBytes []byte // Reused int16-to-byte conversion buffer
	volume     float64
	muted      bool
}

// oto allows a single context per process
var (
	otoCtx      *oto.Context
	otoInitOnce sync.Once
	otoInitErr  error
)

// ensureOtoContext initializes the oto audio context on first use. The
// first caller's sample rate wins.
func ensureOtoContext(sampleRate int) (*oto.Context, error) {
	otoInitOnce.Do(func() {
		op := &oto.NewContextOptions{
			SampleRate:   sampleRate,
			ChannelCount: 2,
			Format:       oto.FormatSignedInt16LE,
			BufferSize:   50 * time.Millisecond,
		}
		var readyChan chan struct{}
		otoCtx, readyChan, otoInitErr = oto.NewContext(op)
		if otoInitErr != nil {
			return
		}
		<-readyChan
	})
	return otoCtx, otoInitErr
}

// NewAudioPlayer starts playback at sampleRate (0 selects 48kHz). The
// volume is applied before playback starts so a muted start does not pop.
func NewAudioPlayer(sampleRate int, volume float64, muted bool) (*AudioPlayer, error) {
	if sampleRate <= 0 {
		sampleRate = defaultSampleRate
	}
	ctx, err := ensureOtoContext(sampleRate)
	if err != nil {
		return nil, fmt.Errorf("oto audio not available: %w", err)
	}

	rb := NewAudioRingBuffer(ringBufferCapacity)
	player := ctx.NewPlayer(rb)
	player.SetBufferSize(playerBufferSize)

	a := &AudioPlayer{
		player:     player,
		ringBuffer: rb,
		audioBytes: make([]byte, 0, 4096),
		volume:     clampVolume(volume),
		muted:      muted,
	}
	a.apply()
	player.Play()
	return a, nil
}

// QueueSamples converts int16 stereo samples to little-endian bytes and
// writes them to the ring buffer.
func (a *AudioPlayer) QueueSamples(samples []int16) {
	if len(samples) == 0 {
		return
	}

	needed := len(samples) * 2
	if cap(a.audioBytes) < needed {
		a.audioBytes = make([]byte, 0, needed)
	}
	a.audioBytes = a.audioBytes[:0]
	for _, sample := range samples {
		a.audioBytes = append(a.audioBytes, byte(sample), byte(sample>>8))
	}

	a.ringBuffer.Write(a.audioBytes)
}

// GetBufferLevel returns the bytes of audio buffered in the ring buffer
// and oto's player. The emulation loop paces itself on it.
func (a *AudioPlayer) GetBufferLevel() int {
	return a.ringBuffer.Buffered() + a.player.BufferedSize()
}

// ClearQueue flushes buffered audio, used after loading a state so the old
// timeline does not play on.
func (a *AudioPlayer) ClearQueue() {
	a.ringBuffer.Clear()
}

// SetVolume sets the playback gain, clamped to [0.0, 2.0].
func (a *AudioPlayer) SetVolume(vol float64) {
	a.volume = clampVolume(vol)
	a.apply()
}

// SetMuted silences playback without losing the volume setting.
func (a *AudioPlayer) SetMuted(muted bool) {
	a.muted = muted
	a.apply()
}

func (a *AudioPlayer) apply() {
	if a.muted {
		a.player.SetVolume(0)
		return
	}
	a.player.SetVolume(a.volume)
}

func clampVolume(vol float64) float64 {
	return min(max(vol, 0), 2.0)
}

// Close cleans up audio resources.
func (a *AudioPlayer) Close() {
	if a.ringBuffer != nil {
		a.ringBuffer.Close()
	}
	if a.player != nil {
		a.player.Close()
	}
}
