// Package audio provides impact sound playback.
package audio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	gomath "math"
	"math/rand"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
)

// DefaultSampleRate is the default sample rate for audio playback.
const DefaultSampleRate = beep.SampleRate(44100)

// ErrNotInitialized is returned when playing before Init.
var ErrNotInitialized = errors.New("audio not initialized")

// Manager plays impact sounds through a shared mixer.
type Manager struct {
	mu sync.RWMutex

	// State
	initialized bool
	sampleRate  beep.SampleRate
	muted       bool

	// Volume settings (0.0 to 1.0)
	masterVolume float64
	sfxVolLevel  float64

	// Optional recorded impact; nil uses the synthesized burst.
	sample *beep.Buffer
	rng    *rand.Rand

	// SFX mixer for overlapping impacts
	sfxMixer *beep.Mixer
}

// New creates a new audio manager.
func New() *Manager {
	return &Manager{
		sampleRate:   DefaultSampleRate,
		masterVolume: 1.0,
		sfxVolLevel:  1.0,
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())),
		sfxMixer:     &beep.Mixer{},
	}
}

// Init initializes the audio device.
func (m *Manager) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}

	err := speaker.Init(m.sampleRate, m.sampleRate.N(time.Second/30))
	if err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}

	speaker.Play(m.sfxMixer)

	m.initialized = true
	return nil
}

// Close shuts down playback. It is safe to call on an uninitialized manager.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return nil
	}
	speaker.Clear()
	speaker.Close()
	m.initialized = false
	return nil
}

// IsInitialized returns whether the audio system is initialized.
func (m *Manager) IsInitialized() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.initialized
}

// SetMasterVolume sets the master volume (0.0 to 1.0).
func (m *Manager) SetMasterVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.masterVolume = clamp(vol, 0, 1)
}

// SetSFXVolume sets the SFX volume (0.0 to 1.0).
func (m *Manager) SetSFXVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sfxVolLevel = clamp(vol, 0, 1)
}

// SetMuted silences or restores impact sounds.
func (m *Manager) SetMuted(muted bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.muted = muted
}

// GetMasterVolume returns the master volume.
func (m *Manager) GetMasterVolume() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.masterVolume
}

// GetSFXVolume returns the SFX volume.
func (m *Manager) GetSFXVolume() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sfxVolLevel
}

// IsMuted reports whether impact sounds are silenced.
func (m *Manager) IsMuted() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.muted
}

// volumeToDb converts a 0-1 volume to decibel scale.
// vol=1 -> 0dB, vol=0.5 -> -6dB, vol=0.25 -> -12dB.
func volumeToDb(vol float64) float64 {
	if vol <= 0 {
		return -100 // Effectively silent
	}
	return 20 * gomath.Log10(vol)
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// LoadImpactSample decodes a WAV recording to use for impacts instead of the
// synthesized burst.
func (m *Manager) LoadImpactSample(data []byte) error {
	streamer, format, err := wav.Decode(io.NopCloser(bytes.NewReader(data)))
	if err != nil {
		return fmt.Errorf("decode wav: %w", err)
	}
	defer streamer.Close()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Resample if needed
	var resampled beep.Streamer = streamer
	if format.SampleRate != m.sampleRate {
		resampled = beep.Resample(4, format.SampleRate, m.sampleRate, streamer)
	}

	buf := beep.NewBuffer(beep.Format{SampleRate: m.sampleRate, NumChannels: 2, Precision: 2})
	buf.Append(resampled)
	m.sample = buf
	return nil
}

// PlayImpact plays a crash sound whose loudness and length follow force in
// [0,1]. Non-positive forces and a muted manager play nothing.
func (m *Manager) PlayImpact(force float32) error {
	m.mu.RLock()
	initialized := m.initialized
	muted := m.muted
	vol := m.masterVolume * m.sfxVolLevel * clamp(float64(force), 0, 1)
	m.mu.RUnlock()

	if !initialized {
		return ErrNotInitialized
	}
	if muted || force <= 0 {
		return nil
	}

	volStreamer := &effects.Volume{
		Streamer: m.impactStreamer(float64(force)),
		Base:     2,
		Volume:   volumeToDb(vol) / 6, // Base 2: one step per ~6dB
		Silent:   vol <= 0,
	}

	speaker.Lock()
	m.sfxMixer.Add(volStreamer)
	speaker.Unlock()

	return nil
}

func (m *Manager) impactStreamer(force float64) beep.Streamer {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.sample != nil {
		return m.sample.Streamer(0, m.sample.Len())
	}
	d := time.Duration((0.15 + 0.35*force) * float64(time.Second))
	return newNoiseBurst(m.sampleRate.N(d), m.rng.Int63())
}

// noiseBurst is low-passed white noise under an exponential decay.
type noiseBurst struct {
	rng    *rand.Rand
	total  int
	pos    int
	smooth float64
}

func newNoiseBurst(samples int, seed int64) *noiseBurst {
	return &noiseBurst{
		rng:   rand.New(rand.NewSource(seed)),
		total: samples,
	}
}

func (b *noiseBurst) Stream(samples [][2]float64) (n int, ok bool) {
	if b.pos >= b.total {
		return 0, false
	}
	for i := range samples {
		if b.pos >= b.total {
			break
		}
		t := float64(b.pos) / float64(b.total)
		env := gomath.Exp(-5 * t)
		b.smooth += 0.35 * (b.rng.Float64()*2 - 1 - b.smooth)
		v := b.smooth * env
		samples[i] = [2]float64{v, v}
		b.pos++
		n++
	}
	return n, true
}

func (b *noiseBurst) Err() error {
	return nil
}
