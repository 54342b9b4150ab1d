package audio

import (
	"errors"
	gomath "math"
	"testing"
)

func TestVolumeConversion(t *testing.T) {
	// Test volume to dB conversion
	tests := []struct {
		vol float64
		min float64
		max float64
	}{
		{1.0, -1, 1},     // Full volume should be ~0dB
		{0.5, -8, -4},    // Half volume should be around -6dB
		{0.25, -14, -10}, // Quarter volume should be around -12dB
		{0.0, -200, -90}, // Zero volume should be very negative
	}

	for _, tt := range tests {
		db := volumeToDb(tt.vol)
		if db < tt.min || db > tt.max {
			t.Errorf("volumeToDb(%f) = %f, want between %f and %f", tt.vol, db, tt.min, tt.max)
		}
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		v, min, max, want float64
	}{
		{0.5, 0, 1, 0.5},
		{-1, 0, 1, 0},
		{2, 0, 1, 1},
		{0, 0, 1, 0},
		{1, 0, 1, 1},
	}

	for _, tt := range tests {
		got := clamp(tt.v, tt.min, tt.max)
		if got != tt.want {
			t.Errorf("clamp(%f, %f, %f) = %f, want %f", tt.v, tt.min, tt.max, got, tt.want)
		}
	}
}

func TestNewManager(t *testing.T) {
	m := New()
	if m == nil {
		t.Fatal("New() returned nil")
	}

	// Check default volumes
	if m.GetMasterVolume() != 1.0 {
		t.Errorf("default master volume = %f, want 1.0", m.GetMasterVolume())
	}
	if m.GetSFXVolume() != 1.0 {
		t.Errorf("default SFX volume = %f, want 1.0", m.GetSFXVolume())
	}
	if m.IsMuted() {
		t.Error("new manager should not be muted")
	}
	if m.IsInitialized() {
		t.Error("new manager should not be initialized")
	}
}

func TestSetVolume(t *testing.T) {
	m := New()

	m.SetMasterVolume(0.5)
	if m.GetMasterVolume() != 0.5 {
		t.Errorf("master volume = %f, want 0.5", m.GetMasterVolume())
	}

	// Test clamping
	m.SetMasterVolume(2.0)
	if m.GetMasterVolume() != 1.0 {
		t.Errorf("master volume = %f, want 1.0 (clamped)", m.GetMasterVolume())
	}

	m.SetSFXVolume(-1.0)
	if m.GetSFXVolume() != 0.0 {
		t.Errorf("sfx volume = %f, want 0.0 (clamped)", m.GetSFXVolume())
	}

	m.SetMuted(true)
	if !m.IsMuted() {
		t.Error("SetMuted(true) did not mute")
	}
}

func TestPlayImpactRequiresInit(t *testing.T) {
	m := New()
	if err := m.PlayImpact(0.5); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("PlayImpact before Init = %v, want ErrNotInitialized", err)
	}
	if err := m.Close(); err != nil {
		t.Errorf("Close on uninitialized manager = %v", err)
	}
}

func TestLoadImpactSampleInvalid(t *testing.T) {
	m := New()
	if err := m.LoadImpactSample([]byte("not a wav file")); err == nil {
		t.Error("expected error decoding garbage")
	}
}

func TestNoiseBurst(t *testing.T) {
	b := newNoiseBurst(1000, 42)

	buf := make([][2]float64, 256)
	var got [][2]float64
	for {
		n, ok := b.Stream(buf)
		got = append(got, buf[:n]...)
		if !ok {
			break
		}
	}

	if len(got) != 1000 {
		t.Fatalf("streamed %d samples, want 1000", len(got))
	}
	if b.Err() != nil {
		t.Errorf("Err() = %v", b.Err())
	}

	peak := func(s [][2]float64) float64 {
		var p float64
		for _, v := range s {
			if v[0] != v[1] {
				t.Fatal("burst should be mono across both channels")
			}
			p = gomath.Max(p, gomath.Abs(v[0]))
		}
		return p
	}
	head, tail := peak(got[:200]), peak(got[800:])
	if head > 1 {
		t.Errorf("head peak %f exceeds full scale", head)
	}
	if tail >= head {
		t.Errorf("tail peak %f should be below head peak %f", tail, head)
	}
}

func TestNoiseBurstDeterministic(t *testing.T) {
	a, b := newNoiseBurst(64, 7), newNoiseBurst(64, 7)
	sa, sb := make([][2]float64, 64), make([][2]float64, 64)
	a.Stream(sa)
	b.Stream(sb)
	for i := range sa {
		if sa[i] != sb[i] {
			t.Fatalf("sample %d differs for the same seed", i)
		}
	}
}
