package input

import (
	"testing"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/crashsim/internal/vehicle"
)

type heldKeys map[sdl.Scancode]bool

func (h heldKeys) Held(sc sdl.Scancode) bool { return h[sc] }

func TestDriverAxes(t *testing.T) {
	cfg := vehicle.AxisConfig{Sensitivity: 10, Gravity: 10}

	tests := []struct {
		name string
		keys heldKeys
		want vehicle.Axes
	}{
		{"idle", heldKeys{}, vehicle.Axes{}},
		{"throttle", heldKeys{sdl.SCANCODE_W: true}, vehicle.Axes{Vertical: 1}},
		{"arrow reverse", heldKeys{sdl.SCANCODE_DOWN: true}, vehicle.Axes{Vertical: -1}},
		{"steer right", heldKeys{sdl.SCANCODE_D: true}, vehicle.Axes{Horizontal: 1}},
		{"steer left", heldKeys{sdl.SCANCODE_LEFT: true}, vehicle.Axes{Horizontal: -1}},
		{"brake", heldKeys{sdl.SCANCODE_SPACE: true}, vehicle.Axes{Brake: true}},
		{"nitro", heldKeys{sdl.SCANCODE_RSHIFT: true, sdl.SCANCODE_UP: true}, vehicle.Axes{Vertical: 1, Nitro: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDriver(cfg, DefaultBindings())
			if got := d.Axes(tt.keys, 1); got != tt.want {
				t.Errorf("Axes() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestDriverSmoothing(t *testing.T) {
	d := NewDriver(vehicle.AxisConfig{Sensitivity: 2, Gravity: 4}, DefaultBindings())
	keys := heldKeys{sdl.SCANCODE_W: true}

	if got := d.Axes(keys, 0.25).Vertical; got != 0.5 {
		t.Errorf("after 0.25s vertical = %v, want 0.5", got)
	}
	if got := d.Axes(heldKeys{}, 0.0625).Vertical; got != 0.25 {
		t.Errorf("after release vertical = %v, want 0.25", got)
	}

	d.Reset()
	if got := d.Axes(heldKeys{}, 0).Vertical; got != 0 {
		t.Errorf("after Reset vertical = %v, want 0", got)
	}
}

func TestSDLKeysHeld(t *testing.T) {
	state := make(sdlKeys, sdl.NUM_SCANCODES)
	state[sdl.SCANCODE_A] = 1

	if !state.Held(sdl.SCANCODE_A) {
		t.Error("A should be held")
	}
	if state.Held(sdl.SCANCODE_B) {
		t.Error("B should not be held")
	}
	if sdlKeys(nil).Held(sdl.SCANCODE_A) {
		t.Error("empty state should report nothing held")
	}
}
