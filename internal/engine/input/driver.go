package input

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/crashsim/internal/vehicle"
)

// Bindings lists the keys for each driver control. Any listed key triggers
// its control.
type Bindings struct {
	Throttle []sdl.Scancode
	Reverse  []sdl.Scancode
	Left     []sdl.Scancode
	Right    []sdl.Scancode
	Brake    []sdl.Scancode
	Nitro    []sdl.Scancode
}

// DefaultBindings returns WASD plus arrow keys, Space to brake and Shift for nitro.
func DefaultBindings() Bindings {
	return Bindings{
		Throttle: []sdl.Scancode{sdl.SCANCODE_W, sdl.SCANCODE_UP},
		Reverse:  []sdl.Scancode{sdl.SCANCODE_S, sdl.SCANCODE_DOWN},
		Left:     []sdl.Scancode{sdl.SCANCODE_A, sdl.SCANCODE_LEFT},
		Right:    []sdl.Scancode{sdl.SCANCODE_D, sdl.SCANCODE_RIGHT},
		Brake:    []sdl.Scancode{sdl.SCANCODE_SPACE},
		Nitro:    []sdl.Scancode{sdl.SCANCODE_LSHIFT, sdl.SCANCODE_RSHIFT},
	}
}

// Driver smooths held keys into vehicle axes.
type Driver struct {
	bindings   Bindings
	vertical   *vehicle.Axis
	horizontal *vehicle.Axis
}

// NewDriver creates a driver with the given axis smoothing and key bindings.
func NewDriver(cfg vehicle.AxisConfig, bindings Bindings) *Driver {
	return &Driver{
		bindings:   bindings,
		vertical:   vehicle.NewAxis(cfg),
		horizontal: vehicle.NewAxis(cfg),
	}
}

// Axes advances the smoothed axes by dt seconds and returns the frame input.
func (d *Driver) Axes(keys KeyState, dt float32) vehicle.Axes {
	b := d.bindings
	return vehicle.Axes{
		Vertical:   d.vertical.Update(anyHeld(keys, b.Throttle), anyHeld(keys, b.Reverse), dt),
		Horizontal: d.horizontal.Update(anyHeld(keys, b.Right), anyHeld(keys, b.Left), dt),
		Brake:      anyHeld(keys, b.Brake),
		Nitro:      anyHeld(keys, b.Nitro),
	}
}

// Reset returns both axes to rest.
func (d *Driver) Reset() {
	d.vertical.Reset()
	d.horizontal.Reset()
}

func anyHeld(keys KeyState, codes []sdl.Scancode) bool {
	for _, c := range codes {
		if keys.Held(c) {
			return true
		}
	}
	return false
}
