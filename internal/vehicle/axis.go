package vehicle

import "github.com/Faultbox/crashsim/pkg/math"

// AxisConfig controls how a digital key pair is smoothed into an axis value.
type AxisConfig struct {
	// Sensitivity is how fast the value moves toward a pressed direction, in units per second.
	Sensitivity float32 `yaml:"sensitivity"`
	// Gravity is how fast the value returns to zero when no key is held.
	Gravity float32 `yaml:"gravity"`
	// Snap resets the value to zero when the opposite direction is pressed.
	Snap bool `yaml:"snap"`
}

// DefaultAxisConfig returns keyboard-style smoothing.
func DefaultAxisConfig() AxisConfig {
	return AxisConfig{
		Sensitivity: 3,
		Gravity:     3,
		Snap:        true,
	}
}

// Axis smooths a positive/negative key pair into a value in [-1, 1].
type Axis struct {
	cfg   AxisConfig
	value float32
}

// NewAxis creates an axis resting at zero.
func NewAxis(cfg AxisConfig) *Axis {
	return &Axis{cfg: cfg}
}

// Update advances the axis by dt seconds and returns the new value.
func (a *Axis) Update(positive, negative bool, dt float32) float32 {
	var target float32
	if positive {
		target++
	}
	if negative {
		target--
	}

	if target == 0 {
		a.value = math.MoveTowards(a.value, 0, a.cfg.Gravity*dt)
		return a.value
	}

	if a.cfg.Snap && a.value*target < 0 {
		a.value = 0
	}
	a.value = math.Clamp(math.MoveTowards(a.value, target, a.cfg.Sensitivity*dt), -1, 1)
	return a.value
}

// Value returns the current axis value.
func (a *Axis) Value() float32 {
	return a.value
}

// Reset returns the axis to zero.
func (a *Axis) Reset() {
	a.value = 0
}
