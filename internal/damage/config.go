// Package damage turns collision events into persistent mesh dents.
package damage

import (
	"errors"
	"fmt"
)

// Config holds the deformation tuning parameters.
type Config struct {
	// MaxVertexMove is the largest displacement a single impact can apply to a vertex.
	MaxVertexMove float32 `yaml:"max_vertex_move"`
	// MaxCollisionPower normalizes impact magnitude into a [0,1] force.
	MaxCollisionPower float32 `yaml:"max_collision_power"`
	// MaxLateralSpeedWeight scales the vertical component of the relative velocity.
	MaxLateralSpeedWeight float32 `yaml:"max_lateral_speed_weight"`
	// DestructionRadius is the world-space influence radius around the impact point.
	DestructionRadius float32 `yaml:"destruction_radius"`
	// BlendFactor interpolates the push direction from radial (0) to center-directed (1).
	BlendFactor float32 `yaml:"blend_factor"`
	// MaxCumulativeDisplacement caps how far a vertex may drift from its rest
	// position over all impacts. Zero leaves deformation unbounded.
	MaxCumulativeDisplacement float32 `yaml:"max_cumulative_displacement"`
}

// DefaultConfig returns the stock tuning.
func DefaultConfig() Config {
	return Config{
		MaxVertexMove:         1.0,
		MaxCollisionPower:     50.0,
		MaxLateralSpeedWeight: 0.5,
		DestructionRadius:     1.0,
		BlendFactor:           0.5,
	}
}

// ErrInvalidConfig is returned by Validate for out-of-range parameters.
var ErrInvalidConfig = errors.New("invalid damage config")

// Validate checks that all parameters are non-negative and BlendFactor is in [0,1].
func (c Config) Validate() error {
	fields := []struct {
		name  string
		value float32
	}{
		{"max_vertex_move", c.MaxVertexMove},
		{"max_collision_power", c.MaxCollisionPower},
		{"max_lateral_speed_weight", c.MaxLateralSpeedWeight},
		{"destruction_radius", c.DestructionRadius},
		{"blend_factor", c.BlendFactor},
		{"max_cumulative_displacement", c.MaxCumulativeDisplacement},
	}
	for _, f := range fields {
		if f.value < 0 {
			return fmt.Errorf("%w: %s must be non-negative, got %g", ErrInvalidConfig, f.name, f.value)
		}
	}
	if c.BlendFactor > 1 {
		return fmt.Errorf("%w: blend_factor must be in [0,1], got %g", ErrInvalidConfig, c.BlendFactor)
	}
	return nil
}
