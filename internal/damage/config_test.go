package damage

import (
	"errors"
	"testing"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative vertex move", func(c *Config) { c.MaxVertexMove = -1 }},
		{"negative power", func(c *Config) { c.MaxCollisionPower = -0.1 }},
		{"negative lateral weight", func(c *Config) { c.MaxLateralSpeedWeight = -2 }},
		{"negative radius", func(c *Config) { c.DestructionRadius = -1 }},
		{"negative blend", func(c *Config) { c.BlendFactor = -0.5 }},
		{"blend above one", func(c *Config) { c.BlendFactor = 1.5 }},
		{"negative cap", func(c *Config) { c.MaxCumulativeDisplacement = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, want ErrInvalidConfig", err)
			}
		})
	}
}
