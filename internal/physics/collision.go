// Package physics defines the collision data consumed by the damage model
// and a small arena simulation that produces it.
package physics

import "github.com/Faultbox/crashsim/pkg/math"

// Contact is a single contact point reported for a collision.
type Contact struct {
	Point  math.Vec3 `yaml:"point"`  // World position
	Normal math.Vec3 `yaml:"normal"` // Unit surface normal
}

// Collision is one collision notification. Contacts are ordered as reported
// by the physics step; consumers typically use only the first one.
type Collision struct {
	RelativeVelocity math.Vec3 `yaml:"relative_velocity"`
	Contacts         []Contact `yaml:"contacts"`
}
