package damage

import (
	"github.com/Faultbox/crashsim/internal/physics"
	"github.com/Faultbox/crashsim/pkg/math"
)

// MinImpactOffset is the distance the contact must be from the owner's
// pivot before an impact deforms anything. The comparison is strict.
const MinImpactOffset = 1.0

// Impact is the scalar summary of one collision.
type Impact struct {
	// Point is the world-space contact point the deformation is centered on.
	Point math.Vec3
	// Origin points from the contact back toward the owner's pivot.
	Origin math.Vec3
	// Magnitude is the projected impact strength. Negative for contacts
	// whose normal faces away from the pivot.
	Magnitude float32
	// Force is Magnitude normalized by MaxCollisionPower and clamped to [0,1].
	Force float32
}

// Evaluate derives an Impact from a collision against an owner positioned
// at ownerPosition. It reports false when the collision has no contacts or
// the contact is within MinImpactOffset of the pivot; the returned Impact is
// still filled in for the latter case.
func Evaluate(cfg Config, ownerPosition math.Vec3, c physics.Collision) (Impact, bool) {
	if len(c.Contacts) == 0 {
		return Impact{}, false
	}

	vel := c.RelativeVelocity
	vel.Y *= cfg.MaxLateralSpeedWeight

	contact := c.Contacts[0]
	origin := ownerPosition.Sub(contact.Point)

	impact := Impact{
		Point:     contact.Point,
		Origin:    origin,
		Magnitude: vel.Length() * contact.Normal.Dot(origin.Normalize()),
	}
	if cfg.MaxCollisionPower > 0 {
		impact.Force = math.Clamp01(impact.Magnitude / cfg.MaxCollisionPower)
	}

	if origin.Length() <= MinImpactOffset {
		return impact, false
	}
	return impact, true
}
