// Package math provides math types and functions for the simulation.
package math

import "math"

// Vec3 is a 3D vector.
type Vec3 struct {
	X, Y, Z float32
}

// Up is the world up axis.
var Up = Vec3{0, 1, 0}

// Add returns v + other.
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

// Sub returns v - other.
func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

// Scale returns v * scalar.
func (v Vec3) Scale(s float32) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Mul returns the component-wise product.
func (v Vec3) Mul(other Vec3) Vec3 {
	return Vec3{v.X * other.X, v.Y * other.Y, v.Z * other.Z}
}

// Dot returns the dot product.
func (v Vec3) Dot(other Vec3) float32 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Cross returns the cross product.
func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3{
		v.Y*other.Z - v.Z*other.Y,
		v.Z*other.X - v.X*other.Z,
		v.X*other.Y - v.Y*other.X,
	}
}

// LengthSqr returns the squared magnitude.
func (v Vec3) LengthSqr() float32 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

// Length returns the magnitude.
func (v Vec3) Length() float32 {
	return float32(math.Sqrt(float64(v.LengthSqr())))
}

// Normalize returns a unit vector.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return Vec3{}
	}
	return Vec3{v.X / l, v.Y / l, v.Z / l}
}

// Distance returns the distance to another point.
func (v Vec3) Distance(other Vec3) float32 {
	return v.Sub(other).Length()
}

// XZ returns the XZ components as Vec2.
func (v Vec3) XZ() Vec2 {
	return Vec2{v.X, v.Z}
}

// Lerp linearly interpolates from v to other. t is not clamped.
func (v Vec3) Lerp(other Vec3, t float32) Vec3 {
	return Vec3{
		v.X + t*(other.X-v.X),
		v.Y + t*(other.Y-v.Y),
		v.Z + t*(other.Z-v.Z),
	}
}

// Slerp spherically interpolates between v and other.
// The direction rotates by t of the angle between them while the
// length is linearly interpolated. t is clamped to [0, 1].
func (v Vec3) Slerp(other Vec3, t float32) Vec3 {
	t = Clamp01(t)

	lenA := v.Length()
	lenB := other.Length()
	if lenA < 1e-6 || lenB < 1e-6 {
		return v.Lerp(other, t)
	}

	from := v.Scale(1 / lenA)
	to := other.Scale(1 / lenB)
	dot := Clamp(from.Dot(to), -1, 1)

	// Nearly parallel: the rotation plane is undefined, lerp the directions
	if dot > 0.9995 {
		return from.Lerp(to, t).Normalize().Scale(lenA + t*(lenB-lenA))
	}

	var ortho Vec3
	if dot < -0.9995 {
		ortho = orthogonal(from)
	} else {
		ortho = to.Sub(from.Scale(dot)).Normalize()
	}

	theta := float32(math.Acos(float64(dot))) * t
	sin := float32(math.Sin(float64(theta)))
	cos := float32(math.Cos(float64(theta)))
	dir := from.Scale(cos).Add(ortho.Scale(sin))

	return dir.Scale(lenA + t*(lenB-lenA))
}

// orthogonal returns a unit vector perpendicular to the unit vector v.
func orthogonal(v Vec3) Vec3 {
	axis := Vec3{1, 0, 0}
	if abs32(v.X) > 0.9 {
		axis = Vec3{0, 1, 0}
	}
	return v.Cross(axis).Normalize()
}
