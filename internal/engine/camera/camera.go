// Package camera provides camera implementations for 3D rendering.
package camera

import (
	gomath "math"

	"github.com/Faultbox/crashsim/pkg/math"
)

// OrbitCamera orbits around a center point. Used for free inspection of
// a parked, dented car.
type OrbitCamera struct {
	Center math.Vec3

	// Spherical coordinates
	Distance  float32 // Distance from center
	RotationX float32 // Pitch (vertical angle, radians)
	RotationY float32 // Yaw (horizontal angle, radians)

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32
}

// NewOrbitCamera creates a new orbit camera sized for a car.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Distance:        8.0,
		RotationX:       0.5,
		RotationY:       0.0,
		MinDistance:     2.0,
		MaxDistance:     60.0,
		MinPitch:        0.05,
		MaxPitch:        1.5,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
	}
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	x := c.Distance * float32(gomath.Cos(float64(c.RotationX))*gomath.Sin(float64(c.RotationY)))
	y := c.Distance * float32(gomath.Sin(float64(c.RotationX)))
	z := c.Distance * float32(gomath.Cos(float64(c.RotationX))*gomath.Cos(float64(c.RotationY)))

	return c.Center.Add(math.Vec3{X: x, Y: y, Z: z})
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position(), c.Center, math.Up)
}

// HandleDrag updates rotation based on mouse drag delta.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.RotationY -= deltaX * c.DragSensitivity
	c.RotationX = math.Clamp(c.RotationX+deltaY*c.DragSensitivity, c.MinPitch, c.MaxPitch)
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance = math.Clamp(c.Distance-delta*c.Distance*c.ZoomSensitivity, c.MinDistance, c.MaxDistance)
}

// FitToBounds centers the camera on a box and backs off far enough to see it.
func (c *OrbitCamera) FitToBounds(min, max math.Vec3) {
	c.Center = min.Add(max).Scale(0.5)
	size := max.Sub(min).Length()
	c.Distance = math.Clamp(size*1.5, c.MinDistance, c.MaxDistance)
	c.RotationX = 0.6 // Look down at ~35 degrees
}

// ChaseCamera follows a target from behind, easing its heading toward the
// target's yaw.
type ChaseCamera struct {
	Yaw      float32 // Heading the camera looks along (radians, 0 faces +Z)
	Pitch    float32 // Elevation (radians)
	Distance float32
	Height   float32 // Look-at offset above the target origin

	MinDistance     float32
	MaxDistance     float32
	ZoomSensitivity float32
	// FollowRate is how quickly Yaw catches up with the target, per second.
	FollowRate float32
}

// NewChaseCamera creates a chase camera with defaults suited to the car.
func NewChaseCamera() *ChaseCamera {
	return &ChaseCamera{
		Pitch:           0.35,
		Distance:        9.0,
		Height:          0.8,
		MinDistance:     4.0,
		MaxDistance:     30.0,
		ZoomSensitivity: 0.1,
		FollowRate:      4.0,
	}
}

// Follow eases the camera heading toward targetYaw over dt seconds,
// taking the short way around.
func (c *ChaseCamera) Follow(targetYaw, dt float32) {
	delta := wrapAngle(targetYaw - c.Yaw)
	c.Yaw = wrapAngle(c.Yaw + delta*math.Clamp01(c.FollowRate*dt))
}

// Position returns the camera position for a target at the given point.
func (c *ChaseCamera) Position(target math.Vec3) math.Vec3 {
	offsetY := c.Distance * float32(gomath.Sin(float64(c.Pitch)))
	horiz := c.Distance * float32(gomath.Cos(float64(c.Pitch)))
	offsetX := horiz * float32(gomath.Sin(float64(c.Yaw)))
	offsetZ := horiz * float32(gomath.Cos(float64(c.Yaw)))

	return math.Vec3{
		X: target.X - offsetX,
		Y: target.Y + c.Height + offsetY,
		Z: target.Z - offsetZ,
	}
}

// ViewMatrix returns the view matrix looking at target.
func (c *ChaseCamera) ViewMatrix(target math.Vec3) math.Mat4 {
	look := target.Add(math.Vec3{Y: c.Height})
	return math.LookAt(c.Position(target), look, math.Up)
}

// HandleZoom updates distance from target.
func (c *ChaseCamera) HandleZoom(delta float32) {
	c.Distance = math.Clamp(c.Distance-delta*c.Distance*c.ZoomSensitivity, c.MinDistance, c.MaxDistance)
}

// wrapAngle maps a to [-π, π).
func wrapAngle(a float32) float32 {
	const twoPi = 2 * gomath.Pi
	w := gomath.Mod(float64(a)+gomath.Pi, twoPi)
	if w < 0 {
		w += twoPi
	}
	return float32(w - gomath.Pi)
}
