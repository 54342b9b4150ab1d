package physics

import (
	gomath "math"

	"github.com/Faultbox/crashsim/pkg/math"
)

// Wheel indices in FL, FR, BL, BR order.
const (
	WheelFL = iota
	WheelFR
	WheelBL
	WheelBR
)

// BodyConfig describes the rigid car body and its running gear.
type BodyConfig struct {
	HalfExtents math.Vec3 `yaml:"half_extents"` // Half size of the collision box
	Mass        float32   `yaml:"mass"`         // kg
	WheelRadius float32   `yaml:"wheel_radius"`
	Wheelbase   float32   `yaml:"wheelbase"` // Distance between axles
	Track       float32   `yaml:"track"`     // Distance between left and right wheels
	Drag        float32   `yaml:"drag"`      // Fraction of forward speed lost per second
	Grip        float32   `yaml:"grip"`      // Fraction of sideways speed removed per second
}

// DefaultBodyConfig returns a compact hatchback.
func DefaultBodyConfig() BodyConfig {
	return BodyConfig{
		HalfExtents: math.Vec3{X: 1.2, Y: 0.6, Z: 2.2},
		Mass:        1200,
		WheelRadius: 0.35,
		Wheelbase:   2.6,
		Track:       1.6,
		Drag:        0.3,
		Grip:        8,
	}
}

// Body is a car chassis moving on the ground plane.
type Body struct {
	cfg BodyConfig

	Position math.Vec3
	Yaw      float32 // Radians about +Y, 0 faces +Z
	Velocity math.Vec3

	wheels [4]*WheelCollider
}

// NewBody creates a body resting on the ground at (x, z).
func NewBody(cfg BodyConfig, x, z float32) *Body {
	b := &Body{
		cfg:      cfg,
		Position: math.Vec3{X: x, Y: cfg.HalfExtents.Y + cfg.WheelRadius, Z: z},
	}

	halfTrack := cfg.Track / 2
	halfBase := cfg.Wheelbase / 2
	axleY := -cfg.HalfExtents.Y
	mounts := [4]math.Vec3{
		WheelFL: {X: halfTrack, Y: axleY, Z: halfBase},
		WheelFR: {X: -halfTrack, Y: axleY, Z: halfBase},
		WheelBL: {X: halfTrack, Y: axleY, Z: -halfBase},
		WheelBR: {X: -halfTrack, Y: axleY, Z: -halfBase},
	}
	for i, m := range mounts {
		b.wheels[i] = &WheelCollider{body: b, mount: m, radius: cfg.WheelRadius}
	}
	return b
}

// Config returns the body configuration.
func (b *Body) Config() BodyConfig {
	return b.cfg
}

// Rotation returns the body orientation.
func (b *Body) Rotation() math.Quat {
	return math.QuatFromAxisAngle(math.Up, b.Yaw)
}

// Forward returns the unit heading on the ground plane.
func (b *Body) Forward() math.Vec3 {
	return b.Rotation().Rotate(math.Vec3{Z: 1})
}

// ForwardSpeed returns the signed speed along the heading.
func (b *Body) ForwardSpeed() float32 {
	return b.Velocity.Dot(b.Forward())
}

// Wheel returns the wheel collider at index i (WheelFL..WheelBR).
func (b *Body) Wheel(i int) *WheelCollider {
	return b.wheels[i]
}

// Corners returns the eight corners of the collision box in world space.
func (b *Body) Corners() [8]math.Vec3 {
	var out [8]math.Vec3
	h := b.cfg.HalfExtents
	rot := b.Rotation()
	for i := range out {
		local := math.Vec3{X: h.X, Y: h.Y, Z: h.Z}
		if i&1 != 0 {
			local.X = -local.X
		}
		if i&2 != 0 {
			local.Y = -local.Y
		}
		if i&4 != 0 {
			local.Z = -local.Z
		}
		out[i] = b.Position.Add(rot.Rotate(local))
	}
	return out
}

// integrate advances the bicycle model by dt seconds using the current
// wheel actuator state.
func (b *Body) integrate(dt float32) {
	cfg := b.cfg
	forward := b.Forward()
	speed := b.Velocity.Dot(forward)
	lateral := b.Velocity.Sub(forward.Scale(speed))

	if cfg.Mass > 0 && cfg.WheelRadius > 0 {
		var drive, brake float32
		for _, w := range b.wheels {
			drive += w.motor
			brake += w.brake
		}
		speed += drive / cfg.WheelRadius / cfg.Mass * dt
		speed = math.MoveTowards(speed, 0, brake/cfg.WheelRadius/cfg.Mass*dt)
	}
	speed -= speed * math.Clamp01(cfg.Drag*dt)
	lateral = lateral.Scale(1 - math.Clamp01(cfg.Grip*dt))

	steer := (b.wheels[WheelFL].steer + b.wheels[WheelFR].steer) / 2
	if cfg.Wheelbase > 0 && steer != 0 {
		rad := float64(steer) * gomath.Pi / 180
		b.Yaw -= speed * float32(gomath.Tan(rad)) / cfg.Wheelbase * dt
	}

	forward = b.Forward()
	b.Velocity = forward.Scale(speed).Add(lateral)
	b.Position = b.Position.Add(b.Velocity.Scale(dt))

	if cfg.WheelRadius > 0 {
		for _, w := range b.wheels {
			w.spin += speed / cfg.WheelRadius * dt
		}
	}
}

// WheelCollider is a wheel actuator mounted on a Body. It satisfies the
// wheel interface the vehicle controller drives.
type WheelCollider struct {
	body   *Body
	mount  math.Vec3
	radius float32

	motor float32
	steer float32 // degrees
	brake float32
	spin  float32 // radians
}

// SetMotorTorque sets the drive torque in N·m.
func (w *WheelCollider) SetMotorTorque(torque float32) { w.motor = torque }

// SetSteerAngle sets the steer angle in degrees.
func (w *WheelCollider) SetSteerAngle(degrees float32) { w.steer = degrees }

// SetBrakeTorque sets the brake torque in N·m.
func (w *WheelCollider) SetBrakeTorque(torque float32) { w.brake = torque }

// MotorTorque returns the last drive torque.
func (w *WheelCollider) MotorTorque() float32 { return w.motor }

// SteerAngle returns the last steer angle in degrees.
func (w *WheelCollider) SteerAngle() float32 { return w.steer }

// BrakeTorque returns the last brake torque.
func (w *WheelCollider) BrakeTorque() float32 { return w.brake }

// WorldPose returns the wheel hub position and its steered, spinning rotation.
func (w *WheelCollider) WorldPose() (math.Vec3, math.Quat) {
	bodyRot := w.body.Rotation()
	pos := w.body.Position.Add(bodyRot.Rotate(w.mount))

	steer := math.QuatFromAxisAngle(math.Up, -w.steer*gomath.Pi/180)
	spin := math.QuatFromAxisAngle(math.Vec3{X: 1}, w.spin)
	return pos, bodyRot.Mul(steer).Mul(spin)
}
